package commands

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type cliConfig struct {
	BaseURL       string
	Token         string
	AutosaveDelay time.Duration
}

// loadConfig layers flags over DIARYCTL_* env vars over ~/.diaryctl.yaml over defaults.
func loadConfig(v *viper.Viper, file string) (cliConfig, error) {
	v.SetDefault("base_url", "http://localhost:8080")
	v.SetDefault("autosave_delay", "60s")
	v.SetEnvPrefix("DIARYCTL")
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(".diaryctl") // .yaml is implicit
		v.SetConfigType("yaml")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !(file == "" && errors.Is(err, os.ErrNotExist)) {
			return cliConfig{}, fmt.Errorf("read config: %w", err)
		}
	}

	c := cliConfig{
		BaseURL:       v.GetString("base_url"),
		Token:         v.GetString("token"),
		AutosaveDelay: v.GetDuration("autosave_delay"),
	}
	if c.AutosaveDelay <= 0 {
		return cliConfig{}, fmt.Errorf("autosave_delay must be positive, got %s", v.GetString("autosave_delay"))
	}
	return c, nil
}
