// Package commands implements the diaryctl command line.
package commands

import (
	"errors"
	"io"
	"net/http"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"dailythought/internal/client"
	"dailythought/internal/display"
	"dailythought/internal/entrystore"
)

// Options carries the process dependencies. Zero fields take the real terminal, clock and
// network.
type Options struct {
	In         io.Reader
	Out        io.Writer
	Clock      clockwork.Clock
	HTTPClient *http.Client
	Viper      *viper.Viper
}

func New() *cobra.Command {
	return NewWithOptions(Options{})
}

func NewWithOptions(o Options) *cobra.Command {
	if o.In == nil {
		o.In = os.Stdin
	}
	if o.Out == nil {
		o.Out = color.Output
	}
	if o.Clock == nil {
		o.Clock = clockwork.NewRealClock()
	}
	if o.Viper == nil {
		o.Viper = viper.New()
	}

	a := &app{opts: o, out: &syncWriter{w: o.Out}}
	var cfgFile string
	var verbose bool

	cmd := &cobra.Command{
		Use:           "diaryctl",
		Short:         "Write and review your diary from the command line.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cfgFile, verbose)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.SetOut(a.out)

	flags := cmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "Config file (default $HOME/.diaryctl.yaml).")
	flags.String("base-url", "", "Diary API base URL.")
	flags.String("token", "", "Bearer token for the diary API.")
	flags.Duration("autosave-delay", 0, "Idle time before an edit is saved automatically.")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Log requests and state changes.")
	_ = o.Viper.BindPFlag("base_url", flags.Lookup("base-url"))
	_ = o.Viper.BindPFlag("token", flags.Lookup("token"))
	_ = o.Viper.BindPFlag("autosave_delay", flags.Lookup("autosave-delay"))

	addList(cmd, a)
	addShow(cmd, a)
	addCreate(cmd, a)
	addEdit(cmd, a)
	addDelete(cmd, a)
	addAnalytics(cmd, a)
	addMoods(cmd, a)
	return cmd
}

// app is the state shared by subcommands once flags and config are resolved.
type app struct {
	opts    Options
	out     *syncWriter
	cfg     cliConfig
	logger  *zap.Logger
	client  *client.Client
	store   *entrystore.Store
	printer *display.Printer
}

func (a *app) setup(cfgFile string, verbose bool) error {
	cfg, err := loadConfig(a.opts.Viper, cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	a.logger = zap.NewNop()
	if verbose {
		if l, err := zap.NewDevelopment(); err == nil {
			a.logger = l
		}
	}

	clientOpts := []client.Option{client.WithLogger(a.logger), client.WithClock(a.opts.Clock.Now)}
	if a.opts.HTTPClient != nil {
		clientOpts = append(clientOpts, client.WithHTTPClient(a.opts.HTTPClient))
	}
	a.client = client.New(cfg.BaseURL, client.StaticToken{Token: cfg.Token, Now: a.opts.Clock.Now}, clientOpts...)
	a.store = entrystore.New()
	a.printer = display.NewPrinter(a.out)
	return nil
}

// userError keeps the cause for errors.Is while printing the user-facing text.
type userError struct {
	msg string
	err error
}

func (e *userError) Error() string { return e.msg }
func (e *userError) Unwrap() error { return e.err }

func friendly(err error, fallback string) error {
	if err == nil {
		return nil
	}
	var ue *userError
	if errors.As(err, &ue) {
		return err
	}
	return &userError{msg: client.UserMessage(err, fallback), err: err}
}

// syncWriter serializes writes from timer callbacks and the command loop.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
