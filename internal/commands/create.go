package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"dailythought/internal/client"
	"dailythought/internal/models"
)

func addCreate(topLevel *cobra.Command, a *app) {
	var (
		date      string
		mood      string
		intensity int
	)
	cmd := &cobra.Command{
		Use:     "create [text]",
		Aliases: []string{"new", "add"},
		Short:   "Write a new diary entry. Without text, the body is read from stdin.",
		Example: `
diaryctl create "Long walk by the river"
diaryctl create --date 2024-05-01 --mood grateful --intensity 4 < today.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := models.NewEntry{Date: date, MoodIntensity: intensity}
			if in.Date == "" {
				in.Date = a.opts.Clock.Now().Format(models.DateLayout)
			}
			if mood != "" {
				m, ok := models.ParseMood(mood)
				if !ok {
					return &client.ValidationError{Field: "mood", Message: fmt.Sprintf("unknown mood %q, see diaryctl moods", mood)}
				}
				in.Mood = m
			}
			if len(args) > 0 {
				in.Body = strings.Join(args, " ")
			} else {
				b, err := io.ReadAll(a.opts.In)
				if err != nil {
					return err
				}
				in.Body = strings.TrimRight(string(b), "\n")
			}

			e, err := a.client.CreateEntry(cmd.Context(), in)
			if err != nil {
				return friendly(err, "Failed to save diary. Please try again.")
			}
			a.store.Put(e)
			fmt.Fprintf(a.out, "Created entry %s for %s\n\n", e.ID, e.Date)
			a.printer.Entry(e)
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Entry date as YYYY-MM-DD (default today).")
	cmd.Flags().StringVarP(&mood, "mood", "m", "", "Mood tag (default content).")
	cmd.Flags().IntVarP(&intensity, "intensity", "i", 0, "Mood intensity from 1 to 5 (default 3).")
	topLevel.AddCommand(cmd)
}
