package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"dailythought/internal/client"
	"dailythought/internal/editor"
	"dailythought/internal/models"
)

const editHelp = `Editing. Lines you type are appended to the entry. Changes save automatically after %s of inactivity.
  :mood <name>      set the mood
  :intensity <1-5>  set the intensity
  :clear            empty the text
  :show             print the working copy
  :save             save now
  :cancel           discard unsaved changes
  :q                quit`

func addEdit(topLevel *cobra.Command, a *app) {
	var (
		body      string
		mood      string
		intensity int
	)
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an entry's text, mood or intensity.",
		Long: `Edit an entry's text, mood or intensity.

With --body, --mood or --intensity the change is saved once and the command exits.
Without them an interactive session is started that autosaves while you type.`,
		Example: `
diaryctl edit 3f2a... --mood tired --intensity 2
diaryctl edit 3f2a...`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := a.client.GetEntry(ctx, args[0])
			if err != nil {
				return friendly(err, "Failed to fetch diary.")
			}
			a.store.Load(e)

			s := editor.New(e, a.client,
				editor.WithClock(a.opts.Clock),
				editor.WithAutosaveDelay(a.cfg.AutosaveDelay),
				editor.WithCommitter(a.store),
				editor.WithLogger(a.logger),
				editor.WithContext(ctx),
				editor.WithOnChange(func(sn editor.Snapshot) {
					switch sn.State {
					case editor.Saving, editor.Saved, editor.Error:
						a.printer.Status(sn)
					}
				}),
			)
			defer s.Close()

			flags := cmd.Flags()
			if !flags.Changed("body") && !flags.Changed("mood") && !flags.Changed("intensity") {
				return runInteractive(ctx, a, s)
			}

			if err := s.Edit(); err != nil {
				return err
			}
			if flags.Changed("body") {
				if err := s.SetBody(body); err != nil {
					return err
				}
			}
			if flags.Changed("mood") {
				if err := setMood(s, mood); err != nil {
					return err
				}
			}
			if flags.Changed("intensity") {
				if err := s.SetIntensity(intensity); err != nil {
					return err
				}
			}
			if err := s.Save(ctx); err != nil {
				return friendly(err, "Failed to save diary. Please try again.")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&body, "body", "", "Replace the entry text.")
	cmd.Flags().StringVarP(&mood, "mood", "m", "", "Set the mood.")
	cmd.Flags().IntVarP(&intensity, "intensity", "i", 0, "Set the intensity (1-5).")
	topLevel.AddCommand(cmd)
}

func setMood(s *editor.Session, name string) error {
	m, ok := models.ParseMood(name)
	if !ok {
		return &client.ValidationError{Field: "mood", Message: fmt.Sprintf("unknown mood %q, see diaryctl moods", name)}
	}
	return s.SetMood(m)
}

func runInteractive(ctx context.Context, a *app, s *editor.Session) error {
	a.printer.Entry(s.Snapshot().Entry)
	fmt.Fprintf(a.out, "\n"+editHelp+"\n", a.cfg.AutosaveDelay)
	if err := s.Edit(); err != nil {
		return err
	}

	lines := make(chan string)
	done := make(chan struct{})
	defer close(done)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(a.opts.In)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-done:
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				return finish(a, s)
			}
			quit, err := handleLine(ctx, a, s, line)
			if err != nil {
				fmt.Fprintln(a.out, client.UserMessage(err, err.Error()))
			}
			if quit {
				return finish(a, s)
			}
		}
	}
}

// handleLine applies one line of input. Save failures are reported through the session's
// status callback and are not returned.
func handleLine(ctx context.Context, a *app, s *editor.Session, line string) (quit bool, err error) {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	if !strings.HasPrefix(line, ":") {
		cmd, arg = "", line
	}
	arg = strings.TrimSpace(arg)

	switch cmd {
	case ":q", ":quit":
		return true, nil
	case ":save", ":w", ":wq":
		switch err := s.Save(ctx); {
		case errors.Is(err, editor.ErrSaveInFlight):
			fmt.Fprintln(a.out, "A save is already in progress.")
		case errors.Is(err, editor.ErrNotEditing):
			fmt.Fprintln(a.out, "Nothing to save.")
			return cmd == ":wq", nil
		case err == nil:
			return cmd == ":wq", nil
		}
		return false, nil
	case ":cancel":
		if err := s.Cancel(); err != nil {
			return false, err
		}
		fmt.Fprintln(a.out, "Changes discarded.")
		return false, nil
	case ":show":
		sn := s.Snapshot()
		fmt.Fprintln(a.out, sn.Draft.Body)
		fmt.Fprintf(a.out, "%s  %d words, %d characters\n", sn.Draft.Mood.Label(), sn.Counts.Words, sn.Counts.Chars)
		return false, nil
	}

	// Everything below mutates the working copy, reopening edit mode after a save.
	if err := s.Edit(); err != nil {
		return false, err
	}
	switch cmd {
	case ":mood":
		return false, setMood(s, arg)
	case ":intensity":
		n, convErr := strconv.Atoi(arg)
		if convErr != nil {
			return false, &client.ValidationError{Field: "moodIntensity", Message: "intensity must be between 1 and 5"}
		}
		return false, s.SetIntensity(n)
	case ":clear":
		return false, s.SetBody("")
	case "":
		draft := s.Snapshot().Draft.Body
		if draft != "" {
			draft += "\n"
		}
		return false, s.SetBody(draft + line)
	default:
		return false, fmt.Errorf("unknown command %s", cmd)
	}
}

func finish(a *app, s *editor.Session) error {
	if s.Snapshot().Dirty {
		fmt.Fprintln(a.out, "Unsaved changes discarded.")
	}
	s.Close()
	return nil
}
