package commands

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"dailythought/internal/deletion"
)

func addDelete(topLevel *cobra.Command, a *app) {
	var yes bool
	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a diary entry after confirmation.",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.client.GetEntry(cmd.Context(), args[0])
			if err != nil {
				return friendly(err, "Failed to fetch diary.")
			}
			a.store.Load(e)

			w := deletion.New(e.ID, a.client,
				deletion.WithRemover(a.store),
				deletion.WithLogger(a.logger),
				deletion.WithNavigate(func() { fmt.Fprintln(a.out, "Deleted.") }),
			)
			if err := w.Request(); err != nil {
				return err
			}
			if !yes && !confirm(a, fmt.Sprintf("Delete the diary for %s? This cannot be undone. [y/N]: ", e.Date)) {
				w.Cancel()
				fmt.Fprintln(a.out, "Cancelled.")
				return nil
			}
			if err := w.Confirm(cmd.Context()); err != nil {
				return &userError{msg: w.Message(), err: err}
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt.")
	topLevel.AddCommand(cmd)
}

func confirm(a *app, prompt string) bool {
	fmt.Fprint(a.out, prompt)
	line, _ := bufio.NewReader(a.opts.In).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
