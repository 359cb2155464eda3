package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"dailythought/internal/query"
)

func addList(topLevel *cobra.Command, a *app) {
	var (
		search string
		sort   string
		ids    bool
	)
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List your diaries, optionally filtered by date.",
		Example: `
diaryctl list
diaryctl list --search 2024-05
diaryctl list --sort oldest`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			order := query.ParseSortOrder(sort)
			if sort != "" && string(order) != strings.ToLower(sort) {
				return fmt.Errorf("unknown sort order %q, want newest or oldest", sort)
			}
			entries, err := a.client.ListEntries(cmd.Context())
			if err != nil {
				return friendly(err, "Failed to fetch diaries.")
			}
			a.store.Replace(entries)

			engine := query.NewEngine(a.store)
			engine.SetTerm(search)
			engine.SetOrder(order)
			a.printer.ShowID = ids
			a.printer.Entries(engine.Result())
			return nil
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "Only show entries whose date contains this text.")
	cmd.Flags().StringVar(&sort, "sort", "newest", "Sort by date: newest or oldest.")
	cmd.Flags().BoolVar(&ids, "ids", false, "Show entry ids.")
	topLevel.AddCommand(cmd)
}

func addShow(topLevel *cobra.Command, a *app) {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one diary entry.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.client.GetEntry(cmd.Context(), args[0])
			if err != nil {
				return friendly(err, "Failed to fetch diary.")
			}
			a.store.Load(e)
			a.printer.Entry(e)
			return nil
		},
	}
	topLevel.AddCommand(cmd)
}

func addAnalytics(topLevel *cobra.Command, a *app) {
	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Show mood statistics across all your entries.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := a.client.MoodAnalytics(cmd.Context())
			if err != nil {
				return friendly(err, "Failed to load mood analytics.")
			}
			a.printer.Analytics(snap)
			return nil
		},
	}
	topLevel.AddCommand(cmd)
}

func addMoods(topLevel *cobra.Command, a *app) {
	cmd := &cobra.Command{
		Use:   "moods",
		Short: "List the moods you can tag an entry with.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.printer.Moods()
			return nil
		},
	}
	topLevel.AddCommand(cmd)
}
