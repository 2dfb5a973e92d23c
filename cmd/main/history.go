package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newHistoryCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent generation runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, closeStore, err := a.openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			gens, err := store.Generations(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("failed to read history: %w", err)
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "ID\tWHEN\tCORPUS\tWINDOW\tSEED\tTEXT\tLENGTH\tOUTPUT")
			for _, g := range gens {
				seed := "random"
				if g.RandomSeed != nil {
					seed = strconv.FormatInt(*g.RandomSeed, 10)
				}
				_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\t%q\t%d\t%q\n",
					g.Id, g.CreatedAt.Format("2006-01-02 15:04"), g.CorpusLabel, g.WindowLength,
					seed, g.SeedText, g.TargetLength, g.Output)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "number of runs to show")

	return cmd
}
