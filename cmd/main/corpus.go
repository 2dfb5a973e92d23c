package main

import (
	"database/sql"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/CTAG07/charkov/pkg/corpus"
)

func newCorpusCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "corpus",
		Short: "Manage stored corpora",
	}
	cmd.AddCommand(newCorpusAddCmd(a))
	cmd.AddCommand(newCorpusListCmd(a))
	cmd.AddCommand(newCorpusRemoveCmd(a))
	return cmd
}

func newCorpusAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add NAME FILE",
		Short: "Store the text of FILE as corpus NAME",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := corpus.ReadFile(args[1])
			if err != nil {
				return err
			}
			store, closeStore, err := a.openStore()
			if err != nil {
				return err
			}
			defer closeStore()
			return store.Add(cmd.Context(), args[0], text)
		},
	}
}

func newCorpusListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored corpora",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, closeStore, err := a.openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			infos, err := store.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list corpora: %w", err)
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "NAME\tCHARS\tADDED")
			for _, info := range infos {
				_, _ = fmt.Fprintf(w, "%s\t%d\t%s\n", info.Name, info.CharCount, info.AddedAt.Format("2006-01-02 15:04"))
			}
			return w.Flush()
		},
	}
}

func newCorpusRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm NAME",
		Aliases: []string{"remove"},
		Short:   "Remove a stored corpus",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := a.openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			err = store.Remove(cmd.Context(), args[0])
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("corpus '%s' not found", args[0])
			}
			return err
		},
	}
}
