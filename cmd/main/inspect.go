package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInspectCmd(a *app) *cobra.Command {
	var (
		source corpusFlags
		window int
	)

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Train on a corpus and print every window's frequency table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			applyIntConfig(cmd, "window", &window, a.config.WindowLength)

			label, text, err := a.loadCorpus(cmd.Context(), source)
			if err != nil {
				return err
			}
			seed := a.config.FixedSeed
			m, err := a.trainModel(generateParams{windowLength: window, randomSeed: &seed, corpusLabel: label, text: text})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if _, err = fmt.Fprint(out, m); err != nil {
				return err
			}
			s := m.Stats()
			_, err = fmt.Fprintf(out, "# windows=%d observations=%d distinct_chars=%d max_fanout=%d\n",
				s.Windows, s.Observations, s.DistinctChars, s.MaxFanout)
			return err
		},
	}

	source.register(cmd)
	cmd.Flags().IntVar(&window, "window", 0, "window length in characters (default from config)")

	return cmd
}
