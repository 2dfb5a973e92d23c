package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/CTAG07/charkov/pkg/corpus"
	"github.com/CTAG07/charkov/pkg/markov"
)

// corpusFlags selects where training text comes from: a file or a corpus
// stored in the database.
type corpusFlags struct {
	file string
	name string
}

func (f *corpusFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.file, "file", "", "train on the text of this file")
	cmd.Flags().StringVar(&f.name, "corpus", "", "train on a stored corpus")
	cmd.MarkFlagsMutuallyExclusive("file", "corpus")
	cmd.MarkFlagsOneRequired("file", "corpus")
}

// loadCorpus returns a label for the corpus and its full text.
func (a *app) loadCorpus(ctx context.Context, f corpusFlags) (string, string, error) {
	if f.file != "" {
		text, err := corpus.ReadFile(f.file)
		if err != nil {
			return "", "", err
		}
		return f.file, text, nil
	}

	store, closeStore, err := a.openStore()
	if err != nil {
		return "", "", err
	}
	defer closeStore()

	text, err := store.Get(ctx, f.name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", "", fmt.Errorf("corpus '%s' not found", f.name)
	}
	if err != nil {
		return "", "", fmt.Errorf("failed to load corpus '%s': %w", f.name, err)
	}
	return f.name, text, nil
}

// generateParams is everything one generation run needs.
type generateParams struct {
	windowLength int
	length       int
	seedText     string
	randomSeed   *int64 // nil selects an entropy-seeded source
	corpusLabel  string
	text         string
}

// trainModel builds and trains a model for p.
func (a *app) trainModel(p generateParams) (*markov.Model, error) {
	var opts []markov.Option
	if p.randomSeed != nil {
		opts = append(opts, markov.WithSeed(*p.randomSeed))
	}
	m, err := markov.NewModel(p.windowLength, opts...)
	if err != nil {
		return nil, fmt.Errorf("invalid window length %d: %w", p.windowLength, err)
	}
	m.SetLogger(a.logger)
	if err = m.Train(p.text); err != nil {
		return nil, fmt.Errorf("failed to train on '%s': %w", p.corpusLabel, err)
	}
	return m, nil
}

// runGeneration trains a model, generates from it and records the run when
// history is enabled. A failure to record is logged, not returned.
func (a *app) runGeneration(ctx context.Context, p generateParams) (string, error) {
	m, err := a.trainModel(p)
	if err != nil {
		return "", err
	}
	output, err := m.Generate(p.seedText, p.length)
	if err != nil {
		return "", fmt.Errorf("invalid length %d: %w", p.length, err)
	}

	if a.config.RecordHistory {
		if err := a.recordGeneration(ctx, p, output); err != nil {
			a.logger.WarnContext(ctx, "Failed to record generation", "error", err)
		}
	}
	return output, nil
}

func (a *app) recordGeneration(ctx context.Context, p generateParams, output string) error {
	store, closeStore, err := a.openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	return store.RecordGeneration(ctx, corpus.Generation{
		CorpusLabel:  p.corpusLabel,
		WindowLength: p.windowLength,
		RandomSeed:   p.randomSeed,
		SeedText:     p.seedText,
		TargetLength: p.length,
		Output:       output,
	})
}

func newGenerateCmd(a *app) *cobra.Command {
	var (
		source     corpusFlags
		window     int
		length     int
		seedText   string
		random     bool
		randomSeed int64
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Train on a corpus and extend a seed text",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			applyIntConfig(cmd, "window", &window, a.config.WindowLength)
			applyIntConfig(cmd, "length", &length, a.config.Length)

			p := generateParams{
				windowLength: window,
				length:       length,
				seedText:     seedText,
			}
			if !random {
				seed := a.config.FixedSeed
				if cmd.Flags().Changed("rand-seed") {
					seed = randomSeed
				}
				p.randomSeed = &seed
			}

			var err error
			p.corpusLabel, p.text, err = a.loadCorpus(cmd.Context(), source)
			if err != nil {
				return err
			}

			output, err := a.runGeneration(cmd.Context(), p)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), output)
			return err
		},
	}

	source.register(cmd)
	cmd.Flags().IntVar(&window, "window", 0, "window length in characters (default from config)")
	cmd.Flags().IntVar(&length, "length", 0, "number of characters to generate (default from config)")
	cmd.Flags().StringVar(&seedText, "seed-text", "", "initial text to extend")
	cmd.Flags().BoolVar(&random, "random", false, "draw from an entropy-seeded source instead of a fixed seed")
	cmd.Flags().Int64Var(&randomSeed, "rand-seed", 0, "seed for the random source (default from config)")
	cmd.MarkFlagsMutuallyExclusive("random", "rand-seed")
	_ = cmd.MarkFlagRequired("seed-text")

	return cmd
}

// newLegacyCmd accepts the positional argument order of the original
// language-model program: WINDOW TEXT LENGTH random|fixed FILE.
func newLegacyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "legacy WINDOW TEXT LENGTH random|fixed FILE",
		Short: "Generate using positional arguments",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			window, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid window length '%s': %w", args[0], err)
			}
			length, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid length '%s': %w", args[2], err)
			}

			p := generateParams{
				windowLength: window,
				length:       length,
				seedText:     args[1],
			}
			switch args[3] {
			case "random":
			case "fixed":
				seed := a.config.FixedSeed
				p.randomSeed = &seed
			default:
				return fmt.Errorf("mode must be 'random' or 'fixed', got '%s'", args[3])
			}

			p.corpusLabel, p.text, err = a.loadCorpus(cmd.Context(), corpusFlags{file: args[4]})
			if err != nil {
				return err
			}

			output, err := a.runGeneration(cmd.Context(), p)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), output)
			return err
		},
	}
}

// applyIntConfig fills target from the config unless the flag was given.
func applyIntConfig(cmd *cobra.Command, name string, target *int, value int) {
	if cmd.Flags().Changed(name) {
		return
	}
	*target = value
}
