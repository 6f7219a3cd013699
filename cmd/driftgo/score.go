package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hupe1980/driftgo"
	"github.com/hupe1980/driftgo/evaluate"
	"github.com/hupe1980/driftgo/store"
)

func NewScoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "score",
		Short: "Score semantic change for the configured target words",
		Long:  `Loads both corpus representation stores, runs the configured scoring operations and writes one CSV per operation. With a gold file configured, also reports Spearman correlations per column.`,
		Args:  cobra.NoArgs,
		RunE:  runScore,
	}
}

func runScore(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	logger := newLogger(cmd)

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	bs, err := openStore(ctx, cfg.Store)
	if err != nil {
		return err
	}

	corpus1, err := store.Load(ctx, bs, cfg.Corpus1)
	if err != nil {
		return err
	}
	corpus2, err := store.Load(ctx, bs, cfg.Corpus2)
	if err != nil {
		return err
	}
	targets, err := store.ReadTargets(ctx, bs, cfg.Targets)
	if err != nil {
		return err
	}

	opts, err := cfg.ScorerOptions()
	if err != nil {
		return err
	}
	opts = append(opts, driftgo.WithLogger(logger))
	scorer := driftgo.NewScorer(corpus1, corpus2, opts...)

	var gold map[string]float64
	if cfg.Gold != "" {
		rc, err := bs.Open(ctx, cfg.Gold)
		if err != nil {
			return err
		}
		gold, err = evaluate.LoadGold(rc)
		rc.Close()
		if err != nil {
			return err
		}
	}

	ops := cfg.Scoring.Operations
	if len(ops) == 0 {
		ops = []string{"apd"}
	}
	for _, op := range ops {
		table, err := runOperation(ctx, scorer, corpus1, op, targets)
		if err != nil {
			return err
		}

		out := outputName(cfg.Output, op, len(ops) > 1)
		if err := writeTable(table, out); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d words scored, %d failed -> %s\n",
			op, table.Len(), len(table.Failures), out)

		if gold != nil {
			reportSpearman(cmd, table, op, gold)
		}
	}
	return nil
}

func runOperation(ctx context.Context, scorer *driftgo.Scorer, corpus1 store.Reps, op string, targets []string) (*driftgo.Table, error) {
	switch op {
	case "apd":
		return scorer.ScoreAPD(ctx, targets)
	case "clusters":
		return scorer.ScoreClusters(ctx, targets)
	case "combined":
		return scorer.ScoreCombinedAPD(ctx, targets)
	case "within":
		return scorer.ScoreWithinCorpus(ctx, corpus1, targets)
	default:
		return nil, fmt.Errorf("unknown scoring operation %q", op)
	}
}

// outputName derives a per-operation file name when several
// operations share one configured output.
func outputName(output, op string, multi bool) string {
	if output == "" {
		output = "scores.csv"
	}
	if !multi {
		return output
	}
	ext := filepath.Ext(output)
	return strings.TrimSuffix(output, ext) + "_" + op + ext
}

func writeTable(table *driftgo.Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := table.WriteCSV(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func reportSpearman(cmd *cobra.Command, table *driftgo.Table, op string, gold map[string]float64) {
	for _, col := range table.Columns() {
		rho, err := evaluate.Spearman(table, col, gold)
		if err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s: spearman unavailable: %v\n", op, col, err)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s: spearman %.3f\n", op, col, rho)
	}
}
