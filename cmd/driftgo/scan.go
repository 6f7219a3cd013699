package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hupe1980/driftgo/cluster"
	"github.com/hupe1980/driftgo/store"
)

func NewScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Run a DBSCAN parameter grid for one target word",
		Long:  `Stacks one word's period samples and evaluates a DBSCAN (eps, min-points) grid, printing silhouette, cluster count and noise fraction per cell. No configuration is selected automatically.`,
		Args:  cobra.NoArgs,
		RunE:  runScan,
	}

	cmd.Flags().String("word", "", "Target word to scan (required)")
	cmd.Flags().Float64Slice("eps", []float64{0.5, 1, 2, 5, 10}, "Neighborhood radii to evaluate")
	cmd.Flags().IntSlice("min-points", []int{3, 5, 10}, "Core-point thresholds to evaluate")
	_ = cmd.MarkFlagRequired("word")

	return cmd
}

func runScan(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	word, _ := cmd.Flags().GetString("word")
	epsilons, _ := cmd.Flags().GetFloat64Slice("eps")
	minPoints, _ := cmd.Flags().GetIntSlice("min-points")

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

	u1, ok := corpus1.Lookup(word)
	if !ok {
		return fmt.Errorf("word %q missing from corpus 1", word)
	}
	u2, ok := corpus2.Lookup(word)
	if !ok {
		return fmt.Errorf("word %q missing from corpus 2", word)
	}

	X := make([][]float64, 0, len(u1)+len(u2))
	X = append(X, u1...)
	X = append(X, u2...)

	results, err := cluster.GridSearchDBSCAN(X, epsilons, minPoints)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "eps\tmin_points\tsilhouette\tclusters\tnoise_frac\tdim")
	for _, r := range results {
		fmt.Fprintf(w, "%g\t%d\t%.4f\t%d\t%.3f\t%d\n",
			r.Eps, r.MinPoints, r.Silhouette, r.Clusters, r.NoiseFrac, r.Dim)
	}
	return w.Flush()
}
