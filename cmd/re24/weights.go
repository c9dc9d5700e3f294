package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yourusername/run-expectancy/internal/models"
	"github.com/yourusername/run-expectancy/internal/outcome"
)

var weightsCmd = &cobra.Command{
	Use:   "weights",
	Short: "Show the outcome weights derived for each configured player",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, p := range cfg.Players {
			w, err := outcome.FromStatistics(p.Stats)
			if err != nil {
				return fmt.Errorf("player %s: %w", p.Name, err)
			}
			fmt.Fprintf(out, "%s (total %d)\n", p.Name, w.Total())
			for _, o := range models.AllOutcomes {
				fmt.Fprintf(out, "  %-4s %6d  %.4f\n", o, w.Get(o), w.Probability(o))
			}
		}
		return nil
	},
}
