package main

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/yourusername/run-expectancy/internal/models"
	"github.com/yourusername/run-expectancy/internal/outcome"
)

var (
	samplePlayer string
	sampleCount  int
	sampleSeed   int64
)

func init() {
	sampleCmd.Flags().StringVarP(&samplePlayer, "player", "p", "", "Player to sample (defaults to the first configured player)")
	sampleCmd.Flags().IntVarP(&sampleCount, "count", "n", 20, "Number of outcomes to draw")
	sampleCmd.Flags().Int64Var(&sampleSeed, "seed", 0, "Random seed (0 picks a time-based seed)")
}

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Draw plate appearance outcomes for a player",
	RunE: func(cmd *cobra.Command, args []string) error {
		if sampleCount <= 0 {
			return fmt.Errorf("%w: count must be positive, got %d", models.ErrInvalidTrialCount, sampleCount)
		}
		player := cfg.Players[0]
		if samplePlayer != "" {
			var err error
			if player, err = cfg.Player(samplePlayer); err != nil {
				return err
			}
		}

		weights, err := outcome.FromStatistics(player.Stats)
		if err != nil {
			return err
		}
		dist, err := outcome.NewDistribution(weights)
		if err != nil {
			return err
		}

		seed := sampleSeed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng := rand.New(rand.NewSource(seed))

		codes := make([]string, sampleCount)
		var tally [models.OutcomeCount]int
		for i := range codes {
			o := dist.Sample(rng)
			codes[i] = o.String()
			tally[o]++
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s (seed %d)\n", player.Name, seed)
		fmt.Fprintln(out, strings.Join(codes, " "))
		for _, o := range models.AllOutcomes {
			fmt.Fprintf(out, "%-4s %6d  expected %.3f\n", o, tally[o], weights.Probability(o)*float64(sampleCount))
		}
		return nil
	},
}
