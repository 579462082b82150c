package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/memes-izprime/izprime/internal/sieve"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <vx>",
	Short: "Report candidate and constellation density over a base segment",
	Long:  "Builds the pre-sieved base segment of size vx and reports how many iZm5/iZm7 candidates survive, and how many twin, cousin and sexy prime constellations they form.",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	vx, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("parsing vx: %w", err)
	}

	logger := logger.With(zap.Uint64("vx", vx))
	logger.Debug("Running analyze")

	stats := sieve.AnalyzePrimeSpace(vx)
	fmt.Printf("vx=%d\n", stats.VX)
	fmt.Printf("iZm5 candidates: %d\n", stats.IZm5Count)
	fmt.Printf("iZm7 candidates: %d\n", stats.IZm7Count)
	fmt.Printf("total candidates: %d\n", stats.PrimesCount)
	fmt.Printf("twin constellations:   %d\n", stats.TwinCount)
	fmt.Printf("cousin constellations: %d\n", stats.CousinCount)
	fmt.Printf("sexy constellations:   %d\n", stats.SexyCount)
	return nil
}
