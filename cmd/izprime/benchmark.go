package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/memes-izprime/izprime/internal/sieve"
)

const DEFAULT_BENCHMARK_N = 10_000_000

var (
	benchmarkN   uint64
	benchmarkCmd = &cobra.Command{
		Use:   "benchmark",
		Short: "Time SieveIZ against SieveIZm over the same range",
		Long:  "Runs both the classic and segmented sieves over [5, n] and reports the elapsed time and prime count for each, so the segmented sieve's memory/speed tradeoff can be compared directly.",
		RunE:  runBenchmark,
	}
)

func init() {
	benchmarkCmd.Flags().Uint64VarP(&benchmarkN, "limit", "n", DEFAULT_BENCHMARK_N, "Upper bound of the range to sieve")
	rootCmd.AddCommand(benchmarkCmd)
}

func runBenchmark(cmd *cobra.Command, args []string) error {
	logger := logger.With(zap.Uint64("n", benchmarkN))
	logger.Debug("Running benchmark")

	start := time.Now()
	classic, err := sieve.SieveIZ(benchmarkN)
	if err != nil {
		return err
	}
	classicElapsed := time.Since(start)

	start = time.Now()
	segmented, err := sieve.SieveIZm(benchmarkN)
	if err != nil {
		return err
	}
	segmentedElapsed := time.Since(start)

	fmt.Printf("SieveIZ:  %d primes in %s\n", len(classic), classicElapsed)
	fmt.Printf("SieveIZm: %d primes in %s\n", len(segmented), segmentedElapsed)
	if len(classic) != len(segmented) {
		logger.Warn("Sieve implementations disagree on prime count",
			zap.Int("classic", len(classic)),
			zap.Int("segmented", len(segmented)),
		)
	}
	return nil
}
