package main

import (
	"fmt"
	"math/big"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/memes-izprime/izprime/internal/nextprime"
)

var (
	nextPrimeBackward bool
	nextPrimeCmd      = &cobra.Command{
		Use:   "nextprime <base>",
		Short: "Find the nearest iZ-form prime to base",
		Long:  "Walks forward (or, with --backward, backward) from base through pre-sieved VX-sized segments to the nearest prime.",
		Args:  cobra.ExactArgs(1),
		RunE:  runNextPrime,
	}
)

func init() {
	nextPrimeCmd.Flags().BoolVarP(&nextPrimeBackward, "backward", "b", false, "Search backward from base instead of forward")
	rootCmd.AddCommand(nextPrimeCmd)
}

func runNextPrime(cmd *cobra.Command, args []string) error {
	base, ok := new(big.Int).SetString(args[0], 10)
	if !ok {
		return fmt.Errorf("invalid base: %q", args[0])
	}

	logger := logger.With(
		zap.String("base", base.String()),
		zap.Bool("backward", nextPrimeBackward),
	)
	logger.Debug("Running nextprime")

	p, err := nextprime.Next(base, !nextPrimeBackward)
	if err != nil {
		logger.Error("Error finding next prime", zap.Error(err))
		return err
	}
	fmt.Printf("%s\n", p.String())
	return nil
}
