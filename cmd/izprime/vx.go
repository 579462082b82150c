package main

import (
	"fmt"
	"math/big"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/memes-izprime/izprime/internal/store"
	"github.com/memes-izprime/izprime/internal/vxkernel"
)

var (
	vxSize  uint64
	vxRange int
	vxOut   string
	vxCmd   = &cobra.Command{
		Use:   "vx <y>",
		Short: "Sieve one or more VX-kernel segments at offset y",
		Long:  "Runs the gap-encoded Sieve-VX kernel over the segment (or --range consecutive segments) starting at offset y, reusing a single set of root-prime assets across all of them.",
		Args:  cobra.ExactArgs(1),
		RunE:  runVX,
	}
)

func init() {
	vxCmd.Flags().Uint64Var(&vxSize, "vx", 5*7*11*13*17*19, "Segment size, a product of small primes")
	vxCmd.Flags().IntVar(&vxRange, "range", 1, "Number of consecutive segments to sieve starting at y")
	vxCmd.Flags().StringVarP(&vxOut, "out", "o", "", "Write the resulting gap list(s) to this file under output/ (a numeric suffix is appended per segment when --range > 1)")
	_ = viper.BindPFlag("vx.size", vxCmd.Flags().Lookup("vx"))
	rootCmd.AddCommand(vxCmd)
}

func runVX(cmd *cobra.Command, args []string) error {
	y, ok := new(big.Int).SetString(args[0], 10)
	if !ok {
		return fmt.Errorf("invalid y: %q", args[0])
	}

	logger := logger.With(
		zap.Uint64("vx", vxSize),
		zap.String("y", y.String()),
		zap.Int("range", vxRange),
	)
	logger.Debug("Running vx kernel")

	assets, err := vxkernel.NewAssets(vxSize)
	if err != nil {
		logger.Error("Error building assets", zap.Error(err))
		return err
	}

	gapLists, err := vxkernel.SieveRange(vxSize, y, vxRange, assets)
	if err != nil {
		logger.Error("Error sieving range", zap.Error(err))
		return err
	}

	for i, gl := range gapLists {
		fmt.Printf("segment %d: %d gaps, %d bit ops, %d primality tests\n", i, len(gl.Gaps), gl.BitOps, gl.PTestOps)
		if vxOut == "" {
			continue
		}
		name := vxOut
		if vxRange > 1 {
			name = fmt.Sprintf("%s.%d", vxOut, i)
		}
		path, err := resultPath(name)
		if err != nil {
			logger.Error("Error creating output directory", zap.Error(err))
			return err
		}
		if err := store.WriteGapList(path, gl); err != nil {
			logger.Error("Error writing gap list", zap.Error(err), zap.Int("segment", i))
			return err
		}
		fmt.Printf("  wrote %s\n", path)
	}
	return nil
}
