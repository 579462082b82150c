package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/memes-izprime/izprime/internal/search"
)

const (
	DEFAULT_BITS    = 2048
	DEFAULT_WORKERS = 4
)

var (
	searchBits    int
	searchWorkers int
	searchClass   int
	searchCmd     = &cobra.Command{
		Use:   "search",
		Short: "Search for a random prime of a given bit size",
		Long:  "Races multiple goroutines running the vertical iZ search, each starting from an independent random coordinate, and returns the first prime found of the requested residue class.",
		RunE:  runSearch,
	}
)

func init() {
	searchCmd.Flags().IntVarP(&searchBits, "bits", "b", DEFAULT_BITS, "Approximate bit size of the prime to find")
	searchCmd.Flags().IntVarP(&searchWorkers, "workers", "w", DEFAULT_WORKERS, "Number of goroutines to race")
	searchCmd.Flags().IntVarP(&searchClass, "class", "c", 1, "iZ residue class to search: 1 or -1")
	_ = viper.BindPFlag("search.bits", searchCmd.Flags().Lookup("bits"))
	_ = viper.BindPFlag("search.workers", searchCmd.Flags().Lookup("workers"))
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchClass != 1 && searchClass != -1 {
		return fmt.Errorf("class must be 1 or -1, got %d", searchClass)
	}

	logger := logger.With(
		zap.Int("bits", searchBits),
		zap.Int("workers", searchWorkers),
		zap.Int("class", searchClass),
	)
	logger.Debug("Running search")

	p, err := search.Random(context.Background(), searchClass, searchBits, searchWorkers)
	if err != nil {
		logger.Error("Error searching for prime", zap.Error(err))
		return err
	}
	fmt.Printf("%s\n", p.String())
	logger.Debug("Search complete", zap.Int("bitlen", p.BitLen()))
	return nil
}
