package main

import (
	"log"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/memes-izprime/izprime"
	"github.com/memes-izprime/izprime/internal/basesegment"
	"github.com/memes-izprime/izprime/internal/bitarray"
	"github.com/memes-izprime/izprime/internal/nextprime"
	"github.com/memes-izprime/izprime/internal/search"
	"github.com/memes-izprime/izprime/internal/sieve"
	"github.com/memes-izprime/izprime/internal/store"
	"github.com/memes-izprime/izprime/internal/vxkernel"
)

// outputDir is the relative directory every result file is written under.
const outputDir = "output"

// resultPath creates outputDir, if it does not already exist, and joins
// name onto it. Every CLI command that writes a result file goes through
// this before calling into internal/store.
func resultPath(name string) (string, error) {
	if err := store.EnsureOutputDir(outputDir); err != nil {
		return "", err
	}
	return filepath.Join(outputDir, name), nil
}

const (
	APP_NAME = "izprime"
)

var (
	logger  *zap.Logger = zap.NewNop()
	verbose bool
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   APP_NAME,
		Short: "Generate and verify primes using the iZ residue decomposition",
		Long:  "izprime sieves, segments and searches for primes using the 6x+/-1 residue decomposition of the integers, including a gap-encoded VX kernel sized for cryptographic ranges.",
	}
)

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			log.Fatal("Error locating home dir", err)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName("." + APP_NAME)
	}
	viper.SetEnvPrefix(APP_NAME)
	viper.AutomaticEnv()
	err := viper.ReadInConfig()
	if verbose {
		logger, _ = zap.NewDevelopment()
	} else {
		logger, _ = zap.NewProduction()
	}
	if logger == nil {
		log.Fatal("Error creating logger", err)
	}
	izprime.SetLogger(logger)
	bitarray.SetLogger(logger)
	basesegment.SetLogger(logger)
	sieve.SetLogger(logger)
	vxkernel.SetLogger(logger)
	nextprime.SetLogger(logger)
	search.SetLogger(logger)
	store.SetLogger(logger)
	if err == nil {
		return
	}
	switch t := err.(type) {
	case viper.ConfigFileNotFoundError:
		logger.Debug("Error reading configuration file",
			zap.Error(t),
		)

	default:
		logger.Error("Error reading configuration file",
			zap.Error(t),
		)
	}
}
