package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"btreeidx/internal/bufmgr"
	"btreeidx/internal/config"
	"btreeidx/internal/logger"
)

var (
	homeFlag string

	cfg    *config.Config
	log    *logger.Logger
	bufMgr *bufmgr.Manager
)

var rootCmd = &cobra.Command{
	Use:   "btreeidx",
	Short: "Build, inspect and scan disk-resident B+ tree secondary indexes",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(homeFlag)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		level, err := logger.ParseLevel(cfg.LogLevel)
		if err != nil {
			return err
		}
		log = logger.New(os.Stderr, level)
		bufMgr = bufmgr.New(cfg.BufferPoolSize, log)
		return nil
	},
}

// Execute runs the CLI, printing any returned error and exiting
// non-zero.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&homeFlag, "home", "", "override BTREEIDX_HOME")
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(dumpCmd)
}
