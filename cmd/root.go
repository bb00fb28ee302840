package cmd

import (
	"fmt"
	"os"

	"node-manager/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "node-manager",
	Short: "Manage and reconcile GPU node inventory records",
	Long: `Node Manager keeps declarative YAML node records in sync with the
central etcd-backed inventory store. It can push records to the store,
fetch the stored document for a single host, validate a whole manifest
against what the store holds, and serve the inventory over HTTP.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		cfg := &logger.Config{Level: "debug", Format: "console"}
		if l, lerr := logger.New(cfg); lerr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

func init() {
}
