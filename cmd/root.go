package cmd

import (
	"fmt"
	"os"

	"schemadiff/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "schemadiff",
	Short: "Structural diff for schema object graphs",
	Long: `schemadiff compares object graphs such as captured database schemas
and reports the minimal set of edits between them. It runs as a CLI or as
an HTTP service with snapshot storage on S3 compatible backends.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format with development timestamps for CLI users
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
