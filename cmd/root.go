package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mj1618/storeshots/internal/logging"
	"github.com/mj1618/storeshots/internal/output"
	"github.com/mj1618/storeshots/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "storeshots",
	Short: "Capture store-listing screenshots from a scripted walkthrough",
	Long: `Launch an application, walk it through a fixed script of button taps and
capture a labelled screenshot at each checkpoint, for store-listing automation.`,
	SilenceUsage: true,
}

// logger is configured by the root command's --log-level and --log-format flags.
var logger = slog.Default()

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().String("format", "yaml", "Output format: yaml, json")
	rootCmd.PersistentFlags().Bool("pretty", false, "Pretty-print JSON output")
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format: text, json")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		format, _ := rootCmd.PersistentFlags().GetString("format")
		f, err := output.ParseFormat(format)
		if err != nil {
			return err
		}
		output.OutputFormat = f
		output.PrettyOutput, _ = rootCmd.PersistentFlags().GetBool("pretty")

		level, _ := rootCmd.PersistentFlags().GetString("log-level")
		logFormat, _ := rootCmd.PersistentFlags().GetString("log-format")
		l, err := logging.New(os.Stderr, level, logFormat)
		if err != nil {
			return err
		}
		logger = l
		return nil
	}
}
