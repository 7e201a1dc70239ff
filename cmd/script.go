package cmd

import (
	"fmt"

	"github.com/mj1618/storeshots/internal/config"
	"github.com/mj1618/storeshots/internal/walkthrough"
	"github.com/spf13/cobra"
)

var scriptCmd = &cobra.Command{
	Use:   "script",
	Short: "Print the walkthrough script as YAML",
	Long: `Print the script a run would execute: the one from --script or the config
file, or the built-in default. The output can be edited and passed back with
'storeshots run --script'.`,
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(scriptCmd)
	scriptCmd.Flags().String("script", "", "YAML walkthrough script to validate and print")
}

func runScript(cmd *cobra.Command, args []string) error {
	path, _ := rootCmd.PersistentFlags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("script") {
		cfg.ScriptFile, _ = cmd.Flags().GetString("script")
		cfg.Script = nil
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	script, err := cfg.ResolveScript()
	if err != nil {
		return err
	}
	data, err := walkthrough.MarshalScript(script)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), string(data))
	return err
}
