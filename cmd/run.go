package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/mj1618/storeshots/internal/config"
	"github.com/mj1618/storeshots/internal/output"
	"github.com/mj1618/storeshots/internal/runner"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the walkthrough and capture snapshots",
	Long: `Launch the application, run the walkthrough script and write one PNG per
capture step to the output directory, plus a manifest.yaml.

The default script is:
  - capture: Mainscreen
  - tap: 0
  - capture: View A
  - tap: 0
  - tap: 1
  - capture: View B

Each tap queries the buttons currently on screen and taps the one at the
given index. The run stops at the first step that fails.

Examples:
  storeshots run
  storeshots run --device "iPhone 8" --output-dir fastlane/screenshots
  storeshots run --backend web --url http://localhost:3000 --clear
  storeshots run --backend sim --app-model app.yaml --script walkthrough.yaml`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	addRunFlags(runCmd)
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().String("backend", "sim", "Application backend: sim, web")
	cmd.Flags().String("device", "", "Device name used as the snapshot file prefix")
	cmd.Flags().String("output-dir", "screenshots", "Directory for snapshots and manifest")
	cmd.Flags().Bool("clear", false, "Remove previous snapshots from the output directory first")
	cmd.Flags().Float64("scale", 1, "Downscale snapshots by this factor (0.1-1.0)")
	cmd.Flags().String("url", "", "Page to open (web backend)")
	cmd.Flags().Bool("headless", true, "Run the browser headless (web backend)")
	cmd.Flags().String("app-model", "", "YAML screen model (sim backend)")
	cmd.Flags().Int("width", 0, "Viewport width in pixels")
	cmd.Flags().Int("height", 0, "Viewport height in pixels")
	cmd.Flags().Int("timeout", 0, "Per-interaction timeout in milliseconds (0 = backend default)")
	cmd.Flags().String("script", "", "YAML walkthrough script (default: built-in script)")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, runErr := runner.Run(ctx, cfg, logger)
	if err := output.Print(result); err != nil {
		return err
	}
	return runErr
}

// loadConfig reads --config and applies every run flag the user set.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := rootCmd.PersistentFlags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("backend") {
		cfg.Backend, _ = flags.GetString("backend")
	}
	if flags.Changed("device") {
		cfg.Device, _ = flags.GetString("device")
	}
	if flags.Changed("output-dir") {
		cfg.OutputDir, _ = flags.GetString("output-dir")
	}
	if flags.Changed("clear") {
		cfg.ClearPrevious, _ = flags.GetBool("clear")
	}
	if flags.Changed("scale") {
		cfg.Scale, _ = flags.GetFloat64("scale")
	}
	if flags.Changed("url") {
		cfg.URL, _ = flags.GetString("url")
	}
	if flags.Changed("headless") {
		cfg.Headless, _ = flags.GetBool("headless")
	}
	if flags.Changed("app-model") {
		cfg.AppModel, _ = flags.GetString("app-model")
	}
	if flags.Changed("width") {
		cfg.Viewport.Width, _ = flags.GetInt("width")
	}
	if flags.Changed("height") {
		cfg.Viewport.Height, _ = flags.GetInt("height")
	}
	if flags.Changed("timeout") {
		cfg.TimeoutMs, _ = flags.GetInt("timeout")
	}
	if flags.Changed("script") {
		cfg.ScriptFile, _ = flags.GetString("script")
		cfg.Script = nil
	}
	return cfg, cfg.Validate()
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
