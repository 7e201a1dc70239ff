package cmd

import (
	"sort"

	"github.com/mj1618/storeshots/internal/output"
	"github.com/mj1618/storeshots/internal/platform/sim"
	"github.com/spf13/cobra"
)

// StatesResult is the output of the states command.
type StatesResult struct {
	Name        string     `yaml:"name"        json:"name"`
	Initial     sim.State  `yaml:"initial"     json:"initial"`
	Screens     []string   `yaml:"screens"     json:"screens"`
	Transitions []sim.Edge `yaml:"transitions" json:"transitions"`
}

var statesCmd = &cobra.Command{
	Use:   "states",
	Short: "Show the simulated application's screens and transitions",
	Long: `Print the screen state machine of the sim backend: every screen and the
taps that move between them. Taps without a listed transition keep the
current screen.`,
	RunE: runStates,
}

func init() {
	rootCmd.AddCommand(statesCmd)
	statesCmd.Flags().String("app-model", "", "YAML screen model (default: built-in model)")
}

func runStates(cmd *cobra.Command, args []string) error {
	m := sim.DefaultModel()
	if path, _ := cmd.Flags().GetString("app-model"); path != "" {
		var err error
		if m, err = sim.LoadModel(path); err != nil {
			return err
		}
	}
	return output.Print(statesResult(m))
}

func statesResult(m *sim.Model) StatesResult {
	screens := make([]string, 0, len(m.Screens))
	for s := range m.Screens {
		screens = append(screens, string(s))
	}
	sort.Strings(screens)
	return StatesResult{
		Name:        m.Name,
		Initial:     m.Initial,
		Screens:     screens,
		Transitions: m.Edges(),
	}
}
