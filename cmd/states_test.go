package cmd

import (
	"testing"

	"github.com/mj1618/storeshots/internal/platform/sim"
)

func TestStatesResult_DefaultModel(t *testing.T) {
	r := statesResult(sim.DefaultModel())

	if r.Initial != sim.Main {
		t.Errorf("expected initial Main, got %q", r.Initial)
	}
	want := []string{"Main", "ScreenA", "ScreenB"}
	if len(r.Screens) != len(want) {
		t.Fatalf("expected %d screens, got %v", len(want), r.Screens)
	}
	for i, s := range want {
		if r.Screens[i] != s {
			t.Errorf("screen %d: expected %q, got %q", i, s, r.Screens[i])
		}
	}
	if len(r.Transitions) != 3 {
		t.Fatalf("expected 3 transitions, got %d", len(r.Transitions))
	}
	last := r.Transitions[2]
	if last.From != sim.ScreenA || last.Index != 1 || last.To != sim.ScreenB {
		t.Errorf("unexpected last transition: %s", last)
	}
}

func TestStatesCommand_IsRegistered(t *testing.T) {
	for _, c := range rootCmd.Commands() {
		if c.Name() == "states" {
			if c.Flags().Lookup("app-model") == nil {
				t.Error("states command missing --app-model flag")
			}
			return
		}
	}
	t.Error("states command not registered on root")
}
