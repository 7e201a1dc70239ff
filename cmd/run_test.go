package cmd

import (
	"testing"

	"github.com/spf13/cobra"
)

func TestRunCommand_Flags(t *testing.T) {
	flags := runCmd.Flags()

	tests := []struct {
		name     string
		flagType string
	}{
		{"backend", "string"},
		{"device", "string"},
		{"output-dir", "string"},
		{"clear", "bool"},
		{"scale", "float64"},
		{"url", "string"},
		{"headless", "bool"},
		{"app-model", "string"},
		{"width", "int"},
		{"height", "int"},
		{"timeout", "int"},
		{"script", "string"},
	}

	for _, tt := range tests {
		f := flags.Lookup(tt.name)
		if f == nil {
			t.Errorf("expected flag %q not found", tt.name)
			continue
		}
		if f.Value.Type() != tt.flagType {
			t.Errorf("flag %q: expected type %q, got %q", tt.name, tt.flagType, f.Value.Type())
		}
	}
}

func newRunFlagsCmd(t *testing.T, set map[string]string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{Use: "run"}
	addRunFlags(c)
	for k, v := range set {
		if err := c.Flags().Set(k, v); err != nil {
			t.Fatalf("set %s: %v", k, err)
		}
	}
	return c
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig(newRunFlagsCmd(t, nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Backend != "sim" {
		t.Errorf("expected backend sim, got %q", cfg.Backend)
	}
	if cfg.OutputDir != "screenshots" {
		t.Errorf("expected output dir screenshots, got %q", cfg.OutputDir)
	}
	if cfg.Viewport.Width != 414 || cfg.Viewport.Height != 896 {
		t.Errorf("expected default viewport, got %+v", cfg.Viewport)
	}
}

func TestLoadConfig_FlagsOverride(t *testing.T) {
	cfg, err := loadConfig(newRunFlagsCmd(t, map[string]string{
		"device":     "iPhone 8",
		"output-dir": "out",
		"clear":      "true",
		"scale":      "0.5",
		"width":      "375",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Device != "iPhone 8" {
		t.Errorf("expected device iPhone 8, got %q", cfg.Device)
	}
	if cfg.OutputDir != "out" {
		t.Errorf("expected output dir out, got %q", cfg.OutputDir)
	}
	if !cfg.ClearPrevious {
		t.Error("expected clear_previous")
	}
	if cfg.Scale != 0.5 {
		t.Errorf("expected scale 0.5, got %g", cfg.Scale)
	}
	if cfg.Viewport.Width != 375 || cfg.Viewport.Height != 896 {
		t.Errorf("expected only width overridden, got %+v", cfg.Viewport)
	}
}

func TestLoadConfig_InvalidScale(t *testing.T) {
	if _, err := loadConfig(newRunFlagsCmd(t, map[string]string{"scale": "2"})); err == nil {
		t.Error("expected error for scale > 1")
	}
}
