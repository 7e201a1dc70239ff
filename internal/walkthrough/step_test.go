package walkthrough

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultScript(t *testing.T) {
	script := DefaultScript()
	want := []string{`capture "Mainscreen"`, "tap 0", `capture "View A"`, "tap 0", "tap 1", `capture "View B"`}
	if len(script) != len(want) {
		t.Fatalf("expected %d steps, got %d", len(want), len(script))
	}
	for i, s := range script {
		if s.String() != want[i] {
			t.Errorf("step %d: got %s, want %s", i+1, s, want[i])
		}
	}
	if err := Validate(script); err != nil {
		t.Errorf("default script should be valid: %v", err)
	}
}

func TestParseScript(t *testing.T) {
	script, err := ParseScript([]byte(`
- capture: Mainscreen
- tap: 0
- capture: "View A"
- tap: 2
`))
	if err != nil {
		t.Fatal(err)
	}
	want := []Step{Capture("Mainscreen"), Tap(0), Capture("View A"), Tap(2)}
	if len(script) != len(want) {
		t.Fatalf("expected %d steps, got %d", len(want), len(script))
	}
	for i := range want {
		if script[i] != want[i] {
			t.Errorf("step %d: got %+v, want %+v", i+1, script[i], want[i])
		}
	}
}

func TestParseScript_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"empty", "[]", "no steps"},
		{"unknown", "- swipe: left", "unknown step type"},
		{"two keys", "- {capture: A, tap: 0}", "exactly one action key"},
		{"bad index", "- tap: first", "tap index"},
		{"negative", "- tap: -1", "must not be negative"},
		{"blank label", `- capture: ""`, "needs a label"},
		{"not a list", "capture: A", "parse script"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScript([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestMarshalScript_ParsesBack(t *testing.T) {
	data, err := MarshalScript(DefaultScript())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "capture: Mainscreen") || !strings.Contains(string(data), "tap: 1") {
		t.Errorf("unexpected yaml:\n%s", data)
	}
	script, err := ParseScript(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(script) != 6 || script[4] != Tap(1) {
		t.Errorf("unexpected script: %+v", script)
	}
}

func TestLoadScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.yaml")
	if err := os.WriteFile(path, []byte("- capture: Only\n"), 0644); err != nil {
		t.Fatal(err)
	}
	script, err := LoadScript(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(script) != 1 || script[0].Label != "Only" {
		t.Errorf("unexpected script: %+v", script)
	}
	if _, err := LoadScript(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
