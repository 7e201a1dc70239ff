package walkthrough

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Kind is the type of a script step.
type Kind string

const (
	KindCapture Kind = "capture"
	KindTap     Kind = "tap"
)

// Step is one entry of a walkthrough script: either capture a snapshot
// under Label, or tap the button at Index of a fresh button query.
type Step struct {
	Kind  Kind
	Label string
	Index int
}

// Capture returns a step that captures a snapshot labelled label.
func Capture(label string) Step { return Step{Kind: KindCapture, Label: label} }

// Tap returns a step that taps the button at index.
func Tap(index int) Step { return Step{Kind: KindTap, Index: index} }

func (s Step) String() string {
	switch s.Kind {
	case KindCapture:
		return fmt.Sprintf("capture %q", s.Label)
	case KindTap:
		return fmt.Sprintf("tap %d", s.Index)
	default:
		return fmt.Sprintf("unknown step %q", s.Kind)
	}
}

// DefaultScript returns the store-listing walkthrough: snapshot the main
// screen, open the first view, then tap the first and second buttons there
// before the final snapshot.
func DefaultScript() []Step {
	return []Step{
		Capture("Mainscreen"),
		Tap(0),
		Capture("View A"),
		Tap(0),
		Tap(1),
		Capture("View B"),
	}
}

// Validate checks every step of a script.
func Validate(script []Step) error {
	if len(script) == 0 {
		return errors.New("script has no steps")
	}
	for i, s := range script {
		switch s.Kind {
		case KindCapture:
			if strings.TrimSpace(s.Label) == "" {
				return fmt.Errorf("step %d: capture needs a label", i+1)
			}
		case KindTap:
			if s.Index < 0 {
				return fmt.Errorf("step %d: tap index must not be negative, got %d", i+1, s.Index)
			}
		default:
			return fmt.Errorf("step %d: unknown step type %q (supported: capture, tap)", i+1, s.Kind)
		}
	}
	return nil
}

// MarshalYAML writes a step as a one-key map, e.g. {capture: View A}.
func (s Step) MarshalYAML() (interface{}, error) {
	switch s.Kind {
	case KindCapture:
		return map[string]string{string(KindCapture): s.Label}, nil
	case KindTap:
		return map[string]int{string(KindTap): s.Index}, nil
	default:
		return nil, fmt.Errorf("unknown step type %q", s.Kind)
	}
}

// UnmarshalYAML reads a step from a one-key map.
func (s *Step) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode || len(node.Content) != 2 {
		return fmt.Errorf("line %d: expected exactly one action key (capture or tap)", node.Line)
	}
	key, value := node.Content[0].Value, node.Content[1]
	switch Kind(key) {
	case KindCapture:
		var label string
		if err := value.Decode(&label); err != nil {
			return fmt.Errorf("line %d: capture label: %w", node.Line, err)
		}
		*s = Capture(label)
	case KindTap:
		var index int
		if err := value.Decode(&index); err != nil {
			return fmt.Errorf("line %d: tap index: %w", node.Line, err)
		}
		*s = Tap(index)
	default:
		return fmt.Errorf("line %d: unknown step type %q (supported: capture, tap)", node.Line, key)
	}
	return nil
}

// ParseScript decodes and validates a YAML list of steps:
//
//	- capture: Mainscreen
//	- tap: 0
func ParseScript(data []byte) ([]Step, error) {
	var script []Step
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if err := Validate(script); err != nil {
		return nil, err
	}
	return script, nil
}

// LoadScript reads a script file.
func LoadScript(path string) ([]Step, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return ParseScript(data)
}

// MarshalScript encodes a script as YAML.
func MarshalScript(script []Step) ([]byte, error) {
	return yaml.Marshal(script)
}
