package sim

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Button is one tappable control on a screen.
type Button struct {
	Title    string `yaml:"title"              json:"title"`
	Next     State  `yaml:"next,omitempty"     json:"next,omitempty"` // Empty = stay on the screen
	Disabled bool   `yaml:"disabled,omitempty" json:"disabled,omitempty"`
}

// Screen describes what the application shows in one state.
type Screen struct {
	Title   string   `yaml:"title"             json:"title"`
	Text    []string `yaml:"text,omitempty"    json:"text,omitempty"`
	Buttons []Button `yaml:"buttons,omitempty" json:"buttons,omitempty"`
}

// Model is the full screen graph of a simulated application.
type Model struct {
	Name    string           `yaml:"name"    json:"name"`
	Initial State            `yaml:"initial" json:"initial"`
	Screens map[State]Screen `yaml:"screens" json:"screens"`
}

// DefaultModel returns the three-screen application the default walkthrough
// is written against: one button on Main, two on ScreenA where the first
// button keeps the screen and the second moves on to ScreenB.
func DefaultModel() *Model {
	return &Model{
		Name:    "Sample",
		Initial: Main,
		Screens: map[State]Screen{
			Main: {
				Title:   "Main",
				Text:    []string{"Welcome"},
				Buttons: []Button{{Title: "Show A", Next: ScreenA}},
			},
			ScreenA: {
				Title: "View A",
				Buttons: []Button{
					{Title: "Toggle"},
					{Title: "Show B", Next: ScreenB},
				},
			},
			ScreenB: {
				Title: "View B",
				Text:  []string{"Done"},
			},
		},
	}
}

// LoadModel reads and validates a model from a YAML file.
func LoadModel(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read app model: %w", err)
	}
	return ParseModel(data)
}

// ParseModel decodes and validates a YAML model.
func ParseModel(data []byte) (*Model, error) {
	var m Model
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse app model: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks that the initial screen and every button target exist.
func (m *Model) Validate() error {
	if len(m.Screens) == 0 {
		return fmt.Errorf("app model %q has no screens", m.Name)
	}
	if m.Initial == "" {
		return fmt.Errorf("app model %q has no initial screen", m.Name)
	}
	if _, ok := m.Screens[m.Initial]; !ok {
		return fmt.Errorf("app model %q: initial screen %q is not defined", m.Name, m.Initial)
	}
	for state, screen := range m.Screens {
		for i, b := range screen.Buttons {
			if b.Next == "" {
				continue
			}
			if _, ok := m.Screens[b.Next]; !ok {
				return fmt.Errorf("app model %q: screen %q button %d (%q) leads to undefined screen %q",
					m.Name, state, i, b.Title, b.Next)
			}
		}
	}
	return nil
}

// Table builds the transition table. Indexes count enabled buttons only,
// matching what a button query returns.
func (m *Model) Table() Table {
	t := make(Table)
	for state, screen := range m.Screens {
		for idx, b := range screen.enabledButtons() {
			if b.Next != "" && b.Next != state {
				t[Transition{From: state, Index: idx}] = b.Next
			}
		}
	}
	return t
}

func (s Screen) enabledButtons() []Button {
	var buttons []Button
	for _, b := range s.Buttons {
		if !b.Disabled {
			buttons = append(buttons, b)
		}
	}
	return buttons
}
