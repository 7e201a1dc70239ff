package sim

import (
	"fmt"
	"sort"
)

// State names one screen of the simulated application.
type State string

const (
	Main    State = "Main"
	ScreenA State = "ScreenA"
	ScreenB State = "ScreenB"
)

// Transition is a key of the transition table: a tap on the button at
// Index while the application shows From.
type Transition struct {
	From  State
	Index int
}

// Table maps taps to the screen they lead to. Taps without an entry leave
// the application on the same screen.
type Table map[Transition]State

// Next returns the screen reached by tapping index on from.
func (t Table) Next(from State, index int) State {
	if next, ok := t[Transition{From: from, Index: index}]; ok {
		return next
	}
	return from
}

// Edge is one row of a table, for display.
type Edge struct {
	From  State  `yaml:"from"            json:"from"`
	Index int    `yaml:"index"           json:"index"`
	Title string `yaml:"title,omitempty" json:"title,omitempty"`
	To    State  `yaml:"to"              json:"to"`
}

// Edges lists the table rows sorted by source screen and button index.
func (m *Model) Edges() []Edge {
	var edges []Edge
	for t, to := range m.Table() {
		e := Edge{From: t.From, Index: t.Index, To: to}
		if buttons := m.Screens[t.From].enabledButtons(); t.Index < len(buttons) {
			e.Title = buttons[t.Index].Title
		}
		edges = append(edges, e)
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}
		return edges[i].Index < edges[j].Index
	})
	return edges
}

func (e Edge) String() string {
	return fmt.Sprintf("%s --tap(%d)--> %s", e.From, e.Index, e.To)
}
