package model

import "fmt"

// Element represents a UI element in an application's element tree.
type Element struct {
	ID       int       `yaml:"i"           json:"i"`           // Sequential integer ID
	Role     string    `yaml:"r"           json:"r"`           // Abbreviated role code
	Title    string    `yaml:"t,omitempty" json:"t,omitempty"` // Visible label / title
	Bounds   [4]int    `yaml:"b"           json:"b"`           // [x, y, width, height]
	Enabled  *bool     `yaml:"e,omitempty" json:"e,omitempty"` // nil or true = enabled (omit); false = disabled (include)
	Children []Element `yaml:"c,omitempty" json:"c,omitempty"` // Child elements
}

// IsEnabled reports whether the element accepts input.
func (e Element) IsEnabled() bool { return enabled(e.Enabled) }

// nil means enabled: backends only report the flag for disabled elements.
func enabled(flag *bool) bool { return flag == nil || *flag }

// ElementRef identifies one entry of a button query result. Refs are only
// valid for the generation of the application state they were read from.
type ElementRef struct {
	Index      int    `yaml:"index"           json:"index"`
	ID         int    `yaml:"id"              json:"id"`
	Role       string `yaml:"role"            json:"role"`
	Title      string `yaml:"title,omitempty" json:"title,omitempty"`
	Path       string `yaml:"path,omitempty"  json:"path,omitempty"`
	Generation uint64 `yaml:"generation"      json:"generation"`
}

func (r ElementRef) String() string {
	if r.Title != "" {
		return fmt.Sprintf("#%d %q (id %d, gen %d)", r.Index, r.Title, r.ID, r.Generation)
	}
	return fmt.Sprintf("#%d (id %d, gen %d)", r.Index, r.ID, r.Generation)
}

// RefsFor builds query-result refs for the given elements, indexed in order.
func RefsFor(elements []FlatElement, generation uint64) []ElementRef {
	refs := make([]ElementRef, len(elements))
	for i, el := range elements {
		refs[i] = ElementRef{Index: i, ID: el.ID, Role: el.Role, Title: el.Title, Path: el.Path, Generation: generation}
	}
	return refs
}
