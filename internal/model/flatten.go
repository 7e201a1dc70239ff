package model

// FlatElement is an element with a path breadcrumb instead of children.
type FlatElement struct {
	ID      int    `yaml:"i"           json:"i"`
	Role    string `yaml:"r"           json:"r"`
	Title   string `yaml:"t,omitempty" json:"t,omitempty"`
	Bounds  [4]int `yaml:"b"           json:"b"`
	Enabled *bool  `yaml:"e,omitempty" json:"e,omitempty"`
	Path    string `yaml:"p,omitempty" json:"p,omitempty"`
}

// IsEnabled reports whether the element accepts input.
func (e FlatElement) IsEnabled() bool { return enabled(e.Enabled) }

// FlattenElements converts a tree of elements into a flat list in document
// order (pre-order). Each element gets a path string showing its location in
// the tree using abbreviated role names joined with " > ".
func FlattenElements(elements []Element) []FlatElement {
	var result []FlatElement
	for _, el := range elements {
		flattenRecursive(el, "", &result)
	}
	return result
}

func flattenRecursive(el Element, parentPath string, result *[]FlatElement) {
	currentPath := el.Role
	if parentPath != "" {
		currentPath = parentPath + " > " + el.Role
	}

	*result = append(*result, FlatElement{
		ID:      el.ID,
		Role:    el.Role,
		Title:   el.Title,
		Bounds:  el.Bounds,
		Enabled: el.Enabled,
		Path:    currentPath,
	})

	for _, child := range el.Children {
		flattenRecursive(child, currentPath, result)
	}
}
