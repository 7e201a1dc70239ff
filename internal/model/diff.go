package model

import (
	"crypto/sha256"
	"fmt"
)

// ButtonDiff summarises how the set of buttons changed across an activation.
type ButtonDiff struct {
	Added          []string `yaml:"added,omitempty"   json:"added,omitempty"`
	Removed        []string `yaml:"removed,omitempty" json:"removed,omitempty"`
	UnchangedCount int      `yaml:"unchanged_count"   json:"unchanged_count"`
}

// Empty reports whether the diff found no added or removed buttons.
func (d ButtonDiff) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0
}

// ElementHash computes a stable identity hash for a queried element based on
// its role, title and position in the tree. Sequential IDs and generations
// are not part of it, so the same control matches across reads.
func ElementHash(el ElementRef) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|%s", el.Role, el.Title, el.Path)
	return fmt.Sprintf("%x", h.Sum(nil))[:16]
}

// DiffButtons compares two button query results by content hash. Duplicate
// controls (same role, title and path) are counted, not collapsed.
func DiffButtons(prev, curr []ElementRef) ButtonDiff {
	remaining := make(map[string]int, len(prev))
	for _, el := range prev {
		remaining[ElementHash(el)]++
	}

	var diff ButtonDiff
	for _, el := range curr {
		h := ElementHash(el)
		if remaining[h] > 0 {
			remaining[h]--
			diff.UnchangedCount++
			continue
		}
		diff.Added = append(diff.Added, label(el))
	}

	for _, el := range prev {
		h := ElementHash(el)
		if remaining[h] > 0 {
			remaining[h]--
			diff.Removed = append(diff.Removed, label(el))
		}
	}
	return diff
}

func label(el ElementRef) string {
	if el.Title != "" {
		return el.Title
	}
	return fmt.Sprintf("%s#%d", el.Role, el.ID)
}
