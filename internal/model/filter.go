package model

// FilterButtons returns the enabled button-like elements of a tree in
// document order. Disabled buttons are skipped: they cannot be tapped, so
// counting them would shift the indexes a script relies on.
func FilterButtons(elements []Element) []FlatElement {
	var result []FlatElement
	for _, el := range FlattenElements(elements) {
		if !IsButtonLike(el.Role) || !el.IsEnabled() {
			continue
		}
		result = append(result, el)
	}
	return result
}

// AssignIDs numbers every element of a tree sequentially in document order,
// starting at 1.
func AssignIDs(elements []Element) {
	next := 1
	assignIDs(elements, &next)
}

func assignIDs(elements []Element, next *int) {
	for i := range elements {
		elements[i].ID = *next
		*next++
		assignIDs(elements[i].Children, next)
	}
}
