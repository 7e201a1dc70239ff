package sim

import (
	"github.com/mj1618/storeshots/internal/model"
	"github.com/mj1618/storeshots/internal/platform"
)

// Raw roles of the simulated screens, named after the XCUITest element
// types an iOS app reports.
const (
	roleWindow = "XCUIElementTypeWindow"
	roleText   = "XCUIElementTypeStaticText"
	roleGroup  = "XCUIElementTypeOther"
	roleButton = "XCUIElementTypeButton"
)

const (
	margin       = 24
	headerHeight = 80
	textHeight   = 28
	buttonHeight = 56
	buttonGap    = 16
)

// layoutScreen builds the element tree of a screen: a window holding the
// title, the body text and a group with one element per button, stacked
// top to bottom.
func layoutScreen(s Screen, vp platform.Viewport) []model.Element {
	width := vp.Width - 2*margin
	y := headerHeight

	var body []model.Element
	body = append(body, model.Element{Role: model.MapRole(roleText), Title: s.Title, Bounds: [4]int{margin, margin, width, headerHeight - 2*margin}})
	for _, text := range s.Text {
		body = append(body, model.Element{Role: model.MapRole(roleText), Title: text, Bounds: [4]int{margin, y, width, textHeight}})
		y += textHeight
	}

	y += buttonGap
	var buttons []model.Element
	for _, b := range s.Buttons {
		el := model.Element{Role: model.MapRole(roleButton), Title: b.Title, Bounds: [4]int{margin, y, width, buttonHeight}}
		if b.Disabled {
			disabled := false
			el.Enabled = &disabled
		}
		buttons = append(buttons, el)
		y += buttonHeight + buttonGap
	}
	if len(buttons) > 0 {
		top := buttons[0].Bounds[1]
		body = append(body, model.Element{Role: model.MapRole(roleGroup), Bounds: [4]int{margin, top, width, y - top}, Children: buttons})
	}

	tree := []model.Element{{
		Role:     model.MapRole(roleWindow),
		Title:    s.Title,
		Bounds:   [4]int{0, 0, vp.Width, vp.Height},
		Children: body,
	}}
	model.AssignIDs(tree)
	return tree
}
