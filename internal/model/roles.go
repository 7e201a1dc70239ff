package model

import "strings"

// RoleMap maps raw accessibility roles to compact role codes: the XCUITest
// element types the sim backend reports and the ARIA role the web backend
// queries.
var RoleMap = map[string]string{
	"XCUIElementTypeButton":     "btn",
	"XCUIElementTypeStaticText": "txt",
	"XCUIElementTypeOther":      "group",
	"XCUIElementTypeWindow":     "window",
	"button":                    "btn",
}

// buttonRoles are the compact codes treated as tappable buttons.
var buttonRoles = map[string]bool{
	"btn": true,
}

// MapRole converts a raw accessibility role to a compact code.
func MapRole(raw string) string {
	if short, ok := RoleMap[raw]; ok {
		return short
	}
	if short, ok := RoleMap[strings.ToLower(raw)]; ok {
		return short
	}
	return "other"
}

// IsButtonLike reports whether a compact role code is a button.
func IsButtonLike(role string) bool {
	return buttonRoles[role]
}
