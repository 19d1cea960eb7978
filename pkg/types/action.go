package types

import (
	"fmt"
	"strings"
)

// Action is the transfer performed once a destination has been decided.
type Action string

const (
	// ActionMove renames the source into place.
	ActionMove Action = "move"
	// ActionCopy duplicates the bytes and leaves the source alone.
	ActionCopy Action = "copy"
	// ActionHardlink adds a second directory entry for the same data.
	ActionHardlink Action = "hardlink"
)

// Actions lists every supported action.
func Actions() []Action {
	return []Action{ActionMove, ActionCopy, ActionHardlink}
}

// ParseAction converts user input into an Action.
func ParseAction(s string) (Action, error) {
	candidate := Action(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Actions() {
		if candidate == known {
			return known, nil
		}
	}
	return "", fmt.Errorf("unknown action %q (want one of %s)", s, joinNames(Actions()))
}

func (a Action) String() string { return string(a) }

// Label is the capitalized verb used in report lines, e.g. "Move".
func (a Action) Label() string {
	if a == "" {
		return ""
	}
	return strings.ToUpper(string(a[:1])) + string(a[1:])
}
