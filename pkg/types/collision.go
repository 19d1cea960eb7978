package types

import (
	"fmt"
	"strings"
)

// Collision is the policy applied when a destination path is already taken.
type Collision string

const (
	// CollisionSkip refuses to touch an existing destination.
	CollisionSkip Collision = "skip"
	// CollisionRename prefixes the basename with "(n) " until a free slot is found.
	CollisionRename Collision = "rename"
	// CollisionOverwrite replaces the existing destination.
	CollisionOverwrite Collision = "overwrite"
)

// Collisions lists every supported policy.
func Collisions() []Collision {
	return []Collision{CollisionSkip, CollisionRename, CollisionOverwrite}
}

// ParseCollision converts user input into a Collision policy.
func ParseCollision(s string) (Collision, error) {
	candidate := Collision(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Collisions() {
		if candidate == known {
			return known, nil
		}
	}
	return "", fmt.Errorf("unknown collision policy %q (want one of %s)", s, joinNames(Collisions()))
}

func (c Collision) String() string { return string(c) }
