package watch

import (
	"path/filepath"
	"strings"

	"mediasort/internal/errors"

	"github.com/gobwas/glob"
)

// Filter decides which new files are handed to the organizer, by basename.
// Hidden files never match.
type Filter struct {
	globs []glob.Glob
}

// NewFilter compiles include patterns; an empty list matches everything.
func NewFilter(patterns []string) (*Filter, error) {
	f := &Filter{}
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, errors.NewConfigError("invalid include pattern "+p, "watch.include", err)
		}
		f.globs = append(f.globs, g)
	}
	return f, nil
}

// Match reports whether path should be organized.
func (f *Filter) Match(path string) bool {
	name := filepath.Base(path)
	if strings.HasPrefix(name, ".") {
		return false
	}
	if len(f.globs) == 0 {
		return true
	}
	for _, g := range f.globs {
		if g.Match(name) {
			return true
		}
	}
	return false
}
