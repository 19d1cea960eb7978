package organize

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"
	"unicode/utf8"

	"mediasort/internal/errors"
	"mediasort/internal/log"
	"mediasort/pkg/types"
)

var lstat = os.Lstat

// Placer derives date-based destinations under a base directory.
type Placer struct {
	baseDir string
	policy  types.Collision
	logger  log.Logging
}

// NewPlacer returns a Placer for baseDir using the given collision policy.
func NewPlacer(baseDir string, policy types.Collision, logger log.Logging) *Placer {
	if logger == nil {
		logger = log.Discard()
	}
	return &Placer{baseDir: baseDir, policy: policy, logger: logger}
}

// DateDir returns base/<year>/<month>, with the month always two digits.
func DateDir(baseDir string, ts time.Time) string {
	return filepath.Join(baseDir, strconv.Itoa(ts.Year()), fmt.Sprintf("%02d", int(ts.Month())))
}

// Place computes where src should go for timestamp ts.
//
// A free slot is returned as-is. An occupied slot is handled by policy:
// skip fails with a collision error, overwrite returns the same path, and
// rename tries "(1) name", "(2) name", ... until one is free.
func (p *Placer) Place(src string, ts time.Time) (types.PlacementDecision, error) {
	if ts.IsZero() {
		return types.PlacementDecision{}, errors.NewResolutionError("timestamp carries no year or month", src, nil)
	}

	name, err := baseName(src)
	if err != nil {
		return types.PlacementDecision{}, err
	}

	dir := DateDir(p.baseDir, ts)
	dest := filepath.Join(dir, name)
	decision := types.PlacementDecision{SourcePath: src, DestinationPath: dest}

	p.logger.Debugf("trying path %s", dest)
	taken, err := occupied(dest)
	if err != nil {
		return types.PlacementDecision{}, err
	}
	if !taken {
		return decision, nil
	}

	switch p.policy {
	case types.CollisionSkip:
		return types.PlacementDecision{}, errors.NewCollisionError(dest)
	case types.CollisionOverwrite:
		p.logger.Debugf("%s exists, overwriting", dest)
		decision.Overwrite = true
		return decision, nil
	case types.CollisionRename:
		for n := 1; ; n++ {
			candidate := filepath.Join(dir, fmt.Sprintf("(%d) %s", n, name))
			p.logger.Debugf("trying path %s", candidate)
			taken, err := occupied(candidate)
			if err != nil {
				return types.PlacementDecision{}, err
			}
			if !taken {
				decision.DestinationPath = candidate
				decision.CopyIndex = n
				return decision, nil
			}
		}
	default:
		return types.PlacementDecision{}, errors.NewPathError(fmt.Sprintf("unknown collision policy %q", p.policy), dest, nil)
	}
}

// occupied reports whether something, even a dangling symlink, sits at path.
func occupied(path string) (bool, error) {
	_, err := lstat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, errors.NewPathError("failed to check destination", path, err)
}

func baseName(src string) (string, error) {
	if src == "" {
		return "", errors.NewPathError("source path is empty", src, nil)
	}
	name := filepath.Base(src)
	switch name {
	case ".", "..", string(filepath.Separator):
		return "", errors.NewPathError("source path has no file name", src, nil)
	}
	if !utf8.ValidString(name) {
		return "", errors.NewPathError("file name is not valid UTF-8", src, nil)
	}
	return name, nil
}
