package organize

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"mediasort/internal/errors"
	"mediasort/internal/log"
	"mediasort/pkg/types"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
)

// Executor performs the configured transfer for a placement decision.
type Executor struct {
	action types.Action
	dryRun bool
	logger log.Logging
}

// NewExecutor returns an Executor for action. With dryRun set it never
// touches the filesystem.
func NewExecutor(action types.Action, dryRun bool, logger log.Logging) *Executor {
	if logger == nil {
		logger = log.Discard()
	}
	return &Executor{action: action, dryRun: dryRun, logger: logger}
}

// IsDryRun reports whether operations are only simulated.
func (x *Executor) IsDryRun() bool {
	return x.dryRun
}

// Execute creates the destination directory chain and runs the primitive.
func (x *Executor) Execute(d types.PlacementDecision) error {
	src, dest := d.SourcePath, d.DestinationPath

	if x.dryRun {
		x.logger.Debugf("dry run, would %s %s -> %s", x.action, src, dest)
		return nil
	}

	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.NewOperationError("failed to create directory", dir, err)
	}

	if d.Overwrite && sameFile(src, dest) {
		x.logger.Debugf("%s is already %s, nothing to do", dest, src)
		return nil
	}

	switch x.action {
	case types.ActionMove:
		if err := os.Rename(src, dest); err != nil {
			return errors.NewOperationError("failed to move file", src, err)
		}
	case types.ActionCopy:
		n, err := copyFile(src, dest)
		if err != nil {
			return errors.NewOperationError(fmt.Sprintf("failed to copy file to %s", dest), src, err)
		}
		x.logger.Debugf("copied %s from %s", humanize.Bytes(uint64(n)), src)
	case types.ActionHardlink:
		if err := link(src, dest, d.Overwrite); err != nil {
			return errors.NewOperationError("failed to hardlink file", src, err)
		}
	default:
		return errors.NewOperationError(fmt.Sprintf("unknown action %q", x.action), src, nil)
	}
	return nil
}

func sameFile(a, b string) bool {
	ai, err := os.Stat(a)
	if err != nil {
		return false
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ai, bi)
}

// copyFile duplicates src's bytes and permission bits into dest.
func copyFile(src, dest string) (int64, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return 0, err
	}
	if !info.Mode().IsRegular() {
		return 0, fmt.Errorf("%s is not a regular file", src)
	}

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return 0, err
	}

	n, err := io.Copy(out, in)
	if err != nil {
		out.Close()
		return n, fmt.Errorf("copy %s -> %s: %w", src, dest, err)
	}
	if err := out.Close(); err != nil {
		return n, err
	}
	// an overwritten file keeps its old mode otherwise
	return n, os.Chmod(dest, info.Mode().Perm())
}

// link adds dest as a hard link to src. link(2) refuses an existing name,
// so replacing goes through a temporary sibling and a rename.
func link(src, dest string, replace bool) error {
	if !replace {
		return os.Link(src, dest)
	}

	tmp := filepath.Join(filepath.Dir(dest), ".mediasort-"+uuid.NewString())
	if err := os.Link(src, tmp); err != nil {
		return err
	}
	if err := os.Rename(tmp, dest); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
