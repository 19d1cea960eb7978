package resolve

import (
	"context"
	"os"
	"time"

	serr "mediasort/internal/errors"
	"mediasort/internal/log"

	"github.com/djherbis/times"
)

var statTimes = times.Stat

// CreateTimeResolver uses the filesystem birth time.
type CreateTimeResolver struct {
	logger log.Logging
}

// Resolve returns path's birth time in UTC, failing where the platform or
// filesystem does not record one.
func (r *CreateTimeResolver) Resolve(_ context.Context, path string) (time.Time, error) {
	ts, err := statTimes(path)
	if err != nil {
		return time.Time{}, serr.NewResolutionError("failed to stat file", path, err)
	}
	if !ts.HasBirthTime() {
		return time.Time{}, serr.NewResolutionError("file creation time is not available on this platform", path, nil)
	}
	created := ts.BirthTime().UTC()
	r.logger.Debugf("%s birth time %s", path, created)
	return created, nil
}

// ModifyTimeResolver uses the filesystem modification time.
type ModifyTimeResolver struct {
	logger log.Logging
}

// Resolve returns path's modification time in UTC.
func (r *ModifyTimeResolver) Resolve(_ context.Context, path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, serr.NewResolutionError("failed to stat file", path, err)
	}
	modified := info.ModTime().UTC()
	r.logger.Debugf("%s mtime %s", path, modified)
	return modified, nil
}
