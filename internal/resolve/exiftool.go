package resolve

import (
	"context"
	"fmt"
	"strings"
	"time"

	serr "mediasort/internal/errors"
	"mediasort/internal/log"
)

const defaultExiftool = "exiftool"

// ExiftoolResolver asks the exiftool helper for DateTimeOriginal.
type ExiftoolResolver struct {
	binary string
	runner Runner
	logger log.Logging
}

// Args returns the helper arguments used for path.
func (r *ExiftoolResolver) Args(path string) []string {
	return []string{"-T", "-DateTimeOriginal", path}
}

// Resolve runs `exiftool -T -DateTimeOriginal path` and parses its output.
func (r *ExiftoolResolver) Resolve(ctx context.Context, path string) (time.Time, error) {
	out, err := runTool(ctx, r.runner, r.logger, path, r.binary, r.Args(path))
	if err != nil {
		return time.Time{}, err
	}

	dt, err := time.Parse(exifDateLayout, strings.TrimSpace(out))
	if err != nil {
		return time.Time{}, serr.NewResolutionError(
			fmt.Sprintf("failed to parse `%s` date time %q as fmt %q", r.binary, out, exifDateLayout), path, err)
	}
	return dt, nil
}
