package resolve

import (
	"context"
	"fmt"
	"strings"
	"time"

	serr "mediasort/internal/errors"
	"mediasort/internal/log"
)

const defaultFFprobe = "ffprobe"

// FFprobeResolver asks ffprobe for the creation_time tag of the first video stream.
type FFprobeResolver struct {
	binary string
	runner Runner
	logger log.Logging
}

// Args returns the helper arguments used for path.
func (r *FFprobeResolver) Args(path string) []string {
	return []string{
		"-v", "quiet",
		"-select_streams", "v:0",
		"-show_entries", "stream_tags=creation_time",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	}
}

// Resolve runs ffprobe and parses its RFC 3339 output. The wall clock of the
// reported offset is kept as-is.
func (r *FFprobeResolver) Resolve(ctx context.Context, path string) (time.Time, error) {
	out, err := runTool(ctx, r.runner, r.logger, path, r.binary, r.Args(path))
	if err != nil {
		return time.Time{}, err
	}

	dt, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(out))
	if err != nil {
		return time.Time{}, serr.NewResolutionError(
			fmt.Sprintf("failed to parse %s output %q as a date", r.binary, out), path, err)
	}
	return dt, nil
}
