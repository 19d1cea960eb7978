package resolve

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	serr "mediasort/internal/errors"
	"mediasort/internal/log"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
)

const exifDateLayout = "2006:01:02 15:04:05"

// ExifResolver reads DateTimeOriginal from the file's embedded EXIF block.
type ExifResolver struct {
	logger log.Logging
}

// Resolve opens path and parses its EXIF DateTimeOriginal.
func (r *ExifResolver) Resolve(_ context.Context, path string) (time.Time, error) {
	file, err := os.Open(path)
	if err != nil {
		return time.Time{}, serr.NewResolutionError("failed to open file", path, err)
	}
	defer file.Close()

	x, err := exif.Decode(bufio.NewReader(file))
	if err != nil {
		return time.Time{}, serr.NewResolutionError("failed to read exif data", path, err)
	}

	tag, err := x.Get(exif.DateTimeOriginal)
	if err != nil {
		return time.Time{}, serr.NewResolutionError("failed to get date exif data", path, err)
	}

	// the date must be stored as ASCII text
	if tag.Format() != tiff.StringVal {
		return time.Time{}, serr.NewResolutionError(fmt.Sprintf("incorrect exif data format (type %d)", tag.Type), path, nil)
	}

	raw, err := tag.StringVal()
	if err != nil {
		return time.Time{}, serr.NewResolutionError("failed to decode exif date text", path, err)
	}
	dateStr := strings.TrimSpace(strings.TrimRight(raw, "\x00"))
	if dateStr == "" {
		return time.Time{}, serr.NewResolutionError("empty exif date data found", path, nil)
	}

	r.logger.Debugf("exif datetime raw %q", dateStr)

	dt, err := time.Parse(exifDateLayout, dateStr)
	if err != nil {
		return time.Time{}, serr.NewResolutionError(
			fmt.Sprintf("failed to parse exif date time %q as fmt %q", dateStr, exifDateLayout), path, err)
	}
	return dt, nil
}
