package types

import (
	"fmt"
	"strings"
)

// Strategy names the source a capture date is read from.
type Strategy string

const (
	// StrategyExif parses the embedded EXIF DateTimeOriginal tag.
	StrategyExif Strategy = "exif"
	// StrategyExiftool asks the exiftool helper for DateTimeOriginal.
	StrategyExiftool Strategy = "exiftool"
	// StrategyFFprobe asks ffprobe for the first video stream's creation_time tag.
	StrategyFFprobe Strategy = "ffprobe"
	// StrategyCreateTime uses the filesystem birth time.
	StrategyCreateTime Strategy = "file-create"
	// StrategyModifyTime uses the filesystem modification time.
	StrategyModifyTime Strategy = "file-modify"
)

// Strategies lists every supported strategy in help order.
func Strategies() []Strategy {
	return []Strategy{StrategyExif, StrategyExiftool, StrategyFFprobe, StrategyCreateTime, StrategyModifyTime}
}

// ParseStrategy converts user input into a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	candidate := Strategy(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Strategies() {
		if candidate == known {
			return known, nil
		}
	}
	return "", fmt.Errorf("unknown date strategy %q (want one of %s)", s, joinNames(Strategies()))
}

func (s Strategy) String() string { return string(s) }

func joinNames[T ~string](values []T) string {
	names := make([]string, len(values))
	for i, v := range values {
		names[i] = string(v)
	}
	return strings.Join(names, ", ")
}
