package resolve

import (
	"context"
	"fmt"
	"time"

	"mediasort/internal/log"
	"mediasort/pkg/types"
)

// Resolver determines the capture timestamp for a file.
type Resolver interface {
	Resolve(ctx context.Context, path string) (time.Time, error)
}

type options struct {
	runner   Runner
	logger   log.Logging
	exiftool string
	ffprobe  string
}

// Option configures New.
type Option func(*options)

// WithRunner replaces the process runner used by the tool-backed strategies.
func WithRunner(r Runner) Option {
	return func(o *options) {
		if r != nil {
			o.runner = r
		}
	}
}

// WithLogger sets the logger used for debug tracing.
func WithLogger(l log.Logging) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithExiftool overrides the exiftool binary name.
func WithExiftool(binary string) Option {
	return func(o *options) {
		if binary != "" {
			o.exiftool = binary
		}
	}
}

// WithFFprobe overrides the ffprobe binary name.
func WithFFprobe(binary string) Option {
	return func(o *options) {
		if binary != "" {
			o.ffprobe = binary
		}
	}
}

// New returns the Resolver for strategy.
func New(strategy types.Strategy, opts ...Option) (Resolver, error) {
	o := options{
		runner:   ExecRunner{},
		logger:   log.Discard(),
		exiftool: defaultExiftool,
		ffprobe:  defaultFFprobe,
	}
	for _, opt := range opts {
		opt(&o)
	}
	logger := o.logger.With(log.F("strategy", string(strategy)))

	switch strategy {
	case types.StrategyExif:
		return &ExifResolver{logger: logger}, nil
	case types.StrategyExiftool:
		return &ExiftoolResolver{binary: o.exiftool, runner: o.runner, logger: logger}, nil
	case types.StrategyFFprobe:
		return &FFprobeResolver{binary: o.ffprobe, runner: o.runner, logger: logger}, nil
	case types.StrategyCreateTime:
		return &CreateTimeResolver{logger: logger}, nil
	case types.StrategyModifyTime:
		return &ModifyTimeResolver{logger: logger}, nil
	default:
		return nil, fmt.Errorf("unknown date strategy %q", strategy)
	}
}
