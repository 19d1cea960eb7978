// Package errors provides the structured error type used across mediasort.
// Every failure carries a kind (what class of problem it is) and an ordered
// chain of context layers, outermost first, which Render turns into the
// per-file error report.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Standard errors package errors that we re-export for convenience
var (
	// Unwrap unwraps an error to access the underlying error
	Unwrap = errors.Unwrap
	// Is reports whether any error in err's chain matches target
	Is = errors.Is
	// As finds the first error in err's chain that matches target
	As = errors.As
)

// ErrorKind represents the kind of error
type ErrorKind int

// Error kinds
const (
	Unknown ErrorKind = iota
	// ResolutionFailed: no capture timestamp could be determined.
	ResolutionFailed
	// DestinationExists: the target slot is taken and the policy is skip.
	DestinationExists
	// InvalidPath: a path could not be turned into a destination.
	InvalidPath
	// OperationFailed: the copy/move/link primitive or mkdir failed.
	OperationFailed
	// InvalidConfig: configuration could not be loaded or validated.
	InvalidConfig
	// NoInput: the batch was started without any files.
	NoInput
)

func (k ErrorKind) String() string {
	switch k {
	case ResolutionFailed:
		return "resolution"
	case DestinationExists:
		return "collision"
	case InvalidPath:
		return "path"
	case OperationFailed:
		return "operation"
	case InvalidConfig:
		return "config"
	case NoInput:
		return "no-input"
	default:
		return "unknown"
	}
}

// ErrNoInput is returned when a batch is started with an empty file list.
var ErrNoInput = &ApplicationError{msg: "at least 1 file must be specified", kind: NoInput}

// ErrErrorsSeen is returned by a batch in which at least one file failed.
var ErrErrorsSeen = &ApplicationError{msg: "errors seen", kind: Unknown}

// ApplicationError is the base error type for all application errors
type ApplicationError struct {
	msg  string
	err  error
	kind ErrorKind
}

// Error returns the error message
func (e *ApplicationError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

// Unwrap returns the wrapped error
func (e *ApplicationError) Unwrap() error {
	return e.err
}

// Kind returns the kind of error
func (e *ApplicationError) Kind() ErrorKind {
	return e.kind
}

// Message returns this layer's context without the wrapped cause.
func (e *ApplicationError) Message() string {
	return e.msg
}

// FileError is an application error tied to a filesystem path.
type FileError struct {
	ApplicationError
	path string
}

// NewFileError creates a new file error
func NewFileError(msg string, path string, kind ErrorKind, err error) *FileError {
	return &FileError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		path: path,
	}
}

// Error returns the file error message
func (e *FileError) Error() string {
	if e.path != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.path, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.path)
	}
	return e.ApplicationError.Error()
}

// Message returns this layer's context without the wrapped cause.
func (e *FileError) Message() string {
	if e.path != "" {
		return fmt.Sprintf("%s: %s", e.msg, e.path)
	}
	return e.msg
}

// Path returns the file path associated with the error
func (e *FileError) Path() string {
	return e.path
}

// NewResolutionError reports a failure to determine a capture date.
func NewResolutionError(msg, path string, err error) *FileError {
	return NewFileError(msg, path, ResolutionFailed, err)
}

// NewCollisionError reports an occupied destination under the skip policy.
func NewCollisionError(path string) *FileError {
	return NewFileError("destination already exists, refusing to overwrite", path, DestinationExists, nil)
}

// NewPathError reports a path that cannot be turned into a destination.
func NewPathError(msg, path string, err error) *FileError {
	return NewFileError(msg, path, InvalidPath, err)
}

// NewOperationError reports a failed filesystem primitive.
func NewOperationError(msg, path string, err error) *FileError {
	return NewFileError(msg, path, OperationFailed, err)
}

// ConfigError represents errors related to configuration
type ConfigError struct {
	ApplicationError
	param string
}

// NewConfigError creates a new configuration error
func NewConfigError(msg string, param string, err error) *ConfigError {
	return &ConfigError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: InvalidConfig,
		},
		param: param,
	}
}

// Error returns the config error message
func (e *ConfigError) Error() string {
	if e.param != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.param, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.param)
	}
	return e.ApplicationError.Error()
}

// Message returns this layer's context without the wrapped cause.
func (e *ConfigError) Message() string {
	if e.param != "" {
		return fmt.Sprintf("%s: %s", e.msg, e.param)
	}
	return e.msg
}

// Param returns the configuration parameter associated with the error
func (e *ConfigError) Param() string {
	return e.param
}

// New creates a new error with a message
func New(msg string) error {
	return &ApplicationError{
		msg:  msg,
		kind: Unknown,
	}
}

// Newf creates a new error with a formatted message
func Newf(format string, args ...interface{}) error {
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		kind: Unknown,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  msg,
		err:  err,
		kind: Unknown,
	}
}

// Wrapf wraps an existing error with additional formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		err:  err,
		kind: Unknown,
	}
}

type kinded interface {
	Kind() ErrorKind
}

// KindOf returns the outermost non-Unknown kind in err's chain.
func KindOf(err error) ErrorKind {
	for e := err; e != nil; e = Unwrap(e) {
		if k, ok := e.(kinded); ok && k.Kind() != Unknown {
			return k.Kind()
		}
	}
	return Unknown
}

// HasKind reports whether any layer of err's chain carries kind.
func HasKind(err error, kind ErrorKind) bool {
	for e := err; e != nil; e = Unwrap(e) {
		if k, ok := e.(kinded); ok && k.Kind() == kind {
			return true
		}
	}
	return false
}

// IsResolutionFailure checks if the error is a date resolution failure
func IsResolutionFailure(err error) bool { return HasKind(err, ResolutionFailed) }

// IsCollision checks if the error is a skip-policy collision
func IsCollision(err error) bool { return HasKind(err, DestinationExists) }

// IsPathFailure checks if the error is an invalid path failure
func IsPathFailure(err error) bool { return HasKind(err, InvalidPath) }

// IsOperationFailure checks if the error is a failed file operation
func IsOperationFailure(err error) bool { return HasKind(err, OperationFailed) }

// IsInvalidConfig checks if the error is an invalid configuration error
func IsInvalidConfig(err error) bool { return HasKind(err, InvalidConfig) }

// PathOf returns the path of the outermost FileError in err's chain.
func PathOf(err error) string {
	var fileErr *FileError
	if As(err, &fileErr) {
		return fileErr.Path()
	}
	return ""
}

// Chain returns one context string per layer of err, outermost first.
// Foreign errors wrapped with fmt.Errorf("...: %w") contribute their own
// prefix only.
func Chain(err error) []string {
	var layers []string
	for e := err; e != nil; {
		next := Unwrap(e)
		layers = append(layers, layerMessage(e, next))
		e = next
	}
	return layers
}

func layerMessage(e, next error) string {
	if m, ok := e.(interface{ Message() string }); ok {
		return m.Message()
	}
	msg := e.Error()
	if next != nil {
		msg = strings.TrimSuffix(msg, ": "+next.Error())
	}
	return msg
}

// Render formats err's chain as a multi-line report:
//
//	outer context
//
//	Caused by:
//	    0: middle
//	    1: root cause
func Render(err error) string {
	layers := Chain(err)
	if len(layers) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(layers[0])
	causes := layers[1:]
	if len(causes) == 0 {
		return sb.String()
	}

	sb.WriteString("\n\nCaused by:")
	for i, cause := range causes {
		if len(causes) == 1 {
			fmt.Fprintf(&sb, "\n    %s", cause)
			continue
		}
		fmt.Fprintf(&sb, "\n    %d: %s", i, cause)
	}
	return sb.String()
}
