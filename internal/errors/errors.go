// Package errors defines the error kinds shared by the image viewer packages.
// Callers compare with Is against the sentinels below; wrapped errors keep
// the underlying cause reachable through Unwrap.
package errors

import (
	"errors"
	"fmt"
)

// Re-exported from the standard errors package so callers need a single import.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
)

// ErrorKind classifies an application error.
type ErrorKind int

const (
	Unknown ErrorKind = iota
	// Configuration: the root cannot be resolved or the config file is invalid.
	InvalidConfig
	RootUnavailable
	// Transient lookups: stale entries, vanished files.
	StaleEntry
	// Confinement: a candidate path lies outside the browsable root.
	OutsideRoot
	// Images and detection.
	Unreadable
	DetectorUnavailable
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidConfig:
		return "invalid configuration"
	case RootUnavailable:
		return "root unavailable"
	case StaleEntry:
		return "stale entry"
	case OutsideRoot:
		return "outside root"
	case Unreadable:
		return "unreadable image"
	case DetectorUnavailable:
		return "detector unavailable"
	}
	return "unknown"
}

// Sentinels for errors.Is comparisons.
var (
	ErrConfig          = &ApplicationError{msg: "invalid configuration", kind: InvalidConfig}
	ErrRootUnavailable = &ApplicationError{msg: "root directory unavailable", kind: RootUnavailable}
	ErrStaleEntry      = &ApplicationError{msg: "entry no longer exists", kind: StaleEntry}
	ErrOutsideRoot     = &ApplicationError{msg: "path outside root", kind: OutsideRoot}
	ErrUnreadable      = &ApplicationError{msg: "cannot read image", kind: Unreadable}
	ErrUnavailable     = &ApplicationError{msg: "object detector unavailable", kind: DetectorUnavailable}
)

// ApplicationError is the base error type for all application errors.
type ApplicationError struct {
	msg  string
	path string
	err  error
	kind ErrorKind
}

// Error returns the error message.
func (e *ApplicationError) Error() string {
	msg := e.msg
	if e.path != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.path)
	}
	if e.err != nil {
		return fmt.Sprintf("%s: %v", msg, e.err)
	}
	return msg
}

// Unwrap returns the wrapped error.
func (e *ApplicationError) Unwrap() error {
	return e.err
}

// Kind returns the kind of error.
func (e *ApplicationError) Kind() ErrorKind {
	return e.kind
}

// Path returns the file path associated with the error, if any.
func (e *ApplicationError) Path() string {
	return e.path
}

// Is matches any ApplicationError of the same kind, so a path-carrying error
// still satisfies errors.Is against the bare sentinel.
func (e *ApplicationError) Is(target error) bool {
	var other *ApplicationError
	if !errors.As(target, &other) {
		return false
	}
	return other.kind != Unknown && other.kind == e.kind
}

// New creates an error of the given kind for a path.
func New(kind ErrorKind, path string, err error) error {
	return &ApplicationError{msg: kind.String(), path: path, err: err, kind: kind}
}

// Newf creates an error of the given kind with a formatted message.
func Newf(kind ErrorKind, format string, args ...interface{}) error {
	return &ApplicationError{msg: fmt.Sprintf(format, args...), kind: kind}
}

// KindOf returns the kind of the first ApplicationError in err's chain.
func KindOf(err error) ErrorKind {
	var appErr *ApplicationError
	if errors.As(err, &appErr) {
		return appErr.kind
	}
	return Unknown
}
