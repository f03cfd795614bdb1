// Package ioerr defines the error-kind taxonomy shared by every
// package in this module, following a sentinel-error convention:
// package-level Err* values classified by Kind.
package ioerr

import "github.com/pkg/errors"

// Kind identifies which of the library's error categories a failure
// belongs to.
type Kind int

// Error kinds, one per failure category the library raises.
const (
	KindUnknown Kind = iota
	KindEndOfInput
	KindClosedStream
	KindTimeout
	KindInterrupted
	KindInvalidNumber
	KindInvalidArgument
	KindIO
)

// Sentinel errors. Wrap these with errors.Wrap/Wrapf to add context;
// Cause(err) or errors.Is still resolves to the sentinel.
var (
	// ErrEndOfInput is returned when a read asks for more bytes than
	// the stream can produce.
	ErrEndOfInput = errors.New("end of input")

	// ErrClosedStream is returned by an operation on a closed source
	// or sink.
	ErrClosedStream = errors.New("stream closed")

	// ErrTimeout is returned when a deadline or per-operation timeout
	// elapses before a blocking operation completes.
	ErrTimeout = errors.New("timeout")

	// ErrInterrupted is returned when the waiting goroutine is asked
	// to stop before a blocking operation completes.
	ErrInterrupted = errors.New("interrupted")

	// ErrInvalidNumber is returned by readDecimalLong/
	// readHexadecimalUnsignedLong on malformed or overflowing input.
	ErrInvalidNumber = errors.New("invalid number")

	// ErrInvalidArgument is returned for out-of-range offsets/counts,
	// empty Options, duplicate Options, and similar caller errors.
	ErrInvalidArgument = errors.New("invalid argument")
)

var sentinelKind = map[error]Kind{
	ErrEndOfInput:       KindEndOfInput,
	ErrClosedStream:     KindClosedStream,
	ErrTimeout:          KindTimeout,
	ErrInterrupted:      KindInterrupted,
	ErrInvalidNumber:    KindInvalidNumber,
	ErrInvalidArgument:  KindInvalidArgument,
}

// IOError wraps an underlying source/sink failure, carrying the
// platform error text for the IO error kind.
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *IOError) Unwrap() error { return e.Err }

// WrapIO builds an IOError, or returns nil if err is nil.
func WrapIO(op string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Op: op, Err: err}
}

// ClassifyKind returns the Kind of err, walking errors.Cause and
// errors.Unwrap chains, or KindIO for an unrecognized wrapped error,
// or KindUnknown if err is nil.
func ClassifyKind(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	if _, ok := err.(*IOError); ok {
		return KindIO
	}
	cause := errors.Cause(err)
	if k, ok := sentinelKind[cause]; ok {
		return k
	}
	for e := err; e != nil; e = errors.Unwrap(e) {
		if k, ok := sentinelKind[e]; ok {
			return k
		}
		if _, ok := e.(*IOError); ok {
			return KindIO
		}
	}
	return KindIO
}
