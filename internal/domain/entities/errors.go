package entities

import (
	"github.com/cockroachdb/errors"
)

// Error classes. Every error raised by this package is marked with exactly
// one of them; test with errors.Is.
var (
	// ErrFormat reports a malformed identifier or GUID serialization.
	ErrFormat = errors.New("format error")
	// ErrTypeMismatch reports an entity kind that does not match the one expected.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrIllegalState reports a mutation of a value that is fixed once set.
	ErrIllegalState = errors.New("illegal state")
)

func formatErrorf(format string, args ...any) error {
	return errors.Mark(errors.Newf(format, args...), ErrFormat)
}

func typeMismatchf(format string, args ...any) error {
	return errors.Mark(errors.Newf(format, args...), ErrTypeMismatch)
}

func illegalStatef(format string, args ...any) error {
	return errors.Mark(errors.Newf(format, args...), ErrIllegalState)
}

// NewTypeMismatchError builds an ErrTypeMismatch error for callers outside
// this package that compare entity kinds.
func NewTypeMismatchError(expected, actual Kind) error {
	return typeMismatchf("expected entity kind %q, got %q", expected, actual)
}
