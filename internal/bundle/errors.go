package bundle

import (
	"errors"
	"fmt"
)

var (
	// ErrDecode matches every *DecodeError.
	ErrDecode = errors.New("bundle catalog decode failed")

	// ErrNoBundle means the catalog holds no bundle. It is not a failure:
	// the engine answers it with an empty operation list.
	ErrNoBundle = errors.New("no bundle in catalog")

	// ErrUnknownStrategy indicates an unsupported match strategy.
	ErrUnknownStrategy = errors.New("unknown bundle strategy")

	// ErrInvalidBundleID indicates a bundle id that is not a positive integer.
	ErrInvalidBundleID = errors.New("bundle id must be a positive integer")

	// ErrUnknownParentSource indicates an unsupported parent source.
	ErrUnknownParentSource = errors.New("unknown parent source")

	errMissingValue = errors.New("value is missing")
	errNotArray     = errors.New("value is not a JSON array")
)

// DecodeError reports a catalog or line tag payload that could not be decoded.
type DecodeError struct {
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrDecode, e.Field, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrDecode) match any DecodeError.
func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}
