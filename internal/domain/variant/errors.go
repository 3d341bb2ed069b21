package variant

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownVariant is returned for a variant outside the known set.
	ErrUnknownVariant = errors.New("unknown build variant")
	// ErrUnsignedRelease is returned when policy requires release signing and no credentials exist.
	ErrUnsignedRelease = errors.New("release build has no signing credentials")
)

// InvalidConstraintError reports SDK levels that break minimum <= target <= compile.
type InvalidConstraintError struct {
	// Constraints holds the offending triple.
	Constraints SdkConstraints
}

// Error implements the error interface.
func (e *InvalidConstraintError) Error() string {
	c := e.Constraints

	switch {
	case c.Min > c.Target:
		return fmt.Sprintf("invalid sdk constraints: min sdk %d is greater than target sdk %d", c.Min, c.Target)
	case c.Target > c.Compile:
		return fmt.Sprintf("invalid sdk constraints: target sdk %d is greater than compile sdk %d", c.Target, c.Compile)
	default:
		return fmt.Sprintf("invalid sdk constraints: min=%d target=%d compile=%d", c.Min, c.Target, c.Compile)
	}
}

// MalformedCredentialsError reports a credentials source that exists but lacks required fields.
type MalformedCredentialsError struct {
	// Path is the location of the credentials source.
	Path string
	// Missing lists the required keys that are absent or empty.
	Missing []string
	// Err is the syntax error when the source could not be parsed at all.
	Err error
}

// Error implements the error interface.
func (e *MalformedCredentialsError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed signing credentials %s: %v", e.Path, e.Err)
	}

	return fmt.Sprintf("malformed signing credentials %s: missing %s", e.Path, strings.Join(e.Missing, ", "))
}

// Unwrap returns the underlying syntax error, if any.
func (e *MalformedCredentialsError) Unwrap() error {
	return e.Err
}
