package exitcode

import (
	"errors"
)

// Coder is an interface to control what value Get returns.
type Coder interface {
	error
	ExitCode() int
}

// Get gets the exit code associated with an error. Cases:
//
//	nil => 0
//	errors implementing Coder => value returned by ExitCode
//	all other errors => 1
func Get(err error) int {
	if err == nil {
		return 0
	}

	if coder := Coder(nil); errors.As(err, &coder) {
		return coder.ExitCode()
	}

	return 1
}

// Set wraps an error in a Coder, setting its error code.
func Set(err error, code int) error {
	if err == nil {
		return nil
	}
	return coder{err, code}
}

var _ Coder = coder{}

type coder struct {
	error
	int
}

func (co coder) ExitCode() int {
	return co.int
}

func (co coder) Unwrap() error {
	return co.error
}

// Usage marks an error in the command line itself. These exit with code 2.
func Usage(err error) error {
	return Set(err, 2)
}

// ErrReported stands in for failures whose messages were already written to
// the log. Callers should exit with code 1 without printing anything else.
var ErrReported = errors.New("errors were reported")

func IsReported(err error) bool {
	return errors.Is(err, ErrReported)
}
