package utils

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// ErrExecSequential runs functions in order and accumulates their errors.
// Execution stops early only on a critical CustomError.
func ErrExecSequential(functions ...func() error) error {
	var multErr error

	for _, one := range functions {
		err := one()
		if err != nil {
			multErr = multierror.Append(multErr, err)

			if customErr, ok := err.(*CustomError); ok && customErr.ShouldStop() {
				break
			}
		}
	}

	return multErr
}

// ErrExecFormat formats the error returned from a function according to the provided format string.
func ErrExecFormat(format string, function func() error) func() error {
	return func() error {
		if err := function(); err != nil {
			return fmt.Errorf(format, err)
		}
		return nil
	}
}

// CustomError represents a custom error type with an additional field to indicate if execution should stop.
type CustomError struct {
	Message  string
	Severity string
}

func (e *CustomError) Error() string {
	return e.Message
}

// ShouldStop checks if the custom error indicates that execution should be halted.
func (e *CustomError) ShouldStop() bool {
	return e.Severity == "critical"
}

// Critical wraps err so that ErrExecSequential stops after it.
func Critical(err error) error {
	if err == nil {
		return nil
	}
	return &CustomError{Message: err.Error(), Severity: "critical"}
}
