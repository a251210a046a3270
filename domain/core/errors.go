package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// ErrInsufficientGroups means fewer than two valid groups were supplied.
	// This is an expected idle state, not a failure: no analysis ran.
	ErrInsufficientGroups = errors.New("at least 2 groups are required for analysis")

	// ErrDegenerateInput means a group cannot be tested (zero variance, or a
	// statistical capability returned a non-numeric result for it).
	ErrDegenerateInput = errors.New("degenerate input")

	// ErrComputation means an underlying statistical capability failed for a
	// reason other than degenerate input. Computations are single-shot and
	// never retried.
	ErrComputation = errors.New("statistical computation failed")

	// Input validation errors
	ErrEmptyGroupName     = errors.New("group name cannot be empty")
	ErrDuplicateGroupName = errors.New("duplicate group name")
	ErrGroupTooSmall      = errors.New("group needs at least 3 values")
)

// Error constructors with context

func NewDegenerateInputError(group string, reason string) error {
	return fmt.Errorf("%w: group %q: %s", ErrDegenerateInput, group, reason)
}

func NewComputationError(test string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrComputation, test, err)
}

// Error checking helpers

func IsInsufficientGroups(err error) bool {
	return errors.Is(err, ErrInsufficientGroups)
}

func IsDegenerateInput(err error) bool {
	return errors.Is(err, ErrDegenerateInput)
}

func IsComputationError(err error) bool {
	return errors.Is(err, ErrComputation)
}
