package domain

import "errors"

var (
	// ErrEmptyInput is returned when a scoring or normalization step
	// receives no values to work on.
	ErrEmptyInput = errors.New("empty input: no sample values")

	// ErrDivisionByZero is returned when a normalization step would
	// divide by a zero maximum. Failing here keeps NaN out of the
	// downstream combination.
	ErrDivisionByZero = errors.New("division by zero: maximum value is zero")
)
