package random

import "github.com/pkg/errors"

var (
	ErrConstraintUnsatisfiable = errors.New("random: spacing constraint unsatisfiable")
	ErrInvalidSize             = errors.New("random: size must not be negative")
)
