package model

import "github.com/pkg/errors"

var (
	ErrInvalidShape  = errors.New("model: shape must be positive")
	ErrEmptyVelSeed  = errors.New("model: velseed must not be empty")
	ErrShapeMismatch = errors.New("model: shape mismatch")
	ErrNoInterface   = errors.New("model: interfaces are not set")
)
