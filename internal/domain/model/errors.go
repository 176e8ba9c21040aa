package model

import "errors"

// Sentinel kinds for model construction errors.
var (
	ErrUnknownRole         = errors.New("unknown role")
	ErrEmptySubject        = errors.New("empty subject")
	ErrSubjectNotLowercase = errors.New("subject must be lowercase")
	ErrNonFiniteScore      = errors.New("score must be finite")
	ErrInvalidEntity       = errors.New("invalid entity")
)
