package domain

import "errors"

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrUnsolvable      = errors.New("grid is not solvable")
	ErrNotPlaying      = errors.New("moves are only accepted while playing")
	ErrWrongPhase      = errors.New("operation not allowed in current phase")
	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidLevels   = errors.New("invalid level configuration")
)
