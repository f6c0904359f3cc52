package apperror

import "errors"

var (
	ErrGameFinished     = errors.New("game is already finished")
	ErrCorruptedHistory = errors.New("game history is corrupted")
	ErrInvalidMark      = errors.New("invalid mark")
	ErrInvalidStep      = errors.New("snapshot is not a single legal move")
	ErrSessionNotFound  = errors.New("session not found")
	ErrInvalidCell      = errors.New("invalid cell index")
	ErrInvalidMove      = errors.New("invalid move index")
)
