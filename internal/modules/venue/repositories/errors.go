package repositories

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrDuplicate        = errors.New("already exists")
	ErrInvalid          = errors.New("invalid input")
	ErrSystemCategory   = errors.New("system category cannot be deleted")
	ErrQuestionTooShort = errors.New("question must be at least 3 characters")
)

// MinQuestionLen is the shortest knowledge question accepted from the editor.
const MinQuestionLen = 3
