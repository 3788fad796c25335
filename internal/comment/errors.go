package comment

import "errors"

var (
	ErrNotClassOwner   = errors.New("student's class does not belong to this teacher")
	ErrCommentNotFound = errors.New("comment not found")
)

// GenerationError wraps any failure of the external generation call:
// transport errors, provider errors and malformed responses alike.
// Nothing is persisted when it occurs.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return "comment generation failed: " + e.Err.Error()
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// StorageError means the generation call succeeded but the result could not
// be stored. Callers can distinguish it from GenerationError because the
// generated text existed and was lost; the service logs it before returning.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string {
	return "comment generated but not stored: " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
