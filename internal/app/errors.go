package app

import "errors"

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrInvalidCredential    = errors.New("invalid username or password")
	ErrChatNotFound         = errors.New("chat not found")
	ErrMessageNotFound      = errors.New("message not found")
	ErrConversationNotFound = errors.New("conversation not found")
	ErrFavoriteNotFound     = errors.New("favorite not found")
	ErrRatingNotFound       = errors.New("rating not found")
	ErrMessageEnqueue       = errors.New("message enqueue failed")
	ErrUserNotFound         = errors.New("user not found")
)

// FieldError is a validation failure tied to one input field. It matches
// ErrInvalidInput under errors.Is.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Reason
}

func (e *FieldError) Unwrap() error {
	return ErrInvalidInput
}

func fieldError(field, reason string) error {
	return &FieldError{Field: field, Reason: reason}
}
