package services

import (
	"errors"
	"fmt"
)

var (
	ErrTopicNotFound     = errors.New("topic not found")
	ErrSubtopicNotFound  = errors.New("subtopic not found")
	ErrQuestionNotFound  = errors.New("question not found")
	ErrTextbookNotFound  = errors.New("textbook not found")
	ErrTextbookExists    = errors.New("textbook id already exists")
	ErrValidationFailed  = errors.New("validation failed")
	ErrNoTopicSelected   = errors.New("no topic selected")
	ErrTextbookIDChanged = errors.New("textbook id cannot be changed")
)

// ValidationError is a single business rule failure raised by a service
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

func NewValidationError(field, message string, value interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: message, Value: value}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}
