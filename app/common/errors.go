package common

import (
	"fmt"
)

type UserVisibleError struct {
	HttpCode int
	Message  string
	// Field names the offending request parameter, when there is one.
	Field string
}

func (e *UserVisibleError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("Error %d: %s (parameter %q)", e.HttpCode, e.Message, e.Field)
	}
	return fmt.Sprintf("Error %d: %s", e.HttpCode, e.Message)
}

func NewUserVisibleError(httpCode int, message string) *UserVisibleError {
	return &UserVisibleError{
		HttpCode: httpCode,
		Message:  message,
	}
}

func NewBadParameter(field, message string) *UserVisibleError {
	return &UserVisibleError{
		HttpCode: 400,
		Message:  message,
		Field:    field,
	}
}

func WrapErrorForResponse(err error, message string) error {
	if e, ok := err.(*UserVisibleError); ok {
		return &UserVisibleError{
			HttpCode: e.HttpCode,
			Message:  fmt.Sprintf("%s: %s", message, e.Message),
			Field:    e.Field,
		}
	}
	return err
}
