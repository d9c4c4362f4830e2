// Package utils provides utility functions for the Routinely application.
package utils

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Common error types for reuse. Compare with errors.Is; the match is on Code.
var (
	ErrBadRequest          = NewError(fiber.StatusBadRequest, "Invalid request")
	ErrUnauthorized        = NewError(fiber.StatusUnauthorized, "Unauthorized")
	ErrForbidden           = NewError(fiber.StatusForbidden, "Forbidden")
	ErrNotFound            = NewError(fiber.StatusNotFound, "Resource not found")
	ErrConflict            = NewError(fiber.StatusConflict, "Conflict")
	ErrInternalServerError = NewError(fiber.StatusInternalServerError, "Internal server error")
)

// CustomError represents a structured error for the web app.
type CustomError struct {
	Code    int      `json:"code"`
	Message string   `json:"message"`
	Details string   `json:"details,omitempty"`
	Fields  []CError `json:"fields,omitempty"`
}

// NewError creates a new Error with a status code, message, and optional details.
func NewError(code int, message string, details ...string) *CustomError {
	e := &CustomError{
		Code:    code,
		Message: message,
	}
	if len(details) > 0 {
		e.Details = details[0]
	}
	return e
}

// NewValidationError builds a bad request error carrying per-field messages.
func NewValidationError(resp *ErrorResponse) *CustomError {
	e := NewError(ErrBadRequest.Code, "Validation failed")
	if resp != nil {
		e.Fields = resp.Errors
	}
	return e
}

// FieldError is a shortcut for a validation failure on a single field.
func FieldError(field, msg string) *CustomError {
	return NewValidationError(&ErrorResponse{Errors: []CError{{Field: field, Msg: msg}}})
}

// Error implements the error interface.
func (e *CustomError) Error() string {
	return fmt.Sprintf("status %d: %s", e.Code, e.Message)
}

// Is matches any CustomError with the same status code.
func (e *CustomError) Is(target error) bool {
	t, ok := target.(*CustomError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithCause returns a copy of the error with the underlying cause as details.
func (e *CustomError) WithCause(err error) *CustomError {
	c := *e
	if err != nil {
		c.Details = err.Error()
	}
	return &c
}

// Field returns the message recorded for field, if any.
func (e *CustomError) Field(field string) (string, bool) {
	for _, f := range e.Fields {
		if f.Field == field {
			return f.Msg, true
		}
	}
	return "", false
}

// HandleError sends a standardized error response using GoFiber.
func HandleError(c *fiber.Ctx, err error) error {
	var appErr *CustomError

	if As(err, &appErr) {
		details := appErr.Details
		if appErr.Code >= 500 {
			details = ""
		}
		return c.Status(appErr.Code).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    appErr.Code,
				"message": appErr.Message,
				"details": details,
				"fields":  appErr.Fields,
			},
		})
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    fe.Code,
				"message": fe.Message,
			},
		})
	}

	// Fallback for unhandled errors
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    fiber.StatusInternalServerError,
			"message": "Something went wrong",
		},
	})
}

// WrapError wraps an existing error with a custom status and message.
func WrapError(err error, code int, message string) *CustomError {
	return NewError(code, message, err.Error())
}

// As unwraps err into a *CustomError target.
func As(err error, target **CustomError) bool {
	if err == nil {
		return false
	}
	return errors.As(err, target)
}

// CodeOf returns the status code carried by err, 500 for foreign errors and 0 for nil.
func CodeOf(err error) int {
	if err == nil {
		return 0
	}
	var appErr *CustomError
	if As(err, &appErr) {
		return appErr.Code
	}
	return ErrInternalServerError.Code
}
