package util

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest, details)
}

// NewRoleError rejects signup requests that carry an unknown role.
func NewRoleError(role string) error {
	return NewDomainError("ROLE_ERROR", "user must have a defined role", http.StatusBadRequest,
		map[string]any{"role": role})
}

func NewUnauthenticated(message string) error {
	return NewDomainError("UNAUTHENTICATED", message, http.StatusUnauthorized, nil)
}

// NewInvalidCredentials deliberately conflates "no such university ID" and
// "wrong password" into one message so login failures stay indistinguishable.
func NewInvalidCredentials() error {
	return NewDomainError("INVALID_CREDENTIALS", "incorrect university ID or password", http.StatusUnauthorized, nil)
}

func NewDeanNotFound(name string) error {
	return NewDomainError("DEAN_NOT_FOUND", fmt.Sprintf("dean %q not found", name), http.StatusNotFound, nil)
}

func NewSlotNotFound(message string) error {
	return NewDomainError("SLOT_NOT_FOUND", message, http.StatusNotFound, nil)
}

// NewBookingConflict reports that the optimistic-concurrency retry budget was
// exhausted while contending for a dean's slot pool.
func NewBookingConflict() error {
	return NewDomainError("BOOKING_CONFLICT", "slot pool is under contention, please retry", http.StatusConflict, nil)
}

func NewConflict(message string, details map[string]any) error {
	return NewDomainError("CONFLICT", message, http.StatusConflict, details)
}

// NewPersistenceError wraps a store failure without leaking its detail.
func NewPersistenceError(err error) error {
	return &DomainError{
		Code:       "PERSISTENCE_ERROR",
		Message:    "storage operation failed",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code := "REQUEST_FAILED"
		if fiberErr.Code == http.StatusNotFound {
			code = "NOT_FOUND"
		}
		return NewDomainError(code, fiberErr.Message, fiberErr.Code, nil)
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return NewDomainError("NOT_FOUND", "resource not found", http.StatusNotFound, nil)
	}
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func MapError(err error) error {
	return ToDomainError(err)
}
