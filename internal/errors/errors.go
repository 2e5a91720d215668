package errors

import (
	"context"
	"errors"
	"net/http"
)

var (
	// ErrUnauthorized is returned when no authenticated caller identity is present.
	ErrUnauthorized = errors.New("authentication required")
	// ErrNotLenderRole is returned when a non-LENDER tries to lend a pet.
	ErrNotLenderRole = errors.New("only users with LENDER role can lend pets")
	// ErrInvalidPetID is returned when the pet id is missing or not numeric.
	ErrInvalidPetID = errors.New("invalid pet ID")
	// ErrInvalidPetData is returned when pet fields are missing or malformed.
	ErrInvalidPetData = errors.New("name and breed are required and age must not be negative")
	// ErrInvalidRole is returned when a role value is not OWNER or LENDER.
	ErrInvalidRole = errors.New("invalid role")
	// ErrUserNotFound is returned when the referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrPetNotFound is returned when the referenced pet does not exist.
	ErrPetNotFound = errors.New("pet not found")
	// ErrPetAlreadyLent is returned when lending a pet that is not AVAILABLE.
	ErrPetAlreadyLent = errors.New("pet is already lent")
	// ErrPetNotLent is returned when returning a pet that is not LENT.
	ErrPetNotLent = errors.New("pet cannot be returned")
	// ErrOwnPetLend is returned when an owner tries to lend their own pet.
	ErrOwnPetLend = errors.New("you cannot lend your own pet")
	// ErrNotCurrentLender is returned in strict-return mode when the caller
	// is not the pet's recorded lender.
	ErrNotCurrentLender = errors.New("only the current lender can return this pet")
	// ErrStoreUnavailable is returned when the store did not respond within bounds.
	ErrStoreUnavailable = errors.New("storage temporarily unavailable")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// FromStore normalizes store-level failures: deadline and cancellation errors
// become ErrStoreUnavailable, anything else passes through untouched.
func FromStore(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return ErrStoreUnavailable
	}
	return err
}

// MapErrorToHTTP maps domain errors to HTTP errors. Replaying the same input
// against unchanged state always yields the same (code, message) pair.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUnauthorized):
		return NewHTTPError(http.StatusUnauthorized, ErrUnauthorized.Error(), "UNAUTHORIZED")
	case errors.Is(err, ErrNotLenderRole):
		return NewHTTPError(http.StatusForbidden, ErrNotLenderRole.Error(), "FORBIDDEN")
	case errors.Is(err, ErrNotCurrentLender):
		return NewHTTPError(http.StatusForbidden, ErrNotCurrentLender.Error(), "NOT_CURRENT_LENDER")
	case errors.Is(err, ErrInvalidPetID):
		return NewHTTPError(http.StatusBadRequest, ErrInvalidPetID.Error(), "INVALID_PET_ID")
	case errors.Is(err, ErrInvalidPetData):
		return NewHTTPError(http.StatusBadRequest, ErrInvalidPetData.Error(), "INVALID_PET_DATA")
	case errors.Is(err, ErrInvalidRole):
		return NewHTTPError(http.StatusBadRequest, ErrInvalidRole.Error(), "INVALID_ROLE")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, ErrUserNotFound.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrPetNotFound):
		return NewHTTPError(http.StatusNotFound, ErrPetNotFound.Error(), "PET_NOT_FOUND")
	case errors.Is(err, ErrPetAlreadyLent):
		return NewHTTPError(http.StatusConflict, ErrPetAlreadyLent.Error(), "PET_ALREADY_LENT")
	case errors.Is(err, ErrPetNotLent):
		return NewHTTPError(http.StatusConflict, ErrPetNotLent.Error(), "PET_NOT_LENT")
	case errors.Is(err, ErrOwnPetLend):
		return NewHTTPError(http.StatusUnprocessableEntity, ErrOwnPetLend.Error(), "OWN_PET_LEND")
	case errors.Is(err, ErrStoreUnavailable):
		return NewHTTPError(http.StatusServiceUnavailable, ErrStoreUnavailable.Error(), "STORE_UNAVAILABLE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
