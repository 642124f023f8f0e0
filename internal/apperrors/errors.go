package apperrors

import "net/http"

// ServiceErrorType distinguishes caller mistakes from server-side failures.
type ServiceErrorType string

const (
	ClientErrorType ServiceErrorType = "client_error"
	ServerErrorType ServiceErrorType = "server_error"
)

// ServiceError is the typed result returned across component contracts.
// Errors are always returned, never thrown across the boundary; the handler
// layer translates them into HTTP responses.
type ServiceError struct {
	Code             string           `json:"code"`
	Type             ServiceErrorType `json:"type"`
	Error            string           `json:"error"`
	ErrorDescription string           `json:"error_description,omitempty"`
}

var (
	InternalServerError = ServiceError{
		Type:             ServerErrorType,
		Code:             "ASE-5000",
		Error:            "internal_server_error",
		ErrorDescription: "An unexpected error occurred",
	}

	DatabaseError = ServiceError{
		Type:             ServerErrorType,
		Code:             "ASE-5001",
		Error:            "database_error",
		ErrorDescription: "A database error occurred",
	}

	InvalidRequestError = ServiceError{
		Type:             ClientErrorType,
		Code:             "ACE-4000",
		Error:            "invalid_request",
		ErrorDescription: "The request is invalid",
	}

	ValidationError = ServiceError{
		Type:             ClientErrorType,
		Code:             "ACE-4001",
		Error:            "validation_error",
		ErrorDescription: "Validation failed",
	}

	NotFoundError = ServiceError{
		Type:             ClientErrorType,
		Code:             "ACE-4004",
		Error:            "not_found",
		ErrorDescription: "Resource not found",
	}

	ConflictError = ServiceError{
		Type:             ClientErrorType,
		Code:             "ACE-4009",
		Error:            "conflict",
		ErrorDescription: "A pending access request already exists for this subject and requester",
	}

	ExpiredError = ServiceError{
		Type:             ClientErrorType,
		Code:             "ACE-4010",
		Error:            "expired",
		ErrorDescription: "The access request has expired",
	}

	MismatchError = ServiceError{
		Type:             ClientErrorType,
		Code:             "ACE-4011",
		Error:            "code_mismatch",
		ErrorDescription: "The submitted code does not match",
	}

	AttemptsExhaustedError = ServiceError{
		Type:             ClientErrorType,
		Code:             "ACE-4012",
		Error:            "attempts_exhausted",
		ErrorDescription: "The maximum number of verification attempts has been reached",
	}

	GrantExpiredError = ServiceError{
		Type:             ClientErrorType,
		Code:             "ACE-4013",
		Error:            "grant_expired",
		ErrorDescription: "The access grant has expired",
	}

	GrantInsufficientScopeError = ServiceError{
		Type:             ClientErrorType,
		Code:             "ACE-4014",
		Error:            "grant_insufficient_scope",
		ErrorDescription: "The access grant does not carry the required capability",
	}

	ScopeViolationError = ServiceError{
		Type:             ClientErrorType,
		Code:             "ACE-4015",
		Error:            "scope_violation",
		ErrorDescription: "The access grant is scoped to a different subject",
	}
)

// New returns a copy of the base error with a specific description.
func New(baseError ServiceError, description string) *ServiceError {
	return &ServiceError{
		Type:             baseError.Type,
		Code:             baseError.Code,
		Error:            baseError.Error,
		ErrorDescription: description,
	}
}

// Is reports whether err carries the same error code as base.
func Is(err *ServiceError, base ServiceError) bool {
	return err != nil && err.Code == base.Code
}

// HTTPStatus maps a service error to its HTTP status code.
func HTTPStatus(err *ServiceError) int {
	if err == nil {
		return http.StatusOK
	}
	if err.Type == ServerErrorType {
		return http.StatusInternalServerError
	}
	switch err.Code {
	case NotFoundError.Code:
		return http.StatusNotFound
	case ConflictError.Code:
		return http.StatusConflict
	case ExpiredError.Code:
		return http.StatusGone
	case AttemptsExhaustedError.Code,
		GrantExpiredError.Code,
		GrantInsufficientScopeError.Code,
		ScopeViolationError.Code:
		return http.StatusForbidden
	default:
		return http.StatusBadRequest
	}
}
