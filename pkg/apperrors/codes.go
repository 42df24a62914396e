package apperrors

// ErrorCode is a stable, machine-readable error identifier. Clients key UI
// states off these values, so they must never change once published.
type ErrorCode string

const (
	// System errors
	CodeInternalError ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError ErrorCode = "DATABASE_ERROR"

	// Caller errors
	CodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	CodeUnprocessable   ErrorCode = "UNPROCESSABLE"
	CodeNotFound        ErrorCode = "NOT_FOUND"
	CodeConflict        ErrorCode = "CONFLICT"
	CodeInvalidState    ErrorCode = "INVALID_STATE"

	// Authentication and authorization
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"
	CodeForbidden    ErrorCode = "FORBIDDEN"
	CodeInvalidToken ErrorCode = "INVALID_TOKEN"
)
