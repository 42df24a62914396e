package apperrors

import "net/http"

// Factories and predefined errors for the match and chat domains.

// ErrNotFound converts a repository miss (e.g. gorm.ErrRecordNotFound) into a 404.
func ErrNotFound(err error, domain, message string) *AppError {
	return Wrap(err, CodeNotFound, domain, message, http.StatusNotFound)
}

// ErrConflict converts a storage-level uniqueness violation into a 409.
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrInvalidState rejects a state-machine transition from a terminal or
// incompatible status.
func ErrInvalidState(domain, message string) *AppError {
	return New(CodeInvalidState, domain, message, http.StatusConflict)
}

// ErrInvalidArgument flags malformed caller input outside struct validation
// (paging bounds, unknown enum values).
func ErrInvalidArgument(domain, message string) *AppError {
	return New(CodeInvalidArgument, domain, message, http.StatusBadRequest)
}

// --- Feed ---

var ErrUnknownScene = New(
	CodeInvalidArgument,
	"feed",
	"Unknown scene",
	http.StatusBadRequest,
)

var ErrUnknownRole = New(
	CodeInvalidArgument,
	"feed",
	"Unknown role for this scene",
	http.StatusBadRequest,
)

// --- Matches ---

var ErrCardNotFound = New(
	CodeNotFound,
	"match",
	"Card not found",
	http.StatusNotFound,
)

var ErrMatchNotFound = New(
	CodeNotFound,
	"match",
	"Match not found",
	http.StatusNotFound,
)

var ErrNotParticipant = New(
	CodeForbidden,
	"match",
	"You are not a participant of this match",
	http.StatusForbidden,
)

var ErrInvalidAction = New(
	CodeInvalidArgument,
	"match",
	"Invalid action",
	http.StatusBadRequest,
)

// --- Chat ---

var ErrMessageNotFound = New(
	CodeNotFound,
	"chat",
	"Message not found",
	http.StatusNotFound,
)

var ErrInvalidMessageType = New(
	CodeInvalidArgument,
	"chat",
	"Invalid message type",
	http.StatusBadRequest,
)
