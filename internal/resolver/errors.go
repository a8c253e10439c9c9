package resolver

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

// internalErrorMessage is the only thing a client ever sees when a
// download fails for reasons other than a missing record. The wrapped
// cause stays in the logs.
const internalErrorMessage = "An internal error occurred while serving your download."

// Error is a request-terminal failure with a fixed HTTP status and a
// fixed client-facing message. The five not-found kinds below are
// sentinel values; download failures carry a wrapped cause.
type Error struct {
	Status  int
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

var (
	ErrProjectNotFound  = &Error{Status: fiber.StatusNotFound, Message: "Project not found."}
	ErrVersionNotFound  = &Error{Status: fiber.StatusNotFound, Message: "Version not found."}
	ErrBuildNotFound    = &Error{Status: fiber.StatusNotFound, Message: "Build not found."}
	ErrGroupNotFound    = &Error{Status: fiber.StatusNotFound, Message: "Group not found."}
	ErrDownloadNotFound = &Error{Status: fiber.StatusNotFound, Message: "Download not found."}
)

// DownloadFailed wraps an unexpected failure while locating or opening
// an artifact. The cause is annotated with a stack for the logs but
// never rendered to the client.
func DownloadFailed(cause error) error {
	return &Error{
		Status:  fiber.StatusInternalServerError,
		Message: internalErrorMessage,
		cause:   errors.WithStack(cause),
	}
}
