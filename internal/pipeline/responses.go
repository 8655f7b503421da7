package pipeline

import (
	"fmt"
	"net/http"

	"newsroom/internal/domain"
)

const (
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeNotFound        = "NOT_FOUND"
	CodeInternal        = "INTERNAL"
)

// Client-facing messages are fixed per failure class; stages log the real
// cause and never leak it in the body.
const (
	MsgUnauthenticated = "Sorry — log in and try again."
	MsgUnauthorized    = "You are not authorized to perform this action."
	MsgInternal        = "Sorry — something bad happened."
)

func TerminateUnauthenticated() Result {
	return Terminate(http.StatusUnauthorized, CodeUnauthenticated, MsgUnauthenticated)
}

func TerminateUnauthorized() Result {
	return Terminate(http.StatusForbidden, CodeUnauthorized, MsgUnauthorized)
}

func TerminateInternal() Result {
	return Terminate(http.StatusInternalServerError, CodeInternal, MsgInternal)
}

func TerminateNotFound(entity domain.Entity) Result {
	return Terminate(http.StatusNotFound, CodeNotFound, fmt.Sprintf("The %s does not exist.", entity))
}
