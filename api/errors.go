package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	errs "github.com/cookieshop/storefront/internal/errors"
)

// maxErrorBody bounds how much of a failed response is read for a message.
const maxErrorBody = 4096

// Error is a failed backend response mapped onto the client's error
// taxonomy: validation errors block submission and are shown inline,
// authorization errors redirect to login or deny the render, everything else
// is surfaced as a generic alert with a best-effort server message.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// Unwrap maps the HTTP status onto the sentinel taxonomy so call sites can
// branch with errors.Is.
func (e *Error) Unwrap() error {
	switch e.StatusCode {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return errs.ErrValidation
	case http.StatusUnauthorized:
		return errs.ErrUnauthorized
	case http.StatusForbidden:
		return errs.ErrForbidden
	case http.StatusNotFound:
		return errs.ErrNotFound
	default:
		return errs.ErrServer
	}
}

// newError extracts a server-provided message where one exists. The backend
// answers sometimes with plain text, sometimes with {"message": ...}.
func newError(resp *http.Response) *Error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	message := strings.TrimSpace(string(body))
	var wrapped struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil && wrapped.Message != "" {
		message = wrapped.Message
	} else if strings.HasPrefix(message, "{") {
		// JSON without a usable message field; not worth showing raw
		message = ""
	}

	return &Error{StatusCode: resp.StatusCode, Message: message}
}
