package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sort"
)

var (
	// ErrUnavailable marks transport-level failures: the server could not be
	// reached or did not answer within the deadline.
	ErrUnavailable = errors.New("server unavailable")

	// ErrUnauthorized is returned when a request is rejected with 401 outside
	// of the sign-in/sign-up flows.
	ErrUnauthorized = errors.New("unauthorized")
)

// genericAuthMessage is shown when the server's error payload carries neither
// a message nor field-level errors.
const genericAuthMessage = "authentication failed"

// AuthError is a sign-in/sign-up rejection. Message is user-facing: the
// server-supplied message when present, otherwise the first field-level
// validation error, otherwise a generic string.
type AuthError struct {
	StatusCode int
	Message    string
}

func (e *AuthError) Error() string {
	return e.Message
}

// errorPayload is the error body shape shared by the auth endpoints:
// a message plus optional per-field validation errors.
type errorPayload struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

// message resolves the user-facing text, walking field errors in key order
// so the result is deterministic.
func (p *errorPayload) message() string {
	if p.Message != "" {
		return p.Message
	}
	keys := make([]string, 0, len(p.Errors))
	for k := range p.Errors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if msgs := p.Errors[k]; len(msgs) > 0 && msgs[0] != "" {
			return msgs[0]
		}
	}
	return genericAuthMessage
}

// authErrorFromResponse builds an *AuthError from a non-2xx auth response.
// An unparsable body degrades to the generic message.
func authErrorFromResponse(resp *http.Response) *AuthError {
	e := &AuthError{StatusCode: resp.StatusCode, Message: genericAuthMessage}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return e
	}
	var p errorPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return e
	}
	e.Message = p.message()
	return e
}
