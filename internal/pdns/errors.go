package pdns

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"nathanbeddoewebdev/pdnsctl/internal/pdns/domain"
)

// APIError is a non-2xx answer from the PowerDNS API.
// It unwraps to the domain sentinel matching its status code, so callers
// can use errors.Is(err, domain.ErrNotFound) and friends.
type APIError struct {
	StatusCode int
	Message    string
	Body       string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("pdns: HTTP %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("pdns: HTTP %d", e.StatusCode)
}

// Unwrap maps HTTP status codes to domain sentinels.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return domain.ErrUnauthorized
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusConflict:
		return domain.ErrConflict
	case http.StatusUnprocessableEntity:
		return domain.ErrUnprocessable
	case http.StatusTooManyRequests:
		return domain.ErrRateLimited
	}
	return nil
}

// errorBody is the error envelope PowerDNS sends with 4xx and 5xx answers.
type errorBody struct {
	Error  string   `json:"error"`
	Errors []string `json:"errors"`
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status, Body: string(body)}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil && eb.Error != "" {
		apiErr.Message = eb.Error
		if len(eb.Errors) > 0 {
			apiErr.Message += " (" + strings.Join(eb.Errors, "; ") + ")"
		}
		return apiErr
	}

	apiErr.Message = strings.TrimSpace(string(body))
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}
	return apiErr
}

// NonJSONError is returned when a successful response could not be decoded.
// Body holds the raw response so callers can still use it.
type NonJSONError struct {
	Body string
	Err  error
}

func (e *NonJSONError) Error() string {
	return fmt.Sprintf("pdns: %v: %v", domain.ErrNonJSON, e.Err)
}

func (e *NonJSONError) Unwrap() error {
	return domain.ErrNonJSON
}
