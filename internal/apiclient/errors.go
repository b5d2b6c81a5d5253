package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"
)

// ErrUnauthorized is reported for every 401. The session has already been
// invalidated by the time a caller sees it.
var ErrUnauthorized = errors.New("unauthorized")

type StatusCodeRange int

const (
	StatusUnknown StatusCodeRange = iota
	Status1xx
	Status2xx
	Status3xx
	Status4xx
	Status5xx
)

func (sc StatusCodeRange) String() string {
	switch sc {
	case Status1xx:
		return "informational response"
	case Status2xx:
		return "success"
	case Status3xx:
		return "redirect"
	case Status4xx:
		return "client error"
	case Status5xx:
		return "server error"
	default:
		return fmt.Sprintf("unknown (%d)", sc)
	}
}

func StatusCodeRangeOf(code int) StatusCodeRange {
	switch {
	case code < 100:
		return StatusUnknown
	case code < 200:
		return Status1xx
	case code < 300:
		return Status2xx
	case code < 400:
		return Status3xx
	case code < 500:
		return Status4xx
	case code < 600:
		return Status5xx
	default:
		return StatusUnknown
	}
}

// Error is a non-2xx backend response. Message is the server's own text
// when it sent one.
type Error struct {
	Status  int
	Message string
	Body    []byte
}

func (e *Error) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
}

func (e *Error) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}

// StatusOf reports the backend status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// MessageOf returns the backend's message for err, falling back to fallback
// when the error did not come from a backend response or the response had
// no body.
func MessageOf(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" && len(apiErr.Body) > 0 {
		return apiErr.Message
	}
	return fallback
}

func checkStatus(resp *http.Response) error {
	if StatusCodeRangeOf(resp.StatusCode) == Status2xx {
		return nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return &Error{
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("%s\ncannot read server message: %s", StatusCodeRangeOf(resp.StatusCode), err),
		}
	}

	message := parseErrorMessage(body)
	if message == "" {
		message = StatusCodeRangeOf(resp.StatusCode).String()
	}
	return &Error{Status: resp.StatusCode, Message: message, Body: body}
}

func parseErrorMessage(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return ""
	}

	var payload struct {
		Message *string `json:"message"`
		Error   *string `json:"error"`
		Detail  *string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		for _, candidate := range []*string{payload.Message, payload.Error, payload.Detail} {
			if candidate != nil && strings.TrimSpace(*candidate) != "" {
				return *candidate
			}
		}
		return ""
	}

	return truncateRunes(trimmed, 500)
}

// truncateRunes cuts s to at most n bytes without splitting a rune.
func truncateRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
