package httpclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Error ops.
const (
	OpEncode    = "encode"
	OpTransport = "transport"
	OpRead      = "read"
	OpStatus    = "status"
	OpDecode    = "decode"
)

const maxMessageLen = 512

// Error is the uniform failure returned by the client.
type Error struct {
	Op         string
	Method     string
	Path       string
	StatusCode int
	Message    string
	Body       []byte
	Err        error
}

func (e *Error) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("api %s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("api %s %s: %s: %v", e.Method, e.Path, e.Op, e.Err)
	default:
		return fmt.Sprintf("api %s %s: %s", e.Method, e.Path, e.Op)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsTransport reports whether err is a network-level failure: the request
// never produced an HTTP status.
func IsTransport(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Op == OpTransport
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return 0
}

// messageFrom extracts a human-readable message from an error response:
// a JSON "message" or "error" field, else the trimmed text, else fallback.
func messageFrom(body []byte, fallback string) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(body, &payload) == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}

	text := strings.TrimSpace(string(body))
	if text == "" {
		return fallback
	}
	if len(text) > maxMessageLen {
		text = truncate(text, maxMessageLen) + "..."
	}
	return text
}

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
