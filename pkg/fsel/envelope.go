// Package fsel is the HTTP client for the FSEL platform gateways (auth,
// user admin, course, ordering). Every gateway wraps responses in the same
// envelope; this package normalizes it so callers only ever see decoded
// results or a single error string.
package fsel

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Envelope is the platform's uniform response wrapper. A call succeeded only
// when the HTTP status is 2xx AND IsOK is true; either alone is not enough.
type Envelope struct {
	IsOK          bool            `json:"isOK"`
	Result        json.RawMessage `json:"result"`
	ErrorMessages []ErrorMessage  `json:"errorMessages"`
	StatusCode    int             `json:"statusCode"`
	Message       string          `json:"message"`
}

// FieldError is one field's rejection inside a structured error message.
type FieldError struct {
	FieldName   string   `json:"fieldName"`
	ErrorValues []string `json:"errorValues"`
}

// ErrorMessage is one entry of the envelope's errorMessages array. The
// gateways emit either a plain string or a structured object; both decode
// into this type.
type ErrorMessage struct {
	Text      string
	ErrorCode string
	Errors    []FieldError
}

// UnmarshalJSON accepts both encodings. Unknown shapes decode to empty,
// never to a decode failure: a malformed error entry must not mask the
// call's actual failure.
func (m *ErrorMessage) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		m.Text = s
		return nil
	}
	var structured struct {
		ErrorCode string       `json:"errorCode"`
		Errors    []FieldError `json:"errors"`
	}
	if err := json.Unmarshal(data, &structured); err == nil {
		m.ErrorCode = structured.ErrorCode
		m.Errors = structured.Errors
		return nil
	}
	return nil
}

// String flattens one error message to human text.
//
// Structured entries render as "CODE - field: v1, v2; field2: v3"; entries
// with a code but no field details render as the code alone; plain strings
// pass through unchanged.
func (m ErrorMessage) String() string {
	if m.Text != "" {
		return m.Text
	}
	if m.ErrorCode == "" && len(m.Errors) == 0 {
		return ""
	}
	if len(m.Errors) == 0 {
		return m.ErrorCode
	}
	parts := make([]string, 0, len(m.Errors))
	for _, fe := range m.Errors {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.FieldName, strings.Join(fe.ErrorValues, ", ")))
	}
	details := strings.Join(parts, "; ")
	if m.ErrorCode == "" {
		return details
	}
	return fmt.Sprintf("%s - %s", m.ErrorCode, details)
}

// ErrorText extracts the envelope's best human-readable error. It joins all
// errorMessages entries, falls back to the top-level message, then to def.
func (e *Envelope) ErrorText(def string) string {
	parts := make([]string, 0, len(e.ErrorMessages))
	for _, m := range e.ErrorMessages {
		if s := m.String(); s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, ", ")
	}
	if e.Message != "" {
		return e.Message
	}
	return def
}
