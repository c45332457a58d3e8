package ingest

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedBody indicates the request body is not valid JSON. Callers are
// expected to retry with a form-encoded parse before treating it as fatal.
var ErrMalformedBody = errors.New("body is not valid JSON")

// ErrEmptyPayload indicates an array payload with zero elements.
var ErrEmptyPayload = errors.New("payload array is empty")

// InvalidPayloadError reports a payload missing its mandatory name or phone
// key. Keys carries the producer's original key names for debugging.
type InvalidPayloadError struct {
	MissingName  bool
	MissingPhone bool
	Keys         []string
}

func (e *InvalidPayloadError) Error() string {
	missing := make([]string, 0, 2)
	if e.MissingName {
		missing = append(missing, "nome")
	}
	if e.MissingPhone {
		missing = append(missing, "telefone")
	}
	return fmt.Sprintf("payload missing required fields: %s", strings.Join(missing, ", "))
}

// MissingFieldError reports a mandatory field whose key was present but whose
// extracted value was empty.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}
