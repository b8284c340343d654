package services

import (
	"fmt"
	"net/mail"
	"strings"
)

// FieldError describes a single rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates every field that failed validation so callers
// can report all problems in one response instead of one at a time.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "services: validation failed"
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "services: validation failed: " + strings.Join(parts, "; ")
}

type fieldErrors struct {
	fields []FieldError
}

func (v *fieldErrors) add(field, message string) {
	v.fields = append(v.fields, FieldError{Field: field, Message: message})
}

func (v *fieldErrors) requireString(field, value, message string) {
	if strings.TrimSpace(value) == "" {
		v.add(field, message)
	}
}

func (v *fieldErrors) err() error {
	if len(v.fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: v.fields}
}

func validEmail(address string) bool {
	addr, err := mail.ParseAddress(strings.TrimSpace(address))
	return err == nil && addr.Address == strings.TrimSpace(address)
}
