package main

import (
	"fmt"
	"unicode/utf8"
)

// Request field limits. Content graphs are bounded separately by
// maxBodySize; these guard the scalar fields that end up in filenames and
// database rows.
const (
	maxProjectNameLen = 200
)

// ValidationError reports which request field failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateProjectName bounds the project name length. Empty names are
// allowed; exports fall back to a default base name.
func ValidateProjectName(name string) error {
	if utf8.RuneCountInString(name) > maxProjectNameLen {
		return &ValidationError{
			Field:   "name",
			Message: fmt.Sprintf("must not exceed %d characters", maxProjectNameLen),
		}
	}
	return nil
}
