package config

import "fmt"

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

const maxPortNumber = 65535

// validatePort checks that a port number is in the valid range.
func validatePort(field string, port int) error {
	if port < 1 || port > maxPortNumber {
		return &ValidationError{Field: field, Message: "must be between 1 and 65535"}
	}
	return nil
}
