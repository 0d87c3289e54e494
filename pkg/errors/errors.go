package errors

import (
	"fmt"
)

// ParseError represents a YAML parsing failure with optional line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures configuration validation issues.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// PersistenceParseError reports a stored view-state document that is not valid JSON.
type PersistenceParseError struct {
	Namespace string
	Err       error
}

// NewPersistenceParseError constructs a PersistenceParseError.
func NewPersistenceParseError(namespace string, err error) error {
	return &PersistenceParseError{Namespace: namespace, Err: err}
}

func (e *PersistenceParseError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("persisted state %q is malformed: %v", e.Namespace, e.Err)
	}
	return fmt.Sprintf("persisted state %q is malformed", e.Namespace)
}

// Unwrap exposes the underlying error.
func (e *PersistenceParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// PersistenceWriteError reports a failed write to the backing storage.
type PersistenceWriteError struct {
	Namespace string
	Err       error
}

// NewPersistenceWriteError constructs a PersistenceWriteError.
func NewPersistenceWriteError(namespace string, err error) error {
	return &PersistenceWriteError{Namespace: namespace, Err: err}
}

func (e *PersistenceWriteError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("persist state %q: %v", e.Namespace, e.Err)
}

// Unwrap exposes the underlying error.
func (e *PersistenceWriteError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ConfigReferenceError indicates a color mode targeting a field the table does not have.
type ConfigReferenceError struct {
	Table string
	Mode  string
	Field string
}

// NewConfigReferenceError constructs a ConfigReferenceError.
func NewConfigReferenceError(table, mode, field string) error {
	return &ConfigReferenceError{Table: table, Mode: mode, Field: field}
}

func (e *ConfigReferenceError) Error() string {
	if e == nil {
		return ""
	}
	if e.Table != "" {
		return fmt.Sprintf("color mode %q of table %s references unknown field %q", e.Mode, e.Table, e.Field)
	}
	return fmt.Sprintf("color mode %q references unknown field %q", e.Mode, e.Field)
}
