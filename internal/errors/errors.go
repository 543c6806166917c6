package errors

import (
	"errors"
	"fmt"
)

// NotFoundError represents an error when an entity is not found
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

// Is enables errors.Is() comparison for NotFoundError
func (e *NotFoundError) Is(target error) bool {
	t, ok := target.(*NotFoundError)
	if !ok {
		return false
	}
	return e.Entity == t.Entity
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// ConfigurationError represents configuration-related errors
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

// IntakeErrorKind classifies a failed intake step
type IntakeErrorKind string

const (
	KindLookupFailure       IntakeErrorKind = "lookup_failure"
	KindPersistenceFailure  IntakeErrorKind = "persistence_failure"
	KindNotificationFailure IntakeErrorKind = "notification_failure"
)

// IntakeError is returned by a single step of the intake workflow.
// Step names the operation that failed (e.g. "find_customer", "notify_admin").
type IntakeError struct {
	Kind IntakeErrorKind
	Step string
	Err  error
}

func (e *IntakeError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s during %s", e.Kind, e.Step)
	}
	return fmt.Sprintf("%s during %s: %v", e.Kind, e.Step, e.Err)
}

func (e *IntakeError) Unwrap() error {
	return e.Err
}

// Is matches another IntakeError of the same kind; an empty Step on the target matches any step.
func (e *IntakeError) Is(target error) bool {
	t, ok := target.(*IntakeError)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Step == "" || t.Step == e.Step
}

// Entity Not Found Errors
var (
	ErrCustomerNotFound = &NotFoundError{Entity: "customer"}
	ErrEmployeeNotFound = &NotFoundError{Entity: "employee"}
	ErrInquiryNotFound  = &NotFoundError{Entity: "inquiry"}
)

// Intake step errors, usable as errors.Is targets
var (
	ErrLookupFailure       = &IntakeError{Kind: KindLookupFailure}
	ErrPersistenceFailure  = &IntakeError{Kind: KindPersistenceFailure}
	ErrNotificationFailure = &IntakeError{Kind: KindNotificationFailure}
)

// Configuration Errors
var (
	ErrSMTPConfigMissing = &ConfigurationError{Message: "smtp configuration missing: SMTP_HOST"}
	ErrLDAPConfigMissing = &ConfigurationError{Message: "ldap configuration missing: LDAP_HOST or LDAP_BASE_DN"}
)

// Business Logic Errors
var (
	ErrUnknownLookupField = errors.New("unknown lookup field")
	ErrNoRecipients       = errors.New("message has no recipients")
)

// Helper Functions

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsConfiguration checks if an error is a ConfigurationError
func IsConfiguration(err error) bool {
	var configErr *ConfigurationError
	return errors.As(err, &configErr)
}

// IsLookupFailure checks if an error came from a directory lookup step
func IsLookupFailure(err error) bool {
	return errors.Is(err, ErrLookupFailure)
}

// IsPersistenceFailure checks if an error came from the inquiry store
func IsPersistenceFailure(err error) bool {
	return errors.Is(err, ErrPersistenceFailure)
}

// IsNotificationFailure checks if an error came from sending a notification
func IsNotificationFailure(err error) bool {
	return errors.Is(err, ErrNotificationFailure)
}

// KindOf returns the kind of an IntakeError in the chain, or "" if there is none
func KindOf(err error) IntakeErrorKind {
	var intakeErr *IntakeError
	if errors.As(err, &intakeErr) {
		return intakeErr.Kind
	}
	return ""
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewConfigurationError creates a new ConfigurationError
func NewConfigurationError(message string) error {
	return &ConfigurationError{Message: message}
}

// NewLookupFailure wraps err as a LookupFailure of the given step
func NewLookupFailure(step string, err error) error {
	return &IntakeError{Kind: KindLookupFailure, Step: step, Err: err}
}

// NewPersistenceFailure wraps err as a PersistenceFailure of the given step
func NewPersistenceFailure(step string, err error) error {
	return &IntakeError{Kind: KindPersistenceFailure, Step: step, Err: err}
}

// NewNotificationFailure wraps err as a NotificationFailure of the given step
func NewNotificationFailure(step string, err error) error {
	return &IntakeError{Kind: KindNotificationFailure, Step: step, Err: err}
}
