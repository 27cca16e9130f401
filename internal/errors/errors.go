package errors

import "fmt"

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// AppError classifies failures so the central handler can decide what the user
// sees and what gets reported. NonCritical errors are logged and swallowed;
// they must never alter the primary flow's outcome.
type AppError struct {
	Code        string
	Message     string
	UserMessage string
	Severity    Severity
	NonCritical bool
	cause       error
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}

	return e.Message
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.cause
}

// NewValidationError covers malformed user input: bad links, empty names,
// missing contacts, non-numeric ids, wrong passwords. Always recovered by
// re-prompting in place.
func NewValidationError(msg string) *AppError {
	return &AppError{
		Code:     "E100",
		Message:  msg,
		Severity: SeverityLow,
	}
}

// NewNotFoundError covers lookups for identities that do not exist.
func NewNotFoundError(msg string) *AppError {
	return &AppError{
		Code:     "E110",
		Message:  msg,
		Severity: SeverityLow,
	}
}

// NewDatabaseError covers store failures.
func NewDatabaseError(cause error) *AppError {
	var underlyingMsg string
	if cause != nil {
		underlyingMsg = cause.Error()
	}

	return &AppError{
		Code:        "E200",
		Message:     fmt.Sprintf("database error: %s", underlyingMsg),
		UserMessage: "Xatolik yuz berdi. Keyinroq urinib ko'ring.",
		Severity:    SeverityHigh,
		cause:       cause,
	}
}

// NewDeliveryError covers a single unreachable broadcast recipient. It is
// counted per recipient and never aborts the batch.
func NewDeliveryError(recipientID int64, cause error) *AppError {
	return &AppError{
		Code:        "E300",
		Message:     fmt.Sprintf("delivery to %d failed", recipientID),
		Severity:    SeverityLow,
		NonCritical: true,
		cause:       cause,
	}
}

// NewReactionError covers the best-effort message reaction. Its failure is
// fully swallowed.
func NewReactionError(cause error) *AppError {
	return &AppError{
		Code:        "E310",
		Message:     "message reaction failed",
		Severity:    SeverityLow,
		NonCritical: true,
		cause:       cause,
	}
}

// NewStartupError covers fatal boot failures such as a missing credential.
func NewStartupError(msg string, cause error) *AppError {
	return &AppError{
		Code:     "E900",
		Message:  msg,
		Severity: SeverityCritical,
		cause:    cause,
	}
}
