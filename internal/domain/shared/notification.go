package shared

import "time"

// Severity classifies a notification for the presentation layer
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Notification is emitted by the catalog facade after every command
type Notification struct {
	Message   string    `json:"message"`
	Severity  Severity  `json:"severity"`
	Operation string    `json:"operation"`
	Code      string    `json:"code,omitempty"` // DomainError code for failures and warnings
	At        time.Time `json:"at"`
}

// IsFailure reports whether the notification describes a failed command
func (n Notification) IsFailure() bool {
	return n.Severity == SeverityError
}
