// Package notify carries transient user-facing notifications from the view
// controllers to whatever surface renders them.
package notify

// Kind classifies a notification.
type Kind int

const (
	Success Kind = iota
	Error
	Info
)

// Func receives notifications emitted by a controller. Implementations must
// be safe to call from background goroutines.
type Func func(kind Kind, message string)
