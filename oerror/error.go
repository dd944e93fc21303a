package oerror

import "fmt"

// Error is returned (or panicked with) when a caller breaks one of lvrc's contracts.
type Error struct {
	Err string
}

// New formats a new Error.
func New(format string, args ...any) *Error {
	if len(args) == 0 {
		return &Error{Err: format}
	}
	return &Error{Err: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	return e.Err
}

var (
	// ErrNotTeleporting is returned when teleport parameters are requested outside of teleport mode.
	ErrNotTeleporting = New("lvrc: teleport mode is not active")
	// ErrNoTracking is returned when the HMD has no valid pose.
	ErrNoTracking = New("lvrc: HMD pose is not tracked")
)
