package errs

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrTransitionNotAllowed = errors.New("transition is not allowed")
	ErrActorNotAuthorized   = errors.New("actor is not authorized")
	ErrConflict             = errors.New("conflict")
	ErrWindowClosed         = errors.New("window is closed")
)

// TransitionNotAllowedError reports a state change the current status does not permit.
type TransitionNotAllowedError struct {
	From string
	To   string
}

func NewTransitionNotAllowedError(from, to string) *TransitionNotAllowedError {
	return &TransitionNotAllowedError{From: from, To: to}
}

func (e *TransitionNotAllowedError) Error() string {
	return fmt.Sprintf("%s: from %s to %s", ErrTransitionNotAllowed, e.From, e.To)
}

func (e *TransitionNotAllowedError) Unwrap() error {
	return ErrTransitionNotAllowed
}

// ActorNotAuthorizedError reports an actor whose role or identity does not
// match the party allowed to perform Action.
type ActorNotAuthorizedError struct {
	Role   string
	Action string
}

func NewActorNotAuthorizedError(role, action string) *ActorNotAuthorizedError {
	return &ActorNotAuthorizedError{Role: role, Action: action}
}

func (e *ActorNotAuthorizedError) Error() string {
	return fmt.Sprintf("%s: %s cannot %s", ErrActorNotAuthorized, e.Role, e.Action)
}

func (e *ActorNotAuthorizedError) Unwrap() error {
	return ErrActorNotAuthorized
}

// ConflictError reports a write that collides with existing state of Resource.
type ConflictError struct {
	Resource string
	Cause    error
}

func NewConflictError(resource string) *ConflictError {
	return &ConflictError{Resource: resource}
}

func NewConflictErrorWithCause(resource string, cause error) *ConflictError {
	return &ConflictError{Resource: resource, Cause: cause}
}

func (e *ConflictError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrConflict, e.Resource, sanitize(e.Cause.Error()))
	}
	return fmt.Sprintf("%s: %s", ErrConflict, e.Resource)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// WindowClosedError reports an action attempted after its deadline.
type WindowClosedError struct {
	Action   string
	Deadline time.Time
}

func NewWindowClosedError(action string, deadline time.Time) *WindowClosedError {
	return &WindowClosedError{Action: action, Deadline: deadline}
}

func (e *WindowClosedError) Error() string {
	return fmt.Sprintf("%s: %s was allowed until %s",
		ErrWindowClosed, e.Action, e.Deadline.UTC().Format(time.RFC3339))
}

func (e *WindowClosedError) Unwrap() error {
	return ErrWindowClosed
}
