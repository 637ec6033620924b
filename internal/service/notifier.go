package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/tennisclub/court-admin/internal/client"
	"github.com/tennisclub/court-admin/internal/store"
	appErrors "github.com/tennisclub/court-admin/pkg/errors"
)

// Level is the severity of a toast.
type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Toast is a user facing notification.
type Toast struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// Notifier receives toasts emitted by components.
type Notifier interface {
	Notify(level Level, message string)
}

// Toasts collects the toasts of one request.
type Toasts struct {
	mu    sync.Mutex
	items []Toast
}

// Notify implements Notifier.
func (t *Toasts) Notify(level Level, message string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.items = append(t.items, Toast{Level: level, Message: message})
}

// Items returns the collected toasts in emission order.
func (t *Toasts) Items() []Toast {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Toast{}, t.items...)
}

// Scope carries the per-session collaborators of one console operation.
type Scope struct {
	State    *store.State
	Notifier Notifier
}

func (s Scope) notify(level Level, message string) {
	if s.Notifier != nil {
		s.Notifier.Notify(level, message)
	}
}

// Reloader refreshes the block list after a mutation.
type Reloader interface {
	Reload(ctx context.Context, scope Scope) error
}

// ValidationError reports local form validation failures per field.
type ValidationError struct {
	Fields map[string]string
	err    *appErrors.Error
}

func newValidationError(message string, fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields, err: appErrors.Clone(appErrors.ErrValidation, message)}
}

func (e *ValidationError) Error() string {
	return e.err.Error()
}

// Unwrap exposes the typed error so handlers map it to a 400.
func (e *ValidationError) Unwrap() error {
	return e.err
}

// upstreamFailure turns a backend outcome into a toast and an error. It returns
// nil when the call succeeded.
func upstreamFailure[T any](scope Scope, res client.Result[T], err error, fallback string) error {
	if err != nil {
		scope.notify(LevelError, fallback)
		return err
	}
	if !res.Success {
		msg := res.Message(fallback)
		scope.notify(LevelError, msg)
		return appErrors.Clone(appErrors.ErrUpstreamRejected, msg)
	}
	return nil
}

// reloadAfter refreshes the block list following a successful mutation. A
// failed reload does not undo the mutation: the loader has already toasted
// it, so the error is only logged here.
func reloadAfter(ctx context.Context, r Reloader, scope Scope, logger *zap.Logger) {
	if r == nil {
		return
	}
	if err := r.Reload(ctx, scope); err != nil && logger != nil {
		logger.Debug("reload after mutation failed", zap.Error(err))
	}
}
