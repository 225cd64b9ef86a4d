package scheme

import (
	"github.com/cockroachdb/errors"
)

// ValidationError reports why a configuration cannot currently generate data.
// It is returned by Validate and never panicked.
type ValidationError struct {
	Key     string // message key, stable across locales
	Message string // localized text
}

func (e *ValidationError) Error() string {
	return e.Message
}

// GenerationError is the typed failure of a generation call. Callers at a UI
// or tool boundary catch it with AsGenerationError and show Message.
type GenerationError struct {
	Key     string
	Message string
	cause   error
}

func (e *GenerationError) Error() string {
	return e.Message
}

func (e *GenerationError) Unwrap() error {
	return e.cause
}

// AsGenerationError reports whether err is, or wraps, a *GenerationError.
func AsGenerationError(err error) (*GenerationError, bool) {
	var genErr *GenerationError
	if errors.As(err, &genErr) {
		return genErr, true
	}
	return nil, false
}

// IsTimeout reports whether err is a generation error caused by a timeout.
func IsTimeout(err error) bool {
	genErr, ok := AsGenerationError(err)
	return ok && genErr.Key == KeyTimedOut
}

func (env Env) invalid(key string, args ...any) *ValidationError {
	return &ValidationError{Key: key, Message: env.messages().Message(key, args...)}
}

func (env Env) failure(key string, args ...any) *GenerationError {
	return &GenerationError{Key: key, Message: env.messages().Message(key, args...)}
}

func (env Env) failureFrom(problem *ValidationError) *GenerationError {
	return &GenerationError{Key: problem.Key, Message: problem.Message, cause: problem}
}

// wrapFailure turns an arbitrary error from a generator into a GenerationError,
// leaving existing GenerationErrors untouched.
func (env Env) wrapFailure(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := AsGenerationError(err); ok {
		return err
	}
	genErr := env.failure(KeyGenerationFailed, err.Error())
	genErr.cause = err
	return genErr
}

// contractViolation panics with an assertion failure. It is reserved for
// invariants the core guarantees to itself; hitting one is a caller bug.
func contractViolation(format string, args ...any) {
	panic(errors.AssertionFailedf(format, args...))
}
