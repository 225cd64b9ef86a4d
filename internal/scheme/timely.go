package scheme

import (
	"context"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
)

// DefaultTimeout bounds a single preview or export generation.
const DefaultTimeout = 5 * time.Second

type timelyResult struct {
	values []string
	err    error
}

// GenerateTimely runs fn on its own goroutine and waits at most timeout for
// it. fn receives a context that is cancelled when GenerateTimely returns, so
// a generator that honours its context is released on timeout. A timeout is
// reported as a GenerationError with key KeyTimedOut; any other error from fn
// is passed through unchanged. A panic in fn is recovered on the worker and
// reported as a GenerationError with key KeyGenerationFailed.
func GenerateTimely(ctx context.Context, timeout time.Duration, fn func(ctx context.Context) ([]string, error)) ([]string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan timelyResult, 1)
	env := Env{Context: ctx}
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- timelyResult{err: env.recovered(r)}
			}
		}()
		values, err := fn(ctx)
		done <- timelyResult{values: values, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil && ctx.Err() != nil {
			return nil, env.Err()
		}
		return res.values, res.err
	case <-ctx.Done():
		return nil, env.Err()
	}
}

// GenerateWithin is GenerateTimely applied to Generate: it produces count
// values of s in env, giving up after timeout.
func GenerateWithin(env Env, s Scheme, count int, timeout time.Duration) ([]string, error) {
	return GenerateTimely(env.Context, timeout, func(ctx context.Context) ([]string, error) {
		env.Context = ctx
		return Generate(env, s, count)
	})
}

// recovered converts a panic value from a generator into a GenerationError.
func (env Env) recovered(r any) *GenerationError {
	cause, ok := r.(error)
	if !ok {
		cause = errors.Newf("%v", r)
	}
	genErr := env.failure(KeyGenerationFailed, fmt.Sprint(r))
	genErr.cause = errors.Wrap(cause, "generator panicked")
	return genErr
}
