package scheme

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTimely_TimesOutAndReleasesWorker(t *testing.T) {
	released := make(chan struct{})
	start := time.Now()

	values, err := GenerateTimely(context.Background(), 50*time.Millisecond, func(ctx context.Context) ([]string, error) {
		defer close(released)
		<-ctx.Done()
		return nil, ctx.Err()
	})

	assert.Nil(t, values)
	assert.True(t, IsTimeout(err), "got %v", err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 2*time.Second)

	select {
	case <-released:
	case <-time.After(2 * time.Second):
		t.Fatal("worker goroutine was not released")
	}
}

func TestGenerateTimely_ReturnsResult(t *testing.T) {
	values, err := GenerateTimely(context.Background(), time.Second, func(context.Context) ([]string, error) {
		return []string{"a", "b"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, values)
}

func TestGenerateTimely_PassesErrorsThrough(t *testing.T) {
	boom := errors.New("boom")
	_, err := GenerateTimely(context.Background(), time.Second, func(context.Context) ([]string, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, IsTimeout(err))
}

func TestGenerateTimely_ParentCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := GenerateTimely(ctx, time.Second, func(ctx context.Context) ([]string, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})
	genErr, ok := AsGenerationError(err)
	if ok {
		assert.Equal(t, KeyCancelled, genErr.Key)
	} else {
		assert.ErrorIs(t, err, context.Canceled)
	}
}

func TestGenerateTimely_RecoversPanic(t *testing.T) {
	values, err := GenerateTimely(context.Background(), time.Second, func(context.Context) ([]string, error) {
		panic("invalid argument to IntN")
	})
	assert.Nil(t, values)
	genErr, ok := AsGenerationError(err)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, KeyGenerationFailed, genErr.Key)
	assert.Contains(t, genErr.Message, "invalid argument to IntN")

	boom := errors.New("boom")
	_, err = GenerateTimely(context.Background(), time.Second, func(context.Context) ([]string, error) {
		panic(boom)
	})
	assert.ErrorIs(t, err, boom)
}

func TestGenerateWithin_HugeStringTimesOut(t *testing.T) {
	s := NewStringScheme()
	s.MinLength, s.MaxLength = 1<<40, math.MaxInt
	env := testEnv(nil)
	require.Nil(t, s.Validate(env))

	start := time.Now()
	_, err := GenerateWithin(env, s, 1, 50*time.Millisecond)
	assert.True(t, IsTimeout(err), "got %v", err)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestGenerateWithin(t *testing.T) {
	list := DefaultTemplateList()
	env := testEnv(list)
	values, err := GenerateWithin(env, list.Templates[0], 10, DefaultTimeout)
	require.NoError(t, err)
	assert.Len(t, values, 10)
}
