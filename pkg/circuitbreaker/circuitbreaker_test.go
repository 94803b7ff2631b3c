package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCircuitBreaker_OpensAfterMaxFailures(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	cb := NewCircuitBreaker(Settings{
		Name:        "test",
		MaxFailures: 2,
		Timeout:     time.Minute,
		Now:         func() time.Time { return now },
	})
	boom := errors.New("boom")

	assert.ErrorIs(t, cb.Execute(func() error { return boom }), boom)
	assert.Equal(t, StateClosed, cb.State())
	assert.ErrorIs(t, cb.Execute(func() error { return boom }), boom)
	assert.Equal(t, StateOpen, cb.State())

	called := false
	err := cb.Execute(func() error { called = true; return nil })
	assert.ErrorIs(t, err, ErrOpen)
	assert.False(t, called)
}

func TestCircuitBreaker_HalfOpenRecovers(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	cb := NewCircuitBreaker(Settings{
		MaxFailures: 1,
		Timeout:     time.Minute,
		Now:         func() time.Time { return now },
	})

	_ = cb.Execute(func() error { return errors.New("boom") })
	assert.Equal(t, StateOpen, cb.State())

	now = now.Add(2 * time.Minute)
	assert.NoError(t, cb.Execute(func() error { return nil }))
	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	cb := NewCircuitBreaker(Settings{
		MaxFailures: 3,
		Timeout:     time.Minute,
		Now:         func() time.Time { return now },
	})

	for i := 0; i < 3; i++ {
		_ = cb.Execute(func() error { return errors.New("boom") })
	}
	now = now.Add(2 * time.Minute)
	_ = cb.Execute(func() error { return errors.New("still down") })
	assert.Equal(t, StateOpen, cb.State())
}
