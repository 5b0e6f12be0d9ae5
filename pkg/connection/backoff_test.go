package connection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackoff(t *testing.T) {
	t.Run("DefaultSequence", func(t *testing.T) {
		b := NewBackoff()

		expected := []time.Duration{
			250 * time.Millisecond,
			500 * time.Millisecond,
			1 * time.Second,
			2 * time.Second,
			4 * time.Second,
			5 * time.Second,
			5 * time.Second,
		}
		for i, exp := range expected {
			assert.Equal(t, exp, b.Current(), "attempt %d", i)
			b.Next()
		}
	})

	t.Run("Jitter", func(t *testing.T) {
		b := NewBackoff()

		upper := time.Duration(float64(InitialBackoff) * (1 + JitterFactor))
		for i := 0; i < 20; i++ {
			d := b.Peek()
			assert.GreaterOrEqual(t, d, InitialBackoff)
			assert.LessOrEqual(t, d, upper)
		}
	})

	t.Run("Reset", func(t *testing.T) {
		b := NewBackoff()
		for i := 0; i < 3; i++ {
			b.Next()
		}
		require.Greater(t, b.Current(), InitialBackoff)
		require.Equal(t, 3, b.Attempts())

		b.Reset()
		assert.Equal(t, InitialBackoff, b.Current())
		assert.Zero(t, b.Attempts())
	})

	t.Run("CustomConfig", func(t *testing.T) {
		b := NewBackoffWithConfig(BackoffConfig{
			Initial:    10 * time.Millisecond,
			Max:        50 * time.Millisecond,
			Multiplier: 3,
			Jitter:     -1,
		})

		got := []time.Duration{b.Next(), b.Next(), b.Next(), b.Next()}
		assert.Equal(t, []time.Duration{
			10 * time.Millisecond,
			30 * time.Millisecond,
			50 * time.Millisecond,
			50 * time.Millisecond,
		}, got)
	})

	t.Run("MaxBelowInitial", func(t *testing.T) {
		b := NewBackoffWithConfig(BackoffConfig{
			Initial: time.Second,
			Max:     time.Millisecond,
		})
		assert.Equal(t, []time.Duration{time.Second}, b.Sequence())
	})
}

func TestBackoffSequence(t *testing.T) {
	seq := NewBackoff().Sequence()

	require.Len(t, seq, 6)
	assert.Equal(t, InitialBackoff, seq[0])
	assert.Equal(t, MaxBackoff, seq[len(seq)-1])
}
