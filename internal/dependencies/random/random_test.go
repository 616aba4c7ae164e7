package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCryptoRandomIntnInRange(t *testing.T) {
	r := New()
	for range 200 {
		v := r.Intn(3)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 3)
	}
	assert.Zero(t, r.Intn(0))
}

func TestSeededRandomIsReproducible(t *testing.T) {
	a := NewSeeded(42)
	b := NewSeeded(42)
	for range 100 {
		assert.Equal(t, a.Intn(6), b.Intn(6))
	}
	assert.Equal(t, NewSeeded(5).String(16, "abc"), NewSeeded(5).String(16, "abc"))
}

func TestSeededRandomDiffersAcrossSeeds(t *testing.T) {
	a := NewSeeded(1).String(32, "0123456789")
	b := NewSeeded(2).String(32, "0123456789")
	assert.NotEqual(t, a, b)
}

func TestStringUsesAlphabet(t *testing.T) {
	s := New().String(64, "xy")
	assert.Len(t, s, 64)
	for _, c := range s {
		assert.Contains(t, "xy", string(c))
	}
	assert.Empty(t, New().String(0, "xy"))
	assert.Empty(t, New().String(4, ""))
}

func TestLockedMatchesWrappedSequence(t *testing.T) {
	plain := NewSeeded(7)
	locked := NewLocked(NewSeeded(7))
	for range 50 {
		assert.Equal(t, plain.Intn(6), locked.Intn(6))
	}
	assert.Equal(t, plain.String(8, "abc"), locked.String(8, "abc"))
}

func TestLockedIsSafeForConcurrentUse(t *testing.T) {
	locked := NewLocked(NewSeeded(3))
	done := make(chan struct{})
	for range 8 {
		go func() {
			defer func() { done <- struct{}{} }()
			for range 500 {
				v := locked.Intn(3)
				assert.GreaterOrEqual(t, v, 0)
				assert.Less(t, v, 3)
			}
		}()
	}
	for range 8 {
		<-done
	}
}
