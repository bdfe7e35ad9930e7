package utils

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebounce_CoalescesBursts(t *testing.T) {
	var calls atomic.Int32
	d := Debounce(func() { calls.Add(1) }, 30*time.Millisecond)

	for i := 0; i < 5; i++ {
		d.Trigger()
		time.Sleep(5 * time.Millisecond)
	}

	assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestDebounce_Stop(t *testing.T) {
	var calls atomic.Int32
	d := Debounce(func() { calls.Add(1) }, 20*time.Millisecond)

	assert.False(t, d.Stop())

	d.Trigger()
	assert.True(t, d.Stop())

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
}
