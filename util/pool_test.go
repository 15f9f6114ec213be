package util

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"gotest.tools/v3/assert"
)

func TestPoolBound(t *testing.T) {
	var running, peak int32
	p := NewPool(2)

	for i := 0; i < 8; i++ {
		p.Go(func() error {
			n := atomic.AddInt32(&running, 1)
			for {
				old := atomic.LoadInt32(&peak)
				if n <= old || atomic.CompareAndSwapInt32(&peak, old, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			atomic.AddInt32(&running, -1)
			return nil
		})
	}

	assert.NilError(t, p.Wait())
	assert.Assert(t, atomic.LoadInt32(&peak) <= 2)
}

func TestPoolError(t *testing.T) {
	boom := errors.New("boom")
	p := NewPool(0)

	p.Go(func() error { return nil })
	p.Go(func() error { return boom })
	p.Go(func() error { return nil })

	assert.ErrorIs(t, p.Wait(), boom)
}
