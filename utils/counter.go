package utils

import "sync/atomic"

// Counter is safe to increment from one goroutine while others read it.
type Counter uint64

func (c *Counter) Increment() uint64 {
	return atomic.AddUint64((*uint64)(c), 1)
}

func (c *Counter) Uint64() uint64 {
	return atomic.LoadUint64((*uint64)(c))
}

// IncrementBelow increments only while the counter is lower than limit.
func (c *Counter) IncrementBelow(limit uint64) bool {
	for {
		current := c.Uint64()
		if current >= limit {
			return false
		}
		if atomic.CompareAndSwapUint64((*uint64)(c), current, current+1) {
			return true
		}
	}
}

// DecrementAbove decrements only while the counter is higher than limit.
func (c *Counter) DecrementAbove(limit uint64) bool {
	for {
		current := c.Uint64()
		if current <= limit {
			return false
		}
		if atomic.CompareAndSwapUint64((*uint64)(c), current, current-1) {
			return true
		}
	}
}
