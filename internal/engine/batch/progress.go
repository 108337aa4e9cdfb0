package batch

import "sync"

// counter serialises progress notifications from concurrent chunks.
type counter struct {
	mu    sync.Mutex
	done  int
	total int
	fn    ProgressFunc
}

func newCounter(total int, fn ProgressFunc) *counter {
	return &counter{total: total, fn: fn}
}

func (c *counter) add(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.done += n
	if c.fn != nil {
		c.fn(c.done, c.total)
	}
}
