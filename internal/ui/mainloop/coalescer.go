package mainloop

import (
	"sync"

	"github.com/bnema/voyage/internal/application/port"
)

var _ port.KeyedPoster = (*Coalescer)(nil)

// Coalescer merges bursts of same-key tasks: only the latest function
// posted for a key before the loop gets to it runs.
type Coalescer struct {
	mu        sync.Mutex
	latest    map[string]func()
	scheduler port.Scheduler
	destroyed bool
}

func NewCoalescer(scheduler port.Scheduler) *Coalescer {
	if scheduler == nil {
		panic("mainloop.NewCoalescer: scheduler cannot be nil")
	}
	return &Coalescer{
		latest:    make(map[string]func()),
		scheduler: scheduler,
	}
}

func (c *Coalescer) Post(key string, fn func()) {
	if fn == nil || key == "" {
		return
	}

	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	_, queued := c.latest[key]
	c.latest[key] = fn
	c.mu.Unlock()
	if queued {
		return
	}

	c.scheduler.Post(func() {
		c.mu.Lock()
		run := c.latest[key]
		delete(c.latest, key)
		destroyed := c.destroyed
		c.mu.Unlock()

		if run != nil && !destroyed {
			run()
		}
	})
}

// Pending reports how many keys are waiting to run.
func (c *Coalescer) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.latest)
}

func (c *Coalescer) Destroy() {
	c.mu.Lock()
	c.destroyed = true
	c.latest = map[string]func(){}
	c.mu.Unlock()
}
