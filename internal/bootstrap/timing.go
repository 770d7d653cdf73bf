package bootstrap

import (
	"context"
	"time"

	"github.com/bnema/voyage/internal/logging"
)

type phase struct {
	name string
	took time.Duration
}

// StartupTimer records how long each wiring phase of NewBrowser took.
// It is used from a single goroutine.
type StartupTimer struct {
	start  time.Time
	last   time.Time
	phases []phase
}

// NewStartupTimer starts timing now.
func NewStartupTimer() *StartupTimer {
	now := time.Now()
	return &StartupTimer{start: now, last: now}
}

// Mark closes the current phase under name.
func (t *StartupTimer) Mark(name string) {
	now := time.Now()
	t.phases = append(t.phases, phase{name: name, took: now.Sub(t.last)})
	t.last = now
}

// Log writes every phase as one debug event.
func (t *StartupTimer) Log(ctx context.Context) {
	event := logging.FromContext(ctx).Debug().Dur("total", time.Since(t.start))
	for _, p := range t.phases {
		event = event.Dur(p.name, p.took)
	}
	event.Msg("browser wiring timing")
}
