package usecase_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/bnema/voyage/internal/domain/entity"
	"github.com/bnema/voyage/internal/logging"
)

func testContext() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

func counterIDs(prefix string) entity.IDGenerator {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

// fakeScheduler is a manual clock. Timers fire on Advance, posted functions
// run on Drain; both on the calling goroutine, which plays the execution context.
type fakeScheduler struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*fakeTimer
	posted []func()
}

type fakeTimer struct {
	at      time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (s *fakeScheduler) Post(fn func()) {
	s.mu.Lock()
	s.posted = append(s.posted, fn)
	s.mu.Unlock()
}

func (s *fakeScheduler) AfterFunc(d time.Duration, fn func()) func() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &fakeTimer{at: s.now + d, fn: fn}
	s.timers = append(s.timers, t)
	return func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		if t.fired || t.stopped {
			return false
		}
		t.stopped = true
		return true
	}
}

// Advance moves the clock and runs the timers that came due, oldest first.
func (s *fakeScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	s.now += d
	due := make([]*fakeTimer, 0)
	for _, t := range s.timers {
		if !t.fired && !t.stopped && t.at <= s.now {
			t.fired = true
			due = append(due, t)
		}
	}
	s.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool { return due[i].at < due[j].at })
	for _, t := range due {
		t.fn()
	}
}

// Drain runs posted functions until the queue is empty.
func (s *fakeScheduler) Drain() {
	for {
		s.mu.Lock()
		if len(s.posted) == 0 {
			s.mu.Unlock()
			return
		}
		fn := s.posted[0]
		s.posted = s.posted[1:]
		s.mu.Unlock()
		fn()
	}
}

// ActiveTimers counts timers that have neither fired nor been stopped.
func (s *fakeScheduler) ActiveTimers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.timers {
		if !t.fired && !t.stopped {
			n++
		}
	}
	return n
}

type fakeWindowHost struct {
	nextID  entity.WindowID
	screen  entity.Rect
	frames  map[entity.WindowID]entity.Rect
	shown   []entity.WindowID
	hidden  []entity.WindowID
	closed  []entity.WindowID
	onHide  func(id entity.WindowID)
	failNew error
}

func newFakeWindowHost() *fakeWindowHost {
	return &fakeWindowHost{
		nextID: 100,
		screen: entity.Rect{Width: 1920, Height: 1080},
		frames: make(map[entity.WindowID]entity.Rect),
	}
}

func (h *fakeWindowHost) CreateWindow(_ context.Context, frame entity.Rect) (entity.WindowID, error) {
	if h.failNew != nil {
		return 0, h.failNew
	}
	h.nextID++
	h.frames[h.nextID] = frame
	return h.nextID, nil
}

func (h *fakeWindowHost) ShowWindow(_ context.Context, id entity.WindowID) {
	h.shown = append(h.shown, id)
}

func (h *fakeWindowHost) HideWindow(_ context.Context, id entity.WindowID) {
	h.hidden = append(h.hidden, id)
	if h.onHide != nil {
		h.onHide(id)
	}
}

func (h *fakeWindowHost) CloseWindow(_ context.Context, id entity.WindowID) {
	h.closed = append(h.closed, id)
}

func (h *fakeWindowHost) ScreenBounds(context.Context) entity.Rect {
	return h.screen
}

type fakeContent struct {
	created  []entity.TabID
	loaded   []string
	released []entity.ContentHandle
}

func (f *fakeContent) NewContent(_ context.Context, id entity.TabID, _ string) (entity.ContentHandle, error) {
	f.created = append(f.created, id)
	return "view-" + string(id), nil
}

func (f *fakeContent) Load(_ context.Context, _ entity.ContentHandle, url string) error {
	f.loaded = append(f.loaded, url)
	return nil
}

func (f *fakeContent) Release(_ context.Context, handle entity.ContentHandle) {
	f.released = append(f.released, handle)
}

// memKV is an in-memory key-value store.
type memKV struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemKV() *memKV {
	return &memKV{data: make(map[string][]byte)}
}

func (m *memKV) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key], nil
}

func (m *memKV) Save(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *memKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memKV) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok
}

// fakeSuggester returns canned remote suggestions after an optional delay.
type fakeSuggester struct {
	mu      sync.Mutex
	results []string
	err     error
	delay   time.Duration
	queries []string
}

func (f *fakeSuggester) Suggest(ctx context.Context, query string) ([]string, error) {
	f.mu.Lock()
	f.queries = append(f.queries, query)
	results, err, delay := f.results, f.err, f.delay
	f.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return results, err
}

func (f *fakeSuggester) Queries() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.queries...)
}

// tabsWith builds a tab list from id/title/url triples; the first tab is active.
func tabsWith(tabs ...*entity.Tab) *entity.TabList {
	list := entity.NewTabList()
	for _, tab := range tabs {
		list.Add(tab)
	}
	if len(tabs) > 0 {
		list.Switch(tabs[0].ID)
	}
	return list
}

func tab(id, title, url string) *entity.Tab {
	return entity.NewTab(entity.TabID(id), entity.TabState{Title: title, URL: url})
}
