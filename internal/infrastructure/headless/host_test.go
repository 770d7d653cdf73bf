package headless

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/voyage/internal/domain/entity"
)

type recordedEvents struct {
	urls    []string
	loading []bool
}

func (r *recordedEvents) TitleChanged(entity.TabID, string) {}
func (r *recordedEvents) URLChanged(_ entity.TabID, u string) {
	r.urls = append(r.urls, u)
}
func (r *recordedEvents) LoadingChanged(_ entity.TabID, loading bool) {
	r.loading = append(r.loading, loading)
}
func (r *recordedEvents) NavigationChanged(entity.TabID, bool, bool)         {}
func (r *recordedEvents) SecurityInfoReady(entity.TabID, entity.SecurityInfo) {}
func (r *recordedEvents) ThumbnailReady(entity.TabID, *entity.Thumbnail)      {}
func (r *recordedEvents) ReaderStateChanged(entity.TabID, *entity.ReaderState) {}

func TestHost_WindowLifecycle(t *testing.T) {
	ctx := context.Background()
	h := New(entity.Rect{})
	assert.Equal(t, DefaultScreen, h.ScreenBounds(ctx))

	var closed []entity.WindowID
	h.OnWindowClosed(func(id entity.WindowID) { closed = append(closed, id) })

	id, err := h.CreateWindow(ctx, entity.Rect{Width: 800, Height: 600})
	require.NoError(t, err)
	h.ShowWindow(ctx, id)

	windows := h.Windows()
	require.Len(t, windows, 1)
	assert.True(t, windows[0].Visible)

	h.HideWindow(ctx, id)
	assert.False(t, h.Windows()[0].Visible)

	h.CloseWindow(ctx, id)
	h.CloseWindow(ctx, id)
	assert.Empty(t, h.Windows())
	assert.Equal(t, []entity.WindowID{id}, closed, "close is reported once")
}

func TestHost_ContentReportsLoads(t *testing.T) {
	ctx := context.Background()
	h := New(DefaultScreen)
	events := &recordedEvents{}
	h.SetTabEvents(events)

	handle, err := h.NewContent(ctx, "t1", "https://go.dev")
	require.NoError(t, err)
	require.NoError(t, h.Load(ctx, handle, "https://pkg.go.dev"))

	assert.Equal(t, []string{"https://go.dev", "https://pkg.go.dev"}, events.urls)
	assert.Equal(t, []bool{true, false, true, false}, events.loading)
	assert.Equal(t, 1, h.LiveViews())

	h.Release(ctx, handle)
	assert.Equal(t, 0, h.LiveViews())
	assert.Error(t, h.Load(ctx, handle, "https://example.com"))
	assert.Error(t, h.Load(ctx, "not-a-view", "https://example.com"))
}
