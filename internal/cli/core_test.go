package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/voyage/internal/application/usecase"
	"github.com/bnema/voyage/internal/bootstrap"
	"github.com/bnema/voyage/internal/domain/autocomplete"
	"github.com/bnema/voyage/internal/domain/entity"
	"github.com/bnema/voyage/internal/infrastructure/config"
	"github.com/bnema/voyage/internal/logging"
)

func newWindowCore(t *testing.T) (*WindowCore, *bootstrap.Browser) {
	t.Helper()
	ctx := logging.WithContext(context.Background(), logging.NewFromConfigValues("debug", "console"))

	cfg := config.DefaultConfig()
	cfg.Database.Path = filepath.Join(t.TempDir(), "voyage.db")
	cfg.Search.SuggestURL = ""
	cfg.Suggestions.DebounceMs = 10

	b, err := bootstrap.NewBrowser(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })

	id, err := b.OpenWindow(ctx)
	require.NoError(t, err)
	return NewWindowCore(ctx, b, id), b
}

func TestWindowCore_TabLifecycle(t *testing.T) {
	core, b := newWindowCore(t)

	require.Len(t, core.Tabs(), 1)

	out, err := core.Submit("go.dev")
	require.NoError(t, err)
	assert.Equal(t, usecase.SelectionNavigate, out.Action)
	assert.Equal(t, "https://go.dev", out.URL)

	require.NoError(t, core.NewTab())
	require.Len(t, core.Tabs(), 2)

	require.NoError(t, core.NextTab())
	views := core.Tabs()
	assert.True(t, views[0].Active, "wraps to the first tab")

	require.NoError(t, core.CloseTab())
	require.Len(t, core.Tabs(), 1)
	assert.ErrorIs(t, core.CloseTab(), errLastTab)

	require.NoError(t, core.ReopenClosed())
	views = core.Tabs()
	require.Len(t, views, 2)
	assert.True(t, views[1].Active)
	assert.Equal(t, "https://go.dev", views[1].URL)
	assert.ErrorIs(t, core.ReopenClosed(), errNoClosed)

	require.NoError(t, core.BookmarkActive())
	ok, err := b.Bookmarks.IsBookmarked(core.ctx, "https://go.dev")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestWindowCore_SelectTabSwitch(t *testing.T) {
	core, _ := newWindowCore(t)

	_, err := core.Submit("https://example.com/")
	require.NoError(t, err)
	require.NoError(t, core.NewTab())

	first := core.Tabs()[0]
	out, err := core.Select(autocomplete.Item{Kind: autocomplete.KindTabSwitch, TabID: entity.TabID(first.ID)})
	require.NoError(t, err)
	assert.Equal(t, usecase.SelectionSwitchTab, out.Action)
	assert.True(t, core.Tabs()[0].Active)
}

func TestWindowCore_InputPublishes(t *testing.T) {
	core, _ := newWindowCore(t)

	_, err := core.Submit("https://example.com/")
	require.NoError(t, err)
	require.NoError(t, core.NewTab())

	results := make(chan usecase.SuggestResult, 4)
	core.Input("example", func(r usecase.SuggestResult) { results <- r })

	select {
	case r := <-results:
		assert.Equal(t, "example", r.Query)
		require.NotEmpty(t, r.Items)
		assert.Equal(t, autocomplete.KindTabSwitch, r.Items[0].Kind)
	case <-time.After(5 * time.Second):
		t.Fatal("no suggestions published")
	}
}

func TestWindowCore_ClosedWindow(t *testing.T) {
	core, b := newWindowCore(t)
	require.NoError(t, b.CloseWindow(core.ctx, core.window))

	assert.ErrorIs(t, core.NewTab(), errWindowGone)
	assert.Empty(t, core.Tabs())
}

func TestWindowCore_InputOnClosedWindowIsLogged(t *testing.T) {
	core, b := newWindowCore(t)
	require.NoError(t, b.CloseWindow(core.ctx, core.window))

	var buf bytes.Buffer
	logger := logging.New(logging.Config{Level: zerolog.DebugLevel, Format: "json", Output: &buf})
	core.ctx = logging.WithContext(context.Background(), logger)

	published := make(chan usecase.SuggestResult, 1)
	assert.NotPanics(t, func() {
		core.Input("example", func(r usecase.SuggestResult) { published <- r })
	})

	assert.Contains(t, buf.String(), `"message":"input dropped"`)
	assert.Contains(t, buf.String(), errWindowGone.Error())
	select {
	case r := <-published:
		t.Fatalf("closed window published %+v", r)
	case <-time.After(50 * time.Millisecond):
	}
}
