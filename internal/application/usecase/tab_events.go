package usecase

import (
	"context"

	"github.com/bnema/voyage/internal/application/port"
	"github.com/bnema/voyage/internal/domain/entity"
	"github.com/bnema/voyage/internal/logging"
)

// TabEventRouter applies web engine callbacks to whichever window owns the tab.
// Callbacks may arrive on any goroutine; each one is posted to the execution
// context before it touches tab state. Thumbnail and security callbacks are
// coalesced per tab so a burst only applies the latest result.
type TabEventRouter struct {
	ctx       context.Context
	registry  *WindowRegistry
	scheduler port.Scheduler
	coalescer port.KeyedPoster

	onLoadFinished func(tab *entity.Tab)
}

var _ port.TabEvents = (*TabEventRouter)(nil)

// NewTabEventRouter creates a router. coalescer may be nil.
func NewTabEventRouter(
	ctx context.Context,
	registry *WindowRegistry,
	scheduler port.Scheduler,
	coalescer port.KeyedPoster,
) *TabEventRouter {
	return &TabEventRouter{
		ctx:       logging.WithComponent(ctx, "tab-events"),
		registry:  registry,
		scheduler: scheduler,
		coalescer: coalescer,
	}
}

// OnLoadFinished registers fn to receive a copy of a tab each time it stops
// loading. fn runs on the execution context and must not block.
func (r *TabEventRouter) OnLoadFinished(fn func(tab *entity.Tab)) {
	r.onLoadFinished = fn
}

func (r *TabEventRouter) apply(id entity.TabID, event string, fn func(tabs *entity.TabList) bool) {
	r.scheduler.Post(func() { r.applyNow(id, event, fn) })
}

func (r *TabEventRouter) applyCoalesced(id entity.TabID, event string, fn func(tabs *entity.TabList) bool) {
	if r.coalescer == nil {
		r.apply(id, event, fn)
		return
	}
	r.coalescer.Post(event+":"+string(id), func() { r.applyNow(id, event, fn) })
}

func (r *TabEventRouter) applyNow(id entity.TabID, event string, fn func(tabs *entity.TabList) bool) {
	_, tabs, ok := r.registry.WindowForTab(id)
	if !ok || !fn(tabs) {
		logging.FromContext(r.ctx).Debug().
			Str("tab_id", string(id)).
			Str("event", event).
			Msg("dropping event for unknown tab")
	}
}

func (r *TabEventRouter) TitleChanged(id entity.TabID, title string) {
	r.apply(id, "title", func(tabs *entity.TabList) bool { return tabs.UpdateTitle(id, title) })
}

func (r *TabEventRouter) URLChanged(id entity.TabID, newURL string) {
	r.apply(id, "url", func(tabs *entity.TabList) bool {
		if !tabs.Contains(id) {
			return false
		}
		if !tabs.UpdateURL(id, newURL) {
			logging.FromContext(r.ctx).Debug().
				Str("tab_id", string(id)).
				Msg("ignoring engine url change on internal page")
		}
		return true
	})
}

func (r *TabEventRouter) LoadingChanged(id entity.TabID, loading bool) {
	r.apply(id, "loading", func(tabs *entity.TabList) bool {
		if !tabs.UpdateLoadingState(id, loading) {
			return false
		}
		if !loading && r.onLoadFinished != nil {
			r.onLoadFinished(tabs.Find(id).Clone())
		}
		return true
	})
}

func (r *TabEventRouter) NavigationChanged(id entity.TabID, canGoBack, canGoForward bool) {
	r.apply(id, "navigation", func(tabs *entity.TabList) bool {
		return tabs.UpdateNavigationFlags(id, canGoBack, canGoForward)
	})
}

func (r *TabEventRouter) SecurityInfoReady(id entity.TabID, info entity.SecurityInfo) {
	r.applyCoalesced(id, "security", func(tabs *entity.TabList) bool { return tabs.UpdateSecurityInfo(id, info) })
}

func (r *TabEventRouter) ThumbnailReady(id entity.TabID, thumb *entity.Thumbnail) {
	r.applyCoalesced(id, "thumbnail", func(tabs *entity.TabList) bool { return tabs.UpdateThumbnail(id, thumb) })
}

func (r *TabEventRouter) ReaderStateChanged(id entity.TabID, state *entity.ReaderState) {
	r.apply(id, "reader", func(tabs *entity.TabList) bool { return tabs.UpdateReaderState(id, state) })
}
