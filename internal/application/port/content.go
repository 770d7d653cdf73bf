package port

import (
	"context"

	"github.com/bnema/voyage/internal/domain/entity"
)

// ContentFactory creates and releases live web content views.
// Handles are opaque to the core and owned by one tab at a time.
type ContentFactory interface {
	// NewContent creates a content view for a tab and starts loading url.
	NewContent(ctx context.Context, id entity.TabID, url string) (entity.ContentHandle, error)

	// Load navigates an existing content view.
	Load(ctx context.Context, handle entity.ContentHandle, url string) error

	// Release destroys a content view that no tab owns anymore.
	Release(ctx context.Context, handle entity.ContentHandle)
}

// TabEvents receives engine callbacks for one content view.
// Implementations re-enter the execution context before touching tab state.
type TabEvents interface {
	TitleChanged(id entity.TabID, title string)
	URLChanged(id entity.TabID, url string)
	LoadingChanged(id entity.TabID, loading bool)
	NavigationChanged(id entity.TabID, canGoBack, canGoForward bool)
	SecurityInfoReady(id entity.TabID, info entity.SecurityInfo)
	ThumbnailReady(id entity.TabID, thumb *entity.Thumbnail)
	ReaderStateChanged(id entity.TabID, state *entity.ReaderState)
}
