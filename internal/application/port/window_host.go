package port

import (
	"context"

	"github.com/bnema/voyage/internal/domain/entity"
)

// WindowHost creates and drives top-level windows in the presentation toolkit.
type WindowHost interface {
	// CreateWindow opens a window with the given frame and returns its identity.
	CreateWindow(ctx context.Context, frame entity.Rect) (entity.WindowID, error)

	// ShowWindow makes a window visible.
	ShowWindow(ctx context.Context, id entity.WindowID)

	// HideWindow hides a window without destroying it.
	HideWindow(ctx context.Context, id entity.WindowID)

	// CloseWindow destroys a window. The host reports the close back
	// so the registry can unregister it.
	CloseWindow(ctx context.Context, id entity.WindowID)

	// ScreenBounds returns the visible frame of the screen new windows go on.
	ScreenBounds(ctx context.Context) entity.Rect
}
