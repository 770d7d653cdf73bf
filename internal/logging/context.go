package logging

import (
	"context"
	"strconv"

	"github.com/rs/zerolog"
)

// FromContext returns the logger carried by ctx, or a disabled logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// WithContext attaches logger to ctx.
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return logger.WithContext(ctx)
}

func withField(ctx context.Context, key, value string) context.Context {
	return WithContext(ctx, FromContext(ctx).With().Str(key, value).Logger())
}

// WithComponent tags every event logged through ctx with component.
func WithComponent(ctx context.Context, component string) context.Context {
	return withField(ctx, "component", component)
}

// WithTabID tags events with the tab they concern.
func WithTabID(ctx context.Context, tabID string) context.Context {
	return withField(ctx, "tab_id", tabID)
}

// WithWindowID tags events with the window they concern.
func WithWindowID(ctx context.Context, windowID int64) context.Context {
	return withField(ctx, "window_id", strconv.FormatInt(windowID, 10))
}
