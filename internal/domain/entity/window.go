package entity

import (
	"fmt"
	"strings"
)

// WindowID identifies a top-level window within the process.
type WindowID int64

// Point is a screen-space position.
type Point struct {
	X, Y float64
}

// Size is a window size in screen units.
type Size struct {
	Width, Height float64
}

// Rect is a screen-space rectangle.
type Rect struct {
	X, Y, Width, Height float64
}

// NewWindowContent selects what a new window shows when it is not created from a detached tab.
type NewWindowContent string

const (
	NewWindowStartPage    NewWindowContent = "start_page"
	NewWindowHomepage     NewWindowContent = "homepage"
	NewWindowBlank        NewWindowContent = "blank"
	NewWindowCloneCurrent NewWindowContent = "clone_current"
)

// ErrInvalidPolicy is returned for an unknown new-window content policy.
var ErrInvalidPolicy = fmt.Errorf("invalid new window content policy")

// ParseNewWindowContent parses a configured policy name.
func ParseNewWindowContent(s string) (NewWindowContent, error) {
	switch p := NewWindowContent(strings.ToLower(strings.TrimSpace(s))); p {
	case NewWindowStartPage, NewWindowHomepage, NewWindowBlank, NewWindowCloneCurrent:
		return p, nil
	case "":
		return NewWindowStartPage, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPolicy, s)
	}
}

// PlaceWindow computes the frame of a new window.
// With a drop point the window's origin sits at the point shifted by offset, so it
// appears to peel off under the cursor; otherwise it is centered on the screen.
// The frame is kept inside the screen where it fits.
func PlaceWindow(size Size, screen Rect, drop *Point, offset Point) Rect {
	frame := Rect{Width: size.Width, Height: size.Height}
	if drop != nil {
		frame.X = drop.X - offset.X
		frame.Y = drop.Y - offset.Y
	} else {
		frame.X = screen.X + (screen.Width-size.Width)/2
		frame.Y = screen.Y + (screen.Height-size.Height)/2
	}

	if screen.Width > 0 && screen.Height > 0 {
		frame.X = clamp(frame.X, screen.X, screen.X+screen.Width-size.Width)
		frame.Y = clamp(frame.Y, screen.Y, screen.Y+screen.Height-size.Height)
	}
	return frame
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
