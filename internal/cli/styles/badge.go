package styles

import (
	"fmt"
	"time"
)

// visits renders a visit counter tag.
func (t *Theme) visits(n int) string {
	if n == 1 {
		return t.TagDim.Render("1 visit")
	}
	return t.TagDim.Render(fmt.Sprintf("%d visits", n))
}

// since renders how long ago tm was as a tag.
func (t *Theme) since(tm time.Time) string {
	return t.TagDim.Render(Ago(tm))
}

// Ago formats tm relative to now, for example "3h ago".
func Ago(tm time.Time) string {
	return relativeTime(tm, time.Now())
}

var ageUnits = []struct {
	below time.Duration
	unit  time.Duration
	label string
}{
	{time.Hour, time.Minute, "m"},
	{24 * time.Hour, time.Hour, "h"},
	{7 * 24 * time.Hour, 24 * time.Hour, "d"},
	{30 * 24 * time.Hour, 7 * 24 * time.Hour, "w"},
	{365 * 24 * time.Hour, 30 * 24 * time.Hour, "mo"},
}

func relativeTime(tm, now time.Time) string {
	d := now.Sub(tm)
	if d < time.Minute {
		return "just now"
	}
	for _, u := range ageUnits {
		if d < u.below {
			return fmt.Sprintf("%d%s ago", int(d/u.unit), u.label)
		}
	}
	return fmt.Sprintf("%dy ago", int(d/(365*24*time.Hour)))
}
