package style

import "maps"

// Style is a flat map of style property to value. Values are strings,
// float64 numbers, []string (fontVariant) or whatever nested values a lookup
// table carries.
type Style map[string]any

// Table maps utility class names to the style fragments they contribute.
type Table map[string]Style

// Properties with special handling during resolution.
const (
	PropFontVariant     = "fontVariant"
	PropFontSize        = "fontSize"
	PropLetterSpacing   = "letterSpacing"
	PropBackgroundColor = "backgroundColor"
)

// Clone returns a shallow copy of the style, suitable for modification.
func (s Style) Clone() Style {
	out := make(Style, len(s))
	maps.Copy(out, s)
	return out
}

// Breakpoint is a single responsive tier: classes tagged "<Name>:" apply when
// the window is at least MinWidth wide.
type Breakpoint struct {
	Name     string
	MinWidth int
}

// Tag returns class prefix for the tier.
func (b Breakpoint) Tag() string {
	return b.Name + ":"
}

// DefaultBreakpoints are tailwind's stock screens.
var DefaultBreakpoints = []Breakpoint{
	{Name: "sm", MinWidth: 640},
	{Name: "md", MinWidth: 768},
	{Name: "lg", MinWidth: 1024},
	{Name: "xl", MinWidth: 1280},
}
