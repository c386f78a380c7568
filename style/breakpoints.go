package style

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// classToken is a single class with its breakpoint tag removed. Tier 0 means
// the class was not tagged, tier i+1 corresponds to breakpoints[i].
type classToken struct {
	name string
	tier int
}

// sortBreakpoints returns a copy of tiers ordered from the narrowest to the widest.
func sortBreakpoints(bps []Breakpoint) []Breakpoint {
	sorted := slices.Clone(bps)
	slices.SortStableFunc(sorted, func(a, b Breakpoint) int {
		return cmp.Compare(a.MinWidth, b.MinWidth)
	})
	return sorted
}

// splitTier detects breakpoint tag on a class.
func splitTier(class string, bps []Breakpoint) (string, int) {
	for i, bp := range bps {
		if name, found := strings.CutPrefix(class, bp.Tag()); found {
			return name, i + 1
		}
	}
	return class, 0
}

// activeTiers returns number of tiers enabled at the given width. Tiers are
// cumulative: a wide window enables every narrower tier as well.
func activeTiers(bps []Breakpoint, width int) int {
	var active int
	for _, bp := range bps {
		if bp.MinWidth <= width {
			active++
		}
	}
	return active
}

// filterBreakpoints drops classes belonging to tiers not active at width and
// strips tags from the rest, keeping the original relative order. Width of
// zero or less means "no width" and is only acceptable when none of the
// classes is tagged.
func filterBreakpoints(classes []string, bps []Breakpoint, width int) ([]classToken, error) {
	tokens := make([]classToken, 0, len(classes))
	for _, class := range classes {
		name, tier := splitTier(class, bps)
		if tier > 0 && width <= 0 {
			return nil, fmt.Errorf("%w ('%s')", ErrMissingWidthForBreakpoint, class)
		}
		if len(name) == 0 {
			continue
		}
		tokens = append(tokens, classToken{name: name, tier: tier})
	}
	if width <= 0 {
		return tokens, nil
	}

	active := activeTiers(bps, width)
	return slices.DeleteFunc(tokens, func(t classToken) bool {
		return t.tier > active
	}), nil
}
