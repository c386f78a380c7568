package style

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Numeric font variant classes are aggregated into a single fontVariant list
// instead of being looked up one by one.
var fontVariantClasses = map[string]bool{
	"oldstyle-nums":     true,
	"lining-nums":       true,
	"tabular-nums":      true,
	"proportional-nums": true,
}

const letterSpacingPrefix = "tracking-"

var (
	fontSizeClass = regexp.MustCompile(`^text-(xs|sm|base|lg|[0-9]*xl)$`)
	// mirrors parseFloat: longest numeric prefix, the rest (unit) is ignored
	leadingNumber = regexp.MustCompile(`^\s*[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)
)

// crossClass pre-seeds accumulator with values which depend on several
// classes at once and returns classes left for ordinary lookup.
//
// Letter spacing is validated against the whole ordered list, so tracking-*
// from one breakpoint tier may be paired with text-<size> from another.
func (r *Resolver) crossClass(classes []string, query string) (Style, []string, error) {
	var (
		acc      = Style{}
		rest     = make([]string, 0, len(classes))
		variants []string
		tracking string
		fontSize string
	)

	for _, c := range classes {
		switch {
		case fontVariantClasses[c]:
			variants = append(variants, c)
		case strings.HasPrefix(c, letterSpacingPrefix):
			tracking = c
		default:
			if fontSizeClass.MatchString(c) {
				fontSize = c
			}
			rest = append(rest, c)
		}
	}

	if len(variants) > 0 {
		acc[PropFontVariant] = variants
	}
	if len(tracking) == 0 {
		return acc, rest, nil
	}
	if len(fontSize) == 0 {
		return nil, nil, fmt.Errorf("%w ('%s')", ErrMissingFontSizeForLetterSpacing, tracking)
	}
	if spacing, ok := r.letterSpacing(tracking, fontSize, query); ok {
		acc[PropLetterSpacing] = spacing
	}
	return acc, rest, nil
}

// letterSpacing converts relative (em) spacing of tracking class into
// absolute units using font size class.
func (r *Resolver) letterSpacing(tracking, fontSize, query string) (float64, bool) {
	trackingFrag, ok := r.table[tracking]
	if !ok {
		r.unsupported(tracking, query)
		return 0, false
	}
	em, ok := leadingFloat(trackingFrag[PropLetterSpacing])
	if !ok {
		r.log.Warn("Letter spacing class has no usable value", zap.String("class", tracking), zap.Any("value", trackingFrag[PropLetterSpacing]))
		return 0, false
	}

	sizeFrag, ok := r.table[fontSize]
	if !ok {
		// reported by merge
		return 0, false
	}
	size, ok := number(sizeFrag[PropFontSize])
	if !ok {
		r.log.Warn("Font size class has no numeric size", zap.String("class", fontSize), zap.Any("value", sizeFrag[PropFontSize]))
		return 0, false
	}
	return em * size, true
}

// leadingFloat extracts number from values like "-0.05em".
func leadingFloat(v any) (float64, bool) {
	if s, ok := v.(string); ok {
		m := leadingNumber.FindString(s)
		if len(m) == 0 {
			return 0, false
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(m), 64)
		return f, err == nil
	}
	return number(v)
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
