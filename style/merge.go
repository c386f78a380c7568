package style

import (
	"fmt"
	"maps"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// merge copies fragments of classes into acc in order, later classes
// overwrite properties of earlier ones. Unknown classes are reported and
// skipped.
func (r *Resolver) merge(acc Style, classes []string, query string) Style {
	for _, c := range classes {
		frag, ok := r.table[c]
		if !ok {
			r.unsupported(c, query)
			continue
		}
		maps.Copy(acc, frag)
	}
	return acc
}

func (r *Resolver) unsupported(class, query string) {
	r.log.Warn("Unsupported utility class", zap.String("class", class), zap.String("classes", query))
}

const customPropertyPrefix = "--"

var varReference = regexp.MustCompile(`var\(\s*(--[A-Za-z0-9_-]+)\s*\)`)

// resolveVariables returns final style: custom properties are dropped and the
// first var(--name) reference in every string value is replaced with the
// value of the named custom property. Substituted text is not scanned again.
func resolveVariables(acc Style) Style {
	out := make(Style, len(acc))
	for name, val := range acc {
		if strings.HasPrefix(name, customPropertyPrefix) {
			continue
		}
		if s, ok := val.(string); ok {
			val = substituteVariable(s, acc)
		}
		out[name] = val
	}
	return out
}

func substituteVariable(s string, vars Style) string {
	loc := varReference.FindStringSubmatchIndex(s)
	if loc == nil {
		return s
	}
	val, ok := vars[s[loc[2]:loc[3]]]
	if !ok {
		// leave reference as is, there is nothing sensible to put there
		return s
	}
	return s[:loc[0]] + formatValue(val) + s[loc[1]:]
}

func formatValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	default:
		return fmt.Sprint(val)
	}
}
