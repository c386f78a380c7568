package css

import (
	"errors"
	"strings"
	"unicode"

	"go.uber.org/multierr"

	"twstyle/style"
)

// Value represents a parsed CSS property value.
type Value struct {
	Raw     string  // Original CSS value string, whitespace normalized (e.g., "1.125rem", "rgba(0, 0, 0, var(--tw-bg-opacity))")
	Value   float64 // Numeric value if applicable
	Unit    string  // Unit if applicable: "px", "rem", "em", "%", etc.
	Numeric bool    // Single number, dimension or percentage
}

// Rule represents a single utility class rule.
type Rule struct {
	Class      string           // Unescaped class name without dot (e.g., "w-1/2", "text-lg")
	Properties map[string]Value // Property name -> value, custom properties included
	SourceLine int              // Rule number in source for error reporting
}

// Stylesheet represents parsed utility stylesheet.
type Stylesheet struct {
	Rules    []Rule   // Class rules in source order
	Warnings []string // Warnings for skipped selectors and at-rules
}

// Err returns all warnings combined, nil when there were none.
func (s *Stylesheet) Err() error {
	var err error
	for _, w := range s.Warnings {
		err = multierr.Append(err, errors.New(w))
	}
	return err
}

// Table flattens stylesheet into lookup table. Property names are converted
// to camel case, lengths in px and rem become numbers (rem multiplied by
// rootFontSize), all other values are kept as strings. Later rules for the
// same class are merged over earlier ones.
func (s *Stylesheet) Table(rootFontSize float64) style.Table {
	table := make(style.Table, len(s.Rules))
	for _, rule := range s.Rules {
		frag, ok := table[rule.Class]
		if !ok {
			frag = make(style.Style, len(rule.Properties))
			table[rule.Class] = frag
		}
		for name, val := range rule.Properties {
			frag[propertyName(name)] = val.styleValue(name, rootFontSize)
		}
	}
	return table
}

// styleValue converts CSS value into what renderer expects for the property.
func (v Value) styleValue(property string, rootFontSize float64) any {
	if !v.Numeric {
		return v.Raw
	}
	switch v.Unit {
	case "px":
		return v.Value
	case "rem":
		return v.Value * rootFontSize
	case "":
		// numeric weights are still strings for renderers
		if property == "font-weight" {
			return v.Raw
		}
		return v.Value
	}
	return v.Raw
}

// propertyName converts CSS property name to camel case, custom properties
// are kept as is.
func propertyName(name string) string {
	if strings.HasPrefix(name, "--") {
		return name
	}
	parts := strings.Split(name, "-")
	var sb strings.Builder
	sb.Grow(len(name))
	for i, part := range parts {
		if i == 0 || len(part) == 0 {
			sb.WriteString(part)
			continue
		}
		r := []rune(part)
		r[0] = unicode.ToUpper(r[0])
		sb.WriteString(string(r))
	}
	return sb.String()
}
