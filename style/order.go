package style

import (
	"slices"
	"strings"
)

const lineHeightPrefix = "leading-"

// orderClasses produces merge order for filtered classes. Precedence is
// positional only: untagged classes first, then every tier from the narrowest
// to the widest. Inside a tier classes are sorted, and line height classes
// are moved after everything else so they beat line heights bundled with
// font size classes.
func orderClasses(tokens []classToken, tiers int) []string {
	buckets := make([][]string, tiers+1)
	for _, t := range tokens {
		buckets[t.tier] = append(buckets[t.tier], t.name)
	}

	ordered := make([]string, 0, len(tokens))
	for _, bucket := range buckets {
		slices.Sort(bucket)
		ordered = append(ordered, lineHeightLast(bucket)...)
	}
	return ordered
}

// lineHeightLast is a stable partition putting leading-* classes at the end.
func lineHeightLast(classes []string) []string {
	out := make([]string, 0, len(classes))
	var leading []string
	for _, c := range classes {
		if strings.HasPrefix(c, lineHeightPrefix) {
			leading = append(leading, c)
			continue
		}
		out = append(out, c)
	}
	return append(out, leading...)
}
