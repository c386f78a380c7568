package style

import (
	"slices"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Resolver resolves utility class lists against a single lookup table and
// memoizes results. Resolvers do not share state, so independent tables (or
// tests) get independent caches.
type Resolver struct {
	table       Table
	breakpoints []Breakpoint
	log         *zap.Logger

	// mu is held for the whole cache miss so every key is computed, and its
	// problems reported, exactly once
	mu    sync.Mutex
	cache map[string]Style
	empty Style
}

// Option modifies Resolver during construction.
type Option func(*Resolver)

// WithBreakpoints replaces DefaultBreakpoints. Order does not matter, tiers
// are sorted by width.
func WithBreakpoints(bps ...Breakpoint) Option {
	return func(r *Resolver) {
		r.breakpoints = bps
	}
}

// New creates resolver for the table. Table is not copied and must not be
// changed afterwards. When log is nil problems are reported to stderr.
func New(table Table, log *zap.Logger, options ...Option) *Resolver {
	if log == nil {
		log = diagnosticLogger()
	}

	empty := Style{}
	r := &Resolver{
		table:       table,
		breakpoints: DefaultBreakpoints,
		log:         log.Named("styles"),
		cache:       map[string]Style{"": empty},
		empty:       empty,
	}
	for _, setOpt := range options {
		setOpt(r)
	}
	r.breakpoints = sortBreakpoints(r.breakpoints)
	return r
}

// Resolve returns style for space separated classNames. Optional windowWidth
// enables breakpoint prefixed classes ("md:text-lg"), it is required when
// any of them is present.
//
// Returned style is shared by all callers resolving the same set of classes
// and must not be modified, use Clone when necessary.
func (r *Resolver) Resolve(classNames string, windowWidth ...int) (Style, error) {
	classes := strings.Fields(classNames)
	if len(classes) == 0 {
		return r.empty, nil
	}

	var width int
	if len(windowWidth) > 0 {
		width = windowWidth[0]
	}
	tokens, err := filterBreakpoints(classes, r.breakpoints, width)
	if err != nil {
		return nil, err
	}
	ordered := orderClasses(tokens, len(r.breakpoints))
	key := strings.Join(ordered, " ")

	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.cache[key]; ok {
		return s, nil
	}

	acc, rest, err := r.crossClass(ordered, classNames)
	if err != nil {
		return nil, err
	}
	s := resolveVariables(r.merge(acc, rest, classNames))
	r.cache[key] = s
	r.log.Debug("Resolved classes", zap.String("key", key), zap.Int("properties", len(s)))
	return s, nil
}

const colorClassPrefix = "bg-"

// Color resolves color specification like "red-500" or "black opacity-50"
// by treating every term as background class and returns resulting
// background color.
//
// Terms go through the same ordering as any other classes, so opacity only
// applies to colors sorting before "bg-opacity-": "black opacity-50" is half
// transparent while "white opacity-50" keeps the opacity of "bg-white".
func (r *Resolver) Color(spec string) (string, bool) {
	var classes []string
	for term := range strings.FieldsSeq(spec) {
		classes = append(classes, colorClassPrefix+term)
	}
	s, err := r.Resolve(strings.Join(classes, " "))
	if err != nil {
		r.log.Debug("Unable to resolve color", zap.String("spec", spec), zap.Error(err))
		return "", false
	}
	color, ok := s[PropBackgroundColor].(string)
	return color, ok
}

// Len returns number of cached results, including pre-populated empty one.
func (r *Resolver) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.cache)
}

// Breakpoints returns tiers in effect, narrowest first.
func (r *Resolver) Breakpoints() []Breakpoint {
	return slices.Clone(r.breakpoints)
}
