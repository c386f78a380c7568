// Package style turns space separated utility class lists (tailwind naming)
// into flat style maps for renderers without a CSS engine.
//
// A Resolver owns a lookup table of per-class fragments and a cache of
// resolved results. Resolution goes through the following stages:
//
//	breakpoint filter -> ordering -> cache lookup
//	  (miss) -> cross-class resolvers -> merge -> variable substitution -> cache store
//
// Results are shared between callers and must be treated as read only.
package style
