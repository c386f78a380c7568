package style

import (
	"errors"
	"fmt"
)

// ErrConfiguration is the parent of all errors caused by the way classes are
// combined in a call, rather than by the classes themselves.
var ErrConfiguration = errors.New("configuration error")

var (
	// ErrMissingWidthForBreakpoint is returned when breakpoint prefixed classes
	// are resolved without a window width.
	ErrMissingWidthForBreakpoint = fmt.Errorf("%w: breakpoint classes require window width", ErrConfiguration)
	// ErrMissingFontSizeForLetterSpacing is returned when tracking-* is used
	// without a text-<size> class.
	ErrMissingFontSizeForLetterSpacing = fmt.Errorf("%w: letter spacing requires a font size class, e.g. 'text-lg tracking-tighter'", ErrConfiguration)
)
