// Package table provides lookup tables for style resolvers: the embedded
// default stylesheet and tables stored in files.
package table

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	yaml "gopkg.in/yaml.v3"

	"twstyle/css"
	"twstyle/style"
)

//go:embed default.css
var defaultStylesheet []byte

// DefaultRootFontSize is number of pixels in rem unless configured otherwise.
const DefaultRootFontSize = 16.0

// Default returns table compiled from embedded stylesheet.
func Default(log *zap.Logger) (style.Table, error) {
	t, err := css.Compile(defaultStylesheet, log, DefaultRootFontSize, "default.css")
	if err != nil {
		// this should never happen
		return nil, fmt.Errorf("embedded stylesheet has unsupported rules: %w", err)
	}
	return t, nil
}

// LoadFile reads table from path. Format is selected by file extension: CSS
// stylesheets are compiled, JSON and YAML files must contain an object of
// class name to style fragment.
func LoadFile(path string, log *zap.Logger, rootFontSize float64) (style.Table, error) {
	if log == nil {
		log = zap.NewNop()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read lookup table: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".css":
		t, err := css.Compile(data, log, rootFontSize, path)
		for _, e := range multierr.Errors(err) {
			log.Warn("Stylesheet rule ignored", zap.String("source", path), zap.Error(e))
		}
		return t, nil
	case ".json", ".yaml", ".yml":
		t, err := Decode(data)
		if err != nil {
			return nil, fmt.Errorf("unable to load lookup table '%s': %w", path, err)
		}
		return t, nil
	default:
		return nil, fmt.Errorf("unsupported lookup table format '%s' (%s)", ext, path)
	}
}

// Decode parses JSON or YAML table. Integer values are converted to float64
// so tables do not depend on the source format.
func Decode(data []byte) (style.Table, error) {
	var raw map[string]map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode table: %w", err)
	}

	t := make(style.Table, len(raw))
	for class, props := range raw {
		frag := make(style.Style, len(props))
		for name, val := range props {
			frag[name] = normalize(val)
		}
		t[class] = frag
	}
	return t, nil
}

func normalize(v any) any {
	switch val := v.(type) {
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case uint64:
		return float64(val)
	case []any:
		out := make([]any, len(val))
		for i := range val {
			out[i] = normalize(val[i])
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(val))
		for k := range val {
			out[k] = normalize(val[k])
		}
		return out
	}
	return v
}

// Write outputs table as indented JSON with sorted keys.
func Write(w io.Writer, t style.Table) error {
	if err := encode(w, t); err != nil {
		return fmt.Errorf("unable to write lookup table: %w", err)
	}
	return nil
}

// WriteStyle outputs single resolved style the same way Write does.
func WriteStyle(w io.Writer, s style.Style) error {
	if err := encode(w, s); err != nil {
		return fmt.Errorf("unable to write style: %w", err)
	}
	return nil
}

func encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
