package table_test

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"twstyle/style"
	"twstyle/table"
)

func TestDefault(t *testing.T) {
	tbl, err := table.Default(zap.NewNop())
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}

	tests := []struct {
		class, prop string
		want        any
	}{
		{"text-lg", "fontSize", 18.0},
		{"text-lg", "lineHeight", 28.0},
		{"text-5xl", "lineHeight", 1.0},
		{"leading-6", "lineHeight", 24.0},
		{"tracking-tighter", "letterSpacing", "-0.05em"},
		{"p-0.5", "padding", 2.0},
		{"w-1/2", "width", "50%"},
		{"font-bold", "fontWeight", "700"},
		{"bg-opacity-50", "--tw-bg-opacity", 0.5},
		{"rounded-full", "borderRadius", 9999.0},
	}
	for _, tt := range tests {
		if got := tbl[tt.class][tt.prop]; got != tt.want {
			t.Errorf("%s.%s = %#v, want %#v", tt.class, tt.prop, got, tt.want)
		}
	}
	if _, ok := tbl["md:flex-row"]; ok {
		t.Error("responsive variants must not be part of the table")
	}
}

func TestDefaultResolves(t *testing.T) {
	tbl, err := table.Default(nil)
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	core, logs := observer.New(zapcore.WarnLevel)
	r := style.New(tbl, zap.New(core))

	if got, ok := r.Color("black opacity-50"); !ok || got != "rgba(0, 0, 0, 0.5)" {
		t.Errorf("Color(black opacity-50) = %q, %v", got, ok)
	}
	if got, ok := r.Color("red-500"); !ok || got != "rgba(239, 68, 68, 1)" {
		t.Errorf("Color(red-500) = %q, %v", got, ok)
	}
	if got, ok := r.Color("white opacity-50"); !ok || got != "rgba(255, 255, 255, 1)" {
		t.Errorf("Color(white opacity-50) = %q, %v", got, ok)
	}

	s, err := r.Resolve("text-lg tracking-tighter text-gray-900")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	spacing, size := -0.05, 18.0
	if s["letterSpacing"] != spacing*size {
		t.Errorf("letterSpacing = %v, want %v", s["letterSpacing"], spacing*size)
	}
	if s["color"] != "rgba(17, 24, 39, 1)" {
		t.Errorf("color = %v", s["color"])
	}
	for name := range s {
		if name[0] == '-' {
			t.Errorf("custom property %q in result", name)
		}
	}

	s, err = r.Resolve("text-left md:text-center", 800)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if s["textAlign"] != "center" {
		t.Errorf("textAlign = %v, want center", s["textAlign"])
	}
	if logs.Len() != 0 {
		t.Errorf("unexpected warnings: %v", logs.All())
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"json", `{"p-4": {"padding": 16}, "tabular": {"fontVariant": ["tabular-nums"]}, "shadow": {"shadowOffset": {"width": 0, "height": 1}}, "op": {"opacity": 0.5}}`},
		{"yaml", `
p-4:
  padding: 16
tabular:
  fontVariant: [tabular-nums]
shadow:
  shadowOffset:
    width: 0
    height: 1
op:
  opacity: 0.5
`},
	}
	want := style.Table{
		"p-4":     {"padding": 16.0},
		"tabular": {"fontVariant": []any{"tabular-nums"}},
		"shadow":  {"shadowOffset": map[string]any{"width": 0.0, "height": 1.0}},
		"op":      {"opacity": 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := table.Decode([]byte(tt.data))
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("Decode() = %#v, want %#v", got, want)
			}
		})
	}

	if _, err := table.Decode([]byte(`[1, 2]`)); err == nil {
		t.Error("expected error for non-object table")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
		return path
	}

	core, logs := observer.New(zapcore.WarnLevel)
	log := zap.New(core)

	tbl, err := table.LoadFile(write("styles.css", ".p-2 { padding: 0.5rem; }\na:hover { color: red; }"), log, 10)
	if err != nil {
		t.Fatalf("LoadFile(css) error = %v", err)
	}
	if tbl["p-2"]["padding"] != 5.0 {
		t.Errorf("padding = %v, want 5", tbl["p-2"]["padding"])
	}
	if logs.Len() != 1 {
		t.Errorf("expected warning for skipped rule, got %d", logs.Len())
	}

	tbl, err = table.LoadFile(write("styles.JSON", `{"m-1": {"margin": 4}}`), log, 16)
	if err != nil {
		t.Fatalf("LoadFile(json) error = %v", err)
	}
	if tbl["m-1"]["margin"] != 4.0 {
		t.Errorf("margin = %v, want 4", tbl["m-1"]["margin"])
	}

	if _, err := table.LoadFile(write("styles.yml", "m-1: [oops"), log, 16); err == nil {
		t.Error("expected error for malformed yaml")
	}
	if _, err := table.LoadFile(write("styles.txt", ""), log, 16); err == nil {
		t.Error("expected error for unknown format")
	}
	if _, err := table.LoadFile(filepath.Join(dir, "missing.json"), nil, 16); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	tbl := style.Table{
		"w-1/2": {"width": "50%"},
		"p-4":   {"paddingTop": 16.0, "paddingBottom": 16.0},
	}
	if err := table.Write(&buf, tbl); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	want := `{
  "p-4": {
    "paddingBottom": 16,
    "paddingTop": 16
  },
  "w-1/2": {
    "width": "50%"
  }
}
`
	if got := buf.String(); got != want {
		t.Errorf("Write() =\n%s\nwant:\n%s", got, want)
	}
}

func TestWriteStyle(t *testing.T) {
	var buf bytes.Buffer
	s := style.Style{
		"fontVariant":     []string{"oldstyle-nums"},
		"backgroundColor": "rgba(0, 0, 0, 1)",
	}
	if err := table.WriteStyle(&buf, s); err != nil {
		t.Fatalf("WriteStyle() error = %v", err)
	}
	want := `{
  "backgroundColor": "rgba(0, 0, 0, 1)",
  "fontVariant": [
    "oldstyle-nums"
  ]
}
`
	if got := buf.String(); got != want {
		t.Errorf("WriteStyle() =\n%s\nwant:\n%s", got, want)
	}
}
