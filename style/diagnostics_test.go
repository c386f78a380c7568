package style

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestDiagnosticCore(t *testing.T) {
	var buf bytes.Buffer
	log := zap.New(DiagnosticCore(zapcore.AddSync(&buf), zapcore.WarnLevel, false)).Named("styles")

	log.Info("not shown")
	log.Warn("Unsupported utility class", zap.String("class", "bogus"))
	_ = log.Sync()

	out := buf.String()
	if strings.Contains(out, "not shown") {
		t.Errorf("info entry written: %q", out)
	}
	if strings.Count(out, "\n") != 1 {
		t.Fatalf("expected single line, got %q", out)
	}
	if !strings.HasPrefix(out, "WARN\tstyles\tUnsupported utility class") {
		t.Errorf("unexpected line layout: %q", out)
	}
	if !strings.Contains(out, `"class": "bogus"`) {
		t.Errorf("class field missing: %q", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("color codes without color: %q", out)
	}
}

func TestDiagnosticCoreColor(t *testing.T) {
	var buf bytes.Buffer
	log := zap.New(DiagnosticCore(zapcore.AddSync(&buf), zapcore.DebugLevel, true))

	log.Debug("shown")
	_ = log.Sync()

	if out := buf.String(); !strings.Contains(out, "\x1b[") || !strings.Contains(out, "shown") {
		t.Errorf("expected colored debug entry, got %q", out)
	}
}

func TestNewWithoutLoggerWritesStderr(t *testing.T) {
	rd, wr, err := os.Pipe()
	if err != nil {
		t.Fatalf("Pipe() error = %v", err)
	}
	stderr := os.Stderr
	os.Stderr = wr
	r := New(testTable(), nil)
	os.Stderr = stderr

	if _, err := r.Resolve("p-4 not-a-real-class"); err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	// cached, must not be reported again
	if _, err := r.Resolve("p-4 not-a-real-class"); err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	wr.Close()

	data, err := io.ReadAll(rd)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	out := string(data)
	if strings.Count(out, "Unsupported utility class") != 1 {
		t.Errorf("expected one warning, got %q", out)
	}
	if !strings.Contains(out, "not-a-real-class") || !strings.Contains(out, "p-4 not-a-real-class") {
		t.Errorf("warning does not name class and query: %q", out)
	}
}
