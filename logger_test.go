package floor

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// captureLogs routes the package logger into a buffer for the duration of
// the test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))
	return &buf
}

func TestLogger_SilentByDefault(t *testing.T) {
	l := Logger()
	if l == nil {
		t.Fatal("Logger() returned nil")
	}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn} {
		if l.Enabled(context.Background(), level) {
			t.Errorf("default logger enabled for %v", level)
		}
	}
}

func TestLogger_RecordsPerPath(t *testing.T) {
	tests := []struct {
		name  string
		do    func(t *testing.T)
		level string
		msg   string
	}{
		{
			name: "bind correction",
			do: func(*testing.T) {
				p := DefaultParams()
				p.LightColor = "not-a-color"
				Bind(p)
			},
			level: "level=WARN",
			msg:   "floor: malformed color replaced by default",
		},
		{
			name: "store publication",
			do: func(*testing.T) {
				NewStore(DefaultParams()).Publish(DefaultParams())
			},
			level: "level=INFO",
			msg:   "floor: configuration published",
		},
		{
			name: "frame render",
			do: func(t *testing.T) {
				r := NewRenderer(WithWorkers(1))
				defer r.Close()
				if _, err := r.Render(context.Background(), DefaultConfig(), View{PixelsPerUnit: 4}.Map(DefaultConfig(), 4, 4), 4, 4); err != nil {
					t.Fatal(err)
				}
			},
			level: "level=DEBUG",
			msg:   "floor: frame rendered",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureLogs(t)
			tt.do(t)
			out := buf.String()
			if !strings.Contains(out, tt.level) || !strings.Contains(out, tt.msg) {
				t.Errorf("want %s record %q, got: %s", tt.level, tt.msg, out)
			}
		})
	}
}

func TestSetLogger_NilSilencesCorrections(t *testing.T) {
	buf := captureLogs(t)
	SetLogger(nil)

	p := DefaultParams()
	p.FloorSize = -1
	Bind(p)

	if buf.Len() != 0 {
		t.Errorf("SetLogger(nil) still logged: %s", buf.String())
	}
	if Logger() == nil {
		t.Error("SetLogger(nil) stored a nil logger")
	}
}

func TestLogger_SwapDuringUpdates(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	s := NewStore(DefaultParams())
	var wg sync.WaitGroup
	const goroutines = 16

	for range goroutines {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.Update(func(p Params) Params {
				p.AxisThickness = 5 // clamped, logs a warning
				return p
			})
		}()
		go func() {
			defer wg.Done()
			SetLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
			SetLogger(nil)
		}()
	}
	wg.Wait()

	if got := s.Generation(); got != goroutines+1 {
		t.Errorf("Generation() = %d, want %d", got, goroutines+1)
	}
}
