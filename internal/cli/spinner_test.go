package cli

import (
	"bytes"
	"context"
	"testing"
	"time"
)

func TestSpinnerContextCancel(t *testing.T) {
	tests := []struct {
		name string
		ctx  func() (context.Context, context.CancelFunc)
	}{
		{"cancel", func() (context.Context, context.CancelFunc) {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			return ctx, cancel
		}},
		{"timeout", func() (context.Context, context.CancelFunc) {
			return context.WithTimeout(context.Background(), 20*time.Millisecond)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := tt.ctx()
			defer cancel()

			s := newSpinnerWithContext(ctx, "Rendering figure...")
			s.Start()
			time.Sleep(100 * time.Millisecond)
			if !s.Cancelled() {
				t.Error("spinner not cancelled with its context")
			}
			s.Stop()
		})
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := newSpinner("Rendering figure...")
	s.Start()
	s.Stop()
	s.Stop()
	s.StopWithError("Render failed")
}

func TestSpinnerQuietWithoutTerminal(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner("Rendering figure...")
	s.w, s.animate = &buf, false
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()
	if buf.Len() != 0 {
		t.Errorf("spinner wrote %q to a non-terminal", buf.String())
	}
}

func TestSpinnerAnimates(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner("Rendering figure...")
	s.w, s.animate = &buf, true
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()
	if !bytes.Contains(buf.Bytes(), []byte("Rendering figure...")) {
		t.Errorf("spinner output %q lacks the message", buf.String())
	}
}
