package observability

import (
	"context"
	"testing"
	"time"
)

type recordingLayoutHooks struct {
	NoopLayoutHooks
	placed int
}

func (h *recordingLayoutHooks) OnPlacePreview(ctx context.Context, sourceID string, split bool, d time.Duration, err error) {
	h.placed++
}

func TestSetLayoutHooks(t *testing.T) {
	defer SetLayoutHooks(nil)

	rec := &recordingLayoutHooks{}
	SetLayoutHooks(rec)

	Layout().OnPlacePreview(context.Background(), "notes.lex", true, time.Millisecond, nil)
	if rec.placed != 1 {
		t.Errorf("placed = %d, want 1", rec.placed)
	}
}

func TestSetLayoutHooks_NilRestoresNoop(t *testing.T) {
	SetLayoutHooks(nil)
	if _, ok := Layout().(NoopLayoutHooks); !ok {
		t.Errorf("Layout() = %T, want NoopLayoutHooks", Layout())
	}
}

func TestSetCacheHooks_NilRestoresNoop(t *testing.T) {
	SetCacheHooks(nil)
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Errorf("Cache() = %T, want NoopCacheHooks", Cache())
	}
}
