package webdemo

import (
	"strings"
	"testing"

	"github.com/cwbudde/algo-voicefx/audio/wavfile"
	"github.com/cwbudde/algo-voicefx/dsp/buffer"
	"github.com/cwbudde/algo-voicefx/internal/testutil"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()

	e, err := NewEngine(48000)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	return e
}

func TestNewEngineRejectsBadRate(t *testing.T) {
	if _, err := NewEngine(0); err == nil {
		t.Fatal("expected error")
	}
}

func TestProcessPassthroughGain(t *testing.T) {
	e := newTestEngine(t)

	src := make([]float32, 256)
	for i := range src {
		src[i] = 0.5
	}
	dst := make([]float32, 256)
	if err := e.Process(dst, src); err != nil {
		t.Fatalf("Process: %v", err)
	}
	for i, v := range dst {
		if v != float32(0.35) {
			t.Fatalf("dst[%d] = %v, want 0.35", i, v)
		}
	}

	if err := e.SetRecording(true); err != nil {
		t.Fatalf("SetRecording: %v", err)
	}
	if e.Gain() != 0.6 {
		t.Fatalf("recording gain = %v", e.Gain())
	}
}

func TestSetEffectAndProcess(t *testing.T) {
	e := newTestEngine(t)
	if err := e.SetEffect("radio", 90); err != nil {
		t.Fatalf("SetEffect: %v", err)
	}

	voice := testutil.Voice(48000, 1024)
	src := make([]float32, len(voice))
	for i, v := range voice {
		src[i] = float32(v)
	}
	dst := make([]float32, len(src))
	if err := e.Process(dst, src); err != nil {
		t.Fatalf("Process: %v", err)
	}
	for i, v := range dst {
		if v > 1 || v < -1 {
			t.Fatalf("dst[%d] = %v out of range", i, v)
		}
	}
}

func TestListEffects(t *testing.T) {
	if got := len(newTestEngine(t).ListEffects()); got != 8 {
		t.Fatalf("ListEffects() len = %d, want 8", got)
	}
}

func TestExport(t *testing.T) {
	e := newTestEngine(t)

	rec, err := wavfile.Encode(buffer.FromMono(testutil.Voice(48000, 4800), 48000))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	data, name, processed := e.Export(rec, "echo", 60)
	if !processed || len(data) != len(rec) {
		t.Fatalf("processed=%v len=%d", processed, len(data))
	}
	if !strings.HasPrefix(name, "voice-effect-echo-") || !strings.HasSuffix(name, ".wav") {
		t.Fatalf("filename = %q", name)
	}

	junk := []byte("junk")
	data, _, processed = e.Export(junk, "echo", 60)
	if processed || string(data) != "junk" {
		t.Fatal("expected original blob back")
	}
}

func TestRecordingStartsWithFreshPatch(t *testing.T) {
	e := newTestEngine(t)
	if err := e.SetEffect("delay", 100); err != nil {
		t.Fatalf("SetEffect: %v", err)
	}

	block := make([]float32, 128)
	dst := make([]float32, 128)
	block[0] = 1
	if err := e.Process(dst, block); err != nil {
		t.Fatalf("Process: %v", err)
	}

	if err := e.SetRecording(true); err != nil {
		t.Fatalf("SetRecording: %v", err)
	}

	// One second of silence spans the 0.5 s echo and its first repeat.
	silence := make([]float32, 128)
	for n := 0; n < 48000/128; n++ {
		if err := e.Process(dst, silence); err != nil {
			t.Fatalf("Process: %v", err)
		}
		for i, v := range dst {
			if v != 0 {
				t.Fatalf("block %d frame %d: preview tail %v reached recording", n, i, v)
			}
		}
	}

	id, intensity, ok := e.router.Active()
	if !ok || id != "delay" || intensity != 100 {
		t.Fatalf("selection lost: %s %d %v", id, intensity, ok)
	}
}
