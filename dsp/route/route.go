// Package route keeps one effect subgraph patched between a source and a
// sink and rebuilds it when the selection changes.
package route

import (
	"errors"
	"fmt"
	"sync"

	"github.com/cwbudde/algo-voicefx/dsp/core"
	"github.com/cwbudde/algo-voicefx/dsp/graph"
	"github.com/cwbudde/algo-voicefx/dsp/voicefx"
)

// Router owns the active effect. The zero selection is an identity
// pass-through. A Router is safe for concurrent use; Process and SetEffect
// serialize on an internal lock.
type Router struct {
	cfg  core.ProcessorConfig
	opts []voicefx.Option

	mu        sync.Mutex
	active    *voicefx.Effect
	id        voicefx.ID
	intensity voicefx.Intensity
	closed    bool
}

// ErrClosed is returned by a closed router.
var ErrClosed = errors.New("route: router closed")

// New returns a pass-through router. opts are passed to every build.
func New(cfg core.ProcessorConfig, opts ...voicefx.Option) (*Router, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("route: %w", err)
	}
	return &Router{cfg: cfg, opts: opts}, nil
}

// ListEffects returns the effect catalog in display order.
func ListEffects() []voicefx.Descriptor {
	return voicefx.List()
}

// Swap tears down active, which may be nil, and returns a new effect for
// id at intensity. The caller owns the returned effect. On a build error
// the old effect is still torn down and the result is nil, meaning
// pass-through.
func Swap(active *voicefx.Effect, cfg core.ProcessorConfig, id voicefx.ID, intensity voicefx.Intensity, opts ...voicefx.Option) (*voicefx.Effect, error) {
	if active != nil {
		// An already-closed subgraph is the only failure mode.
		_ = active.Close()
	}

	fx, err := voicefx.Build(cfg, id, intensity, opts...)
	if err != nil {
		return nil, fmt.Errorf("route: %w", err)
	}
	return fx, nil
}

// Config returns the processing configuration.
func (r *Router) Config() core.ProcessorConfig { return r.cfg }

// SetEffect discards the active subgraph and patches in a new one for id
// at intensity. Teardown is best effort: a subgraph that is already closed
// is not an error. If the build fails the router falls back to
// pass-through and returns the error.
func (r *Router) SetEffect(id voicefx.ID, intensity voicefx.Intensity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrClosed
	}

	fx, err := Swap(r.active, r.cfg, id, intensity, r.opts...)
	r.active = nil
	r.id = ""
	r.intensity = 0
	if err != nil {
		return err
	}

	r.active = fx
	r.id = id
	r.intensity = fx.Intensity()
	return nil
}

// Clear removes the active subgraph, leaving a pass-through.
func (r *Router) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.teardown()
}

// Active returns the current selection. ok is false for pass-through.
func (r *Router) Active() (id voicefx.ID, intensity voicefx.Intensity, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active == nil {
		return "", 0, false
	}
	return r.id, r.intensity, true
}

// Process runs src through the active subgraph into dst.
func (r *Router) Process(dst, src []float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrClosed
	}
	if len(dst) != len(src) {
		return fmt.Errorf("route: %w: dst %d, src %d", graph.ErrLengthMismatch, len(dst), len(src))
	}
	if r.active == nil {
		copy(dst, src)
		return nil
	}
	return r.active.Process(dst, src)
}

// Describe returns the active topology, or a zero Description for
// pass-through.
func (r *Router) Describe() graph.Description {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active == nil {
		return graph.Description{SampleRate: r.cfg.SampleRate, Quantum: r.cfg.BlockSize}
	}
	return r.active.Describe()
}

// Close tears down the active subgraph. Closing twice returns ErrClosed.
func (r *Router) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrClosed
	}
	r.teardown()
	r.closed = true
	return nil
}

func (r *Router) teardown() {
	if r.active == nil {
		return
	}
	// Already-closed subgraphs are the only failure mode; ignore it.
	_ = r.active.Close()
	r.active = nil
	r.id = ""
	r.intensity = 0
}
