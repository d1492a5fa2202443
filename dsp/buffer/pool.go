package buffer

import "sync"

// Pool recycles fixed-size scratch blocks for the live processing loop.
type Pool struct {
	size int
	pool sync.Pool
}

// NewPool returns a pool of zeroed blocks of size samples.
func NewPool(size int) *Pool {
	size = max(size, 0)
	p := &Pool{size: size}
	p.pool.New = func() any {
		b := make([]float64, size)
		return &b
	}
	return p
}

// Size returns the block length.
func (p *Pool) Size() int { return p.size }

// Get returns a zeroed block. Return it with Put when done.
func (p *Pool) Get() []float64 {
	b := *p.pool.Get().(*[]float64)
	clear(b)
	return b
}

// Put returns a block to the pool. Blocks of the wrong size are dropped.
func (p *Pool) Put(b []float64) {
	if len(b) != p.size {
		return
	}
	p.pool.Put(&b)
}
