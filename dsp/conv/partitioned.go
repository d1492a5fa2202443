package conv

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// Partitioned is a streaming uniformly partitioned overlap-save convolver.
// Every call to ProcessBlock consumes and produces exactly BlockSize samples.
type Partitioned struct {
	kernelLen int
	blockSize int
	fftSize   int

	plan *algofft.Plan[complex128]

	// kernel partition spectra, H_k
	partitions [][]complex128

	// frequency-domain delay line of past input windows
	fdl  [][]complex128
	head int

	window  []float64
	scratch []complex128
	acc     []complex128
}

// NewPartitioned creates a convolver for kernel processed in blocks of blockSize.
func NewPartitioned(kernel []float64, blockSize int) (*Partitioned, error) {
	if len(kernel) == 0 {
		return nil, ErrEmptyKernel
	}
	if blockSize <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBlockSize, blockSize)
	}

	fftSize := nextPowerOf2(2 * blockSize)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("conv: failed to create FFT plan: %w", err)
	}

	count := (len(kernel) + blockSize - 1) / blockSize
	p := &Partitioned{
		kernelLen:  len(kernel),
		blockSize:  blockSize,
		fftSize:    fftSize,
		plan:       plan,
		partitions: make([][]complex128, count),
		fdl:        make([][]complex128, count),
		window:     make([]float64, fftSize),
		scratch:    make([]complex128, fftSize),
		acc:        make([]complex128, fftSize),
	}

	for k := range count {
		clear(p.scratch)
		start := k * blockSize
		end := min(start+blockSize, len(kernel))
		for i, v := range kernel[start:end] {
			p.scratch[i] = complex(v, 0)
		}

		p.partitions[k] = make([]complex128, fftSize)
		if err := plan.Forward(p.partitions[k], p.scratch); err != nil {
			return nil, fmt.Errorf("conv: kernel partition %d FFT: %w", k, err)
		}

		p.fdl[k] = make([]complex128, fftSize)
	}

	return p, nil
}

// BlockSize returns the fixed processing block size.
func (p *Partitioned) BlockSize() int { return p.blockSize }

// KernelLen returns the kernel length.
func (p *Partitioned) KernelLen() int { return p.kernelLen }

// Partitions returns the number of kernel partitions.
func (p *Partitioned) Partitions() int { return len(p.partitions) }

// ProcessBlock convolves one block. src and dst must both hold BlockSize
// samples and may alias.
func (p *Partitioned) ProcessBlock(dst, src []float64) error {
	if len(src) != p.blockSize || len(dst) != p.blockSize {
		return fmt.Errorf("%w: block %d, src %d, dst %d",
			ErrLengthMismatch, p.blockSize, len(src), len(dst))
	}

	n, b := p.fftSize, p.blockSize

	copy(p.window, p.window[b:])
	copy(p.window[n-b:], src)

	for i, v := range p.window {
		p.scratch[i] = complex(v, 0)
	}
	if err := p.plan.Forward(p.fdl[p.head], p.scratch); err != nil {
		return fmt.Errorf("conv: forward FFT failed: %w", err)
	}

	clear(p.acc)
	count := len(p.partitions)
	for k, h := range p.partitions {
		x := p.fdl[(p.head-k+count)%count]
		for i := range p.acc {
			p.acc[i] += x[i] * h[i]
		}
	}

	if err := p.plan.Inverse(p.scratch, p.acc); err != nil {
		return fmt.Errorf("conv: inverse FFT failed: %w", err)
	}

	for i := range b {
		dst[i] = real(p.scratch[n-b+i])
	}

	p.head = (p.head + 1) % count

	return nil
}

// Reset clears the input history.
func (p *Partitioned) Reset() {
	clear(p.window)
	for _, spec := range p.fdl {
		clear(spec)
	}
	p.head = 0
}
