// Package conv provides block convolution for long impulse responses.
//
// [Partitioned] implements uniformly partitioned overlap-save convolution:
// the kernel is split into blocks of the processing block size, each block
// is transformed once, and every input block is convolved in the frequency
// domain against a delay line of past input spectra. Output is produced
// for the same block that was fed in, so the convolver adds no latency at
// block granularity.
//
// [NormalizationScale] computes the equal-power impulse calibration used by
// browser convolver nodes.
package conv
