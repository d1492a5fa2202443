// Package dynamics provides level-dependent gain processors.
//
// [Compressor] follows the parameter set of browser dynamics compressor
// nodes: threshold, knee width above the threshold, ratio, attack and
// release in seconds, and an automatic makeup gain derived from the
// static curve at full scale.
package dynamics
