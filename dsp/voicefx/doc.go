// Package voicefx builds the voice effect topologies.
//
// Each effect is a [graph.Graph] with one entry and one exit. The input is
// split into a dry path and a wet path; both are scaled by gains derived
// from the intensity (0-100) and summed at the output:
//
//	out = dry*in + wet*effect(in)
//
// The catalog of effects is fixed and ordered. Building an unknown id
// yields an identity pass-through rather than an error.
package voicefx
