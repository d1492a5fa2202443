// Package buffer holds the planar multi-channel Signal passed between
// capture, rendering and export, and a pool of scratch blocks for the
// live processing loop.
package buffer
