// Package effects provides sample-level processors that sit inside graph
// stages.
package effects
