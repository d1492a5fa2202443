// Package stage adapts the unit DSP primitives of this module to
// [graph.Stage] so they can be wired into effect topologies.
//
// Every stage exposes its automatable parameters by name. Parameter
// names follow the browser audio node vocabulary: "gain", "offset",
// "frequency", "delayTime", "Q", "threshold", "knee", "ratio", "attack"
// and "release".
package stage
