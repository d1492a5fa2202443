package stage

import (
	"math"

	"github.com/cwbudde/algo-voicefx/dsp/graph"
)

// maxValue bounds parameters without a natural range.
const maxValue = math.MaxFloat32

type params []*graph.Param

// Param returns the named parameter or nil.
func (ps params) Param(name string) *graph.Param {
	for _, p := range ps {
		if p.Name() == name {
			return p
		}
	}
	return nil
}

// Params returns every parameter of the stage.
func (ps params) Params() []*graph.Param {
	return ps
}
