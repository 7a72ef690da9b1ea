// Package metrics provides per-step diagnostics over a running system. Each
// metric implements sim.Observer and can be attached to a Runner.
package metrics

import (
	"math"

	"github.com/ravi-l/povsim/internal/engine"
)

// EnergyDrift tracks the worst relative mechanical-energy deviation from the
// first observed value.
type EnergyDrift struct {
	sys      *engine.System
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift(sys *engine.System) *EnergyDrift {
	return &EnergyDrift{sys: sys}
}

func (e *EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) OnStep(t float64) {
	energy := e.sys.Energy()
	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}

// AnchorDrift tracks the worst joint separation seen during a run.
type AnchorDrift struct {
	joint *engine.SphericalJoint
	max   float64
}

func NewAnchorDrift(j *engine.SphericalJoint) *AnchorDrift {
	return &AnchorDrift{joint: j}
}

func (a *AnchorDrift) Name() string { return "anchor_drift" }

func (a *AnchorDrift) OnStep(t float64) {
	a.max = math.Max(a.max, a.joint.AnchorDrift())
}

func (a *AnchorDrift) Value() float64 { return a.max }

func (a *AnchorDrift) Reset() { a.max = 0 }
