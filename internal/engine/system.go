package engine

import (
	"github.com/ravi-l/povsim/internal/vec"
)

const (
	defaultIterations = 8
	defaultBeta       = 0.2
)

// System owns bodies and joints and advances simulated time with a fixed
// timestep: gravity, semi-implicit Euler velocity update, iterative joint
// impulse solve, then position/orientation integration.
type System struct {
	Gravity vec.Vec3

	// Iterations is the velocity-solver iteration count per step.
	Iterations int
	// Beta is the Baumgarte position-correction factor in (0, 1].
	Beta float64

	bodies []*Body
	joints []*SphericalJoint
	time   float64
}

// NewSystem creates an empty world with Earth gravity along -Y.
func NewSystem() *System {
	return &System{
		Gravity:    vec.Vec3{Y: -9.81},
		Iterations: defaultIterations,
		Beta:       defaultBeta,
	}
}

func (s *System) AddBody(b *Body)            { s.bodies = append(s.bodies, b) }
func (s *System) AddJoint(j *SphericalJoint) { s.joints = append(s.joints, j) }

func (s *System) Bodies() []*Body           { return s.bodies }
func (s *System) Joints() []*SphericalJoint { return s.joints }

// Time returns the accumulated simulated time.
func (s *System) Time() float64 { return s.time }

// DoStep advances the world by dt. Fixed bodies never move; simulated time
// advances by exactly dt on success.
func (s *System) DoStep(dt float64) error {
	if dt <= 0 {
		return &StepError{Time: s.time, Wrapped: ErrStepSize}
	}

	// Velocity update (semi-implicit Euler: velocities first).
	for _, b := range s.bodies {
		if b.fixed {
			continue
		}
		b.LinVel = b.LinVel.Add(s.Gravity.Scale(dt))
	}

	// Constraint solve.
	for _, j := range s.joints {
		j.preStep(dt, s.Beta)
	}
	for i := 0; i < s.Iterations; i++ {
		for _, j := range s.joints {
			j.applyImpulse()
		}
	}

	// Position update using the corrected velocities.
	for _, b := range s.bodies {
		if b.fixed {
			continue
		}
		b.Pos = b.Pos.Add(b.LinVel.Scale(dt))
		b.Rot = b.Rot.Integrate(b.AngVel, dt)
	}

	s.time += dt

	for _, b := range s.bodies {
		if !b.stateValid() {
			return &StepError{Time: s.time, Wrapped: ErrInvalidState}
		}
	}

	return nil
}

// Energy returns total mechanical energy of the movable bodies: translational
// and rotational kinetic energy plus gravitational potential.
func (s *System) Energy() float64 {
	e := 0.0
	for _, b := range s.bodies {
		if b.fixed {
			continue
		}
		e += 0.5 * b.mass * b.LinVel.Dot(b.LinVel)

		// Rotational KE via the world-frame inertia tensor.
		r := b.Rot.Matrix()
		inertia := vec.Diagonal(vec.Vec3{
			X: 1 / b.invInertia.X,
			Y: 1 / b.invInertia.Y,
			Z: 1 / b.invInertia.Z,
		})
		iw := r.Mul(inertia).Mul(r.Transpose())
		e += 0.5 * b.AngVel.Dot(iw.MulVec(b.AngVel))

		e += -b.mass * s.Gravity.Dot(b.Pos)
	}
	return e
}
