package engine

import (
	"github.com/ravi-l/povsim/internal/vec"
)

// SphericalJoint constrains a point of body A to coincide with a point of
// body B (a ball joint). The anchor is given in world coordinates at
// construction time and converted to body-local attachment frames, so the
// joint follows both bodies as they move.
//
// The constraint is solved with sequential velocity impulses plus a Baumgarte
// position-correction bias, the same scheme used by impulse-based 2D engines
// generalized to three dimensions.
type SphericalJoint struct {
	a, b   *Body
	localA vec.Vec3
	localB vec.Vec3

	// per-step solver cache
	rA, rB vec.Vec3
	kInv   vec.Mat3
	bias   vec.Vec3
	kOK    bool
}

// NewSphericalJoint connects a and b at the world-space point anchor using
// their current poses.
func NewSphericalJoint(a, b *Body, anchor vec.Vec3) (*SphericalJoint, error) {
	if a == nil || b == nil || a == b {
		return nil, ErrJointBodies
	}
	return &SphericalJoint{
		a:      a,
		b:      b,
		localA: a.Rot.RotateInv(anchor.Sub(a.Pos)),
		localB: b.Rot.RotateInv(anchor.Sub(b.Pos)),
	}, nil
}

// positionError is the world-space separation of the two attachment points.
func (j *SphericalJoint) positionError() vec.Vec3 {
	pa := j.a.Pos.Add(j.a.Rot.Rotate(j.localA))
	pb := j.b.Pos.Add(j.b.Rot.Rotate(j.localB))
	return pb.Sub(pa)
}

// AnchorDrift reports how far apart the attachment points currently are.
// A healthy solve keeps this near zero.
func (j *SphericalJoint) AnchorDrift() float64 {
	return j.positionError().Length()
}

// preStep refreshes the world-space attachment offsets, the effective-mass
// matrix and the Baumgarte bias for the coming velocity iterations.
func (j *SphericalJoint) preStep(dt, beta float64) {
	j.rA = j.a.Rot.Rotate(j.localA)
	j.rB = j.b.Rot.Rotate(j.localB)

	// K = (1/mA + 1/mB) E - [rA]x IA^-1 [rA]x - [rB]x IB^-1 [rB]x
	k := vec.Identity().Scale(j.a.effInvMass() + j.b.effInvMass())
	sa := vec.Skew(j.rA)
	sb := vec.Skew(j.rB)
	k = k.Add(sa.Mul(j.a.invInertiaWorld()).Mul(sa).Scale(-1))
	k = k.Add(sb.Mul(j.b.invInertiaWorld()).Mul(sb).Scale(-1))

	j.kInv, j.kOK = k.Inverse()
	j.bias = j.positionError().Scale(beta / dt)
}

// applyImpulse runs one velocity iteration, driving the relative velocity of
// the attachment points toward -bias.
func (j *SphericalJoint) applyImpulse() {
	if !j.kOK {
		// Both bodies immovable at this anchor; nothing to correct.
		return
	}

	vRel := j.b.velocityAt(j.rB).Sub(j.a.velocityAt(j.rA))
	p := j.kInv.MulVec(vRel.Add(j.bias).Scale(-1))

	j.b.applyImpulse(p, j.rB)
	j.a.applyImpulse(p.Scale(-1), j.rA)
}
