package engine

import (
	"github.com/ravi-l/povsim/internal/vec"
)

// Visual describes how a body is rendered by an exporter. Texture is a path
// relative to the data directory; when set it takes precedence over Color.
type Visual struct {
	Color         *vec.Color
	Texture       string
	TextureScaleU float64
	TextureScaleV float64
}

// Body is a rigid body with box collision-free geometry. Mass and inertia are
// derived from the box dimensions and density, mirroring the usual
// "easy box" construction: mass = density*sx*sy*sz, with the solid-box
// diagonal inertia tensor about the center of mass.
type Body struct {
	Size    vec.Vec3 // full extents
	Density float64

	Pos    vec.Vec3
	Rot    vec.Quat
	LinVel vec.Vec3
	AngVel vec.Vec3 // world frame, rad/s

	Visual Visual

	mass       float64
	invMass    float64
	invInertia vec.Vec3 // body-frame diagonal
	fixed      bool
}

// NewBoxBody creates a box body of the given full extents and density,
// centered at the origin with identity orientation.
func NewBoxBody(sx, sy, sz, density float64) (*Body, error) {
	if sx <= 0 || sy <= 0 || sz <= 0 || density <= 0 {
		return nil, ErrBadGeometry
	}

	m := density * sx * sy * sz
	k := m / 12.0
	inertia := vec.Vec3{
		X: k * (sy*sy + sz*sz),
		Y: k * (sx*sx + sz*sz),
		Z: k * (sx*sx + sy*sy),
	}

	return &Body{
		Size:    vec.Vec3{X: sx, Y: sy, Z: sz},
		Density: density,
		Rot:     vec.QuatIdentity(),
		mass:    m,
		invMass: 1 / m,
		invInertia: vec.Vec3{
			X: 1 / inertia.X,
			Y: 1 / inertia.Y,
			Z: 1 / inertia.Z,
		},
	}, nil
}

func (b *Body) Mass() float64 { return b.mass }

func (b *Body) SetPos(p vec.Vec3)    { b.Pos = p }
func (b *Body) SetRot(q vec.Quat)    { b.Rot = q.Normalize() }
func (b *Body) SetLinVel(v vec.Vec3) { b.LinVel = v }
func (b *Body) SetAngVel(w vec.Vec3) { b.AngVel = w }

// SetFixed pins the body to the world. Fixed bodies have infinite effective
// mass and never move.
func (b *Body) SetFixed(fixed bool) {
	b.fixed = fixed
	if fixed {
		b.LinVel = vec.Vec3{}
		b.AngVel = vec.Vec3{}
	}
}

func (b *Body) Fixed() bool { return b.fixed }

// SetColor assigns a flat RGB color to the body's visual asset.
func (b *Body) SetColor(c vec.Color) {
	b.Visual.Color = &c
}

// SetTexture assigns an image texture (data-directory relative path) with
// the given UV tiling scale.
func (b *Body) SetTexture(path string, uScale, vScale float64) {
	b.Visual.Texture = path
	b.Visual.TextureScaleU = uScale
	b.Visual.TextureScaleV = vScale
}

func (b *Body) effInvMass() float64 {
	if b.fixed {
		return 0
	}
	return b.invMass
}

// invInertiaWorld returns the world-frame inverse inertia tensor,
// R * diag(invI) * R^T. Zero for fixed bodies.
func (b *Body) invInertiaWorld() vec.Mat3 {
	if b.fixed {
		return vec.Mat3{}
	}
	r := b.Rot.Matrix()
	return r.Mul(vec.Diagonal(b.invInertia)).Mul(r.Transpose())
}

// velocityAt returns the velocity of the material point at world offset r
// from the center of mass.
func (b *Body) velocityAt(r vec.Vec3) vec.Vec3 {
	return b.LinVel.Add(b.AngVel.Cross(r))
}

// applyImpulse applies impulse p at world offset r from the center of mass.
func (b *Body) applyImpulse(p, r vec.Vec3) {
	if b.fixed {
		return
	}
	b.LinVel = b.LinVel.Add(p.Scale(b.invMass))
	b.AngVel = b.AngVel.Add(b.invInertiaWorld().MulVec(r.Cross(p)))
}

func (b *Body) stateValid() bool {
	return b.Pos.IsValid() && b.LinVel.IsValid() && b.AngVel.IsValid() && b.Rot.IsValid()
}
