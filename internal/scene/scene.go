// Package scene assembles engine worlds plus the passive render description
// (camera, light, custom renderer commands) that exporters consume.
package scene

import (
	"fmt"

	"github.com/ravi-l/povsim/internal/config"
	"github.com/ravi-l/povsim/internal/datapath"
	"github.com/ravi-l/povsim/internal/engine"
	"github.com/ravi-l/povsim/internal/vec"
)

// Camera is a perspective camera description. Angle is the field of view in
// degrees.
type Camera struct {
	Position vec.Vec3
	Aim      vec.Vec3
	Up       vec.Vec3
	Angle    float64
}

// Light is a point light. CastShadows=false renders it shadowless.
type Light struct {
	Position    vec.Vec3
	Color       vec.Color
	CastShadows bool
}

// Scene couples a physical system with everything a renderer needs to frame
// it.
type Scene struct {
	System   *engine.System
	Floor    *engine.Body
	Pendulum *engine.Body
	Link     *engine.SphericalJoint

	Camera Camera
	Light  Light

	// CustomCommands is passed through verbatim to the render script.
	CustomCommands string
}

// BuildPendulum constructs the pendulum scene from config: a fixed floor, a
// hanging box with an initial kick, and a spherical link between them.
func BuildPendulum(cfg *config.Config) (*Scene, error) {
	sys := engine.NewSystem()
	sys.Gravity = cfg.Gravity.Vec()

	floor, err := newBody(cfg.Scene.Floor)
	if err != nil {
		return nil, fmt.Errorf("floor: %w", err)
	}
	floor.SetFixed(true)
	sys.AddBody(floor)

	pend, err := newBody(cfg.Scene.Pendulum)
	if err != nil {
		return nil, fmt.Errorf("pendulum: %w", err)
	}
	sys.AddBody(pend)

	link, err := engine.NewSphericalJoint(pend, floor, cfg.Scene.JointPoint.Vec())
	if err != nil {
		return nil, fmt.Errorf("link: %w", err)
	}
	sys.AddJoint(link)

	return &Scene{
		System:   sys,
		Floor:    floor,
		Pendulum: pend,
		Link:     link,
		Camera: Camera{
			Position: cfg.Camera.Position.Vec(),
			Aim:      cfg.Camera.Aim.Vec(),
			Up:       cfg.Camera.Up.Vec(),
			Angle:    cfg.Camera.Angle,
		},
		Light: Light{
			Position:    cfg.Light.Position.Vec(),
			Color:       cfg.Light.Color.Color(),
			CastShadows: cfg.Light.CastShadows,
		},
		CustomCommands: cfg.Export.CustomCommands,
	}, nil
}

func newBody(bc config.BodyConfig) (*engine.Body, error) {
	size := bc.Size.Vec()
	b, err := engine.NewBoxBody(size.X, size.Y, size.Z, bc.Density)
	if err != nil {
		return nil, err
	}
	b.SetPos(bc.Position.Vec())
	b.SetLinVel(bc.Velocity.Vec())
	if bc.Fixed {
		b.SetFixed(true)
	}
	if bc.Color != nil {
		b.SetColor(bc.Color.Color())
	}
	if bc.Texture != "" {
		// config holds paths relative to the data directory
		b.SetTexture(datapath.GetDataFile(bc.Texture), bc.TextureScale[0], bc.TextureScale[1])
	}
	return b, nil
}
