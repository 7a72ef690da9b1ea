// Package engine implements a small rigid-body world: box bodies with
// density-derived mass properties, spherical (point-to-point) joints solved
// with sequential impulses, and fixed-step semi-implicit Euler integration.
//
// The package defines the core simulation types:
//
//   - [Body]: rigid body with box geometry and optional visual asset
//   - [SphericalJoint]: ball joint pinning two bodies at a world point
//   - [System]: owns bodies and joints and advances simulated time
//
// # Example
//
//	sys := engine.NewSystem()
//	floor := engine.NewBoxBody(10, 2, 10, 3000)
//	floor.SetFixed(true)
//	sys.AddBody(floor)
//	for sys.Time() < 1.5 {
//	    sys.DoStep(0.01)
//	}
//
// # Thread Safety
//
// System instances are NOT thread-safe. Run each System from a single
// goroutine.
package engine
