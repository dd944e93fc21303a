// Package physics describes the collision queries lvrc needs from its host. The
// host's physics engine (or the reference world in package world) implements
// World; lvrc itself never inspects geometry directly.
package physics

import (
	"github.com/go-gl/mathgl/mgl64"
)

// World is the synchronous collision query service supplied by the host.
type World interface {
	// TraceLine returns the first blocking hit along the segment start->end.
	TraceLine(start, end mgl64.Vec3, mask Mask, ignore IgnoreSet) HitResult
	// SweepCapsule sweeps an upright capsule whose centre moves from start to end
	// and returns the first blocking hit. When start == end the call is an overlap test.
	SweepCapsule(start, end mgl64.Vec3, capsule Capsule, mask Mask, ignore IgnoreSet) HitResult
	// FindNearestFreeSpot nudges a capsule centred at center out of penetrating geometry.
	// The second return value is false if no free spot could be found nearby.
	FindNearestFreeSpot(capsule Capsule, center mgl64.Vec3, mask Mask, ignore IgnoreSet) (mgl64.Vec3, bool)
}

// Capsule is an upright capsule. HalfHeight is measured from the centre to the
// tip of either hemisphere, so it is never smaller than Radius.
type Capsule struct {
	Radius     float64
	HalfHeight float64
}

// Height returns the full height of the capsule.
func (c Capsule) Height() float64 {
	return c.HalfHeight * 2
}

// Feet returns the bottom of a capsule centred at center.
func (c Capsule) Feet(center mgl64.Vec3) mgl64.Vec3 {
	return center.Sub(mgl64.Vec3{0, 0, c.HalfHeight})
}

// Center returns the centre of a capsule standing on feet.
func (c Capsule) Center(feet mgl64.Vec3) mgl64.Vec3 {
	return feet.Add(mgl64.Vec3{0, 0, c.HalfHeight})
}

// Extents returns the half extents of the box enclosing the capsule.
func (c Capsule) Extents() mgl64.Vec3 {
	return mgl64.Vec3{c.Radius, c.Radius, c.HalfHeight}
}
