// Package vr describes the head-mounted display as the locomotion component sees
// it. Device poses are reported in float32 tracking space: Z is up and the origin
// sits on the tracked floor.
package vr

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Pose is the orientation and position of the HMD relative to the tracking origin.
type Pose struct {
	Orientation mgl32.Quat
	Position    mgl32.Vec3
}

// IdentityPose returns a pose at the tracking origin looking down +X.
func IdentityPose() Pose {
	return Pose{Orientation: mgl32.QuatIdent()}
}

// Forward returns the direction the HMD is looking in.
func (p Pose) Forward() mgl32.Vec3 {
	return p.Orientation.Rotate(mgl32.Vec3{1, 0, 0})
}

// Yaw returns the heading of the HMD around Z in degrees, in the range (-180, 180].
func (p Pose) Yaw() float32 {
	f := p.Forward()
	return math32.Atan2(f.Y(), f.X()) * 180 / math32.Pi
}

// Pitch returns how far the HMD is looking above horizontal in degrees.
func (p Pose) Pitch() float32 {
	f := p.Forward()
	return math32.Atan2(f.Z(), math32.Hypot(f.X(), f.Y())) * 180 / math32.Pi
}

// Height returns the height of the HMD above the tracked floor.
func (p Pose) Height() float32 {
	return p.Position.Z()
}
