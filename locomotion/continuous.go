package locomotion

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/lvrc/omath"
	"github.com/oomph-ac/lvrc/physics"
	"github.com/oomph-ac/lvrc/teleport"
	"github.com/sirupsen/logrus"
)

// Tick advances continuous locomotion by dt seconds. The input is a stick
// position: Y walks in the direction the HMD faces and X strafes right. The
// capsule follows the HMD while the player is moving, and the first tick with
// input after a tick without any begins continuous locomotion, which is reported
// by the return value.
func (c *Component) Tick(dt float64, input mgl64.Vec2) (started bool) {
	c.continuous = !omath.NearlyZero(input.LenSqr())
	if c.continuous {
		c.followHMD()
		if omath.NearlyZero(c.prevInput.LenSqr()) {
			c.BeginContinuousLocomotion()
			started = true
		}
		c.walk(dt, input)
	}
	c.prevInput = input
	return started
}

// Moving reports whether the player gave locomotion input on the last tick.
func (c *Component) Moving() bool {
	return c.continuous
}

// BeginContinuousLocomotion is called on the first tick of continuous locomotion.
// It catches the capsule up with any distance the player walked physically before
// giving input, without passing through geometry.
func (c *Component) BeginContinuousLocomotion() {
	c.followHMD()
	c.log.WithFields(logrus.Fields{"center": c.center, "origin": c.Origin()}).Debug("locomotion: continuous locomotion started")
}

// followHMD sweeps the capsule horizontally towards the HMD, stopping at the first
// blocking geometry. The VR origin is moved back by the distance travelled.
func (c *Component) followHMD() {
	hmd, ok := c.HMD()
	if !ok {
		return
	}
	goal := mgl64.Vec3{hmd.X(), hmd.Y(), c.center.Z()}
	hit := c.world.SweepCapsule(c.center, goal, c.capsule, c.resolver.Mask, c.resolver.Ignore)
	if hit.StartPenetrating {
		return
	}
	c.shift(omath.Flatten(hit.Location.Sub(c.center)))
}

// walk moves the capsule, together with the VR origin, along the input and settles
// it onto the floor below if there is one within step height.
func (c *Component) walk(dt float64, input mgl64.Vec2) {
	forward := mgl64.Vec3{1, 0, 0}
	if pose, ok := c.tracker.Pose(); ok {
		forward = omath.SafeNormal2D(omath.Vec32To64(pose.Forward()))
		if forward.LenSqr() == 0 {
			forward = mgl64.Vec3{1, 0, 0}
		}
	}
	right := mgl64.Vec3{forward.Y(), -forward.X(), 0}
	move := forward.Mul(input.Y()).Add(right.Mul(input.X())).Mul(c.conf.WalkSpeed * dt)

	hit := c.world.SweepCapsule(c.center, c.center.Add(move), c.capsule, c.resolver.Mask, c.resolver.Ignore)
	if hit.StartPenetrating {
		return
	}
	c.center = hit.Location

	drop := c.resolver.Params.MaxStepHeight + teleport.FloorFloatOffset
	down := c.world.SweepCapsule(c.center, c.center.Sub(mgl64.Vec3{0, 0, drop}), c.capsule, c.resolver.Mask, c.resolver.Ignore)
	if c.walkable(down) {
		c.center = down.Location.Add(mgl64.Vec3{0, 0, teleport.FloorFloatOffset})
	}
}

func (c *Component) walkable(hit physics.HitResult) bool {
	if c.resolver.Walkable == nil {
		return physics.NewSlopeLimit(physics.DefaultWalkableSlope).IsWalkable(hit)
	}
	return c.resolver.Walkable.IsWalkable(hit)
}
