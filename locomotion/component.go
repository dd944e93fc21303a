// Package locomotion keeps a player's collision capsule in step with their tracked
// head and moves both through the world, either continuously or by teleporting.
//
// The capsule is the player's body in the world. The VR origin is the point on the
// tracked floor that HMD poses are relative to, and it is attached to the capsule:
// moving the capsule moves the player's view with it. Syncing the capsule to the
// head is done by moving the capsule and moving the origin back by the same amount,
// so the view stays where it is.
package locomotion

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/lvrc/oerror"
	"github.com/oomph-ac/lvrc/omath"
	"github.com/oomph-ac/lvrc/physics"
	"github.com/oomph-ac/lvrc/teleport"
	"github.com/oomph-ac/lvrc/vr"
	"github.com/sirupsen/logrus"
)

// Config holds the tunables of a Component.
type Config struct {
	CapsuleRadius float64
	// CapsuleHalfHeight is the half height used until the first height sync.
	CapsuleHalfHeight float64
	// CapsuleHeightOffset is added to the HMD height to get the height of the capsule.
	CapsuleHeightOffset float64
	// TopOfHeadOffset is added to the HMD height to get the top of the player's head.
	TopOfHeadOffset float64
	// WalkSpeed is the speed of continuous locomotion at full input.
	WalkSpeed float64
}

// DefaultConfig returns the default Config, in centimetres.
func DefaultConfig() Config {
	return Config{
		CapsuleRadius:       34,
		CapsuleHalfHeight:   88,
		CapsuleHeightOffset: 10,
		TopOfHeadOffset:     10,
		WalkSpeed:           300,
	}
}

// Component is the movement component of a room-scale VR player. It is not safe
// for concurrent use and is expected to be driven from a single game loop.
type Component struct {
	conf     Config
	world    physics.World
	tracker  vr.Tracker
	resolver *teleport.Resolver
	log      *logrus.Logger

	capsule physics.Capsule
	center  mgl64.Vec3
	// origin is the VR origin relative to the capsule centre.
	origin mgl64.Vec3

	teleporting bool
	continuous  bool
	prevInput   mgl64.Vec2
}

// New returns a Component standing at feet. The resolver is used for teleports and
// supplies the world, walkable test and step height. A nil logger falls back to the
// standard logrus logger.
func New(conf Config, resolver *teleport.Resolver, tracker vr.Tracker, feet mgl64.Vec3, log *logrus.Logger) *Component {
	if log == nil {
		log = logrus.StandardLogger()
	}
	c := &Component{
		conf:     conf,
		world:    resolver.World,
		tracker:  tracker,
		resolver: resolver,
		log:      log,
		capsule:  physics.Capsule{Radius: conf.CapsuleRadius, HalfHeight: math.Max(conf.CapsuleHalfHeight, conf.CapsuleRadius)},
	}
	c.center = c.capsule.Center(feet)
	c.MatchVROriginOffsetToCapsuleHalfHeight()
	return c
}

// Capsule returns the current collision capsule.
func (c *Component) Capsule() physics.Capsule {
	return c.capsule
}

// Center returns the world position of the capsule centre.
func (c *Component) Center() mgl64.Vec3 {
	return c.center
}

// Feet returns the world position of the bottom of the capsule.
func (c *Component) Feet() mgl64.Vec3 {
	return c.capsule.Feet(c.center)
}

// Origin returns the world position of the VR origin.
func (c *Component) Origin() mgl64.Vec3 {
	return c.center.Add(c.origin)
}

// HMD returns the world position of the HMD. The second return value is false if
// the HMD is not being tracked.
func (c *Component) HMD() (mgl64.Vec3, bool) {
	pose, ok := c.tracker.Pose()
	if !ok {
		return mgl64.Vec3{}, false
	}
	return c.Origin().Add(omath.Vec32To64(pose.Position)), true
}

// UpdateCapsulePositionToHMD moves the capsule horizontally under the HMD. The VR
// origin is moved back by the same amount so the HMD does not move in the world.
func (c *Component) UpdateCapsulePositionToHMD() error {
	hmd, ok := c.HMD()
	if !ok {
		return oerror.ErrNoTracking
	}
	c.shift(omath.Flatten(hmd.Sub(c.center)))
	return nil
}

// UpdateCapsuleHeightToHMD resizes the capsule to the height of the HMD plus the
// height offset, keeping its feet where they are.
func (c *Component) UpdateCapsuleHeightToHMD() error {
	pose, ok := c.tracker.Pose()
	if !ok {
		return oerror.ErrNoTracking
	}
	feet := c.Feet()
	c.capsule.HalfHeight = math.Max((float64(pose.Height())+c.conf.CapsuleHeightOffset)/2, c.capsule.Radius)
	c.center = c.capsule.Center(feet)
	c.MatchVROriginOffsetToCapsuleHalfHeight()
	return nil
}

// MatchVROriginOffsetToCapsuleHalfHeight puts the VR origin at the height of the
// bottom of the capsule.
func (c *Component) MatchVROriginOffsetToCapsuleHalfHeight() {
	c.origin[2] = -c.capsule.HalfHeight
}

// PlayerTopOfHeadHeight returns the height of the top of the player's head above
// the VR origin. Without tracking the full capsule height is used.
func (c *Component) PlayerTopOfHeadHeight() float64 {
	pose, ok := c.tracker.Pose()
	if !ok {
		return c.capsule.Height()
	}
	return float64(pose.Height()) + c.conf.TopOfHeadOffset
}

// ResetVR makes the current heading and floor position of the HMD the new tracking origin.
func (c *Component) ResetVR() {
	c.tracker.ResetOrientationAndPosition()
	c.log.Debug("locomotion: tracking origin reset")
}

// shift moves the capsule by delta and the VR origin back by delta.
func (c *Component) shift(delta mgl64.Vec3) {
	c.center = c.center.Add(delta)
	c.origin = c.origin.Sub(delta)
}
