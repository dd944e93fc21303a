package vr

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/sasha-s/go-deadlock"
)

// Tracker supplies HMD poses.
type Tracker interface {
	// Pose returns the current HMD pose. The second return value is false while
	// the HMD is not being tracked.
	Pose() (Pose, bool)
	// ResetOrientationAndPosition makes the current heading and floor position of
	// the HMD the new tracking origin.
	ResetOrientationAndPosition()
}

// StaticTracker is a Tracker whose raw pose is set by hand. It is safe for
// concurrent use, so a device loop may feed it while the game loop reads it.
type StaticTracker struct {
	mu      deadlock.Mutex
	raw     Pose
	tracked bool

	base    mgl32.Vec3
	baseYaw mgl32.Quat
}

// NewStaticTracker returns a tracked StaticTracker reporting the pose passed.
func NewStaticTracker(pose Pose) *StaticTracker {
	return &StaticTracker{raw: pose, tracked: true, baseYaw: mgl32.QuatIdent()}
}

// SetPose updates the raw device pose.
func (t *StaticTracker) SetPose(pose Pose) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.raw, t.tracked = pose, true
}

// SetTracked marks the HMD as tracked or lost.
func (t *StaticTracker) SetTracked(tracked bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.tracked = tracked
}

// Pose ...
func (t *StaticTracker) Pose() (Pose, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	inv := t.baseYaw.Inverse()
	return Pose{
		Orientation: inv.Mul(t.raw.Orientation).Normalize(),
		Position:    inv.Rotate(t.raw.Position.Sub(t.base)),
	}, t.tracked
}

// ResetOrientationAndPosition ...
func (t *StaticTracker) ResetOrientationAndPosition() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.base = mgl32.Vec3{t.raw.Position.X(), t.raw.Position.Y(), 0}
	t.baseYaw = mgl32.QuatRotate(mgl32.DegToRad(t.raw.Yaw()), mgl32.Vec3{0, 0, 1})
}
