package teleport

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/lvrc/debug"
	"github.com/oomph-ac/lvrc/omath"
)

// TryJump attempts to move the player straight to desired when stepping did not get
// there. Lethal destinations are only jumped to when the player is within
// LedgeClosenessThreshold of them. The player must be able to see the desired
// location and the player capsule must fit there, possibly after being nudged out
// of nearby geometry. The returned position is the feet of the player after the jump.
func (r *Resolver) TryJump(stance Stance, desired mgl64.Vec3, reached, lethal bool) (mgl64.Vec3, bool) {
	data := debug.Data()
	defer r.sink().Stage("jump", data)

	attempt := !reached && (!lethal || omath.HzDist(stance.Feet, desired) <= r.Params.LedgeClosenessThreshold)
	data.Set("attempted", attempt)
	if !attempt {
		return mgl64.Vec3{}, false
	}

	if !r.canSee(stance, desired) {
		data.Set("result", "no line of sight")
		return mgl64.Vec3{}, false
	}

	player := stance.Capsule()
	spot, ok := r.World.FindNearestFreeSpot(player, player.Center(desired).Add(mgl64.Vec3{0, 0, FloorFloatOffset}), r.Mask, r.Ignore)
	if !ok {
		data.Set("result", "no free spot")
		return mgl64.Vec3{}, false
	}
	if r.World.SweepCapsule(spot, spot, player, r.Mask, r.Ignore).Blocking {
		data.Set("result", "capsule does not fit")
		return mgl64.Vec3{}, false
	}

	dest := player.Feet(spot)
	data.Set("result", "jump")
	data.Set("destination", dest)
	return dest, true
}
