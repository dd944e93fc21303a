package teleport

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/lvrc/debug"
	"github.com/oomph-ac/lvrc/omath"
)

// AcceptDestination picks the furthest step the full player capsule fits at. If
// the path involved a drop, the player must also be able to see the step from
// their eyes. The steps up to and including the accepted one are returned. With
// no acceptable step the player stays where they are.
//
// An accepted step that falls well short of desired is nudged up to StepLength
// towards it, provided the nudged position is still on the ground. Paths that
// ended at a drop are never nudged.
func (r *Resolver) AcceptDestination(stance Stance, steps []mgl64.Vec3, drop bool, desired mgl64.Vec3) (mgl64.Vec3, []mgl64.Vec3) {
	player := stance.Capsule()

	dest, accepted := stance.Feet, steps[:0]
	rejected := 0
	for i := len(steps) - 1; i >= 0; i-- {
		candidate := steps[i]
		if drop && !r.canSee(stance, candidate) {
			rejected++
			continue
		}
		centre := player.Center(candidate)
		if r.World.SweepCapsule(centre, centre, player, r.Mask, r.Ignore).Blocking {
			rejected++
			continue
		}
		dest, accepted = candidate, steps[:i+1]
		break
	}

	snugged := false
	if len(accepted) > 0 && !drop && r.shortOf(stance.Feet, dest, desired) {
		dest, snugged = r.snug(player.Center(dest), desired, stance)
	}

	data := debug.Data()
	data.Set("destination", dest)
	data.Set("accepted", len(accepted))
	data.Set("rejected", rejected)
	data.Set("snugged", snugged)
	r.sink().Stage("accept", data)
	return dest, accepted
}

// shortOf reports whether dest stops well short of desired on the way out from
// feet. A desired location behind or beside dest does not count.
func (r *Resolver) shortOf(feet, dest, desired mgl64.Vec3) bool {
	if dest.Sub(desired).LenSqr() <= snugFactor*r.Params.StepLength*r.Params.StepLength {
		return false
	}
	if omath.HzDist(feet, desired) <= omath.HzDist(feet, dest) {
		return false
	}
	return omath.Flatten(desired.Sub(dest)).Dot(omath.Flatten(dest.Sub(feet))) > 0
}

// snug sweeps the player capsule centred at centre horizontally towards desired,
// at most StepLength, and keeps the new position if there is still floor right
// below it.
func (r *Resolver) snug(centre, desired mgl64.Vec3, stance Stance) (mgl64.Vec3, bool) {
	player := stance.Capsule()
	original := player.Feet(centre)

	offset := omath.Flatten(desired.Sub(centre))
	if offset.Len() > r.Params.StepLength {
		offset = offset.Normalize().Mul(r.Params.StepLength)
	}
	goal := centre.Add(offset)
	sweep := r.World.SweepCapsule(centre, goal, player, r.Mask, r.Ignore)
	if sweep.StartPenetrating {
		return original, false
	}
	probe := r.World.SweepCapsule(sweep.Location, sweep.Location.Sub(mgl64.Vec3{0, 0, 2*MaxFloorDist + FloorFloatOffset}), player, r.Mask, r.Ignore)
	if !probe.Blocking || probe.StartPenetrating || probe.Lethal() || !r.walkable().IsWalkable(probe) {
		return original, false
	}
	return player.Feet(probe.Location.Add(mgl64.Vec3{0, 0, FloorFloatOffset})), true
}

// canSee reports whether the player's eye has line of sight to the sight target of
// a stance at feet.
func (r *Resolver) canSee(stance Stance, feet mgl64.Vec3) bool {
	return !r.World.TraceLine(stance.Eye, r.sightPoint(stance, feet), r.Mask, r.Ignore).Blocking
}

func (r *Resolver) sightPoint(stance Stance, feet mgl64.Vec3) mgl64.Vec3 {
	switch r.Params.Sight {
	case SightCenter:
		return feet.Add(mgl64.Vec3{0, 0, stance.CapsuleHalfHeight})
	case SightFeet:
		return feet.Add(mgl64.Vec3{0, 0, FloorFloatOffset})
	}
	return feet.Add(mgl64.Vec3{0, 0, stance.TopOfHead})
}
