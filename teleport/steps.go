package teleport

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/lvrc/debug"
	"github.com/oomph-ac/lvrc/omath"
)

// StepResult is the path ValidateSteps walked.
type StepResult struct {
	// Steps are the feet positions of every step taken, excluding the start.
	Steps []mgl64.Vec3
	// Drop is set if the path ran into a fall or descended more than MaxMantleHeight in one step.
	Drop bool
	// Reached is set if the last position walked to is at the destination.
	Reached bool
}

// ValidateSteps walks the step probe capsule from the feet position from towards
// the ground location to. Each step moves forward by at most StepLength, stepping
// up over obstacles no higher than MaxStepHeight and settling onto the floor below.
// Walking stops at a fall, once progress stalls, or after MaxStepIterations steps.
func (r *Resolver) ValidateSteps(from, to mgl64.Vec3) StepResult {
	p := r.Params
	probe := p.StepCapsule
	dir := omath.SafeNormal2D(to.Sub(from))

	var res StepResult
	cur := probe.Center(from).Add(mgl64.Vec3{0, 0, FloorFloatOffset})
	for i := 0; i < MaxStepIterations; i++ {
		remaining := omath.HzDist(cur, to)
		if remaining < StepEpsilon {
			break
		}
		length := math.Min(p.StepLength, remaining)

		pos := r.stepForward(cur, dir, length)

		down := r.World.SweepCapsule(pos, pos.Sub(mgl64.Vec3{0, 0, p.MaxDropDistance}), probe, r.Mask, r.Ignore)
		if !down.Blocking || down.Lethal() {
			res.Drop = true
			break
		}
		next := pos
		if r.walkable().IsWalkable(down) {
			next = down.Location.Add(mgl64.Vec3{0, 0, FloorFloatOffset})
		}
		if next.Sub(cur).Len() <= StepEpsilon {
			break
		}
		if cur.Z()-next.Z() > p.MaxMantleHeight {
			res.Drop = true
		}
		res.Steps = append(res.Steps, probe.Feet(next))
		cur = next
	}

	last := probe.Feet(cur)
	res.Reached = omath.HzDist(last, to) <= reachTolerance && math.Abs(last.Z()-to.Z()) <= p.MaxStepHeight+FloorFloatOffset

	data := debug.Data()
	data.Set("steps", len(res.Steps))
	data.Set("drop", res.Drop)
	data.Set("reached", res.Reached)
	r.sink().Stage("steps", data)
	r.sink().Path("steps", res.Steps)
	return res
}

// stepForward sweeps the probe length along dir from cur. A blocked sweep backs off
// slightly, steps up by MaxStepHeight and sweeps the rest of the way.
func (r *Resolver) stepForward(cur, dir mgl64.Vec3, length float64) mgl64.Vec3 {
	probe := r.Params.StepCapsule

	fwd := r.World.SweepCapsule(cur, cur.Add(dir.Mul(length)), probe, r.Mask, r.Ignore)
	if !fwd.Blocking {
		return fwd.Location
	}

	travelled := omath.HzDist(cur, fwd.Location)
	back := math.Min(StepBackoff, travelled)
	start := fwd.Location.Sub(dir.Mul(back))

	up := r.World.SweepCapsule(start, start.Add(mgl64.Vec3{0, 0, r.Params.MaxStepHeight}), probe, r.Mask, r.Ignore)
	if up.StartPenetrating {
		return fwd.Location
	}
	rest := length - travelled + back
	over := r.World.SweepCapsule(up.Location, up.Location.Add(dir.Mul(rest)), probe, r.Mask, r.Ignore)
	if over.StartPenetrating {
		return fwd.Location
	}
	return over.Location
}
