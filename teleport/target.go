package teleport

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/lvrc/debug"
	"github.com/oomph-ac/lvrc/omath"
	"github.com/oomph-ac/lvrc/physics"
)

// Target is where the teleport arc wants to take the player.
type Target struct {
	// Desired is the ground location the player is aiming for.
	Desired mgl64.Vec3
	ArcEnd  mgl64.Vec3
	Arc     []mgl64.Vec3

	// Lethal is set if the player would end up in a lethal volume or a bottomless fall.
	Lethal bool
	// DropAfterArc is set if the arc did not end on walkable ground, so the player
	// would fall after it.
	DropAfterArc bool
}

// ResolveTarget predicts the teleport arc and works out the ground the player would
// end up on.
func (r *Resolver) ResolveTarget(stance Stance, query Query) Target {
	p := r.Params
	dir := omath.ClampPolarAngle(query.TraceDirection, mgl64.DegToRad(90-p.ArcMaxVerticalAngle))

	arc, hit, ok := PredictArc(r.World, query.TraceStart, dir.Mul(p.ArcInitialSpeed), p.ArcDrag, p.GravityZ, p.MaxSimTime, p.Substeps, r.Mask, r.Ignore)
	t := Target{Arc: arc, ArcEnd: arc[len(arc)-1]}
	r.sink().Path("arc", arc)

	switch {
	case ok && hit.Lethal():
		t.Desired, t.Lethal = t.ArcEnd, true
	case ok && r.walkable().IsWalkable(hit):
		t.Desired = t.ArcEnd
	default:
		t.DropAfterArc = true
		from := t.ArcEnd
		if ok {
			from = r.backoff(query.TraceStart, arc, stance.CapsuleRadius)
		}
		t.Desired, t.Lethal = r.dropTarget(stance, from, t.ArcEnd)
	}

	data := debug.Data()
	data.Set("direction", dir)
	data.Set("arcHit", ok)
	data.Set("arcEnd", t.ArcEnd)
	data.Set("desired", t.Desired)
	data.Set("lethal", t.Lethal)
	data.Set("drop", t.DropAfterArc)
	r.sink().Stage("target", data)
	return t
}

// backoff pulls the end of an arc that struck a wall back towards the player by
// more than the capsule radius.
func (r *Resolver) backoff(traceStart mgl64.Vec3, arc []mgl64.Vec3, radius float64) mgl64.Vec3 {
	end := arc[len(arc)-1]

	var dir mgl64.Vec3
	switch r.Params.Backoff {
	case BackoffCamera2D:
		dir = omath.SafeNormal2D(end.Sub(traceStart))
	case BackoffArcTangent:
		dir = omath.SafeNormal2D(end.Sub(arc[len(arc)-2]))
	default:
		return end
	}
	return end.Sub(dir.Mul(radius + r.Params.WallBackoffMargin))
}

// dropTarget traces down from from for the ground the player would fall onto. The
// trace is shortened by however far the player already is above the arc end.
func (r *Resolver) dropTarget(stance Stance, from, arcEnd mgl64.Vec3) (desired mgl64.Vec3, lethal bool) {
	length := r.Params.MaxDropDistance - (stance.Feet.Z() - arcEnd.Z())
	if length <= 0 {
		return arcEnd, true
	}
	hit := r.World.TraceLine(from, from.Sub(mgl64.Vec3{0, 0, length}), r.Mask, r.Ignore)
	if !hit.Blocking || hit.Lethal() {
		return arcEnd, true
	}
	return hit.ImpactPoint, false
}

func (r *Resolver) walkable() physics.Walkable {
	if r.Walkable == nil {
		return physics.NewSlopeLimit(physics.DefaultWalkableSlope)
	}
	return r.Walkable
}
