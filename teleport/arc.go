package teleport

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/lvrc/omath"
	"github.com/oomph-ac/lvrc/physics"
)

// PredictArc simulates a projectile launched from start with the velocity passed.
// Drag decelerates it by a constant amount against its direction of travel. The
// simulated time is split into substeps equal slices, each traced against the
// world. The returned path starts at start and ends at either the first blocking
// hit, in which case ok is true, or wherever the projectile is once maxSimTime
// has elapsed.
func PredictArc(w physics.World, start, velocity mgl64.Vec3, drag, gravityZ, maxSimTime float64, substeps uint8, mask physics.Mask, ignore physics.IgnoreSet) (path []mgl64.Vec3, hit physics.HitResult, ok bool) {
	path = make([]mgl64.Vec3, 1, int(substeps)+1)
	path[0] = start
	if substeps == 0 {
		return path, physics.Miss(start, start), false
	}

	dt := maxSimTime / float64(substeps)
	gravity := mgl64.Vec3{0, 0, gravityZ}
	pos, vel := start, velocity
	for i := 0; i < int(substeps); i++ {
		accel := gravity.Add(omath.SafeNormal(vel).Mul(-drag))
		vel = vel.Add(accel.Mul(dt))
		next := pos.Add(vel.Mul(dt)).Add(accel.Mul(0.5 * dt * dt))

		hit = w.TraceLine(pos, next, mask, ignore)
		if hit.Blocking {
			return append(path, hit.Location), hit, true
		}
		path = append(path, next)
		pos = next
	}
	return path, hit, false
}
