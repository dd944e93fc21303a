package world

import (
	"math"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/df-mc/dragonfly/server/block/cube/trace"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/lvrc/physics"
)

const (
	// faceEpsilon is how far an intercept may lie from a face plane and still be attributed to it.
	faceEpsilon = 1e-6
	// freeSpotIterations bounds the depenetration passes of FindNearestFreeSpot.
	freeSpotIterations = 8
	// freeSpotSkin is added to each depenetration so the capsule ends up clear of the surface.
	freeSpotSkin = 0.1
)

// TraceLine ...
func (w *World) TraceLine(start, end mgl64.Vec3, mask physics.Mask, ignore physics.IgnoreSet) physics.HitResult {
	return w.sweep(start, end, mgl64.Vec3{}, mask, ignore)
}

// SweepCapsule ...
func (w *World) SweepCapsule(start, end mgl64.Vec3, capsule physics.Capsule, mask physics.Mask, ignore physics.IgnoreSet) physics.HitResult {
	return w.sweep(start, end, capsule.Extents(), mask, ignore)
}

// FindNearestFreeSpot pushes the capsule out of every box it overlaps along the
// axis of least penetration. It gives up once the capsule has been moved further
// than its own height or is still stuck after a few passes.
func (w *World) FindNearestFreeSpot(capsule physics.Capsule, center mgl64.Vec3, mask physics.Mask, ignore physics.IgnoreSet) (mgl64.Vec3, bool) {
	ext := capsule.Extents()
	maxShift := capsule.Height()

	w.RLock()
	defer w.RUnlock()

	pos := center
	for i := 0; i < freeSpotIterations; i++ {
		moved := false
		for _, b := range w.boxes {
			if !w.considers(b, mask, ignore) {
				continue
			}
			expanded := b.BBox.GrowVec3(ext)
			if !expanded.Vec3Within(pos) {
				continue
			}
			normal, depth := depenetration(expanded, pos)
			pos = pos.Add(normal.Mul(depth + freeSpotSkin))
			moved = true
		}
		if !moved {
			if pos.Sub(center).Len() > maxShift {
				return center, false
			}
			return pos, true
		}
	}
	return center, false
}

func (w *World) considers(b Box, mask physics.Mask, ignore physics.IgnoreSet) bool {
	return mask.Has(b.Channel) && !ignore.Contains(b.Actor)
}

// sweep moves a box with half extents ext from start to end and returns the
// earliest blocking hit. A zero ext makes it a line trace.
func (w *World) sweep(start, end, ext mgl64.Vec3, mask physics.Mask, ignore physics.IgnoreSet) physics.HitResult {
	delta := end.Sub(start)
	length := delta.Len()

	w.RLock()
	defer w.RUnlock()

	best, found := physics.Miss(start, end), false
	for _, b := range w.boxes {
		if !w.considers(b, mask, ignore) {
			continue
		}
		expanded := b.BBox.GrowVec3(ext)
		if expanded.Vec3Within(start) {
			if found && best.StartPenetrating {
				continue
			}
			normal, _ := depenetration(expanded, start)
			best, found = physics.HitResult{
				Blocking:         true,
				StartPenetrating: true,
				Location:         start,
				ImpactPoint:      start,
				Normal:           normal,
				Actor:            b.Actor,
				Surface:          b.Surface,
				TraceStart:       start,
				TraceEnd:         end,
			}, true
			continue
		}
		if length == 0 {
			continue
		}

		res, ok := trace.BBoxIntercept(expanded, start, end)
		if !ok {
			continue
		}
		pos := res.Position()
		normal, entering := entryNormal(expanded, pos, delta)
		if !entering {
			continue
		}
		t := pos.Sub(start).Len() / length
		if found && t >= best.Time {
			continue
		}
		best, found = physics.HitResult{
			Blocking:    true,
			Location:    pos,
			ImpactPoint: pos.Sub(mulVec(normal, ext)),
			Normal:      normal,
			Time:        t,
			Distance:    t * length,
			Actor:       b.Actor,
			Surface:     b.Surface,
			TraceStart:  start,
			TraceEnd:    end,
		}, true
	}
	return best
}

// entryNormal returns the outward normal of the face of bb that pos lies on and
// that a query moving along dir enters through. Queries sliding along or leaving
// a face are not entering it.
func entryNormal(bb cube.BBox, pos, dir mgl64.Vec3) (mgl64.Vec3, bool) {
	lo, hi := bb.Min(), bb.Max()
	normal, bestDist := mgl64.Vec3{}, math.MaxFloat64
	for i := 0; i < 3; i++ {
		switch {
		case dir[i] > 0:
			if d := math.Abs(pos[i] - lo[i]); d < bestDist {
				normal, bestDist = axisVec(i, -1), d
			}
		case dir[i] < 0:
			if d := math.Abs(pos[i] - hi[i]); d < bestDist {
				normal, bestDist = axisVec(i, 1), d
			}
		}
	}
	return normal, bestDist <= faceEpsilon
}

// depenetration returns the outward normal and depth of the shallowest way out of bb for pos.
func depenetration(bb cube.BBox, pos mgl64.Vec3) (mgl64.Vec3, float64) {
	lo, hi := bb.Min(), bb.Max()
	normal, depth := mgl64.Vec3{0, 0, 1}, math.MaxFloat64
	// Checked from Z down so that ties resolve upwards, out through the top of the box.
	for i := 2; i >= 0; i-- {
		if d := hi[i] - pos[i]; d < depth {
			normal, depth = axisVec(i, 1), d
		}
		if d := pos[i] - lo[i]; d < depth {
			normal, depth = axisVec(i, -1), d
		}
	}
	return normal, depth
}

func axisVec(axis int, sign float64) mgl64.Vec3 {
	var v mgl64.Vec3
	v[axis] = sign
	return v
}

func mulVec(a, b mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}
