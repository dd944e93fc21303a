package physics

import "github.com/go-gl/mathgl/mgl64"

// HitResult is the result of a single line trace or capsule sweep.
type HitResult struct {
	// Blocking is true if the query struck something.
	Blocking bool
	// StartPenetrating is true if the query started inside geometry.
	StartPenetrating bool

	// Location is where the query shape ended up: the point itself for line
	// traces, or the capsule centre at the time of impact for sweeps.
	Location mgl64.Vec3
	// ImpactPoint is the point of contact on the struck geometry.
	ImpactPoint mgl64.Vec3
	// Normal is the surface normal at the impact point.
	Normal mgl64.Vec3
	// Time is the fraction along start->end at which the hit occurred.
	Time float64
	// Distance is the distance travelled from start to Location.
	Distance float64

	// Actor identifies what was struck, if anything.
	Actor string
	// Surface holds the flags of the struck surface.
	Surface Surface

	TraceStart, TraceEnd mgl64.Vec3
}

// Miss returns a non-blocking HitResult for the query start->end.
func Miss(start, end mgl64.Vec3) HitResult {
	return HitResult{
		Location:   end,
		Time:       1,
		Distance:   end.Sub(start).Len(),
		TraceStart: start,
		TraceEnd:   end,
	}
}

// Lethal reports whether the hit struck a lethal volume.
func (h HitResult) Lethal() bool {
	return h.Blocking && h.Surface.Has(SurfaceLethal)
}
