package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Walkable classifies surfaces the player can stand on.
type Walkable interface {
	IsWalkable(hit HitResult) bool
}

// DefaultWalkableSlope is the steepest standable slope, in degrees.
const DefaultWalkableSlope = 44.765

// SlopeLimit is a Walkable that accepts surfaces whose slope does not exceed a
// maximum angle from horizontal.
type SlopeLimit struct {
	// MinNormalZ is the smallest Z component of a standable surface normal.
	MinNormalZ float64
}

// NewSlopeLimit returns a SlopeLimit for the maximum slope in degrees passed.
func NewSlopeLimit(maxSlope float64) SlopeLimit {
	return SlopeLimit{MinNormalZ: math.Cos(mgl64.DegToRad(maxSlope))}
}

// IsWalkable ...
func (s SlopeLimit) IsWalkable(hit HitResult) bool {
	if !hit.Blocking || hit.StartPenetrating {
		return false
	}
	// Rounding can leave a flat floor slightly below a limit of exactly zero degrees.
	return hit.Normal.Z() >= s.MinNormalZ-1e-4
}
