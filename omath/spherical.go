package omath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// PolarAngle returns the angle in radians between dir and the up (+Z) axis.
func PolarAngle(dir mgl64.Vec3) float64 {
	r := dir.Len()
	if r == 0 {
		return 0
	}
	return math.Acos(ClampFloat(dir[2]/r, -1, 1))
}

// ClampPolarAngle returns dir with its polar angle (measured from +Z) raised to at
// least minPolar radians. The azimuth and length of dir are kept. Directions that
// already point at or below minPolar are returned unchanged.
func ClampPolarAngle(dir mgl64.Vec3, minPolar float64) mgl64.Vec3 {
	r := dir.Len()
	if r == 0 || PolarAngle(dir) >= minPolar {
		return dir
	}
	phi := math.Atan2(dir[1], dir[0])
	return mgl64.SphericalToCartesian(r, minPolar, phi)
}
