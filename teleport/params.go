package teleport

import (
	"github.com/oomph-ac/lvrc/physics"
	"github.com/pkg/errors"
)

const (
	// MaxStepIterations bounds the number of forward steps ValidateSteps takes.
	MaxStepIterations = 30
	// StepEpsilon is the smallest movement between two steps that still counts as progress.
	StepEpsilon = 0.1
	// StepBackoff is how far a blocked step retreats before trying to step up.
	StepBackoff = 0.5

	// MinFloorDist and MaxFloorDist bound how far a grounded capsule floats above the floor.
	MinFloorDist = 1.9
	MaxFloorDist = 2.4
	// FloorFloatOffset is the height a grounded capsule floats above the floor.
	FloorFloatOffset = (MinFloorDist + MaxFloorDist) / 2

	// reachTolerance is the horizontal distance under which a step counts as having reached its goal.
	reachTolerance = 1.0
	// snugFactor scales StepLength² to the squared shortfall that triggers a snug sweep.
	snugFactor = 1.25
)

// BackoffPolicy decides how the end of an arc that struck a wall is pulled away
// from it before tracing down for ground.
type BackoffPolicy uint8

const (
	// BackoffCamera2D retracts along the horizontal direction from the trace start to the hit.
	BackoffCamera2D BackoffPolicy = iota
	// BackoffArcTangent retracts along the horizontal tangent of the last arc segment.
	BackoffArcTangent
	// BackoffNone traces down from the hit location itself.
	BackoffNone
)

// String ...
func (p BackoffPolicy) String() string {
	switch p {
	case BackoffCamera2D:
		return "camera2d"
	case BackoffArcTangent:
		return "arc-tangent"
	case BackoffNone:
		return "none"
	}
	return "unknown"
}

// ParseBackoffPolicy returns the BackoffPolicy named by s, as returned by String.
func ParseBackoffPolicy(s string) (BackoffPolicy, error) {
	for p := BackoffCamera2D; p <= BackoffNone; p++ {
		if p.String() == s {
			return p, nil
		}
	}
	return 0, errors.Errorf("unknown backoff policy %q", s)
}

// SightTarget is the point above a candidate stance that line of sight checks aim at.
type SightTarget uint8

const (
	// SightHead aims at the top of the player's head.
	SightHead SightTarget = iota
	// SightCenter aims at the centre of the player's capsule.
	SightCenter
	// SightFeet aims just above the floor.
	SightFeet
)

// String ...
func (s SightTarget) String() string {
	switch s {
	case SightHead:
		return "head"
	case SightCenter:
		return "center"
	case SightFeet:
		return "feet"
	}
	return "unknown"
}

// ParseSightTarget returns the SightTarget named by s, as returned by String.
func ParseSightTarget(s string) (SightTarget, error) {
	for t := SightHead; t <= SightFeet; t++ {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, errors.Errorf("unknown sight target %q", s)
}

// Params are the tunables of a teleport resolution. They are only read during a
// resolution, so a single value may be shared freely.
type Params struct {
	// ArcMaxVerticalAngle is the steepest the arc may be aimed above horizontal, in degrees.
	ArcMaxVerticalAngle float64
	ArcInitialSpeed     float64
	ArcDrag             float64
	GravityZ            float64
	MaxSimTime          float64
	Substeps            uint8

	// StepLength is the longest horizontal distance covered by a single step.
	StepLength float64
	// StepCapsule is the probe used while stepping. It must be smaller than the player capsule.
	StepCapsule physics.Capsule

	MaxDropDistance float64
	// MaxMantleHeight is the largest descent between two steps that is not considered a drop.
	MaxMantleHeight float64
	MaxStepHeight   float64
	// LedgeClosenessThreshold is the horizontal distance to a lethal destination under
	// which a jump is still attempted.
	LedgeClosenessThreshold float64

	Backoff BackoffPolicy
	// WallBackoffMargin is added to the player capsule radius when backing off a wall.
	WallBackoffMargin float64
	Sight             SightTarget
}

// DefaultParams returns the default teleport tunables, in centimetres.
func DefaultParams() Params {
	return Params{
		ArcMaxVerticalAngle: 45,
		ArcInitialSpeed:     900,
		ArcDrag:             0.9,
		GravityZ:            -980,
		MaxSimTime:          2,
		Substeps:            15,

		StepLength:  40,
		StepCapsule: physics.Capsule{Radius: 20, HalfHeight: 40},

		MaxDropDistance:         300,
		MaxMantleHeight:         50,
		MaxStepHeight:           45,
		LedgeClosenessThreshold: 50,

		Backoff:           BackoffCamera2D,
		WallBackoffMargin: 5,
		Sight:             SightHead,
	}
}

// Validate checks the tunables for values the resolver cannot work with. The
// player capsule is needed because the step probe must be strictly smaller.
func (p Params) Validate(player physics.Capsule) error {
	switch {
	case p.ArcMaxVerticalAngle < 0 || p.ArcMaxVerticalAngle > 90:
		return errors.Errorf("arc max vertical angle %v is outside [0, 90]", p.ArcMaxVerticalAngle)
	case p.ArcInitialSpeed <= 0:
		return errors.Errorf("arc initial speed must be positive, got %v", p.ArcInitialSpeed)
	case p.ArcDrag < 0:
		return errors.Errorf("arc drag must not be negative, got %v", p.ArcDrag)
	case p.MaxSimTime <= 0:
		return errors.Errorf("max sim time must be positive, got %v", p.MaxSimTime)
	case p.StepLength <= StepEpsilon:
		return errors.Errorf("step length must exceed %v, got %v", StepEpsilon, p.StepLength)
	case p.StepCapsule.Radius <= 0 || p.StepCapsule.HalfHeight < p.StepCapsule.Radius:
		return errors.Errorf("invalid step capsule %+v", p.StepCapsule)
	case p.StepCapsule.Radius >= player.Radius || p.StepCapsule.HalfHeight >= player.HalfHeight:
		return errors.Errorf("step capsule %+v must be smaller than the player capsule %+v", p.StepCapsule, player)
	case p.MaxDropDistance <= 0 || p.MaxMantleHeight < 0 || p.MaxStepHeight < 0:
		return errors.Errorf("invalid drop/mantle/step heights %v/%v/%v", p.MaxDropDistance, p.MaxMantleHeight, p.MaxStepHeight)
	case p.WallBackoffMargin <= 0:
		return errors.Errorf("wall backoff margin must be positive, got %v", p.WallBackoffMargin)
	case p.Backoff > BackoffNone:
		return errors.Errorf("unknown backoff policy %d", p.Backoff)
	case p.Sight > SightFeet:
		return errors.Errorf("unknown sight target %d", p.Sight)
	}
	return nil
}
