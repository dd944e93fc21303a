package teleport

import (
	"testing"

	"github.com/oomph-ac/lvrc/physics"
	"github.com/stretchr/testify/assert"
)

func TestParamsValidate(t *testing.T) {
	player := physics.Capsule{Radius: 34, HalfHeight: 88}
	assert.NoError(t, DefaultParams().Validate(player))

	cases := map[string]func(p *Params){
		"vertical angle":  func(p *Params) { p.ArcMaxVerticalAngle = 120 },
		"speed":           func(p *Params) { p.ArcInitialSpeed = 0 },
		"drag":            func(p *Params) { p.ArcDrag = -1 },
		"sim time":        func(p *Params) { p.MaxSimTime = 0 },
		"step length":     func(p *Params) { p.StepLength = StepEpsilon },
		"probe too wide":  func(p *Params) { p.StepCapsule.Radius = 34 },
		"probe too tall":  func(p *Params) { p.StepCapsule.HalfHeight = 90 },
		"probe malformed": func(p *Params) { p.StepCapsule = physics.Capsule{Radius: 10, HalfHeight: 5} },
		"drop distance":   func(p *Params) { p.MaxDropDistance = 0 },
		"backoff margin":  func(p *Params) { p.WallBackoffMargin = 0 },
		"backoff policy":  func(p *Params) { p.Backoff = 9 },
		"sight target":    func(p *Params) { p.Sight = 9 },
		"negative mantle": func(p *Params) { p.MaxMantleHeight = -1 },
		"negative stepup": func(p *Params) { p.MaxStepHeight = -1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			p := DefaultParams()
			mutate(&p)
			assert.Error(t, p.Validate(player))
		})
	}
}

func TestPolicyStrings(t *testing.T) {
	assert.Equal(t, "camera2d", BackoffCamera2D.String())
	assert.Equal(t, "arc-tangent", BackoffArcTangent.String())
	assert.Equal(t, "head", SightHead.String())
	assert.Equal(t, "feet", SightFeet.String())
	assert.Equal(t, "jump", MethodJump.String())
}

func TestParsePolicies(t *testing.T) {
	for _, p := range []BackoffPolicy{BackoffCamera2D, BackoffArcTangent, BackoffNone} {
		parsed, err := ParseBackoffPolicy(p.String())
		assert.NoError(t, err)
		assert.Equal(t, p, parsed)
	}
	_, err := ParseBackoffPolicy("sideways")
	assert.Error(t, err)

	target, err := ParseSightTarget("center")
	assert.NoError(t, err)
	assert.Equal(t, SightCenter, target)
	_, err = ParseSightTarget("knees")
	assert.Error(t, err)
}
