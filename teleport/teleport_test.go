package teleport

import (
	"math"
	"testing"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/lvrc/debug"
	"github.com/oomph-ac/lvrc/omath"
	"github.com/oomph-ac/lvrc/physics"
	"github.com/oomph-ac/lvrc/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var standing = Stance{
	Feet:              mgl64.Vec3{0, 0, 0},
	Eye:               mgl64.Vec3{0, 0, 160},
	CapsuleRadius:     34,
	CapsuleHalfHeight: 88,
	TopOfHead:         170,
	Teleporting:       true,
}

var forward = mgl64.Vec3{1, 0, 0}

func floor(minX, maxX float64) world.Box {
	return world.Solid("floor", cube.Box(minX, -10000, -10, maxX, 10000, 0))
}

func newResolver(t *testing.T, params Params, boxes ...world.Box) (*Resolver, *debug.Recorder) {
	t.Helper()

	w := world.New(nil)
	w.Add(boxes...)
	require.NoError(t, params.Validate(standing.Capsule()))

	rec := &debug.Recorder{}
	r := NewResolver(w, params, nil)
	r.Debug = rec
	return r, rec
}

// slowParams aims a slow, drag-free arc so distances stay short.
func slowParams() Params {
	p := DefaultParams()
	p.ArcInitialSpeed = 100
	p.ArcDrag = 0
	p.GravityZ = -98
	return p
}

func assertPrefix(t *testing.T, steps, accepted []mgl64.Vec3) {
	t.Helper()
	require.LessOrEqual(t, len(accepted), len(steps))
	assert.Equal(t, steps[:len(accepted)], accepted)
}

type countingWorld struct {
	physics.World
	lines int
}

func (c *countingWorld) TraceLine(start, end mgl64.Vec3, mask physics.Mask, ignore physics.IgnoreSet) physics.HitResult {
	c.lines++
	return c.World.TraceLine(start, end, mask, ignore)
}

func TestFlatGround(t *testing.T) {
	r, rec := newResolver(t, slowParams(), floor(-10000, 10000))

	out := r.Calculate(standing, Query{TraceStart: mgl64.Vec3{0, 0, 49}, TraceDirection: forward})

	assert.InDelta(t, 100, out.ArcEnd.X(), 15, "arc should land around the drag-free projectile range")
	assert.InDelta(t, 0, out.ArcEnd.Z(), 1e-9)
	assert.False(t, out.Lethal)
	assert.False(t, out.DropAfterArc)
	assert.Equal(t, MethodStep, out.Method)

	want := int(math.Ceil(out.ArcEnd.X() / r.Params.StepLength))
	assert.Len(t, out.Steps, want)
	assert.InDelta(t, out.ArcEnd.X(), out.Destination.X(), 1e-6)
	assert.InDelta(t, out.ArcEnd.Y(), out.Destination.Y(), 1e-6)
	assert.InDelta(t, FloorFloatOffset, out.Destination.Z(), 1e-6)

	assert.Equal(t, 0.0, out.HeightAdjustRatio)
	assert.Empty(t, out.RemainingArc)
	assert.Equal(t, out.ArcEnd, out.ValidArc[len(out.ValidArc)-1])

	v, ok := rec.Value("jump", "attempted")
	require.True(t, ok)
	assert.Equal(t, false, v)
}

func TestNoDropShortcut(t *testing.T) {
	r, _ := newResolver(t, slowParams(), floor(-10000, 10000))
	counter := &countingWorld{World: r.World}
	r.World = counter

	target := r.ResolveTarget(standing, Query{TraceStart: mgl64.Vec3{0, 0, 49}, TraceDirection: forward})

	assert.False(t, target.DropAfterArc)
	assert.False(t, target.Lethal)
	assert.Equal(t, target.ArcEnd, target.Desired)
	assert.Equal(t, len(target.Arc)-1, counter.lines, "only the arc itself should have been traced")
}

func TestLethalPrecedence(t *testing.T) {
	r, _ := newResolver(t, slowParams(),
		floor(-10000, 10000),
		world.LethalVolume("lava", cube.Box(50, -100, 0, 150, 100, 1)),
	)

	target := r.ResolveTarget(standing, Query{TraceStart: mgl64.Vec3{0, 0, 49}, TraceDirection: forward})
	assert.True(t, target.Lethal, "walkable lethal surfaces must still be lethal")
	assert.False(t, target.DropAfterArc)
	assert.Equal(t, target.ArcEnd, target.Desired)
	assert.InDelta(t, 1, target.ArcEnd.Z(), 1e-9)

	out := r.Calculate(standing, Query{TraceStart: mgl64.Vec3{0, 0, 49}, TraceDirection: forward})
	assert.True(t, out.Lethal)
	assert.Equal(t, MethodNone, out.Method)
	assert.Equal(t, standing.Feet, out.Destination)
	assert.Empty(t, out.Steps)
}

func TestArcDirectionClamp(t *testing.T) {
	r, rec := newResolver(t, slowParams(), floor(-10000, 10000))
	minPolar := mgl64.DegToRad(90 - r.Params.ArcMaxVerticalAngle)

	steep := mgl64.Vec3{0.1, 0, 1}.Normalize()
	r.ResolveTarget(standing, Query{TraceStart: mgl64.Vec3{0, 0, 49}, TraceDirection: steep})
	v, ok := rec.Value("target", "direction")
	require.True(t, ok)
	assert.InDelta(t, minPolar, omath.PolarAngle(v.(mgl64.Vec3)), 1e-9)

	shallow := mgl64.Vec3{1, 0, 0.2}.Normalize()
	r.ResolveTarget(standing, Query{TraceStart: mgl64.Vec3{0, 0, 49}, TraceDirection: shallow})
	v, _ = rec.Value("target", "direction")
	assert.Equal(t, shallow, v)
}

func TestPitDeeperThanMaxDrop(t *testing.T) {
	r, rec := newResolver(t, DefaultParams(), floor(-10000, 110))

	out := r.Calculate(standing, Query{TraceStart: mgl64.Vec3{0, 0, 150}, TraceDirection: forward})

	assert.True(t, out.DropAfterArc)
	assert.True(t, out.Lethal)
	v, _ := rec.Value("jump", "attempted")
	assert.Equal(t, false, v, "the ledge is too far away to peek over")

	// The player walks up to the ledge and no further.
	assert.Equal(t, MethodStep, out.Method)
	require.NotEmpty(t, out.Steps)
	assert.InDelta(t, 120, out.Destination.X(), 1e-6)
	assert.Less(t, out.Destination.X(), out.ArcEnd.X())
	assert.NotEmpty(t, out.RemainingArc)

	snugged, _ := rec.Value("accept", "snugged")
	assert.Equal(t, false, snugged, "there is no floor to snug onto past the ledge")
}

func TestWallBeyondStepHeight(t *testing.T) {
	r, _ := newResolver(t, DefaultParams(),
		floor(-10000, 10000),
		world.Solid("wall", cube.Box(40, -500, 0, 60, 500, 1000)),
	)

	stepped := r.ValidateSteps(standing.Feet, mgl64.Vec3{200, 0, 0})
	require.NotEmpty(t, stepped.Steps)
	for _, s := range stepped.Steps {
		assert.LessOrEqual(t, s.X(), 40-r.Params.StepCapsule.Radius+1e-6, "steps must not pass the wall")
	}
	assert.False(t, stepped.Reached)
	assert.False(t, stepped.Drop)

	dest, accepted := r.AcceptDestination(standing, stepped.Steps, stepped.Drop, mgl64.Vec3{200, 0, 0})
	assert.Equal(t, standing.Feet, dest)
	assert.Empty(t, accepted)
	assertPrefix(t, stepped.Steps, accepted)
}

func TestStepTermination(t *testing.T) {
	r, _ := newResolver(t, DefaultParams(),
		floor(-10000, 10000),
		world.Solid("wall", cube.Box(100, -10000, 0, 120, 10000, 10000)),
	)

	stepped := r.ValidateSteps(standing.Feet, mgl64.Vec3{5000, 0, 0})
	assert.LessOrEqual(t, len(stepped.Steps), 3)
	assert.False(t, stepped.Reached)

	open, _ := newResolver(t, DefaultParams(), floor(-10000, 10000))
	stepped = open.ValidateSteps(standing.Feet, mgl64.Vec3{5000, 0, 0})
	assert.Len(t, stepped.Steps, MaxStepIterations)
	assert.False(t, stepped.Reached)
	for i := 1; i < len(stepped.Steps); i++ {
		assert.Greater(t, stepped.Steps[i].Sub(stepped.Steps[i-1]).Len(), StepEpsilon)
	}
}

func TestStepUpAndMantle(t *testing.T) {
	r, _ := newResolver(t, DefaultParams(),
		floor(-10000, 10000),
		world.Solid("kerb", cube.Box(100, -500, 0, 10000, 500, 30)),
	)

	stepped := r.ValidateSteps(standing.Feet, mgl64.Vec3{300, 0, 30})
	assert.True(t, stepped.Reached)
	assert.False(t, stepped.Drop)
	last := stepped.Steps[len(stepped.Steps)-1]
	assert.InDelta(t, 300, last.X(), 1e-6)
	assert.InDelta(t, 30+FloorFloatOffset, last.Z(), 1e-6)

	// Walking back down a ledge taller than the mantle height is a drop.
	high, _ := newResolver(t, DefaultParams(), world.Solid("roof", cube.Box(-10000, -500, 90, 80, 500, 100)), floor(-10000, 10000))
	stepped = high.ValidateSteps(mgl64.Vec3{0, 0, 100}, mgl64.Vec3{300, 0, 0})
	assert.True(t, stepped.Drop)
	assert.True(t, stepped.Reached)
}

func TestAcceptancePrefix(t *testing.T) {
	r, rec := newResolver(t, DefaultParams(),
		floor(-10000, 10000),
		world.Solid("pillar", cube.Box(150, -20, 0, 170, 20, 500)),
	)

	steps := []mgl64.Vec3{
		{40, 0, FloorFloatOffset},
		{80, 0, FloorFloatOffset},
		{120, 0, FloorFloatOffset},
		{160, 0, FloorFloatOffset},
	}
	dest, accepted := r.AcceptDestination(standing, steps, false, mgl64.Vec3{100, 0, 0})
	assertPrefix(t, steps, accepted)
	assert.Len(t, accepted, 2)
	assert.Equal(t, steps[1], dest)

	// A blocked line of sight disqualifies steps past a drop.
	r.World.(*world.World).Add(world.Solid("screen", cube.Box(120, -500, 100, 121, 500, 1000)))
	steps = []mgl64.Vec3{{40, 0, FloorFloatOffset}, {240, 0, FloorFloatOffset}}
	dest, accepted = r.AcceptDestination(standing, steps, true, mgl64.Vec3{40, 0, 0})
	assertPrefix(t, steps, accepted)
	assert.Len(t, accepted, 1)
	assert.Equal(t, steps[0], dest)

	dest, accepted = r.AcceptDestination(standing, steps, false, mgl64.Vec3{40, 0, 0})
	assert.Len(t, accepted, 2, "without a drop line of sight is not required")
	assert.Equal(t, steps[1], dest)
	v, _ := rec.Value("accept", "snugged")
	assert.Equal(t, false, v, "a destination past the desired location is never pulled back")
}

func TestSnugAgainstWall(t *testing.T) {
	r, rec := newResolver(t, DefaultParams(),
		floor(-10000, 10000),
		world.Solid("wall", cube.Box(200, -500, 0, 220, 500, 1000)),
	)

	steps := []mgl64.Vec3{{120, 0, FloorFloatOffset}, {160, 0, FloorFloatOffset}}
	dest, accepted := r.AcceptDestination(standing, steps, false, mgl64.Vec3{400, 0, 0})
	assert.Len(t, accepted, 2)
	assert.InDelta(t, 200-standing.CapsuleRadius, dest.X(), 1e-6)
	assert.InDelta(t, FloorFloatOffset, dest.Z(), 1e-6)

	v, _ := rec.Value("accept", "snugged")
	assert.Equal(t, true, v)
}

func TestSnugCappedAtStepLength(t *testing.T) {
	r, rec := newResolver(t, DefaultParams(), floor(-10000, 10000))

	steps := []mgl64.Vec3{{40, 0, FloorFloatOffset}}
	dest, _ := r.AcceptDestination(standing, steps, false, mgl64.Vec3{400, 0, 0})
	assert.InDelta(t, 40+DefaultParams().StepLength, dest.X(), 1e-6)
	assert.InDelta(t, 0, dest.Y(), 1e-6)
	assert.InDelta(t, FloorFloatOffset, dest.Z(), 1e-6)

	v, _ := rec.Value("accept", "snugged")
	assert.Equal(t, true, v)
}

func TestSnugOnlyMovesForward(t *testing.T) {
	r, rec := newResolver(t, DefaultParams(), floor(-10000, 10000))

	steps := []mgl64.Vec3{{40, 0, FloorFloatOffset}, {80, 0, FloorFloatOffset}}
	dest, _ := r.AcceptDestination(standing, steps, false, mgl64.Vec3{80, 300, 0})
	assert.Equal(t, steps[1], dest, "a desired location beside the path is not snugged towards")

	v, _ := rec.Value("accept", "snugged")
	assert.Equal(t, false, v)
}

func TestSnugDoesNotCrossChasm(t *testing.T) {
	r, rec := newResolver(t, DefaultParams(),
		floor(-10000, 100),
		floor(300, 10000),
	)

	steps := []mgl64.Vec3{{40, 0, FloorFloatOffset}, {80, 0, FloorFloatOffset}}
	dest, accepted := r.AcceptDestination(standing, steps, true, mgl64.Vec3{316, 0, 0})
	assert.Len(t, accepted, 2)
	assert.Equal(t, steps[1], dest, "stepping stopped at the ledge and must stay there")

	v, _ := rec.Value("accept", "snugged")
	assert.Equal(t, false, v)
}

func TestJumpOverLowWall(t *testing.T) {
	r, _ := newResolver(t, DefaultParams(),
		floor(-10000, 10000),
		world.Solid("wall", cube.Box(200, -500, 0, 220, 500, 60)),
	)

	out := r.Calculate(standing, Query{TraceStart: mgl64.Vec3{0, 0, 150}, TraceDirection: forward})

	assert.False(t, out.Lethal)
	assert.False(t, out.DropAfterArc)
	require.Equal(t, MethodJump, out.Method)
	assert.Nil(t, out.Steps)
	assert.Greater(t, out.Destination.X(), 220.0)
	assert.InDelta(t, out.ArcEnd.X(), out.Destination.X(), 1e-6)
	assert.Empty(t, out.RemainingArc)
}

func TestTryJumpNearLedge(t *testing.T) {
	r, rec := newResolver(t, DefaultParams(), floor(-10000, 110))
	ledge := standing
	ledge.Feet = mgl64.Vec3{80, 0, 0}
	ledge.Eye = mgl64.Vec3{80, 0, 160}

	dest, ok := r.TryJump(ledge, mgl64.Vec3{125, 0, 100}, false, true)
	require.True(t, ok, "lethal destinations close to the player may be peeked at")
	assert.InDelta(t, 125, dest.X(), 1e-6)
	assert.InDelta(t, 100+FloorFloatOffset, dest.Z(), 1e-6)

	_, ok = r.TryJump(ledge, mgl64.Vec3{300, 0, -500}, false, true)
	assert.False(t, ok)
	v, _ := rec.Value("jump", "attempted")
	assert.Equal(t, false, v)

	_, ok = r.TryJump(ledge, mgl64.Vec3{100, 0, 0}, true, false)
	assert.False(t, ok, "a reached destination never needs a jump")

	// Closeness is measured from where the player stands, not from where stepping stopped.
	_, ok = r.TryJump(standing, mgl64.Vec3{125, 0, 100}, false, true)
	assert.False(t, ok)
	v, _ = rec.Value("jump", "attempted")
	assert.Equal(t, false, v)
}

func TestWallBackoff(t *testing.T) {
	boxes := []world.Box{
		floor(-10000, 10000),
		world.Solid("wall", cube.Box(300, -500, 0, 320, 500, 1000)),
	}
	query := Query{TraceStart: mgl64.Vec3{0, 0, 150}, TraceDirection: forward}

	r, _ := newResolver(t, DefaultParams(), boxes...)
	target := r.ResolveTarget(standing, query)
	require.True(t, target.DropAfterArc)
	assert.False(t, target.Lethal)
	assert.InDelta(t, 300, target.ArcEnd.X(), 1e-6)
	assert.InDelta(t, 300-standing.CapsuleRadius-r.Params.WallBackoffMargin, target.Desired.X(), 1e-6)
	assert.InDelta(t, 0, target.Desired.Z(), 1e-9)

	p := DefaultParams()
	p.Backoff = BackoffArcTangent
	r, _ = newResolver(t, p, boxes...)
	assert.InDelta(t, 300-standing.CapsuleRadius-p.WallBackoffMargin, r.ResolveTarget(standing, query).Desired.X(), 1e-6)

	p.Backoff = BackoffNone
	r, _ = newResolver(t, p, boxes...)
	assert.InDelta(t, 300, r.ResolveTarget(standing, query).Desired.X(), 1e-6)

	r, _ = newResolver(t, DefaultParams(), boxes...)
	out := r.Calculate(standing, query)
	assert.Equal(t, MethodStep, out.Method)
	assert.True(t, out.DropAfterArc)
	assert.InDelta(t, target.Desired.X(), out.Destination.X(), 1e-6)
	assert.Empty(t, out.RemainingArc)
}

func TestHeightAdjustRatio(t *testing.T) {
	r, _ := newResolver(t, DefaultParams(),
		floor(-10000, 10000),
		world.Solid("ceiling", cube.Box(50, -50, 120, 150, 50, 130)),
	)

	under := mgl64.Vec3{100, 0, FloorFloatOffset}
	clearance := 120 - FloorFloatOffset
	assert.InDelta(t, 170/clearance-1, r.heightAdjustRatio(under, 170), 1e-9)
	assert.Equal(t, 0.0, r.heightAdjustRatio(mgl64.Vec3{0, 0, FloorFloatOffset}, 170))
	assert.Equal(t, 1.0, r.heightAdjustRatio(mgl64.Vec3{100, 0, 70}, 170))
	assert.Equal(t, 0.0, r.heightAdjustRatio(under, 0))
}

func TestSplitArc(t *testing.T) {
	arc := []mgl64.Vec3{{0, 0, 10}, {10, 0, 8}, {20, 0, 5}, {30, 0, 0}}

	valid, remaining := splitArc(arc, 15)
	assert.Equal(t, arc[:2], valid)
	assert.Equal(t, arc[2:], remaining)

	valid, remaining = splitArc(arc, 100)
	assert.Equal(t, arc, valid)
	assert.Nil(t, remaining)
}

func TestCalculatePreconditions(t *testing.T) {
	r, _ := newResolver(t, DefaultParams(), floor(-10000, 10000))
	query := Query{TraceStart: mgl64.Vec3{0, 0, 150}, TraceDirection: forward}

	idle := standing
	idle.Teleporting = false
	assert.Panics(t, func() { r.Calculate(idle, query) })

	query.TraceDirection = mgl64.Vec3{2, 0, 0}
	assert.Panics(t, func() { r.Calculate(standing, query) })
}
