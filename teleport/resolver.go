// Package teleport resolves where an arc-aimed teleport would take the player. A
// resolution predicts the arc, works out the ground the player would end up on,
// walks a small probe capsule there, and then picks the furthest stance the full
// player capsule fits into, falling back to a direct jump when walking falls short.
package teleport

import (
	"slices"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/lvrc/assert"
	"github.com/oomph-ac/lvrc/debug"
	"github.com/oomph-ac/lvrc/omath"
	"github.com/oomph-ac/lvrc/physics"
	"github.com/sirupsen/logrus"
)

// Method is how an Outcome moves the player.
type Method uint8

const (
	MethodNone Method = iota
	MethodStep
	MethodJump
)

// String ...
func (m Method) String() string {
	switch m {
	case MethodNone:
		return "none"
	case MethodStep:
		return "step"
	case MethodJump:
		return "jump"
	}
	return "unknown"
}

// Stance is the state of the player a resolution reads.
type Stance struct {
	// Feet is the bottom of the player capsule.
	Feet mgl64.Vec3
	Eye  mgl64.Vec3

	CapsuleRadius     float64
	CapsuleHalfHeight float64
	// TopOfHead is the height of the top of the player's head above Feet.
	TopOfHead float64

	// Teleporting must be set for the duration of teleport aiming.
	Teleporting bool
}

// Capsule returns the player capsule.
func (s Stance) Capsule() physics.Capsule {
	return physics.Capsule{Radius: s.CapsuleRadius, HalfHeight: s.CapsuleHalfHeight}
}

// Query is where the teleport arc is aimed from.
type Query struct {
	TraceStart mgl64.Vec3
	// TraceDirection must be a unit vector.
	TraceDirection mgl64.Vec3
}

// Outcome is the result of a teleport resolution.
type Outcome struct {
	// Destination is where the player's feet end up.
	Destination mgl64.Vec3
	ArcEnd      mgl64.Vec3

	// ValidArc is the part of the arc the player actually travels; RemainingArc is the rest.
	ValidArc     []mgl64.Vec3
	RemainingArc []mgl64.Vec3

	// HeightAdjustRatio is how much the player would have to crouch at Destination: 0
	// means standing upright fits, 1 means twice the available clearance is needed.
	HeightAdjustRatio float64

	// Steps are the feet positions walked to reach Destination, excluding the start.
	Steps []mgl64.Vec3

	DropAfterArc bool
	Lethal       bool
	Method       Method
}

// Resolver runs teleport resolutions against a world. It holds no state between
// calls to Calculate.
type Resolver struct {
	World    physics.World
	Walkable physics.Walkable
	Params   Params

	Mask   physics.Mask
	Ignore physics.IgnoreSet

	Debug debug.Sink
	Log   *logrus.Logger
}

// NewResolver returns a Resolver over the world passed, blocking on level geometry
// and using the default walkable slope. A nil logger falls back to the standard
// logrus logger.
func NewResolver(w physics.World, params Params, log *logrus.Logger) *Resolver {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Resolver{
		World:    w,
		Walkable: physics.NewSlopeLimit(physics.DefaultWalkableSlope),
		Params:   params,
		Mask:     physics.MaskWorld,
		Debug:    debug.NopSink{},
		Log:      log,
	}
}

// Calculate resolves a teleport for the player in stance aimed by query. The
// player must be teleporting and the trace direction must be a unit vector.
func (r *Resolver) Calculate(stance Stance, query Query) Outcome {
	assert.IsTrue(stance.Teleporting, "teleport resolution requested while not teleporting")
	assert.IsTrue(omath.IsUnit(query.TraceDirection, 1e-4), "trace direction %v is not a unit vector", query.TraceDirection)

	target := r.ResolveTarget(stance, query)
	stepped := r.ValidateSteps(stance.Feet, target.Desired)
	dest, steps := r.AcceptDestination(stance, stepped.Steps, stepped.Drop || target.DropAfterArc, target.Desired)

	out := Outcome{
		Destination:  dest,
		ArcEnd:       target.ArcEnd,
		Steps:        steps,
		DropAfterArc: target.DropAfterArc,
		Lethal:       target.Lethal,
	}
	if len(steps) > 0 {
		out.Method = MethodStep
	}

	reached := stepped.Reached && len(steps) == len(stepped.Steps)
	if jump, ok := r.TryJump(stance, target.Desired, reached, target.Lethal); ok {
		out.Destination, out.Steps, out.Method = jump, nil, MethodJump
	}

	if reached || out.Method == MethodJump {
		out.ValidArc = target.Arc
	} else {
		out.ValidArc, out.RemainingArc = splitArc(target.Arc, omath.HzDist(stance.Feet, out.Destination))
	}
	out.HeightAdjustRatio = r.heightAdjustRatio(out.Destination, stance.TopOfHead)

	r.report(out)
	return out
}

// splitArc splits the arc at the first sample further from its start, horizontally,
// than dist.
func splitArc(arc []mgl64.Vec3, dist float64) (valid, remaining []mgl64.Vec3) {
	for i, p := range arc {
		if omath.HzDist(arc[0], p) > dist {
			return slices.Clip(arc[:i]), arc[i:]
		}
	}
	return arc, nil
}

// heightAdjustRatio measures the free space above feet and returns how far short it
// falls of topOfHead.
func (r *Resolver) heightAdjustRatio(feet mgl64.Vec3, topOfHead float64) float64 {
	if topOfHead <= 0 {
		return 0
	}
	start := feet.Add(mgl64.Vec3{0, 0, 0.1})
	hit := r.World.TraceLine(start, feet.Add(mgl64.Vec3{0, 0, topOfHead}), r.Mask, r.Ignore)
	if !hit.Blocking {
		return 0
	}
	clearance := hit.Location.Z() - feet.Z()
	if clearance <= 0 {
		return 1
	}
	return omath.ClampFloat(topOfHead/clearance-1, 0, 1)
}

func (r *Resolver) report(out Outcome) {
	data := debug.Data()
	data.Set("destination", out.Destination)
	data.Set("method", out.Method)
	data.Set("lethal", out.Lethal)
	data.Set("drop", out.DropAfterArc)
	data.Set("steps", len(out.Steps))
	data.Set("heightRatio", out.HeightAdjustRatio)
	r.sink().Stage("outcome", data)
	r.sink().Path("validArc", out.ValidArc)
	r.sink().Path("remainingArc", out.RemainingArc)

	r.logger().WithFields(logrus.Fields{
		"destination": out.Destination,
		"method":      out.Method,
		"lethal":      out.Lethal,
		"drop":        out.DropAfterArc,
		"steps":       len(out.Steps),
	}).Debug("teleport: resolved")
}

func (r *Resolver) sink() debug.Sink {
	if r.Debug == nil {
		return debug.NopSink{}
	}
	return r.Debug
}

func (r *Resolver) logger() *logrus.Logger {
	if r.Log == nil {
		return logrus.StandardLogger()
	}
	return r.Log
}
