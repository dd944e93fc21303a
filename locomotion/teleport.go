package locomotion

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/lvrc/oerror"
	"github.com/oomph-ac/lvrc/omath"
	"github.com/oomph-ac/lvrc/teleport"
	"github.com/sirupsen/logrus"
)

// BeginTeleport enters teleport mode. Teleports may only be calculated in teleport mode.
func (c *Component) BeginTeleport() {
	c.teleporting = true
}

// CancelTeleport leaves teleport mode without moving.
func (c *Component) CancelTeleport() {
	c.teleporting = false
}

// Teleporting reports whether the component is in teleport mode.
func (c *Component) Teleporting() bool {
	return c.teleporting
}

// Stance returns the teleport stance of the player. The eye is the tracked HMD.
func (c *Component) Stance() (teleport.Stance, error) {
	eye, ok := c.HMD()
	if !ok {
		return teleport.Stance{}, oerror.ErrNoTracking
	}
	feet := c.Feet()
	return teleport.Stance{
		Feet:              feet,
		Eye:               eye,
		CapsuleRadius:     c.capsule.Radius,
		CapsuleHalfHeight: c.capsule.HalfHeight,
		TopOfHead:         c.Origin().Z() + c.PlayerTopOfHeadHeight() - feet.Z(),
		Teleporting:       c.teleporting,
	}, nil
}

// CalculateTeleportationParameters resolves a teleport aimed from start along the
// unit direction dir. It must be called in teleport mode.
func (c *Component) CalculateTeleportationParameters(start, dir mgl64.Vec3) (teleport.Outcome, error) {
	_, out, err := c.calculate(start, dir)
	return out, err
}

func (c *Component) calculate(start, dir mgl64.Vec3) (stance teleport.Stance, out teleport.Outcome, err error) {
	if !c.teleporting {
		return stance, out, oerror.ErrNotTeleporting
	}
	stance, err = c.Stance()
	if err != nil {
		return stance, out, err
	}

	defer func() {
		if v := recover(); v != nil {
			e, ok := v.(*oerror.Error)
			if !ok {
				panic(v)
			}
			out, err = teleport.Outcome{}, e
		}
	}()
	return stance, c.resolver.Calculate(stance, teleport.Query{TraceStart: start, TraceDirection: dir}), nil
}

// ConfirmTeleport resolves a teleport aimed from start along dir and, if it moves
// the player, puts their feet at the destination with the HMD directly above it.
// Teleport mode is left either way. Without tracking the player is not moved.
func (c *Component) ConfirmTeleport(start, dir mgl64.Vec3) (teleport.Outcome, error) {
	stance, out, err := c.calculate(start, dir)
	c.teleporting = false
	if err != nil {
		return out, err
	}
	if out.Method == teleport.MethodNone {
		return out, nil
	}

	// The stance eye is the HMD the outcome was resolved for.
	c.shift(omath.Flatten(stance.Eye.Sub(c.center)))
	c.center = c.capsule.Center(out.Destination)
	c.log.WithFields(logrus.Fields{"destination": out.Destination, "method": out.Method}).Debug("locomotion: teleported")
	return out, nil
}
