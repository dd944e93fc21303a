// Package world implements physics.World over a set of axis-aligned boxes. Capsules
// are approximated by their enclosing boxes, which keeps sweeps exact for the
// box-built scenes it is used with (tests, the demo, and hosts without a physics engine).
package world

import (
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/oomph-ac/lvrc/physics"
	"github.com/sasha-s/go-deadlock"
	"github.com/sirupsen/logrus"
)

// Box is a single piece of blocking geometry.
type Box struct {
	BBox    cube.BBox
	Actor   string
	Channel physics.Mask
	Surface physics.Surface
}

// Solid returns static level geometry owned by actor.
func Solid(actor string, bb cube.BBox) Box {
	return Box{BBox: bb, Actor: actor, Channel: physics.ChannelWorldStatic}
}

// LethalVolume returns static geometry flagged as a lethal volume.
func LethalVolume(actor string, bb cube.BBox) Box {
	return Box{BBox: bb, Actor: actor, Channel: physics.ChannelWorldStatic, Surface: physics.SurfaceLethal}
}

type World struct {
	boxes []Box
	log   *logrus.Logger

	deadlock.RWMutex
}

// New returns an empty World. A nil logger falls back to the standard logrus logger.
func New(log *logrus.Logger) *World {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &World{log: log}
}

// Add adds boxes to the world.
func (w *World) Add(boxes ...Box) {
	w.Lock()
	defer w.Unlock()

	for _, b := range boxes {
		w.log.WithFields(logrus.Fields{"actor": b.Actor, "min": b.BBox.Min(), "max": b.BBox.Max()}).Debug("world: box added")
		w.boxes = append(w.boxes, b)
	}
}

// Remove removes every box owned by actor and returns how many were removed.
func (w *World) Remove(actor string) int {
	w.Lock()
	defer w.Unlock()

	kept := w.boxes[:0]
	for _, b := range w.boxes {
		if b.Actor != actor {
			kept = append(kept, b)
		}
	}
	removed := len(w.boxes) - len(kept)
	w.boxes = kept
	if removed > 0 {
		w.log.WithFields(logrus.Fields{"actor": actor, "count": removed}).Debug("world: boxes removed")
	}
	return removed
}

// Boxes returns a copy of all boxes in the world.
func (w *World) Boxes() []Box {
	w.RLock()
	defer w.RUnlock()

	return append([]Box(nil), w.boxes...)
}

// Len returns the number of boxes in the world.
func (w *World) Len() int {
	w.RLock()
	defer w.RUnlock()

	return len(w.boxes)
}
