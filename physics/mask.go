package physics

// Mask is an opaque set of collision channels a query is blocked by.
type Mask uint32

const (
	ChannelWorldStatic Mask = 1 << iota
	ChannelWorldDynamic
	ChannelPawn
	ChannelPhysicsBody
	ChannelVehicle
	ChannelDestructible

	// MaskAll blocks on every channel.
	MaskAll Mask = ^Mask(0)
	// MaskWorld blocks on static and dynamic level geometry.
	MaskWorld = ChannelWorldStatic | ChannelWorldDynamic
)

// Has reports whether any channel of other is part of m.
func (m Mask) Has(other Mask) bool {
	return m&other != 0
}

// Surface holds flags describing the surface a query struck.
type Surface uint16

const (
	// SurfaceLethal marks volumes that end the player's traversal, such as out-of-bounds kill zones.
	SurfaceLethal Surface = 1 << iota
)

// Has reports whether all flags of other are set on s.
func (s Surface) Has(other Surface) bool {
	return s&other == other
}

// IgnoreSet is a set of actor identifiers excluded from queries.
type IgnoreSet map[string]struct{}

// Ignore returns an IgnoreSet holding the actors passed.
func Ignore(actors ...string) IgnoreSet {
	set := make(IgnoreSet, len(actors))
	for _, a := range actors {
		set[a] = struct{}{}
	}
	return set
}

// Contains reports whether actor is ignored. A nil set ignores nothing.
func (s IgnoreSet) Contains(actor string) bool {
	if s == nil || actor == "" {
		return false
	}
	_, ok := s[actor]
	return ok
}
