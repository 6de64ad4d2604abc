package world

import "strings"

// Room is a location in the world. Exits map canonical direction names to
// destination room IDs in declaration order (see Exits/ExitOrder). Rooms are
// static once loaded; the engine never mutates them.
type Room struct {
	ID          string
	Name        string
	Description string
	Exits       map[string]string

	// ExitOrder preserves the declaration order of the exits map so room
	// rendering is stable across runs.
	ExitOrder []string
}

// ExitNames returns the room's exit directions in declaration order.
func (r *Room) ExitNames() []string {
	if len(r.ExitOrder) == len(r.Exits) {
		return r.ExitOrder
	}
	names := make([]string, 0, len(r.Exits))
	for dir := range r.Exits {
		names = append(names, dir)
	}
	return names
}

// Destination resolves a canonical direction to a destination room ID.
func (r *Room) Destination(direction string) (string, bool) {
	dest, ok := r.Exits[direction]
	return dest, ok
}

var directionSynonyms = map[string]string{
	"n":     "north",
	"north": "north",
	"s":     "south",
	"south": "south",
	"e":     "east",
	"east":  "east",
	"w":     "west",
	"west":  "west",
}

// NormalizeDirection maps a direction word or single-letter shorthand to its
// canonical name. Unrecognized input is returned lowercased unchanged, so an
// authored exit like "up" still works.
func NormalizeDirection(input string) string {
	lower := strings.ToLower(input)
	if canonical, ok := directionSynonyms[lower]; ok {
		return canonical
	}
	return lower
}

// IsDirectionVerb reports whether a command verb is itself a direction
// shorthand (n, s, e, w or the full word).
func IsDirectionVerb(verb string) bool {
	_, ok := directionSynonyms[strings.ToLower(verb)]
	return ok
}
