package belief

import (
	"fmt"

	"golang.org/x/exp/slices"

	"pursuit/game"
)

// Set is an immutable, sorted set of locations the evader might occupy.
// Operations return new sets so states in a search tree never share one.
type Set struct {
	locations []game.Location
}

func NewSet(locations ...game.Location) Set {
	sorted := slices.Clone(locations)
	slices.Sort(sorted)
	return Set{locations: slices.Compact(sorted)}
}

func (s Set) Len() int {
	return len(s.locations)
}

func (s Set) IsEmpty() bool {
	return len(s.locations) == 0
}

func (s Set) Contains(loc game.Location) bool {
	_, found := slices.BinarySearch(s.locations, loc)
	return found
}

// Locations returns the members in ascending order.
func (s Set) Locations() []game.Location {
	return slices.Clone(s.locations)
}

// Without returns the set minus locs.
func (s Set) Without(locs ...game.Location) Set {
	kept := make([]game.Location, 0, len(s.locations))
	for _, loc := range s.locations {
		if !slices.Contains(locs, loc) {
			kept = append(kept, loc)
		}
	}
	return Set{locations: kept}
}

func (s Set) Equal(o Set) bool {
	return slices.Equal(s.locations, o.locations)
}

func (s Set) String() string {
	return fmt.Sprint(s.locations)
}
