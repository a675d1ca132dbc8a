package game

import (
	"encoding/binary"
	"hash/fnv"
)

type StateHash uint64

// Snapshot is the mutable part of a game: whose turn it is, the round, every
// player's location and ticket inventory. The map is static and lives in the
// Graph; the reveal schedule is fixed for a match and shared between clones.
type Snapshot struct {
	Current   Role
	Round     int
	Locations []Location // indexed by Role
	Tickets   []Tickets  // indexed by Role
	Reveal    []bool     // Reveal[r] is true if the evader is shown after its move in round r
}

// NewSnapshot creates the starting snapshot for a match. locations[0] and
// tickets[0] belong to the evader.
func NewSnapshot(locations []Location, tickets []Tickets, reveal []bool) *Snapshot {
	if len(locations) != len(tickets) {
		panic("number of locations does not match number of ticket inventories")
	}
	if len(locations) < 2 {
		panic("need an evader and at least one seeker")
	}
	s := &Snapshot{
		Current:   Evader,
		Locations: make([]Location, len(locations)),
		Tickets:   make([]Tickets, len(tickets)),
		Reveal:    reveal,
	}
	copy(s.Locations, locations)
	copy(s.Tickets, tickets)
	return s
}

// Clone returns a deep copy that shares only the immutable reveal schedule.
func (s *Snapshot) Clone() *Snapshot {
	locations := make([]Location, len(s.Locations))
	copy(locations, s.Locations)
	tickets := make([]Tickets, len(s.Tickets))
	copy(tickets, s.Tickets)

	return &Snapshot{
		Current:   s.Current,
		Round:     s.Round,
		Locations: locations,
		Tickets:   tickets,
		Reveal:    s.Reveal,
	}
}

func (s *Snapshot) Players() int {
	return len(s.Locations)
}

func (s *Snapshot) Location(r Role) Location {
	return s.Locations[r]
}

func (s *Snapshot) TicketCount(r Role, t Ticket) int {
	return s.Tickets[r][t]
}

// Seekers returns every seeker role in rotation order.
func (s *Snapshot) Seekers() []Role {
	seekers := make([]Role, 0, len(s.Locations)-1)
	for r := 1; r < len(s.Locations); r++ {
		seekers = append(seekers, Role(r))
	}
	return seekers
}

// SeekerLocations returns where every seeker currently stands.
func (s *Snapshot) SeekerLocations() []Location {
	locations := make([]Location, len(s.Locations)-1)
	copy(locations, s.Locations[1:])
	return locations
}

// IsSeekerAt reports whether any seeker occupies loc.
func (s *Snapshot) IsSeekerAt(loc Location) bool {
	for _, l := range s.Locations[1:] {
		if l == loc {
			return true
		}
	}
	return false
}

// MaxRounds is the number of evader moves in a full match.
func (s *Snapshot) MaxRounds() int {
	return len(s.Reveal) - 1
}

// IsRevealRound reports whether the evader's position is disclosed after its
// move in round. Rounds past the schedule are treated as revealing.
func (s *Snapshot) IsRevealRound(round int) bool {
	if round < 0 {
		return false
	}
	if round >= len(s.Reveal) {
		return true
	}
	return s.Reveal[round]
}

// NextRole is the role that follows r in the fixed rotation.
func (s *Snapshot) NextRole(r Role) Role {
	return Role((int(r) + 1) % len(s.Locations))
}

func (s *Snapshot) Hash() StateHash {
	hasher := fnv.New64a()

	binary.Write(hasher, binary.LittleEndian, int64(s.Current))
	binary.Write(hasher, binary.LittleEndian, int64(s.Round))

	for _, loc := range s.Locations {
		binary.Write(hasher, binary.LittleEndian, int64(loc))
	}

	for _, tickets := range s.Tickets {
		for _, count := range tickets {
			binary.Write(hasher, binary.LittleEndian, int64(count))
		}
	}

	return StateHash(hasher.Sum64())
}
