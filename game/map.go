package game

import "sort"

// Location is a node of the map graph.
type Location int

// NoLocation marks a position that is not known to the viewer.
const NoLocation Location = 0

// Edge connects a location to a neighbour by one route.
type Edge struct {
	To    Location
	Route Route
}

// Graph is the static game map: locations joined by route-labelled edges.
// Two locations may be joined by several routes.
type Graph struct {
	edges     map[Location][]Edge
	locations []Location // sorted
	corners   []Location
}

// NewGraph creates and returns an empty Graph.
func NewGraph() *Graph {
	return &Graph{
		edges: make(map[Location][]Edge),
	}
}

// AddLocation adds a location with no edges. Adding it twice is a no-op.
func (g *Graph) AddLocation(loc Location) {
	if _, ok := g.edges[loc]; ok {
		return
	}
	g.edges[loc] = []Edge{}
	i := sort.Search(len(g.locations), func(i int) bool { return g.locations[i] >= loc })
	g.locations = append(g.locations, 0)
	copy(g.locations[i+1:], g.locations[i:])
	g.locations[i] = loc
}

// AddEdge adds a bidirectional route between two locations.
func (g *Graph) AddEdge(a, b Location, route Route) {
	g.AddLocation(a)
	g.AddLocation(b)
	if !contains(g.edges[a], Edge{To: b, Route: route}) {
		g.edges[a] = append(g.edges[a], Edge{To: b, Route: route})
	}
	if !contains(g.edges[b], Edge{To: a, Route: route}) {
		g.edges[b] = append(g.edges[b], Edge{To: a, Route: route})
	}
}

// contains checks if a slice contains a specific edge (avoid duplicate routes)
func contains(slice []Edge, item Edge) bool {
	for _, v := range slice {
		if v == item {
			return true
		}
	}
	return false
}

// Edges returns the edges leaving loc. The slice must not be modified.
func (g *Graph) Edges(loc Location) []Edge {
	return g.edges[loc]
}

// Locations returns every location in ascending order. The slice must not be
// modified.
func (g *Graph) Locations() []Location {
	return g.locations
}

func (g *Graph) Size() int {
	return len(g.locations)
}

func (g *Graph) Has(loc Location) bool {
	_, ok := g.edges[loc]
	return ok
}

// HasRoute reports whether loc is served by route.
func (g *Graph) HasRoute(loc Location, route Route) bool {
	for _, e := range g.edges[loc] {
		if e.Route == route {
			return true
		}
	}
	return false
}

// SetCorners records the locations that make up the map's edge regions.
func (g *Graph) SetCorners(corners ...Location) {
	g.corners = append([]Location(nil), corners...)
}

// Corners returns the edge region locations. The slice must not be modified.
func (g *Graph) Corners() []Location {
	return g.corners
}
