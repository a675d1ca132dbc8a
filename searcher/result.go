package searcher

import (
	"fmt"

	"github.com/awalterschulze/gographviz"

	"pursuit/game"
	"pursuit/state"
)

// Child is a root move with its backed-up score.
type Child struct {
	Move      game.Move
	Score     float64
	Immediate float64 // Heuristic score of the child itself, set for ties only
	Tied      bool    // Score equals the best score
	node      state.Node
}

// Result is the decision of the deepest completed pass.
type Result struct {
	Move     game.Move
	Score    float64
	Depth    int
	Strategy Strategy
	Children []Child // In canonical move order
}

// ToDot renders the root decision as a Graphviz digraph: the root, one node
// per move with its score, and the chosen move highlighted.
func (r Result) ToDot() string {
	g := gographviz.NewGraph()
	if err := g.SetName("G"); err != nil {
		panic(err)
	}
	if err := g.SetDir(true); err != nil {
		panic(err)
	}

	root := fmt.Sprintf("%q", fmt.Sprintf("%s depth %d", r.Strategy, r.Depth))
	if err := g.AddNode("G", "root", map[string]string{"shape": "box", "label": root}); err != nil {
		panic(err)
	}

	for i, child := range r.Children {
		label := fmt.Sprintf("%s\n%.2f", child.Move, child.Score)
		if child.Tied {
			label = fmt.Sprintf("%s\n%.2f (%.2f)", child.Move, child.Score, child.Immediate)
		}
		attrs := map[string]string{"label": fmt.Sprintf("%q", label)}
		if child.Move == r.Move {
			attrs["style"] = "filled"
			attrs["fillcolor"] = "lightblue"
		}

		name := fmt.Sprintf("m%d", i)
		if err := g.AddNode("G", name, attrs); err != nil {
			panic(err)
		}
		if err := g.AddEdge("root", name, true, nil); err != nil {
			panic(err)
		}
	}
	return g.String()
}
