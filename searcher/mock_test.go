package searcher

import (
	"hash/fnv"

	"pursuit/game"
	"pursuit/state"
)

// mockNode is a hand-built game tree. Scores are from the root player's side.
type mockNode struct {
	id       string
	player   game.Role
	move     game.Move
	depth    int
	score    float64
	over     bool
	children []*mockNode
	outcomes []*mockNode // Equally likely
	err      error       // Returned by Play
}

func leaf(score float64) *mockNode {
	return &mockNode{score: score}
}

func terminal(score float64) *mockNode {
	return &mockNode{score: score, over: true}
}

func branch(player game.Role, score float64, children ...*mockNode) *mockNode {
	return &mockNode{player: player, score: score, children: children}
}

func chanceOf(player game.Role, outcomes ...*mockNode) *mockNode {
	return &mockNode{player: player, outcomes: outcomes}
}

// build names every node by its path and fills in moves, depths and the
// player of leaves that did not set one.
func build(root *mockNode) *mockNode {
	root.id = "r"
	var walk func(n *mockNode)
	walk = func(n *mockNode) {
		for i, child := range n.children {
			child.id = n.id + string(rune('a'+i))
			child.depth = n.depth + 1
			child.move = game.NewTicketMove(n.player, game.TaxiTicket, game.Location(i+1))
			if child.player == 0 && len(child.children) == 0 {
				child.player = 1 - n.player
			}
			walk(child)
		}
		for i, outcome := range n.outcomes {
			outcome.id = n.id + string(rune('0'+i))
			outcome.depth = n.depth
			outcome.move = n.move
			outcome.player = n.player
			walk(outcome)
		}
	}
	walk(root)
	return root
}

func (n *mockNode) Player() game.Role                     { return n.player }
func (n *mockNode) Move() game.Move                       { return n.move }
func (n *mockNode) Depth() int                            { return n.depth }
func (n *mockNode) Snapshot() *game.Snapshot              { return nil }
func (n *mockNode) Graph() *game.Graph                    { return nil }
func (n *mockNode) MovesOf(r game.Role) []game.Move       { return n.Moves() }
func (n *mockNode) IsGameOver() bool                      { return n.over }
func (n *mockNode) IsTerminal(maxDepth int) bool          { return n.over || n.depth >= maxDepth }
func (n *mockNode) EvaderLocation() (game.Location, bool) { return game.NoLocation, false }

func (n *mockNode) Moves() []game.Move {
	moves := []game.Move{}
	for _, child := range n.children {
		moves = append(moves, child.move)
	}
	return moves
}

func (n *mockNode) Play(m game.Move) (state.Node, error) {
	if n.err != nil {
		return nil, n.err
	}
	for _, child := range n.children {
		if child.move == m {
			return child, nil
		}
	}
	panic("move not in mock tree")
}

func (n *mockNode) Winners() []game.Role {
	if n.over {
		return []game.Role{game.Evader}
	}
	return nil
}

func (n *mockNode) Hash() game.StateHash {
	hasher := fnv.New64a()
	hasher.Write([]byte(n.id))
	return game.StateHash(hasher.Sum64())
}

func (n *mockNode) Outcomes() []state.Outcome {
	outcomes := []state.Outcome{}
	for _, outcome := range n.outcomes {
		outcomes = append(outcomes, state.Outcome{Node: outcome, Weight: 1 / float64(len(n.outcomes))})
	}
	return outcomes
}

func mockScore(n state.Node) float64 {
	return n.(*mockNode).score
}

// endless is an unbounded binary tree.
type endless struct {
	mockNode
}

func newEndless() *endless {
	return &endless{mockNode{id: "r"}}
}

func (n *endless) Moves() []game.Move {
	return []game.Move{
		game.NewTicketMove(n.player, game.TaxiTicket, 1),
		game.NewTicketMove(n.player, game.TaxiTicket, 2),
	}
}

func (n *endless) Play(m game.Move) (state.Node, error) {
	id := n.id + string(rune('0'+int(m.Destination())))
	hasher := fnv.New32a()
	hasher.Write([]byte(id))
	return &endless{mockNode{
		id:     id,
		player: 1 - n.player,
		move:   m,
		depth:  n.depth + 1,
		score:  float64(hasher.Sum32() % 100),
	}}, nil
}

func (n *endless) Hash() game.StateHash {
	hasher := fnv.New64a()
	hasher.Write([]byte(n.id))
	return game.StateHash(hasher.Sum64())
}

func (n *endless) Outcomes() []state.Outcome {
	return nil
}

func endlessScore(n state.Node) float64 {
	return n.(*endless).score
}
