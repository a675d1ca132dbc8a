package searcher

import (
	"context"
	"math"
	"sort"

	"github.com/pkg/errors"

	"pursuit/experiments/metrics"
	"pursuit/game"
	"pursuit/heuristic"
	"pursuit/state"
)

// pass is one depth-limited search from the root. A pass is only touched by
// the search goroutine.
type pass struct {
	ctx      context.Context
	strategy Strategy
	evaluate heuristic.Func
	filter   Filter
	metrics  metrics.Collector

	root  state.Node
	max   game.Role
	limit int // Absolute node depth at which recursion stops
	depth int

	previous map[game.StateHash]float64 // Scores of the last completed pass
	scores   map[game.StateHash]float64
	cutoff   bool // Some line was cut by the depth limit
	halted   bool
}

func (s *Searcher) newPass(ctx context.Context, root state.Node, depth int, previous map[game.StateHash]float64) *pass {
	return &pass{
		ctx:      ctx,
		strategy: s.strategy,
		evaluate: s.evaluate,
		filter:   s.filter,
		metrics:  s.metrics,
		root:     root,
		max:      root.Player(),
		limit:    root.Depth() + depth,
		depth:    depth,
		previous: previous,
		scores:   make(map[game.StateHash]float64),
	}
}

// stopped latches once the context is done.
func (p *pass) stopped() bool {
	if p.halted {
		return true
	}
	select {
	case <-p.ctx.Done():
		p.halted = true
	default:
	}
	return p.halted
}

// enter is called at the top of every recursive call. It reports whether
// the recursion must unwind.
func (p *pass) enter() bool {
	if p.stopped() {
		return true
	}
	p.metrics.AddNode()
	return false
}

// leaf evaluates n if the recursion ends there.
func (p *pass) leaf(n state.Node) (float64, bool) {
	if n.IsGameOver() {
		return p.evaluate(n), true
	}
	if n.Depth() >= p.limit {
		p.cutoff = true
		return p.evaluate(n), true
	}
	return 0, false
}

func (p *pass) isMax(n state.Node) bool {
	return n.Player() == p.max
}

// children expands the filtered moves of n.
func (p *pass) children(n state.Node) ([]state.Node, error) {
	moves := n.Moves()
	if p.filter != nil {
		moves = p.filter.Apply(n, moves)
	}

	children := make([]state.Node, 0, len(moves))
	for _, move := range moves {
		child, err := n.Play(move)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	return children, nil
}

// record keeps the backed-up score of n for ordering the next pass. Nothing
// is written once the pass is stopped.
func (p *pass) record(n state.Node, score float64) {
	if p.stopped() {
		return
	}
	p.scores[n.Hash()] = score
}

// order sorts children best first for the player at their parent: by the
// previous pass's score when there is one, else by their immediate score.
func (p *pass) order(children []state.Node, maximising bool) {
	keys := make(map[state.Node]float64, len(children))
	for _, child := range children {
		if score, ok := p.previous[child.Hash()]; ok {
			keys[child] = score
		} else {
			keys[child] = p.evaluate(child)
		}
	}

	sort.SliceStable(children, func(i, j int) bool {
		if maximising {
			return keys[children[i]] > keys[children[j]]
		}
		return keys[children[i]] < keys[children[j]]
	})
}

func (p *pass) value(n state.Node, alpha, beta float64) (float64, error) {
	switch p.strategy {
	case Minimax:
		return p.minimax(n)
	case AlphaBeta:
		return p.alphaBeta(n, alpha, beta)
	case Expectiminimax:
		return p.expectiminimax(n)
	default:
		panic("Unexpected search strategy")
	}
}

// run scores every root child. The result is meaningless if the pass was
// stopped.
func (p *pass) run() ([]Child, error) {
	children, err := p.children(p.root)
	if err != nil {
		return nil, err
	}
	if len(children) == 0 {
		return nil, errors.Wrap(ErrNoMoves, "filter removed every root move")
	}
	if p.strategy == AlphaBeta {
		p.order(children, true)
	}

	scored := make([]Child, 0, len(children))
	best := math.Inf(-1)
	alpha := math.Inf(-1)
	for _, child := range children {
		score, err := p.value(child, alpha, math.Inf(1))
		if err != nil {
			return nil, err
		}
		if p.stopped() {
			return nil, nil
		}
		p.record(child, score)
		scored = append(scored, Child{Move: child.Move(), Score: score, node: child})

		if score > best {
			best = score
			// Keep the window just below the best so a tie still gets an exact score
			alpha = math.Nextafter(best, math.Inf(-1))
		}
	}
	return scored, nil
}

// decide picks the best root child. Children tied at the best backed-up
// score are compared by their immediate score; remaining ties go to the
// first move in canonical order.
func (p *pass) decide(children []Child) Result {
	moves := make([]game.Move, len(children))
	for i, child := range children {
		moves[i] = child.Move
	}
	rank := make(map[game.Move]int, len(moves))
	for i, move := range game.SortMoves(moves) {
		rank[move] = i
	}
	sort.Slice(children, func(i, j int) bool {
		return rank[children[i].Move] < rank[children[j].Move]
	})

	best := math.Inf(-1)
	for _, child := range children {
		best = math.Max(best, child.Score)
	}

	chosen := -1
	safest := math.Inf(-1)
	for i := range children {
		if children[i].Score != best {
			continue
		}
		children[i].Immediate = p.evaluate(children[i].node)
		children[i].Tied = true
		if chosen < 0 || children[i].Immediate > safest {
			chosen = i
			safest = children[i].Immediate
		}
	}

	return Result{
		Move:     children[chosen].Move,
		Score:    best,
		Depth:    p.depth,
		Strategy: p.strategy,
		Children: children,
	}
}
