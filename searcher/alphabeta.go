package searcher

import (
	"math"

	"pursuit/state"
)

// alphaBeta is fail-soft: a score outside (alpha, beta) is a bound, not the
// exact value.
func (p *pass) alphaBeta(n state.Node, alpha, beta float64) (float64, error) {
	if p.enter() {
		return 0, nil
	}
	if score, ok := p.leaf(n); ok {
		return score, nil
	}

	children, err := p.children(n)
	if err != nil {
		return 0, err
	}
	if len(children) == 0 {
		return p.evaluate(n), nil
	}

	maximising := p.isMax(n)
	p.order(children, maximising)

	best := math.Inf(1)
	if maximising {
		best = math.Inf(-1)
	}
	for _, child := range children {
		score, err := p.alphaBeta(child, alpha, beta)
		if err != nil {
			return 0, err
		}
		p.record(child, score)

		if maximising {
			best = max(best, score)
			alpha = max(alpha, best)
		} else {
			best = min(best, score)
			beta = min(beta, best)
		}
		if alpha >= beta {
			p.metrics.AddCutoff()
			break
		}
	}
	return best, nil
}
