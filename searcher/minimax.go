package searcher

import (
	"math"

	"pursuit/state"
)

func (p *pass) minimax(n state.Node) (float64, error) {
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
	best := math.Inf(1)
	if maximising {
		best = math.Inf(-1)
	}
	for _, child := range children {
		score, err := p.minimax(child)
		if err != nil {
			return 0, err
		}
		if maximising {
			best = max(best, score)
		} else {
			best = min(best, score)
		}
	}
	return best, nil
}
