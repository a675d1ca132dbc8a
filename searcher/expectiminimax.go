package searcher

import (
	"math"

	"pursuit/state"
)

// expectiminimax is minimax with chance layers: where the evader's location
// is unknown, the value is the weighted average over every location it may
// be pinned to.
func (p *pass) expectiminimax(n state.Node) (float64, error) {
	if p.enter() {
		return 0, nil
	}
	if score, ok := p.leaf(n); ok {
		return score, nil
	}

	if chance, ok := n.(state.Chance); ok {
		if outcomes := chance.Outcomes(); len(outcomes) > 0 {
			expected := 0.0
			for _, outcome := range outcomes {
				score, err := p.expectiminimax(outcome.Node)
				if err != nil {
					return 0, err
				}
				expected += outcome.Weight * score
			}
			return expected, nil
		}
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
		score, err := p.expectiminimax(child)
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
