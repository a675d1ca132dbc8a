package engine

import (
	"pursuit/experiments/metrics"
	"pursuit/game"
)

const MaxMoves = 10000

type Engine interface {
	// Run plays a match till there's a winner or a max number of moves is reached
	Run() (winners []game.Role, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric)
}
