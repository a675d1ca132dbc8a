package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Strategy string
	Duration time.Duration
	Depth    int // Deepest completed pass
	Passes   int
	Nodes    int
	Cutoffs  int
	Fallback bool // Move was picked at random after the search gave up
}

type MoveMetric struct {
	Step   int
	Player int // Role
	Move   string
	SearchMetric
}

type GameMetric struct {
	Winner     string // "evader" or "seekers"
	Rounds     int
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalMoves int
}

type Collector interface {
	Start(strategy string)
	AddNode()
	AddCutoff()
	CompletePass(depth int)
	SetFallback()
	Complete() SearchMetric
}

type collector struct {
	strategy  string
	startTime time.Time
	depth     atomic.Int32
	passes    atomic.Int32
	nodes     atomic.Int64
	cutoffs   atomic.Int64
	fallback  atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

// Start resets the counters for a new search.
func (m *collector) Start(strategy string) {
	m.strategy = strategy
	m.startTime = time.Now()
	m.depth.Store(0)
	m.passes.Store(0)
	m.nodes.Store(0)
	m.cutoffs.Store(0)
	m.fallback.Store(false)
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) AddCutoff() {
	m.cutoffs.Add(1)
}

func (m *collector) CompletePass(depth int) {
	m.depth.Store(int32(depth))
	m.passes.Add(1)
}

func (m *collector) SetFallback() {
	m.fallback.Store(true)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Strategy: m.strategy,
		Duration: time.Since(m.startTime),
		Depth:    int(m.depth.Load()),
		Passes:   int(m.passes.Load()),
		Nodes:    int(m.nodes.Load()),
		Cutoffs:  int(m.cutoffs.Load()),
		Fallback: m.fallback.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(strategy string)  {}
func (m *dummyCollector) AddNode()               {}
func (m *dummyCollector) AddCutoff()             {}
func (m *dummyCollector) CompletePass(depth int) {}
func (m *dummyCollector) SetFallback()           {}
func (m *dummyCollector) Complete() SearchMetric { return SearchMetric{} }
