package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Simulations int // Requested simulations per move
	Duration    time.Duration
	Episodes    int // Completed simulations
	Terminals   int // Simulations that reached a decided board
	TreeSize    int // Transposition table entries after pruning
	IsTreeReset bool
}

type MoveMetric struct {
	Step   int
	Player int // game.Player value
	Row    int
	Col    int
	SearchMetric
}

type GameMetric struct {
	Winner     int // game.Player value, 0 if undecided
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalMoves int
}

type Collector interface {
	Start(simulations int)
	SetTreeReset(value bool)
	SetTreeSize(size int)
	AddTerminal()
	AddEpisode()
	Complete() SearchMetric
}

type collector struct {
	simulations int
	startTime   time.Time
	episodes    atomic.Int32
	terminals   atomic.Int32
	treeSize    atomic.Int32
	isTreeReset atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) SetTreeReset(value bool) {
	m.isTreeReset.Store(value)
}

func (m *collector) SetTreeSize(size int) {
	m.treeSize.Store(int32(size))
}

// Start resets the counters for a new move.
func (m *collector) Start(simulations int) {
	m.startTime = time.Now()
	m.simulations = simulations
	m.episodes.Store(0)
	m.terminals.Store(0)
}

func (m *collector) AddTerminal() {
	m.terminals.Add(1)
}

func (m *collector) AddEpisode() {
	m.episodes.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Simulations: m.simulations,
		Duration:    time.Since(m.startTime),
		Episodes:    int(m.episodes.Load()),
		Terminals:   int(m.terminals.Load()),
		TreeSize:    int(m.treeSize.Load()),
		IsTreeReset: m.isTreeReset.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(simulations int)   {}
func (m *dummyCollector) SetTreeReset(value bool) {}
func (m *dummyCollector) SetTreeSize(size int)    {}
func (m *dummyCollector) AddTerminal()            {}
func (m *dummyCollector) AddEpisode()             {}
func (m *dummyCollector) Complete() SearchMetric  { return SearchMetric{} }
