package recorder

import (
	"time"

	"RRGView/internal/model"
)

// Snapshot is one recorded chart position: where a symbol sat relative to
// its benchmark at one point in time.
type Snapshot struct {
	TakenAt    time.Time
	Benchmark  string
	Timeframe  string
	Symbol     string
	RSRatio    float64
	RSMomentum float64
	Quadrant   string
}

// SnapshotFromTail builds a snapshot row from a tail's current position.
func SnapshotFromTail(takenAt time.Time, benchmark, timeframe string, t model.Tail) Snapshot {
	head := t.Head()
	return Snapshot{
		TakenAt:    takenAt,
		Benchmark:  benchmark,
		Timeframe:  timeframe,
		Symbol:     t.Symbol,
		RSRatio:    head.RSRatio,
		RSMomentum: head.RSMomentum,
		Quadrant:   model.QuadrantOf(head).String(),
	}
}

// Recorder persists chart positions so rotation can be tracked across runs.
type Recorder interface {
	Record(snapshots []Snapshot) error
	// LatestQuadrants returns the most recently recorded quadrant per symbol
	// for one benchmark/timeframe pair.
	LatestQuadrants(benchmark, timeframe string) (map[string]string, error)
	// History returns recorded snapshots for a symbol, most recent first.
	History(symbol string, limit int) ([]Snapshot, error)
	Close() error
}
