package model

import "time"

// Coordinate is one point on the RRG chart: normalized relative strength
// and relative momentum for a symbol at one date.
type Coordinate struct {
	Date       time.Time
	RSRatio    float64
	RSMomentum float64
}

// Tail is the trailing sequence of coordinates plotted for one symbol,
// in chronological order. The last point is the symbol's current position.
type Tail struct {
	Symbol string
	Points []Coordinate
}

// Head returns the most recent coordinate.
func (t Tail) Head() Coordinate {
	if len(t.Points) == 0 {
		return Coordinate{}
	}
	return t.Points[len(t.Points)-1]
}

// Quadrant identifies one of the four RRG chart regions around the
// (100, 100) center.
type Quadrant int

const (
	Leading   Quadrant = iota // ratio >= 100, momentum >= 100
	Weakening                 // ratio >= 100, momentum < 100
	Lagging                   // ratio < 100, momentum < 100
	Improving                 // ratio < 100, momentum >= 100
)

func (q Quadrant) String() string {
	switch q {
	case Leading:
		return "Leading"
	case Weakening:
		return "Weakening"
	case Lagging:
		return "Lagging"
	case Improving:
		return "Improving"
	}
	return "Unknown"
}

// QuadrantOf classifies a coordinate into its chart quadrant.
func QuadrantOf(c Coordinate) Quadrant {
	switch {
	case c.RSRatio >= 100 && c.RSMomentum >= 100:
		return Leading
	case c.RSRatio >= 100:
		return Weakening
	case c.RSMomentum >= 100:
		return Improving
	default:
		return Lagging
	}
}
