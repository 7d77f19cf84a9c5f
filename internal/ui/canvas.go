package ui

import (
	"RRGView/internal/model"
)

// Bounds is the data-space window mapped onto the plot area. It is always
// symmetric around the (100, 100) center so the quadrant cross stays in the
// middle of the chart.
type Bounds struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// minHalfSpan keeps the chart readable when all points cluster near the
// centerline.
const minHalfSpan = 2.0

// BoundsFor computes a symmetric window around (100, 100) covering every
// plotted point, with a small margin.
func BoundsFor(tails []model.Tail) Bounds {
	half := minHalfSpan
	for _, t := range tails {
		for _, p := range t.Points {
			half = maxFloat(half, absFloat(p.RSRatio-100))
			half = maxFloat(half, absFloat(p.RSMomentum-100))
		}
	}
	half *= 1.15 // margin
	return Bounds{MinX: 100 - half, MaxX: 100 + half, MinY: 100 - half, MaxY: 100 + half}
}

// ProjectX maps an RS-Ratio value to a column in [0, cols).
func (b Bounds) ProjectX(v float64, cols int) int {
	return project(v, b.MinX, b.MaxX, cols)
}

// ProjectY maps an RS-Momentum value to a row in [0, rows), with row 0 at
// the top of the screen.
func (b Bounds) ProjectY(v float64, rows int) int {
	return rows - 1 - project(v, b.MinY, b.MaxY, rows)
}

func project(v, lo, hi float64, cells int) int {
	if cells <= 1 || hi <= lo {
		return 0
	}
	i := int((v - lo) / (hi - lo) * float64(cells-1))
	if i < 0 {
		i = 0
	}
	if i > cells-1 {
		i = cells - 1
	}
	return i
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
