package rrg

import "RRGView/internal/model"

// MinCurvedTail is the smallest tail length for which curved rendering is
// offered; shorter paths are drawn as straight segments.
const MinCurvedTail = 5

// Interpolate expands a tail into a smooth path using Catmull-Rom splines,
// emitting samples points between each pair of neighboring coordinates.
// It is a display-only transform over already-computed coordinates and never
// feeds back into the RS-Ratio/RS-Momentum math. The curve passes through
// every original coordinate; input with fewer than three points is returned
// unchanged.
func Interpolate(points []model.Coordinate, samples int) []model.Coordinate {
	if len(points) < 3 || samples < 1 {
		return points
	}

	out := make([]model.Coordinate, 0, (len(points)-1)*(samples+1)+1)
	for i := 0; i < len(points)-1; i++ {
		p0 := points[max(i-1, 0)]
		p1 := points[i]
		p2 := points[i+1]
		p3 := points[min(i+2, len(points)-1)]

		out = append(out, p1)
		for s := 1; s <= samples; s++ {
			t := float64(s) / float64(samples+1)
			out = append(out, model.Coordinate{
				Date:       p1.Date,
				RSRatio:    catmullRom(p0.RSRatio, p1.RSRatio, p2.RSRatio, p3.RSRatio, t),
				RSMomentum: catmullRom(p0.RSMomentum, p1.RSMomentum, p2.RSMomentum, p3.RSMomentum, t),
			})
		}
	}
	return append(out, points[len(points)-1])
}

// catmullRom evaluates the uniform Catmull-Rom basis at t in [0,1].
func catmullRom(v0, v1, v2, v3, t float64) float64 {
	t2 := t * t
	t3 := t2 * t
	return 0.5 * ((2 * v1) +
		(-v0+v2)*t +
		(2*v0-5*v1+4*v2-v3)*t2 +
		(-v0+3*v1-3*v2+v3)*t3)
}
