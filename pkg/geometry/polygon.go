package geometry

import (
	"math"

	"github.com/jbeda/geom"
)

// Polygon is a simple closed polygon. The closing edge from the last vertex
// back to the first is implicit. Vertex order (clockwise or counterclockwise)
// does not affect Area or PathLengths.
type Polygon []geom.Coord

// Area returns the enclosed area computed with the shoelace formula.
// The absolute value is taken, so traversal direction does not matter.
func (p Polygon) Area() float64 {
	if len(p) < 3 {
		return 0
	}
	sum := 0.0
	for i, v := range p {
		w := p[(i+1)%len(p)]
		sum += v.X*w.Y - w.X*v.Y
	}
	return math.Abs(sum) / 2
}

// PathLengths returns the total boundary length projected onto each axis:
// the sum of |dx| and the sum of |dy| over every edge, including the
// implicit closing edge. For a rectangle this is (2*width, 2*height).
func (p Polygon) PathLengths() (x, y float64) {
	if len(p) < 2 {
		return 0, 0
	}
	for i, v := range p {
		w := p[(i+1)%len(p)]
		x += math.Abs(w.X - v.X)
		y += math.Abs(w.Y - v.Y)
	}
	return x, y
}

// Transpose returns a copy of the polygon with the X and Y coordinate of
// every vertex swapped. Area is preserved; PathLengths swap axes. This maps
// polygons built in (gap, transverse) band space onto devices whose leaves
// travel along the y axis.
func (p Polygon) Transpose() Polygon {
	q := make(Polygon, len(p))
	for i, v := range p {
		q[i] = geom.Coord{X: v.Y, Y: v.X}
	}
	return q
}

// TotalArea sums the area of each polygon.
func TotalArea(polys []Polygon) float64 {
	total := 0.0
	for _, p := range polys {
		total += p.Area()
	}
	return total
}

// TotalPathLengths sums the per-axis boundary lengths of each polygon.
func TotalPathLengths(polys []Polygon) (x, y float64) {
	for _, p := range polys {
		px, py := p.PathLengths()
		x += px
		y += py
	}
	return x, y
}
