package geometry

import "github.com/jbeda/geom"

// bandEps is the tolerance for deciding that two bands are contiguous along
// the stacking axis and that their gap intervals genuinely overlap. Band
// edges come from a shared boundary table, so in practice they match exactly;
// the tolerance only absorbs float noise introduced by clipping.
const bandEps = 1e-9

// Band is the open rectangle of a single leaf pair in (gap, edge) space:
// GapLo..GapHi spans the opening between the two opposing leaf tips, and
// EdgeLo..EdgeHi spans the pair's fixed transverse boundaries. Bands passed
// to MergeBands must be sorted by increasing EdgeLo and must not overlap
// along the edge axis.
type Band struct {
	GapLo, GapHi   float64
	EdgeLo, EdgeHi float64
}

// Rect returns the band's rectangle with the gap interval on the x axis and
// the edge interval on the y axis.
func (b Band) Rect() geom.Rect {
	return NewRect(b.GapLo, b.EdgeLo, b.GapHi, b.EdgeHi)
}

// empty reports whether the band has no open area.
func (b Band) empty() bool {
	return b.GapHi-b.GapLo <= 0 || b.EdgeHi-b.EdgeLo <= 0
}

// MergeBands unions stacked leaf-band rectangles into simple rectilinear
// polygons. Consecutive bands merge into one polygon when they touch along
// the edge axis and their gap intervals overlap with positive length;
// otherwise they start a new polygon. Empty bands split runs without
// contributing geometry.
//
// The union is area-preserving: the summed Area of the result equals the
// summed area of the input bands. Output polygons never self-intersect.
func MergeBands(bands []Band) []Polygon {
	var polys []Polygon
	var run []Band

	flush := func() {
		if len(run) > 0 {
			polys = append(polys, runPolygon(run))
			run = run[:0]
		}
	}

	for _, b := range bands {
		if b.empty() {
			flush()
			continue
		}
		if len(run) > 0 && !connected(run[len(run)-1], b) {
			flush()
		}
		run = append(run, b)
	}
	flush()

	return polys
}

// connected reports whether band b continues the run ended by a: the bands
// must abut along the edge axis and share a positive-length gap overlap.
// Bands that merely touch at a corner remain disjoint polygons.
func connected(a, b Band) bool {
	if b.EdgeLo-a.EdgeHi > bandEps {
		return false
	}
	overlap := min(a.GapHi, b.GapHi) - max(a.GapLo, b.GapLo)
	return overlap > bandEps
}

// runPolygon traces the outline of a maximal run of connected bands:
// up the low-gap side, across the top, and back down the high-gap side.
// Collinear duplicate vertices from equal adjacent gap positions are
// harmless for area and path-length computations and are skipped only when
// exactly coincident.
func runPolygon(run []Band) Polygon {
	p := make(Polygon, 0, 4*len(run))
	push := func(x, y float64) {
		if n := len(p); n > 0 && p[n-1].X == x && p[n-1].Y == y {
			return
		}
		p = append(p, geom.Coord{X: x, Y: y})
	}

	// Low-gap side, walking up the edge axis.
	push(run[0].GapLo, run[0].EdgeLo)
	for i, b := range run {
		push(b.GapLo, b.EdgeLo)
		push(b.GapLo, b.EdgeHi)
		if i+1 < len(run) {
			push(run[i+1].GapLo, b.EdgeHi)
		}
	}

	// High-gap side, walking back down.
	for i := len(run) - 1; i >= 0; i-- {
		b := run[i]
		push(b.GapHi, b.EdgeHi)
		push(b.GapHi, b.EdgeLo)
		if i > 0 {
			push(run[i-1].GapHi, b.EdgeLo)
		}
	}

	// Drop the closing vertex if the trace returned to the start.
	if n := len(p); n > 1 && p[0] == p[n-1] {
		p = p[:n-1]
	}
	return p
}
