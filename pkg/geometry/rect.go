package geometry

import "github.com/jbeda/geom"

// NewRect builds a geom.Rect from its extents. Callers must pass min <= max;
// use Clip to detect empty results instead of constructing inverted rects.
func NewRect(xMin, yMin, xMax, yMax float64) geom.Rect {
	return geom.Rect{
		Min: geom.Coord{X: xMin, Y: yMin},
		Max: geom.Coord{X: xMax, Y: yMax},
	}
}

// Clip intersects r with bounds. The second return value reports whether the
// intersection has strictly positive area; when false, the returned rect is
// meaningless and must not be used.
func Clip(r, bounds geom.Rect) (geom.Rect, bool) {
	out := geom.Rect{
		Min: geom.Coord{X: max(r.Min.X, bounds.Min.X), Y: max(r.Min.Y, bounds.Min.Y)},
		Max: geom.Coord{X: min(r.Max.X, bounds.Max.X), Y: min(r.Max.Y, bounds.Max.Y)},
	}
	if out.Max.X-out.Min.X <= 0 || out.Max.Y-out.Min.Y <= 0 {
		return geom.Rect{}, false
	}
	return out, true
}

// RectPolygon converts a rectangle to a four-vertex Polygon in
// counterclockwise order.
func RectPolygon(r geom.Rect) Polygon {
	return Polygon{
		{X: r.Min.X, Y: r.Min.Y},
		{X: r.Max.X, Y: r.Min.Y},
		{X: r.Max.X, Y: r.Max.Y},
		{X: r.Min.X, Y: r.Max.Y},
	}
}
