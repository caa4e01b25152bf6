// Package geometry provides the 2D primitives behind aperture construction:
// rectilinear polygons, axis-aligned rectangle clipping, and the union of
// stacked leaf-band rectangles into simple polygons.
//
// The package is deliberately narrow. It is not a general polygon-clipping
// library: all inputs are axis-aligned, all outputs are simple (non
// self-intersecting) rectilinear polygons, and the union is area-preserving.
// Coordinates use geom.Coord so callers share one vocabulary for points and
// rectangles.
//
// All functions are pure and safe for concurrent use.
package geometry
