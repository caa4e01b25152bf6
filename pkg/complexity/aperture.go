package complexity

import (
	"github.com/jbeda/geom"

	"github.com/fieldshape/mlca/pkg/geometry"
	"github.com/fieldshape/mlca/pkg/rtplan"
)

// Aperture is the open field shape at one control point: the union of all
// open leaf-pair gaps clipped to the jaw rectangle and the maximum field,
// expressed as disjoint simple polygons in the machine's (x, y) plane.
type Aperture struct {
	Polygons []geometry.Polygon
}

// Area returns the total open area in mm^2.
func (a Aperture) Area() float64 {
	return geometry.TotalArea(a.Polygons)
}

// PathLengths returns the total boundary length of the aperture projected
// onto the x and y axes.
func (a Aperture) PathLengths() (x, y float64) {
	return geometry.TotalPathLengths(a.Polygons)
}

// BuildAperture constructs the aperture for one control point. jaws must
// already be resolved (see resolveJaws); boundaries is the beam's leaf-pair
// boundary table. Closed or fully blocked leaf pairs contribute nothing; a
// control point with every pair blocked yields an aperture with no polygons.
//
// The clip bound is the intersection of the jaw rectangle with the centered
// maximum field. Clipping each leaf gap before the union keeps the union a
// plain band merge: intersection with a rectangle distributes over the union
// of the bands.
func BuildAperture(cp *rtplan.ControlPoint, beam *rtplan.Beam, jaws rtplan.JawExtents, opts Options) Aperture {
	bounds, ok := clipBounds(jaws, beam.Orientation, opts)
	if !ok {
		return Aperture{}
	}

	pairs := beam.PairCount()
	bands := make([]geometry.Band, 0, pairs)
	for i := 0; i < pairs; i++ {
		band := geometry.Band{
			GapLo:  cp.BankA[i],
			GapHi:  cp.BankB[i],
			EdgeLo: beam.LeafBoundaries[i],
			EdgeHi: beam.LeafBoundaries[i+1],
		}
		r, open := geometry.Clip(band.Rect(), bounds)
		if !open {
			// Keep a placeholder so the blocked pair splits the union.
			bands = append(bands, geometry.Band{EdgeLo: band.EdgeLo, EdgeHi: band.EdgeLo})
			continue
		}
		bands = append(bands, geometry.Band{
			GapLo: r.Min.X, GapHi: r.Max.X,
			EdgeLo: r.Min.Y, EdgeHi: r.Max.Y,
		})
	}

	polys := geometry.MergeBands(bands)
	if beam.Orientation == rtplan.MLCY {
		for i, p := range polys {
			polys[i] = p.Transpose()
		}
	}
	return Aperture{Polygons: polys}
}

// clipBounds intersects the jaw rectangle with the centered maximum field
// and maps the result into band space, where the gap axis is the leaf travel
// axis. For MLCY beams the jaw axes swap roles.
func clipBounds(jaws rtplan.JawExtents, orientation rtplan.Orientation, opts Options) (geom.Rect, bool) {
	jawRect := geometry.NewRect(jaws.XMin, jaws.YMin, jaws.XMax, jaws.YMax)
	field := geometry.NewRect(
		-opts.MaxFieldSizeX/2, -opts.MaxFieldSizeY/2,
		opts.MaxFieldSizeX/2, opts.MaxFieldSizeY/2,
	)
	bounds, ok := geometry.Clip(jawRect, field)
	if !ok {
		return geom.Rect{}, false
	}
	if orientation == rtplan.MLCY {
		bounds = geometry.NewRect(bounds.Min.Y, bounds.Min.X, bounds.Max.Y, bounds.Max.X)
	}
	return bounds, true
}
