package rtplan

import (
	apperrors "github.com/fieldshape/mlca/pkg/errors"
)

// Orientation identifies which axis the MLC leaves travel along.
type Orientation string

const (
	// MLCX leaves travel along the x axis; leaf-pair boundaries span y.
	MLCX Orientation = "mlcx"

	// MLCY leaves travel along the y axis; leaf-pair boundaries span x.
	MLCY Orientation = "mlcy"
)

// muDeltaTolerance absorbs float noise when checking that cumulative MU
// fractions never decrease between consecutive control points.
const muDeltaTolerance = 1e-9

// Plan is the parsed, immutable representation of one RT Plan file.
type Plan struct {
	File        string // source path, empty when parsed from a stream
	PatientName string
	PatientID   string
	StudyUID    string
	SOPUID      string
	TPS         string // treatment planning system (manufacturer + model)
	Name        string
	FxGroups    []FxGroup
}

// FxGroup is one fraction group: the set of beams delivered together as a
// single treatment fraction definition. Owned exclusively by its Plan.
type FxGroup struct {
	Number    int // 1-based fraction group number
	Fractions int // planned fraction count, 0 when unknown
	Beams     []Beam
}

// MU returns the fraction group's total meterset across all beams.
func (g *FxGroup) MU() float64 {
	total := 0.0
	for i := range g.Beams {
		total += g.Beams[i].MeterSet
	}
	return total
}

// ControlPointCount returns the number of control points across all beams.
func (g *FxGroup) ControlPointCount() int {
	n := 0
	for i := range g.Beams {
		n += len(g.Beams[i].ControlPoints)
	}
	return n
}

// Beam is one treatment beam with its device geometry and ordered control
// points. Owned exclusively by its FxGroup.
type Beam struct {
	Number   int
	Name     string
	MeterSet float64 // total monitor units for this beam

	// LeafBoundaries is the device's fixed leaf-pair boundary table along
	// the transverse axis: len(LeafBoundaries) == pair count + 1, strictly
	// increasing. Constant per machine model.
	LeafBoundaries []float64

	Orientation   Orientation
	ControlPoints []ControlPoint
}

// PairCount returns the number of opposing leaf pairs.
func (b *Beam) PairCount() int {
	if len(b.LeafBoundaries) == 0 {
		return 0
	}
	return len(b.LeafBoundaries) - 1
}

// Validate checks the structural invariants the complexity core relies on:
// matching bank lengths against the boundary table, a strictly increasing
// boundary table, and non-decreasing cumulative MU fractions. A failure is
// fatal for this beam but must not abort sibling beams.
func (b *Beam) Validate() error {
	pairs := b.PairCount()
	if pairs <= 0 {
		return apperrors.New(apperrors.ErrCodeMalformedGeometry,
			"beam %q: leaf boundary table has %d entries", b.Name, len(b.LeafBoundaries))
	}
	for i := 1; i < len(b.LeafBoundaries); i++ {
		if b.LeafBoundaries[i] <= b.LeafBoundaries[i-1] {
			return apperrors.New(apperrors.ErrCodeMalformedGeometry,
				"beam %q: leaf boundary table not increasing at index %d", b.Name, i)
		}
	}

	prev := 0.0
	for i := range b.ControlPoints {
		cp := &b.ControlPoints[i]
		if len(cp.BankA) != pairs || len(cp.BankB) != pairs {
			return apperrors.New(apperrors.ErrCodeMalformedGeometry,
				"beam %q: control point %d has banks of %d/%d leaves, want %d",
				b.Name, cp.Index, len(cp.BankA), len(cp.BankB), pairs)
		}
		if i > 0 && cp.CumulativeMU-prev < -muDeltaTolerance {
			return apperrors.New(apperrors.ErrCodeInvalidSequencing,
				"beam %q: cumulative MU fraction decreases at control point %d (%g -> %g)",
				b.Name, cp.Index, prev, cp.CumulativeMU)
		}
		prev = cp.CumulativeMU
	}
	return nil
}

// ControlPoint is a snapshot of beam geometry at one cumulative MU fraction.
// Owned exclusively by its Beam.
type ControlPoint struct {
	Index        int
	CumulativeMU float64 // cumulative meterset weight, 0..1

	GantryAngle     float64
	CollimatorAngle float64
	CouchAngle      float64

	// BankA and BankB hold the opposing leaf tip positions along the travel
	// axis, one entry per leaf pair. For an open pair BankA[i] < BankB[i];
	// a crossed or equal pair is closed and contributes no aperture area.
	BankA []float64
	BankB []float64

	// Jaws holds the asymmetric jaw extents recorded at this control point,
	// or nil when the plan only records jaws on the first control point
	// (static jaws) or not at all.
	Jaws *JawExtents
}

// JawExtents are the rectangular jaw bounds at a control point, in mm.
type JawExtents struct {
	XMin, XMax float64
	YMin, YMax float64
}
