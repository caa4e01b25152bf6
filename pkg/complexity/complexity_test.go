package complexity

import (
	"math"
	"strings"
	"testing"

	"github.com/fieldshape/mlca/pkg/rtplan"
)

const eps = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < eps
}

// testBeam builds a single-pair beam whose control points all share the same
// leaf gap, with evenly spaced cumulative MU fractions from 0 to 1.
func testBeam(meterSet, gapLo, gapHi float64, cps int) rtplan.Beam {
	beam := rtplan.Beam{
		Number:         1,
		Name:           "test",
		MeterSet:       meterSet,
		LeafBoundaries: []float64{0, 5},
		Orientation:    rtplan.MLCX,
	}
	for i := 0; i < cps; i++ {
		beam.ControlPoints = append(beam.ControlPoints, rtplan.ControlPoint{
			Index:        i,
			CumulativeMU: float64(i) / float64(cps-1),
			BankA:        []float64{gapLo},
			BankB:        []float64{gapHi},
		})
	}
	return beam
}

func wideJaws() rtplan.JawExtents {
	return rtplan.JawExtents{XMin: -200, XMax: 200, YMin: -200, YMax: 200}
}

func TestEvaluateControlPointRectangle(t *testing.T) {
	// One open pair spanning x in [-10, 10] and y in [0, 5]:
	// area 100, Px 40, Py 10, score (40 + 10) / 100.
	beam := testBeam(100, -10, 10, 2)
	got := EvaluateControlPoint(&beam.ControlPoints[0], &beam, wideJaws(), 0.5, DefaultOptions())

	if !almostEqual(got.Area, 100) {
		t.Errorf("area = %g, want 100", got.Area)
	}
	if !almostEqual(got.PerimX, 40) || !almostEqual(got.PerimY, 10) {
		t.Errorf("perimeters = (%g, %g), want (40, 10)", got.PerimX, got.PerimY)
	}
	if !almostEqual(got.CmpScore, 0.5) {
		t.Errorf("score = %g, want 0.5", got.CmpScore)
	}
}

func TestEvaluateControlPointWeights(t *testing.T) {
	beam := testBeam(100, -10, 10, 2)
	opts := DefaultOptions()
	opts.XWeight = 2
	opts.YWeight = 3

	got := EvaluateControlPoint(&beam.ControlPoints[0], &beam, wideJaws(), 0, opts)
	want := (2.0*40 + 3.0*10) / 100
	if !almostEqual(got.CmpScore, want) {
		t.Errorf("score = %g, want %g", got.CmpScore, want)
	}
}

func TestEvaluateControlPointClosedPair(t *testing.T) {
	tests := []struct {
		name         string
		gapLo, gapHi float64
	}{
		{"coincident tips", 3, 3},
		{"crossed tips", 5, -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			beam := testBeam(100, tt.gapLo, tt.gapHi, 2)
			got := EvaluateControlPoint(&beam.ControlPoints[0], &beam, wideJaws(), 0.5, DefaultOptions())
			if got.Area != 0 {
				t.Errorf("area = %g, want 0", got.Area)
			}
			if got.CmpScore != 0 {
				t.Errorf("score = %g, want 0 for degenerate aperture", got.CmpScore)
			}
		})
	}
}

func TestEvaluateControlPointJawClipping(t *testing.T) {
	// Jaws narrow the 20mm gap to x in [-2, 2]: area 20, Px 8, Py 10.
	beam := testBeam(100, -10, 10, 2)
	jaws := rtplan.JawExtents{XMin: -2, XMax: 2, YMin: -200, YMax: 200}

	got := EvaluateControlPoint(&beam.ControlPoints[0], &beam, jaws, 0, DefaultOptions())
	if !almostEqual(got.Area, 20) {
		t.Errorf("area = %g, want 20", got.Area)
	}
	if !almostEqual(got.CmpScore, (8.0+10.0)/20) {
		t.Errorf("score = %g, want %g", got.CmpScore, (8.0+10.0)/20)
	}
}

func TestEvaluateControlPointMaxFieldClipping(t *testing.T) {
	// Without jaws the maximum field bounds the gap: a 1000mm opening is
	// clipped to the 400mm field.
	beam := testBeam(100, -500, 500, 2)
	jaws := rtplan.JawExtents{
		XMin: math.Inf(-1), XMax: math.Inf(1),
		YMin: math.Inf(-1), YMax: math.Inf(1),
	}

	got := EvaluateControlPoint(&beam.ControlPoints[0], &beam, jaws, 0, DefaultOptions())
	if !almostEqual(got.Area, 400*5) {
		t.Errorf("area = %g, want %g", got.Area, 400.0*5)
	}
}

func TestEvaluateControlPointMLCY(t *testing.T) {
	beam := testBeam(100, -10, 10, 2)
	beam.Orientation = rtplan.MLCY

	got := EvaluateControlPoint(&beam.ControlPoints[0], &beam, wideJaws(), 0, DefaultOptions())
	if !almostEqual(got.Area, 100) {
		t.Errorf("area = %g, want 100", got.Area)
	}
	// Leaves travel along y, so the long dimension projects onto y.
	if !almostEqual(got.PerimX, 10) || !almostEqual(got.PerimY, 40) {
		t.Errorf("perimeters = (%g, %g), want (10, 40)", got.PerimX, got.PerimY)
	}
}

func TestEvaluateBeamWeighting(t *testing.T) {
	// Three control points at cumulative MU 0, 0.5, 1 with a constant
	// aperture scoring 0.5: the last point carries no forward weight, so
	// the beam score is (0.5 + 0.5) * 0.5 = 0.5.
	beam := testBeam(100, -10, 10, 3)
	got := EvaluateBeam(&beam, DefaultOptions())

	if got.Failed() {
		t.Fatalf("unexpected error: %s", got.Err)
	}
	if !almostEqual(got.Score, 0.5) {
		t.Errorf("score = %g, want 0.5", got.Score)
	}
	if len(got.ControlPoints) != 3 {
		t.Fatalf("got %d control point results, want 3", len(got.ControlPoints))
	}
	if got.ControlPoints[2].MUDelta != 0 {
		t.Errorf("last control point delta = %g, want 0", got.ControlPoints[2].MUDelta)
	}
}

func TestEvaluateBeamChangingAperture(t *testing.T) {
	// First segment 20mm wide, second 4mm wide, equal MU halves.
	beam := rtplan.Beam{
		Number:         1,
		Name:           "two segments",
		MeterSet:       100,
		LeafBoundaries: []float64{0, 5},
		Orientation:    rtplan.MLCX,
		ControlPoints: []rtplan.ControlPoint{
			{Index: 0, CumulativeMU: 0, BankA: []float64{-10}, BankB: []float64{10}},
			{Index: 1, CumulativeMU: 0.5, BankA: []float64{-2}, BankB: []float64{2}},
			{Index: 2, CumulativeMU: 1, BankA: []float64{-2}, BankB: []float64{2}},
		},
	}

	got := EvaluateBeam(&beam, DefaultOptions())
	if got.Failed() {
		t.Fatalf("unexpected error: %s", got.Err)
	}
	// Segment scores: (40+10)/100 = 0.5 and (8+10)/20 = 0.9.
	want := 0.5*0.5 + 0.5*0.9
	if !almostEqual(got.Score, want) {
		t.Errorf("score = %g, want %g", got.Score, want)
	}
}

func TestEvaluateBeamZeroMeterset(t *testing.T) {
	beam := testBeam(0, -10, 10, 3)
	got := EvaluateBeam(&beam, DefaultOptions())

	if got.Failed() {
		t.Fatalf("zero meterset must not be an error, got %s", got.Err)
	}
	if got.Score != 0 {
		t.Errorf("score = %g, want 0 for zero meterset", got.Score)
	}
}

func TestEvaluateBeamMalformedGeometry(t *testing.T) {
	beam := testBeam(100, -10, 10, 3)
	beam.ControlPoints[1].BankA = []float64{1, 2} // wrong leaf count

	got := EvaluateBeam(&beam, DefaultOptions())
	if !got.Failed() {
		t.Fatal("expected a failed beam result")
	}
	if !strings.Contains(got.Err, "MALFORMED_GEOMETRY") {
		t.Errorf("error %q does not carry MALFORMED_GEOMETRY", got.Err)
	}
}

func TestEvaluateBeamInvalidSequencing(t *testing.T) {
	beam := testBeam(100, -10, 10, 3)
	beam.ControlPoints[2].CumulativeMU = 0.25 // decreases after 0.5

	got := EvaluateBeam(&beam, DefaultOptions())
	if !got.Failed() {
		t.Fatal("expected a failed beam result")
	}
	if !strings.Contains(got.Err, "INVALID_SEQUENCING") {
		t.Errorf("error %q does not carry INVALID_SEQUENCING", got.Err)
	}
}

func TestEvaluateBeamStaticJawBackfill(t *testing.T) {
	// Jaws recorded only on the first control point apply to all of them.
	beam := testBeam(100, -10, 10, 3)
	beam.ControlPoints[0].Jaws = &rtplan.JawExtents{XMin: -2, XMax: 2, YMin: -200, YMax: 200}

	got := EvaluateBeam(&beam, DefaultOptions())
	if got.Failed() {
		t.Fatalf("unexpected error: %s", got.Err)
	}
	for _, cpr := range got.ControlPoints {
		if !almostEqual(cpr.Area, 20) {
			t.Errorf("control point %d area = %g, want 20", cpr.Index, cpr.Area)
		}
	}
}

func TestEvaluateFxGroupWeightedMean(t *testing.T) {
	group := rtplan.FxGroup{
		Number: 1,
		Beams: []rtplan.Beam{
			testBeam(100, -10, 10, 2), // score 0.5
			testBeam(200, -2, 2, 2),   // score (8+10)/20 = 0.9
		},
	}
	group.Beams[1].Number = 2

	got := EvaluateFxGroup(&group, DefaultOptions())
	want := (100*0.5 + 200*0.9) / 300
	if !almostEqual(got.Score, want) {
		t.Errorf("group score = %g, want %g", got.Score, want)
	}
	if !almostEqual(got.MU, 300) {
		t.Errorf("group MU = %g, want 300", got.MU)
	}
}

func TestEvaluateFxGroupBeamIsolation(t *testing.T) {
	group := rtplan.FxGroup{
		Number: 1,
		Beams: []rtplan.Beam{
			testBeam(100, -10, 10, 2),
			testBeam(100, -10, 10, 2),
		},
	}
	group.Beams[1].Number = 2
	group.Beams[1].ControlPoints[1].CumulativeMU = -1

	got := EvaluateFxGroup(&group, DefaultOptions())
	if got.Beams[0].Failed() {
		t.Errorf("healthy beam failed: %s", got.Beams[0].Err)
	}
	if !got.Beams[1].Failed() {
		t.Error("broken beam did not record an error")
	}
	// The failed beam is excluded from the mean entirely.
	if !almostEqual(got.Score, 0.5) {
		t.Errorf("group score = %g, want 0.5", got.Score)
	}
}

func TestEvaluateFxGroupZeroMU(t *testing.T) {
	group := rtplan.FxGroup{
		Number: 1,
		Beams:  []rtplan.Beam{testBeam(0, -10, 10, 2)},
	}

	got := EvaluateFxGroup(&group, DefaultOptions())
	if got.Score != 0 {
		t.Errorf("group score = %g, want 0 for zero MU", got.Score)
	}
}

func TestEvaluatePlan(t *testing.T) {
	plan := &rtplan.Plan{
		Name: "test plan",
		FxGroups: []rtplan.FxGroup{
			{Number: 1, Beams: []rtplan.Beam{testBeam(100, -10, 10, 2)}}, // 0.5
			{Number: 2, Beams: []rtplan.Beam{testBeam(300, -2, 2, 2)}},   // 0.9
		},
	}

	got, err := EvaluatePlan(plan, DefaultOptions())
	if err != nil {
		t.Fatalf("EvaluatePlan() error = %v", err)
	}
	want := (100*0.5 + 300*0.9) / 400
	if !almostEqual(got.Score, want) {
		t.Errorf("plan score = %g, want %g", got.Score, want)
	}
	if len(got.FxGroups) != 2 {
		t.Fatalf("got %d fraction groups, want 2", len(got.FxGroups))
	}
}

func TestEvaluatePlanRejectsBadOptions(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*Options)
	}{
		{"negative weight", func(o *Options) { o.XWeight = -1 }},
		{"both weights zero", func(o *Options) { o.XWeight = 0; o.YWeight = 0 }},
		{"zero field size", func(o *Options) { o.MaxFieldSizeX = 0 }},
	}

	plan := &rtplan.Plan{FxGroups: []rtplan.FxGroup{{Number: 1}}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.mod(&opts)
			if _, err := EvaluatePlan(plan, opts); err == nil {
				t.Error("expected an options validation error")
			}
		})
	}
}
