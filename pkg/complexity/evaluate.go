package complexity

import (
	"github.com/fieldshape/mlca/pkg/rtplan"
)

// EvaluateControlPoint scores the aperture at one control point. The score
// is (xw*Px + yw*Py) / area; a degenerate aperture with zero area scores
// zero rather than failing. muDelta is the forward meterset fraction owned
// by this control point (zero for the last one).
func EvaluateControlPoint(cp *rtplan.ControlPoint, beam *rtplan.Beam, jaws rtplan.JawExtents, muDelta float64, opts Options) ControlPointResult {
	ap := BuildAperture(cp, beam, jaws, opts)
	area := ap.Area()
	px, py := ap.PathLengths()

	score := 0.0
	if area > 0 {
		score = (opts.XWeight*px + opts.YWeight*py) / area
	}

	return ControlPointResult{
		Index:        cp.Index,
		CumulativeMU: cp.CumulativeMU,
		MUDelta:      muDelta,
		Area:         area,
		PerimX:       px,
		PerimY:       py,
		CmpScore:     score,
	}
}

// EvaluateBeam scores one beam: the sum over control points of each point's
// forward meterset fraction times its aperture complexity. A beam that fails
// validation records the error and scores nothing; a beam with zero meterset
// scores zero. The returned result always carries the per-control-point
// detail rows for reporting.
func EvaluateBeam(beam *rtplan.Beam, opts Options) BeamResult {
	res := BeamResult{
		Number:   beam.Number,
		Name:     beam.Name,
		MeterSet: beam.MeterSet,
	}

	if err := beam.Validate(); err != nil {
		res.Err = err.Error()
		return res
	}

	jaws := resolveJaws(beam, opts)
	n := len(beam.ControlPoints)
	res.ControlPoints = make([]ControlPointResult, 0, n)

	total := 0.0
	for i := range beam.ControlPoints {
		cp := &beam.ControlPoints[i]
		delta := 0.0
		if i+1 < n {
			delta = beam.ControlPoints[i+1].CumulativeMU - cp.CumulativeMU
			if delta < 0 {
				delta = 0
			}
		}
		cpr := EvaluateControlPoint(cp, beam, jaws[i], delta, opts)
		total += delta * cpr.CmpScore
		res.ControlPoints = append(res.ControlPoints, cpr)
	}

	if beam.MeterSet > 0 {
		res.Score = total
	}
	return res
}

// resolveJaws returns the effective jaw extents for every control point.
// Points that record their own jaws use them; points without inherit from
// the first control point, matching plans that record static jaws once.
// Beams with no recorded jaws at all fall back to the maximum field.
func resolveJaws(beam *rtplan.Beam, opts Options) []rtplan.JawExtents {
	fallback := rtplan.JawExtents{
		XMin: -opts.MaxFieldSizeX / 2, XMax: opts.MaxFieldSizeX / 2,
		YMin: -opts.MaxFieldSizeY / 2, YMax: opts.MaxFieldSizeY / 2,
	}
	if len(beam.ControlPoints) > 0 && beam.ControlPoints[0].Jaws != nil {
		fallback = *beam.ControlPoints[0].Jaws
	}

	jaws := make([]rtplan.JawExtents, len(beam.ControlPoints))
	for i := range beam.ControlPoints {
		if j := beam.ControlPoints[i].Jaws; j != nil {
			jaws[i] = *j
		} else {
			jaws[i] = fallback
		}
	}
	return jaws
}

// EvaluateFxGroup scores one fraction group as the meterset-weighted mean of
// its beam scores. Failed beams keep their error results but are excluded
// from the mean; a group whose scorable beams deliver no meterset scores
// zero.
func EvaluateFxGroup(group *rtplan.FxGroup, opts Options) FxGroupResult {
	res := FxGroupResult{
		Number: group.Number,
		MU:     group.MU(),
		Beams:  make([]BeamResult, 0, len(group.Beams)),
	}

	weighted := 0.0
	totalMU := 0.0
	for i := range group.Beams {
		br := EvaluateBeam(&group.Beams[i], opts)
		if !br.Failed() {
			weighted += br.MeterSet * br.Score
			totalMU += br.MeterSet
		}
		res.Beams = append(res.Beams, br)
	}

	if totalMU > 0 {
		res.Score = weighted / totalMU
	}
	return res
}

// EvaluatePlan scores every fraction group of the plan and aggregates them
// into a meterset-weighted plan score.
func EvaluatePlan(plan *rtplan.Plan, opts Options) (*PlanResult, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	res := &PlanResult{
		Options:  opts,
		FxGroups: make([]FxGroupResult, 0, len(plan.FxGroups)),
	}

	weighted := 0.0
	totalMU := 0.0
	for i := range plan.FxGroups {
		gr := EvaluateFxGroup(&plan.FxGroups[i], opts)
		weighted += gr.MU * gr.Score
		totalMU += gr.MU
		res.FxGroups = append(res.FxGroups, gr)
	}

	if totalMU > 0 {
		res.Score = weighted / totalMU
	}
	return res, nil
}
