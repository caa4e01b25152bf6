package complexity

// PlanResult holds the evaluated scores for one plan. Results reference the
// plan model by index and number only, never by pointer, so they marshal
// cleanly and outlive the plan.
type PlanResult struct {
	Score    float64         `json:"score"` // MU-weighted mean over fraction groups
	FxGroups []FxGroupResult `json:"fx_groups"`
	Options  Options         `json:"options"`
}

// FxGroupResult is the MU-weighted mean complexity of one fraction group.
type FxGroupResult struct {
	Number int          `json:"number"`
	MU     float64      `json:"mu"`
	Score  float64      `json:"score"`
	Beams  []BeamResult `json:"beams"`
}

// BeamResult is the complexity score of one beam, or its recorded failure.
// Exactly one of Score-being-meaningful and Err is the case: a failed beam
// carries Err and a zero Score, and is excluded from group aggregation.
type BeamResult struct {
	Number   int     `json:"number"`
	Name     string  `json:"name"`
	MeterSet float64 `json:"meterset"`
	Score    float64 `json:"score"`
	Err      string  `json:"error,omitempty"`

	ControlPoints []ControlPointResult `json:"control_points,omitempty"`
}

// Failed reports whether the beam was skipped due to a validation error.
func (r *BeamResult) Failed() bool {
	return r.Err != ""
}

// ControlPointResult is the per-control-point aperture geometry and score
// contribution, kept for detail reports and the CSV writer.
type ControlPointResult struct {
	Index        int     `json:"index"`
	CumulativeMU float64 `json:"cumulative_mu"`
	MUDelta      float64 `json:"mu_delta"` // forward meterset fraction

	Area     float64 `json:"area"`
	PerimX   float64 `json:"perim_x"`
	PerimY   float64 `json:"perim_y"`
	CmpScore float64 `json:"cmp_score"` // unweighted per-CP complexity
}
