package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/fieldshape/mlca/pkg/buildinfo"
	"github.com/fieldshape/mlca/pkg/complexity"
	"github.com/fieldshape/mlca/pkg/rtplan"
)

// Report is the result of one analysis run.
type Report struct {
	RunID       string             `json:"run_id" bson:"run_id"`
	GeneratedAt time.Time          `json:"generated_at" bson:"generated_at"`
	Version     string             `json:"version" bson:"version"`
	Options     complexity.Options `json:"options" bson:"options"`

	Plans   []PlanReport  `json:"plans" bson:"plans"`
	Skipped []SkippedFile `json:"skipped,omitempty" bson:"skipped,omitempty"`
}

// SkippedFile records an input that produced no scores and why.
type SkippedFile struct {
	File   string       `json:"file" bson:"file"`
	Class  rtplan.Class `json:"class" bson:"class"`
	Reason string       `json:"reason" bson:"reason"`
}

// PlanReport is the scored summary of one plan file.
type PlanReport struct {
	File        string `json:"file" bson:"file"`
	PatientName string `json:"patient_name" bson:"patient_name"`
	PatientID   string `json:"patient_id" bson:"patient_id"`
	StudyUID    string `json:"study_uid" bson:"study_uid"`
	SOPUID      string `json:"sop_uid" bson:"sop_uid"`
	TPS         string `json:"tps" bson:"tps"`
	PlanName    string `json:"plan_name" bson:"plan_name"`

	Score  float64      `json:"score" bson:"score"`
	Groups []FxGroupRow `json:"fx_groups" bson:"fx_groups"`

	// Result keeps the full per-beam and per-control-point detail for JSON
	// output and the API; the CSV writer only consumes Groups.
	Result *complexity.PlanResult `json:"result,omitempty" bson:"result,omitempty"`
}

// FxGroupRow is one CSV row: the per-fraction-group summary.
type FxGroupRow struct {
	FxGroup       int     `json:"fx_group" bson:"fx_group"`
	Fractions     int     `json:"fractions" bson:"fractions"`
	PlanMU        float64 `json:"plan_mu" bson:"plan_mu"`
	BeamCount     int     `json:"beam_count" bson:"beam_count"`
	ControlPoints int     `json:"control_points" bson:"control_points"`
	Score         float64 `json:"score" bson:"score"`
	FailedBeams   int     `json:"failed_beams,omitempty" bson:"failed_beams,omitempty"`
}

// New starts an empty report for one run, stamping it with a fresh run ID,
// the build version, and the scoring options in effect.
func New(opts complexity.Options) *Report {
	return &Report{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Version:     buildinfo.Version,
		Options:     opts,
	}
}

// AddPlan summarizes one evaluated plan into the report.
func (r *Report) AddPlan(plan *rtplan.Plan, result *complexity.PlanResult) {
	r.Plans = append(r.Plans, BuildPlanReport(plan, result))
}

// Append adds an already-built plan report, preserving its scores. Used by
// the batch runner when a plan report comes out of the cache.
func (r *Report) Append(pr PlanReport) {
	r.Plans = append(r.Plans, pr)
}

// AddSkipped records a file that was classified out of the run.
func (r *Report) AddSkipped(file string, class rtplan.Class, err error) {
	s := SkippedFile{File: file, Class: class}
	if err != nil {
		s.Reason = err.Error()
	}
	r.Skipped = append(r.Skipped, s)
}

// BuildPlanReport pairs a plan's identity with its evaluated scores. The
// plan and result must describe the same file, with fraction groups in the
// same order.
func BuildPlanReport(plan *rtplan.Plan, result *complexity.PlanResult) PlanReport {
	pr := PlanReport{
		File:        plan.File,
		PatientName: plan.PatientName,
		PatientID:   plan.PatientID,
		StudyUID:    plan.StudyUID,
		SOPUID:      plan.SOPUID,
		TPS:         plan.TPS,
		PlanName:    plan.Name,
		Score:       result.Score,
		Result:      result,
	}

	for i := range result.FxGroups {
		gr := &result.FxGroups[i]
		row := FxGroupRow{
			FxGroup:   gr.Number,
			PlanMU:    gr.MU,
			BeamCount: len(gr.Beams),
			Score:     gr.Score,
		}
		if i < len(plan.FxGroups) {
			row.Fractions = plan.FxGroups[i].Fractions
			row.ControlPoints = plan.FxGroups[i].ControlPointCount()
		}
		for j := range gr.Beams {
			if gr.Beams[j].Failed() {
				row.FailedBeams++
			}
		}
		pr.Groups = append(pr.Groups, row)
	}
	return pr
}
