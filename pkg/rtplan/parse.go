package rtplan

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/goccy/go-json"

	apperrors "github.com/fieldshape/mlca/pkg/errors"
)

// ModalityRTPlan is the modality tag identifying a usable plan export.
const ModalityRTPlan = "RTPLAN"

// planFile is the JSON plan-export interchange format. It carries the RT
// Plan attributes the complexity core consumes; producing it from DICOM is
// an exporter's responsibility, not this package's.
type planFile struct {
	Modality     string `json:"modality"`
	PatientName  string `json:"patient_name"`
	PatientID    string `json:"patient_id"`
	StudyUID     string `json:"study_uid"`
	SOPUID       string `json:"sop_uid"`
	Manufacturer string `json:"manufacturer"`
	Model        string `json:"model"`
	PlanName     string `json:"plan_name"`

	FractionGroups []fxGroupFile `json:"fraction_groups"`
	Beams          []beamFile    `json:"beams"`
}

type fxGroupFile struct {
	Number          int              `json:"number"`
	Fractions       int              `json:"fractions"`
	ReferencedBeams []referencedBeam `json:"referenced_beams"`
}

type referencedBeam struct {
	BeamNumber int     `json:"beam_number"`
	MeterSet   float64 `json:"meterset"`
}

type beamFile struct {
	Number         int                `json:"number"`
	Name           string             `json:"name"`
	Description    string             `json:"description"`
	MLCOrientation string             `json:"mlc_orientation"`
	LeafBoundaries []float64          `json:"leaf_boundaries"`
	ControlPoints  []controlPointFile `json:"control_points"`
}

type controlPointFile struct {
	CumulativeWeight float64   `json:"cumulative_weight"`
	Gantry           float64   `json:"gantry"`
	Collimator       float64   `json:"collimator"`
	Couch            float64   `json:"couch"`
	BankA            []float64 `json:"bank_a"`
	BankB            []float64 `json:"bank_b"`
	JawX             []float64 `json:"jaw_x,omitempty"`
	JawY             []float64 `json:"jaw_y,omitempty"`
}

// ParseFile reads and parses a plan export from disk.
func ParseFile(path string) (*Plan, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, apperrors.Wrap(apperrors.ErrCodeUnreadableFile, err, "open %s", path)
	}
	defer f.Close()

	plan, err := Parse(f)
	if err != nil {
		return nil, err
	}
	plan.File = path
	return plan, nil
}

// Parse decodes a plan export from r and builds the immutable Plan model.
// Files whose modality is not RTPLAN are rejected with WRONG_MODALITY;
// undecodable input is rejected with UNREADABLE_FILE. Beam-level geometry
// invariants are NOT checked here; they are enforced per beam during
// evaluation so one malformed beam cannot poison its siblings.
func Parse(r io.Reader) (*Plan, error) {
	var pf planFile
	if err := json.NewDecoder(r).Decode(&pf); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeUnreadableFile, err, "decode plan")
	}
	if !strings.EqualFold(pf.Modality, ModalityRTPlan) {
		return nil, apperrors.New(apperrors.ErrCodeWrongModality,
			"modality %q, want %s", pf.Modality, ModalityRTPlan)
	}
	if len(pf.FractionGroups) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "plan has no fraction groups")
	}

	plan := &Plan{
		PatientName: pf.PatientName,
		PatientID:   pf.PatientID,
		StudyUID:    pf.StudyUID,
		SOPUID:      pf.SOPUID,
		TPS:         strings.TrimSpace(pf.Manufacturer + " " + pf.Model),
		Name:        pf.PlanName,
	}

	beamsByNumber := make(map[int]*beamFile, len(pf.Beams))
	for i := range pf.Beams {
		beamsByNumber[pf.Beams[i].Number] = &pf.Beams[i]
	}

	for _, fg := range pf.FractionGroups {
		group := FxGroup{Number: fg.Number, Fractions: fg.Fractions}
		for _, ref := range fg.ReferencedBeams {
			bf, ok := beamsByNumber[ref.BeamNumber]
			if !ok {
				return nil, apperrors.New(apperrors.ErrCodeInvalidInput,
					"fraction group %d references missing beam %d", fg.Number, ref.BeamNumber)
			}
			group.Beams = append(group.Beams, buildBeam(bf, ref.MeterSet))
		}
		plan.FxGroups = append(plan.FxGroups, group)
	}

	return plan, nil
}

// buildBeam converts the file representation of one beam into the model.
// The beam name falls back from description to name to "Unknown", matching
// the priority order of the RT Plan attributes.
func buildBeam(bf *beamFile, meterSet float64) Beam {
	name := bf.Description
	if name == "" {
		name = bf.Name
	}
	if name == "" {
		name = "Unknown"
	}

	orientation := MLCX
	if strings.EqualFold(bf.MLCOrientation, string(MLCY)) {
		orientation = MLCY
	}

	beam := Beam{
		Number:         bf.Number,
		Name:           name,
		MeterSet:       meterSet,
		LeafBoundaries: bf.LeafBoundaries,
		Orientation:    orientation,
	}

	for i, cpf := range bf.ControlPoints {
		cp := ControlPoint{
			Index:           i,
			CumulativeMU:    cpf.CumulativeWeight,
			GantryAngle:     cpf.Gantry,
			CollimatorAngle: cpf.Collimator,
			CouchAngle:      cpf.Couch,
			BankA:           cpf.BankA,
			BankB:           cpf.BankB,
		}
		if jaws := jawExtents(cpf.JawX, cpf.JawY); jaws != nil {
			cp.Jaws = jaws
		}
		beam.ControlPoints = append(beam.ControlPoints, cp)
	}

	return beam
}

// jawExtents converts the recorded [min, max] jaw pairs into extents.
// A control point with neither axis returns nil and inherits jaws during
// evaluation; an axis recorded on its own leaves the other unbounded, to be
// limited by the maximum field during aperture construction. Values are
// normalized so min <= max.
func jawExtents(jawX, jawY []float64) *JawExtents {
	if len(jawX) != 2 && len(jawY) != 2 {
		return nil
	}
	j := &JawExtents{
		XMin: math.Inf(-1), XMax: math.Inf(1),
		YMin: math.Inf(-1), YMax: math.Inf(1),
	}
	if len(jawX) == 2 {
		j.XMin, j.XMax = min(jawX[0], jawX[1]), max(jawX[0], jawX[1])
	}
	if len(jawY) == 2 {
		j.YMin, j.YMax = min(jawY[0], jawY[1]), max(jawY[0], jawY[1])
	}
	return j
}

// String implements fmt.Stringer with a short identity for log lines.
func (p *Plan) String() string {
	return fmt.Sprintf("plan %q (patient %s, %d fraction groups)", p.Name, p.PatientID, len(p.FxGroups))
}
