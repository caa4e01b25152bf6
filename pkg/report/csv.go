package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	apperrors "github.com/fieldshape/mlca/pkg/errors"
)

// csvHeader is the fixed column set, one row per fraction group.
var csvHeader = []string{
	"Patient Name",
	"Patient MRN",
	"Study Instance UID",
	"SOP Instance UID",
	"TPS",
	"Plan name",
	"# of Fx Group(s)",
	"Fx Group #",
	"Fractions",
	"Plan MUs",
	"Beam Count(s)",
	"Control Point(s)",
	"Complexity Score(s)",
	"File Name",
}

// WriteCSV renders the report as CSV, one row per fraction group of each
// plan. Skipped files do not appear; they belong in logs and JSON output.
func WriteCSV(w io.Writer, r *Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternal, err, "write csv header")
	}

	for i := range r.Plans {
		p := &r.Plans[i]
		for _, g := range p.Groups {
			row := []string{
				p.PatientName,
				p.PatientID,
				p.StudyUID,
				p.SOPUID,
				p.TPS,
				p.PlanName,
				strconv.Itoa(len(p.Groups)),
				strconv.Itoa(g.FxGroup),
				strconv.Itoa(g.Fractions),
				fmt.Sprintf("%0.1f", g.PlanMU),
				strconv.Itoa(g.BeamCount),
				strconv.Itoa(g.ControlPoints),
				fmt.Sprintf("%0.3f", g.Score),
				p.File,
			}
			if err := cw.Write(row); err != nil {
				return apperrors.Wrap(apperrors.ErrCodeInternal, err, "write csv row")
			}
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternal, err, "flush csv")
	}
	return nil
}
