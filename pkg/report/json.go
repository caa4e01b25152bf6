package report

import (
	"io"

	"github.com/goccy/go-json"

	apperrors "github.com/fieldshape/mlca/pkg/errors"
)

// WriteJSON renders the full report, including per-beam and per-control-point
// detail, as indented JSON.
func WriteJSON(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternal, err, "encode report")
	}
	return nil
}

// ReadJSON decodes a report previously written with WriteJSON.
func ReadJSON(r io.Reader) (*Report, error) {
	var rep Report
	if err := json.NewDecoder(r).Decode(&rep); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeUnreadableFile, err, "decode report")
	}
	return &rep, nil
}
