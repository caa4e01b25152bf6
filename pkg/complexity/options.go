package complexity

import (
	"fmt"

	apperrors "github.com/fieldshape/mlca/pkg/errors"
)

// Default scoring parameters. Weights of 1.0 score both axes equally; the
// 400 mm field bounds cover the largest common linac field.
const (
	DefaultXWeight      = 1.0
	DefaultYWeight      = 1.0
	DefaultMaxFieldSize = 400.0
)

// Options are the tunable parameters of the complexity score. The zero value
// is not usable; start from DefaultOptions.
type Options struct {
	// XWeight and YWeight scale the per-axis boundary path lengths in the
	// numerator of the score.
	XWeight float64 `json:"x_weight" toml:"x_weight"`
	YWeight float64 `json:"y_weight" toml:"y_weight"`

	// MaxFieldSizeX and MaxFieldSizeY bound the aperture in mm. Leaf gaps
	// are clipped to the centered rectangle of this size, and plans missing
	// jaw positions fall back to jaws at +/- half these extents.
	MaxFieldSizeX float64 `json:"max_field_size_x" toml:"max_field_size_x"`
	MaxFieldSizeY float64 `json:"max_field_size_y" toml:"max_field_size_y"`
}

// DefaultOptions returns the standard scoring parameters.
func DefaultOptions() Options {
	return Options{
		XWeight:       DefaultXWeight,
		YWeight:       DefaultYWeight,
		MaxFieldSizeX: DefaultMaxFieldSize,
		MaxFieldSizeY: DefaultMaxFieldSize,
	}
}

// Validate rejects non-finite or out-of-range parameters before any plan is
// evaluated, so workers never run with a half-configured scorer.
func (o Options) Validate() error {
	if o.XWeight < 0 || o.YWeight < 0 {
		return apperrors.New(apperrors.ErrCodeInvalidOptions,
			"weights must be >= 0, got xw=%g yw=%g", o.XWeight, o.YWeight)
	}
	if o.XWeight == 0 && o.YWeight == 0 {
		return apperrors.New(apperrors.ErrCodeInvalidOptions, "at least one weight must be > 0")
	}
	if o.MaxFieldSizeX <= 0 || o.MaxFieldSizeY <= 0 {
		return apperrors.New(apperrors.ErrCodeInvalidOptions,
			"max field size must be > 0, got x=%g y=%g", o.MaxFieldSizeX, o.MaxFieldSizeY)
	}
	return nil
}

// String renders the options in the compact form used in log lines and
// cache keys.
func (o Options) String() string {
	return fmt.Sprintf("xw=%g yw=%g xs=%g ys=%g",
		o.XWeight, o.YWeight, o.MaxFieldSizeX, o.MaxFieldSizeY)
}
