package stats

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Levels are the confidence levels offered by the interactive form.
var Levels = []float64{0.90, 0.95, 0.99}

// DefaultConfidence is used when no level is configured.
const DefaultConfidence = 0.95

// ValidateConfidence returns ErrInvalidConfidence unless 0 < c < 1.
func ValidateConfidence(c float64) error {
	if !(c > 0 && c < 1) {
		return fmt.Errorf("%w: got %v", ErrInvalidConfidence, c)
	}
	return nil
}

// ParseConfidence accepts a fraction ("0.95") or a percentage ("95", "95%").
// Values greater than or equal to 1 are read as percentages.
func ParseConfidence(s string) (float64, error) {
	raw := strings.TrimSpace(s)
	percent := strings.HasSuffix(raw, "%")
	raw = strings.TrimSpace(strings.TrimSuffix(raw, "%"))

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidConfidence, s)
	}
	if percent || v >= 1 {
		v /= 100
	}
	if err := ValidateConfidence(v); err != nil {
		return 0, err
	}
	return v, nil
}

// FormatPercent renders a level as a percentage without rounding to a whole
// number, e.g. 0.95 -> "95%" and 0.999 -> "99.9%". Float noise below six
// decimal places is dropped.
func FormatPercent(c float64) string {
	pct := math.Round(c*100*1e6) / 1e6
	return strconv.FormatFloat(pct, 'f', -1, 64) + "%"
}
