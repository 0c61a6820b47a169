// Package stats computes descriptive statistics and a Student's t confidence
// interval for the mean of a one-dimensional sample.
package stats

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Sample is an ordered sequence of observations. It may be empty; duplicates
// and non-finite values are kept as-is.
type Sample = []float64

var (
	// ErrDegenerateSample is matched by DegenerateSampleError via errors.Is.
	ErrDegenerateSample = errors.New("sample variance is undefined for fewer than two values")

	// ErrInvalidConfidence is returned when the confidence level is not in (0, 1).
	ErrInvalidConfidence = errors.New("confidence level must be between 0 and 1 (exclusive)")
)

// DegenerateSampleError reports a sample too small for a variance estimate.
type DegenerateSampleError struct {
	N int
}

func (e *DegenerateSampleError) Error() string {
	return fmt.Sprintf("degenerate sample (n=%d): %v", e.N, ErrDegenerateSample)
}

func (e *DegenerateSampleError) Unwrap() error {
	return ErrDegenerateSample
}

// Interval is a closed range [Lower, Upper].
type Interval struct {
	Lower float64 `json:"lower" toon:"lower"`
	Upper float64 `json:"upper" toon:"upper"`
}

// Width returns Upper - Lower.
func (i Interval) Width() float64 {
	return i.Upper - i.Lower
}

// Contains reports whether v lies inside the interval.
func (i Interval) Contains(v float64) bool {
	return v >= i.Lower && v <= i.Upper
}

// Summary is the result of Compute. Variance uses the n-1 denominator.
type Summary struct {
	N             int      `json:"n" toon:"n"`
	Confidence    float64  `json:"confidence" toon:"confidence"`
	Mean          float64  `json:"mean" toon:"mean"`
	Variance      float64  `json:"variance" toon:"variance"`
	StdDev        float64  `json:"std_dev" toon:"std_dev"`
	StdErr        float64  `json:"std_err" toon:"std_err"`
	TScore        float64  `json:"t_score" toon:"t_score"`
	MarginOfError float64  `json:"margin_of_error" toon:"margin_of_error"`
	Interval      Interval `json:"confidence_interval" toon:"confidence_interval"`
}

// Label returns the display key for the interval, e.g. "95% Confidence Interval".
func (s *Summary) Label() string {
	return FormatPercent(s.Confidence) + " Confidence Interval"
}

// Compute returns the mean, sample variance, standard deviation and a
// two-sided confidence interval for the mean of sample.
//
// An empty sample yields (nil, nil): there is nothing to summarize, which is
// not an error. A single observation yields a *DegenerateSampleError.
// Non-finite values are not rejected and propagate into the result.
func Compute(sample Sample, confidence float64) (*Summary, error) {
	n := len(sample)
	if n == 0 {
		return nil, nil
	}
	if err := ValidateConfidence(confidence); err != nil {
		return nil, err
	}
	if n < 2 {
		return nil, &DegenerateSampleError{N: n}
	}

	mean := stat.Mean(sample, nil)
	variance := stat.Variance(sample, nil)
	stddev := math.Sqrt(variance)
	stderr := stddev / math.Sqrt(float64(n))

	t := TScore(n-1, confidence)
	margin := t * stderr

	return &Summary{
		N:             n,
		Confidence:    confidence,
		Mean:          mean,
		Variance:      variance,
		StdDev:        stddev,
		StdErr:        stderr,
		TScore:        t,
		MarginOfError: margin,
		Interval: Interval{
			Lower: mean - margin,
			Upper: mean + margin,
		},
	}, nil
}

// TScore returns the two-sided critical value of Student's t distribution
// with df degrees of freedom at the given confidence level.
func TScore(df int, confidence float64) float64 {
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(df)}
	return dist.Quantile((1 + confidence) / 2)
}
