package stats

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute_KnownSample(t *testing.T) {
	sample := Sample{2, 4, 4, 4, 5, 5, 7, 9}

	s, err := Compute(sample, 0.95)
	require.NoError(t, err)
	require.NotNil(t, s)

	assert.Equal(t, 8, s.N)
	assert.InDelta(t, 5.0, s.Mean, 1e-12)
	assert.InDelta(t, 32.0/7.0, s.Variance, 1e-12)
	assert.InDelta(t, 2.1380899, s.StdDev, 1e-6)
	assert.InDelta(t, 2.3646, s.TScore, 1e-4)
	assert.InDelta(t, 3.21, s.Interval.Lower, 0.01)
	assert.InDelta(t, 6.79, s.Interval.Upper, 0.01)
	assert.Equal(t, "95% Confidence Interval", s.Label())
}

func TestCompute_EmptySample(t *testing.T) {
	s, err := Compute(nil, 0.95)
	assert.NoError(t, err)
	assert.Nil(t, s)

	s, err = Compute(Sample{}, 0.99)
	assert.NoError(t, err)
	assert.Nil(t, s)
}

func TestCompute_SingleValue(t *testing.T) {
	s, err := Compute(Sample{42}, 0.95)
	assert.Nil(t, s)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDegenerateSample))

	var degenerate *DegenerateSampleError
	require.True(t, errors.As(err, &degenerate))
	assert.Equal(t, 1, degenerate.N)
}

func TestCompute_InvalidConfidence(t *testing.T) {
	for _, c := range []float64{0, 1, -0.5, 1.5, math.NaN()} {
		_, err := Compute(Sample{1, 2, 3}, c)
		assert.ErrorIs(t, err, ErrInvalidConfidence, "confidence %v", c)
	}
}

func TestCompute_IntervalContainsMean(t *testing.T) {
	samples := []Sample{
		{1, 2},
		{-3, 3, 9, 12.5},
		{0.001, 0.002, 0.0015, 0.0011},
		{100, 100, 100},
	}

	for _, sample := range samples {
		s, err := Compute(sample, 0.95)
		require.NoError(t, err)
		assert.True(t, s.Interval.Contains(s.Mean), "sample %v interval %+v", sample, s.Interval)
		assert.LessOrEqual(t, s.Interval.Lower, s.Mean)
		assert.GreaterOrEqual(t, s.Interval.Upper, s.Mean)
	}
}

func TestCompute_WidensWithConfidence(t *testing.T) {
	sample := Sample{12.1, 11.8, 12.6, 13.0, 12.2, 11.9}

	var prev float64
	for i, c := range Levels {
		s, err := Compute(sample, c)
		require.NoError(t, err)
		if i > 0 {
			assert.Greater(t, s.Interval.Width(), prev, "confidence %v", c)
		}
		prev = s.Interval.Width()
	}
}

func TestCompute_NarrowsWithSampleSize(t *testing.T) {
	// Repeating a fixed pattern keeps the spread roughly constant while n grows.
	pattern := []float64{1, 3, 5, 7, 9}

	var widths []float64
	for _, reps := range []int{1, 4, 16, 64, 256} {
		var sample Sample
		for i := 0; i < reps; i++ {
			sample = append(sample, pattern...)
		}
		s, err := Compute(sample, 0.95)
		require.NoError(t, err)
		widths = append(widths, s.Interval.Width())
	}

	for i := 1; i < len(widths); i++ {
		assert.Less(t, widths[i], widths[i-1])
	}
	assert.Less(t, widths[len(widths)-1], 0.5)
}

func TestCompute_SymmetricBounds(t *testing.T) {
	s, err := Compute(Sample{3.3, 7.1, 2.9, 4.4, 8.8, 1.2, 6.0}, 0.90)
	require.NoError(t, err)

	assert.Equal(t, s.Mean-s.MarginOfError, s.Interval.Lower)
	assert.Equal(t, s.Mean+s.MarginOfError, s.Interval.Upper)
	assert.InDelta(t, s.Mean-s.Interval.Lower, s.Interval.Upper-s.Mean, 1e-12)
}

func TestCompute_ConstantSample(t *testing.T) {
	s, err := Compute(Sample{4, 4, 4, 4}, 0.99)
	require.NoError(t, err)

	assert.Equal(t, 4.0, s.Mean)
	assert.Equal(t, 0.0, s.Variance)
	assert.Equal(t, 0.0, s.MarginOfError)
	assert.Equal(t, Interval{Lower: 4, Upper: 4}, s.Interval)
}

func TestCompute_NonFinitePropagates(t *testing.T) {
	s, err := Compute(Sample{1, math.NaN(), 3}, 0.95)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(s.Mean))
	assert.True(t, math.IsNaN(s.Interval.Lower))

	s, err = Compute(Sample{1, math.Inf(1), 3}, 0.95)
	require.NoError(t, err)
	assert.True(t, math.IsInf(s.Mean, 1))
}

func TestCompute_DoesNotModifySample(t *testing.T) {
	sample := Sample{9, 1, 5, 3}
	orig := append(Sample(nil), sample...)

	_, err := Compute(sample, 0.95)
	require.NoError(t, err)
	assert.Equal(t, orig, sample)
}

func TestTScore(t *testing.T) {
	tests := []struct {
		df         int
		confidence float64
		want       float64
	}{
		{1, 0.95, 12.706},
		{7, 0.95, 2.365},
		{10, 0.90, 1.812},
		{20, 0.99, 2.845},
		{30, 0.95, 2.042},
	}

	for _, tt := range tests {
		got := TScore(tt.df, tt.confidence)
		assert.InDelta(t, tt.want, got, 1e-3, "df=%d confidence=%v", tt.df, tt.confidence)
	}
}
