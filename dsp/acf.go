package dsp

import (
	"context"
	"errors"
)

// ErrEmptyInput is returned when a statistic is requested over zero
// samples; the result would be undefined, not zero.
var ErrEmptyInput = errors.New("no samples to analyse")

// Autocorrelogram computes normalized autocorrelation coefficients
// for lags 0..maxLag-1 (at most len(xs) values). Lag 0 normalizes to
// 1 by convention. The context is checked between lags so a batch run
// over a genome-scale sequence can be aborted.
func Autocorrelogram(ctx context.Context, xs []float64, maxLag int) ([]float64, error) {
	n := len(xs)
	if n == 0 {
		return nil, ErrEmptyInput
	}
	if maxLag > n || maxLag <= 0 {
		maxLag = n
	}

	mean := 0.0
	for _, x := range xs {
		mean += x
	}
	mean /= float64(n)

	denom := 0.0
	for _, x := range xs {
		denom += (x - mean) * (x - mean)
	}

	ac := make([]float64, maxLag)
	ac[0] = 1
	for lag := 1; lag < maxLag; lag++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		if denom == 0 {
			// constant signal, no correlation structure beyond lag 0
			continue
		}
		sum := 0.0
		for i := 0; i+lag < n; i++ {
			sum += (xs[i] - mean) * (xs[i+lag] - mean)
		}
		ac[lag] = sum / denom
	}
	return ac, nil
}

// Peak is a lag where the autocorrelation exceeds a threshold,
// a candidate repeat length.
type Peak struct {
	Lag   int
	Value float64
}

// Peaks finds lags (excluding 0) where the autocorrelation exceeds
// the limit.
func Peaks(ac []float64, limit float64) []Peak {
	peaks := make([]Peak, 0)
	for lag := 1; lag < len(ac); lag++ {
		if ac[lag] > limit {
			peaks = append(peaks, Peak{Lag: lag, Value: ac[lag]})
		}
	}
	return peaks
}
