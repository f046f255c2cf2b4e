package dsp

import (
	"context"
	"math"
	"testing"
)

func TestAutocorrelogramLagZeroPeak(tst *testing.T) {
	xs := []float64{3, 1, 4, 1, 5, 9, 2, 6, 5, 3, 5, 8, 9, 7}
	ac, err := Autocorrelogram(context.Background(), xs, len(xs))
	if err != nil {
		tst.Fatal(err)
	}
	if math.Abs(ac[0]-1) > 1e-12 {
		tst.Errorf("ac[0] = %v, expected 1", ac[0])
	}
	for lag := 1; lag < len(ac); lag++ {
		if math.Abs(ac[lag]) > ac[0]+1e-12 {
			tst.Errorf("|ac[%d]| = %v exceeds the lag 0 peak", lag, ac[lag])
		}
	}
}

func TestAutocorrelogramPeriodicity(tst *testing.T) {
	// period 4 signal: the lag 4 coefficient should stand out
	xs := make([]float64, 64)
	for i := range xs {
		xs[i] = float64(i % 4)
	}
	ac, err := Autocorrelogram(context.Background(), xs, 16)
	if err != nil {
		tst.Fatal(err)
	}
	if len(ac) != 16 {
		tst.Fatalf("expected 16 lags, got %d", len(ac))
	}
	if ac[4] < 0.9 {
		tst.Errorf("ac[4] = %v, expected a strong period 4 peak", ac[4])
	}
	if ac[2] > ac[4] {
		tst.Errorf("ac[2] = %v should not exceed the period peak %v", ac[2], ac[4])
	}
	peaks := Peaks(ac, 0.5)
	found := false
	for _, p := range peaks {
		if p.Lag == 4 {
			found = true
		}
	}
	if !found {
		tst.Error("expected a peak at lag 4")
	}
}

func TestAutocorrelogramConstant(tst *testing.T) {
	xs := []float64{2, 2, 2, 2, 2}
	ac, err := Autocorrelogram(context.Background(), xs, 5)
	if err != nil {
		tst.Fatal(err)
	}
	if ac[0] != 1 {
		tst.Error("lag 0 should still be 1 for a constant signal")
	}
	for lag := 1; lag < len(ac); lag++ {
		if ac[lag] != 0 {
			tst.Errorf("ac[%d] = %v, expected 0 for a constant signal", lag, ac[lag])
		}
	}
}

func TestAutocorrelogramEmpty(tst *testing.T) {
	if _, err := Autocorrelogram(context.Background(), nil, 10); err != ErrEmptyInput {
		tst.Error("expected ErrEmptyInput")
	}
}

func TestAutocorrelogramCancel(tst *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	xs := make([]float64, 1000)
	for i := range xs {
		xs[i] = float64(i % 7)
	}
	if _, err := Autocorrelogram(ctx, xs, len(xs)); err != context.Canceled {
		tst.Errorf("expected context.Canceled, got %v", err)
	}
}
