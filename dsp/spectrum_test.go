package dsp

import (
	"context"
	"math"
	"testing"
)

func TestPowerSpectrumSine(tst *testing.T) {
	// 8 cycles over 64 samples: all the power lands in one bin
	n := 64
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = math.Sin(2 * math.Pi * 8 * float64(i) / float64(n))
	}
	spectrum, err := PowerSpectrum(context.Background(), xs)
	if err != nil {
		tst.Fatal(err)
	}
	if len(spectrum) != n/2 {
		tst.Fatalf("expected %d bins, got %d", n/2, len(spectrum))
	}
	// the DC bin is dropped, so frequency 8/n lives at index 7
	peak := 0
	for i, p := range spectrum {
		if p > spectrum[peak] {
			peak = i
		}
	}
	if peak != 7 {
		tst.Errorf("power peak at bin %d, expected 7", peak)
	}
	for i, p := range spectrum {
		if i != peak && p > spectrum[peak]*1e-9 {
			tst.Errorf("leakage at bin %d: %v", i, p)
		}
	}
}

func TestPowerSpectrumDeterministic(tst *testing.T) {
	xs := []float64{1, 2, 0, 3, 1, 1, 2, 0, 1}
	a, err := PowerSpectrum(context.Background(), xs)
	if err != nil {
		tst.Fatal(err)
	}
	b, err := PowerSpectrum(context.Background(), xs)
	if err != nil {
		tst.Fatal(err)
	}
	for i := range a {
		if a[i] != b[i] {
			tst.Fatal("power spectrum is not deterministic")
		}
	}
}

func TestPowerSpectrumEmpty(tst *testing.T) {
	if _, err := PowerSpectrum(context.Background(), nil); err != ErrEmptyInput {
		tst.Error("expected ErrEmptyInput")
	}
}

func TestPowerSpectrumCancel(tst *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	xs := make([]float64, 256)
	if _, err := PowerSpectrum(ctx, xs); err != context.Canceled {
		tst.Errorf("expected context.Canceled, got %v", err)
	}
}
