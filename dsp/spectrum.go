package dsp

import (
	"context"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

// PowerSpectrum computes the power spectrum of a real signal:
// magnitude-squared DFT coefficients normalized by the sequence
// length. The DC bin is dropped, so bin i corresponds to frequency
// (i+1)/n cycles per symbol up to the Nyquist frequency.
func PowerSpectrum(ctx context.Context, xs []float64) ([]float64, error) {
	n := len(xs)
	if n == 0 {
		return nil, ErrEmptyInput
	}
	fft := fourier.NewFFT(n)
	coeff := fft.Coefficients(nil, xs)

	spectrum := make([]float64, 0, len(coeff)-1)
	for _, c := range coeff[1:] {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		m := cmplx.Abs(c)
		spectrum = append(spectrum, m*m/float64(n))
	}
	return spectrum, nil
}
