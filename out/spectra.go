// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"math"
	"math/cmplx"

	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/dsp/fourier"
)

// FourierAmplitude computes the amplitude of the Fourier transform of vals sampled at dt.
// Frequencies go from 0 to the Nyquist frequency
func FourierAmplitude(vals []float64, dt float64) (freq, amp []float64, err error) {
	n := len(vals)
	if n < 2 {
		return nil, nil, chk.Err("at least two samples are required to compute Fourier amplitudes. n = %d is invalid", n)
	}
	if !(dt > 0) {
		return nil, nil, chk.Err("time step must be positive. dt = %g is invalid", dt)
	}
	fft := fourier.NewFFT(n)
	coef := fft.Coefficients(nil, vals)
	freq = make([]float64, len(coef))
	amp = make([]float64, len(coef))
	for i, c := range coef {
		freq[i] = fft.Freq(i) / dt
		amp[i] = cmplx.Abs(c) * dt
	}
	return
}

// KonnoOhmachi smooths spectral amplitudes with the Konno-Ohmachi window
//  W(f, fc) = [sin(b log10(f/fc)) / (b log10(f/fc))]⁴
// b is the bandwidth coefficient; e.g. 40. The zero frequency is left unchanged
func KonnoOhmachi(freq, amp []float64, b float64) (res []float64) {
	res = make([]float64, len(amp))
	for i, fc := range freq {
		if fc <= 0 {
			res[i] = amp[i]
			continue
		}
		var sum, wsum float64
		for j, f := range freq {
			if f <= 0 {
				continue
			}
			w := 1.0
			if j != i {
				x := b * math.Log10(f/fc)
				if math.Abs(x) < 1e-12 {
					w = 1
				} else {
					w = math.Pow(math.Sin(x)/x, 4)
				}
			}
			sum += w * amp[j]
			wsum += w
		}
		res[i] = sum / wsum
	}
	return
}

// Amplification computes the ratio between the Fourier amplitudes of surf and base, both sampled at dt.
//  b -- Konno-Ohmachi bandwidth coefficient; zero means no smoothing
//  Note: frequencies where the base amplitude is negligible get a zero ratio
func Amplification(base, surf []float64, dt, b float64) (freq, ratio []float64, err error) {
	if len(base) != len(surf) {
		return nil, nil, chk.Err("base and surface series must have the same length. %d != %d", len(base), len(surf))
	}
	freq, ab, err := FourierAmplitude(base, dt)
	if err != nil {
		return
	}
	_, as, err := FourierAmplitude(surf, dt)
	if err != nil {
		return
	}
	if b > 0 {
		ab = KonnoOhmachi(freq, ab, b)
		as = KonnoOhmachi(freq, as, b)
	}
	var amax float64
	for _, a := range ab {
		amax = math.Max(amax, a)
	}
	ratio = make([]float64, len(freq))
	for i := range freq {
		if ab[i] > 1e-10*amax {
			ratio[i] = as[i] / ab[i]
		}
	}
	return
}

// PeakRatio returns the frequency and value of the largest ratio with frequency in [fmin, fmax]
func PeakRatio(freq, ratio []float64, fmin, fmax float64) (fpeak, rpeak float64) {
	for i, f := range freq {
		if f < fmin || f > fmax {
			continue
		}
		if ratio[i] > rpeak {
			fpeak, rpeak = f, ratio[i]
		}
	}
	return
}
