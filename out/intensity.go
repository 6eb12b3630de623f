// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import "math"

// MMI returns the Modified Mercalli Intensity from the peak ground velocity (in cm/s)
// using the relations of Wald et al. (1999):
//  MMI = 3.47 log10(PGV) + 2.35   for MMI ≥ 5
//  MMI = 2.10 log10(PGV) + 3.40   for MMI < 5
// Results are limited to [1, 10]
func MMI(pgv float64) float64 {
	if !(pgv > 0) {
		return 1
	}
	l := math.Log10(pgv)
	mmi := 3.47*l + 2.35
	if mmi < 5 {
		mmi = 2.10*l + 3.40
	}
	return math.Max(1, math.Min(10, mmi))
}
