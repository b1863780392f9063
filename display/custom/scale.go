// =================================================================================
//
//			ecg-monitor - live ECG / respiration serial plotter
//
//		 ECG Monitor is a simple CLI utility for watching ECG and impedance
//	  samples stream off a serial port as live scrolling charts
//
//		 Copyright (c) 2024 Steve Cross <flip@foxhollow.cc>
//
//			Licensed under the Apache License, Version 2.0 (the "License");
//			you may not use this file except in compliance with the License.
//			You may obtain a copy of the License at
//
//			     http://www.apache.org/licenses/LICENSE-2.0
//
//			Unless required by applicable law or agreed to in writing, software
//			distributed under the License is distributed on an "AS IS" BASIS,
//			WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//			See the License for the specific language governing permissions and
//			limitations under the License.
//
// =================================================================================
package custom

import "math"

// Autoscale returns the y range for a set of values: the finite min and max
// widened by margin (a fraction of the span). A flat trace is widened around
// its value so it still has a drawable range. ok is false when there are no
// finite values at all.
func Autoscale(values []float64, margin float64) (lo float64, hi float64, ok bool) {
	lo = math.Inf(1)
	hi = math.Inf(-1)

	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}

		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
		ok = true
	}

	if !ok {
		return 0, 0, false
	}

	if hi == lo {
		pad := math.Abs(lo) * margin
		if pad == 0 {
			pad = 1
		}

		return lo - pad, hi + pad, true
	}

	pad := (hi - lo) * margin
	return lo - pad, hi + pad, true
}
