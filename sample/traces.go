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
package sample

import "ecg-monitor/model"

// Traces holds the index aligned ECG and impedance buffers. Both always have
// the same length since they are only ever appended to together.
type Traces struct {
	ecg  *RollingBuffer
	resp *RollingBuffer
}

func NewTraces(capacity int) *Traces {
	return &Traces{
		ecg:  NewRollingBuffer(capacity),
		resp: NewRollingBuffer(capacity),
	}
}

func (t *Traces) Append(s model.Sample) {
	t.ecg.Append(s.ECG)
	t.resp.Append(s.Resp)
}

func (t *Traces) ECG() []float64 {
	return t.ecg.Values()
}

func (t *Traces) Resp() []float64 {
	return t.resp.Values()
}

func (t *Traces) Len() int {
	return t.ecg.Len()
}

func (t *Traces) Cap() int {
	return t.ecg.Cap()
}
