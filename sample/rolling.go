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

// RollingBuffer is a fixed capacity FIFO of float64 values. Appending to a
// full buffer evicts the oldest value.
type RollingBuffer struct {
	values []float64
	head   int
	length int
}

func NewRollingBuffer(capacity int) *RollingBuffer {
	if capacity <= 0 {
		capacity = 1
	}

	return &RollingBuffer{
		values: make([]float64, capacity),
	}
}

// Append adds a value at the tail, dropping the head when full.
func (b *RollingBuffer) Append(value float64) {
	capacity := len(b.values)

	if b.length < capacity {
		b.values[(b.head+b.length)%capacity] = value
		b.length++
		return
	}

	b.values[b.head] = value
	b.head = (b.head + 1) % capacity
}

// Values returns a copy of the buffer contents, oldest first.
func (b *RollingBuffer) Values() []float64 {
	out := make([]float64, b.length)

	n := copy(out, b.values[b.head:min(b.head+b.length, len(b.values))])
	copy(out[n:], b.values[:b.length-n])

	return out
}

func (b *RollingBuffer) Len() int {
	return b.length
}

func (b *RollingBuffer) Cap() int {
	return len(b.values)
}
