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
package display

import (
	"log/slog"
)

type UI interface {
	Initialize()
	Start()
	Shutdown()
	IsShutdown() bool
	WaitForShutdown()
	SetStatus(status Status)
	SetPortName(value string)
	SetBaudRate(baud int)
	SetDuration(duration float64)
	SetSampleCount(count uint64)
	SetSampleRate(rate float64)
	SetBufferUtilization(percent int)
	IncrementErrorCount()
	UpdateTraces(ecg []float64, resp []float64)
	WriteLevelLog(level slog.Level, message string)
}
