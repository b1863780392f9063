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

type JsonStatus struct {
	MessageType string `json:"message_type"`

	Status      string  `json:"status"`
	Port        string  `json:"port"`
	BaudRate    int     `json:"baud_rate"`
	Duration    float64 `json:"duration"`
	SampleCount uint64  `json:"sample_count"`
	SampleRate  float64 `json:"sample_rate"`
	ErrorCount  int     `json:"error_count"`

	BufferUsedPct int `json:"buffer_used_pct"`
}

type JsonLog struct {
	MessageType string `json:"message_type"`

	Date    string `json:"date"`
	Level   string `json:"level"`
	Message string `json:"message"`
}

type JsonSample struct {
	MessageType string `json:"message_type"`

	Sequence uint64   `json:"sequence"`
	Length   int      `json:"length"`
	ECG      *float64 `json:"ecg"`
	Resp     *float64 `json:"resp"`
}
