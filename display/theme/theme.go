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
package theme

import (
	"github.com/gdamore/tcell/v2"
)

const (
	Blue      = tcell.ColorBlue
	Green     = tcell.Color71
	GreenRGB  = "5FAF5F"
	Red       = tcell.Color124
	RedRGB    = "AF0000"
	Yellow    = tcell.Color142
	YellowRGB = "AFAF00"
	Gray      = tcell.ColorGray
	GrayRGB   = "808080"

	BorderColor = tcell.Color243
	AxisColor   = tcell.Color245

	EcgLineColor  = tcell.Color78
	RespLineColor = tcell.Color75
)

const (
	RuneClock  = rune(9201) // ⏱
	RunePlay   = rune(9205) // ⏵
	RuneRecord = rune(9210) // ⏺
	RuneStop   = rune(9209) // ⏹
	RuneFailed = rune(9932) // ⛌

	RuneMeterFilled = rune(9607) // ▇
	RuneMeterEmpty  = rune(9617) // ░
)
