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
package app

import (
	"fmt"
	"time"

	"ecg-monitor/display"
	"ecg-monitor/model"
	"ecg-monitor/plotter"
	"ecg-monitor/reaper"
	"ecg-monitor/util"
)

const statsIntervalMs = 1000

type statistics struct {
	startTime     time.Time
	lastCount     uint64
	lastTime      time.Time
	firstSampleAt time.Time
}

func initStatistics(config *model.Config, ui display.UI, plot *plotter.Plotter) chan bool {
	shutdownChan := make(chan bool, 5)

	now := time.Now()
	stats := &statistics{
		startTime: now,
		lastTime:  now,
	}

	streamingStatus := display.StatusStreaming
	if config.SimulationOptions.EnableSimulation {
		streamingStatus = display.StatusSimulating
	}

	processOnInterval("stats", shutdownChan, statsIntervalMs, func() {
		now := time.Now()
		count := plot.SamplesPlotted()

		// the first sample flips the status from waiting
		if count > 0 && stats.firstSampleAt.IsZero() {
			stats.firstSampleAt = now
			ui.SetStatus(streamingStatus)
		}

		elapsed := now.Sub(stats.lastTime).Seconds()
		rate := 0.0
		if elapsed > 0 {
			rate = float64(count-stats.lastCount) / elapsed
		}

		stats.lastCount = count
		stats.lastTime = now

		ui.SetDuration(now.Sub(stats.startTime).Seconds())
		ui.SetSampleCount(count)
		ui.SetSampleRate(rate)
		ui.SetBufferUtilization(plot.BufferUtilization())

		util.TraceLog(fmt.Sprintf("samples: %d, rate: %0.1f/s, buffer: %d%%", count, rate, plot.BufferUtilization()))
	})

	return shutdownChan
}

func processOnInterval(name string, shutdownChan chan bool, milliseconds int, process func()) {
	reaper.Register(name)

	go func() {
		process()

		t := time.NewTicker(time.Duration(milliseconds) * time.Millisecond)
		defer t.Stop()

		for {
			select {
			case <-shutdownChan:
				reaper.Done(name)
				return
			case <-t.C:
				process()
			}
		}
	}()
}
