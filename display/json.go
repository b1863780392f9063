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
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"sync"
	"time"

	"ecg-monitor/reaper"
)

//
// types
//

// JsonUI is the headless display, it writes newline delimited JSON messages
// instead of drawing charts.
type JsonUI struct {
	done         chan struct{}
	shutdownOnce sync.Once

	output     io.Writer
	outputLock sync.Mutex

	statusLock        sync.RWMutex
	status            Status
	statusPort        string
	statusBaudRate    int
	statusDuration    float64
	statusSampleCount uint64
	statusSampleRate  float64
	statusErrorCount  int
	metricBufferPct   int

	sequence uint64
}

//
// constructor
//

func NewJsonUI(output io.Writer) *JsonUI {
	return &JsonUI{
		done:   make(chan struct{}),
		output: output,
		status: StatusStarting,
	}
}

func (j *JsonUI) Initialize() {
	// nothing to do here
}

func (j *JsonUI) Start() {
	reaper.Register("json ui")

	go j.excecuteLoop()
}

func (j *JsonUI) excecuteLoop() {
	slog.Debug("JSON loop started")

	t := time.NewTicker(1 * time.Second)
	defer t.Stop()

	for {
		select {
		case <-j.done:
			j.printJson(j.getStatus())
			reaper.Done("json ui")
			return
		case <-t.C:
			j.printJson(j.getStatus())
		}
	}
}

func (j *JsonUI) Shutdown() {
	j.shutdownOnce.Do(func() {
		slog.Debug("Shutting down JSON UI")
		close(j.done)
	})
}

func (j *JsonUI) IsShutdown() bool {
	select {
	case <-j.done:
		return true
	default:
		return false
	}
}

func (j *JsonUI) WaitForShutdown() {
	<-j.done
}

func (j *JsonUI) SetStatus(status Status) {
	j.statusLock.Lock()
	defer j.statusLock.Unlock()

	j.status = status
}

func (j *JsonUI) SetPortName(value string) {
	j.statusLock.Lock()
	defer j.statusLock.Unlock()

	j.statusPort = value
}

func (j *JsonUI) SetBaudRate(baud int) {
	j.statusLock.Lock()
	defer j.statusLock.Unlock()

	j.statusBaudRate = baud
}

func (j *JsonUI) SetDuration(duration float64) {
	j.statusLock.Lock()
	defer j.statusLock.Unlock()

	j.statusDuration = duration
}

func (j *JsonUI) SetSampleCount(count uint64) {
	j.statusLock.Lock()
	defer j.statusLock.Unlock()

	j.statusSampleCount = count
}

func (j *JsonUI) SetSampleRate(rate float64) {
	j.statusLock.Lock()
	defer j.statusLock.Unlock()

	j.statusSampleRate = rate
}

func (j *JsonUI) SetBufferUtilization(percent int) {
	j.statusLock.Lock()
	defer j.statusLock.Unlock()

	j.metricBufferPct = percent
}

func (j *JsonUI) IncrementErrorCount() {
	j.statusLock.Lock()
	defer j.statusLock.Unlock()

	j.statusErrorCount++
}

// UpdateTraces emits the newest sample pair, the full traces are not
// repeated on every redraw.
func (j *JsonUI) UpdateTraces(ecg []float64, resp []float64) {
	if len(ecg) == 0 || len(ecg) != len(resp) {
		return
	}

	j.sequence++

	last := len(ecg) - 1
	j.printJson(&JsonSample{
		MessageType: "sample",

		Sequence: j.sequence,
		Length:   len(ecg),
		ECG:      jsonSafe(ecg[last]),
		Resp:     jsonSafe(resp[last]),
	})
}

func (j *JsonUI) WriteLevelLog(level slog.Level, message string) {
	j.printJson(&JsonLog{
		MessageType: "log",

		Date:    time.Now().Format(time.RFC3339),
		Level:   level.String(),
		Message: message,
	})
}

//
// private functions
//

func (j *JsonUI) printJson(v any) {
	jsonBytes, err := json.Marshal(v)

	if err != nil {
		// logging here would recurse back into the JSON stream
		return
	}

	j.outputLock.Lock()
	defer j.outputLock.Unlock()

	fmt.Fprintln(j.output, string(jsonBytes))
}

func (j *JsonUI) getStatus() *JsonStatus {
	j.statusLock.RLock()
	defer j.statusLock.RUnlock()

	return &JsonStatus{
		MessageType: "status",

		Status:      j.status.String(),
		Port:        j.statusPort,
		BaudRate:    j.statusBaudRate,
		Duration:    j.statusDuration,
		SampleCount: j.statusSampleCount,
		SampleRate:  j.statusSampleRate,
		ErrorCount:  j.statusErrorCount,

		BufferUsedPct: j.metricBufferPct,
	}
}

// encoding/json refuses NaN and Inf, which the parser accepts, so those are
// written as null
func jsonSafe(value float64) *float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return nil
	}

	return &value
}
