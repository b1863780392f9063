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
package plotter

import (
	"context"
	"sync/atomic"
	"time"

	"ecg-monitor/sample"
	"ecg-monitor/serial"
)

type State int

const (
	StateIdle State = iota
	StateUpdating
)

func (s State) String() string {
	if s == StateUpdating {
		return "updating"
	}

	return "idle"
}

// Redrawer receives the full contents of both traces after every sample.
type Redrawer interface {
	UpdateTraces(ecg []float64, resp []float64)
}

// Plotter runs the read, parse, append, redraw cycle once per tick. All of
// its state is owned by the goroutine calling Tick or Run.
type Plotter struct {
	source   serial.LineSource
	traces   *sample.Traces
	display  Redrawer
	interval time.Duration
	capacity int
	state    State

	samplesPlotted atomic.Uint64
}

func New(source serial.LineSource, traces *sample.Traces, display Redrawer, interval time.Duration) *Plotter {
	return &Plotter{
		source:   source,
		traces:   traces,
		display:  display,
		interval: interval,
		capacity: traces.Cap(),
		state:    StateIdle,
	}
}

// Tick reads one line and, if it parses, appends it and redraws. Malformed
// lines are dropped without a redraw. Any read error is returned and is not
// recoverable.
func (p *Plotter) Tick() error {
	p.state = StateUpdating
	defer func() { p.state = StateIdle }()

	line, err := p.source.ReadLine()
	if err != nil {
		return err
	}

	s, err := sample.Parse(line)
	if err != nil {
		return nil
	}

	p.traces.Append(s)
	p.samplesPlotted.Add(1)

	p.display.UpdateTraces(p.traces.ECG(), p.traces.Resp())

	return nil
}

// Run ticks until ctx is cancelled or a read fails. A tick that overruns
// the interval delays the next one rather than queueing extra ticks.
func (p *Plotter) Run(ctx context.Context) error {
	t := time.NewTicker(p.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
		}

		if err := p.Tick(); err != nil {
			// reads fail once the source is closed during shutdown
			if ctx.Err() != nil {
				return nil
			}

			return err
		}
	}
}

func (p *Plotter) State() State {
	return p.state
}

// SamplesPlotted is safe to call from any goroutine.
func (p *Plotter) SamplesPlotted() uint64 {
	return p.samplesPlotted.Load()
}

// BufferUtilization is the fill level of the traces in percent, derived
// from the sample count so it is safe to call from any goroutine.
func (p *Plotter) BufferUtilization() int {
	capacity := uint64(p.capacity)
	plotted := min(p.SamplesPlotted(), capacity)

	return int(plotted * 100 / capacity)
}
