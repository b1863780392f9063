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
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"ecg-monitor/sample"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedSource replays a fixed set of lines, then fails with io.EOF
type scriptedSource struct {
	lines   []string
	onRead  func()
	closed  bool
	readErr error
}

func (s *scriptedSource) ReadLine() (string, error) {
	if s.onRead != nil {
		s.onRead()
	}

	if s.readErr != nil {
		return "", s.readErr
	}

	if len(s.lines) == 0 {
		return "", io.EOF
	}

	line := s.lines[0]
	s.lines = s.lines[1:]

	return line, nil
}

func (s *scriptedSource) Close() error {
	s.closed = true
	return nil
}

type recordingRedrawer struct {
	lock    sync.Mutex
	redraws int
	ecg     []float64
	resp    []float64
}

func (r *recordingRedrawer) UpdateTraces(ecg []float64, resp []float64) {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.redraws++
	r.ecg = ecg
	r.resp = resp
}

func (r *recordingRedrawer) count() int {
	r.lock.Lock()
	defer r.lock.Unlock()

	return r.redraws
}

func newTestPlotter(lines ...string) (*Plotter, *scriptedSource, *recordingRedrawer) {
	source := &scriptedSource{lines: lines}
	redrawer := &recordingRedrawer{}

	return New(source, sample.NewTraces(500), redrawer, time.Millisecond), source, redrawer
}

func TestTickScenarioDropsMalformedLine(t *testing.T) {
	p, _, redrawer := newTestPlotter("0.1,100.0", "0.2,101.0", "bad", "0.3,102.0")

	for range 4 {
		require.NoError(t, p.Tick())
	}

	assert.Equal(t, []float64{0.1, 0.2, 0.3}, p.traces.ECG())
	assert.Equal(t, []float64{100.0, 101.0, 102.0}, p.traces.Resp())

	// the malformed line does not trigger a redraw
	assert.Equal(t, 3, redrawer.count())
	assert.Equal(t, []float64{0.1, 0.2, 0.3}, redrawer.ecg)
	assert.Equal(t, []float64{100.0, 101.0, 102.0}, redrawer.resp)
	assert.Equal(t, uint64(3), p.SamplesPlotted())
}

func TestTickMalformedLinesLeaveBuffersUnchanged(t *testing.T) {
	p, _, redrawer := newTestPlotter("1,2", "", "3", "4;5", "6,7,8", "x,1", "1,y")

	require.NoError(t, p.Tick())

	for range 6 {
		require.NoError(t, p.Tick())
		assert.Equal(t, []float64{1}, p.traces.ECG())
		assert.Equal(t, []float64{2}, p.traces.Resp())
	}

	assert.Equal(t, 1, redrawer.count())
}

func TestTickScenarioRollsOver(t *testing.T) {
	lines := make([]string, 600)
	for i := range lines {
		lines[i] = fmt.Sprintf("%d,%d", i+1, (i+1)*10)
	}

	p, _, redrawer := newTestPlotter(lines...)

	for range 600 {
		require.NoError(t, p.Tick())
		require.Equal(t, len(p.traces.ECG()), len(p.traces.Resp()))
	}

	ecg := p.traces.ECG()
	resp := p.traces.Resp()
	require.Len(t, ecg, 500)
	require.Len(t, resp, 500)

	for i := range 500 {
		assert.Equal(t, float64(i+101), ecg[i])
		assert.Equal(t, float64((i+101)*10), resp[i])
	}

	assert.Len(t, redrawer.ecg, 500)
	assert.Equal(t, 100, p.BufferUtilization())
}

func TestBufferUtilization(t *testing.T) {
	p, _, _ := newTestPlotter("1,1", "2,2")
	assert.Equal(t, 0, p.BufferUtilization())

	require.NoError(t, p.Tick())
	require.NoError(t, p.Tick())
	assert.Equal(t, 0, p.BufferUtilization())

	lines := make([]string, 250)
	for i := range lines {
		lines[i] = "1,1"
	}
	p, _, _ = newTestPlotter(lines...)
	for range 250 {
		require.NoError(t, p.Tick())
	}
	assert.Equal(t, 50, p.BufferUtilization())
}

func TestTickStates(t *testing.T) {
	p, source, _ := newTestPlotter("1,2")
	assert.Equal(t, StateIdle, p.State())

	var during State
	source.onRead = func() { during = p.State() }

	require.NoError(t, p.Tick())
	assert.Equal(t, StateUpdating, during)
	assert.Equal(t, StateIdle, p.State())
}

func TestTickReadErrorIsFatal(t *testing.T) {
	p, source, redrawer := newTestPlotter()
	source.readErr = errors.New("device unplugged")

	err := p.Tick()
	assert.EqualError(t, err, "device unplugged")
	assert.Equal(t, StateIdle, p.State())
	assert.Equal(t, 0, redrawer.count())
}

func TestRunStopsOnReadError(t *testing.T) {
	p, _, redrawer := newTestPlotter("0.1,1", "0.2,2", "0.3,3")

	err := p.Run(context.Background())
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, 3, redrawer.count())
}

func TestRunStopsOnCancel(t *testing.T) {
	lines := make([]string, 100000)
	for i := range lines {
		lines[i] = "0.5,1000"
	}
	p, _, redrawer := newTestPlotter(lines...)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- p.Run(ctx)
	}()

	assert.Eventually(t, func() bool { return redrawer.count() > 5 }, 2*time.Second, time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("run did not stop after cancel")
	}
}

func TestRunIgnoresReadErrorAfterCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	p, source, _ := newTestPlotter()
	source.onRead = cancel
	source.readErr = errors.New("port closed")

	assert.NoError(t, p.Run(ctx))
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "updating", StateUpdating.String())
}
