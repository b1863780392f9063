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
package serial

import (
	"io"
	"strings"
	"testing"

	"ecg-monitor/model"
	"ecg-monitor/sample"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type trackingCloser struct {
	io.Reader
	closed bool
}

func (c *trackingCloser) Close() error {
	c.closed = true
	return nil
}

func TestLineReaderStripsLines(t *testing.T) {
	reader := NewLineReader(io.NopCloser(strings.NewReader("0.842,1023.5\n  0.1,100.0\r\n\n")))

	line, err := reader.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "0.842,1023.5", line)

	line, err = reader.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "0.1,100.0", line)

	line, err = reader.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "", line)

	_, err = reader.ReadLine()
	assert.ErrorIs(t, err, io.EOF)
}

func TestLineReaderReturnsTrailingFragment(t *testing.T) {
	reader := NewLineReader(io.NopCloser(strings.NewReader("0.1,1\n0.2,2")))

	line, err := reader.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "0.1,1", line)

	line, err = reader.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "0.2,2", line)

	_, err = reader.ReadLine()
	assert.ErrorIs(t, err, io.EOF)
}

func TestLineReaderRejectsInvalidText(t *testing.T) {
	reader := NewLineReader(io.NopCloser(strings.NewReader("0.1,\xff\xfe\n")))

	_, err := reader.ReadLine()
	assert.ErrorIs(t, err, ErrDecode)
}

func TestLineReaderClose(t *testing.T) {
	stream := &trackingCloser{Reader: strings.NewReader("")}
	reader := NewLineReader(stream)

	require.NoError(t, reader.Close())
	assert.True(t, stream.closed)
}

func TestSimulatorEmitsWireFormat(t *testing.T) {
	sim := NewSimulator(&model.SimulationOptions{
		EnableSimulation: true,
		SampleRate:       1000,
	})
	defer sim.Close()

	for range 25 {
		line, err := sim.ReadLine()
		require.NoError(t, err)

		s, err := sample.Parse(line)
		require.NoError(t, err, line)

		assert.InDelta(t, simulatedRespBaseline, s.Resp, simulatedRespAmplitude+10)
		assert.InDelta(t, 0, s.ECG, 2)
	}
}

func TestSimulatorMalformedLines(t *testing.T) {
	sim := NewSimulator(&model.SimulationOptions{
		EnableSimulation: true,
		SampleRate:       1000,
		MalformedRatio:   1,
	})
	defer sim.Close()

	for range 10 {
		line, err := sim.ReadLine()
		require.NoError(t, err)

		_, err = sample.Parse(line)
		assert.ErrorIs(t, err, sample.ErrParse, line)
	}
}

func TestSimulatorClose(t *testing.T) {
	sim := NewSimulator(&model.SimulationOptions{SampleRate: 10})

	require.NoError(t, sim.Close())
	require.NoError(t, sim.Close())

	_, err := sim.ReadLine()
	assert.ErrorIs(t, err, ErrClosed)
}

func TestEcgPeaksAtR(t *testing.T) {
	// at 60 bpm one beat is one second, so the phase equals the time
	assert.InDelta(t, 1.2, ecgAt(0.40, 60), 0.05)
	assert.InDelta(t, 0, ecgAt(0.90, 60), 0.01)
	assert.InDelta(t, ecgAt(0.40, 60), ecgAt(1.40, 60), 1e-9)
}
