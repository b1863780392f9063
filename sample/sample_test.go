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

import (
	"math"
	"testing"

	"ecg-monitor/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValidLines(t *testing.T) {
	cases := map[string]model.Sample{
		"0.842,1023.5": {ECG: 0.842, Resp: 1023.5},
		"-1,2":         {ECG: -1, Resp: 2},
		"1e-3,4E2":     {ECG: 0.001, Resp: 400},
		" 0.5 , 7 ":    {ECG: 0.5, Resp: 7},
		"0,0":          {ECG: 0, Resp: 0},
		"1_000.5,2":    {ECG: 1000.5, Resp: 2},

		// out of range decimals overflow to infinity instead of being dropped
		"1e400,1":  {ECG: math.Inf(1), Resp: 1},
		"-1e400,1": {ECG: math.Inf(-1), Resp: 1},
		"1,1E999":  {ECG: 1, Resp: math.Inf(1)},
	}

	for line, expected := range cases {
		s, err := Parse(line)
		require.NoError(t, err, line)
		assert.Equal(t, expected, s, line)
	}
}

func TestParseNonFinite(t *testing.T) {
	s, err := Parse("nan,inf")
	require.NoError(t, err)

	assert.True(t, math.IsNaN(s.ECG))
	assert.True(t, math.IsInf(s.Resp, 1))
}

func TestParseMalformedLines(t *testing.T) {
	lines := []string{
		"",
		"bad",
		"0.1",
		"0.1;100.0",
		"0.1,100.0,3",
		"abc,1.0",
		"1.0,abc",
		",",
		"1.0,",
		"0x1p-2,1",
		"-0X10,1",
		"1,+0x1",
		"_1,2",
		"1__0,2",
		"1_,2",
		"1_e3,2",
	}

	for _, line := range lines {
		_, err := Parse(line)
		assert.ErrorIs(t, err, ErrParse, line)
	}
}

func TestRollingBufferUnderCapacity(t *testing.T) {
	b := NewRollingBuffer(500)

	expected := make([]float64, 0, 500)
	for i := range 500 {
		b.Append(float64(i))
		expected = append(expected, float64(i))
	}

	assert.Equal(t, 500, b.Len())
	assert.Equal(t, 500, b.Cap())
	assert.Equal(t, expected, b.Values())
}

func TestRollingBufferEviction(t *testing.T) {
	b := NewRollingBuffer(500)

	for i := 1; i <= 1234; i++ {
		b.Append(float64(i))
	}

	values := b.Values()
	require.Len(t, values, 500)
	assert.Equal(t, 735.0, values[0])
	assert.Equal(t, 1234.0, values[499])

	for i := 1; i < len(values); i++ {
		assert.Equal(t, values[i-1]+1, values[i])
	}
}

func TestRollingBufferSmall(t *testing.T) {
	b := NewRollingBuffer(3)
	assert.Empty(t, b.Values())

	b.Append(1)
	b.Append(2)
	assert.Equal(t, []float64{1, 2}, b.Values())

	b.Append(3)
	b.Append(4)
	assert.Equal(t, []float64{2, 3, 4}, b.Values())

	b.Append(5)
	b.Append(6)
	b.Append(7)
	assert.Equal(t, []float64{5, 6, 7}, b.Values())
}

func TestRollingBufferValuesIsACopy(t *testing.T) {
	b := NewRollingBuffer(2)
	b.Append(1)

	values := b.Values()
	values[0] = 99

	assert.Equal(t, []float64{1}, b.Values())
}

func TestRollingBufferInvalidCapacity(t *testing.T) {
	b := NewRollingBuffer(0)
	b.Append(1)
	b.Append(2)

	assert.Equal(t, 1, b.Cap())
	assert.Equal(t, []float64{2}, b.Values())
}

func TestTracesStayAligned(t *testing.T) {
	traces := NewTraces(500)

	for i := 1; i <= 600; i++ {
		traces.Append(model.Sample{ECG: float64(i), Resp: float64(i * 10)})
		require.Equal(t, len(traces.ECG()), len(traces.Resp()))
	}

	ecg := traces.ECG()
	resp := traces.Resp()

	assert.Equal(t, 500, traces.Len())
	assert.Equal(t, 101.0, ecg[0])
	assert.Equal(t, 600.0, ecg[499])
	assert.Equal(t, 1010.0, resp[0])
	assert.Equal(t, 6000.0, resp[499])
}
