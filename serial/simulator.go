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
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"ecg-monitor/model"
)

const (
	defaultSimulationRate  = 50
	defaultHeartRateBpm    = 72.0
	defaultBreathRateBpm   = 15.0
	simulatedRespBaseline  = 1000.0
	simulatedRespAmplitude = 25.0
)

var ErrClosed = errors.New("line source closed")

// one beat of a synthetic ECG as a sum of gaussians over the cardiac phase
var pqrst = []struct {
	center    float64
	amplitude float64
	width     float64
}{
	{0.20, 0.15, 0.025},  // P
	{0.37, -0.10, 0.010}, // Q
	{0.40, 1.20, 0.012},  // R
	{0.43, -0.25, 0.010}, // S
	{0.65, 0.30, 0.040},  // T
}

// Simulator produces ECG / respiration lines in the device wire format at a
// fixed sample rate, for exercising the plotter without hardware attached.
type Simulator struct {
	options   model.SimulationOptions
	ticker    *time.Ticker
	random    *rand.Rand
	index     uint64
	closed    chan struct{}
	closeOnce sync.Once
}

func NewSimulator(options *model.SimulationOptions) *Simulator {
	sim := &Simulator{
		options: *options,
		random:  rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x5eed)),
		closed:  make(chan struct{}),
	}

	if sim.options.SampleRate <= 0 {
		sim.options.SampleRate = defaultSimulationRate
	}
	if sim.options.HeartRateBpm <= 0 {
		sim.options.HeartRateBpm = defaultHeartRateBpm
	}
	if sim.options.BreathRateBpm <= 0 {
		sim.options.BreathRateBpm = defaultBreathRateBpm
	}

	sim.ticker = time.NewTicker(time.Second / time.Duration(sim.options.SampleRate))

	slog.Info(fmt.Sprintf("Simulating device at %d Hz, %0.0f bpm", sim.options.SampleRate, sim.options.HeartRateBpm))

	return sim
}

func (s *Simulator) ReadLine() (string, error) {
	select {
	case <-s.closed:
		return "", ErrClosed
	case <-s.ticker.C:
	}

	seconds := float64(s.index) / float64(s.options.SampleRate)
	s.index++

	if s.options.MalformedRatio > 0 && s.random.Float64() < s.options.MalformedRatio {
		return s.garbledLine(), nil
	}

	ecg := ecgAt(seconds, s.options.HeartRateBpm) + s.random.NormFloat64()*0.01
	resp := respAt(seconds, s.options.BreathRateBpm) + s.random.NormFloat64()*0.5

	return fmt.Sprintf("%.4f,%.1f", ecg, resp), nil
}

func (s *Simulator) Close() error {
	s.closeOnce.Do(func() {
		s.ticker.Stop()
		close(s.closed)
	})

	return nil
}

func (s *Simulator) garbledLine() string {
	switch s.random.IntN(3) {
	case 0:
		return ""
	case 1:
		return fmt.Sprintf("%.4f", s.random.Float64())
	default:
		return "\x7f?,??"
	}
}

func ecgAt(seconds float64, heartRateBpm float64) float64 {
	phase := math.Mod(seconds*heartRateBpm/60.0, 1.0)
	value := 0.0

	for _, wave := range pqrst {
		delta := phase - wave.center
		value += wave.amplitude * math.Exp(-(delta*delta)/(2*wave.width*wave.width))
	}

	return value
}

func respAt(seconds float64, breathRateBpm float64) float64 {
	return simulatedRespBaseline + simulatedRespAmplitude*math.Sin(2*math.Pi*seconds*breathRateBpm/60.0)
}
