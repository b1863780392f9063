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
package model

import (
	"fmt"
	"strings"
	"time"
)

type OutputType int

const (
	OutputTUI OutputType = iota
	OutputJSON
)

var OutputTypeMap = map[string]OutputType{
	"tui":  OutputTUI,
	"json": OutputJSON,
}

func (o OutputType) String() string {
	for name, value := range OutputTypeMap {
		if value == o {
			return name
		}
	}

	return "unknown"
}

// ParseOutputType resolves an output type name, case insensitive.
func ParseOutputType(name string) (OutputType, error) {
	value, ok := OutputTypeMap[strings.ToLower(name)]

	if !ok {
		return OutputTUI, fmt.Errorf("invalid output type '%s'", name)
	}

	return value, nil
}

// UnmarshalYAML lets the config file name the output type instead of using
// its numeric value.
func (o *OutputType) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var name string

	if err := unmarshal(&name); err != nil {
		return err
	}

	value, err := ParseOutputType(name)
	if err != nil {
		return err
	}

	*o = value
	return nil
}

// TraceCapacity is the number of samples kept and plotted per trace.
const TraceCapacity = 500

const (
	DefaultPort           = "/dev/tty.usbserial-XXXX"
	DefaultBaudRate       = 9600
	DefaultTickIntervalMs = 20
	DefaultConfigFile     = "ecg-monitor.yml"
)

type CommandLineArgs struct {
	Port       string
	ConfigFile string
	OutputType string
	LogFile    string

	Simulate     bool
	SimulateRate int
}

type Config struct {
	Port           string     `yaml:"port,omitempty"`
	BaudRate       int        `yaml:"baud_rate,omitempty"`
	TickIntervalMs int        `yaml:"tick_interval_ms,omitempty"`
	LogLevel       int        `yaml:"log_level,omitempty"`
	LogFile        string     `yaml:"log_file,omitempty"`
	OutputType     OutputType `yaml:"output_type,omitempty"`

	SimulationOptions *SimulationOptions `yaml:"simulation_options"`
}

// TickInterval is the period of the plotter's redraw timer.
func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.TickIntervalMs) * time.Millisecond
}

type SimulationOptions struct {
	EnableSimulation bool    `yaml:"enable,omitempty"`
	SampleRate       int     `yaml:"sample_rate,omitempty"`
	HeartRateBpm     float64 `yaml:"heart_rate_bpm,omitempty"`
	BreathRateBpm    float64 `yaml:"breath_rate_bpm,omitempty"`

	// fraction of emitted lines that are deliberately garbled
	MalformedRatio float64 `yaml:"malformed_ratio,omitempty"`
}
