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
package util

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"ecg-monitor/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()

	configPath := filepath.Join(t.TempDir(), "ecg-monitor.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(contents), 0644))

	return configPath
}

func TestReadConfigDefaults(t *testing.T) {
	config, err := ReadConfig(&model.CommandLineArgs{ConfigFile: model.DefaultConfigFile})
	require.NoError(t, err)

	assert.Equal(t, model.DefaultPort, config.Port)
	assert.Equal(t, 9600, config.BaudRate)
	assert.Equal(t, 20*time.Millisecond, config.TickInterval())
	assert.Equal(t, model.OutputTUI, config.OutputType)
	assert.Equal(t, int(slog.LevelInfo), config.LogLevel)
	assert.False(t, config.SimulationOptions.EnableSimulation)
}

func TestReadConfigPortArgument(t *testing.T) {
	config, err := ReadConfig(&model.CommandLineArgs{Port: "COM5"})
	require.NoError(t, err)

	assert.Equal(t, "COM5", config.Port)
}

func TestReadConfigYamlFile(t *testing.T) {
	configPath := writeConfig(t, `
port: /dev/ttyACM0
baud_rate: 115200
tick_interval_ms: 40
output_type: json
log_file: /tmp/ecg.log
simulation_options:
  enable: true
  sample_rate: 250
  malformed_ratio: 0.1
`)

	config, err := ReadConfig(&model.CommandLineArgs{ConfigFile: configPath})
	require.NoError(t, err)

	assert.Equal(t, "/dev/ttyACM0", config.Port)
	assert.Equal(t, 115200, config.BaudRate)
	assert.Equal(t, 40*time.Millisecond, config.TickInterval())
	assert.Equal(t, model.OutputJSON, config.OutputType)
	assert.Equal(t, "/tmp/ecg.log", config.LogFile)
	assert.True(t, config.SimulationOptions.EnableSimulation)
	assert.Equal(t, 250, config.SimulationOptions.SampleRate)
	assert.InDelta(t, 0.1, config.SimulationOptions.MalformedRatio, 1e-9)
}

func TestReadConfigArgumentsWin(t *testing.T) {
	configPath := writeConfig(t, "port: /dev/ttyACM0\noutput_type: json\n")

	config, err := ReadConfig(&model.CommandLineArgs{
		ConfigFile:   configPath,
		Port:         "/dev/ttyUSB1",
		OutputType:   "TUI",
		Simulate:     true,
		SimulateRate: 100,
	})
	require.NoError(t, err)

	assert.Equal(t, "/dev/ttyUSB1", config.Port)
	assert.Equal(t, model.OutputTUI, config.OutputType)
	assert.True(t, config.SimulationOptions.EnableSimulation)
	assert.Equal(t, 100, config.SimulationOptions.SampleRate)
}

func TestReadConfigErrors(t *testing.T) {
	_, err := ReadConfig(&model.CommandLineArgs{ConfigFile: filepath.Join(t.TempDir(), "missing.yml")})
	assert.ErrorIs(t, err, ErrNoYamlFile)

	_, err = ReadConfig(&model.CommandLineArgs{OutputType: "gui"})
	assert.Error(t, err)

	_, err = ReadConfig(&model.CommandLineArgs{ConfigFile: writeConfig(t, "output_type: gui\n")})
	assert.Error(t, err)

	_, err = ReadConfig(&model.CommandLineArgs{ConfigFile: writeConfig(t, "baud_rate: -1\n")})
	assert.Error(t, err)

	_, err = ReadConfig(&model.CommandLineArgs{ConfigFile: writeConfig(t, "tick_interval_ms: -5\n")})
	assert.Error(t, err)

	_, err = ReadConfig(&model.CommandLineArgs{ConfigFile: writeConfig(t, "simulation_options:\n  malformed_ratio: 2\n")})
	assert.Error(t, err)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "00:00:00.000", FormatDuration(0))
	assert.Equal(t, "00:00:01.500", FormatDuration(1.5))
	assert.Equal(t, "00:02:05.000", FormatDuration(125))
	assert.Equal(t, "01:01:01.000", FormatDuration(3661))

	// exact minute and hour boundaries roll over
	assert.Equal(t, "00:01:00.000", FormatDuration(60))
	assert.Equal(t, "01:00:00.000", FormatDuration(3600))
	assert.Equal(t, "00:59:59.000", FormatDuration(3599))
}

func TestReadConfigIgnoresBufferSize(t *testing.T) {
	// the trace capacity is fixed, an old buffer_size key is not an error
	config, err := ReadConfig(&model.CommandLineArgs{ConfigFile: writeConfig(t, "buffer_size: 1000\nbaud_rate: 19200\n")})
	require.NoError(t, err)

	assert.Equal(t, 19200, config.BaudRate)
	assert.Equal(t, 500, model.TraceCapacity)
}
