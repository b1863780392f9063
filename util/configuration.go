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
	"errors"
	"fmt"
	"log/slog"

	"ecg-monitor/model"
)

func DefaultConfig() *model.Config {
	return &model.Config{
		Port:           model.DefaultPort,
		BaudRate:       model.DefaultBaudRate,
		TickIntervalMs: model.DefaultTickIntervalMs,
		LogLevel:       int(slog.LevelInfo),
		OutputType:     model.OutputTUI,
		SimulationOptions: &model.SimulationOptions{
			EnableSimulation: false,
			SampleRate:       50,
			HeartRateBpm:     72,
			BreathRateBpm:    15,
			MalformedRatio:   0,
		},
	}
}

// ReadConfig builds the runtime config: defaults, then the yaml config file
// if one is found, then anything given on the command line.
func ReadConfig(args *model.CommandLineArgs) (*model.Config, error) {
	config := DefaultConfig()

	if args.ConfigFile != "" {
		err := ReadYamlFile(config, args.ConfigFile)

		if errors.Is(err, ErrNoYamlFile) && args.ConfigFile == model.DefaultConfigFile {
			slog.Debug("No config file found, using defaults")
		} else if err != nil {
			return nil, err
		}
	}

	if config.SimulationOptions == nil {
		config.SimulationOptions = DefaultConfig().SimulationOptions
	}

	if args.Port != "" {
		config.Port = args.Port
	}

	if args.OutputType != "" {
		outputType, err := model.ParseOutputType(args.OutputType)
		if err != nil {
			return nil, err
		}

		config.OutputType = outputType
	}

	if args.LogFile != "" {
		config.LogFile = args.LogFile
	}

	if args.Simulate {
		config.SimulationOptions.EnableSimulation = true
	}

	if args.SimulateRate > 0 {
		config.SimulationOptions.SampleRate = args.SimulateRate
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

func validateConfig(config *model.Config) error {
	if config.Port == "" && !config.SimulationOptions.EnableSimulation {
		return errors.New("no serial port given")
	}

	if config.BaudRate <= 0 {
		return fmt.Errorf("invalid baud rate %d", config.BaudRate)
	}

	if config.TickIntervalMs <= 0 {
		return fmt.Errorf("invalid tick interval %d ms", config.TickIntervalMs)
	}

	ratio := config.SimulationOptions.MalformedRatio
	if ratio < 0 || ratio > 1 {
		return fmt.Errorf("invalid malformed ratio %0.2f, must be between 0 and 1", ratio)
	}

	return nil
}
