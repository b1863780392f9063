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
	"os"

	"ecg-monitor/model"
	"ecg-monitor/util"

	"github.com/spf13/cobra"
)

var (
	// arguments
	args model.CommandLineArgs

	rootCmd = &cobra.Command{
		Use:   "ecg-monitor [port]",
		Short: "Plot live ECG and respiration samples read from a serial port",
		Long: `Reads "ecg,resp" sample lines from a serial device and draws the most
recent samples as two scrolling charts. The port defaults to ` + model.DefaultPort + `
when not given.

Quit with q, Esc or Ctrl-C.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,

		RunE: func(cmd *cobra.Command, positional []string) error {
			config, err := buildConfig(args, positional)
			if err != nil {
				return err
			}

			ConfigureTextLogger(config)

			return runEngine(config)
		},
	}
)

func init() {
	rootCmd.Flags().StringVarP(&args.ConfigFile, "config", "c", model.DefaultConfigFile, "Name or path of the yaml config file")
	rootCmd.Flags().StringVarP(&args.OutputType, "output", "o", "", "Output type: tui or json")
	rootCmd.Flags().StringVar(&args.LogFile, "log-file", "", "Also write the log to this file (rotated)")

	// device-less testing
	rootCmd.Flags().BoolVar(&args.Simulate, "simulate", false, "Plot a synthetic signal instead of reading the serial port")
	rootCmd.Flags().IntVar(&args.SimulateRate, "simulate-rate", 0, "Sample rate of the synthetic signal in Hz")
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()

	if err != nil {
		os.Exit(1)
	}
}

// buildConfig merges the optional positional port with the flags and the
// config file.
func buildConfig(args model.CommandLineArgs, positional []string) (*model.Config, error) {
	if len(positional) > 0 {
		args.Port = positional[0]
	}

	return util.ReadConfig(&args)
}
