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
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"ecg-monitor/display"
	"ecg-monitor/model"
	"ecg-monitor/plotter"
	"ecg-monitor/reaper"
	"ecg-monitor/sample"
	"ecg-monitor/shared"
)

var (
	// where the json output type writes, captured before stdout is hijacked
	jsonOutput io.Writer = os.Stdout

	// stray stdout / stderr writes are routed to the log while a UI owns the terminal
	hijackOutput = true
)

func newUI(config *model.Config) display.UI {
	if config.OutputType == model.OutputJSON {
		return display.NewJsonUI(jsonOutput)
	}

	return display.NewTui()
}

// runEngine opens the sample source, starts the UI and plots until the user
// quits or the source fails. The source failure, if any, is returned.
func runEngine(config *model.Config) error {
	reaper.Reset()

	// reaped last, so Wait returns once every other callback has run
	reaper.Register("engine")
	reaper.Callback("engine", func() { reaper.Done("engine") })

	source, err := openSource(config)
	if err != nil {
		return err
	}

	var logFile io.Writer
	if writer := openLogFile(config); writer != nil {
		logFile = writer
		reaper.Callback("close log file", func() { writer.Close() })
	}

	ui := newUI(config)
	ui.Initialize()
	ui.SetStatus(display.StatusStarting)
	ui.SetPortName(sourceName(config))
	ui.SetBaudRate(config.BaudRate)
	ui.Start()
	reaper.Callback("ui", ui.Shutdown)

	ConfigureUiLogger(config, ui, logFile)
	if hijackOutput {
		shared.HijackLogging()
		reaper.Callback("restore logging", shared.RestoreLogging)
	}

	reaper.Callback("close source", func() {
		if err := source.Close(); err != nil {
			slog.Warn("Failed to close sample source: " + err.Error())
		}
	})

	stopSignals := shared.CatchSigint(func() {
		slog.Info("Caught sigint, calling reaper")
		reaper.Reap()
	})
	reaper.Callback("signals", stopSignals)

	traces := sample.NewTraces(model.TraceCapacity)
	plot := plotter.New(source, traces, ui, config.TickInterval())

	failure := make(chan error, 1)
	reaper.Callback("shutdown status", func() {
		if len(failure) > 0 {
			ui.SetStatus(display.StatusFailed)
		} else {
			ui.SetStatus(display.StatusShuttingDown)
		}
	})

	statsShutdownChan := initStatistics(config, ui, plot)
	reaper.Callback("stats", func() { statsShutdownChan <- true })

	ctx, cancel := context.WithCancel(context.Background())
	reaper.Callback("plotter", cancel)

	ui.SetStatus(display.StatusWaiting)
	slog.Info(fmt.Sprintf("Plotting %d samples per trace, redrawing every %s", model.TraceCapacity, config.TickInterval()))

	go func() {
		if err := plot.Run(ctx); err != nil {
			slog.Error("Plotting stopped: " + err.Error())
			failure <- err
			reaper.Reap()
		}
	}()

	reaper.Wait()

	select {
	case err := <-failure:
		return err
	default:
		return nil
	}
}
