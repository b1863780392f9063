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
	"io"
	"log/slog"
	"os"

	"ecg-monitor/display"
	"ecg-monitor/model"
	"ecg-monitor/shared"
	"ecg-monitor/util"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	logFileMaxSizeMb  = 10
	logFileMaxBackups = 3
	logFileMaxAgeDays = 28
)

// ConfigureTextLogger logs to stderr until a UI takes over the terminal.
func ConfigureTextLogger(config *model.Config) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(config.LogLevel),
	}))
	slog.SetDefault(logger)
}

// openLogFile returns a rotating writer for the configured log file, or nil
// when file logging is off.
func openLogFile(config *model.Config) *lumberjack.Logger {
	if config.LogFile == "" {
		return nil
	}

	logPath, err := util.ResolveHomeDirPath(config.LogFile)
	if err != nil {
		slog.Warn("Not logging to file: " + err.Error())
		return nil
	}

	return &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    logFileMaxSizeMb,
		MaxBackups: logFileMaxBackups,
		MaxAge:     logFileMaxAgeDays,
	}
}

// ConfigureUiLogger sends log records to the UI, and to logFile when it is
// not nil.
func ConfigureUiLogger(config *model.Config, ui display.UI, logFile io.Writer) {
	level := slog.Level(config.LogLevel)

	var handler slog.Handler = shared.NewUiLogHandler(ui, level, func(message string) {
		ui.IncrementErrorCount()
	})

	if logFile != nil {
		handler = shared.NewFanoutHandler(handler, slog.NewTextHandler(logFile, &slog.HandlerOptions{
			Level: level,
		}))
	}

	slog.SetDefault(slog.New(handler))
}
