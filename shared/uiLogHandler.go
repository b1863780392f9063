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
package shared

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"ecg-monitor/display"
)

// UiLogHandler writes log records into the log pane of the active UI.
type UiLogHandler struct {
	level         slog.Leveler
	ui            display.UI
	errorCallback func(string)

	// attributes added through WithAttrs, already rendered
	prefix string
	group  string
}

func NewUiLogHandler(out display.UI, level slog.Leveler, errorCallback func(string)) *UiLogHandler {
	h := &UiLogHandler{
		level:         level,
		ui:            out,
		errorCallback: errorCallback,
	}

	return h
}

func (h *UiLogHandler) Handle(ctx context.Context, r slog.Record) error {
	var message strings.Builder
	message.WriteString(r.Message)
	message.WriteString(h.prefix)

	r.Attrs(func(attr slog.Attr) bool {
		h.writeAttr(&message, attr)
		return true
	})

	h.ui.WriteLevelLog(r.Level, message.String())

	if r.Level >= slog.LevelError && h.errorCallback != nil {
		h.errorCallback(r.Message)
	}

	return nil
}

func (h *UiLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *UiLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h

	var prefix strings.Builder
	prefix.WriteString(h.prefix)

	for _, attr := range attrs {
		h.writeAttr(&prefix, attr)
	}

	clone.prefix = prefix.String()
	return &clone
}

func (h *UiLogHandler) WithGroup(name string) slog.Handler {
	clone := *h

	if clone.group != "" {
		clone.group += "." + name
	} else {
		clone.group = name
	}

	return &clone
}

func (h *UiLogHandler) writeAttr(message *strings.Builder, attr slog.Attr) {
	key := attr.Key
	if h.group != "" {
		key = h.group + "." + key
	}

	message.WriteString(fmt.Sprintf(" %s=%v", key, attr.Value.Any()))
}
