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
package display

import (
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"ecg-monitor/display/custom"
	"ecg-monitor/display/theme"
	"ecg-monitor/reaper"
	"ecg-monitor/util"

	"code.rocketnine.space/tslocum/cview"
	"github.com/gdamore/tcell/v2"
)

//
// constants
//

const (
	layoutStatusItemHeaderWidth = 12
	layoutStatusRowCount        = 4
	layoutLogRowHeight          = 8

	statusRefreshInterval = 250 * time.Millisecond

	EcgChartTitle  = "ECG (mV)"
	RespChartTitle = "Resp µV"
	SampleAxisName = "sample"
)

//
// types
//

type Tui struct {
	app          *cview.Application
	done         chan struct{}
	shutdownOnce sync.Once

	errorCount     int
	errorCountLock sync.Mutex

	// hands chart updates to the UI goroutine
	queueDraw func(func())

	gridApp   *cview.Grid
	chartEcg  *custom.LineChart
	chartResp *custom.LineChart

	tvLogs        *cview.TextView
	tvStatus      *custom.StatusText
	tvPort        *custom.StatusText
	tvBaud        *custom.StatusText
	tvErrorCount  *custom.StatusText
	tvElapsed     *custom.StatusText
	tvSampleCount *custom.StatusText
	tvSampleRate  *custom.StatusText

	statusMeterBuffer *custom.StatusMeter
}

//
// constructor
//

func NewTui() *Tui {
	return &Tui{
		done: make(chan struct{}),
	}
}

//
// lifecycle managment
//

func (tui *Tui) Initialize() {
	tui.app = cview.NewApplication()
	defer tui.app.HandlePanic()

	tui.queueDraw = func(update func()) {
		tui.app.QueueUpdateDraw(update)
	}

	//
	// main application grid
	tui.gridApp = cview.NewGrid()
	tui.gridApp.SetPadding(0, 0, 0, 0)
	tui.gridApp.SetColumns(-1)
	tui.gridApp.SetRows(layoutStatusRowCount, -1, -1, layoutLogRowHeight)
	tui.gridApp.SetBorders(true)
	tui.gridApp.SetBordersColor(theme.BorderColor)
	tui.gridApp.SetBackgroundColor(cview.Styles.PrimitiveBackgroundColor)

	//
	// status panel
	gridStatus := cview.NewGrid()
	gridStatus.SetPadding(0, 0, 1, 1)
	gridStatus.SetColumns(-1, -1)
	gridStatus.SetRows(1, 1, 1, 1)
	gridStatus.SetBackgroundColor(cview.Styles.PrimitiveBackgroundColor)

	tui.tvStatus = custom.NewStatusTextField(layoutStatusItemHeaderWidth, "Status", "")
	tui.tvPort = custom.NewStatusTextField(layoutStatusItemHeaderWidth, "Port", "")
	tui.tvBaud = custom.NewStatusTextField(layoutStatusItemHeaderWidth, "Baud", "")
	tui.tvErrorCount = custom.NewStatusTextField(layoutStatusItemHeaderWidth, "Errors", "0")
	tui.tvElapsed = custom.NewStatusTextField(layoutStatusItemHeaderWidth, "Elapsed", util.FormatDuration(0))
	tui.tvSampleCount = custom.NewStatusTextField(layoutStatusItemHeaderWidth, "Samples", "0")
	tui.tvSampleRate = custom.NewStatusTextField(layoutStatusItemHeaderWidth, "Rate", "0.0 Hz")
	tui.statusMeterBuffer = custom.NewStatusMeter(layoutStatusItemHeaderWidth, "Buffer", 0, "%")

	gridStatus.AddItem(tui.tvStatus.GetGrid(), 0, 0, 1, 1, 0, 0, false)
	gridStatus.AddItem(tui.tvPort.GetGrid(), 1, 0, 1, 1, 0, 0, false)
	gridStatus.AddItem(tui.tvBaud.GetGrid(), 2, 0, 1, 1, 0, 0, false)
	gridStatus.AddItem(tui.tvErrorCount.GetGrid(), 3, 0, 1, 1, 0, 0, false)
	gridStatus.AddItem(tui.tvElapsed.GetGrid(), 0, 1, 1, 1, 0, 0, false)
	gridStatus.AddItem(tui.tvSampleCount.GetGrid(), 1, 1, 1, 1, 0, 0, false)
	gridStatus.AddItem(tui.tvSampleRate.GetGrid(), 2, 1, 1, 1, 0, 0, false)
	gridStatus.AddItem(tui.statusMeterBuffer.GetGrid(), 3, 1, 1, 1, 0, 0, false)

	tui.gridApp.AddItem(gridStatus, 0, 0, 1, 1, 0, 0, false)

	//
	// charts, both plotted against the same sample index
	tui.chartEcg = custom.NewLineChart(EcgChartTitle)
	tui.chartEcg.SetLineColor(theme.EcgLineColor)

	tui.chartResp = custom.NewLineChart(RespChartTitle)
	tui.chartResp.SetLineColor(theme.RespLineColor)
	tui.chartResp.SetXLabel(SampleAxisName)

	tui.gridApp.AddItem(tui.chartEcg, 1, 0, 1, 1, 0, 0, false)
	tui.gridApp.AddItem(tui.chartResp, 2, 0, 1, 1, 0, 0, false)

	//
	// log output view
	tui.tvLogs = cview.NewTextView()
	tui.tvLogs.SetPadding(0, 0, 1, 1)
	tui.tvLogs.SetDynamicColors(true)

	tui.gridApp.AddItem(tui.tvLogs, 3, 0, 1, 1, 0, 0, true)

	tui.app.SetRoot(tui.gridApp, true)

	tui.SetStatus(StatusStarting)
}

func (tui *Tui) Start() {
	reaper.Register("tui")

	go func() {
		defer tui.app.HandlePanic()

		tui.app.SetInputCapture(tui.eventHandler)

		if err := tui.app.Run(); err != nil {
			slog.Error("TUI failed: " + err.Error())
			go reaper.Reap()
		}

		close(tui.done)
		reaper.Done("tui")
	}()

	go tui.excecuteLoop()
}

func (tui *Tui) Shutdown() {
	tui.shutdownOnce.Do(func() {
		slog.Debug("Shutting down TUI")
		tui.app.Stop()
	})

	slog.Debug("Waiting for TUI to shut down")
	tui.WaitForShutdown()
}

func (tui *Tui) IsShutdown() bool {
	select {
	case <-tui.done:
		return true
	default:
		return false
	}
}

func (tui *Tui) WaitForShutdown() {
	<-tui.done
}

//
// private functions
//

func (tui *Tui) eventHandler(event *tcell.EventKey) *tcell.EventKey {
	// Anything handled here will be executed on the main thread
	switch event.Key() {
	case tcell.KeyEsc, tcell.KeyCtrlC:
		go reaper.Reap()
		return nil
	case tcell.KeyRune:
		if event.Rune() == 'q' {
			go reaper.Reap()
			return nil
		}
	}

	return event
}

// excecuteLoop refreshes the status panel, the charts queue their own draw
func (tui *Tui) excecuteLoop() {
	defer tui.app.HandlePanic()

	slog.Debug("TUI loop started")

	t := time.NewTicker(statusRefreshInterval)
	defer t.Stop()

	for {
		select {
		case <-tui.done:
			return
		case <-t.C:
			tui.app.QueueUpdateDraw(func() {})
		}
	}
}

//
// status update functions
//

func (tui *Tui) SetStatus(status Status) {
	var icon rune
	var color tcell.Color

	switch status {
	case StatusStarting, StatusShuttingDown:
		icon = theme.RuneClock
		color = theme.Yellow
	case StatusWaiting:
		icon = theme.RuneStop
		color = theme.Blue
	case StatusStreaming:
		icon = theme.RuneRecord
		color = theme.Green
	case StatusSimulating:
		icon = theme.RunePlay
		color = theme.Yellow
	case StatusFailed:
		icon = theme.RuneFailed
		color = theme.Red
	default:
		panic("invalid status value provided: " + strconv.Itoa(int(status)))
	}

	tui.tvStatus.SetCurrentValue(string(icon) + " " + status.String())
	tui.tvStatus.SetColor(color)
}

func (tui *Tui) SetPortName(value string) {
	tui.tvPort.SetCurrentValue(value)
}

func (tui *Tui) SetBaudRate(baud int) {
	tui.tvBaud.SetCurrentValue(strconv.Itoa(baud))
}

func (tui *Tui) SetDuration(duration float64) {
	tui.tvElapsed.SetCurrentValue(util.FormatDuration(duration))
}

func (tui *Tui) SetSampleCount(count uint64) {
	tui.tvSampleCount.SetCurrentValue(strconv.FormatUint(count, 10))
}

func (tui *Tui) SetSampleRate(rate float64) {
	tui.tvSampleRate.SetCurrentValue(fmt.Sprintf("%0.1f Hz", rate))
}

func (tui *Tui) SetBufferUtilization(percent int) {
	color := theme.Green

	if percent >= 100 {
		color = theme.Blue
	}

	tui.statusMeterBuffer.SetCurrentValue(percent)
	tui.statusMeterBuffer.SetColor(color)
}

func (tui *Tui) IncrementErrorCount() {
	tui.errorCountLock.Lock()
	defer tui.errorCountLock.Unlock()

	tui.errorCount++
	tui.tvErrorCount.SetCurrentValue(strconv.Itoa(tui.errorCount))
	tui.tvErrorCount.SetColor(theme.Red)
}

//
// charts
//

// UpdateTraces hands the latest buffer contents to the chart widgets and
// redraws them on the UI goroutine.
func (tui *Tui) UpdateTraces(ecg []float64, resp []float64) {
	if tui.IsShutdown() {
		return
	}

	tui.queueDraw(func() {
		tui.chartEcg.SetData(ecg)
		tui.chartResp.SetData(resp)
	})
}

//
// logging
//

func (tui *Tui) WriteLevelLog(level slog.Level, message string) {
	color := "-"

	if level == slog.LevelWarn {
		color = "#" + theme.YellowRGB
	} else if level == slog.LevelError {
		color = "#" + theme.RedRGB + "::b"
	} else if level < slog.LevelInfo {
		color = "#" + theme.GrayRGB
	}

	tui.tvLogs.Write([]byte(fmt.Sprintf("[%s][%s[] [%s[] %s[-:-:-]\n", color, time.Now().Format("2006-01-02 15:04:05"), level.String(), message)))
}
