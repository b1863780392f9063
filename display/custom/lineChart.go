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
package custom

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"ecg-monitor/display/theme"

	"code.rocketnine.space/tslocum/cview"
	"github.com/gdamore/tcell/v2"
	"github.com/guptarohit/asciigraph"
)

const (
	defaultMargin    = 0.05
	defaultPrecision = 2
)

// LineChart plots a series of values against their index, rescaling the y
// axis to the data every time the series is replaced. The plot body and
// the y axis labels are rendered by asciigraph.
type LineChart struct {
	*cview.Box

	// Label shown above the plot area.
	title string

	// Label shown under the x axis, the axis row is omitted when empty.
	xLabel string

	// Fraction of the data span added above and below the plot.
	margin float64

	// Minimum number of decimals on the y axis labels.
	precision uint

	lineColor  tcell.Color
	axisColor  tcell.Color
	titleColor tcell.Color

	data   []float64
	lo     float64
	hi     float64
	scaled bool

	sync.RWMutex
}

// NewLineChart returns an empty line chart.
func NewLineChart(title string) *LineChart {
	c := &LineChart{
		Box:        cview.NewBox(),
		title:      title,
		margin:     defaultMargin,
		precision:  defaultPrecision,
		lineColor:  tcell.ColorGreen,
		axisColor:  theme.AxisColor,
		titleColor: tcell.ColorWhite,
		data:       make([]float64, 0),
	}
	c.SetBackgroundColor(cview.Styles.PrimitiveBackgroundColor)
	return c
}

func (c *LineChart) SetXLabel(label string) {
	c.Lock()
	defer c.Unlock()

	c.xLabel = label
}

func (c *LineChart) SetLineColor(color tcell.Color) {
	c.Lock()
	defer c.Unlock()

	c.lineColor = color
}

func (c *LineChart) SetAxisColor(color tcell.Color) {
	c.Lock()
	defer c.Unlock()

	c.axisColor = color
}

func (c *LineChart) SetPrecision(precision uint) {
	c.Lock()
	defer c.Unlock()

	c.precision = precision
}

// SetData replaces the plotted series and recomputes the y axis range.
func (c *LineChart) SetData(values []float64) {
	c.Lock()
	defer c.Unlock()

	c.data = append(c.data[:0], values...)
	c.lo, c.hi, c.scaled = Autoscale(c.data, c.margin)
}

// GetBounds returns the current y axis range, ok is false while the chart
// holds no finite values.
func (c *LineChart) GetBounds() (lo float64, hi float64, ok bool) {
	c.RLock()
	defer c.RUnlock()

	return c.lo, c.hi, c.scaled
}

func (c *LineChart) GetDataLength() int {
	c.RLock()
	defer c.RUnlock()

	return len(c.data)
}

// Draw draws this primitive onto the screen.
func (c *LineChart) Draw(screen tcell.Screen) {
	if !c.GetVisible() {
		return
	}

	c.Box.Draw(screen)

	c.RLock()
	defer c.RUnlock()

	x, y, width, height := c.GetInnerRect()
	background := c.GetBackgroundColor()
	labelStyle := tcell.StyleDefault.Foreground(c.axisColor).Background(background)
	lineStyle := tcell.StyleDefault.Foreground(c.lineColor).Background(background)
	titleStyle := tcell.StyleDefault.Bold(true).Foreground(c.titleColor).Background(background)

	plotTop := y + 1
	plotHeight := height - 1
	if c.xLabel != "" {
		plotHeight--
	}

	if width <= 0 || plotHeight <= 0 {
		printText(screen, x, y, width, c.title, titleStyle)
		return
	}

	rows := make([]string, 0)
	axis := -1

	if c.scaled {
		rows, axis = c.render(width, plotHeight)
	}

	// the title and the x axis line up with the y axis
	plotLeft := x + axis + 1
	plotWidth := width - axis - 1

	printText(screen, plotLeft, y, plotWidth, c.title, titleStyle)

	for row, line := range rows {
		if row >= plotHeight {
			break
		}

		for col, r := range []rune(line) {
			if col >= width {
				break
			}

			style := lineStyle
			if col <= axis {
				style = labelStyle
			}

			screen.SetContent(x+col, plotTop+row, r, nil, style)
		}
	}

	if c.xLabel != "" {
		axisRow := plotTop + plotHeight
		last := max(len(c.data)-1, 0)

		printText(screen, plotLeft, axisRow, plotWidth, "0", labelStyle)
		printRight(screen, plotLeft, axisRow, plotWidth, strconv.Itoa(last), labelStyle)

		labelX := plotLeft + (plotWidth-len([]rune(c.xLabel)))/2
		printText(screen, labelX, axisRow, plotWidth, c.xLabel, labelStyle)
	}
}

// render plots the data into lines of at most width runes and returns them
// along with the rune column of the y axis.
func (c *LineChart) render(width int, height int) ([]string, int) {
	options := []asciigraph.Option{
		asciigraph.Height(max(height-1, 1)),
		asciigraph.LowerBound(c.lo),
		asciigraph.UpperBound(c.hi),
		asciigraph.Precision(c.precision),
	}

	// the labels only depend on the bounds, so a two point plot finds the
	// axis column for the real one
	axis := axisColumn(asciigraph.Plot([]float64{c.lo, c.hi}, options...))
	if axis < 0 || axis >= width-1 {
		return nil, -1
	}

	// asciigraph chokes on infinities, gaps are drawn for NaN
	series := make([]float64, len(c.data))
	for i, v := range c.data {
		if math.IsInf(v, 0) {
			v = math.NaN()
		}
		series[i] = v
	}

	// n points take n-1 columns right of the axis
	if plotWidth := width - axis; plotWidth >= 2 {
		options = append(options, asciigraph.Width(plotWidth))
	}

	return strings.Split(asciigraph.Plot(series, options...), "\n"), axis
}

// axisColumn returns the rune index of the y axis in the first plot line,
// or -1 when there is none.
func axisColumn(plot string) int {
	first, _, _ := strings.Cut(plot, "\n")

	for col, r := range []rune(first) {
		if r == '┤' || r == '┼' {
			return col
		}
	}

	return -1
}

func printText(screen tcell.Screen, x int, y int, maxWidth int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		if i >= maxWidth {
			return
		}

		screen.SetContent(x+i, y, r, nil, style)
	}
}

func printRight(screen tcell.Screen, x int, y int, width int, text string, style tcell.Style) {
	runes := []rune(fmt.Sprintf("%*s", width, text))

	if len(runes) > width {
		runes = runes[len(runes)-width:]
	}

	printText(screen, x, y, width, string(runes), style)
}
