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
	"fmt"
	"log/slog"

	tarm "github.com/tarm/serial"
)

// Port is a blocking line source over a serial device. Reads have no
// timeout, so an unplugged device stalls ReadLine indefinitely.
type Port struct {
	*LineReader

	name string
	baud int
}

func OpenPort(name string, baud int) (*Port, error) {
	config := &tarm.Config{
		Name: name,
		Baud: baud,
	}

	stream, err := tarm.OpenPort(config)
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", name, err)
	}

	slog.Info(fmt.Sprintf("Opened serial port %s at %d baud", name, baud))

	return &Port{
		LineReader: NewLineReader(stream),
		name:       name,
		baud:       baud,
	}, nil
}

func (p *Port) Name() string {
	return p.name
}

func (p *Port) BaudRate() int {
	return p.baud
}

func (p *Port) Close() error {
	slog.Debug("Closing serial port " + p.name)
	return p.LineReader.Close()
}
