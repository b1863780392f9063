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
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// ErrDecode is returned when a line off the wire is not valid text.
var ErrDecode = errors.New("undecodable serial line")

// LineSource yields one stripped text line per call, blocking until a line
// is available.
type LineSource interface {
	ReadLine() (string, error)
	Close() error
}

// LineReader turns a byte stream into newline terminated lines.
type LineReader struct {
	closer io.Closer
	reader *bufio.Reader
}

func NewLineReader(stream io.ReadCloser) *LineReader {
	return &LineReader{
		closer: stream,
		reader: bufio.NewReader(stream),
	}
}

// ReadLine returns the next line with surrounding whitespace removed. An
// unterminated fragment left at EOF is still returned as a line.
func (r *LineReader) ReadLine() (string, error) {
	raw, err := r.reader.ReadString('\n')

	if err != nil && (!errors.Is(err, io.EOF) || len(raw) == 0) {
		return "", err
	}

	if !utf8.ValidString(raw) {
		return "", fmt.Errorf("%w: %q", ErrDecode, raw)
	}

	return strings.TrimSpace(raw), nil
}

func (r *LineReader) Close() error {
	return r.closer.Close()
}
