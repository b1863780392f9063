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
package sample

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"ecg-monitor/model"
)

// ErrParse marks a line that does not hold exactly two numeric fields. It is
// the only recoverable error in the read loop; such lines are dropped.
var ErrParse = errors.New("malformed sample line")

// Parse decodes a stripped "ecg,resp" line into a sample.
func Parse(line string) (model.Sample, error) {
	fields := strings.Split(line, ",")

	if len(fields) != 2 {
		return model.Sample{}, fmt.Errorf("%w: expected 2 fields, got %d", ErrParse, len(fields))
	}

	ecg, err := parseField(fields[0])
	if err != nil {
		return model.Sample{}, err
	}

	resp, err := parseField(fields[1])
	if err != nil {
		return model.Sample{}, err
	}

	return model.Sample{ECG: ecg, Resp: resp}, nil
}

// parseField accepts decimal and exponent notation, inf and nan, and digits
// grouped with single underscores. Hex floats are rejected. Overflowing
// values become +-Inf.
func parseField(field string) (float64, error) {
	text := strings.TrimSpace(field)

	if isHexFloat(text) {
		return 0, fmt.Errorf("%w: %q is not a number", ErrParse, field)
	}

	text, ok := stripDigitSeparators(text)
	if !ok {
		return 0, fmt.Errorf("%w: %q is not a number", ErrParse, field)
	}

	value, err := strconv.ParseFloat(text, 64)

	var numErr *strconv.NumError
	if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
		return value, nil
	}

	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrParse, field)
	}

	return value, nil
}

func isHexFloat(text string) bool {
	unsigned := strings.TrimLeft(text, "+-")

	return strings.HasPrefix(unsigned, "0x") || strings.HasPrefix(unsigned, "0X")
}

// stripDigitSeparators removes underscores that sit between two digits, ok
// is false if any underscore does not.
func stripDigitSeparators(text string) (string, bool) {
	if !strings.Contains(text, "_") {
		return text, true
	}

	for i := 0; i < len(text); i++ {
		if text[i] != '_' {
			continue
		}

		if i == 0 || i == len(text)-1 || !isDigit(text[i-1]) || !isDigit(text[i+1]) {
			return "", false
		}
	}

	return strings.ReplaceAll(text, "_", ""), true
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
