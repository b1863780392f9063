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
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
)

var (
	stockStderr *os.File
	stockStdout *os.File
	hijackLock  sync.Mutex
	pipeWriters []*os.File
)

//------------------------------------------------------------------
// public functions
//------------------------------------------------------------------

// HijackLogging points os.Stdout and os.Stderr at pipes that feed slog, so
// stray prints don't scribble over the terminal UI.
func HijackLogging() {
	hijackLock.Lock()
	defer hijackLock.Unlock()

	if stockStdout != nil {
		return
	}

	stockStdout = os.Stdout
	stockStderr = os.Stderr

	stdout_r, stdout_w, err := os.Pipe()
	if err != nil {
		fmt.Fprintln(stockStderr, err)
		return
	}
	go logProcessor(stdout_r, slog.LevelInfo)

	stderr_r, stderr_w, err := os.Pipe()
	if err != nil {
		fmt.Fprintln(stockStderr, err)
		stdout_w.Close()
		return
	}
	go logProcessor(stderr_r, slog.LevelError)

	pipeWriters = []*os.File{stdout_w, stderr_w}

	os.Stdout = stdout_w
	os.Stderr = stderr_w
}

// RestoreLogging undoes HijackLogging.
func RestoreLogging() {
	hijackLock.Lock()
	defer hijackLock.Unlock()

	if stockStdout == nil {
		return
	}

	os.Stdout = stockStdout
	os.Stderr = stockStderr

	for _, writer := range pipeWriters {
		writer.Close()
	}

	stockStdout = nil
	stockStderr = nil
	pipeWriters = nil
}

//------------------------------------------------------------------
// private functions
//------------------------------------------------------------------

func logProcessor(pipe *os.File, level slog.Level) {
	defer pipe.Close()

	scanner := bufio.NewScanner(pipe)

	for scanner.Scan() {
		slog.Log(context.Background(), level, scanner.Text())
	}
}
