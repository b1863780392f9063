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
package reaper

import (
	"log/slog"
	"slices"
	"sync"
)

// The reaper coordinates shutdown: long running goroutines Register and
// call Done when they exit, cleanup steps are added as callbacks and run in
// reverse order of registration when Reap is called.

var (
	reaperLock          sync.Mutex
	reapRequested       chan bool
	reaperCallbacks     []callback
	reaperRegistrations []string
	reaperWaitgroup     *sync.WaitGroup
)

type callback struct {
	name         string
	callbackFunc func()
}

func init() {
	Reset()
}

// Reset starts a fresh shutdown session, dropping all callbacks and
// registrations.
func Reset() {
	reaperLock.Lock()
	defer reaperLock.Unlock()

	reapRequested = make(chan bool, 1)
	reaperCallbacks = make([]callback, 0)
	reaperRegistrations = make([]string, 0)
	reaperWaitgroup = &sync.WaitGroup{}
}

func Reaped() bool {
	return len(reapRequested) > 0
}

// Reap runs every callback once, newest first. Later calls are ignored.
func Reap() {
	reaperLock.Lock()

	if len(reapRequested) > 0 {
		reaperLock.Unlock()
		return
	}

	reapRequested <- true

	callbacksReversed := slices.Clone(reaperCallbacks)
	slices.Reverse(callbacksReversed)
	reaperLock.Unlock()

	for _, callback := range callbacksReversed {
		slog.Info("reaper: calling reap callback for '" + callback.name + "'")
		callback.callbackFunc()
	}
}

func Callback(name string, callbackFunc func()) {
	reaperLock.Lock()
	defer reaperLock.Unlock()

	reaperCallbacks = append(reaperCallbacks, callback{
		name:         name,
		callbackFunc: callbackFunc,
	})
}

func Register(name string) {
	reaperLock.Lock()
	defer reaperLock.Unlock()

	if slices.Contains(reaperRegistrations, name) {
		slog.Warn("reaper: already registered '" + name + "'")
		return
	}

	reaperRegistrations = append(reaperRegistrations, name)
	reaperWaitgroup.Add(1)
	slog.Debug("reaper: registered '" + name + "'")
}

func Done(name string) {
	reaperLock.Lock()
	defer reaperLock.Unlock()

	if !slices.Contains(reaperRegistrations, name) {
		slog.Warn("reaper: already done or doesn't exist: '" + name + "'")
		return
	}

	reaperRegistrations = slices.DeleteFunc(reaperRegistrations, func(test string) bool {
		return test == name
	})

	slog.Debug("reaper: done: '" + name + "'")
	reaperWaitgroup.Done()
}

// Wait blocks until every registered goroutine has called Done.
func Wait() {
	reaperLock.Lock()
	wg := reaperWaitgroup
	reaperLock.Unlock()

	wg.Wait()
}
