// log/callstack.go
// Copyright(c) 2025 flightpath contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package log

import (
	"fmt"
	"runtime"
	"strings"
)

// Callstack returns the call stack of the caller's caller as short
// "file:line func" strings, skipping the logging wrappers themselves.
func Callstack() []string {
	var pcs [16]uintptr
	n := runtime.Callers(3, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])

	var stack []string
	for {
		frame, more := frames.Next()
		if frame.Function == "" {
			break
		}
		fn := frame.Function
		if idx := strings.LastIndexByte(fn, '/'); idx != -1 {
			fn = fn[idx+1:]
		}
		file := frame.File
		if idx := strings.LastIndexByte(file, '/'); idx != -1 {
			file = file[idx+1:]
		}
		stack = append(stack, fmt.Sprintf("%s:%d %s", file, frame.Line, fn))
		if !more {
			break
		}
	}
	return stack
}
