//go:build !guidancelog

// guidance/log_release.go
// Copyright(c) 2025 flightpath contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package guidance

// InitGuidanceLog is a no-op in release builds
func InitGuidanceLog(enabled bool, categories string) {}

// GuidanceLog is a no-op in release builds
func GuidanceLog(category string, format string, args ...any) {}

// GuidanceLogEnabled always returns false in release builds
func GuidanceLogEnabled(category string) bool { return false }
