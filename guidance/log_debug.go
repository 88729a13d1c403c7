//go:build guidancelog

// guidance/log_debug.go
// Copyright(c) 2025 flightpath contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package guidance

import (
	"fmt"
	"strings"
)

// Per-tick logging configuration
var (
	guidancelogEnabled    bool
	guidancelogCategories map[string]bool
)

// InitGuidanceLog initializes the per-tick guidance logging system.
func InitGuidanceLog(enabled bool, categories string) {
	guidancelogEnabled = enabled
	guidancelogCategories = make(map[string]bool)

	if !enabled {
		return
	}

	if categories == "" || categories == "all" {
		for _, cat := range []string{LogState, LogPeriod, LogBearing, LogFeasibility,
			LogWindTriangle, LogRoll, LogPath} {
			guidancelogCategories[cat] = true
		}
	} else {
		for _, cat := range strings.Split(categories, ",") {
			guidancelogCategories[strings.TrimSpace(cat)] = true
		}
	}
}

// GuidanceLog logs a message with its category.
func GuidanceLog(category string, format string, args ...any) {
	if !guidancelogEnabled || !guidancelogCategories[category] {
		return
	}

	fmt.Printf("[%s] %s\n", category, fmt.Sprintf(format, args...))
}

// GuidanceLogEnabled returns whether logging is enabled for a category.
func GuidanceLogEnabled(category string) bool {
	return guidancelogEnabled && guidancelogCategories[category]
}
