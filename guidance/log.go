// guidance/log.go
// Copyright(c) 2025 flightpath contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package guidance

// Available logging categories
const (
	LogState        = "state"
	LogPeriod       = "period"
	LogBearing      = "bearing"
	LogFeasibility  = "feasibility"
	LogWindTriangle = "windtri"
	LogRoll         = "roll"
	LogPath         = "path"
)
