// main.go
// Copyright(c) 2025 flightpath contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

// pathsim flies a guidance scenario closed-loop against the point-mass
// aircraft model and optionally records per-tick telemetry for offline
// analysis.

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/mmp/flightpath/guidance"
	"github.com/mmp/flightpath/log"
	"github.com/mmp/flightpath/math"
	"github.com/mmp/flightpath/sim"
	"github.com/mmp/flightpath/telemetry"
)

var (
	logLevel         = flag.String("loglevel", "info", "logging level: debug, info, warn, error")
	logDir           = flag.String("logdir", "", "log file directory")
	scenarioFilename = flag.String("scenario", "", "filename of JSON file with a scenario definition")
	steps            = flag.Int("steps", 4000, "number of simulation steps to run")
	dt               = flag.Float64("dt", 0.05, "simulation step in seconds")
	windSpeed        = flag.Float64("wind", 0, "steady wind speed in m/s")
	windDirection    = flag.Float64("winddir", 270, "direction the wind blows from, degrees")
	gustSigma        = flag.Float64("gust", 0, "gust standard deviation in m/s (0 disables gusts)")
	seed             = flag.Int64("seed", 1, "gust random seed")
	recordFilename   = flag.String("record", "", "write per-tick telemetry to this file")
	dumpFilename     = flag.String("dump", "", "print a summary of a recorded telemetry file and exit")
	guidanceLog      = flag.Bool("guidancelog", false, "enable per-tick guidance logging (requires the guidancelog build tag)")
	guidanceLogCats  = flag.String("guidancelog-categories", "all", "guidance log categories (comma-separated: state,period,bearing,feasibility,windtri,roll,path)")
)

func main() {
	flag.Parse()

	lg := log.New(*logLevel, *logDir)
	guidance.InitGuidanceLog(*guidanceLog, *guidanceLogCats)

	if *dumpFilename != "" {
		if err := dumpTelemetry(*dumpFilename); err != nil {
			lg.Errorf("%s: %v", *dumpFilename, err)
			os.Exit(1)
		}
		return
	}

	var scenario *sim.Scenario
	if *scenarioFilename != "" {
		var err error
		scenario, err = loadScenario(*scenarioFilename)
		if err != nil {
			lg.Errorf("%s: %v", *scenarioFilename, err)
			os.Exit(1)
		}
	} else {
		scenario = demoScenario()
	}

	scenario.Steps = *steps
	scenario.Dt = float32(*dt)
	scenario.Wind = sim.MakeWind(float32(*windSpeed), float32(*windDirection),
		float32(*gustSigma), *seed)

	var rec *telemetry.Recorder
	if *recordFilename != "" {
		f, err := os.Create(*recordFilename)
		if err != nil {
			lg.Errorf("%s: %v", *recordFilename, err)
			os.Exit(1)
		}
		defer f.Close()

		if rec, err = telemetry.NewRecorder(f); err != nil {
			lg.Errorf("%s: %v", *recordFilename, err)
			os.Exit(1)
		}
		defer rec.Close()
	}

	stats, err := scenario.Run(rec, lg)
	if err != nil {
		lg.Errorf("run %q: %v", scenario.Name, err)
		os.Exit(1)
	}

	fmt.Printf("%s: %d steps, %d waypoints reached, max |track error| %.1f m, final position %s\n",
		scenario.Name, stats.Steps, stats.WaypointsReached, stats.MaxAbsTrackError,
		stats.FinalPosition.DDString())
}

func loadScenario(filename string) (*sim.Scenario, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var s sim.Scenario
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// demoScenario is a 2 km square circuit near KPHL, flown when no scenario
// file is given.
func demoScenario() *sim.Scenario {
	start := math.Point2LL{-75.2749, 39.8609}
	s := sim.DefaultScenario("square-circuit", start)
	s.Waypoints = []math.Point2LL{
		start,
		math.Offset2LL(start, [2]float32{2000, 0}),
		math.Offset2LL(start, [2]float32{2000, 2000}),
		math.Offset2LL(start, [2]float32{0, 2000}),
		start,
	}
	return s
}

func dumpTelemetry(filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	recs, err := telemetry.ReadAll(f)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		fmt.Println("no records")
		return nil
	}

	var maxErr, maxRoll float32
	for _, r := range recs {
		if e := math.Abs(r.Guidance.SignedTrackError); e > maxErr {
			maxErr = e
		}
		if a := math.Abs(r.Guidance.RollSetpoint); a > maxRoll {
			maxRoll = a
		}
	}
	last := recs[len(recs)-1]
	fmt.Printf("%d records over %.1f s\n", len(recs), last.Time)
	fmt.Printf("max |track error| %.1f m, max |roll setpoint| %.1f deg\n",
		maxErr, math.Degrees(maxRoll))
	fmt.Printf("final position %s, heading %.0f deg, airspeed %.1f m/s\n",
		last.Position.DDString(), math.Degrees(last.Heading), last.Airspeed)
	return nil
}
