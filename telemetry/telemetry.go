// telemetry/telemetry.go
// Copyright(c) 2025 flightpath contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package telemetry records per-tick guidance and aircraft state as a
// zstd-compressed msgpack stream, for offline analysis of runs.
package telemetry

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/mmp/flightpath/guidance"
	"github.com/mmp/flightpath/math"
)

// streamVersion is bumped whenever the Record layout changes
// incompatibly.
const streamVersion = 1

// Record is one tick of a run.
type Record struct {
	Tick     int             `msgpack:"tick"`
	Time     float32         `msgpack:"time"`
	Position math.Point2LL   `msgpack:"pos"`
	Heading  float32         `msgpack:"hdg"`
	Airspeed float32         `msgpack:"ias"`
	Wind     [2]float32      `msgpack:"wind"`
	Guidance guidance.Status `msgpack:"guidance"`
}

// Recorder streams Records to an underlying writer. Close must be called
// to flush the compressor.
type Recorder struct {
	zw  *zstd.Encoder
	enc *msgpack.Encoder
}

func NewRecorder(w io.Writer) (*Recorder, error) {
	zw, err := zstd.NewWriter(w)
	if err != nil {
		return nil, err
	}

	enc := msgpack.NewEncoder(zw)
	if err := enc.Encode(streamVersion); err != nil {
		zw.Close()
		return nil, err
	}

	return &Recorder{zw: zw, enc: enc}, nil
}

func (r *Recorder) Append(rec Record) error {
	return r.enc.Encode(rec)
}

func (r *Recorder) Close() error {
	return r.zw.Close()
}

// ReadAll decodes an entire recorded stream.
func ReadAll(r io.Reader) ([]Record, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	dec := msgpack.NewDecoder(zr)

	var version int
	if err := dec.Decode(&version); err != nil {
		return nil, fmt.Errorf("telemetry: reading stream version: %w", err)
	}
	if version != streamVersion {
		return nil, fmt.Errorf("telemetry: stream version %d, expected %d",
			version, streamVersion)
	}

	var recs []Record
	for {
		var rec Record
		if err := dec.Decode(&rec); err == io.EOF {
			return recs, nil
		} else if err != nil {
			return recs, err
		}
		recs = append(recs, rec)
	}
}
