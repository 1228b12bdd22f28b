// SPDX-License-Identifier: MIT
//
// Copyright © 2026 Kent Gibson <warthog618@gmail.com>.

package hx711

import (
	"errors"
	"time"
)

var (
	// ErrZeroScale indicates a Scale was constructed with a zero scale
	// factor, which cannot produce a finite value.
	ErrZeroScale = errors.New("zero scale")
)

// Scale converts raw HX711 counts into a physical unit.
//
// The conversion is linear - the offset locates the zero point in raw
// counts, and the scale is the number of counts per physical unit.
type Scale struct {
	offset float64
	scale  float64
}

// NewScale returns a Scale with the given offset and scale factor.
//
// The scale factor must be nonzero, so a misconfiguration is caught here
// rather than as a runtime division.
func NewScale(offset, scale float64) (Scale, error) {
	if scale == 0 {
		return Scale{}, ErrZeroScale
	}
	return Scale{offset: offset, scale: scale}, nil
}

// Calibrate converts a raw count into the physical unit.
func (s Scale) Calibrate(raw int32) float64 {
	return (float64(raw) - s.offset) / s.scale
}

// Counter tracks the frames read since a start time to report acquisition
// throughput.
type Counter struct {
	start  time.Time
	frames int
}

// NewCounter returns a Counter with its start time set to now.
func NewCounter(now time.Time) *Counter {
	return &Counter{start: now}
}

// Frame records a completed frame and returns the average frames per second
// since start, or 0 if no time has elapsed.
func (c *Counter) Frame(now time.Time) float64 {
	c.frames++
	elapsed := now.Sub(c.start).Seconds()
	if elapsed <= 0 {
		return 0
	}
	return float64(c.frames) / elapsed
}

// Frames returns the number of frames recorded.
func (c *Counter) Frames() int {
	return c.frames
}
