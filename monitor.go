// SPDX-License-Identifier: MIT
//
// Copyright © 2026 Kent Gibson <warthog618@gmail.com>.

package hx711

import (
	"time"
)

// Sample is one acquired and calibrated measurement.
type Sample struct {
	// Raw is the decoded count read from the device.
	Raw int32
	// Value is the raw count converted to the physical unit.
	Value float64
	// Rate is the average frames per second since acquisition started.
	Rate float64
}

// Monitor repeatedly reads frames from a HX711 and converts them into
// calibrated samples.
type Monitor struct {
	hx *HX711
	sc Scale
	// time slept between frames - a pacing policy, not a protocol
	// requirement
	interval time.Duration
}

// NewMonitor creates a Monitor that paces reads by the given interval.
func NewMonitor(hx *HX711, sc Scale, interval time.Duration) *Monitor {
	return &Monitor{hx: hx, sc: sc, interval: interval}
}

// Run acquires frames until done is closed, passing each sample to emit.
//
// Run blocks for the duration of the acquisition. It returns nil once done
// is closed, or ErrTimeout if a frame read times out - the caller may
// resume by calling Run again.
func (m *Monitor) Run(done <-chan struct{}, emit func(Sample)) error {
	c := NewCounter(time.Now())
	for {
		select {
		case <-done:
			return nil
		default:
		}
		raw, err := m.hx.ReadFrame()
		if err != nil {
			return err
		}
		emit(Sample{
			Raw:   raw,
			Value: m.sc.Calibrate(raw),
			Rate:  c.Frame(time.Now()),
		})
		select {
		case <-done:
			return nil
		case <-time.After(m.interval):
		}
	}
}
