// SPDX-License-Identifier: MIT
//
// Copyright © 2026 Kent Gibson <warthog618@gmail.com>.

//
// Test suite for the hx711 driver.
//
// Tests drive the protocol against a simulated device so no hardware is
// required.
//
package hx711

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warthog618/gpio"
)

// sim simulates the two wire interface of a HX711, serving as both the
// clock and data pin.
//
// Data bits are indexed by clock pulse, MSB first across frames. While the
// clock is idle, reads return the ready levels in order, the last level
// repeating - so a trailing Low leaves a conversion permanently ready.
type sim struct {
	bits    []gpio.Level
	ready   []gpio.Level
	pulses  int
	clock   gpio.Level
	floated bool
}

func (s *sim) Input() {
	s.floated = true
}

func (s *sim) Output() {}

func (s *sim) Write(l gpio.Level) {
	if l == gpio.High && s.clock == gpio.Low {
		s.pulses++
	}
	s.clock = l
}

func (s *sim) Read() gpio.Level {
	if s.clock == gpio.High {
		if i := s.pulses - 1; i < len(s.bits) {
			return s.bits[i]
		}
		return gpio.Low
	}
	if len(s.ready) == 0 {
		return gpio.Low
	}
	l := s.ready[0]
	if len(s.ready) > 1 {
		s.ready = s.ready[1:]
	}
	return l
}

// bitstream lays out the data bits shifted out for the given frame values,
// including the slots read back during the gain select pulses.
func bitstream(gain Gain, vv ...uint32) []gpio.Level {
	bb := []gpio.Level(nil)
	for _, v := range vv {
		for i := frameBits - 1; i >= 0; i-- {
			bb = append(bb, gpio.Level(v>>uint(i)&0x01 == 0x01))
		}
		for i := 0; i < int(gain); i++ {
			bb = append(bb, gpio.Low)
		}
	}
	return bb
}

// newSim creates a driver on a simulated device, with the constructor's
// idle pulse discounted.
func newSim(s *sim) *HX711 {
	h := NewWithPins(0, s, s)
	s.pulses = 0
	return h
}

func TestNewWithPins(t *testing.T) {
	s := &sim{}
	h := NewWithPins(0, s, s)
	require.NotNil(t, h)
	// the constructor issues a single idle pulse and leaves the clock low
	assert.Equal(t, 1, s.pulses)
	assert.Equal(t, gpio.Low, s.clock)
}

func TestDecode(t *testing.T) {
	patterns := []uint32{0, 1, 0x555555, 0x7fffff, 0x800000, 0xaaaaaa, 0xffffff}
	for _, p := range patterns {
		assert.Equal(t, int32(p^0x800000), Decode(p), "pattern %06x", p)
		// Decode is its own inverse
		assert.Equal(t, int32(p), Decode(uint32(Decode(p))), "pattern %06x", p)
	}
}

func TestReadFrame(t *testing.T) {
	s := &sim{
		bits: bitstream(GainA128, 0xaaaaaa),
		// not ready for the first two polls
		ready: []gpio.Level{gpio.High, gpio.High, gpio.Low},
	}
	h := newSim(s)
	h.SetPollInterval(0)
	v, err := h.ReadFrame()
	require.Nil(t, err)
	assert.Equal(t, int32(0xaaaaaa^0x800000), v)
	// 24 data bits plus the gain select pulse
	assert.Equal(t, 25, s.pulses)
	assert.Equal(t, gpio.Low, s.clock)
}

func TestReadFrameBits(t *testing.T) {
	patterns := []uint32{0, 0xffffff, 0x800000, 0x123456}
	for _, p := range patterns {
		s := &sim{bits: bitstream(GainA128, p)}
		h := newSim(s)
		v, err := h.ReadFrame()
		if err != nil {
			t.Fatal("ReadFrame returned error", err)
		}
		if v != Decode(p) {
			t.Errorf("pattern %06x: got %d, want %d", p, v, Decode(p))
		}
	}
}

func TestReadFrameTimeout(t *testing.T) {
	s := &sim{ready: []gpio.Level{gpio.High}}
	h := newSim(s)
	h.SetPollInterval(0)
	h.SetTimeout(time.Millisecond)
	_, err := h.ReadFrame()
	assert.Equal(t, ErrTimeout, err)
	// no clock pulses are issued while waiting
	assert.Equal(t, 0, s.pulses)
}

func TestGainPulses(t *testing.T) {
	gains := []Gain{GainA128, GainB32, GainA64}
	for _, g := range gains {
		s := &sim{bits: bitstream(g, 0x400000)}
		h := newSim(s)
		h.SetGain(g)
		v, err := h.ReadFrame()
		require.Nil(t, err)
		assert.Equal(t, Decode(0x400000), v)
		assert.Equal(t, frameBits+int(g), s.pulses, "gain %d", g)
		assert.Equal(t, gpio.Low, s.clock, "gain %d", g)
	}
}

func TestReadAverage(t *testing.T) {
	s := &sim{bits: bitstream(GainA128, 0x800004, 0x800008)}
	h := newSim(s)
	v, err := h.ReadAverage(2)
	require.Nil(t, err)
	assert.Equal(t, (Decode(0x800004)+Decode(0x800008))/2, v)
	assert.Equal(t, 50, s.pulses)
}

func TestTare(t *testing.T) {
	s := &sim{bits: bitstream(GainA128, 0x842110, 0x842112)}
	h := newSim(s)
	v, err := h.Tare(2)
	require.Nil(t, err)
	assert.Equal(t, (Decode(0x842110)+Decode(0x842112))/2, v)
}

func TestPowerCycle(t *testing.T) {
	s := &sim{}
	h := newSim(s)
	h.PowerDown()
	assert.Equal(t, gpio.High, s.clock)
	h.PowerUp()
	assert.Equal(t, gpio.Low, s.clock)
	h.Reset()
	assert.Equal(t, gpio.Low, s.clock)
}

func TestClose(t *testing.T) {
	s := &sim{}
	h := newSim(s)
	h.Close()
	if !s.floated {
		t.Error("Close did not float the clock pin")
	}
}
