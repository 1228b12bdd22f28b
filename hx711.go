// SPDX-License-Identifier: MIT
//
// Copyright © 2026 Kent Gibson <warthog618@gmail.com>.

// Package hx711 provides a device driver for the Avia Semiconductor HX711
// 24-bit load cell ADC, connected to the Raspberry Pi by two GPIO lines -
// PD_SCK and DOUT.
//
// The HX711 is read with a bit bashed serial protocol: once DOUT drops low a
// conversion is ready, and each clock pulse on PD_SCK shifts out one data
// bit, MSB first. A frame is 24 data bits followed by one to three extra
// pulses that select the channel and gain for the next conversion.
//
// Example of use:
//
//	gpio.Open()
//	defer gpio.Close()
//
//	h := hx711.New(time.Microsecond, gpio.GPIO6, gpio.GPIO5)
//	defer h.Close()
//
//	v, err := h.ReadFrame()
//
package hx711

import (
	"errors"
	"sync"
	"time"

	"github.com/warthog618/gpio"
)

// ClockPin is the subset of the gpio Pin API used to drive PD_SCK.
//
// It is satisfied by *gpio.Pin, or by a test double.
type ClockPin interface {
	Input()
	Output()
	Write(gpio.Level)
}

// DataPin is the subset of the gpio Pin API used to sample DOUT.
//
// It is satisfied by *gpio.Pin, or by a test double.
type DataPin interface {
	Input()
	Read() gpio.Level
}

// Gain selects the input channel and amplifier gain applied to subsequent
// conversions.
//
// The value is the number of clock pulses appended to the 24 data bits.
type Gain int

const (
	// GainA128 selects channel A with a gain of 128 (the power-on default).
	GainA128 Gain = 1
	// GainB32 selects channel B with a gain of 32.
	GainB32 Gain = 2
	// GainA64 selects channel A with a gain of 64.
	GainA64 Gain = 3
)

const (
	frameBits = 24
	frameMask = 0xffffff
	signBit   = 0x800000

	// Holding PD_SCK high for 60µs powers the chip down, so hold a bit
	// longer than that when doing so deliberately.
	powerDownHold = 100 * time.Microsecond
)

var (
	// ErrTimeout indicates the sensor did not signal a conversion ready
	// within the configured timeout.
	ErrTimeout = errors.New("conversion not ready")
)

// HX711 reads load cell values from a connected HX711.
type HX711 struct {
	mu sync.Mutex
	// settle time after each clock edge
	tset time.Duration
	// time between polls of DOUT while waiting for a conversion
	tpoll time.Duration
	// bound on waiting for a conversion - zero waits forever
	timeout time.Duration
	gain    Gain
	sck     ClockPin
	dout    DataPin
}

// New creates a HX711 attached to the given GPIO pins.
//
// The clock pulse settle time, tset, determines the pace of the protocol.
// The gpio package must be open.
func New(tset time.Duration, sck, dout int) *HX711 {
	return NewWithPins(tset, gpio.NewPin(sck), gpio.NewPin(dout))
}

// NewWithPins creates a HX711 on explicitly provided pins, which may be any
// implementation of the pin interfaces, including test doubles.
func NewWithPins(tset time.Duration, sck ClockPin, dout DataPin) *HX711 {
	h := &HX711{
		tset:  tset,
		tpoll: 100 * time.Microsecond,
		gain:  GainA128,
		sck:   sck,
		dout:  dout,
	}
	h.sck.Write(gpio.Low)
	h.sck.Output()
	h.dout.Input()
	// an idle pulse to return the device interface to a known state
	h.pulse()
	return h
}

// Close releases the pins used to drive the HX711.
func (h *HX711) Close() {
	h.mu.Lock()
	h.sck.Input()
	h.mu.Unlock()
}

// SetGain sets the channel and gain applied to subsequent conversions.
//
// The new gain is clocked out with the next frame read and so takes effect
// on the conversion after that.
func (h *HX711) SetGain(g Gain) {
	h.mu.Lock()
	h.gain = g
	h.mu.Unlock()
}

// SetTimeout bounds the wait for a conversion within a ReadFrame.
//
// A zero timeout, the default, waits indefinitely.
func (h *HX711) SetTimeout(timeout time.Duration) {
	h.mu.Lock()
	h.timeout = timeout
	h.mu.Unlock()
}

// SetPollInterval sets the time slept between polls of DOUT while waiting
// for a conversion.
func (h *HX711) SetPollInterval(tpoll time.Duration) {
	h.mu.Lock()
	h.tpoll = tpoll
	h.mu.Unlock()
}

// ReadFrame reads a single conversion from the HX711.
//
// It blocks until the device signals a conversion is ready, bounded by the
// timeout set with SetTimeout, then clocks out the 24 data bits and the
// trailing gain select pulses, and returns the decoded signed count.
func (h *HX711) ReadFrame() (int32, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.readFrame()
}

// ReadAverage reads n frames and returns their mean.
//
// Averaging smooths the noise inherent in load cell readings.
func (h *HX711) ReadAverage(n int) (int32, error) {
	if n < 1 {
		n = 1
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	var sum int64
	for i := 0; i < n; i++ {
		v, err := h.readFrame()
		if err != nil {
			return 0, err
		}
		sum += int64(v)
	}
	return int32(sum / int64(n)), nil
}

// Tare measures the current zero point of the cell as the average of n
// frames.
//
// The returned count is suitable as the offset for a Scale.
func (h *HX711) Tare(n int) (int32, error) {
	return h.ReadAverage(n)
}

// PowerDown puts the HX711 into power down mode.
func (h *HX711) PowerDown() {
	h.mu.Lock()
	h.sck.Write(gpio.Low)
	h.sck.Write(gpio.High)
	time.Sleep(powerDownHold)
	h.mu.Unlock()
}

// PowerUp wakes the HX711.
//
// On power up the chip resets to channel A with a gain of 128, so the first
// conversion read uses that gain regardless of the gain set with SetGain.
// Subsequent conversions use the set gain.
func (h *HX711) PowerUp() {
	h.mu.Lock()
	h.sck.Write(gpio.Low)
	time.Sleep(powerDownHold)
	h.mu.Unlock()
}

// Reset power cycles the HX711, returning it to a known state.
func (h *HX711) Reset() {
	h.PowerDown()
	h.PowerUp()
}

// Decode maps a raw 24-bit frame value to a signed count.
//
// The HX711 shifts out an offset binary style encoding where inverting the
// top bit yields the signed count. Decode is its own inverse.
func Decode(frame uint32) int32 {
	return int32((frame ^ signBit) & frameMask)
}

// readFrame reads a frame - 24 data bits and the gain select pulses.
// Assumes the caller holds the mu lock.
func (h *HX711) readFrame() (int32, error) {
	if err := h.waitReady(); err != nil {
		return 0, err
	}
	var d uint32
	for i := 0; i < frameBits; i++ {
		d = d << 1
		if h.pulse() {
			d = d | 0x01
		}
	}
	// always clock out the gain select or the device stops converting
	for i := 0; i < int(h.gain); i++ {
		h.pulse()
	}
	return Decode(d), nil
}

// waitReady blocks until DOUT drops low, indicating a conversion is ready
// to be clocked out.
// No clock pulses are issued while waiting.
func (h *HX711) waitReady() error {
	var deadline time.Time
	if h.timeout != 0 {
		deadline = time.Now().Add(h.timeout)
	}
	for h.dout.Read() == gpio.High {
		if !deadline.IsZero() && time.Now().After(deadline) {
			return ErrTimeout
		}
		time.Sleep(h.tpoll)
	}
	return nil
}

// pulse issues one clock pulse and returns the level of DOUT sampled while
// the clock is high.
// The clock is always left low. The settle time must be kept well short of
// the 60µs power down threshold or the chip resets mid-frame.
func (h *HX711) pulse() gpio.Level {
	h.sck.Write(gpio.High)
	time.Sleep(h.tset)
	b := h.dout.Read()
	h.sck.Write(gpio.Low)
	time.Sleep(h.tset)
	return b
}
