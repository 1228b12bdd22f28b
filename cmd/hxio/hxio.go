// SPDX-License-Identifier: MIT
//
// Copyright © 2026 Kent Gibson <warthog618@gmail.com>.

// +build linux

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/warthog618/gpio"
	"github.com/warthog618/hx711"
)

var rootCmd = &cobra.Command{
	Use:   "hxio",
	Short: "hxio is a utility to read HX711 load cell ADCs on a Raspberry Pi",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
	Version: version,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func logErr(cmd *cobra.Command, err error) {
	fmt.Fprintf(os.Stderr, "hxio %s: %s\n", cmd.Name(), err)
}

// devOpts are the connection and timing options common to all the commands
// that touch the device.
type devOpts struct {
	Sck     uint
	Dout    uint
	Settle  time.Duration
	Timeout time.Duration
	Gain    uint
}

func addDevFlags(cmd *cobra.Command, opts *devOpts) {
	cmd.Flags().UintVar(&opts.Sck, "sck", uint(gpio.GPIO6), "GPIO pin driving PD_SCK")
	cmd.Flags().UintVar(&opts.Dout, "dout", uint(gpio.GPIO5), "GPIO pin sampling DOUT")
	cmd.Flags().DurationVar(&opts.Settle, "settle", time.Microsecond, "settle time after each clock edge")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 2*time.Second, "bound on waiting for a conversion, 0 to wait forever")
	cmd.Flags().UintVarP(&opts.Gain, "gain", "g", 128, "gain - 128 or 64 for channel A, 32 for channel B")
}

// newDevice creates a HX711 from the command options.
// Assumes the gpio package is open.
func newDevice(opts *devOpts) (*hx711.HX711, error) {
	var g hx711.Gain
	switch opts.Gain {
	case 128:
		g = hx711.GainA128
	case 64:
		g = hx711.GainA64
	case 32:
		g = hx711.GainB32
	default:
		return nil, fmt.Errorf("unsupported gain '%d'", opts.Gain)
	}
	h := hx711.New(opts.Settle, int(opts.Sck), int(opts.Dout))
	h.SetTimeout(opts.Timeout)
	h.SetGain(g)
	return h, nil
}
