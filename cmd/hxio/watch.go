// SPDX-License-Identifier: MIT
//
// Copyright © 2026 Kent Gibson <warthog618@gmail.com>.

// +build linux

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/warthog618/gpio"
	"github.com/warthog618/hx711"
)

func init() {
	addDevFlags(watchCmd, &watchOpts.devOpts)
	watchCmd.Flags().Float64Var(&watchOpts.Offset, "offset", 8661777, "raw count at the zero point")
	watchCmd.Flags().Float64Var(&watchOpts.Scale, "scale", -960.33, "raw counts per physical unit")
	watchCmd.Flags().DurationVarP(&watchOpts.Interval, "interval", "i", 200*time.Millisecond, "time between frames")
	rootCmd.AddCommand(watchCmd)
}

var (
	watchCmd = &cobra.Command{
		Use:   "watch",
		Short: "Continuously read the HX711 and report calibrated values",
		Long:  `Read frames from the HX711 and print the raw count, calibrated value and frame rate until interrupted.`,
		Args:  cobra.NoArgs,
		RunE:  watch,
	}
	watchOpts = struct {
		devOpts
		Offset   float64
		Scale    float64
		Interval time.Duration
	}{}
)

func watch(cmd *cobra.Command, args []string) error {
	sc, err := hx711.NewScale(watchOpts.Offset, watchOpts.Scale)
	if err != nil {
		return err
	}
	err = gpio.Open()
	if err != nil {
		return err
	}
	defer gpio.Close()
	h, err := newDevice(&watchOpts.devOpts)
	if err != nil {
		return err
	}
	defer h.Close()

	// capture exit signals to ensure pins are released on exit.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)
	done := make(chan struct{})
	go func() {
		<-quit
		close(done)
	}()

	m := hx711.NewMonitor(h, sc, watchOpts.Interval)
	for {
		err = m.Run(done, func(s hx711.Sample) {
			fmt.Printf("count=%d, val=%f framerate=%f\n", s.Raw, s.Value, s.Rate)
		})
		if err != hx711.ErrTimeout {
			return err
		}
		// sensor not responding - each poll cycle is the retry
		logErr(cmd, err)
	}
}
