// SPDX-License-Identifier: MIT
//
// Copyright © 2026 Kent Gibson <warthog618@gmail.com>.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/warthog618/config"
	"github.com/warthog618/config/blob"
	"github.com/warthog618/config/blob/decoder/json"
	"github.com/warthog618/config/dict"
	"github.com/warthog618/config/env"
	"github.com/warthog618/config/pflag"
	"github.com/warthog618/gpio"
	"github.com/warthog618/hx711"
)

// This example continuously reads a HX711 connected to the RPI by two data
// lines - SCK and DOUT. The default pin assignments and calibration are
// defined in loadConfig, but can be altered via configuration (env, flag or
// config file). One line is printed per frame with the raw count, the
// calibrated value and the average frame rate.
func main() {
	cfg := loadConfig()
	sc, err := hx711.NewScale(
		cfg.MustGet("offset").Float(),
		cfg.MustGet("scale").Float())
	if err != nil {
		panic(err)
	}
	err = gpio.Open()
	if err != nil {
		panic(err)
	}
	defer gpio.Close()
	h := hx711.New(
		cfg.MustGet("settle").Duration(),
		cfg.MustGet("sck").Int(),
		cfg.MustGet("dout").Int())
	defer h.Close()
	h.SetTimeout(cfg.MustGet("timeout").Duration())

	// capture exit signals to ensure pins are released on exit.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)
	done := make(chan struct{})
	go func() {
		<-quit
		close(done)
	}()

	m := hx711.NewMonitor(h, sc, cfg.MustGet("interval").Duration())
	err = m.Run(done, func(s hx711.Sample) {
		fmt.Printf("count=%d, val=%f framerate=%f\n", s.Raw, s.Value, s.Rate)
	})
	if err != nil {
		panic(err)
	}
}

func loadConfig() *config.Config {
	defaultConfig := map[string]interface{}{
		"sck":      gpio.GPIO6,
		"dout":     gpio.GPIO5,
		"settle":   "1us",
		"timeout":  "2s",
		"interval": "200ms",
		"offset":   8661777,
		"scale":    -960.33,
	}
	def := dict.New(dict.WithMap(defaultConfig))
	cfg := config.New(
		pflag.New(pflag.WithFlags(
			[]pflag.Flag{{Short: 'c', Name: "config-file"}})),
		env.New(env.WithEnvPrefix("WEIGH_")),
		config.WithDefault(def))
	cfg.Append(
		blob.NewConfigFile(cfg, "config.file", "weigh.json", json.NewDecoder()))
	cfg = cfg.GetConfig("", config.WithMust)
	return cfg
}
