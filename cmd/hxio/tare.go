// SPDX-License-Identifier: MIT
//
// Copyright © 2026 Kent Gibson <warthog618@gmail.com>.

// +build linux

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/warthog618/gpio"
)

func init() {
	addDevFlags(tareCmd, &tareOpts.devOpts)
	tareCmd.Flags().UintVarP(&tareOpts.Samples, "samples", "n", 10, "number of frames to average")
	tareCmd.SetHelpTemplate(tareCmd.HelpTemplate() + extendedTareHelp)
	rootCmd.AddCommand(tareCmd)
}

var (
	tareCmd = &cobra.Command{
		Use:   "tare",
		Short: "Measure the zero offset of an unloaded cell",
		Args:  cobra.NoArgs,
		RunE:  tare,
	}
	tareOpts = struct {
		devOpts
		Samples uint
	}{}
)

var extendedTareHelp = `
Run with the cell unloaded. The reported count is the offset to use when
calibrating subsequent reads.
`

func tare(cmd *cobra.Command, args []string) error {
	err := gpio.Open()
	if err != nil {
		return err
	}
	defer gpio.Close()
	h, err := newDevice(&tareOpts.devOpts)
	if err != nil {
		return err
	}
	defer h.Close()
	v, err := h.Tare(int(tareOpts.Samples))
	if err != nil {
		return err
	}
	fmt.Println(v)
	return nil
}
