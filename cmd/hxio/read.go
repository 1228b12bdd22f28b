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
	addDevFlags(readCmd, &readOpts.devOpts)
	readCmd.Flags().UintVarP(&readOpts.Samples, "samples", "n", 1, "number of frames to average")
	readCmd.SetHelpTemplate(readCmd.HelpTemplate() + extendedReadHelp)
	rootCmd.AddCommand(readCmd)
}

var (
	readCmd = &cobra.Command{
		Use:   "read",
		Short: "Read the raw count from the HX711",
		Args:  cobra.NoArgs,
		RunE:  read,
	}
	readOpts = struct {
		devOpts
		Samples uint
	}{}
)

var extendedReadHelp = `
The count reported is the decoded signed value, averaged over the requested
number of frames.
`

func read(cmd *cobra.Command, args []string) error {
	err := gpio.Open()
	if err != nil {
		return err
	}
	defer gpio.Close()
	h, err := newDevice(&readOpts.devOpts)
	if err != nil {
		return err
	}
	defer h.Close()
	v, err := h.ReadAverage(int(readOpts.Samples))
	if err != nil {
		return err
	}
	fmt.Println(v)
	return nil
}
