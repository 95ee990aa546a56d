// Copyright 2018-2019 VMware, Inc. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package options

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/wavefronthq/wavefront-statsd-decoder/internal/configuration"
)

const StdinInput = "-"

var InvalidOutputErr = errors.New("--output must be json or wavefront")

type DecoderRunOptions struct {
	Version    bool
	ConfigFile string
	LogLevel   string
	Inputs     []string
	Output     string
	Strict     bool
}

func NewDecoderRunOptions() *DecoderRunOptions {
	return &DecoderRunOptions{}
}

func (opts *DecoderRunOptions) Parse(fs *pflag.FlagSet, args []string) error {
	fs.BoolVar(&opts.Version, "version", false, "print version info and exit")
	fs.StringVar(&opts.ConfigFile, "config-file", "", "optional configuration file")
	fs.StringVar(&opts.LogLevel, "log-level", "info", "one of info, debug or trace")
	fs.StringArrayVar(&opts.Inputs, "input", nil, "file to read StatsD lines from, repeatable. \"-\" reads stdin (default)")
	fs.StringVar(&opts.Output, "output", "", "json or wavefront, overrides the configuration file")
	fs.BoolVar(&opts.Strict, "strict", false, "exit with a non-zero status when any line is rejected")

	if err := fs.Parse(args); err != nil {
		return err
	}

	// positional arguments are inputs too
	opts.Inputs = append(opts.Inputs, fs.Args()...)
	if len(opts.Inputs) == 0 {
		opts.Inputs = []string{StdinInput}
	}

	switch opts.Output {
	case "", configuration.OutputJSON, configuration.OutputWavefront:
	default:
		return InvalidOutputErr
	}
	return nil
}

// Apply overrides configuration values that were set on the command line.
func (opts *DecoderRunOptions) Apply(cfg *configuration.Config) {
	if opts.Output != "" {
		cfg.Output = opts.Output
	}
}

func Parse() *DecoderRunOptions {
	opts := NewDecoderRunOptions()
	fs := pflag.NewFlagSet(os.Args[0], pflag.ContinueOnError)
	if err := opts.Parse(fs, os.Args[1:]); err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	return opts
}
