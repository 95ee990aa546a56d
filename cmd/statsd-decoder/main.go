// Copyright 2018-2019 VMware, Inc. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	gm "github.com/rcrowley/go-metrics"
	log "github.com/sirupsen/logrus"

	"github.com/wavefronthq/wavefront-statsd-decoder/internal/configuration"
	"github.com/wavefronthq/wavefront-statsd-decoder/internal/decoder"
	"github.com/wavefronthq/wavefront-statsd-decoder/internal/filter"
	"github.com/wavefronthq/wavefront-statsd-decoder/internal/options"
	"github.com/wavefronthq/wavefront-statsd-decoder/internal/sink"
	"github.com/wavefronthq/wavefront-statsd-decoder/internal/stats"
)

const (
	exitOK       = 0
	exitFailure  = 1
	exitRejected = 3
)

var (
	version string
	commit  string
)

func main() {
	opt := options.Parse()

	if opt.Version {
		fmt.Println(fmt.Sprintf("version: %s\ncommit: %s", version, commit))
		os.Exit(exitOK)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ctx.Done()
		// restore default handling, a second signal terminates the process
		stop()
	}()
	code := run(ctx, opt, os.Stdin, os.Stdout)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, opt *options.DecoderRunOptions, stdin io.Reader, stdout io.Writer) int {
	setLogLevel(opt.LogLevel)

	cfg, err := loadConfig(opt)
	if err != nil {
		log.Error(err.Error())
		return exitFailure
	}
	log.WithFields(log.Fields{
		"version": version,
		"output":  cfg.Output,
		"inputs":  strings.Join(opt.Inputs, ","),
	}).Info("starting statsd decoder")

	st := stats.New()
	registerVersion(st.Registry())

	exporter, stop, err := createExporter(cfg, st, stdout)
	if err != nil {
		log.Error(err.Error())
		return exitFailure
	}
	defer stop()

	d := decoder.New(cfg, exporter, st)
	var total decoder.Summary
	for _, input := range opt.Inputs {
		summary, err := decodeInput(ctx, d, input, stdin)
		total.Decoded += summary.Decoded
		total.Rejected += summary.Rejected
		total.Filtered += summary.Filtered
		total.Failed += summary.Failed
		if errors.Is(err, context.Canceled) {
			log.WithField("input", input).Info("interrupted, stopping")
			break
		}
		if err != nil {
			log.WithField("input", input).Error(err.Error())
			return exitFailure
		}
	}

	log.WithFields(log.Fields{
		"decoded":  total.Decoded,
		"rejected": total.Rejected,
		"filtered": total.Filtered,
		"failed":   total.Failed,
	}).Info("finished decoding")
	if dropped := d.DroppedRejections(); dropped > 0 {
		log.WithField("count", dropped).Warning("rejected lines beyond maxRejected were not kept")
	}
	for _, rejection := range d.Rejected() {
		log.WithFields(log.Fields{
			"line":   rejection.Line,
			"reason": rejection.Reason,
		}).Debug("rejected line")
	}

	if opt.Strict && total.Rejected > 0 {
		return exitRejected
	}
	return exitOK
}

func setLogLevel(level string) {
	log.SetFormatter(&log.TextFormatter{})
	if lvl, err := log.ParseLevel(level); err == nil {
		log.SetLevel(lvl)
	} else {
		log.SetLevel(log.InfoLevel)
	}
	// stdout carries the decoded output
	log.SetOutput(os.Stderr)
}

func loadConfig(opt *options.DecoderRunOptions) (*configuration.Config, error) {
	cfg := configuration.Default()
	if opt.ConfigFile != "" {
		var err error
		cfg, err = configuration.FromFile(opt.ConfigFile)
		if err != nil {
			return nil, err
		}
	}
	opt.Apply(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// createExporter returns the exporter for the configured output and a function
// releasing everything it started.
func createExporter(cfg *configuration.Config, st *stats.Stats, stdout io.Writer) (decoder.Exporter, func(), error) {
	if cfg.Output == configuration.OutputJSON {
		return decoder.NewJSONExporter(stdout, filter.FromConfig(cfg.Filters), st.Filtered()), func() {}, nil
	}

	client, err := sink.NewClient(cfg.Sink, st.Registry())
	if err != nil {
		return nil, nil, fmt.Errorf("unable to create Wavefront sink: %v", err)
	}
	wfSink := sink.New(client, cfg, st)

	if !cfg.Stats.Enabled {
		return wfSink, wfSink.Stop, nil
	}
	reporter := stats.NewReporter(client, st, cfg.Stats, cfg.Source)
	return wfSink, func() {
		reporter.Stop()
		wfSink.Stop()
	}, nil
}

func decodeInput(ctx context.Context, d *decoder.Decoder, input string, stdin io.Reader) (decoder.Summary, error) {
	if input == options.StdinInput {
		return d.Run(ctx, stdin)
	}
	f, err := os.Open(input)
	if err != nil {
		return decoder.Summary{}, fmt.Errorf("unable to open input: %v", err)
	}
	defer f.Close()
	return d.Run(ctx, f)
}

func registerVersion(registry gm.Registry) {
	parts := strings.Split(version, ".")
	if len(parts) < 3 {
		return
	}
	friendly := fmt.Sprintf("%s.%s%s", parts[0], parts[1], parts[2])
	f, err := strconv.ParseFloat(friendly, 64)
	if err != nil {
		f = 0.0
	}
	gm.GetOrRegisterGaugeFloat64("version", registry).Update(f)
}
