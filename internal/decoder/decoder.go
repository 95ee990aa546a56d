// Copyright 2022 VMware, Inc. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package decoder feeds StatsD lines through the parser and hands decoded messages to an Exporter
package decoder

import (
	"bufio"
	"context"
	"io"
	"math/rand"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/wavefronthq/wavefront-statsd-decoder/internal/configuration"
	"github.com/wavefronthq/wavefront-statsd-decoder/internal/stats"
	"github.com/wavefronthq/wavefront-statsd-decoder/pkg/statsd"
)

const maxLineSize = 1024 * 1024

// Exporter receives every successfully decoded message.
type Exporter interface {
	Export(msg *statsd.Message) error
}

// Summary counts what happened to the lines of one Run.
type Summary struct {
	Decoded  int64 `json:"decoded"`
	Rejected int64 `json:"rejected"`
	Filtered int64 `json:"filtered"`
	Failed   int64 `json:"failed"`
}

type Decoder struct {
	exporter   Exporter
	stats      *stats.Stats
	store      *RejectStore
	logPercent float32
}

func New(cfg *configuration.Config, exporter Exporter, st *stats.Stats) *Decoder {
	return &Decoder{
		exporter:   exporter,
		stats:      st,
		store:      NewRejectStore(cfg.MaxRejected),
		logPercent: cfg.Sink.ErrorLogPercent,
	}
}

// HandleLine decodes and exports a single line. Blank lines are ignored. A rejected
// line returns its statsd.ParseError.
func (d *Decoder) HandleLine(line string) error {
	if strings.TrimSpace(line) == "" {
		return nil
	}

	msg, err := statsd.Parse(line)
	if err != nil {
		d.stats.Rejected(err)
		d.store.Log(line, err)
		d.logVerboseError(log.Fields{
			"line":  line,
			"error": err,
		}, "rejected line")
		return err
	}
	d.stats.Decoded(msg.Metric.Type())
	log.WithFields(log.Fields{
		"name": msg.Name,
		"type": msg.Metric.Type(),
	}).Trace("decoded line")

	return d.exporter.Export(msg)
}

// Run handles every line of r until EOF or until ctx is done. When r is also an
// io.Closer it is closed once ctx is done, so a read blocked on idle input returns.
func (d *Decoder) Run(ctx context.Context, r io.Reader) (Summary, error) {
	decoded, rejected, filtered := d.stats.Totals()
	var failed int64

	finished := make(chan struct{})
	defer close(finished)
	if closer, ok := r.(io.Closer); ok {
		go func() {
			select {
			case <-ctx.Done():
				if err := closer.Close(); err != nil {
					log.WithError(err).Debug("error closing input")
				}
			case <-finished:
			}
		}()
	}

	lines := bufio.NewScanner(r)
	lines.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for lines.Scan() {
		if ctx.Err() != nil {
			break
		}
		err := d.HandleLine(lines.Text())
		if err == nil {
			continue
		}
		if _, ok := err.(statsd.ParseError); !ok {
			failed++
		}
	}
	runErr := ctx.Err()
	if runErr == nil {
		runErr = lines.Err()
	}

	afterDecoded, afterRejected, afterFiltered := d.stats.Totals()
	return Summary{
		Decoded:  afterDecoded - decoded,
		Rejected: afterRejected - rejected,
		Filtered: afterFiltered - filtered,
		Failed:   failed,
	}, runErr
}

func (d *Decoder) Rejected() []Rejection {
	return d.store.Rejected()
}

// DroppedRejections is the number of rejected lines beyond the configured maximum.
func (d *Decoder) DroppedRejections() int64 {
	return d.store.Dropped()
}

func (d *Decoder) logVerboseError(f log.Fields, msg string) {
	if log.IsLevelEnabled(log.DebugLevel) {
		log.WithFields(f).Error(msg)
	} else if rand.Float32() <= d.logPercent {
		log.WithFields(f).Errorf("%s %s", "[sampled error]", msg)
	}
}
