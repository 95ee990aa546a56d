// Copyright 2018-2019 VMware, Inc. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package sink sends decoded StatsD messages to Wavefront
package sink

import (
	"math/rand"
	"strings"

	gm "github.com/rcrowley/go-metrics"
	log "github.com/sirupsen/logrus"
	"github.com/wavefronthq/wavefront-sdk-go/event"

	"github.com/wavefronthq/wavefront-statsd-decoder/internal/configuration"
	"github.com/wavefronthq/wavefront-statsd-decoder/internal/filter"
	"github.com/wavefronthq/wavefront-statsd-decoder/internal/stats"
	"github.com/wavefronthq/wavefront-statsd-decoder/internal/wf"
	"github.com/wavefronthq/wavefront-statsd-decoder/pkg/statsd"
)

// the maximum numbers of tags allowed in a wavefront point not including source
const maxWavefrontTags = 20

var sanitizedChars = strings.NewReplacer("+", "-")

// Client is the part of a Wavefront sender the sink needs.
type Client interface {
	wf.Sender
	Flush() error
	Close()
}

type Sink struct {
	client     Client
	converter  *wf.Converter
	globalTags map[string]string
	filters    filter.Filter
	filtered   wf.Incrementer
	logPercent float32

	sentPoints gm.Counter
	errPoints  gm.Counter
	sentEvents gm.Counter
	errEvents  gm.Counter
}

// New returns a Sink exporting through client. Its counters live in the registry of
// st, and messages dropped by the configured filters count as filtered there.
func New(client Client, cfg *configuration.Config, st *stats.Stats) *Sink {
	registry := st.Registry()
	return &Sink{
		client:     client,
		converter:  wf.NewConverter(cfg.Prefix, cfg.Source),
		globalTags: cfg.Tags,
		filters:    filter.FromConfig(cfg.Filters),
		filtered:   st.Filtered(),
		logPercent: cfg.Sink.ErrorLogPercent,
		sentPoints: gm.GetOrRegisterCounter("wavefront.points.sent.count", registry),
		errPoints:  gm.GetOrRegisterCounter("wavefront.points.errors.count", registry),
		sentEvents: gm.GetOrRegisterCounter("wavefront.events.sent.count", registry),
		errEvents:  gm.GetOrRegisterCounter("wavefront.events.errors.count", registry),
	}
}

func (sink *Sink) Name() string {
	return "wavefront_sink"
}

// Export converts msg and sends the resulting point or event. A message removed by
// the filters is not an error.
func (sink *Sink) Export(msg *statsd.Message) error {
	m := sink.converter.Convert(msg)
	if m == nil {
		return nil
	}
	m.AddTags(sink.globalTags)
	m = wf.Filter(sink.filters, sink.filtered, m)
	if m == nil {
		return nil
	}

	sent, errs := sink.sentPoints, sink.errPoints
	if _, ok := m.(*wf.Event); ok {
		sent, errs = sink.sentEvents, sink.errEvents
	}

	if err := m.Send(sink); err != nil {
		errs.Inc(1)
		sink.logVerboseError(log.Fields{
			"name":  m.Name(),
			"error": err,
		}, "error sending "+string(msg.Metric.Type()))
		return err
	}
	sent.Inc(1)
	return nil
}

func (sink *Sink) SendMetric(metricName string, value float64, timestamp int64, source string, tags map[string]string) error {
	metricName = sanitizedChars.Replace(metricName)
	logTagCleaningReasons(metricName, cleanTags(tags, maxWavefrontTags))
	return sink.client.SendMetric(metricName, value, timestamp, source, tags)
}

func (sink *Sink) SendEvent(name string, startMillis, endMillis int64, source string, tags map[string]string, setters ...event.Option) error {
	logTagCleaningReasons(name, cleanTags(tags, maxWavefrontTags))
	return sink.client.SendEvent(name, startMillis, endMillis, source, tags, setters...)
}

// Stop flushes buffered data and closes the client.
func (sink *Sink) Stop() {
	if err := sink.client.Flush(); err != nil {
		log.WithError(err).Warning("error flushing Wavefront sink")
	}
	sink.client.Close()
	sink.logStatus()
}

func (sink *Sink) logVerboseError(f log.Fields, msg string) {
	if log.IsLevelEnabled(log.DebugLevel) {
		log.WithFields(f).Error(msg)
	} else if sink.loggingAllowed() {
		log.WithFields(f).Errorf("%s %s", "[sampled error]", msg)
	}
}

func (sink *Sink) loggingAllowed() bool {
	return rand.Float32() <= sink.logPercent
}

func (sink *Sink) logStatus() {
	log.WithFields(log.Fields{
		"points.sent":   sink.sentPoints.Count(),
		"points.errors": sink.errPoints.Count(),
		"events.sent":   sink.sentEvents.Count(),
		"events.errors": sink.errEvents.Count(),
	}).Info("Wavefront sink stopped")
}
