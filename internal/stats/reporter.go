// Copyright 2022 VMware, Inc. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package stats

import (
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/wavefronthq/go-metrics-wavefront/reporting"
	"github.com/wavefronthq/wavefront-sdk-go/application"
	"github.com/wavefronthq/wavefront-sdk-go/histogram"
	"github.com/wavefronthq/wavefront-sdk-go/senders"

	"github.com/wavefronthq/wavefront-statsd-decoder/internal/configuration"
)

const (
	applicationName = "wavefront-statsd-decoder"
	serviceName     = "decoder"
)

// Reporter periodically sends the counters of a Stats through a sender it does not own.
type Reporter struct {
	reporting.WavefrontMetricsReporter
	sender *borrowedSender
}

// NewReporter starts reporting s through sender. Stop must be called before the
// sender is closed.
func NewReporter(sender senders.Sender, s *Stats, cfg configuration.StatsConfig, source string) *Reporter {
	log.WithFields(log.Fields{
		"prefix":   cfg.Prefix,
		"interval": cfg.Interval,
	}).Info("reporting internal stats")

	borrowed := &borrowedSender{Sender: sender}
	return &Reporter{
		WavefrontMetricsReporter: reporting.NewReporter(
			borrowed,
			application.New(applicationName, serviceName),
			reporting.Source(source),
			reporting.Prefix(cfg.Prefix),
			reporting.Interval(cfg.Interval),
			reporting.CustomRegistry(s.Registry()),
			reporting.LogErrors(log.IsLevelEnabled(log.DebugLevel)),
		),
		sender: borrowed,
	}
}

// Stop reports one last time. Later ticks of the reporter send nothing, so the
// sender can be closed by its owner afterwards.
func (r *Reporter) Stop() {
	r.Report()
	r.sender.release()
}

// borrowedSender forwards to a sender owned elsewhere until released. Close is a no-op.
type borrowedSender struct {
	senders.Sender

	mu       sync.RWMutex
	released bool
}

func (s *borrowedSender) release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.released = true
}

func (s *borrowedSender) SendMetric(name string, value float64, ts int64, source string, tags map[string]string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.released {
		return nil
	}
	return s.Sender.SendMetric(name, value, ts, source, tags)
}

func (s *borrowedSender) SendDeltaCounter(name string, value float64, source string, tags map[string]string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.released {
		return nil
	}
	return s.Sender.SendDeltaCounter(name, value, source, tags)
}

func (s *borrowedSender) SendDistribution(name string, centroids []histogram.Centroid, hgs map[histogram.Granularity]bool, ts int64, source string, tags map[string]string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.released {
		return nil
	}
	return s.Sender.SendDistribution(name, centroids, hgs, ts, source, tags)
}

func (s *borrowedSender) Close() {}
