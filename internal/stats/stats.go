// Copyright 2022 VMware, Inc. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package stats keeps counters on the health of the decoder and reports them to Wavefront
package stats

import (
	"errors"

	gm "github.com/rcrowley/go-metrics"
	"github.com/wavefronthq/go-metrics-wavefront/reporting"

	"github.com/wavefronthq/wavefront-statsd-decoder/pkg/statsd"
)

const (
	decodedKey  = "lines.decoded"
	rejectedKey = "lines.rejected"
	filteredKey = "lines.filtered"
)

type Stats struct {
	registry gm.Registry
	filtered gm.Counter
}

func New() *Stats {
	registry := gm.NewRegistry()
	return &Stats{
		registry: registry,
		filtered: gm.GetOrRegisterCounter(filteredKey, registry),
	}
}

func (s *Stats) Registry() gm.Registry {
	return s.registry
}

func (s *Stats) Decoded(t statsd.MetricType) {
	key := reporting.EncodeKey(decodedKey, map[string]string{"type": string(t)})
	gm.GetOrRegisterCounter(key, s.registry).Inc(1)
}

// Rejected counts a rejected line under the kind of the error. Errors other than a
// statsd.ParseError are counted with reason "unknown".
func (s *Stats) Rejected(err error) {
	reason := "unknown"
	var parseErr statsd.ParseError
	if errors.As(err, &parseErr) {
		reason = parseErr.Kind()
	}
	key := reporting.EncodeKey(rejectedKey, map[string]string{"reason": reason})
	gm.GetOrRegisterCounter(key, s.registry).Inc(1)
}

// Filtered is the counter incremented for messages dropped by filters.
func (s *Stats) Filtered() gm.Counter {
	return s.filtered
}

// Snapshot returns the current value of every counter keyed by its encoded name.
func (s *Stats) Snapshot() map[string]int64 {
	counts := map[string]int64{}
	s.registry.Each(func(name string, i interface{}) {
		if c, ok := i.(gm.Counter); ok {
			counts[name] = c.Count()
		}
	})
	return counts
}

// Totals sums the decoded and rejected counters across their tags.
func (s *Stats) Totals() (decoded, rejected, filtered int64) {
	s.registry.Each(func(key string, i interface{}) {
		c, ok := i.(gm.Counter)
		if !ok {
			return
		}
		name, _ := reporting.DecodeKey(key)
		switch name {
		case decodedKey:
			decoded += c.Count()
		case rejectedKey:
			rejected += c.Count()
		}
	})
	return decoded, rejected, s.filtered.Count()
}
