// Copyright 2021 VMware, Inc. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package wf

import (
	log "github.com/sirupsen/logrus"

	"github.com/wavefronthq/wavefront-statsd-decoder/internal/filter"
)

type Incrementer interface {
	Inc(int64)
}

// Filter returns nil when the metric does not match the supplied filter.Filter and
// increments filtered. A matched metric keeps only the tags the filter lets through.
func Filter(f filter.Filter, filtered Incrementer, m Metric) Metric {
	if f == nil || m == nil {
		return m
	}
	if !f.Match(m.Name(), m.Tags()) {
		log.WithField("name", m.Name()).Trace("dropping metric")
		filtered.Inc(1)
		return nil
	}
	return m
}
