// Copyright 2021 VMware, Inc. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package wf

import (
	"strings"
	"time"

	"github.com/wavefronthq/wavefront-sdk-go/event"

	"github.com/wavefronthq/wavefront-statsd-decoder/pkg/statsd"
)

const (
	TypeTag          = "statsd_type"
	ServiceCheckType = "service_check"

	// value given to bare StatsD tags, Wavefront does not accept empty tag values
	bareTagValue = "true"
)

// Converter turns decoded messages into Wavefront points and events.
type Converter struct {
	Prefix string
	Source string
	Now    func() time.Time
}

// NewConverter returns a Converter joining prefix and metric names with a single dot.
func NewConverter(prefix, source string) *Converter {
	if prefix != "" {
		prefix = strings.TrimSuffix(prefix, ".") + "."
	}
	return &Converter{
		Prefix: prefix,
		Source: source,
		Now:    time.Now,
	}
}

func (c *Converter) Convert(msg *statsd.Message) Metric {
	tags := convertTags(msg.Tags)
	tags[TypeTag] = string(msg.Metric.Type())

	switch m := msg.Metric.(type) {
	case statsd.ServiceCheck:
		return c.event(msg.Name, m, tags)
	case statsd.Sampled:
		value, rate := m.Sample()
		if _, ok := m.(statsd.Counter); ok {
			value = scale(value, rate)
		}
		return NewPoint(c.Prefix+msg.Name, value, 0, c.Source, tags)
	}
	return nil
}

func (c *Converter) event(name string, check statsd.ServiceCheck, tags map[string]string) *Event {
	start := c.Now().UnixNano() / int64(time.Millisecond)
	if check.Timestamp != nil {
		start = int64(*check.Timestamp * 1000)
	}
	source := c.Source
	if check.Hostname != nil && *check.Hostname != "" {
		source = *check.Hostname
	}
	options := []event.Option{
		event.Type(ServiceCheckType),
		event.Annotate("severity", check.Status.String()),
	}
	if check.Message != nil {
		options = append(options, event.Annotate("details", *check.Message))
	}
	return NewEvent(name, start, source, tags, options...)
}

// scale extrapolates a sampled counter, "x:1|c|@0.1" stands for ten increments.
func scale(value float64, rate *float64) float64 {
	if rate == nil || *rate <= 0 || *rate > 1 {
		return value
	}
	return value / *rate
}

func convertTags(tags map[string]string) map[string]string {
	out := make(map[string]string, len(tags)+1)
	for k, v := range tags {
		if k == "" {
			continue
		}
		if v == "" {
			v = bareTagValue
		}
		out[k] = v
	}
	return out
}
