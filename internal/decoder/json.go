// Copyright 2022 VMware, Inc. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package decoder

import (
	"io"
	"sync"

	jsoniter "github.com/json-iterator/go"

	"github.com/wavefronthq/wavefront-statsd-decoder/internal/filter"
	"github.com/wavefronthq/wavefront-statsd-decoder/internal/wf"
	"github.com/wavefronthq/wavefront-statsd-decoder/pkg/statsd"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type jsonMessage struct {
	Name       string            `json:"name"`
	Type       string            `json:"type"`
	Tags       map[string]string `json:"tags"`
	Value      *float64          `json:"value,omitempty"`
	SampleRate *float64          `json:"sampleRate,omitempty"`
	Status     string            `json:"status,omitempty"`
	Timestamp  *float64          `json:"timestamp,omitempty"`
	Hostname   *string           `json:"hostname,omitempty"`
	Message    *string           `json:"message,omitempty"`
}

func toJSONMessage(msg *statsd.Message) jsonMessage {
	out := jsonMessage{
		Name: msg.Name,
		Type: string(msg.Metric.Type()),
		Tags: msg.Tags,
	}
	switch m := msg.Metric.(type) {
	case statsd.ServiceCheck:
		out.Status = m.Status.String()
		out.Timestamp = m.Timestamp
		out.Hostname = m.Hostname
		out.Message = m.Message
	case statsd.Sampled:
		value, rate := m.Sample()
		out.Value = &value
		out.SampleRate = rate
	}
	return out
}

// JSONExporter writes one JSON object per line for every decoded message. A nil
// tags field means the line had no tag section.
type JSONExporter struct {
	w        io.Writer
	filters  filter.Filter
	filtered wf.Incrementer
	mu       sync.Mutex
}

func NewJSONExporter(w io.Writer, filters filter.Filter, filtered wf.Incrementer) *JSONExporter {
	return &JSONExporter{
		w:        w,
		filters:  filters,
		filtered: filtered,
	}
}

func (e *JSONExporter) Export(msg *statsd.Message) error {
	if e.filters != nil && !e.filters.Match(msg.Name, msg.Tags) {
		if e.filtered != nil {
			e.filtered.Inc(1)
		}
		return nil
	}

	b, err := json.Marshal(toJSONMessage(msg))
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	_, err = e.w.Write(append(b, '\n'))
	return err
}
