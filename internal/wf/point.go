// Copyright 2021 VMware, Inc. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package wf

// Point is a single point in Wavefront metric format.
type Point struct {
	Metric    string
	Value     float64
	Timestamp int64
	Source    string

	tags map[string]string
}

func NewPoint(metric string, value float64, timestamp int64, source string, tags map[string]string) *Point {
	return &Point{
		Metric:    metric,
		Value:     value,
		Timestamp: timestamp,
		Source:    source,
		tags:      tags,
	}
}

func (m *Point) Name() string {
	return m.Metric
}

// Tags returns the point's own tag map; changes to it are visible on the point.
func (m *Point) Tags() map[string]string {
	if m.tags == nil {
		m.tags = map[string]string{}
	}
	return m.tags
}

// OverrideTag sets a tag regardless of whether it already exists
func (m *Point) OverrideTag(name, value string) {
	if m == nil {
		return
	}
	m.Tags()[name] = value
}

// AddTag adds a tag if it does not already exist
func (m *Point) AddTag(name, value string) {
	if m == nil {
		return
	}
	tags := m.Tags()
	if _, exists := tags[name]; !exists {
		tags[name] = value
	}
}

// AddTags adds any tags that do not already exist
func (m *Point) AddTags(tags map[string]string) {
	for name, value := range tags {
		m.AddTag(name, value)
	}
}

func (m *Point) Send(to Sender) error {
	return to.SendMetric(m.Metric, m.Value, m.Timestamp, m.Source, m.tags)
}
