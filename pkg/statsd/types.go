// Copyright 2022 VMware, Inc. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package statsd

// MetricType names the kind of a decoded metric.
type MetricType string

const (
	GaugeType        MetricType = "gauge"
	CounterType      MetricType = "counter"
	TimingType       MetricType = "timing"
	HistogramType    MetricType = "histogram"
	MeterType        MetricType = "meter"
	DistributionType MetricType = "distribution"
	SetType          MetricType = "set"
	ServiceCheckType MetricType = "service_check"
)

// Message is a single decoded StatsD line.
type Message struct {
	Name string
	// Tags is nil when the line carried no tag section.
	Tags   map[string]string
	Metric Metric
}

// Metric is one of Gauge, Counter, Timing, Histogram, Meter, Distribution, Set or ServiceCheck.
type Metric interface {
	Type() MetricType
	metric()
}

// Sampled is implemented by the numeric metric variants.
type Sampled interface {
	Metric
	Sample() (value float64, sampleRate *float64)
}

type Gauge struct {
	Value      float64
	SampleRate *float64
}

type Counter struct {
	Value      float64
	SampleRate *float64
}

type Timing struct {
	Value      float64
	SampleRate *float64
}

type Histogram struct {
	Value      float64
	SampleRate *float64
}

type Meter struct {
	Value      float64
	SampleRate *float64
}

type Distribution struct {
	Value      float64
	SampleRate *float64
}

type Set struct {
	Value      float64
	SampleRate *float64
}

// ServiceCheck is the health status event carried by "_sc" lines.
type ServiceCheck struct {
	Status    Status
	Timestamp *float64
	Hostname  *string
	Message   *string
}

func (Gauge) Type() MetricType        { return GaugeType }
func (Counter) Type() MetricType      { return CounterType }
func (Timing) Type() MetricType       { return TimingType }
func (Histogram) Type() MetricType    { return HistogramType }
func (Meter) Type() MetricType        { return MeterType }
func (Distribution) Type() MetricType { return DistributionType }
func (Set) Type() MetricType          { return SetType }
func (ServiceCheck) Type() MetricType { return ServiceCheckType }

func (Gauge) metric()        {}
func (Counter) metric()      {}
func (Timing) metric()       {}
func (Histogram) metric()    {}
func (Meter) metric()        {}
func (Distribution) metric() {}
func (Set) metric()          {}
func (ServiceCheck) metric() {}

func (m Gauge) Sample() (float64, *float64)        { return m.Value, m.SampleRate }
func (m Counter) Sample() (float64, *float64)      { return m.Value, m.SampleRate }
func (m Timing) Sample() (float64, *float64)       { return m.Value, m.SampleRate }
func (m Histogram) Sample() (float64, *float64)    { return m.Value, m.SampleRate }
func (m Meter) Sample() (float64, *float64)        { return m.Value, m.SampleRate }
func (m Distribution) Sample() (float64, *float64) { return m.Value, m.SampleRate }
func (m Set) Sample() (float64, *float64)          { return m.Value, m.SampleRate }

// Status of a service check.
type Status int

const (
	StatusOK Status = iota
	StatusWarning
	StatusCritical
	StatusUnknown
)

// StatusFromCode maps "0", "1" and "2" to OK, WARNING and CRITICAL.
// Anything else, including an empty code, is UNKNOWN.
func StatusFromCode(code string) Status {
	switch code {
	case "0":
		return StatusOK
	case "1":
		return StatusWarning
	case "2":
		return StatusCritical
	default:
		return StatusUnknown
	}
}

// Code returns the numeric DogStatsD code of the status.
func (s Status) Code() int {
	return int(s)
}

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusWarning:
		return "WARNING"
	case StatusCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}
