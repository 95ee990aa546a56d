// Copyright 2022 VMware, Inc. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package statsd_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wavefronthq/wavefront-statsd-decoder/pkg/statsd"
)

func f64(v float64) *float64 { return &v }

func str(s string) *string { return &s }

func TestParseMetric(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *statsd.Message
	}{
		{
			name:     "counter",
			input:    "gorets:1|c",
			expected: &statsd.Message{Name: "gorets", Metric: statsd.Counter{Value: 1}},
		},
		{
			name:     "gauge",
			input:    "gorets:1|g",
			expected: &statsd.Message{Name: "gorets", Metric: statsd.Gauge{Value: 1}},
		},
		{
			name:     "timing",
			input:    "gorets:233|ms",
			expected: &statsd.Message{Name: "gorets", Metric: statsd.Timing{Value: 233}},
		},
		{
			name:     "histogram",
			input:    "gorets:233|h",
			expected: &statsd.Message{Name: "gorets", Metric: statsd.Histogram{Value: 233}},
		},
		{
			name:     "meter",
			input:    "gorets:233|m",
			expected: &statsd.Message{Name: "gorets", Metric: statsd.Meter{Value: 233}},
		},
		{
			name:     "distribution",
			input:    "gorets:0.25|d",
			expected: &statsd.Message{Name: "gorets", Metric: statsd.Distribution{Value: 0.25}},
		},
		{
			name:     "set",
			input:    "uniques:765|s",
			expected: &statsd.Message{Name: "uniques", Metric: statsd.Set{Value: 765}},
		},
		{
			name:     "negative gauge with exponent",
			input:    "temp:-1.5e2|g",
			expected: &statsd.Message{Name: "temp", Metric: statsd.Gauge{Value: -150}},
		},
		{
			name:     "counter with sample rate",
			input:    "gorets:1|c|@0.5",
			expected: &statsd.Message{Name: "gorets", Metric: statsd.Counter{Value: 1, SampleRate: f64(0.5)}},
		},
		{
			name:  "counter with key value tags",
			input: "gorets:1|c|#foo:bar",
			expected: &statsd.Message{
				Name:   "gorets",
				Tags:   map[string]string{"foo": "bar"},
				Metric: statsd.Counter{Value: 1},
			},
		},
		{
			name:  "counter with bare tags",
			input: "gorets:1|c|#foo,moo",
			expected: &statsd.Message{
				Name:   "gorets",
				Tags:   map[string]string{"foo": "", "moo": ""},
				Metric: statsd.Counter{Value: 1},
			},
		},
		{
			name:  "counter with sample rate and tags",
			input: "gorets:1|c|@0.9|#foo:bar,moo:maa",
			expected: &statsd.Message{
				Name:   "gorets",
				Tags:   map[string]string{"foo": "bar", "moo": "maa"},
				Metric: statsd.Counter{Value: 1, SampleRate: f64(0.9)},
			},
		},
		{
			name:  "timing with sample rate and tags",
			input: "service.duration:101|ms|@0.9|#hostname:frontend1,namespace:web",
			expected: &statsd.Message{
				Name:   "service.duration",
				Tags:   map[string]string{"hostname": "frontend1", "namespace": "web"},
				Metric: statsd.Timing{Value: 101, SampleRate: f64(0.9)},
			},
		},
		{
			name:  "trailing separator",
			input: "service.duration:101|ms|@0.9|",
			expected: &statsd.Message{
				Name:   "service.duration",
				Metric: statsd.Timing{Value: 101, SampleRate: f64(0.9)},
			},
		},
		{
			name:  "tag value containing colons",
			input: "x:1|c|#redis:10.0.0.16:6379",
			expected: &statsd.Message{
				Name:   "x",
				Tags:   map[string]string{"redis": "10.0.0.16:6379"},
				Metric: statsd.Counter{Value: 1},
			},
		},
		{
			name:  "empty tag section is present but empty",
			input: "gorets:1|c|#",
			expected: &statsd.Message{
				Name:   "gorets",
				Tags:   map[string]string{},
				Metric: statsd.Counter{Value: 1},
			},
		},
		{
			name:     "non ascii name",
			input:    "goretsβ:1|c",
			expected: &statsd.Message{Name: "goretsβ", Metric: statsd.Counter{Value: 1}},
		},
		{
			name:     "trailing newline",
			input:    "gorets:1|c\n",
			expected: &statsd.Message{Name: "gorets", Metric: statsd.Counter{Value: 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := statsd.Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, msg)
		})
	}
}

func TestParseMetricErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		err   statsd.ParseError
	}{
		{name: "empty input", input: "", err: statsd.ErrEmptyInput},
		{name: "only whitespace", input: " \n", err: statsd.ErrEmptyInput},
		{name: "no name", input: ":1|c", err: statsd.ErrNoName},
		{name: "value not float", input: "gorets:aaa|h", err: statsd.ErrValueNotFloat},
		{name: "missing value", input: "gorets:|c", err: statsd.ErrValueNotFloat},
		{name: "no separators", input: "gorets", err: statsd.ErrValueNotFloat},
		{name: "sample rate not float", input: "gorets:1|c|@aaa", err: statsd.ErrSampleRateNotFloat},
		{name: "empty sample rate", input: "gorets:1|c|@", err: statsd.ErrSampleRateNotFloat},
		{name: "unknown type", input: "gorets:1|bogus", err: statsd.ErrUnknownMetricType},
		{name: "missing type", input: "gorets:1", err: statsd.ErrUnknownMetricType},
		{name: "unknown type with rate and tags", input: "gorets:1|wrong|@0.5|#a:b", err: statsd.ErrUnknownMetricType},
		{name: "bad rate reported before bad type", input: "gorets:1|wrong|@x", err: statsd.ErrSampleRateNotFloat},
		{name: "hex value", input: "gorets:0x10|c", err: statsd.ErrValueNotFloat},
		{name: "hex sample rate", input: "gorets:1|c|@0x1p-1", err: statsd.ErrSampleRateNotFloat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := statsd.Parse(tt.input)
			assert.Nil(t, msg)
			assert.Equal(t, tt.err, err)
			assert.True(t, errors.Is(err, tt.err))
		})
	}
}

func TestParseServiceCheck(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *statsd.Message
	}{
		{
			name:  "all sections",
			input: "_sc|Redis connection|2|d:10101|h:frontend1|#redis_instance:10.0.0.16:6379|m:Redis connection timed out after 10s",
			expected: &statsd.Message{
				Name: "Redis connection",
				Tags: map[string]string{"redis_instance": "10.0.0.16:6379"},
				Metric: statsd.ServiceCheck{
					Status:    statsd.StatusCritical,
					Timestamp: f64(10101),
					Hostname:  str("frontend1"),
					Message:   str("Redis connection timed out after 10s"),
				},
			},
		},
		{
			name:  "without tags",
			input: "_sc|Redis connection|0|d:10101|h:frontend1|m:Redis connection timed out after 10s",
			expected: &statsd.Message{
				Name: "Redis connection",
				Metric: statsd.ServiceCheck{
					Status:    statsd.StatusOK,
					Timestamp: f64(10101),
					Hostname:  str("frontend1"),
					Message:   str("Redis connection timed out after 10s"),
				},
			},
		},
		{
			name:  "without timestamp",
			input: "_sc|Redis connection|1|h:frontend1|m:Redis connection timed out after 10s",
			expected: &statsd.Message{
				Name: "Redis connection",
				Metric: statsd.ServiceCheck{
					Status:   statsd.StatusWarning,
					Hostname: str("frontend1"),
					Message:  str("Redis connection timed out after 10s"),
				},
			},
		},
		{
			name:  "minimum required",
			input: "_sc|Redis connection",
			expected: &statsd.Message{
				Name:   "Redis connection",
				Metric: statsd.ServiceCheck{Status: statsd.StatusUnknown},
			},
		},
		{
			name:  "unrecognised status",
			input: "_sc|disk|7",
			expected: &statsd.Message{
				Name:   "disk",
				Metric: statsd.ServiceCheck{Status: statsd.StatusUnknown},
			},
		},
		{
			name:  "tags only",
			input: "_sc|disk|0|#env:prod,role",
			expected: &statsd.Message{
				Name:   "disk",
				Tags:   map[string]string{"env": "prod", "role": ""},
				Metric: statsd.ServiceCheck{Status: statsd.StatusOK},
			},
		},
		{
			name:  "trailing newline",
			input: "_sc|disk|1|m:almost full\n",
			expected: &statsd.Message{
				Name:   "disk",
				Metric: statsd.ServiceCheck{Status: statsd.StatusWarning, Message: str("almost full")},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := statsd.Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, msg)
		})
	}
}

func TestParseServiceCheckErrors(t *testing.T) {
	_, err := statsd.Parse("_sc")
	assert.Equal(t, statsd.ErrNoName, err)

	_, err = statsd.Parse("_sc||0")
	assert.Equal(t, statsd.ErrNoName, err)

	_, err = statsd.Parse("_sc|Redis connection|2|d:soon")
	assert.Equal(t, statsd.ErrValueNotFloat, err)

	_, err = statsd.Parse("_sc|x|0|d:0x1p4")
	assert.Equal(t, statsd.ErrValueNotFloat, err)

	_, err = statsd.Parse("Redis connection")
	assert.Error(t, err)
}

func TestParseOverflowIsInfinite(t *testing.T) {
	msg, err := statsd.Parse("gorets:1e400|g")
	require.NoError(t, err)
	assert.Equal(t, statsd.Gauge{Value: math.Inf(1)}, msg.Metric)

	msg, err = statsd.Parse("gorets:-1e400|c")
	require.NoError(t, err)
	assert.Equal(t, statsd.Counter{Value: math.Inf(-1)}, msg.Metric)
}

func TestParseIsIdempotent(t *testing.T) {
	inputs := []string{
		"gorets:1|c|@0.9|#foo:bar,moo:maa",
		"_sc|Redis connection|2|d:10101|h:frontend1|#redis_instance:10.0.0.16:6379|m:timed out",
		"gorets:1|bogus",
	}
	for _, input := range inputs {
		first, firstErr := statsd.Parse(input)
		second, secondErr := statsd.Parse(input)
		assert.Equal(t, first, second)
		assert.Equal(t, firstErr, secondErr)
	}
}

func TestMetricType(t *testing.T) {
	msg, err := statsd.Parse("gorets:1|d")
	require.NoError(t, err)
	assert.Equal(t, statsd.DistributionType, msg.Metric.Type())

	sampled, ok := msg.Metric.(statsd.Sampled)
	require.True(t, ok)
	value, rate := sampled.Sample()
	assert.Equal(t, 1.0, value)
	assert.Nil(t, rate)

	msg, err = statsd.Parse("_sc|check|0")
	require.NoError(t, err)
	assert.Equal(t, statsd.ServiceCheckType, msg.Metric.Type())
	_, ok = msg.Metric.(statsd.Sampled)
	assert.False(t, ok)
}

func TestStatus(t *testing.T) {
	assert.Equal(t, statsd.StatusOK, statsd.StatusFromCode("0"))
	assert.Equal(t, statsd.StatusWarning, statsd.StatusFromCode("1"))
	assert.Equal(t, statsd.StatusCritical, statsd.StatusFromCode("2"))
	assert.Equal(t, statsd.StatusUnknown, statsd.StatusFromCode("3"))
	assert.Equal(t, statsd.StatusUnknown, statsd.StatusFromCode(""))

	assert.Equal(t, "CRITICAL", statsd.StatusCritical.String())
	assert.Equal(t, 3, statsd.StatusUnknown.Code())
}

func TestParseErrorText(t *testing.T) {
	assert.Equal(t, "no name in input", statsd.ErrNoName.Error())
	assert.Equal(t, "sample_rate_not_float", statsd.ErrSampleRateNotFloat.Kind())
	assert.Equal(t, "incomplete input", statsd.ErrIncompleteInput.Error())
}
