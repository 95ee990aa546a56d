// Copyright 2022 VMware, Inc. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package statsd

// parseMetric decodes "name:value|type[|@rate][|#tags]". The type code is
// resolved last, so a line that is otherwise broken reports that problem first.
func parseMetric(line string) (*Message, error) {
	c := newCursor(line)
	if c.empty() {
		return nil, ErrEmptyInput
	}

	name := c.takeUntil(':')
	if name == "" {
		return nil, ErrNoName
	}

	value, err := c.takeFloatUntil('|')
	if err != nil {
		return nil, ErrValueNotFloat
	}

	code := c.takeUntil('|')

	var sampleRate *float64
	if c.at('@') {
		c.skip()
		rate, err := c.takeFloatUntil('|')
		if err != nil {
			return nil, ErrSampleRateNotFloat
		}
		sampleRate = &rate
	}

	var tags map[string]string
	if c.at('#') {
		tags = parseTags(c)
	}

	metric, err := sampledMetric(code, value, sampleRate)
	if err != nil {
		return nil, err
	}

	return &Message{
		Name:   name,
		Tags:   tags,
		Metric: metric,
	}, nil
}

func sampledMetric(code string, value float64, sampleRate *float64) (Metric, error) {
	switch code {
	case "ms":
		return Timing{Value: value, SampleRate: sampleRate}, nil
	case "c":
		return Counter{Value: value, SampleRate: sampleRate}, nil
	case "g":
		return Gauge{Value: value, SampleRate: sampleRate}, nil
	case "m":
		return Meter{Value: value, SampleRate: sampleRate}, nil
	case "h":
		return Histogram{Value: value, SampleRate: sampleRate}, nil
	case "d":
		return Distribution{Value: value, SampleRate: sampleRate}, nil
	case "s":
		return Set{Value: value, SampleRate: sampleRate}, nil
	default:
		return nil, ErrUnknownMetricType
	}
}
