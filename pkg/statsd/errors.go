// Copyright 2022 VMware, Inc. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package statsd

// ParseError is the reason a line was rejected. Values are comparable, so
// errors.Is and == both work against the Err constants.
type ParseError int

const (
	ErrEmptyInput ParseError = iota + 1
	// ErrIncompleteInput is reserved for truncated sections; Parse does not currently return it.
	ErrIncompleteInput
	ErrNoName
	ErrValueNotFloat
	ErrSampleRateNotFloat
	ErrUnknownMetricType
)

func (e ParseError) Error() string {
	switch e {
	case ErrEmptyInput:
		return "empty input"
	case ErrIncompleteInput:
		return "incomplete input"
	case ErrNoName:
		return "no name in input"
	case ErrValueNotFloat:
		return "value is not a float"
	case ErrSampleRateNotFloat:
		return "sample rate is not a float"
	case ErrUnknownMetricType:
		return "unknown metric type"
	default:
		return "unknown parse error"
	}
}

// Kind is a short identifier for the error, suitable as a tag value.
func (e ParseError) Kind() string {
	switch e {
	case ErrEmptyInput:
		return "empty_input"
	case ErrIncompleteInput:
		return "incomplete_input"
	case ErrNoName:
		return "no_name"
	case ErrValueNotFloat:
		return "value_not_float"
	case ErrSampleRateNotFloat:
		return "sample_rate_not_float"
	case ErrUnknownMetricType:
		return "unknown_metric_type"
	default:
		return "unknown"
	}
}
