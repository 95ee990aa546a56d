// Copyright 2021 VMware, Inc. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package wf

import "github.com/wavefronthq/wavefront-sdk-go/event"

// Metric is anything a decoded StatsD message can turn into: a Point or an Event.
type Metric interface {
	Name() string
	Tags() map[string]string
	OverrideTag(name, value string)
	AddTags(tags map[string]string)
	Send(to Sender) error
}

type Sender interface {
	SendMetric(name string, value float64, ts int64, source string, tags map[string]string) error
	SendEvent(name string, startMillis, endMillis int64, source string, tags map[string]string, setters ...event.Option) error
}
