// Copyright 2021 VMware, Inc. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package wf

import "github.com/wavefronthq/wavefront-sdk-go/event"

// Event is a Wavefront event, used for StatsD service checks.
type Event struct {
	Title       string
	StartMillis int64
	Source      string
	Options     []event.Option

	tags map[string]string
}

func NewEvent(title string, startMillis int64, source string, tags map[string]string, options ...event.Option) *Event {
	return &Event{
		Title:       title,
		StartMillis: startMillis,
		Source:      source,
		Options:     options,
		tags:        tags,
	}
}

func (e *Event) Name() string {
	return e.Title
}

func (e *Event) Tags() map[string]string {
	if e.tags == nil {
		e.tags = map[string]string{}
	}
	return e.tags
}

func (e *Event) OverrideTag(name, value string) {
	e.Tags()[name] = value
}

func (e *Event) AddTags(tags map[string]string) {
	current := e.Tags()
	for name, value := range tags {
		if _, exists := current[name]; !exists {
			current[name] = value
		}
	}
}

// Send reports the event as instantaneous: an end time of 0 lets Wavefront close it at start + 1ms.
func (e *Event) Send(to Sender) error {
	return to.SendEvent(e.Title, e.StartMillis, 0, e.Source, e.tags, e.Options...)
}
