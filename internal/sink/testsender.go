// Copyright 2018-2019 VMware, Inc. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package sink

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/wavefronthq/wavefront-sdk-go/event"
	"github.com/wavefronthq/wavefront-sdk-go/histogram"
	"github.com/wavefronthq/wavefront-sdk-go/senders"
)

// TestSender logs and records everything it is asked to send.
type TestSender struct {
	lines []string
	mutex sync.Mutex
}

func NewTestSender() *TestSender {
	log.SetFormatter(&log.JSONFormatter{})
	return &TestSender{}
}

func (t *TestSender) SendMetric(name string, value float64, _ int64, source string, tags map[string]string) error {
	t.record(fmt.Sprintf("Metric: %s %f source=%q %s", name, value, source, orderedTagString(tags)))
	return nil
}

func (t *TestSender) SendEvent(name string, _, _ int64, source string, tags map[string]string, setters ...event.Option) error {
	annotations := map[string]string{}
	for _, setter := range setters {
		setter(map[string]interface{}{"annotations": annotations})
	}
	t.record(fmt.Sprintf("Event: %q source=%q %s%s", name, source, orderedTagString(tags), orderedTagString(annotations)))
	return nil
}

func (t *TestSender) record(line string) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	t.lines = append(t.lines, line)
	log.Infoln(line)
}

// ReceivedLines returns a copy of every recorded line in send order.
func (t *TestSender) ReceivedLines() []string {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	lines := make([]string, len(t.lines))
	copy(lines, t.lines)
	return lines
}

func orderedTagString(tags map[string]string) string {
	var b strings.Builder
	for _, name := range sortKeys(tags) {
		fmt.Fprintf(&b, "%s=%q ", name, tags[name])
	}
	return b.String()
}

func sortKeys(tags map[string]string) []string {
	names := make([]string, 0, len(tags))
	for name := range tags {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (t *TestSender) SendDeltaCounter(name string, value float64, source string, tags map[string]string) error {
	return nil
}

func (t *TestSender) SendDistribution(name string, centroids []histogram.Centroid, hgs map[histogram.Granularity]bool, ts int64, source string, tags map[string]string) error {
	return nil
}

func (t *TestSender) SendSpan(name string, startMillis, durationMillis int64, source, traceId, spanId string, parents, followsFrom []string, tags []senders.SpanTag, spanLogs []senders.SpanLog) error {
	return nil
}

func (t *TestSender) Flush() error {
	return nil
}

func (t *TestSender) GetFailureCount() int64 {
	return 0
}

func (t *TestSender) Start() {
}

func (t *TestSender) Close() {
}
