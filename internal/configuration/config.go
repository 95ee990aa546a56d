// Copyright 2019 VMware, Inc. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package configuration

import (
	"time"

	"github.com/wavefronthq/wavefront-statsd-decoder/internal/filter"
)

const (
	OutputJSON      = "json"
	OutputWavefront = "wavefront"

	DefaultSource          = "wavefront-statsd-decoder"
	DefaultMaxRejected     = 1024
	DefaultErrorLogPercent = 0.01
	DefaultStatsPrefix     = "statsd.decoder."
	DefaultStatsInterval   = time.Minute
)

// The main configuration struct that drives the StatsD decoder
type Config struct {
	// The prefix (dot suffixed) added to every exported metric name. Defaults to none.
	Prefix string `yaml:"prefix"`

	// The source reported for points that do not carry a hostname. Defaults to wavefront-statsd-decoder.
	Source string `yaml:"source"`

	// Custom tags added to every exported point and event. Tags on the StatsD line win.
	Tags map[string]string `yaml:"tags"`

	// Filters applied to decoded messages prior to export.
	Filters filter.Config `yaml:"filters"`

	// Where decoded messages go: "json" (stdout) or "wavefront". Defaults to json.
	Output string `yaml:"output"`

	// Number of rejected lines kept for the end of run report. Defaults to 1024.
	MaxRejected int `yaml:"maxRejected"`

	Sink SinkConfig `yaml:"sink"`

	Stats StatsConfig `yaml:"stats"`
}

// Configuration options for the Wavefront sink
type SinkConfig struct {
	// The Wavefront proxy address of the form wavefront-proxy.default.svc.cluster.local:2878.
	ProxyAddress string `yaml:"proxyAddress"`

	// The Wavefront URL of the form https://YOUR_INSTANCE.wavefront.com. Only required for direct ingestion.
	Server string `yaml:"server"`

	// The Wavefront API token with direct data ingestion permission. Only required for direct ingestion.
	Token string `yaml:"token"`

	// If set to true, points and events are logged instead of sent. Defaults to false.
	TestMode bool `yaml:"testMode"`

	// Max batch of data sent per flush interval. Only applies to direct ingestion.
	BatchSize int `yaml:"batchSize"`

	// Max size of internal buffers beyond which received data is dropped. Only applies to direct ingestion.
	MaxBufferSize int `yaml:"maxBufferSize"`

	// How often buffered data is flushed. Defaults to the sender default of 1 second.
	FlushInterval time.Duration `yaml:"flushInterval"`

	// Fraction of send errors logged when not running at debug level. Defaults to 0.01.
	ErrorLogPercent float32 `yaml:"errorLogPercent"`
}

// Configuration options for the decoder's own metrics
type StatsConfig struct {
	// Report decode counters to the Wavefront sink. Defaults to false.
	Enabled bool `yaml:"enabled"`

	// Prefix for the reported counters. Defaults to statsd.decoder.
	Prefix string `yaml:"prefix"`

	// Reporting interval. Defaults to 1 minute.
	Interval time.Duration `yaml:"interval"`
}
