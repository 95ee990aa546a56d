// Copyright 2019 VMware, Inc. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package configuration

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleFile = `
prefix: statsd.
source: edge-1
output: wavefront
maxRejected: 10

tags:
  env: gcp-dev

filters:
  metricDenyList:
  - 'debug.*'
  metricTagAllowList:
    env:
    - 'gcp-*'
  tagExclude:
  - 'pod_id'

sink:
  proxyAddress: wavefront-proxy.default.svc.cluster.local:2878
  flushInterval: 5s
  errorLogPercent: 0.5

stats:
  enabled: true
  interval: 30s
`

func TestFromYAML(t *testing.T) {
	cfg, err := FromYAML([]byte(sampleFile))
	require.NoError(t, err)

	assert.Equal(t, "statsd.", cfg.Prefix)
	assert.Equal(t, "edge-1", cfg.Source)
	assert.Equal(t, OutputWavefront, cfg.Output)
	assert.Equal(t, 10, cfg.MaxRejected)
	assert.Equal(t, map[string]string{"env": "gcp-dev"}, cfg.Tags)
	assert.Equal(t, []string{"debug.*"}, cfg.Filters.MetricDenyList)
	assert.Equal(t, map[string][]string{"env": {"gcp-*"}}, cfg.Filters.MetricTagAllowList)
	assert.Equal(t, "wavefront-proxy.default.svc.cluster.local:2878", cfg.Sink.ProxyAddress)
	assert.Equal(t, 5*time.Second, cfg.Sink.FlushInterval)
	assert.Equal(t, float32(0.5), cfg.Sink.ErrorLogPercent)
	assert.True(t, cfg.Stats.Enabled)
	assert.Equal(t, 30*time.Second, cfg.Stats.Interval)
	assert.Equal(t, DefaultStatsPrefix, cfg.Stats.Prefix)
}

func TestFromYAMLDefaults(t *testing.T) {
	cfg, err := FromYAML([]byte("prefix: foo."))
	require.NoError(t, err)

	assert.Equal(t, DefaultSource, cfg.Source)
	assert.Equal(t, OutputJSON, cfg.Output)
	assert.Equal(t, DefaultMaxRejected, cfg.MaxRejected)
	assert.Equal(t, float32(DefaultErrorLogPercent), cfg.Sink.ErrorLogPercent)
	assert.Equal(t, DefaultStatsInterval, cfg.Stats.Interval)
	assert.Equal(t, Default().Sink, cfg.Sink)
}

func TestFromYAMLErrors(t *testing.T) {
	t.Run("unknown keys are rejected", func(t *testing.T) {
		_, err := FromYAML([]byte("clusterName: k8s"))
		assert.Error(t, err)
	})

	t.Run("validation is left to the caller", func(t *testing.T) {
		cfg, err := FromYAML([]byte("stats:\n  enabled: true"))
		require.NoError(t, err)
		assert.Error(t, cfg.Validate())

		cfg.Output = OutputWavefront
		assert.NoError(t, cfg.Validate())
	})
}

func TestValidate(t *testing.T) {
	t.Run("invalid output", func(t *testing.T) {
		cfg, err := FromYAML([]byte("output: graphite"))
		require.NoError(t, err)
		assert.EqualError(t, cfg.Validate(), `invalid output "graphite": must be json or wavefront`)
	})

	t.Run("stats need the wavefront output", func(t *testing.T) {
		cfg := Default()
		cfg.Stats.Enabled = true
		assert.EqualError(t, cfg.Validate(), "stats reporting requires output wavefront")
	})

	t.Run("defaults are valid", func(t *testing.T) {
		assert.NoError(t, Default().Validate())
	})
}

func TestFromFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "statsd-decoder")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	name := filepath.Join(dir, "config.yaml")
	require.NoError(t, ioutil.WriteFile(name, []byte(sampleFile), 0600))

	cfg, err := FromFile(name)
	require.NoError(t, err)
	assert.Equal(t, "edge-1", cfg.Source)

	_, err = FromFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
