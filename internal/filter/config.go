// Copyright 2018-2019 VMware, Inc. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package filter

// Configuration for filtering decoded StatsD messages.
// Filters are applied after the prefix and global tags are known but before anything is exported.
type Config struct {
	// List of glob pattern strings. Only messages with names matching the allow list are reported.
	MetricAllowList []string `yaml:"metricAllowList"`

	// List of glob pattern strings. Messages with names matching the deny list are dropped.
	MetricDenyList []string `yaml:"metricDenyList"`

	// Map of tag keys to glob patterns. Only messages with a tag value matching one of them are reported.
	MetricTagAllowList map[string][]string `yaml:"metricTagAllowList"`

	// Map of tag keys to glob patterns. Messages with a tag value matching one of them are dropped.
	MetricTagDenyList map[string][]string `yaml:"metricTagDenyList"`

	// List of glob pattern strings. Tags with matching keys will be included. All other tags will be excluded.
	TagInclude []string `yaml:"tagInclude"`

	// List of glob pattern strings. Tags with matching keys will be excluded.
	TagExclude []string `yaml:"tagExclude"`
}

func (cfg Config) Empty() bool {
	return len(cfg.MetricAllowList) == 0 && len(cfg.MetricDenyList) == 0 && len(cfg.MetricTagAllowList) == 0 &&
		len(cfg.MetricTagDenyList) == 0 && len(cfg.TagInclude) == 0 && len(cfg.TagExclude) == 0
}
