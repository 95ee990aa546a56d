// Copyright 2018-2019 VMware, Inc. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package filter

import (
	"github.com/gobwas/glob"
	log "github.com/sirupsen/logrus"
)

type Filter interface {
	// Match reports whether a message passes the filter. Tags may be pruned in place.
	Match(name string, tags map[string]string) bool
}

// patterns is a set of compiled globs. An empty set matches nothing.
type patterns []glob.Glob

func compilePatterns(exprs []string) patterns {
	var ps patterns
	for _, expr := range exprs {
		g, err := glob.Compile(expr)
		if err != nil {
			log.WithField("pattern", expr).Warningf("ignoring invalid filter pattern: %v", err)
			continue
		}
		ps = append(ps, g)
	}
	return ps
}

func (ps patterns) any(s string) bool {
	for _, g := range ps {
		if g.Match(s) {
			return true
		}
	}
	return false
}

// tagPatterns maps a tag key to the patterns its value is checked against.
type tagPatterns map[string]patterns

func compileTagPatterns(exprs map[string][]string) tagPatterns {
	tps := make(tagPatterns, len(exprs))
	for key, values := range exprs {
		if ps := compilePatterns(values); len(ps) > 0 {
			tps[key] = ps
		}
	}
	return tps
}

// any reports whether some tag carries a value matching the patterns of its key.
func (tps tagPatterns) any(tags map[string]string) bool {
	for key, ps := range tps {
		if value, ok := tags[key]; ok && ps.any(value) {
			return true
		}
	}
	return false
}

// rules holds a compiled Config. Unset lists are left empty and skipped.
type rules struct {
	allowNames patterns
	denyNames  patterns
	allowTags  tagPatterns
	denyTags   tagPatterns
	keepKeys   patterns
	dropKeys   patterns
}

// FromConfig returns nil when cfg holds no patterns.
func FromConfig(cfg Config) Filter {
	if cfg.Empty() {
		return nil
	}
	return NewGlobFilter(cfg)
}

// NewGlobFilter compiles cfg. Invalid patterns are logged and left out.
func NewGlobFilter(cfg Config) Filter {
	return &rules{
		allowNames: compilePatterns(cfg.MetricAllowList),
		denyNames:  compilePatterns(cfg.MetricDenyList),
		allowTags:  compileTagPatterns(cfg.MetricTagAllowList),
		denyTags:   compileTagPatterns(cfg.MetricTagDenyList),
		keepKeys:   compilePatterns(cfg.TagInclude),
		dropKeys:   compilePatterns(cfg.TagExclude),
	}
}

func (r *rules) Match(name string, tags map[string]string) bool {
	if !r.admits(name, tags) {
		return false
	}
	r.prune(tags)
	return true
}

func (r *rules) admits(name string, tags map[string]string) bool {
	switch {
	case len(r.allowNames) > 0 && !r.allowNames.any(name):
		return false
	case r.denyNames.any(name):
		return false
	case len(r.allowTags) > 0 && !r.allowTags.any(tags):
		return false
	case r.denyTags.any(tags):
		return false
	}
	return true
}

func (r *rules) prune(tags map[string]string) {
	for key := range tags {
		if len(r.keepKeys) > 0 && !r.keepKeys.any(key) {
			delete(tags, key)
		} else if r.dropKeys.any(key) {
			delete(tags, key)
		}
	}
}
