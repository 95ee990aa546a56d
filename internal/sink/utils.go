// Copyright 2018-2019 VMware, Inc. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package sink

import (
	"strings"

	log "github.com/sirupsen/logrus"
)

const (
	emptyReason    = "they were empty"
	dedupeReason   = "there were too many tags so we removed tags with duplicate tag values"
	overflowReason = "there were too many tags so we removed the last tags by name"
)

// cleanTags removes empty tags, then tags with duplicate values and finally the last
// tags by name until at most maxCapacity remain. It returns the removed tag names by
// their reason for removal.
func cleanTags(tags map[string]string, maxCapacity int) map[string][]string {
	removedReasons := map[string][]string{}
	removedReasons[emptyReason] = removeEmptyTags(tags)
	if len(tags) > maxCapacity {
		removedReasons[dedupeReason] = dedupeTagValues(tags)
	}
	if len(tags) > maxCapacity {
		removedReasons[overflowReason] = removeOverflowTags(tags, maxCapacity)
	}
	return removedReasons
}

func logTagCleaningReasons(name string, reasons map[string][]string) {
	for reason, tagNames := range reasons {
		if len(tagNames) == 0 {
			continue
		}
		log.Debugf(
			"the following tags were removed from %s because %s: %s",
			name, reason, strings.Join(tagNames, ", "),
		)
	}
}

const minDedupeTagValueLen = 5

func dedupeTagValues(tags map[string]string) []string {
	var removedTags []string
	invertedTags := map[string]string{} // tag value -> tag name
	for _, name := range sortKeys(tags) {
		value := tags[name]
		if len(value) < minDedupeTagValueLen {
			continue
		}
		if winner, seen := invertedTags[value]; !seen {
			invertedTags[value] = name
		} else if isWinningName(name, winner) {
			removedTags = append(removedTags, winner)
			delete(tags, winner)
			invertedTags[value] = name
		} else {
			removedTags = append(removedTags, name)
			delete(tags, name)
		}
	}
	return removedTags
}

func isWinningName(name string, prevWinner string) bool {
	return len(name) < len(prevWinner) || (len(name) == len(prevWinner) && name < prevWinner)
}

func isAnEmptyTag(value string) bool {
	return value == "" || value == "/" || value == "-"
}

func removeEmptyTags(tags map[string]string) []string {
	var removed []string
	for name, value := range tags {
		if isAnEmptyTag(value) {
			removed = append(removed, name)
			delete(tags, name)
		}
	}
	return removed
}

func removeOverflowTags(tags map[string]string, maxCapacity int) []string {
	names := sortKeys(tags)
	removed := names[maxCapacity:]
	for _, name := range removed {
		delete(tags, name)
	}
	return removed
}
