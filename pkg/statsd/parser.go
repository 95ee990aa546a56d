// Copyright 2022 VMware, Inc. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package statsd

import "strings"

const serviceCheckPrefix = "_sc"

// Parse decodes one StatsD line. Trailing whitespace, including the line
// terminator, is ignored. On failure the returned error is a ParseError and
// no Message is produced.
func Parse(line string) (*Message, error) {
	if strings.HasPrefix(line, serviceCheckPrefix) {
		return parseServiceCheck(line)
	}
	return parseMetric(line)
}
