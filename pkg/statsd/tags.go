// Copyright 2022 VMware, Inc. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package statsd

import "strings"

// parseTags reads a "#key:value,key,..." section. The cursor must be on the '#'.
// The section ends at the next '|' or at the end of the line, and an empty
// entry stops it early. The result is never nil.
func parseTags(c *cursor) map[string]string {
	tags := make(map[string]string)
	c.skip()

	for {
		if r, ok := c.last(); ok && r == '|' {
			break
		}
		tag := c.takeUntil(',', '|')
		if tag == "" {
			break
		}
		key, value := splitTag(tag)
		tags[key] = value
	}
	return tags
}

// splitTag splits on the first colon only, so "redis:10.0.0.16:6379" keeps
// the address intact as the value. A bare key gets an empty value.
func splitTag(tag string) (string, string) {
	parts := strings.SplitN(tag, ":", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}
