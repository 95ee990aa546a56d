// Copyright 2022 VMware, Inc. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package statsd

// parseServiceCheck decodes "_sc|name|status[|d:ts][|h:host][|#tags][|m:text]".
// The optional sections are recognised by their first character and must
// appear in that order. An unrecognised status is not an error.
func parseServiceCheck(line string) (*Message, error) {
	c := newCursor(line)
	if c.empty() {
		return nil, ErrEmptyInput
	}

	// "_sc"
	c.takeUntil('|')

	name := c.takeUntil('|')
	if name == "" {
		return nil, ErrNoName
	}

	check := ServiceCheck{
		Status: StatusFromCode(c.takeUntil('|')),
	}

	if c.at('d') {
		c.skip()
		c.skip()
		ts, err := c.takeFloatUntil('|')
		if err != nil {
			return nil, ErrValueNotFloat
		}
		check.Timestamp = &ts
	}

	if c.at('h') {
		c.skip()
		c.skip()
		hostname := c.takeUntil('|')
		check.Hostname = &hostname
	}

	var tags map[string]string
	if c.at('#') {
		tags = parseTags(c)
	}

	if c.at('m') {
		c.skip()
		c.skip()
		message := c.takeUntil('|')
		check.Message = &message
	}

	return &Message{
		Name:   name,
		Tags:   tags,
		Metric: check,
	}, nil
}
