// Copyright 2022 VMware, Inc. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package statsd

import (
	"strconv"
	"strings"
	"unicode"
)

// cursor walks the runes of one line. Positions count runes, not bytes.
type cursor struct {
	chars []rune
	pos   int
}

func newCursor(line string) *cursor {
	return &cursor{chars: []rune(strings.TrimRightFunc(line, unicode.IsSpace))}
}

func (c *cursor) empty() bool {
	return len(c.chars) == 0
}

// takeUntil consumes up to and including the first rune found in stops and
// returns what came before it. Without a match the rest of the line is returned.
func (c *cursor) takeUntil(stops ...rune) string {
	start := c.pos
	for c.pos < len(c.chars) {
		r := c.chars[c.pos]
		c.pos++
		for _, stop := range stops {
			if r == stop {
				return string(c.chars[start : c.pos-1])
			}
		}
	}
	return string(c.chars[start:])
}

// takeFloatUntil is takeUntil followed by a float64 conversion. An empty
// section is an error.
func (c *cursor) takeFloatUntil(stops ...rune) (float64, error) {
	return parseFloat(c.takeUntil(stops...))
}

// parseFloat accepts decimal notation only. Magnitudes beyond float64 become
// ±Inf instead of failing.
func parseFloat(s string) (float64, error) {
	digits := strings.TrimLeft(s, "+-")
	if len(digits) > 1 && digits[0] == '0' && (digits[1] == 'x' || digits[1] == 'X') {
		return 0, strconv.ErrSyntax
	}
	v, err := strconv.ParseFloat(s, 64)
	if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
		return v, nil
	}
	return v, err
}

func (c *cursor) peek() (rune, bool) {
	if c.pos >= len(c.chars) {
		return 0, false
	}
	return c.chars[c.pos], true
}

// last returns the rune just before the current position.
func (c *cursor) last() (rune, bool) {
	if c.pos == 0 {
		return 0, false
	}
	return c.chars[c.pos-1], true
}

// at reports whether the next rune is r.
func (c *cursor) at(r rune) bool {
	next, ok := c.peek()
	return ok && next == r
}

func (c *cursor) skip() {
	if c.pos < len(c.chars) {
		c.pos++
	}
}
