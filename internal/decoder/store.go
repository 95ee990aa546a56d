// Copyright 2022 VMware, Inc. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package decoder

import "sync"

// Rejection is a line that could not be decoded.
type Rejection struct {
	Line   string `json:"line"`
	Reason string `json:"reason"`
}

// RejectStore keeps the first max rejected lines and counts the ones it drops.
type RejectStore struct {
	max       int
	rejected  []Rejection
	dropped   int64
	rejectsMu sync.Mutex
}

func NewRejectStore(max int) *RejectStore {
	return &RejectStore{
		max:      max,
		rejected: make([]Rejection, 0, 16),
	}
}

func (s *RejectStore) Log(line string, err error) {
	s.rejectsMu.Lock()
	defer s.rejectsMu.Unlock()
	if len(s.rejected) >= s.max {
		s.dropped++
		return
	}
	s.rejected = append(s.rejected, Rejection{Line: line, Reason: err.Error()})
}

func (s *RejectStore) Rejected() []Rejection {
	s.rejectsMu.Lock()
	defer s.rejectsMu.Unlock()
	cpy := make([]Rejection, len(s.rejected))
	copy(cpy, s.rejected)
	return cpy
}

// Dropped is the number of rejections not kept because the store was full.
func (s *RejectStore) Dropped() int64 {
	s.rejectsMu.Lock()
	defer s.rejectsMu.Unlock()
	return s.dropped
}
