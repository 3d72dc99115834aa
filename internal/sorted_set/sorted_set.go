// Copyright 2024 Kelvin Clement Mwinuka
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package sorted_set

import (
	"fmt"
	"math"
	"time"
	"unsafe"

	"github.com/echovault/zsetdb/internal/clock"
)

type Value string

type Score float64

// MemberParam is a member paired with its score. It is the element type of the ordered index
// and the shape of every member list passed in or returned.
type MemberParam struct {
	Value Value
	Score Score
}

// SortedSet is not safe for concurrent use. The store serializes access to each instance.
type SortedSet struct {
	members map[Value]Score
	index   *index
	expiry  map[Value]time.Time // Created on the first expiration.
	clock   clock.Clock
}

func WithClock(clock clock.Clock) func(set *SortedSet) {
	return func(set *SortedSet) {
		set.clock = clock
	}
}

func NewSortedSet(members []MemberParam, options ...func(set *SortedSet)) *SortedSet {
	set := &SortedSet{
		members: make(map[Value]Score),
		index:   newIndex(),
		clock:   clock.NewClock(),
	}
	for _, option := range options {
		option(set)
	}
	for _, m := range members {
		set.put(m.Value, m.Score)
	}
	return set
}

// put writes member into the map and the index and clears its expiration.
func (set *SortedSet) put(member Value, score Score) {
	if old, ok := set.members[member]; ok {
		set.index.delete(MemberParam{Value: member, Score: old})
	}
	set.members[member] = score
	set.index.insert(MemberParam{Value: member, Score: score})
	delete(set.expiry, member)
	set.assertInSync()
}

// drop removes member from all three structures.
func (set *SortedSet) drop(member Value) bool {
	score, ok := set.members[member]
	if !ok {
		return false
	}
	delete(set.members, member)
	set.index.delete(MemberParam{Value: member, Score: score})
	delete(set.expiry, member)
	set.assertInSync()
	return true
}

func (set *SortedSet) assertInSync() {
	if len(set.members) != set.index.len() {
		panic(fmt.Sprintf("sorted set out of sync: %d members, %d index entries", len(set.members), set.index.len()))
	}
}

// verify compares the map and the index entry by entry.
func (set *SortedSet) verify() error {
	if len(set.members) != set.index.len() {
		return fmt.Errorf("%d members, %d index entries", len(set.members), set.index.len())
	}
	var err error
	set.index.ascend(func(m MemberParam) bool {
		score, ok := set.members[m.Value]
		if !ok {
			err = fmt.Errorf("member %q is indexed but not in the map", m.Value)
			return false
		}
		if score != m.Score {
			err = fmt.Errorf("member %q has score %v in the map and %v in the index", m.Value, score, m.Score)
			return false
		}
		return true
	})
	return err
}

func (set *SortedSet) Contains(member Value) bool {
	_, ok := set.members[member]
	return ok && !set.isExpired(member)
}

func (set *SortedSet) Score(member Value) (Score, bool) {
	if !set.Contains(member) {
		return 0, false
	}
	return set.members[member], true
}

// Scores returns nil in place of each absent member.
func (set *SortedSet) Scores(members ...Value) []*Score {
	res := make([]*Score, len(members))
	for i, member := range members {
		if score, ok := set.Score(member); ok {
			res[i] = &score
		}
	}
	return res
}

func (set *SortedSet) Cardinality() int {
	n := len(set.members)
	now := set.clock.Now()
	for _, at := range set.expiry {
		if !now.Before(at) {
			n--
		}
	}
	return n
}

// GetAll returns the live members in ascending order.
func (set *SortedSet) GetAll() []MemberParam {
	res := make([]MemberParam, 0, len(set.members))
	now := set.clock.Now()
	set.index.ascend(func(m MemberParam) bool {
		if !set.expiredAt(m.Value, now) {
			res = append(res, m)
		}
		return true
	})
	return res
}

func (set *SortedSet) GetMem() int64 {
	var size int64
	for member := range set.members {
		// Each member is held by both the map and the index.
		size += 2 * (int64(unsafe.Sizeof(member)) + int64(len(member)) + int64(unsafe.Sizeof(Score(0))))
	}
	for member, at := range set.expiry {
		size += int64(unsafe.Sizeof(member)) + int64(unsafe.Sizeof(at))
	}
	return size
}

// AddResult is the outcome of AddOrUpdate.
// Count is the number of members added, plus changed when CH is set.
// With INCR, Score holds the resulting score unless the update was Skipped.
type AddResult struct {
	Count   int
	Score   Score
	Skipped bool
}

func (set *SortedSet) AddOrUpdate(members []MemberParam, opts AddOptions) (AddResult, error) {
	if err := opts.Validate(len(members)); err != nil {
		return AddResult{}, err
	}
	for _, m := range members {
		if math.IsNaN(float64(m.Score)) {
			return AddResult{}, ErrNotValidFloat
		}
	}

	set.Sweep()

	if opts.INCR && len(members) == 1 {
		if stored, ok := set.members[members[0].Value]; ok && math.IsNaN(float64(stored+members[0].Score)) {
			return AddResult{}, ErrNaN
		}
	}

	res := AddResult{Skipped: opts.INCR}

	for _, m := range members {
		stored, ok := set.members[m.Value]
		if !ok {
			if opts.XX {
				continue
			}
			set.put(m.Value, m.Score)
			res.Count++
			res.Score, res.Skipped = m.Score, false
			continue
		}

		score := m.Score
		if opts.INCR {
			score += stored
		}

		if score == stored {
			delete(set.expiry, m.Value)
			res.Score, res.Skipped = score, false
			continue
		}

		if opts.NX || (opts.GT && stored > score) || (opts.LT && stored < score) {
			continue
		}

		set.put(m.Value, score)
		res.Score, res.Skipped = score, false
		if opts.CH {
			res.Count++
		}
	}

	return res, nil
}

// Increment adds delta to the score of member, creating it when absent.
// An existing expiration is kept.
func (set *SortedSet) Increment(member Value, delta Score) (Score, error) {
	set.Sweep()

	stored := set.members[member]
	score := stored + delta
	if math.IsNaN(float64(score)) {
		return 0, ErrNaN
	}

	at, volatile := set.expiry[member]
	set.put(member, score)
	if volatile {
		set.expiry[member] = at
	}

	return score, nil
}

// Remove returns the number of members removed.
func (set *SortedSet) Remove(members ...Value) int {
	set.Sweep()
	count := 0
	for _, member := range members {
		if set.drop(member) {
			count++
		}
	}
	return count
}
