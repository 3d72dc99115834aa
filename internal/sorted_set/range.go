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
	"slices"
	"strconv"
	"strings"
)

// ScoreBound is one end of a score range.
type ScoreBound struct {
	Value     Score
	Exclusive bool
}

// ParseScoreBound reads "1.5", "(1.5", "-inf" or "+inf".
func ParseScoreBound(s string) (ScoreBound, error) {
	bound := ScoreBound{}
	if strings.HasPrefix(s, "(") {
		bound.Exclusive = true
		s = s[1:]
	}
	score, ok := parseFloat(s)
	if !ok {
		return ScoreBound{}, ErrMinMaxNotFloat
	}
	bound.Value = score
	return bound, nil
}

type lexKind int

const (
	lexValue lexKind = iota
	lexMin           // "-", below every member.
	lexMax           // "+", above every member.
)

// LexBound is one end of a lexicographic range.
type LexBound struct {
	Value     Value
	Exclusive bool
	kind      lexKind
}

// ParseLexBound reads "-", "+", "[member" or "(member".
func ParseLexBound(s string) (LexBound, error) {
	switch {
	case s == "-":
		return LexBound{kind: lexMin}, nil
	case s == "+":
		return LexBound{kind: lexMax}, nil
	case strings.HasPrefix(s, "["):
		return LexBound{Value: Value(s[1:])}, nil
	case strings.HasPrefix(s, "("):
		return LexBound{Value: Value(s[1:]), Exclusive: true}, nil
	}
	return LexBound{}, ErrMinMaxNotString
}

// above reports whether member lies on or above the bound when it is used as a minimum.
func (b LexBound) above(member Value) bool {
	switch b.kind {
	case lexMin:
		return true
	case lexMax:
		return false
	}
	return member > b.Value || (member == b.Value && !b.Exclusive)
}

// below reports whether member lies on or below the bound when it is used as a maximum.
func (b LexBound) below(member Value) bool {
	switch b.kind {
	case lexMin:
		return false
	case lexMax:
		return true
	}
	return member < b.Value || (member == b.Value && !b.Exclusive)
}

// Limit is the LIMIT offset count clause. The zero value takes everything.
type Limit struct {
	Offset int
	Count  int
}

func ParseLimit(offset, count string) (Limit, error) {
	o, err := strconv.Atoi(offset)
	if err != nil {
		return Limit{}, ErrNotInteger
	}
	c, err := strconv.Atoi(count)
	if err != nil {
		return Limit{}, ErrNotInteger
	}
	return Limit{Offset: o, Count: c}, nil
}

// apply skips Offset members and keeps Count of the rest. A non-positive Count keeps all of them.
func (l Limit) apply(members []MemberParam) []MemberParam {
	offset := max(l.Offset, 0)
	if offset >= len(members) {
		return []MemberParam{}
	}
	members = members[offset:]
	if l.Count > 0 && l.Count < len(members) {
		members = members[:l.Count]
	}
	return members
}

// rankSpan resolves start and stop against size. It returns false when the span is empty.
func rankSpan(start, stop, size int) (int, int, bool) {
	if size == 0 || start > size-1 {
		return 0, 0, false
	}
	if start < 0 {
		start += size
	}
	if stop < 0 {
		stop += size
	}
	stop = min(stop, size-1)
	if (start < 0 && stop < 0) || start > stop {
		return 0, 0, false
	}
	return max(start, 0), stop, true
}

// RangeByRank returns the members at positions start through stop. Negative positions count from the end.
// When rev is set, positions index the descending order.
func (set *SortedSet) RangeByRank(start, stop int, rev bool) []MemberParam {
	start, stop, ok := rankSpan(start, stop, set.Cardinality())
	if !ok {
		return []MemberParam{}
	}

	res := make([]MemberParam, 0, stop-start+1)
	now := set.clock.Now()
	pos := 0
	walk := func(m MemberParam) bool {
		if set.expiredAt(m.Value, now) {
			return true
		}
		if pos >= start {
			res = append(res, m)
		}
		pos++
		return pos <= stop
	}
	if rev {
		set.index.descend(walk)
	} else {
		set.index.ascend(walk)
	}
	return res
}

// RangeByScore returns the members with scores between min and max.
// When rev is set, the caller passes the bounds as max then min and the result is descending.
func (set *SortedSet) RangeByScore(min, max ScoreBound, rev bool, limit Limit) []MemberParam {
	if rev {
		min, max = max, min
	}

	res := make([]MemberParam, 0)
	now := set.clock.Now()
	set.index.ascendFrom(min.Value, func(m MemberParam) bool {
		if m.Score > max.Value || (m.Score == max.Value && max.Exclusive) {
			return false
		}
		if m.Score == min.Value && min.Exclusive {
			return true
		}
		if !set.expiredAt(m.Value, now) {
			res = append(res, m)
		}
		return true
	})

	if rev {
		slices.Reverse(res)
	}
	return limit.apply(res)
}

// RangeByLex returns the members whose bytes lie between min and max.
// The result is only meaningful when every member has the same score.
func (set *SortedSet) RangeByLex(min, max LexBound, rev bool, limit Limit) []MemberParam {
	if rev {
		min, max = max, min
	}

	res := make([]MemberParam, 0)
	now := set.clock.Now()
	set.index.ascend(func(m MemberParam) bool {
		if !max.below(m.Value) {
			return false
		}
		if min.above(m.Value) && !set.expiredAt(m.Value, now) {
			res = append(res, m)
		}
		return true
	})

	if rev {
		slices.Reverse(res)
	}
	return limit.apply(res)
}

func (set *SortedSet) CountByScore(min, max ScoreBound) int {
	return len(set.RangeByScore(min, max, false, Limit{}))
}

func (set *SortedSet) CountByLex(min, max LexBound) int {
	return len(set.RangeByLex(min, max, false, Limit{}))
}

func (set *SortedSet) removeAll(members []MemberParam) int {
	count := 0
	for _, m := range members {
		if set.drop(m.Value) {
			count++
		}
	}
	return count
}

func (set *SortedSet) RemoveRangeByRank(start, stop int) int {
	set.Sweep()
	return set.removeAll(set.RangeByRank(start, stop, false))
}

func (set *SortedSet) RemoveRangeByScore(min, max ScoreBound) int {
	set.Sweep()
	return set.removeAll(set.RangeByScore(min, max, false, Limit{}))
}

func (set *SortedSet) RemoveRangeByLex(min, max LexBound) int {
	set.Sweep()
	return set.removeAll(set.RangeByLex(min, max, false, Limit{}))
}

// Rank returns the 0-based position of member. The walk is linear in the size of the set.
func (set *SortedSet) Rank(member Value, rev bool) (int, Score, bool) {
	score, ok := set.Score(member)
	if !ok {
		return 0, 0, false
	}

	rank := 0
	now := set.clock.Now()
	set.index.ascend(func(m MemberParam) bool {
		if m.Value == member {
			return false
		}
		if !set.expiredAt(m.Value, now) {
			rank++
		}
		return true
	})

	if rev {
		rank = set.Cardinality() - rank - 1
	}
	return rank, score, true
}
