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
	"math/rand"

	"github.com/echovault/zsetdb/internal"
	"github.com/gobwas/glob"
)

// Pop removes up to count members from the low end, or the high end when highest is set,
// and returns them in the order they were removed.
func (set *SortedSet) Pop(count int, highest bool) []MemberParam {
	set.Sweep()

	count = max(0, min(count, set.index.len()))
	res := make([]MemberParam, 0, count)
	for i := 0; i < count; i++ {
		var m MemberParam
		var ok bool
		if highest {
			m, ok = set.index.max()
		} else {
			m, ok = set.index.min()
		}
		if !ok {
			break
		}
		set.drop(m.Value)
		res = append(res, m)
	}
	return res
}

// MinRandomCount is the most negative count RandomMembers accepts.
const MinRandomCount = -math.MaxInt / 2

// RandomMembers samples the live members without changing the set.
// A non-negative count picks up to count distinct members. A negative count picks exactly |count| members
// and may repeat them.
func (set *SortedSet) RandomMembers(count int, seed int64) ([]MemberParam, error) {
	if count < MinRandomCount {
		return nil, ErrCountOutOfRange
	}

	members := set.GetAll()
	if len(members) == 0 || count == 0 {
		return []MemberParam{}, nil
	}

	rng := rand.New(rand.NewSource(seed))

	if count > 0 {
		n := min(count, len(members))
		res := make([]MemberParam, n)
		for i, pos := range rng.Perm(len(members))[:n] {
			res[i] = members[pos]
		}
		return res, nil
	}

	res := make([]MemberParam, internal.AbsInt(count))
	for i := range res {
		res[i] = members[rng.Intn(len(members))]
	}
	return res, nil
}

// Scan visits count positions of the ascending order starting at cursor and returns the members
// among them that match the glob pattern. The returned cursor is 0 once the walk is complete.
func (set *SortedSet) Scan(cursor, count int, pattern string) (int, []MemberParam, error) {
	var g glob.Glob
	if pattern != "" {
		var err error
		if g, err = glob.Compile(pattern); err != nil {
			return 0, nil, fmt.Errorf("invalid MATCH pattern %q: %w", pattern, err)
		}
	}

	members := set.GetAll()
	if cursor < 0 || cursor >= len(members) {
		return 0, []MemberParam{}, nil
	}

	end := min(cursor+max(count, 1), len(members))
	res := make([]MemberParam, 0, end-cursor)
	for _, m := range members[cursor:end] {
		if g == nil || g.Match(string(m.Value)) {
			res = append(res, m)
		}
	}

	if end == len(members) {
		end = 0
	}
	return end, res, nil
}
