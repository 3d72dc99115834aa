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
	"github.com/google/btree"
)

const indexDegree = 32

// lessMember orders by score, then by member bytes.
func lessMember(a, b MemberParam) bool {
	if a.Score != b.Score {
		return a.Score < b.Score
	}
	return a.Value < b.Value
}

// index keeps every (score, member) pair of a sorted set in rank order.
type index struct {
	tree *btree.BTreeG[MemberParam]
}

func newIndex() *index {
	return &index{tree: btree.NewG[MemberParam](indexDegree, lessMember)}
}

func (idx *index) insert(m MemberParam) bool {
	_, replaced := idx.tree.ReplaceOrInsert(m)
	return !replaced
}

func (idx *index) delete(m MemberParam) bool {
	_, ok := idx.tree.Delete(m)
	return ok
}

func (idx *index) min() (MemberParam, bool) {
	return idx.tree.Min()
}

func (idx *index) max() (MemberParam, bool) {
	return idx.tree.Max()
}

func (idx *index) len() int {
	return idx.tree.Len()
}

func (idx *index) ascend(fn func(m MemberParam) bool) {
	idx.tree.Ascend(fn)
}

// ascendFrom visits every pair whose score is at least score, in ascending order.
// The empty member sorts before all others, so the pivot precedes every pair with that score.
func (idx *index) ascendFrom(score Score, fn func(m MemberParam) bool) {
	idx.tree.AscendGreaterOrEqual(MemberParam{Score: score}, fn)
}

func (idx *index) descend(fn func(m MemberParam) bool) {
	idx.tree.Descend(fn)
}
