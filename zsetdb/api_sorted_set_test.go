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

package zsetdb

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/echovault/zsetdb/internal/clock"
	"github.com/echovault/zsetdb/internal/config"
	ss "github.com/echovault/zsetdb/internal/sorted_set"
	"github.com/go-test/deep"
)

func newPreset(c clock.Clock, members ...ss.MemberParam) *ss.SortedSet {
	return ss.NewSortedSet(members, ss.WithClock(c))
}

func float(f float64) *float64 {
	return &f
}

func TestZSetDB_ZADD(t *testing.T) {
	server, mockClock := createZSetDB()
	t.Cleanup(server.ShutDown)

	base := []ss.MemberParam{
		{Value: "member1", Score: 5.5},
		{Value: "member2", Score: 67.77},
		{Value: "member3", Score: 10},
	}

	tests := []struct {
		name        string
		presetValue *ss.SortedSet
		key         string
		entries     map[string]float64
		options     ZAddOptions
		want        int
		wantCard    int
		wantErr     bool
	}{
		{
			name: "1. Create new sorted set and return the cardinality of the new sorted set",
			key:  "zadd_key1",
			entries: map[string]float64{
				"member1": 5.5,
				"member2": 67.77,
				"member3": 10,
				"member4": math.Inf(-1),
				"member5": math.Inf(1),
			},
			want:     5,
			wantCard: 5,
		},
		{
			name:        "2. Only add the elements that do not currently exist in the sorted set when NX flag is provided",
			presetValue: newPreset(mockClock, base...),
			key:         "zadd_key2",
			entries:     map[string]float64{"member1": 5.5, "member4": 67.77, "member5": 10},
			options:     ZAddOptions{NX: true},
			want:        2,
			wantCard:    5,
		},
		{
			name:        "3. Count updates as well as additions when XX and CH are provided",
			presetValue: newPreset(mockClock, base...),
			key:         "zadd_key3",
			entries:     map[string]float64{"member1": 55, "member2": 1005, "member3": 15, "member4": 99.75},
			options:     ZAddOptions{XX: true, CH: true},
			want:        3,
			wantCard:    3,
		},
		{
			name:        "4. GT only updates members whose score increases but still adds new members",
			presetValue: newPreset(mockClock, base...),
			key:         "zadd_key4",
			entries:     map[string]float64{"member1": 3.5, "member2": 100, "member4": 1},
			options:     ZAddOptions{GT: true, CH: true},
			want:        2,
			wantCard:    4,
		},
		{
			name:        "5. Re-adding identical pairs adds nothing",
			presetValue: newPreset(mockClock, base...),
			key:         "zadd_key5",
			entries:     map[string]float64{"member1": 5.5, "member2": 67.77},
			options:     ZAddOptions{CH: true},
			want:        0,
			wantCard:    3,
		},
		{
			name:        "6. Throw error when NX and XX are both provided",
			presetValue: newPreset(mockClock, base...),
			key:         "zadd_key6",
			entries:     map[string]float64{"member1": 1},
			options:     ZAddOptions{NX: true, XX: true},
			wantErr:     true,
			wantCard:    3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.presetValue != nil {
				if err := presetValue(server, context.Background(), tt.key, tt.presetValue); err != nil {
					t.Error(err)
					return
				}
			}
			got, err := server.ZAdd(tt.key, tt.entries, tt.options)
			if (err != nil) != tt.wantErr {
				t.Errorf("ZAdd() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("ZAdd() got = %v, want %v", got, tt.want)
			}
			card, err := server.ZCard(tt.key)
			if err != nil {
				t.Error(err)
				return
			}
			if card != tt.wantCard {
				t.Errorf("ZCard() got = %v, want %v", card, tt.wantCard)
			}
		})
	}
}

func TestZSetDB_ZADDIncr(t *testing.T) {
	server, mockClock := createZSetDB()
	t.Cleanup(server.ShutDown)

	if err := presetValue(server, context.Background(), "zadd_incr", newPreset(mockClock, ss.MemberParam{Value: "a", Score: 1})); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		member    string
		increment float64
		options   ZAddOptions
		want      float64
		wantOk    bool
	}{
		{name: "1. Increment an existing member", member: "a", increment: 2.5, want: 3.5, wantOk: true},
		{name: "2. GT skips a decrement", member: "a", increment: -10, options: ZAddOptions{GT: true}},
		{name: "3. An absent member is created with the increment as its score", member: "b", increment: 4, want: 4, wantOk: true},
		{name: "4. XX skips an absent member", member: "c", increment: 1, options: ZAddOptions{XX: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := server.ZAddIncr("zadd_incr", tt.member, tt.increment, tt.options)
			if err != nil {
				t.Error(err)
				return
			}
			if ok != tt.wantOk || got != tt.want {
				t.Errorf("ZAddIncr() got = (%v, %v), want (%v, %v)", got, ok, tt.want, tt.wantOk)
			}
		})
	}

	score, err := server.ZScore("zadd_incr", "a")
	if err != nil {
		t.Fatal(err)
	}
	if diff := deep.Equal(score, float(3.5)); diff != nil {
		t.Error(diff)
	}
}

func TestZSetDB_ZCOUNT(t *testing.T) {
	server, mockClock := createZSetDB()
	t.Cleanup(server.ShutDown)

	_ = presetValue(server, context.Background(), "zcount", newPreset(mockClock,
		ss.MemberParam{Value: "a", Score: 1}, ss.MemberParam{Value: "b", Score: 2}, ss.MemberParam{Value: "c", Score: 3},
		ss.MemberParam{Value: "d", Score: 4}, ss.MemberParam{Value: "e", Score: 5},
	))
	_ = presetValue(server, context.Background(), "zlexcount", newPreset(mockClock,
		ss.MemberParam{Value: "a"}, ss.MemberParam{Value: "b"}, ss.MemberParam{Value: "c"},
		ss.MemberParam{Value: "d"}, ss.MemberParam{Value: "e"},
	))

	tests := []struct {
		name    string
		count   func(key, min, max string) (int, error)
		key     string
		min     string
		max     string
		want    int
		wantErr error
	}{
		{name: "1. Count the whole set", count: server.ZCount, key: "zcount", min: "-inf", max: "+inf", want: 5},
		{name: "2. Exclusive lower bound", count: server.ZCount, key: "zcount", min: "(1", max: "3", want: 2},
		{name: "3. Inverted bounds yield nothing", count: server.ZCount, key: "zcount", min: "4", max: "2", want: 0},
		{name: "4. Missing key counts 0", count: server.ZCount, key: "zcount_missing", min: "-inf", max: "+inf", want: 0},
		{name: "5. Invalid score bound", count: server.ZCount, key: "zcount", min: "x", max: "1", wantErr: ss.ErrMinMaxNotFloat},
		{name: "6. Lex count over everything", count: server.ZLexCount, key: "zlexcount", min: "-", max: "+", want: 5},
		{name: "7. Lex count between an inclusive and an exclusive bound", count: server.ZLexCount, key: "zlexcount", min: "[b", max: "(d", want: 2},
		{name: "8. Plus as minimum is empty", count: server.ZLexCount, key: "zlexcount", min: "+", max: "-", want: 0},
		{name: "9. Invalid lex bound", count: server.ZLexCount, key: "zlexcount", min: "b", max: "c", wantErr: ss.ErrMinMaxNotString},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.count(tt.key, tt.min, tt.max)
			if tt.wantErr != nil {
				if err == nil || err.Error() != tt.wantErr.Error() {
					t.Errorf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Error(err)
				return
			}
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestZSetDB_ZINCRBY(t *testing.T) {
	server, mockClock := createZSetDB()
	t.Cleanup(server.ShutDown)

	_ = presetValue(server, context.Background(), "zincrby", newPreset(mockClock, ss.MemberParam{Value: "a", Score: ss.Score(math.Inf(1))}))

	if _, err := server.ZIncrBy("zincrby", math.Inf(-1), "a"); err == nil || err.Error() != ss.ErrNaN.Error() {
		t.Errorf("expected error %v, got %v", ss.ErrNaN, err)
	}

	got, err := server.ZIncrBy("zincrby_new", 2.5, "x")
	if err != nil {
		t.Fatal(err)
	}
	if got != 2.5 {
		t.Errorf("ZIncrBy() got %v, want 2.5", got)
	}

	got, err = server.ZIncrBy("zincrby_new", -1, "x")
	if err != nil {
		t.Fatal(err)
	}
	if got != 1.5 {
		t.Errorf("ZIncrBy() got %v, want 1.5", got)
	}

	// An increment keeps the expiration of the member.
	if _, err = server.ZExpire("zincrby_new", 10*time.Second, ExpireAlways, "x"); err != nil {
		t.Fatal(err)
	}
	if _, err = server.ZIncrBy("zincrby_new", 1, "x"); err != nil {
		t.Fatal(err)
	}
	ttl, err := server.ZTTL("zincrby_new", "x")
	if err != nil {
		t.Fatal(err)
	}
	if diff := deep.Equal(ttl, []int{10}); diff != nil {
		t.Error(diff)
	}
}

func TestZSetDB_ZSCORE(t *testing.T) {
	server, mockClock := createZSetDB()
	t.Cleanup(server.ShutDown)

	_ = presetValue(server, context.Background(), "zscore", newPreset(mockClock,
		ss.MemberParam{Value: "a", Score: 1.5}, ss.MemberParam{Value: "b", Score: ss.Score(math.Inf(-1))},
	))

	score, err := server.ZScore("zscore", "a")
	if err != nil {
		t.Fatal(err)
	}
	if diff := deep.Equal(score, float(1.5)); diff != nil {
		t.Error(diff)
	}

	for _, key := range []string{"zscore", "zscore_missing"} {
		score, err = server.ZScore(key, "z")
		if err != nil {
			t.Fatal(err)
		}
		if score != nil {
			t.Errorf("expected nil score for %s, got %v", key, *score)
		}
	}

	scores, err := server.ZMScore("zscore", "a", "z", "b")
	if err != nil {
		t.Fatal(err)
	}
	if diff := deep.Equal(scores, []*float64{float(1.5), nil, float(math.Inf(-1))}); diff != nil {
		t.Error(diff)
	}
}

func TestZSetDB_ZREM(t *testing.T) {
	server, mockClock := createZSetDB()
	t.Cleanup(server.ShutDown)

	_ = presetValue(server, context.Background(), "zrem", newPreset(mockClock,
		ss.MemberParam{Value: "a", Score: 1}, ss.MemberParam{Value: "b", Score: 2},
	))

	tests := []struct {
		name    string
		key     string
		members []string
		want    int
	}{
		{name: "1. Remove an existing and a missing member", key: "zrem", members: []string{"a", "z"}, want: 1},
		{name: "2. Remove the last member", key: "zrem", members: []string{"b"}, want: 1},
		{name: "3. Removing from a missing key returns 0", key: "zrem_missing", members: []string{"a"}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := server.ZRem(tt.key, tt.members...)
			if err != nil {
				t.Error(err)
				return
			}
			if got != tt.want {
				t.Errorf("ZRem() got %d, want %d", got, tt.want)
			}
		})
	}

	if v := getValue(server, context.Background(), "zrem"); v != nil {
		t.Errorf("expected empty sorted set to be deleted, got %v", v)
	}
}

func TestZSetDB_ZRANGE(t *testing.T) {
	server, mockClock := createZSetDB()
	t.Cleanup(server.ShutDown)

	_ = presetValue(server, context.Background(), "zrange", newPreset(mockClock,
		ss.MemberParam{Value: "a", Score: 1}, ss.MemberParam{Value: "b", Score: 2}, ss.MemberParam{Value: "c", Score: 3},
		ss.MemberParam{Value: "d", Score: 4}, ss.MemberParam{Value: "e", Score: 5},
	))
	_ = presetValue(server, context.Background(), "zrange_lex", newPreset(mockClock,
		ss.MemberParam{Value: "a"}, ss.MemberParam{Value: "b"}, ss.MemberParam{Value: "c"}, ss.MemberParam{Value: "d"},
	))

	tests := []struct {
		name    string
		key     string
		start   string
		stop    string
		options ZRangeOptions
		want    []string
		wantErr string
	}{
		{name: "1. Full range by rank", key: "zrange", start: "0", stop: "-1", want: []string{"a", "b", "c", "d", "e"}},
		{name: "2. Reverse rank range", key: "zrange", start: "0", stop: "1", options: ZRangeOptions{Rev: true}, want: []string{"e", "d"}},
		{name: "3. Rank range past the end", key: "zrange", start: "3", stop: "100", want: []string{"d", "e"}},
		{name: "4. Score range with exclusive minimum", key: "zrange", start: "(1", stop: "4", options: ZRangeOptions{ByScore: true}, want: []string{"b", "c", "d"}},
		{name: "5. Reverse score range takes max first", key: "zrange", start: "4", stop: "(1", options: ZRangeOptions{ByScore: true, Rev: true}, want: []string{"d", "c", "b"}},
		{name: "6. Score range with limit", key: "zrange", start: "-inf", stop: "+inf", options: ZRangeOptions{ByScore: true, Offset: 1, Count: 2}, want: []string{"b", "c"}},
		{name: "7. Lex range", key: "zrange_lex", start: "[b", stop: "+", options: ZRangeOptions{ByLex: true}, want: []string{"b", "c", "d"}},
		{name: "8. Reverse lex range", key: "zrange_lex", start: "+", stop: "(b", options: ZRangeOptions{ByLex: true, Rev: true}, want: []string{"d", "c"}},
		{name: "9. Missing key returns an empty range", key: "zrange_missing", start: "0", stop: "-1", want: []string{}},
		{name: "10. LIMIT is rejected in rank mode", key: "zrange", start: "0", stop: "-1", options: ZRangeOptions{Count: 1}, wantErr: "syntax error, LIMIT is only supported in combination with either BYSCORE or BYLEX"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := server.ZRange(tt.key, tt.start, tt.stop, tt.options)
			if tt.wantErr != "" {
				if err == nil || err.Error() != tt.wantErr {
					t.Errorf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Error(err)
				return
			}
			if diff := deep.Equal(got, tt.want); diff != nil {
				t.Error(diff)
			}
		})
	}

	withScores, err := server.ZRangeWithScores("zrange", "0", "1", ZRangeOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if diff := deep.Equal(withScores, []MemberScore{{"a", 1}, {"b", 2}}); diff != nil {
		t.Error(diff)
	}

	lexWithScores, err := server.ZRangeWithScores("zrange_lex", "(a", "[c", ZRangeOptions{ByLex: true})
	if err != nil {
		t.Fatal(err)
	}
	if diff := deep.Equal(lexWithScores, []MemberScore{{"b", 0}, {"c", 0}}); diff != nil {
		t.Error(diff)
	}
}

func TestZSetDB_ZREMRANGE(t *testing.T) {
	server, mockClock := createZSetDB()
	t.Cleanup(server.ShutDown)

	_ = presetValue(server, context.Background(), "zremrange", newPreset(mockClock,
		ss.MemberParam{Value: "a", Score: 1}, ss.MemberParam{Value: "b", Score: 2}, ss.MemberParam{Value: "c", Score: 3},
		ss.MemberParam{Value: "d", Score: 4}, ss.MemberParam{Value: "e", Score: 5},
	))
	_ = presetValue(server, context.Background(), "zremrange_lex", newPreset(mockClock,
		ss.MemberParam{Value: "a"}, ss.MemberParam{Value: "b"}, ss.MemberParam{Value: "c"},
	))

	removed, err := server.ZRemRangeByRank("zremrange", 0, 1)
	if err != nil || removed != 2 {
		t.Errorf("ZRemRangeByRank() got (%d, %v), want 2", removed, err)
	}
	removed, err = server.ZRemRangeByScore("zremrange", "(3", "+inf")
	if err != nil || removed != 2 {
		t.Errorf("ZRemRangeByScore() got (%d, %v), want 2", removed, err)
	}
	members, err := server.ZRange("zremrange", "0", "-1", ZRangeOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if diff := deep.Equal(members, []string{"c"}); diff != nil {
		t.Error(diff)
	}

	removed, err = server.ZRemRangeByLex("zremrange_lex", "-", "+")
	if err != nil || removed != 3 {
		t.Errorf("ZRemRangeByLex() got (%d, %v), want 3", removed, err)
	}
	if v := getValue(server, context.Background(), "zremrange_lex"); v != nil {
		t.Errorf("expected empty sorted set to be deleted, got %v", v)
	}

	removed, err = server.ZRemRangeByScore("zremrange_missing", "-inf", "+inf")
	if err != nil || removed != 0 {
		t.Errorf("ZRemRangeByScore() on missing key got (%d, %v), want 0", removed, err)
	}
}

func TestZSetDB_ZRANDMEMBER(t *testing.T) {
	server, mockClock := createZSetDB()
	t.Cleanup(server.ShutDown)

	_ = presetValue(server, context.Background(), "zrandmember", newPreset(mockClock,
		ss.MemberParam{Value: "a", Score: 1}, ss.MemberParam{Value: "b", Score: 2}, ss.MemberParam{Value: "c", Score: 3},
	))
	scores := map[string]float64{"a": 1, "b": 2, "c": 3}

	tests := []struct {
		name       string
		count      int
		withScores bool
		wantLen    int
		distinct   bool
	}{
		{name: "1. Positive count returns distinct members", count: 2, withScores: true, wantLen: 2, distinct: true},
		{name: "2. Count larger than the set returns the whole set", count: 10, wantLen: 3, distinct: true},
		{name: "3. Negative count may repeat members", count: -7, withScores: true, wantLen: 7},
		{name: "4. Zero count returns nothing", count: 0, wantLen: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := server.ZRandMember("zrandmember", tt.count, tt.withScores)
			if err != nil {
				t.Error(err)
				return
			}
			if len(got) != tt.wantLen {
				t.Errorf("expected %d members, got %d", tt.wantLen, len(got))
			}
			seen := make(map[string]bool)
			for _, m := range got {
				score, ok := scores[m.Member]
				if !ok {
					t.Errorf("unexpected member %s", m.Member)
				}
				if tt.withScores && m.Score != score {
					t.Errorf("member %s has score %v, want %v", m.Member, m.Score, score)
				}
				if tt.distinct && seen[m.Member] {
					t.Errorf("member %s returned twice", m.Member)
				}
				seen[m.Member] = true
			}
		})
	}

	if _, err := server.ZRandMember("zrandmember", math.MinInt, false); err == nil || err.Error() != "value is out of range" {
		t.Errorf("expected out of range error for the most negative count, got %v", err)
	}

	card, _ := server.ZCard("zrandmember")
	if card != 3 {
		t.Errorf("sampling changed the set, cardinality %d", card)
	}
}

func TestZSetDB_ZRANK(t *testing.T) {
	server, mockClock := createZSetDB()
	t.Cleanup(server.ShutDown)

	_ = presetValue(server, context.Background(), "zrank", newPreset(mockClock,
		ss.MemberParam{Value: "a", Score: 1}, ss.MemberParam{Value: "c", Score: 2},
		ss.MemberParam{Value: "b", Score: 2}, ss.MemberParam{Value: "d", Score: 3},
	))

	rank, score, ok, err := server.ZRank("zrank", "c")
	if err != nil || !ok || rank != 2 || score != 2 {
		t.Errorf("ZRank() got (%d, %v, %v, %v), want (2, 2, true, nil)", rank, score, ok, err)
	}
	rank, score, ok, err = server.ZRevRank("zrank", "a")
	if err != nil || !ok || rank != 3 || score != 1 {
		t.Errorf("ZRevRank() got (%d, %v, %v, %v), want (3, 1, true, nil)", rank, score, ok, err)
	}
	if _, _, ok, err = server.ZRank("zrank", "z"); err != nil || ok {
		t.Errorf("ZRank() on missing member got (%v, %v)", ok, err)
	}
}

func TestZSetDB_ZPOP(t *testing.T) {
	server, mockClock := createZSetDB()
	t.Cleanup(server.ShutDown)

	_ = presetValue(server, context.Background(), "zpop", newPreset(mockClock,
		ss.MemberParam{Value: "a", Score: 1}, ss.MemberParam{Value: "b", Score: 2},
		ss.MemberParam{Value: "c", Score: 3}, ss.MemberParam{Value: "d", Score: 4},
	))

	tests := []struct {
		name  string
		pop   func(key string, count int) ([]MemberScore, error)
		key   string
		count int
		want  []MemberScore
	}{
		{name: "1. Pop the two lowest members", pop: server.ZPopMin, key: "zpop", count: 2, want: []MemberScore{{"a", 1}, {"b", 2}}},
		{name: "2. Pop the highest member", pop: server.ZPopMax, key: "zpop", count: 1, want: []MemberScore{{"d", 4}}},
		{name: "3. Count larger than the set pops everything", pop: server.ZPopMax, key: "zpop", count: 5, want: []MemberScore{{"c", 3}}},
		{name: "4. Missing key pops nothing", pop: server.ZPopMin, key: "zpop", count: 1, want: []MemberScore{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.pop(tt.key, tt.count)
			if err != nil {
				t.Error(err)
				return
			}
			if diff := deep.Equal(got, tt.want); diff != nil {
				t.Error(diff)
			}
		})
	}

	if v := getValue(server, context.Background(), "zpop"); v != nil {
		t.Errorf("expected empty sorted set to be deleted, got %v", v)
	}

	if _, err := server.Do("ZPOPMIN", "zpop", "-1"); err == nil {
		t.Error("expected error for negative count")
	}
}

func TestZSetDB_ZSCAN(t *testing.T) {
	server, mockClock := createZSetDB()
	t.Cleanup(server.ShutDown)

	_ = presetValue(server, context.Background(), "zscan", newPreset(mockClock,
		ss.MemberParam{Value: "apple", Score: 1}, ss.MemberParam{Value: "avocado", Score: 2},
		ss.MemberParam{Value: "banana", Score: 3}, ss.MemberParam{Value: "apricot", Score: 4},
		ss.MemberParam{Value: "cherry", Score: 5},
	))

	tests := []struct {
		name       string
		cursor     int
		options    ZScanOptions
		wantCursor int
		want       []MemberScore
	}{
		{
			name:       "1. First page with explicit count",
			options:    ZScanOptions{Count: 2},
			wantCursor: 2,
			want:       []MemberScore{{"apple", 1}, {"avocado", 2}},
		},
		{
			name:       "2. Continue from the returned cursor",
			cursor:     2,
			options:    ZScanOptions{Count: 2},
			wantCursor: 4,
			want:       []MemberScore{{"banana", 3}, {"apricot", 4}},
		},
		{
			name:       "3. MATCH filters members without scores",
			options:    ZScanOptions{Match: "a*", Count: 100, NoScores: true},
			wantCursor: 0,
			want:       []MemberScore{{Member: "apple"}, {Member: "avocado"}, {Member: "apricot"}},
		},
		{
			name:       "4. Default count covers the whole set",
			options:    ZScanOptions{NoScores: true},
			wantCursor: 0,
			want: []MemberScore{
				{Member: "apple"}, {Member: "avocado"}, {Member: "banana"}, {Member: "apricot"}, {Member: "cherry"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cursor, got, err := server.ZScan("zscan", tt.cursor, tt.options)
			if err != nil {
				t.Error(err)
				return
			}
			if cursor != tt.wantCursor {
				t.Errorf("expected cursor %d, got %d", tt.wantCursor, cursor)
			}
			if diff := deep.Equal(got, tt.want); diff != nil {
				t.Error(diff)
			}
		})
	}
}

func TestZSetDB_Expiration(t *testing.T) {
	server, mockClock := createZSetDB()
	t.Cleanup(server.ShutDown)

	key := "zexpire"
	_ = presetValue(server, context.Background(), key, newPreset(mockClock,
		ss.MemberParam{Value: "a", Score: 1}, ss.MemberParam{Value: "b", Score: 2}, ss.MemberParam{Value: "c", Score: 3},
	))

	steps := []struct {
		name string
		run  func() ([]int, error)
		want []int
	}{
		{
			name: "1. Set an expiration on an existing and a missing member",
			run:  func() ([]int, error) { return server.ZExpire(key, 10*time.Second, ExpireAlways, "a", "z") },
			want: []int{1, -2},
		},
		{
			name: "2. GT refuses an earlier instant",
			run:  func() ([]int, error) { return server.ZExpire(key, 5*time.Second, ExpireGT, "a") },
			want: []int{0},
		},
		{
			name: "3. GT accepts a later instant",
			run:  func() ([]int, error) { return server.ZExpire(key, 20*time.Second, ExpireGT, "a") },
			want: []int{1},
		},
		{
			name: "4. NX only applies to members without an expiration",
			run:  func() ([]int, error) { return server.ZExpire(key, 20*time.Second, ExpireNX, "a", "b") },
			want: []int{0, 1},
		},
		{
			name: "5. XX only applies to members with an expiration",
			run:  func() ([]int, error) { return server.ZExpire(key, 30*time.Second, ExpireXX, "c") },
			want: []int{0},
		},
		{
			name: "6. LT applies to members without an expiration",
			run:  func() ([]int, error) { return server.ZExpire(key, 30*time.Second, ExpireLT, "c") },
			want: []int{1},
		},
		{
			name: "7. Remaining time in seconds",
			run:  func() ([]int, error) { return server.ZTTL(key, "a", "b", "c", "z") },
			want: []int{20, 20, 30, -2},
		},
		{
			name: "8. Remaining time in milliseconds",
			run:  func() ([]int, error) { return server.ZPTTL(key, "a") },
			want: []int{20000},
		},
		{
			name: "9. Absolute expiration in seconds",
			run:  func() ([]int, error) { return server.ZExpireTime(key, "a") },
			want: []int{int(testEpoch.Unix()) + 20},
		},
		{
			name: "10. Absolute expiration in milliseconds",
			run:  func() ([]int, error) { return server.ZPExpireTime(key, "a") },
			want: []int{int(testEpoch.UnixMilli()) + 20000},
		},
		{
			name: "11. Persist clears an expiration once",
			run:  func() ([]int, error) { return server.ZPersist(key, "b", "b", "z") },
			want: []int{1, -1, -2},
		},
	}

	for _, step := range steps {
		t.Run(step.name, func(t *testing.T) {
			got, err := step.run()
			if err != nil {
				t.Error(err)
				return
			}
			if diff := deep.Equal(got, step.want); diff != nil {
				t.Error(diff)
			}
		})
	}

	mockClock.Advance(20 * time.Second)

	card, err := server.ZCard(key)
	if err != nil || card != 2 {
		t.Errorf("ZCard() after expiry got (%d, %v), want 2", card, err)
	}
	members, err := server.ZRange(key, "0", "-1", ZRangeOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if diff := deep.Equal(members, []string{"b", "c"}); diff != nil {
		t.Error(diff)
	}

	// An instant that has already passed removes the member.
	statuses, err := server.ZExpireAt(key, testEpoch, ExpireAlways, "c")
	if err != nil {
		t.Fatal(err)
	}
	if diff := deep.Equal(statuses, []int{2}); diff != nil {
		t.Error(diff)
	}

	if _, err = server.ZExpire(key, time.Second, ExpireAlways, "b"); err != nil {
		t.Fatal(err)
	}
	mockClock.Advance(time.Second)

	ok, err := server.ZCollect(key)
	if err != nil || !ok {
		t.Errorf("ZCollect() got (%v, %v)", ok, err)
	}
	if v := getValue(server, context.Background(), key); v != nil {
		t.Errorf("expected fully expired sorted set to be deleted, got %v", v)
	}

	statuses, err = server.ZTTL(key, "a")
	if err != nil {
		t.Fatal(err)
	}
	if diff := deep.Equal(statuses, []int{-2}); diff != nil {
		t.Error(diff)
	}
}

func TestZSetDB_MaxMemory(t *testing.T) {
	conf := config.DefaultConfig()
	conf.MaxMemory = 256
	server := createZSetDBWithConfig(conf)
	t.Cleanup(server.ShutDown)

	entries := make(map[string]float64)
	for i, m := range []string{"member-01", "member-02", "member-03", "member-04", "member-05", "member-06"} {
		entries[m] = float64(i)
	}
	if _, err := server.ZAdd("zmem", entries, ZAddOptions{}); err != nil {
		t.Fatal(err)
	}
	if server.MemUsed() < int64(conf.MaxMemory) {
		t.Fatalf("expected memory use above %d, got %d", conf.MaxMemory, server.MemUsed())
	}

	_, err := server.ZAdd("zmem", map[string]float64{"member-07": 7}, ZAddOptions{})
	if err == nil || err.Error() != "max memory reached, key value not set" {
		t.Errorf("expected max memory error, got %v", err)
	}
	if _, err = server.ZIncrBy("zmem", 1, "member-08"); err == nil {
		t.Error("expected ZIncrBy to be rejected")
	}
	card, _ := server.ZCard("zmem")
	if card != 6 {
		t.Errorf("rejected writes changed the set, cardinality %d", card)
	}

	// Shrinking commands still work while the limit is reached.
	before := server.MemUsed()
	if removed, err := server.ZRem("zmem", "member-01", "member-02"); err != nil || removed != 2 {
		t.Errorf("ZRem() got (%d, %v)", removed, err)
	}
	if server.MemUsed() >= before {
		t.Errorf("expected memory use to drop below %d, got %d", before, server.MemUsed())
	}

	if _, err = server.ZPopMin("zmem", 10); err != nil {
		t.Fatal(err)
	}
	if server.MemUsed() != 0 {
		t.Errorf("expected no memory use after the set is deleted, got %d", server.MemUsed())
	}
}

func TestZSetDB_Do(t *testing.T) {
	conf := config.DefaultConfig()
	conf.Protocol = 3
	server := createZSetDBWithConfig(conf)
	t.Cleanup(server.ShutDown)

	tests := []struct {
		name    string
		command []string
		want    string
		wantErr string
	}{
		{name: "1. Integer reply", command: []string{"ZADD", "zdo", "1.5", "a", "2", "b"}, want: ":2\r\n"},
		{name: "2. Scores are doubles over RESP3", command: []string{"ZSCORE", "zdo", "a"}, want: ",1.5\r\n"},
		{name: "3. Scored ranges are pairs over RESP3", command: []string{"ZRANGE", "zdo", "0", "0", "WITHSCORES"}, want: "*1\r\n*2\r\n$1\r\na\r\n,1.5\r\n"},
		{name: "4. Rank with score", command: []string{"ZREVRANK", "zdo", "a", "WITHSCORE"}, want: "*2\r\n:1\r\n,1.5\r\n"},
		{name: "5. Missing member is null", command: []string{"ZSCORE", "zdo", "z"}, want: "$-1\r\n"},
		{name: "6. Commands are case insensitive", command: []string{"zcard", "zdo"}, want: ":2\r\n"},
		{name: "7. Unknown command", command: []string{"ZFOO", "zdo"}, wantErr: "command ZFOO not supported"},
		{name: "8. Wrong arity", command: []string{"ZCARD"}, wantErr: "wrong number of arguments"},
		{name: "9. Syntax error in options", command: []string{"ZRANGE", "zdo", "0", "-1", "BYSCORE", "BYLEX"}, wantErr: "syntax error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := server.Do(tt.command...)
			if tt.wantErr != "" {
				if err == nil || err.Error() != tt.wantErr {
					t.Errorf("expected error %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Error(err)
				return
			}
			if string(got) != tt.want {
				t.Errorf("expected %q, got %q", tt.want, string(got))
			}
		})
	}

	// The typed API keeps reading RESP2 replies.
	score, err := server.ZScore("zdo", "a")
	if err != nil {
		t.Fatal(err)
	}
	if diff := deep.Equal(score, float(1.5)); diff != nil {
		t.Error(diff)
	}
}

func TestZSetDB_SelectDB(t *testing.T) {
	server, _ := createZSetDB()
	t.Cleanup(server.ShutDown)

	if _, err := server.ZAdd("zdb", map[string]float64{"a": 1}, ZAddOptions{}); err != nil {
		t.Fatal(err)
	}
	if err := server.SelectDB(1); err != nil {
		t.Fatal(err)
	}
	if card, _ := server.ZCard("zdb"); card != 0 {
		t.Errorf("expected empty key in database 1, got cardinality %d", card)
	}
	if err := server.SelectDB(0); err != nil {
		t.Fatal(err)
	}
	if card, _ := server.ZCard("zdb"); card != 1 {
		t.Errorf("expected cardinality 1 in database 0, got %d", card)
	}
	if err := server.SelectDB(-1); err == nil {
		t.Error("expected error for negative database index")
	}

	server.Flush(-1)
	if card, _ := server.ZCard("zdb"); card != 0 {
		t.Errorf("expected flushed key, got cardinality %d", card)
	}
}

func TestZSetDB_ServerID(t *testing.T) {
	conf := config.DefaultConfig()
	conf.ServerID = "zset-node-1"
	server := createZSetDBWithConfig(conf)
	t.Cleanup(server.ShutDown)

	if id := server.ServerID(); id != "zset-node-1" {
		t.Errorf("expected server id %q, got %q", "zset-node-1", id)
	}

	unnamed, _ := createZSetDB()
	t.Cleanup(unnamed.ShutDown)
	if id := unnamed.ServerID(); id != "" {
		t.Errorf("expected empty server id, got %q", id)
	}
}

func TestZSetDB_WrongType(t *testing.T) {
	server, _ := createZSetDB()
	t.Cleanup(server.ShutDown)

	_ = presetValue(server, context.Background(), "zstring", "hello")

	_, err := server.ZCard("zstring")
	if err == nil || err.Error() != "value at zstring is not a sorted set" {
		t.Errorf("expected wrong type error, got %v", err)
	}
	if _, err = server.ZAdd("zstring", map[string]float64{"a": 1}, ZAddOptions{}); err == nil {
		t.Error("expected wrong type error from ZAdd")
	}
}
