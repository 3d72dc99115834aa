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
	"strconv"
	"strings"
	"time"

	"github.com/echovault/zsetdb/internal"
)

// The typed API reads RESP2 replies, scores arrive as bulk strings.
const apiProtocol = 2

// MemberScore is a member of a sorted set together with its score.
type MemberScore struct {
	Member string
	Score  float64
}

// ZAddOptions modifies the behaviour of ZAdd.
//
// NX - Only add new members. Existing members are never updated.
//
// XX - Only update existing members. New members are never added.
//
// GT - Only update a member when the new score is greater than the current score.
//
// LT - Only update a member when the new score is less than the current score.
//
// CH - Count updated members as well as added members in the result.
type ZAddOptions struct {
	NX bool
	XX bool
	GT bool
	LT bool
	CH bool
}

func (options ZAddOptions) tokens() []string {
	var tokens []string
	for flag, set := range map[string]bool{"NX": options.NX, "XX": options.XX, "GT": options.GT, "LT": options.LT} {
		if set {
			tokens = append(tokens, flag)
		}
	}
	if options.CH {
		tokens = append(tokens, "CH")
	}
	return tokens
}

// ZRangeOptions selects the range mode of ZRange and ZRangeWithScores.
// Without ByScore or ByLex, start and stop are ranks.
// Offset and Count are only applied in score and lex mode when Count is not zero.
type ZRangeOptions struct {
	ByScore bool
	ByLex   bool
	Rev     bool
	Offset  int
	Count   int
}

func (options ZRangeOptions) tokens() []string {
	var tokens []string
	switch {
	case options.ByScore:
		tokens = append(tokens, "BYSCORE")
	case options.ByLex:
		tokens = append(tokens, "BYLEX")
	}
	if options.Rev {
		tokens = append(tokens, "REV")
	}
	if options.Count != 0 {
		tokens = append(tokens, "LIMIT", strconv.Itoa(options.Offset), strconv.Itoa(options.Count))
	}
	return tokens
}

// ZScanOptions modifies ZScan. A zero Count uses the configured scan count.
type ZScanOptions struct {
	Match    string
	Count    int
	NoScores bool
}

// ExpireOption is the condition under which a member expiration is applied.
type ExpireOption string

const (
	ExpireAlways ExpireOption = ""
	ExpireNX     ExpireOption = "NX"
	ExpireXX     ExpireOption = "XX"
	ExpireGT     ExpireOption = "GT"
	ExpireLT     ExpireOption = "LT"
)

func (server *ZSetDB) do(cmd []string) ([]byte, error) {
	return server.handleCommand(server.context, internal.EncodeCommand(cmd), apiProtocol)
}

// Do runs a raw command and returns the RESP reply in the configured protocol.
func (server *ZSetDB) Do(cmd ...string) ([]byte, error) {
	return server.handleCommand(server.context, internal.EncodeCommand(cmd), 0)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func parseMemberScores(b []byte, withScores bool) ([]MemberScore, error) {
	arr, err := internal.ParseStringArrayResponse(b)
	if err != nil {
		return nil, err
	}
	if !withScores {
		res := make([]MemberScore, len(arr))
		for i, m := range arr {
			res[i] = MemberScore{Member: m}
		}
		return res, nil
	}
	res := make([]MemberScore, 0, len(arr)/2)
	for i := 0; i+1 < len(arr); i += 2 {
		score, err := strconv.ParseFloat(arr[i+1], 64)
		if err != nil {
			return nil, err
		}
		res = append(res, MemberScore{Member: arr[i], Score: score})
	}
	return res, nil
}

func membersClause(members []string) []string {
	return append([]string{"MEMBERS", strconv.Itoa(len(members))}, members...)
}

// ZAdd adds or updates the scored members of the sorted set at key.
//
// Parameters:
//
// `key` - string - the key to the sorted set.
//
// `entries` - map[string]float64 - the members and their scores.
//
// `options` - ZAddOptions.
//
// Returns: The number of members added, or added and updated when CH is set.
//
// Errors:
//
// "XX and NX options at the same time are not compatible" - when both NX and XX are set.
//
// "GT, LT, and/or NX options at the same time are not compatible" - when GT or LT is combined with NX or with each other.
func (server *ZSetDB) ZAdd(key string, entries map[string]float64, options ZAddOptions) (int, error) {
	cmd := append([]string{"ZADD", key}, options.tokens()...)
	for member, score := range entries {
		cmd = append(cmd, formatFloat(score), member)
	}
	b, err := server.do(cmd)
	if err != nil {
		return 0, err
	}
	return internal.ParseIntegerResponse(b)
}

// ZAddIncr increments the score of member like ZIncrBy while honouring the ZAdd conditions.
// The returned bool is false when a condition skipped the update.
func (server *ZSetDB) ZAddIncr(key, member string, increment float64, options ZAddOptions) (float64, bool, error) {
	cmd := append([]string{"ZADD", key}, options.tokens()...)
	cmd = append(cmd, "INCR", formatFloat(increment), member)
	b, err := server.do(cmd)
	if err != nil {
		return 0, false, err
	}
	isNil, err := internal.ParseNilResponse(b)
	if err != nil || isNil {
		return 0, false, err
	}
	score, err := internal.ParseFloatResponse(b)
	return score, err == nil, err
}

// ZCard returns the number of live members in the sorted set. Returns 0 when the key does not exist.
func (server *ZSetDB) ZCard(key string) (int, error) {
	b, err := server.do([]string{"ZCARD", key})
	if err != nil {
		return 0, err
	}
	return internal.ParseIntegerResponse(b)
}

// ZCount returns the number of members with scores between min and max.
// The bounds accept "-inf", "+inf" and a "(" prefix for exclusive bounds.
func (server *ZSetDB) ZCount(key, min, max string) (int, error) {
	b, err := server.do([]string{"ZCOUNT", key, min, max})
	if err != nil {
		return 0, err
	}
	return internal.ParseIntegerResponse(b)
}

// ZLexCount returns the number of members between min and max in lexicographical order.
// Bounds are "-", "+", or a member prefixed with "[" (inclusive) or "(" (exclusive).
func (server *ZSetDB) ZLexCount(key, min, max string) (int, error) {
	b, err := server.do([]string{"ZLEXCOUNT", key, min, max})
	if err != nil {
		return 0, err
	}
	return internal.ParseIntegerResponse(b)
}

// ZIncrBy adds increment to the score of member and returns the new score.
// A missing member is created with increment as its score.
//
// Errors:
//
// "resulting score is not a number (NaN)" - when the increment cancels an infinite score.
func (server *ZSetDB) ZIncrBy(key string, increment float64, member string) (float64, error) {
	b, err := server.do([]string{"ZINCRBY", key, formatFloat(increment), member})
	if err != nil {
		return 0, err
	}
	return internal.ParseFloatResponse(b)
}

// ZScore returns the score of member, or nil when the member does not exist.
func (server *ZSetDB) ZScore(key, member string) (*float64, error) {
	b, err := server.do([]string{"ZSCORE", key, member})
	if err != nil {
		return nil, err
	}
	isNil, err := internal.ParseNilResponse(b)
	if err != nil || isNil {
		return nil, err
	}
	score, err := internal.ParseFloatResponse(b)
	if err != nil {
		return nil, err
	}
	return &score, nil
}

// ZMScore returns the score of each member in order. Missing members are nil.
func (server *ZSetDB) ZMScore(key string, members ...string) ([]*float64, error) {
	b, err := server.do(append([]string{"ZMSCORE", key}, members...))
	if err != nil {
		return nil, err
	}
	arr, err := internal.ParseNullableStringArrayResponse(b)
	if err != nil {
		return nil, err
	}
	scores := make([]*float64, len(arr))
	for i, s := range arr {
		if s == nil {
			continue
		}
		score, err := strconv.ParseFloat(*s, 64)
		if err != nil {
			return nil, err
		}
		scores[i] = &score
	}
	return scores, nil
}

// ZRem removes the members from the sorted set and returns the number removed.
func (server *ZSetDB) ZRem(key string, members ...string) (int, error) {
	b, err := server.do(append([]string{"ZREM", key}, members...))
	if err != nil {
		return 0, err
	}
	return internal.ParseIntegerResponse(b)
}

// ZRange returns the members between start and stop in the mode selected by options.
//
// Parameters:
//
// `key` - string - the key to the sorted set.
//
// `start`, `stop` - string - ranks, score bounds or lex bounds depending on options.
//
// `options` - ZRangeOptions.
//
// Errors:
//
// "syntax error, LIMIT is only supported in combination with either BYSCORE or BYLEX" - when Count is set in rank mode.
func (server *ZSetDB) ZRange(key, start, stop string, options ZRangeOptions) ([]string, error) {
	cmd := append([]string{"ZRANGE", key, start, stop}, options.tokens()...)
	b, err := server.do(cmd)
	if err != nil {
		return nil, err
	}
	return internal.ParseStringArrayResponse(b)
}

// ZRangeWithScores works like ZRange and includes the score of each member.
func (server *ZSetDB) ZRangeWithScores(key, start, stop string, options ZRangeOptions) ([]MemberScore, error) {
	cmd := append([]string{"ZRANGE", key, start, stop}, options.tokens()...)
	b, err := server.do(append(cmd, "WITHSCORES"))
	if err != nil {
		return nil, err
	}
	return parseMemberScores(b, true)
}

// ZRemRangeByRank removes the members between the start and stop ranks and returns the number removed.
func (server *ZSetDB) ZRemRangeByRank(key string, start, stop int) (int, error) {
	b, err := server.do([]string{"ZREMRANGEBYRANK", key, strconv.Itoa(start), strconv.Itoa(stop)})
	if err != nil {
		return 0, err
	}
	return internal.ParseIntegerResponse(b)
}

// ZRemRangeByScore removes the members with scores between min and max.
func (server *ZSetDB) ZRemRangeByScore(key, min, max string) (int, error) {
	b, err := server.do([]string{"ZREMRANGEBYSCORE", key, min, max})
	if err != nil {
		return 0, err
	}
	return internal.ParseIntegerResponse(b)
}

// ZRemRangeByLex removes the members between min and max in lexicographical order.
func (server *ZSetDB) ZRemRangeByLex(key, min, max string) (int, error) {
	b, err := server.do([]string{"ZREMRANGEBYLEX", key, min, max})
	if err != nil {
		return 0, err
	}
	return internal.ParseIntegerResponse(b)
}

// ZRandMember returns random members of the sorted set.
// A positive count returns distinct members, a negative count allows repeats.
func (server *ZSetDB) ZRandMember(key string, count int, withScores bool) ([]MemberScore, error) {
	cmd := []string{"ZRANDMEMBER", key, strconv.Itoa(count)}
	if withScores {
		cmd = append(cmd, "WITHSCORES")
	}
	b, err := server.do(cmd)
	if err != nil {
		return nil, err
	}
	return parseMemberScores(b, withScores)
}

func (server *ZSetDB) zrank(command, key, member string) (int, float64, bool, error) {
	b, err := server.do([]string{command, key, member, "WITHSCORE"})
	if err != nil {
		return 0, 0, false, err
	}
	isNil, err := internal.ParseNilResponse(b)
	if err != nil || isNil {
		return 0, 0, false, err
	}
	arr, err := internal.ParseStringArrayResponse(b)
	if err != nil {
		return 0, 0, false, err
	}
	rank, err := strconv.Atoi(arr[0])
	if err != nil {
		return 0, 0, false, err
	}
	score, err := strconv.ParseFloat(arr[1], 64)
	if err != nil {
		return 0, 0, false, err
	}
	return rank, score, true, nil
}

// ZRank returns the rank and score of member counted from the lowest score.
// The returned bool is false when the member does not exist.
func (server *ZSetDB) ZRank(key, member string) (int, float64, bool, error) {
	return server.zrank("ZRANK", key, member)
}

// ZRevRank returns the rank and score of member counted from the highest score.
func (server *ZSetDB) ZRevRank(key, member string) (int, float64, bool, error) {
	return server.zrank("ZREVRANK", key, member)
}

// ZPopMin removes and returns up to count members with the lowest scores.
func (server *ZSetDB) ZPopMin(key string, count int) ([]MemberScore, error) {
	b, err := server.do([]string{"ZPOPMIN", key, strconv.Itoa(count)})
	if err != nil {
		return nil, err
	}
	return parseMemberScores(b, true)
}

// ZPopMax removes and returns up to count members with the highest scores.
func (server *ZSetDB) ZPopMax(key string, count int) ([]MemberScore, error) {
	b, err := server.do([]string{"ZPOPMAX", key, strconv.Itoa(count)})
	if err != nil {
		return nil, err
	}
	return parseMemberScores(b, true)
}

// ZScan iterates the sorted set from cursor and returns the next cursor with a page of members.
// A returned cursor of 0 means the iteration is complete. Scores are zero when NoScores is set.
func (server *ZSetDB) ZScan(key string, cursor int, options ZScanOptions) (int, []MemberScore, error) {
	cmd := []string{"ZSCAN", key, strconv.Itoa(cursor)}
	if options.Match != "" {
		cmd = append(cmd, "MATCH", options.Match)
	}
	if options.Count > 0 {
		cmd = append(cmd, "COUNT", strconv.Itoa(options.Count))
	}
	if options.NoScores {
		cmd = append(cmd, "NOSCORES")
	}
	b, err := server.do(cmd)
	if err != nil {
		return 0, nil, err
	}
	next, elements, err := internal.ParseScanResponse(b)
	if err != nil {
		return 0, nil, err
	}
	if options.NoScores {
		res := make([]MemberScore, len(elements))
		for i, m := range elements {
			res[i] = MemberScore{Member: m}
		}
		return next, res, nil
	}
	res := make([]MemberScore, 0, len(elements)/2)
	for i := 0; i+1 < len(elements); i += 2 {
		score, err := strconv.ParseFloat(elements[i+1], 64)
		if err != nil {
			return 0, nil, err
		}
		res = append(res, MemberScore{Member: elements[i], Score: score})
	}
	return next, res, nil
}

func (server *ZSetDB) expire(command, key, when string, option ExpireOption, members []string) ([]int, error) {
	cmd := []string{command, key, when}
	if option != ExpireAlways {
		cmd = append(cmd, strings.ToUpper(string(option)))
	}
	b, err := server.do(append(cmd, membersClause(members)...))
	if err != nil {
		return nil, err
	}
	return internal.ParseIntegerArrayResponse(b)
}

// ZExpire sets a time to live on each member with millisecond precision.
//
// Returns: one status per member. -2 when the member does not exist, 0 when the option
// condition is not met, 1 when the expiration is set and 2 when the member was removed
// because the expiration is already due.
func (server *ZSetDB) ZExpire(key string, ttl time.Duration, option ExpireOption, members ...string) ([]int, error) {
	return server.expire("ZPEXPIRE", key, strconv.FormatInt(ttl.Milliseconds(), 10), option, members)
}

// ZExpireAt sets an absolute expiration instant on each member with millisecond precision.
func (server *ZSetDB) ZExpireAt(key string, at time.Time, option ExpireOption, members ...string) ([]int, error) {
	return server.expire("ZPEXPIREAT", key, strconv.FormatInt(at.UnixMilli(), 10), option, members)
}

func (server *ZSetDB) ttl(command, key string, members []string) ([]int, error) {
	b, err := server.do(append([]string{command, key}, membersClause(members)...))
	if err != nil {
		return nil, err
	}
	return internal.ParseIntegerArrayResponse(b)
}

// ZTTL returns the remaining time to live of each member in seconds.
// -1 means the member has no expiration and -2 means it does not exist.
func (server *ZSetDB) ZTTL(key string, members ...string) ([]int, error) {
	return server.ttl("ZTTL", key, members)
}

// ZPTTL returns the remaining time to live of each member in milliseconds.
func (server *ZSetDB) ZPTTL(key string, members ...string) ([]int, error) {
	return server.ttl("ZPTTL", key, members)
}

// ZExpireTime returns the unix time in seconds at which each member expires.
func (server *ZSetDB) ZExpireTime(key string, members ...string) ([]int, error) {
	return server.ttl("ZEXPIRETIME", key, members)
}

// ZPExpireTime returns the unix time in milliseconds at which each member expires.
func (server *ZSetDB) ZPExpireTime(key string, members ...string) ([]int, error) {
	return server.ttl("ZPEXPIRETIME", key, members)
}

// ZPersist removes the expiration of each member.
// Returns 1 when an expiration was cleared, -1 when there was none and -2 for a missing member.
func (server *ZSetDB) ZPersist(key string, members ...string) ([]int, error) {
	return server.ttl("ZPERSIST", key, members)
}

// ZCollect removes every member of the sorted set whose expiration is due.
func (server *ZSetDB) ZCollect(key string) (bool, error) {
	b, err := server.do([]string{"ZCOLLECT", key})
	if err != nil {
		return false, err
	}
	s, err := internal.ParseStringResponse(b)
	return strings.EqualFold(s, "ok"), err
}
