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
	"strconv"
	"strings"

	"github.com/echovault/zsetdb/internal"
	"github.com/echovault/zsetdb/internal/constants"
	"github.com/echovault/zsetdb/internal/sorted_set"
	"github.com/tidwall/resp"
)

func handleZADD(params internal.HandlerFuncParams) ([]byte, error) {
	keys, err := zaddKeyFunc(params.Command)
	if err != nil {
		return nil, err
	}

	key := keys.WriteKeys[0]

	var opts sorted_set.AddOptions
	i := 2
	for i < len(params.Command) && opts.ParseAddOption(params.Command[i]) {
		i++
	}
	pairs := params.Command[i:]

	if err = opts.Validate((len(pairs) + 1) / 2); err != nil {
		return nil, err
	}
	if len(pairs) == 0 || len(pairs)%2 != 0 {
		return nil, sorted_set.ErrSyntax
	}

	members := make([]sorted_set.MemberParam, 0, len(pairs)/2)
	for j := 0; j < len(pairs); j += 2 {
		score, err := sorted_set.ParseScore(pairs[j])
		if err != nil {
			return nil, err
		}
		members = append(members, sorted_set.MemberParam{Value: sorted_set.Value(pairs[j+1]), Score: score})
	}

	set, _, err := getSortedSet(params, key)
	if err != nil {
		return nil, err
	}

	// Storing the set first lets a full keyspace reject the command before the set changes.
	if err = params.SetValues(params.Context, map[string]interface{}{key: set}); err != nil {
		return nil, err
	}

	res, err := set.AddOrUpdate(members, opts)
	if deleteErr := deleteIfEmpty(params, key, set, true); deleteErr != nil {
		return nil, deleteErr
	}
	if err != nil {
		return nil, err
	}

	if opts.INCR {
		if res.Skipped {
			return encodeNull()
		}
		return encodeScore(params.Context, res.Score)
	}
	return encodeInteger(res.Count)
}

func handleZCARD(params internal.HandlerFuncParams) ([]byte, error) {
	keys, err := zcardKeyFunc(params.Command)
	if err != nil {
		return nil, err
	}

	set, _, err := getSortedSet(params, keys.ReadKeys[0])
	if err != nil {
		return nil, err
	}

	return encodeInteger(set.Cardinality())
}

func handleZCOUNT(params internal.HandlerFuncParams) ([]byte, error) {
	keys, err := zcountKeyFunc(params.Command)
	if err != nil {
		return nil, err
	}

	var count func(set *sorted_set.SortedSet) int

	switch strings.ToLower(params.Command[0]) {
	case "zlexcount":
		min, err := sorted_set.ParseLexBound(params.Command[2])
		if err != nil {
			return nil, err
		}
		max, err := sorted_set.ParseLexBound(params.Command[3])
		if err != nil {
			return nil, err
		}
		count = func(set *sorted_set.SortedSet) int { return set.CountByLex(min, max) }
	default:
		min, err := sorted_set.ParseScoreBound(params.Command[2])
		if err != nil {
			return nil, err
		}
		max, err := sorted_set.ParseScoreBound(params.Command[3])
		if err != nil {
			return nil, err
		}
		count = func(set *sorted_set.SortedSet) int { return set.CountByScore(min, max) }
	}

	set, _, err := getSortedSet(params, keys.ReadKeys[0])
	if err != nil {
		return nil, err
	}

	return encodeInteger(count(set))
}

func handleZINCRBY(params internal.HandlerFuncParams) ([]byte, error) {
	keys, err := zincrbyKeyFunc(params.Command)
	if err != nil {
		return nil, err
	}

	key := keys.WriteKeys[0]

	increment, err := sorted_set.ParseScore(params.Command[2])
	if err != nil {
		return nil, err
	}

	set, _, err := getSortedSet(params, key)
	if err != nil {
		return nil, err
	}

	if err = params.SetValues(params.Context, map[string]interface{}{key: set}); err != nil {
		return nil, err
	}

	score, err := set.Increment(sorted_set.Value(params.Command[3]), increment)
	if deleteErr := deleteIfEmpty(params, key, set, true); deleteErr != nil {
		return nil, deleteErr
	}
	if err != nil {
		return nil, err
	}

	return encodeScore(params.Context, score)
}

func handleZSCORE(params internal.HandlerFuncParams) ([]byte, error) {
	keys, err := zscoreKeyFunc(params.Command)
	if err != nil {
		return nil, err
	}

	set, _, err := getSortedSet(params, keys.ReadKeys[0])
	if err != nil {
		return nil, err
	}

	score, ok := set.Score(sorted_set.Value(params.Command[2]))
	if !ok {
		return encodeNull()
	}
	return encodeScore(params.Context, score)
}

func handleZMSCORE(params internal.HandlerFuncParams) ([]byte, error) {
	keys, err := zmscoreKeyFunc(params.Command)
	if err != nil {
		return nil, err
	}

	set, _, err := getSortedSet(params, keys.ReadKeys[0])
	if err != nil {
		return nil, err
	}

	members := make([]sorted_set.Value, len(params.Command[2:]))
	for i, m := range params.Command[2:] {
		members[i] = sorted_set.Value(m)
	}

	res := []byte(fmt.Sprintf("*%d\r\n", len(members)))
	for _, score := range set.Scores(members...) {
		var b []byte
		if score == nil {
			b, err = encodeNull()
		} else {
			b, err = encodeScore(params.Context, *score)
		}
		if err != nil {
			return nil, err
		}
		res = append(res, b...)
	}
	return res, nil
}

func handleZREM(params internal.HandlerFuncParams) ([]byte, error) {
	keys, err := zremKeyFunc(params.Command)
	if err != nil {
		return nil, err
	}

	key := keys.WriteKeys[0]

	set, exists, err := getSortedSet(params, key)
	if err != nil {
		return nil, err
	}
	if !exists {
		return encodeInteger(0)
	}

	members := make([]sorted_set.Value, len(params.Command[2:]))
	for i, m := range params.Command[2:] {
		members[i] = sorted_set.Value(m)
	}
	count := set.Remove(members...)

	if err = deleteIfEmpty(params, key, set, exists); err != nil {
		return nil, err
	}
	return encodeInteger(count)
}

func handleZRANGE(params internal.HandlerFuncParams) ([]byte, error) {
	keys, err := zrangeKeyFunc(params.Command)
	if err != nil {
		return nil, err
	}

	var preset rangeOptions
	switch strings.ToLower(params.Command[0]) {
	case "zrevrange":
		preset = rangeOptions{rev: true}
	case "zrangebyscore":
		preset = rangeOptions{byScore: true}
	case "zrevrangebyscore":
		preset = rangeOptions{byScore: true, rev: true}
	case "zrangebylex":
		preset = rangeOptions{byLex: true}
	case "zrevrangebylex":
		preset = rangeOptions{byLex: true, rev: true}
	}

	opts, err := parseRangeOptions(params.Command[4:], preset)
	if err != nil {
		return nil, err
	}

	var selectMembers func(set *sorted_set.SortedSet) []sorted_set.MemberParam

	switch {
	case opts.byScore:
		min, err := sorted_set.ParseScoreBound(params.Command[2])
		if err != nil {
			return nil, err
		}
		max, err := sorted_set.ParseScoreBound(params.Command[3])
		if err != nil {
			return nil, err
		}
		selectMembers = func(set *sorted_set.SortedSet) []sorted_set.MemberParam {
			return set.RangeByScore(min, max, opts.rev, opts.limit)
		}
	case opts.byLex:
		min, err := sorted_set.ParseLexBound(params.Command[2])
		if err != nil {
			return nil, err
		}
		max, err := sorted_set.ParseLexBound(params.Command[3])
		if err != nil {
			return nil, err
		}
		selectMembers = func(set *sorted_set.SortedSet) []sorted_set.MemberParam {
			return set.RangeByLex(min, max, opts.rev, opts.limit)
		}
	default:
		start, err := parseInt(params.Command[2])
		if err != nil {
			return nil, err
		}
		stop, err := parseInt(params.Command[3])
		if err != nil {
			return nil, err
		}
		selectMembers = func(set *sorted_set.SortedSet) []sorted_set.MemberParam {
			return set.RangeByRank(start, stop, opts.rev)
		}
	}

	set, _, err := getSortedSet(params, keys.ReadKeys[0])
	if err != nil {
		return nil, err
	}

	return encodeMembers(params.Context, selectMembers(set), opts.withScores)
}

func handleZREMRANGE(params internal.HandlerFuncParams) ([]byte, error) {
	keys, err := zremrangeKeyFunc(params.Command)
	if err != nil {
		return nil, err
	}

	key := keys.WriteKeys[0]

	var remove func(set *sorted_set.SortedSet) int

	switch strings.ToLower(params.Command[0]) {
	case "zremrangebyscore":
		min, err := sorted_set.ParseScoreBound(params.Command[2])
		if err != nil {
			return nil, err
		}
		max, err := sorted_set.ParseScoreBound(params.Command[3])
		if err != nil {
			return nil, err
		}
		remove = func(set *sorted_set.SortedSet) int { return set.RemoveRangeByScore(min, max) }
	case "zremrangebylex":
		min, err := sorted_set.ParseLexBound(params.Command[2])
		if err != nil {
			return nil, err
		}
		max, err := sorted_set.ParseLexBound(params.Command[3])
		if err != nil {
			return nil, err
		}
		remove = func(set *sorted_set.SortedSet) int { return set.RemoveRangeByLex(min, max) }
	default:
		start, err := parseInt(params.Command[2])
		if err != nil {
			return nil, err
		}
		stop, err := parseInt(params.Command[3])
		if err != nil {
			return nil, err
		}
		remove = func(set *sorted_set.SortedSet) int { return set.RemoveRangeByRank(start, stop) }
	}

	set, exists, err := getSortedSet(params, key)
	if err != nil {
		return nil, err
	}
	if !exists {
		return encodeInteger(0)
	}

	count := remove(set)

	if err = deleteIfEmpty(params, key, set, exists); err != nil {
		return nil, err
	}
	return encodeInteger(count)
}

func handleZRANDMEMBER(params internal.HandlerFuncParams) ([]byte, error) {
	keys, err := zrandmemberKeyFunc(params.Command)
	if err != nil {
		return nil, err
	}

	count := 1
	if len(params.Command) >= 3 {
		if count, err = parseInt(params.Command[2]); err != nil {
			return nil, err
		}
		if count < sorted_set.MinRandomCount {
			return nil, sorted_set.ErrCountOutOfRange
		}
	}

	withScores := false
	if len(params.Command) == 4 {
		if !strings.EqualFold(params.Command[3], "WITHSCORES") {
			return nil, sorted_set.ErrSyntax
		}
		withScores = true
	}

	set, _, err := getSortedSet(params, keys.ReadKeys[0])
	if err != nil {
		return nil, err
	}

	members, err := set.RandomMembers(count, params.GetRandomSeed())
	if err != nil {
		return nil, err
	}

	if len(params.Command) == 2 {
		if len(members) == 0 {
			return encodeNull()
		}
		return encode(resp.StringValue(string(members[0].Value)))
	}

	return encodeMembers(params.Context, members, withScores)
}

func handleZRANK(params internal.HandlerFuncParams) ([]byte, error) {
	keys, err := zrankKeyFunc(params.Command)
	if err != nil {
		return nil, err
	}

	withScore := false
	if len(params.Command) == 4 {
		if !strings.EqualFold(params.Command[3], "WITHSCORE") {
			return nil, sorted_set.ErrSyntax
		}
		withScore = true
	}

	set, _, err := getSortedSet(params, keys.ReadKeys[0])
	if err != nil {
		return nil, err
	}

	rev := strings.EqualFold(params.Command[0], "zrevrank")
	rank, score, ok := set.Rank(sorted_set.Value(params.Command[2]), rev)
	if !ok {
		return encodeNull()
	}

	if !withScore {
		return encodeInteger(rank)
	}

	b, err := encodeScore(params.Context, score)
	if err != nil {
		return nil, err
	}
	return append([]byte(fmt.Sprintf("*2\r\n:%d\r\n", rank)), b...), nil
}

func handleZPOP(params internal.HandlerFuncParams) ([]byte, error) {
	keys, err := zpopKeyFunc(params.Command)
	if err != nil {
		return nil, err
	}

	key := keys.WriteKeys[0]

	count := 1
	if len(params.Command) == 3 {
		if count, err = parseInt(params.Command[2]); err != nil {
			return nil, err
		}
		if count < 0 {
			return nil, ErrOutOfRange
		}
	}

	set, exists, err := getSortedSet(params, key)
	if err != nil {
		return nil, err
	}
	if !exists {
		return encodeMembers(params.Context, nil, true)
	}

	popped := set.Pop(count, strings.EqualFold(params.Command[0], "zpopmax"))

	if err = deleteIfEmpty(params, key, set, exists); err != nil {
		return nil, err
	}
	return encodeMembers(params.Context, popped, true)
}

func handleZSCAN(params internal.HandlerFuncParams) ([]byte, error) {
	keys, err := zscanKeyFunc(params.Command)
	if err != nil {
		return nil, err
	}

	cursor, err := parseInt(params.Command[2])
	if err != nil {
		return nil, err
	}

	count := params.GetScanCount()
	pattern := ""
	withScores := true

	tokens := params.Command[3:]
	for i := 0; i < len(tokens); i++ {
		switch strings.ToUpper(tokens[i]) {
		case "MATCH":
			if i+1 >= len(tokens) {
				return nil, sorted_set.ErrSyntax
			}
			pattern = tokens[i+1]
			i++
		case "COUNT":
			if i+1 >= len(tokens) {
				return nil, sorted_set.ErrSyntax
			}
			if count, err = parseInt(tokens[i+1]); err != nil {
				return nil, err
			}
			if count < 1 {
				return nil, sorted_set.ErrSyntax
			}
			i++
		case "NOSCORES":
			withScores = false
		default:
			return nil, sorted_set.ErrSyntax
		}
	}

	set, _, err := getSortedSet(params, keys.ReadKeys[0])
	if err != nil {
		return nil, err
	}

	next, members, err := set.Scan(cursor, count, pattern)
	if err != nil {
		return nil, err
	}

	arr := make([]resp.Value, 0, len(members))
	for _, m := range members {
		arr = append(arr, resp.StringValue(string(m.Value)))
		if withScores {
			arr = append(arr, resp.StringValue(formatScore(m.Score)))
		}
	}
	return encode(resp.ArrayValue([]resp.Value{
		resp.StringValue(strconv.Itoa(next)),
		resp.ArrayValue(arr),
	}))
}

func handleZEXPIRE(params internal.HandlerFuncParams) ([]byte, error) {
	keys, err := zexpireKeyFunc(params.Command)
	if err != nil {
		return nil, err
	}

	key := keys.WriteKeys[0]

	n, err := strconv.ParseInt(params.Command[2], 10, 64)
	if err != nil {
		return nil, sorted_set.ErrNotInteger
	}

	option := sorted_set.ExpireAlways
	membersIdx := 3
	if opt, ok := sorted_set.ParseExpireOption(params.Command[3]); ok {
		option = opt
		membersIdx = 4
	}

	members, err := parseMembersClause(params.Command[membersIdx:])
	if err != nil {
		return nil, err
	}

	at, err := expireInstant(strings.ToLower(params.Command[0]), n, params.GetClock().Now())
	if err != nil {
		return nil, err
	}

	set, exists, err := getSortedSet(params, key)
	if err != nil {
		return nil, err
	}

	statuses := make([]int, len(members))
	for i, member := range members {
		if !exists {
			statuses[i] = sorted_set.ExpireNoMember
			continue
		}
		statuses[i] = set.SetExpiry(member, at, option)
	}

	if err = deleteIfEmpty(params, key, set, exists); err != nil {
		return nil, err
	}
	return encodeIntegers(statuses)
}

func handleZTTL(params internal.HandlerFuncParams) ([]byte, error) {
	keys, err := zttlKeyFunc(params.Command)
	if err != nil {
		return nil, err
	}

	key := keys.WriteKeys[0]

	members, err := parseMembersClause(params.Command[2:])
	if err != nil {
		return nil, err
	}

	set, exists, err := getSortedSet(params, key)
	if err != nil {
		return nil, err
	}

	now := params.GetClock().Now()
	res := make([]int, len(members))
	for i, member := range members {
		if !exists {
			res[i] = sorted_set.ExpireNoMember
			continue
		}
		at, status := set.Expiry(member)
		if status != sorted_set.ExpiryFound {
			res[i] = status
			continue
		}
		remaining := at.UnixMilli() - now.UnixMilli()
		switch strings.ToLower(params.Command[0]) {
		case "zpttl":
			res[i] = int(remaining)
		case "zexpiretime":
			res[i] = int(at.Unix())
		case "zpexpiretime":
			res[i] = int(at.UnixMilli())
		default:
			res[i] = int((remaining + 500) / 1000)
		}
	}

	if err = deleteIfEmpty(params, key, set, exists); err != nil {
		return nil, err
	}
	return encodeIntegers(res)
}

func handleZPERSIST(params internal.HandlerFuncParams) ([]byte, error) {
	keys, err := zpersistKeyFunc(params.Command)
	if err != nil {
		return nil, err
	}

	key := keys.WriteKeys[0]

	members, err := parseMembersClause(params.Command[2:])
	if err != nil {
		return nil, err
	}

	set, exists, err := getSortedSet(params, key)
	if err != nil {
		return nil, err
	}

	res := make([]int, len(members))
	for i, member := range members {
		if !exists {
			res[i] = sorted_set.ExpireNoMember
			continue
		}
		res[i] = set.Persist(member)
	}

	if err = deleteIfEmpty(params, key, set, exists); err != nil {
		return nil, err
	}
	return encodeIntegers(res)
}

func handleZCOLLECT(params internal.HandlerFuncParams) ([]byte, error) {
	keys, err := zcollectKeyFunc(params.Command)
	if err != nil {
		return nil, err
	}

	key := keys.WriteKeys[0]

	set, exists, err := getSortedSet(params, key)
	if err != nil {
		return nil, err
	}
	if exists {
		set.Sweep()
	}

	if err = deleteIfEmpty(params, key, set, exists); err != nil {
		return nil, err
	}
	return []byte(constants.OkResponse), nil
}

func Commands() []internal.Command {
	return []internal.Command{
		{
			Command:    "zadd",
			Module:     constants.SortedSetModule,
			Categories: []string{constants.SortedSetCategory, constants.WriteCategory, constants.FastCategory},
			Description: `(ZADD key [NX | XX] [GT | LT] [CH] [INCR] score member [score member...])
Adds all the specified members with the specified scores to the sorted set at the key.
"NX" only adds the member if it does not exist in the sorted set.
"XX" only updates the scores of members that exist in the sorted set.
"GT" only updates the score if the new score is greater than the current score.
"LT" only updates the score if the new score is less than the current score.
"CH" modifies the result to return total number of members changed + added, instead of only new members added.
"INCR" modifies the command to act like ZINCRBY, only one score/member pair can be specified in this mode.`,
			KeyExtractionFunc: zaddKeyFunc,
			HandlerFunc:       handleZADD,
		},
		{
			Command:    "zcard",
			Module:     constants.SortedSetModule,
			Categories: []string{constants.SortedSetCategory, constants.ReadCategory, constants.FastCategory},
			Description: `(ZCARD key)
Returns the number of live members in the sorted set. 0 if the key does not exist.`,
			KeyExtractionFunc: zcardKeyFunc,
			HandlerFunc:       handleZCARD,
		},
		{
			Command:    "zcount",
			Module:     constants.SortedSetModule,
			Categories: []string{constants.SortedSetCategory, constants.ReadCategory, constants.FastCategory},
			Description: `(ZCOUNT key min max)
Returns the number of elements in the sorted set key with scores in the range of min and max.`,
			KeyExtractionFunc: zcountKeyFunc,
			HandlerFunc:       handleZCOUNT,
		},
		{
			Command:    "zlexcount",
			Module:     constants.SortedSetModule,
			Categories: []string{constants.SortedSetCategory, constants.ReadCategory, constants.SlowCategory},
			Description: `(ZLEXCOUNT key min max)
Returns the number of elements in the sorted set between min and max in lexicographical order.
Only meaningful when all the members have the same score.`,
			KeyExtractionFunc: zcountKeyFunc,
			HandlerFunc:       handleZCOUNT,
		},
		{
			Command:    "zincrby",
			Module:     constants.SortedSetModule,
			Categories: []string{constants.SortedSetCategory, constants.WriteCategory, constants.FastCategory},
			Description: `(ZINCRBY key increment member)
Increments the score of the specified sorted set's member by the increment. If the member does not exist, it is created.`,
			KeyExtractionFunc: zincrbyKeyFunc,
			HandlerFunc:       handleZINCRBY,
		},
		{
			Command:    "zscore",
			Module:     constants.SortedSetModule,
			Categories: []string{constants.SortedSetCategory, constants.ReadCategory, constants.FastCategory},
			Description: `(ZSCORE key member)
Returns the score of the member in the sorted set.`,
			KeyExtractionFunc: zscoreKeyFunc,
			HandlerFunc:       handleZSCORE,
		},
		{
			Command:    "zmscore",
			Module:     constants.SortedSetModule,
			Categories: []string{constants.SortedSetCategory, constants.ReadCategory, constants.FastCategory},
			Description: `(ZMSCORE key member [member ...])
Returns the associated scores of the specified member in the sorted set.
Returns nil for members that do not exist in the set`,
			KeyExtractionFunc: zmscoreKeyFunc,
			HandlerFunc:       handleZMSCORE,
		},
		{
			Command:    "zrem",
			Module:     constants.SortedSetModule,
			Categories: []string{constants.SortedSetCategory, constants.WriteCategory, constants.FastCategory},
			Description: `(ZREM key member [member ...])
Removes the listed members from the sorted set. Returns the number of elements removed.`,
			KeyExtractionFunc: zremKeyFunc,
			HandlerFunc:       handleZREM,
		},
		{
			Command:    "zrange",
			Module:     constants.SortedSetModule,
			Categories: []string{constants.SortedSetCategory, constants.ReadCategory, constants.SlowCategory},
			Description: `(ZRANGE key start stop [BYSCORE | BYLEX] [REV] [LIMIT offset count] [WITHSCORES])
Returns the range of elements in the sorted set by rank, score or lexicographical order.`,
			KeyExtractionFunc: zrangeKeyFunc,
			HandlerFunc:       handleZRANGE,
		},
		{
			Command:    "zrevrange",
			Module:     constants.SortedSetModule,
			Categories: []string{constants.SortedSetCategory, constants.ReadCategory, constants.SlowCategory},
			Description: `(ZREVRANGE key start stop [WITHSCORES])
Returns the range of elements in the sorted set by rank, from the highest score to the lowest.`,
			KeyExtractionFunc: zrangeKeyFunc,
			HandlerFunc:       handleZRANGE,
		},
		{
			Command:    "zrangebyscore",
			Module:     constants.SortedSetModule,
			Categories: []string{constants.SortedSetCategory, constants.ReadCategory, constants.SlowCategory},
			Description: `(ZRANGEBYSCORE key min max [WITHSCORES] [LIMIT offset count])
Returns the elements with scores between min and max, ordered from low to high.`,
			KeyExtractionFunc: zrangeKeyFunc,
			HandlerFunc:       handleZRANGE,
		},
		{
			Command:    "zrevrangebyscore",
			Module:     constants.SortedSetModule,
			Categories: []string{constants.SortedSetCategory, constants.ReadCategory, constants.SlowCategory},
			Description: `(ZREVRANGEBYSCORE key max min [WITHSCORES] [LIMIT offset count])
Returns the elements with scores between max and min, ordered from high to low.`,
			KeyExtractionFunc: zrangeKeyFunc,
			HandlerFunc:       handleZRANGE,
		},
		{
			Command:    "zrangebylex",
			Module:     constants.SortedSetModule,
			Categories: []string{constants.SortedSetCategory, constants.ReadCategory, constants.SlowCategory},
			Description: `(ZRANGEBYLEX key min max [LIMIT offset count])
Returns the elements between min and max in lexicographical order.`,
			KeyExtractionFunc: zrangeKeyFunc,
			HandlerFunc:       handleZRANGE,
		},
		{
			Command:    "zrevrangebylex",
			Module:     constants.SortedSetModule,
			Categories: []string{constants.SortedSetCategory, constants.ReadCategory, constants.SlowCategory},
			Description: `(ZREVRANGEBYLEX key max min [LIMIT offset count])
Returns the elements between max and min in reverse lexicographical order.`,
			KeyExtractionFunc: zrangeKeyFunc,
			HandlerFunc:       handleZRANGE,
		},
		{
			Command:    "zremrangebyrank",
			Module:     constants.SortedSetModule,
			Categories: []string{constants.SortedSetCategory, constants.WriteCategory, constants.SlowCategory},
			Description: `(ZREMRANGEBYRANK key start stop)
Removes the elements in the sorted set between start and stop ranks.`,
			KeyExtractionFunc: zremrangeKeyFunc,
			HandlerFunc:       handleZREMRANGE,
		},
		{
			Command:    "zremrangebyscore",
			Module:     constants.SortedSetModule,
			Categories: []string{constants.SortedSetCategory, constants.WriteCategory, constants.SlowCategory},
			Description: `(ZREMRANGEBYSCORE key min max)
Removes the elements whose scores are in the range between min and max.`,
			KeyExtractionFunc: zremrangeKeyFunc,
			HandlerFunc:       handleZREMRANGE,
		},
		{
			Command:    "zremrangebylex",
			Module:     constants.SortedSetModule,
			Categories: []string{constants.SortedSetCategory, constants.WriteCategory, constants.SlowCategory},
			Description: `(ZREMRANGEBYLEX key min max)
Removes the elements in the lexicographical range between min and max.`,
			KeyExtractionFunc: zremrangeKeyFunc,
			HandlerFunc:       handleZREMRANGE,
		},
		{
			Command:    "zrandmember",
			Module:     constants.SortedSetModule,
			Categories: []string{constants.SortedSetCategory, constants.ReadCategory, constants.SlowCategory},
			Description: `(ZRANDMEMBER key [count [WITHSCORES]])
Return a list of length equivalent to count containing random members of the sorted set.
If count is negative, repeated elements are allowed. If count is positive, the returned elements will be distinct.
WITHSCORES modifies the result to include scores in the result.`,
			KeyExtractionFunc: zrandmemberKeyFunc,
			HandlerFunc:       handleZRANDMEMBER,
		},
		{
			Command:    "zrank",
			Module:     constants.SortedSetModule,
			Categories: []string{constants.SortedSetCategory, constants.ReadCategory, constants.SlowCategory},
			Description: `(ZRANK key member [WITHSCORE])
Returns the rank of the specified member in the sorted set. WITHSCORE modifies the result to also return the score.`,
			KeyExtractionFunc: zrankKeyFunc,
			HandlerFunc:       handleZRANK,
		},
		{
			Command:    "zrevrank",
			Module:     constants.SortedSetModule,
			Categories: []string{constants.SortedSetCategory, constants.ReadCategory, constants.SlowCategory},
			Description: `(ZREVRANK key member [WITHSCORE])
Returns the rank of the member in the sorted set counted from the highest score.`,
			KeyExtractionFunc: zrankKeyFunc,
			HandlerFunc:       handleZRANK,
		},
		{
			Command:    "zpopmin",
			Module:     constants.SortedSetModule,
			Categories: []string{constants.SortedSetCategory, constants.WriteCategory, constants.FastCategory},
			Description: `(ZPOPMIN key [count])
Removes and returns count number of members in the sorted set with the lowest scores. Default count is 1.`,
			KeyExtractionFunc: zpopKeyFunc,
			HandlerFunc:       handleZPOP,
		},
		{
			Command:    "zpopmax",
			Module:     constants.SortedSetModule,
			Categories: []string{constants.SortedSetCategory, constants.WriteCategory, constants.FastCategory},
			Description: `(ZPOPMAX key [count])
Removes and returns count number of members in the sorted set with the highest scores. Default count is 1.`,
			KeyExtractionFunc: zpopKeyFunc,
			HandlerFunc:       handleZPOP,
		},
		{
			Command:    "zscan",
			Module:     constants.SortedSetModule,
			Categories: []string{constants.SortedSetCategory, constants.ReadCategory, constants.SlowCategory},
			Description: `(ZSCAN key cursor [MATCH pattern] [COUNT count] [NOSCORES])
Iterates the members of the sorted set in rank order. A returned cursor of 0 ends the iteration.`,
			KeyExtractionFunc: zscanKeyFunc,
			HandlerFunc:       handleZSCAN,
		},
		{
			Command:    "zexpire",
			Module:     constants.SortedSetModule,
			Categories: []string{constants.SortedSetCategory, constants.KeyspaceCategory, constants.WriteCategory, constants.FastCategory},
			Description: `(ZEXPIRE key seconds [NX | XX | GT | LT] MEMBERS numMembers member [member ...])
Sets an expiration in seconds on each member. Returns -2 for a missing member, 0 when the condition is not met,
1 when the expiration is set and 2 when the member was removed because the expiration is already due.`,
			KeyExtractionFunc: zexpireKeyFunc,
			HandlerFunc:       handleZEXPIRE,
		},
		{
			Command:    "zpexpire",
			Module:     constants.SortedSetModule,
			Categories: []string{constants.SortedSetCategory, constants.KeyspaceCategory, constants.WriteCategory, constants.FastCategory},
			Description: `(ZPEXPIRE key milliseconds [NX | XX | GT | LT] MEMBERS numMembers member [member ...])
Sets an expiration in milliseconds on each member.`,
			KeyExtractionFunc: zexpireKeyFunc,
			HandlerFunc:       handleZEXPIRE,
		},
		{
			Command:    "zexpireat",
			Module:     constants.SortedSetModule,
			Categories: []string{constants.SortedSetCategory, constants.KeyspaceCategory, constants.WriteCategory, constants.FastCategory},
			Description: `(ZEXPIREAT key unix-time-seconds [NX | XX | GT | LT] MEMBERS numMembers member [member ...])
Sets the expiration of each member to an absolute unix time in seconds.`,
			KeyExtractionFunc: zexpireKeyFunc,
			HandlerFunc:       handleZEXPIRE,
		},
		{
			Command:    "zpexpireat",
			Module:     constants.SortedSetModule,
			Categories: []string{constants.SortedSetCategory, constants.KeyspaceCategory, constants.WriteCategory, constants.FastCategory},
			Description: `(ZPEXPIREAT key unix-time-milliseconds [NX | XX | GT | LT] MEMBERS numMembers member [member ...])
Sets the expiration of each member to an absolute unix time in milliseconds.`,
			KeyExtractionFunc: zexpireKeyFunc,
			HandlerFunc:       handleZEXPIRE,
		},
		{
			Command:    "zttl",
			Module:     constants.SortedSetModule,
			Categories: []string{constants.SortedSetCategory, constants.KeyspaceCategory, constants.WriteCategory, constants.FastCategory},
			Description: `(ZTTL key MEMBERS numMembers member [member ...])
Returns the remaining time to live of each member in seconds. -1 when the member has no expiration, -2 when it does not exist.`,
			KeyExtractionFunc: zttlKeyFunc,
			HandlerFunc:       handleZTTL,
		},
		{
			Command:    "zpttl",
			Module:     constants.SortedSetModule,
			Categories: []string{constants.SortedSetCategory, constants.KeyspaceCategory, constants.WriteCategory, constants.FastCategory},
			Description: `(ZPTTL key MEMBERS numMembers member [member ...])
Returns the remaining time to live of each member in milliseconds.`,
			KeyExtractionFunc: zttlKeyFunc,
			HandlerFunc:       handleZTTL,
		},
		{
			Command:    "zexpiretime",
			Module:     constants.SortedSetModule,
			Categories: []string{constants.SortedSetCategory, constants.KeyspaceCategory, constants.WriteCategory, constants.FastCategory},
			Description: `(ZEXPIRETIME key MEMBERS numMembers member [member ...])
Returns the absolute unix time in seconds at which each member expires.`,
			KeyExtractionFunc: zttlKeyFunc,
			HandlerFunc:       handleZTTL,
		},
		{
			Command:    "zpexpiretime",
			Module:     constants.SortedSetModule,
			Categories: []string{constants.SortedSetCategory, constants.KeyspaceCategory, constants.WriteCategory, constants.FastCategory},
			Description: `(ZPEXPIRETIME key MEMBERS numMembers member [member ...])
Returns the absolute unix time in milliseconds at which each member expires.`,
			KeyExtractionFunc: zttlKeyFunc,
			HandlerFunc:       handleZTTL,
		},
		{
			Command:    "zpersist",
			Module:     constants.SortedSetModule,
			Categories: []string{constants.SortedSetCategory, constants.KeyspaceCategory, constants.WriteCategory, constants.FastCategory},
			Description: `(ZPERSIST key MEMBERS numMembers member [member ...])
Removes the expiration of each member. Returns 1 when cleared, -1 when there was none and -2 for a missing member.`,
			KeyExtractionFunc: zpersistKeyFunc,
			HandlerFunc:       handleZPERSIST,
		},
		{
			Command:    "zcollect",
			Module:     constants.SortedSetModule,
			Categories: []string{constants.SortedSetCategory, constants.KeyspaceCategory, constants.WriteCategory, constants.SlowCategory},
			Description: `(ZCOLLECT key)
Removes every member of the sorted set whose expiration is due.`,
			KeyExtractionFunc: zcollectKeyFunc,
			HandlerFunc:       handleZCOLLECT,
		},
	}
}
