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
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/echovault/zsetdb/internal"
	"github.com/echovault/zsetdb/internal/constants"
	"github.com/echovault/zsetdb/internal/sorted_set"
	"github.com/tidwall/resp"
)

var (
	ErrLimitRankMode     = errors.New("syntax error, LIMIT is only supported in combination with either BYSCORE or BYLEX")
	ErrOutOfRange        = errors.New("value is out of range, must be positive")
	ErrNumMembers        = errors.New("numMembers parameter must match the number of arguments")
	ErrInvalidExpireTime = errors.New("invalid expire time")
)

// getSortedSet returns the sorted set stored at key. A missing key yields a new empty set.
func getSortedSet(params internal.HandlerFuncParams, key string) (*sorted_set.SortedSet, bool, error) {
	if !params.KeysExist(params.Context, []string{key})[key] {
		return sorted_set.NewSortedSet(nil, sorted_set.WithClock(params.GetClock())), false, nil
	}
	set, ok := params.GetValues(params.Context, []string{key})[key].(*sorted_set.SortedSet)
	if !ok {
		return nil, true, fmt.Errorf("value at %s is not a sorted set", key)
	}
	return set, true, nil
}

// deleteIfEmpty removes key once the set stored there has no live members.
func deleteIfEmpty(params internal.HandlerFuncParams, key string, set *sorted_set.SortedSet, exists bool) error {
	if !exists || set.Cardinality() > 0 {
		return nil
	}
	return params.DeleteKey(params.Context, key)
}

func protocol(ctx context.Context) int {
	if p, ok := ctx.Value(constants.ContextProtocol).(int); ok {
		return p
	}
	return constants.DefaultProtocol
}

func formatScore(score sorted_set.Score) string {
	switch {
	case math.IsInf(float64(score), 1):
		return "inf"
	case math.IsInf(float64(score), -1):
		return "-inf"
	}
	return strconv.FormatFloat(float64(score), 'f', -1, 64)
}

func encode(v resp.Value) ([]byte, error) {
	return v.MarshalRESP()
}

func encodeInteger(n int) ([]byte, error) {
	return encode(resp.IntegerValue(n))
}

func encodeIntegers(n []int) ([]byte, error) {
	arr := make([]resp.Value, len(n))
	for i, v := range n {
		arr[i] = resp.IntegerValue(v)
	}
	return encode(resp.ArrayValue(arr))
}

func encodeNull() ([]byte, error) {
	return encode(resp.NullValue())
}

// encodeScore writes a bulk string, or a double when the connection speaks RESP3.
func encodeScore(ctx context.Context, score sorted_set.Score) ([]byte, error) {
	if protocol(ctx) == 3 {
		return []byte(fmt.Sprintf(",%s\r\n", formatScore(score))), nil
	}
	return encode(resp.StringValue(formatScore(score)))
}

// encodeMembers writes the members, interleaved with their scores when withScores is set.
// RESP3 connections receive [member, score] pairs with the score as a double.
func encodeMembers(ctx context.Context, members []sorted_set.MemberParam, withScores bool) ([]byte, error) {
	if withScores && protocol(ctx) == 3 {
		var b strings.Builder
		b.WriteString(fmt.Sprintf("*%d\r\n", len(members)))
		for _, m := range members {
			b.WriteString(fmt.Sprintf("*2\r\n$%d\r\n%s\r\n,%s\r\n", len(m.Value), m.Value, formatScore(m.Score)))
		}
		return []byte(b.String()), nil
	}

	arr := make([]resp.Value, 0, len(members))
	for _, m := range members {
		arr = append(arr, resp.StringValue(string(m.Value)))
		if withScores {
			arr = append(arr, resp.StringValue(formatScore(m.Score)))
		}
	}
	return encode(resp.ArrayValue(arr))
}

func parseInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, sorted_set.ErrNotInteger
	}
	return n, nil
}

type rangeOptions struct {
	byScore    bool
	byLex      bool
	rev        bool
	withScores bool
	hasLimit   bool
	limit      sorted_set.Limit
}

// parseRangeOptions reads the trailing ZRANGE tokens on top of the flags preset by the command name.
func parseRangeOptions(tokens []string, opts rangeOptions) (rangeOptions, error) {
	for i := 0; i < len(tokens); i++ {
		switch strings.ToUpper(tokens[i]) {
		case "BYSCORE":
			opts.byScore = true
		case "BYLEX":
			opts.byLex = true
		case "REV":
			opts.rev = true
		case "WITHSCORES":
			opts.withScores = true
		case "LIMIT":
			if i+2 >= len(tokens) {
				return rangeOptions{}, sorted_set.ErrSyntax
			}
			limit, err := sorted_set.ParseLimit(tokens[i+1], tokens[i+2])
			if err != nil {
				return rangeOptions{}, err
			}
			opts.limit, opts.hasLimit = limit, true
			i += 2
		default:
			return rangeOptions{}, sorted_set.ErrSyntax
		}
	}

	if opts.byScore && opts.byLex {
		return rangeOptions{}, sorted_set.ErrSyntax
	}
	if opts.hasLimit && !opts.byScore && !opts.byLex {
		return rangeOptions{}, ErrLimitRankMode
	}
	return opts, nil
}

// expireInstant turns the time argument of ZEXPIRE, ZPEXPIRE, ZEXPIREAT or ZPEXPIREAT into an absolute
// instant. Arguments whose millisecond value does not fit in an int64 are rejected.
func expireInstant(command string, n int64, now time.Time) (time.Time, error) {
	ms := n
	if command == "zexpire" || command == "zexpireat" {
		if n > math.MaxInt64/1000 || n < math.MinInt64/1000 {
			return time.Time{}, ErrInvalidExpireTime
		}
		ms = n * 1000
	}

	if command == "zexpire" || command == "zpexpire" {
		base := now.UnixMilli()
		if (ms > 0 && base > math.MaxInt64-ms) || (ms < 0 && base < math.MinInt64-ms) {
			return time.Time{}, ErrInvalidExpireTime
		}
		ms += base
	}

	return time.UnixMilli(ms), nil
}

// parseMembersClause reads "MEMBERS numMembers member ..." and returns the members.
func parseMembersClause(tokens []string) ([]sorted_set.Value, error) {
	if len(tokens) < 3 || !strings.EqualFold(tokens[0], "MEMBERS") {
		return nil, sorted_set.ErrSyntax
	}
	numMembers, err := parseInt(tokens[1])
	if err != nil {
		return nil, err
	}
	if numMembers <= 0 {
		return nil, ErrOutOfRange
	}
	if numMembers != len(tokens[2:]) {
		return nil, ErrNumMembers
	}
	members := make([]sorted_set.Value, numMembers)
	for i, m := range tokens[2:] {
		members[i] = sorted_set.Value(m)
	}
	return members, nil
}
