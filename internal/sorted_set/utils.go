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
	"errors"
	"math"
	"strconv"
	"strings"
)

var (
	ErrXXAndNX         = errors.New("XX and NX options at the same time are not compatible")
	ErrGTLTAndNX       = errors.New("GT, LT, and/or NX options at the same time are not compatible")
	ErrIncrSinglePair  = errors.New("INCR option supports a single increment-element pair")
	ErrSyntax          = errors.New("syntax error")
	ErrNotValidFloat   = errors.New("value is not a valid float")
	ErrMinMaxNotFloat  = errors.New("min or max is not a float")
	ErrMinMaxNotString = errors.New("min or max not valid string range item")
	ErrNotInteger      = errors.New("value is not an integer or out of range")
	ErrNaN             = errors.New("resulting score is not a number (NaN)")
	ErrCountOutOfRange = errors.New("value is out of range")
)

// AddOptions are the ZADD flags.
type AddOptions struct {
	NX   bool // Only add new members.
	XX   bool // Only update existing members.
	GT   bool // Only update when the new score is greater.
	LT   bool // Only update when the new score is lower.
	CH   bool // Count changed members as well as added ones.
	INCR bool // Treat the score as an increment.
}

// Validate checks the flag combination against the number of score/member pairs that follow it.
// The first conflict found is returned.
func (opts AddOptions) Validate(pairs int) error {
	if opts.NX && opts.XX {
		return ErrXXAndNX
	}
	if (opts.GT && opts.LT) || (opts.NX && (opts.GT || opts.LT)) {
		return ErrGTLTAndNX
	}
	if opts.INCR && pairs > 1 {
		return ErrIncrSinglePair
	}
	return nil
}

// ParseAddOption sets the flag named by token. It returns false when token is not a ZADD flag.
func (opts *AddOptions) ParseAddOption(token string) bool {
	switch strings.ToUpper(token) {
	case "NX":
		opts.NX = true
	case "XX":
		opts.XX = true
	case "GT":
		opts.GT = true
	case "LT":
		opts.LT = true
	case "CH":
		opts.CH = true
	case "INCR":
		opts.INCR = true
	default:
		return false
	}
	return true
}

func parseFloat(s string) (Score, bool) {
	switch strings.ToLower(s) {
	case "inf", "+inf":
		return Score(math.Inf(1)), true
	case "-inf":
		return Score(math.Inf(-1)), true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	return Score(f), true
}

// ParseScore reads a score or increment token.
func ParseScore(s string) (Score, error) {
	score, ok := parseFloat(s)
	if !ok {
		return 0, ErrNotValidFloat
	}
	return score, nil
}
