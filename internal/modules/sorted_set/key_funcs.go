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

	"github.com/echovault/zsetdb/internal"
	"github.com/echovault/zsetdb/internal/constants"
)

func readKey(cmd []string) internal.KeyExtractionFuncResult {
	return internal.KeyExtractionFuncResult{
		ReadKeys:  cmd[1:2],
		WriteKeys: make([]string, 0),
	}
}

func writeKey(cmd []string) internal.KeyExtractionFuncResult {
	return internal.KeyExtractionFuncResult{
		ReadKeys:  make([]string, 0),
		WriteKeys: cmd[1:2],
	}
}

func zaddKeyFunc(cmd []string) (internal.KeyExtractionFuncResult, error) {
	if len(cmd) < 4 {
		return internal.KeyExtractionFuncResult{}, errors.New(constants.WrongArgsResponse)
	}
	return writeKey(cmd), nil
}

func zcardKeyFunc(cmd []string) (internal.KeyExtractionFuncResult, error) {
	if len(cmd) != 2 {
		return internal.KeyExtractionFuncResult{}, errors.New(constants.WrongArgsResponse)
	}
	return readKey(cmd), nil
}

// zcountKeyFunc serves ZCOUNT and ZLEXCOUNT.
func zcountKeyFunc(cmd []string) (internal.KeyExtractionFuncResult, error) {
	if len(cmd) != 4 {
		return internal.KeyExtractionFuncResult{}, errors.New(constants.WrongArgsResponse)
	}
	return readKey(cmd), nil
}

func zincrbyKeyFunc(cmd []string) (internal.KeyExtractionFuncResult, error) {
	if len(cmd) != 4 {
		return internal.KeyExtractionFuncResult{}, errors.New(constants.WrongArgsResponse)
	}
	return writeKey(cmd), nil
}

func zscoreKeyFunc(cmd []string) (internal.KeyExtractionFuncResult, error) {
	if len(cmd) != 3 {
		return internal.KeyExtractionFuncResult{}, errors.New(constants.WrongArgsResponse)
	}
	return readKey(cmd), nil
}

func zmscoreKeyFunc(cmd []string) (internal.KeyExtractionFuncResult, error) {
	if len(cmd) < 3 {
		return internal.KeyExtractionFuncResult{}, errors.New(constants.WrongArgsResponse)
	}
	return readKey(cmd), nil
}

func zremKeyFunc(cmd []string) (internal.KeyExtractionFuncResult, error) {
	if len(cmd) < 3 {
		return internal.KeyExtractionFuncResult{}, errors.New(constants.WrongArgsResponse)
	}
	return writeKey(cmd), nil
}

// zrangeKeyFunc serves ZRANGE and the legacy range commands.
func zrangeKeyFunc(cmd []string) (internal.KeyExtractionFuncResult, error) {
	if len(cmd) < 4 || len(cmd) > 10 {
		return internal.KeyExtractionFuncResult{}, errors.New(constants.WrongArgsResponse)
	}
	return readKey(cmd), nil
}

// zremrangeKeyFunc serves ZREMRANGEBYRANK, ZREMRANGEBYSCORE and ZREMRANGEBYLEX.
func zremrangeKeyFunc(cmd []string) (internal.KeyExtractionFuncResult, error) {
	if len(cmd) != 4 {
		return internal.KeyExtractionFuncResult{}, errors.New(constants.WrongArgsResponse)
	}
	return writeKey(cmd), nil
}

func zrandmemberKeyFunc(cmd []string) (internal.KeyExtractionFuncResult, error) {
	if len(cmd) < 2 || len(cmd) > 4 {
		return internal.KeyExtractionFuncResult{}, errors.New(constants.WrongArgsResponse)
	}
	return readKey(cmd), nil
}

// zrankKeyFunc serves ZRANK and ZREVRANK.
func zrankKeyFunc(cmd []string) (internal.KeyExtractionFuncResult, error) {
	if len(cmd) < 3 || len(cmd) > 4 {
		return internal.KeyExtractionFuncResult{}, errors.New(constants.WrongArgsResponse)
	}
	return readKey(cmd), nil
}

// zpopKeyFunc serves ZPOPMIN and ZPOPMAX.
func zpopKeyFunc(cmd []string) (internal.KeyExtractionFuncResult, error) {
	if len(cmd) < 2 || len(cmd) > 3 {
		return internal.KeyExtractionFuncResult{}, errors.New(constants.WrongArgsResponse)
	}
	return writeKey(cmd), nil
}

func zscanKeyFunc(cmd []string) (internal.KeyExtractionFuncResult, error) {
	if len(cmd) < 3 {
		return internal.KeyExtractionFuncResult{}, errors.New(constants.WrongArgsResponse)
	}
	return readKey(cmd), nil
}

// zexpireKeyFunc serves the four commands that set member expirations.
// The smallest form is ZEXPIRE key seconds MEMBERS 1 member.
func zexpireKeyFunc(cmd []string) (internal.KeyExtractionFuncResult, error) {
	if len(cmd) < 6 {
		return internal.KeyExtractionFuncResult{}, errors.New(constants.WrongArgsResponse)
	}
	return writeKey(cmd), nil
}

// zttlKeyFunc serves the commands that read member expirations.
// They sweep due members first, so the key is written.
func zttlKeyFunc(cmd []string) (internal.KeyExtractionFuncResult, error) {
	if len(cmd) < 5 {
		return internal.KeyExtractionFuncResult{}, errors.New(constants.WrongArgsResponse)
	}
	return writeKey(cmd), nil
}

func zpersistKeyFunc(cmd []string) (internal.KeyExtractionFuncResult, error) {
	if len(cmd) < 5 {
		return internal.KeyExtractionFuncResult{}, errors.New(constants.WrongArgsResponse)
	}
	return writeKey(cmd), nil
}

func zcollectKeyFunc(cmd []string) (internal.KeyExtractionFuncResult, error) {
	if len(cmd) != 2 {
		return internal.KeyExtractionFuncResult{}, errors.New(constants.WrongArgsResponse)
	}
	return writeKey(cmd), nil
}
