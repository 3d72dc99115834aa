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
	"time"

	"github.com/echovault/zsetdb/internal/clock"
	"github.com/echovault/zsetdb/internal/config"
	"github.com/echovault/zsetdb/internal/constants"
)

var testEpoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

func createZSetDB() (*ZSetDB, *clock.ManualClock) {
	mockClock := clock.NewManualClock(testEpoch)
	conf := config.DefaultConfig()
	conf.RandomSeed = 42
	db, _ := NewZSetDB(
		WithConfig(conf),
		WithClock(mockClock),
	)
	return db, mockClock
}

func createZSetDBWithConfig(conf config.Config) *ZSetDB {
	db, _ := NewZSetDB(
		WithConfig(conf),
		WithClock(clock.NewManualClock(testEpoch)),
	)
	return db
}

func presetValue(server *ZSetDB, ctx context.Context, key string, value interface{}) error {
	ctx = context.WithValue(ctx, constants.ContextDatabase, 0)
	return server.setValues(ctx, map[string]interface{}{key: value})
}

func getValue(server *ZSetDB, ctx context.Context, key string) interface{} {
	ctx = context.WithValue(ctx, constants.ContextDatabase, 0)
	return server.getValues(ctx, []string{key})[key]
}
