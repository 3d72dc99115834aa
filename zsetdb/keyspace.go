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
	"errors"
	"log"
	"unsafe"

	"github.com/echovault/zsetdb/internal"
	"github.com/echovault/zsetdb/internal/constants"
)

// Flush removes every key from the database at the specified index.
// When -1 is passed, all the logical databases are cleared.
func (server *ZSetDB) Flush(database int) {
	server.storeLock.Lock()
	defer server.storeLock.Unlock()

	if database == -1 {
		for db := range server.store {
			clear(server.store[db])
			clear(server.keyMem[db])
		}
		server.memUsed = 0
		return
	}

	for _, mem := range server.keyMem[database] {
		server.memUsed -= mem
	}
	clear(server.store[database])
	clear(server.keyMem[database])
}

// MemUsed returns the tracked footprint of all stored keys in bytes.
func (server *ZSetDB) MemUsed() int64 {
	server.storeLock.RLock()
	defer server.storeLock.RUnlock()
	return server.memUsed
}

func (server *ZSetDB) createDatabase(database int) {
	server.store[database] = make(map[string]internal.KeyData)
	server.keyMem[database] = make(map[string]int64)
}

func (server *ZSetDB) keysExist(ctx context.Context, keys []string) map[string]bool {
	server.storeLock.RLock()
	defer server.storeLock.RUnlock()

	database := ctx.Value(constants.ContextDatabase).(int)

	exists := make(map[string]bool, len(keys))

	for _, key := range keys {
		_, ok := server.store[database][key]
		exists[key] = ok
	}

	return exists
}

func (server *ZSetDB) getValues(ctx context.Context, keys []string) map[string]interface{} {
	server.storeLock.RLock()
	defer server.storeLock.RUnlock()

	database := ctx.Value(constants.ContextDatabase).(int)

	values := make(map[string]interface{}, len(keys))

	for _, key := range keys {
		entry, ok := server.store[database][key]
		if !ok {
			values[key] = nil
			continue
		}
		values[key] = entry.Value
	}

	return values
}

func (server *ZSetDB) setValues(ctx context.Context, entries map[string]interface{}) error {
	server.storeLock.Lock()
	defer server.storeLock.Unlock()

	if internal.IsMaxMemoryExceeded(server.memUsed, server.config.MaxMemory) {
		return errors.New("max memory reached, key value not set")
	}

	database := ctx.Value(constants.ContextDatabase).(int)

	// If database does not exist, create it.
	if server.store[database] == nil {
		server.createDatabase(database)
	}

	for key, value := range entries {
		server.store[database][key] = internal.KeyData{Value: value}
		server.measure(database, key)
	}

	return nil
}

// refreshMemory re-measures keys whose values were mutated in place by a handler.
func (server *ZSetDB) refreshMemory(ctx context.Context, keys []string) {
	server.storeLock.Lock()
	defer server.storeLock.Unlock()

	database := ctx.Value(constants.ContextDatabase).(int)

	for _, key := range keys {
		if _, ok := server.store[database][key]; ok {
			server.measure(database, key)
		}
	}
}

// measure replaces the recorded footprint of key. The caller holds storeLock.
func (server *ZSetDB) measure(database int, key string) {
	data := server.store[database][key]
	mem := data.GetMem() + int64(unsafe.Sizeof(key)) + int64(len(key))
	server.memUsed += mem - server.keyMem[database][key]
	server.keyMem[database][key] = mem
}

// deleteKey removes key from the store. The caller holds storeLock.
func (server *ZSetDB) deleteKey(ctx context.Context, key string) error {
	database := ctx.Value(constants.ContextDatabase).(int)

	if _, ok := server.store[database][key]; !ok {
		return nil
	}

	// Deduct memory usage in tracker.
	server.memUsed -= server.keyMem[database][key]
	delete(server.keyMem[database], key)
	delete(server.store[database], key)

	log.Printf("deleted key %s\n", key)

	return nil
}
