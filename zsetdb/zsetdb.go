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
	"fmt"
	"io"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/echovault/zsetdb/internal"
	"github.com/echovault/zsetdb/internal/clock"
	"github.com/echovault/zsetdb/internal/config"
	"github.com/echovault/zsetdb/internal/constants"
	"github.com/echovault/zsetdb/internal/modules/sorted_set"
)

type ZSetDB struct {
	// clock is an implementation of a time interface that allows mocking of time functions during testing.
	clock clock.Clock

	// config holds the store configuration variables.
	config config.Config

	// Information about the embedded connection. Commands issued through Do use this protocol and database.
	connInfo struct {
		mut      sync.RWMutex
		protocol int
		database int
	}

	// commandLock serialises handlers. Write commands hold it exclusively.
	commandLock sync.RWMutex

	// storeLock guards the store maps and the memory tracker.
	storeLock sync.RWMutex

	// Data store to hold the keys and their associated data.
	// The int key on the outer map represents the database index.
	store map[int]map[string]internal.KeyData

	// keyMem holds the last measured footprint of every key, memUsed is their sum.
	keyMem  map[int]map[string]int64
	memUsed int64

	// Holds the list of all commands supported by the store.
	commandsRWMut sync.RWMutex
	commands      []internal.Command

	context context.Context
}

// WithContext is an option for the NewZSetDB function that allows you to
// configure a custom context object to be used in ZSetDB.
// If you don't provide this option, ZSetDB will create its own internal context object.
func WithContext(ctx context.Context) func(db *ZSetDB) {
	return func(db *ZSetDB) {
		db.context = ctx
	}
}

// WithConfig is an option for the NewZSetDB function that allows you to pass a
// custom configuration to ZSetDB.
// If not specified, ZSetDB will use the default configuration from config.DefaultConfig().
func WithConfig(config config.Config) func(db *ZSetDB) {
	return func(db *ZSetDB) {
		db.config = config
	}
}

// WithClock replaces the clock used for member expiration.
func WithClock(clock clock.Clock) func(db *ZSetDB) {
	return func(db *ZSetDB) {
		db.clock = clock
	}
}

// NewZSetDB creates a new ZSetDB instance.
// This functions accepts the WithContext, WithConfig and WithClock options.
func NewZSetDB(options ...func(db *ZSetDB)) (*ZSetDB, error) {
	db := &ZSetDB{
		clock:   clock.NewClock(),
		context: context.Background(),
		config:  config.DefaultConfig(),
		store:   make(map[int]map[string]internal.KeyData),
		keyMem:  make(map[int]map[string]int64),
		commands: func() []internal.Command {
			var commands []internal.Command
			commands = append(commands, sorted_set.Commands()...)
			return commands
		}(),
	}

	for _, option := range options {
		option(db)
	}

	if err := db.config.Validate(); err != nil {
		return nil, err
	}

	db.connInfo.protocol = db.config.Protocol
	db.context = context.WithValue(db.context, constants.ContextServerID, db.config.ServerID)

	db.createDatabase(0)

	log.Printf("zsetdb %s ready with %d commands (server id %q)\n", constants.Version, len(db.commands), db.ServerID())

	return db, nil
}

// ServerID returns the identifier this instance was configured with.
func (server *ZSetDB) ServerID() string {
	id, _ := server.context.Value(constants.ContextServerID).(string)
	return id
}

// ShutDown releases the keyspace. The instance must not be used afterwards.
func (server *ZSetDB) ShutDown() {
	server.storeLock.Lock()
	defer server.storeLock.Unlock()
	clear(server.store)
	clear(server.keyMem)
	server.memUsed = 0
	log.Println("zsetdb shut down")
}

// SelectDB switches the logical database used by subsequent calls.
func (server *ZSetDB) SelectDB(database int) error {
	if database < 0 {
		return fmt.Errorf("database index %d is out of range", database)
	}

	server.storeLock.Lock()
	if server.store[database] == nil {
		server.createDatabase(database)
	}
	server.storeLock.Unlock()

	server.connInfo.mut.Lock()
	defer server.connInfo.mut.Unlock()
	server.connInfo.database = database

	return nil
}

// handleCommand decodes the RESP message, runs the matching handler and returns its RESP reply.
// protocol overrides the connection protocol when it is greater than zero.
func (server *ZSetDB) handleCommand(ctx context.Context, message []byte, protocol int) ([]byte, error) {
	server.connInfo.mut.RLock()
	if protocol <= 0 {
		protocol = server.connInfo.protocol
	}
	ctx = context.WithValue(ctx, constants.ContextProtocol, protocol)
	ctx = context.WithValue(ctx, constants.ContextDatabase, server.connInfo.database)
	server.connInfo.mut.RUnlock()

	cmd, err := internal.Decode(message)
	if err != nil {
		return nil, err
	}

	if len(cmd) == 0 {
		return nil, errors.New("empty command")
	}

	// If quit command is passed, EOF error.
	if strings.EqualFold(cmd[0], "quit") {
		return nil, io.EOF
	}

	command, err := server.getCommand(cmd[0])
	if err != nil {
		return nil, err
	}

	write := internal.IsWriteCommand(command)
	if write {
		server.commandLock.Lock()
		defer server.commandLock.Unlock()
	} else {
		server.commandLock.RLock()
		defer server.commandLock.RUnlock()
	}

	res, err := command.HandlerFunc(server.getHandlerFuncParams(ctx, cmd))
	if err != nil {
		return nil, err
	}

	if write {
		keys, err := command.KeyExtractionFunc(cmd)
		if err == nil {
			server.refreshMemory(ctx, keys.WriteKeys)
		}
	}

	return res, nil
}

func (server *ZSetDB) getCommand(cmd string) (internal.Command, error) {
	server.commandsRWMut.RLock()
	defer server.commandsRWMut.RUnlock()
	for _, command := range server.commands {
		if strings.EqualFold(command.Command, cmd) {
			return command, nil
		}
	}
	return internal.Command{}, fmt.Errorf("command %s not supported", cmd)
}

func (server *ZSetDB) getHandlerFuncParams(ctx context.Context, cmd []string) internal.HandlerFuncParams {
	return internal.HandlerFuncParams{
		Context:   ctx,
		Command:   cmd,
		KeysExist: server.keysExist,
		GetValues: server.getValues,
		SetValues: server.setValues,
		DeleteKey: func(ctx context.Context, key string) error {
			server.storeLock.Lock()
			defer server.storeLock.Unlock()
			return server.deleteKey(ctx, key)
		},
		GetClock: server.getClock,
		GetRandomSeed: func() int64 {
			if server.config.RandomSeed != 0 {
				return server.config.RandomSeed
			}
			return time.Now().UnixNano()
		},
		GetScanCount: func() int {
			return server.config.ScanCount
		},
	}
}

func (server *ZSetDB) getClock() clock.Clock {
	return server.clock
}
