// Copyright 2024 Kelvin Clement Mwinuka
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package internal

import (
	"context"
	"time"
	"unsafe"

	"github.com/echovault/zsetdb/internal/clock"
)

// MemCheck is implemented by composite values that can report their own footprint.
type MemCheck interface {
	GetMem() int64
}

type KeyData struct {
	Value    interface{}
	ExpireAt time.Time
}

func (k *KeyData) GetMem() int64 {
	size := int64(unsafe.Sizeof(k.ExpireAt))

	switch v := k.Value.(type) {
	case nil:
	case string:
		size += int64(unsafe.Sizeof(v))
		size += int64(len(v))
	case MemCheck:
		size += v.GetMem()
	default:
		size += int64(unsafe.Sizeof(v))
	}

	return size
}

// KeyExtractionFuncResult is the return type of the KeyExtractionFunc for the command.
type KeyExtractionFuncResult struct {
	ReadKeys  []string // The keys the command reads from. If no keys are read, this should be an empty slice.
	WriteKeys []string // The keys the command writes to. If no keys are written to, this should be an empty slice.
}

// KeyExtractionFunc validates the arity of the command and returns the keys it touches.
// The cmd parameter is a string slice of the command. All the keys are extracted from this command.
type KeyExtractionFunc func(cmd []string) (KeyExtractionFuncResult, error)

// HandlerFuncParams is the object passed to a command handler when a command is triggered.
// These are the only hooks a handler has into the enclosing key-value store.
type HandlerFuncParams struct {
	// Context is the context passed from the store. It carries the database index and the reply protocol.
	Context context.Context
	// Command is the string slice contains the command (e.g []string{"ZADD", "key", "1", "member"})
	Command []string
	// KeysExist returns a map that specifies which keys exist in the keyspace.
	KeysExist func(ctx context.Context, keys []string) map[string]bool
	// GetValues retrieves the values from the specified keys.
	// Non-existent keys will be nil.
	GetValues func(ctx context.Context, keys []string) map[string]interface{}
	// SetValues sets each of the keys with their corresponding values in the provided map.
	SetValues func(ctx context.Context, entries map[string]interface{}) error
	// DeleteKey deletes the specified key. Returns an error if the deletion was unsuccessful.
	DeleteKey func(ctx context.Context, key string) error
	// GetClock gets the clock used by the store.
	// Collections created by a handler must be given this clock so expiration is testable.
	GetClock func() clock.Clock
	// GetRandomSeed returns the seed for random sampling commands.
	GetRandomSeed func() int64
	// GetScanCount returns the default COUNT for cursor scans.
	GetScanCount func() int
}

// HandlerFunc is a functions described by a command where the bulk of the command handling is done.
// This function returns a byte slice which contains a RESP response.
// In embedded mode, the response is parsed and a native Go type is returned to the caller.
type HandlerFunc func(params HandlerFuncParams) ([]byte, error)

type Command struct {
	Command     string   // The command keyword (e.g. "zadd", "zrange").
	Module      string   // The module this command belongs to. All the available modules are in the `constants` package.
	Categories  []string // The categories this command belongs to. All the available categories are in the `constants` package.
	Description string   // The description of the command. Includes the command syntax.
	KeyExtractionFunc
	HandlerFunc
}
