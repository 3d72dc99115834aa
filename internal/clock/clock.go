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

package clock

import (
	"os"
	"strings"
	"sync"
	"time"
)

// Clock is the only source of "now" for member expiration.
type Clock interface {
	Now() time.Time
}

func NewClock() Clock {
	// If we're in a test environment, return the mock clock.
	if strings.Contains(os.Args[0], ".test") {
		return MockClock{}
	}
	return RealClock{}
}

type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}

// MockClock always reports the same instant.
type MockClock struct{}

func (MockClock) Now() time.Time {
	t, _ := time.Parse(time.RFC3339, "2006-01-02T15:04:05+07:00")
	return t
}

// ManualClock only moves when told to. Tests use it to step over expiration instants.
type ManualClock struct {
	mut sync.Mutex
	now time.Time
}

func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() time.Time {
	c.mut.Lock()
	defer c.mut.Unlock()
	return c.now
}

func (c *ManualClock) Advance(d time.Duration) {
	c.mut.Lock()
	defer c.mut.Unlock()
	c.now = c.now.Add(d)
}

func (c *ManualClock) Set(t time.Time) {
	c.mut.Lock()
	defer c.mut.Unlock()
	c.now = t
}
