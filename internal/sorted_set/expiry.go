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
	"strings"
	"time"
)

// ExpireOption is the condition under which a member expiration is written.
type ExpireOption int

const (
	ExpireAlways ExpireOption = iota
	ExpireNX                  // Only when the member has no expiration.
	ExpireXX                  // Only when the member has an expiration.
	ExpireGT                  // Only when the new instant is later. No expiration counts as infinite.
	ExpireLT                  // Only when the new instant is earlier. No expiration counts as infinite.
)

// ParseExpireOption returns false when token is not one of NX, XX, GT or LT.
func ParseExpireOption(token string) (ExpireOption, bool) {
	switch strings.ToUpper(token) {
	case "NX":
		return ExpireNX, true
	case "XX":
		return ExpireXX, true
	case "GT":
		return ExpireGT, true
	case "LT":
		return ExpireLT, true
	}
	return ExpireAlways, false
}

// Status codes returned by the expiration operations.
const (
	ExpireNoMember = -2
	ExpireNoExpiry = -1
	ExpireNotSet   = 0
	ExpireSet      = 1
	ExpireDeleted  = 2
	ExpiryFound    = 1
	PersistCleared = 1
)

func (set *SortedSet) isExpired(member Value) bool {
	return set.expiredAt(member, set.clock.Now())
}

func (set *SortedSet) expiredAt(member Value, now time.Time) bool {
	at, ok := set.expiry[member]
	return ok && !now.Before(at)
}

// Sweep physically removes every member whose expiration is due and returns how many were removed.
func (set *SortedSet) Sweep() int {
	if len(set.expiry) == 0 {
		return 0
	}
	now := set.clock.Now()
	var due []Value
	for member, at := range set.expiry {
		if !now.Before(at) {
			due = append(due, member)
		}
	}
	for _, member := range due {
		set.drop(member)
	}
	return len(due)
}

// SetExpiry sets the expiration instant of member and returns one of
// ExpireNoMember, ExpireNotSet, ExpireSet or ExpireDeleted.
func (set *SortedSet) SetExpiry(member Value, at time.Time, option ExpireOption) int {
	set.Sweep()

	if _, ok := set.members[member]; !ok {
		return ExpireNoMember
	}

	current, volatile := set.expiry[member]
	switch option {
	case ExpireNX:
		if volatile {
			return ExpireNotSet
		}
	case ExpireXX:
		if !volatile {
			return ExpireNotSet
		}
	case ExpireGT:
		if !volatile || !at.After(current) {
			return ExpireNotSet
		}
	case ExpireLT:
		if volatile && !at.Before(current) {
			return ExpireNotSet
		}
	}

	if !set.clock.Now().Before(at) {
		set.drop(member)
		return ExpireDeleted
	}

	if set.expiry == nil {
		set.expiry = make(map[Value]time.Time)
	}
	set.expiry[member] = at
	return ExpireSet
}

// Expiry returns the expiration instant of member with ExpiryFound when one is set,
// ExpireNoExpiry when the member never expires, or ExpireNoMember.
func (set *SortedSet) Expiry(member Value) (time.Time, int) {
	set.Sweep()

	if _, ok := set.members[member]; !ok {
		return time.Time{}, ExpireNoMember
	}
	at, ok := set.expiry[member]
	if !ok {
		return time.Time{}, ExpireNoExpiry
	}
	return at, ExpiryFound
}

// Persist clears the expiration of member.
func (set *SortedSet) Persist(member Value) int {
	set.Sweep()

	if _, ok := set.members[member]; !ok {
		return ExpireNoMember
	}
	if _, ok := set.expiry[member]; !ok {
		return ExpireNoExpiry
	}
	delete(set.expiry, member)
	return PersistCleared
}
