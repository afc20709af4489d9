// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cache

import (
	"strings"
	"sync"
	"time"
)

// 📦 Entry is a single cached value with its expiry bookkeeping.
// An entry is valid while now-Timestamp < TTL; entries past that point are
// logically absent even before they are physically removed.
type Entry[T any] struct {
	Data      T
	Timestamp time.Time
	TTL       time.Duration
}

// 🗄️ Store is a mutex-guarded in-memory TTL map. Expired entries are
// removed lazily on read or by explicit invalidation; there is no
// background sweeper.
type Store[T any] struct {
	mu      sync.Mutex
	entries map[string]Entry[T]
	now     func() time.Time
}

// 🏭 NewStore creates an empty store.
func NewStore[T any]() *Store[T] {
	return &Store[T]{
		entries: map[string]Entry[T]{},
		now:     time.Now,
	}
}

// 🕰️ SetClock overrides the store's notion of "now". Test hook only.
func (s *Store[T]) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// 🔍 Get returns the value for key if it is present and unexpired.
// An expired entry is deleted as a side effect and reported as a miss.
func (s *Store[T]) Get(key string) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok {
		var zero T
		return zero, false
	}

	if s.now().Sub(entry.Timestamp) >= entry.TTL {
		delete(s.entries, key)
		var zero T
		return zero, false
	}

	return entry.Data, true
}

// 📝 Set stores a value under key, overwriting any existing entry and
// stamping the current time.
func (s *Store[T]) Set(key string, data T, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = Entry[T]{
		Data:      data,
		Timestamp: s.now(),
		TTL:       ttl,
	}
}

// 🗑️ Delete removes a single entry. Missing keys are a no-op.
func (s *Store[T]) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
}

// 🗑️ DeletePrefix removes every entry whose key starts with prefix and
// returns how many were removed. Callers are responsible for choosing
// prefixes that end on a key-segment boundary.
func (s *Store[T]) DeletePrefix(prefix string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key := range s.entries {
		if strings.HasPrefix(key, prefix) {
			delete(s.entries, key)
			removed++
		}
	}
	return removed
}

// 🧹 Clear removes every entry.
func (s *Store[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = map[string]Entry[T]{}
}

// 📊 Len reports the number of physically present entries, expired or not.
// Observability only: callers must not use this for correctness decisions.
func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
