// Copyright 2025 Google LLC
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

package persistence

import (
	"context"
	"sync"
)

// MemoryStore is an in-process Store. Tests use it in place of Redis; setting
// FailWith makes every call return that error.
type MemoryStore struct {
	mu       sync.Mutex
	docs     map[string][]byte
	writes   []string
	FailWith error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string][]byte)}
}

func (m *MemoryStore) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	data, ok := m.docs[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), data...), nil
}

func (m *MemoryStore) Save(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return m.FailWith
	}
	m.docs[key] = append([]byte(nil), data...)
	m.writes = append(m.writes, key)
	return nil
}

func (m *MemoryStore) Clear(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return m.FailWith
	}
	delete(m.docs, key)
	m.writes = append(m.writes, "-"+key)
	return nil
}

// Has reports whether anything is stored under key.
func (m *MemoryStore) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.docs[key]
	return ok
}

// Raw returns the stored bytes for key, or nil.
func (m *MemoryStore) Raw(key string) []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.docs[key]
}

// Put stores a document directly, bypassing FailWith.
func (m *MemoryStore) Put(key string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[key] = data
}

// Writes lists every Save ("key") and Clear ("-key") in the order issued.
func (m *MemoryStore) Writes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.writes...)
}
