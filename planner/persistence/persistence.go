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

// Package persistence is the storage port used by the planner's stores. Each key
// holds one whole JSON document; stores rewrite the full document on every
// mutation and never patch part of one.
package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("document not found")

type Store interface {
	// Load returns the raw document stored under key, or ErrNotFound.
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	// Clear removes the document. Clearing a missing key is not an error.
	Clear(ctx context.Context, key string) error
}

// LoadJSON decodes the document under key into v. It reports false, with no
// error, when nothing is stored.
func LoadJSON(ctx context.Context, s Store, key string, v any) (bool, error) {
	data, err := s.Load(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decoding %q: %w", key, err)
	}
	return true, nil
}

func SaveJSON(ctx context.Context, s Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %q: %w", key, err)
	}
	return s.Save(ctx, key, data)
}

type namespaced struct {
	inner  Store
	prefix string
}

// Namespaced scopes every key of s under prefix, so one backend can hold the
// documents of many sessions.
func Namespaced(s Store, prefix string) Store {
	return &namespaced{inner: s, prefix: prefix}
}

func (n *namespaced) Load(ctx context.Context, key string) ([]byte, error) {
	return n.inner.Load(ctx, n.prefix+key)
}

func (n *namespaced) Save(ctx context.Context, key string, data []byte) error {
	return n.inner.Save(ctx, n.prefix+key, data)
}

func (n *namespaced) Clear(ctx context.Context, key string) error {
	return n.inner.Clear(ctx, n.prefix+key)
}
