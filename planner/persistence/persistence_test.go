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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadJSONMissingKey(t *testing.T) {
	s := NewMemoryStore()
	var v []string
	found, err := LoadJSON(context.Background(), s, "nothing", &v)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, v)
}

func TestSaveThenLoadJSON(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, SaveJSON(ctx, s, "k", []string{"a", "b"}))

	var v []string
	found, err := LoadJSON(ctx, s, "k", &v)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"a", "b"}, v)
}

func TestLoadJSONCorruptDocument(t *testing.T) {
	s := NewMemoryStore()
	s.Put("k", []byte("{not json"))
	var v []string
	_, err := LoadJSON(context.Background(), s, "k", &v)
	assert.Error(t, err)
}

func TestNamespacedKeys(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	a := Namespaced(s, "session:a:")
	b := Namespaced(s, "session:b:")

	require.NoError(t, a.Save(ctx, "pins", []byte("[1]")))
	require.NoError(t, b.Save(ctx, "pins", []byte("[2]")))
	assert.Equal(t, []byte("[1]"), s.Raw("session:a:pins"))
	assert.Equal(t, []byte("[2]"), s.Raw("session:b:pins"))

	require.NoError(t, a.Clear(ctx, "pins"))
	assert.False(t, s.Has("session:a:pins"))
	assert.True(t, s.Has("session:b:pins"))
	assert.Equal(t, []string{"session:a:pins", "session:b:pins", "-session:a:pins"}, s.Writes())
}
