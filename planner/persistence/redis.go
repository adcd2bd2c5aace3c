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
	"errors"
	"time"

	"github.com/honeycombio/beeline-go"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps documents in Redis. Documents expire after ttl without
// writes, which stands in for a browser clearing its local storage.
type RedisStore struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewRedisStore(r *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{redis: r, ttl: ttl}
}

func (s *RedisStore) Load(ctx context.Context, key string) ([]byte, error) {
	ctx, span := beeline.StartSpan(ctx, "persistence.load")
	defer span.Send()
	span.AddField("key", key)
	data, err := s.redis.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		span.AddField("error", err)
		return nil, err
	}
	return data, nil
}

func (s *RedisStore) Save(ctx context.Context, key string, data []byte) error {
	ctx, span := beeline.StartSpan(ctx, "persistence.save")
	defer span.Send()
	span.AddField("key", key)
	span.AddField("bytes", len(data))
	if err := s.redis.Set(ctx, key, data, s.ttl).Err(); err != nil {
		span.AddField("error", err)
		return err
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context, key string) error {
	ctx, span := beeline.StartSpan(ctx, "persistence.clear")
	defer span.Send()
	span.AddField("key", key)
	if err := s.redis.Del(ctx, key).Err(); err != nil {
		span.AddField("error", err)
		return err
	}
	return nil
}
