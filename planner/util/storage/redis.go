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

package storage

import (
	"log"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/tabi-planner/japan-planner/planner/config"
)

var redisClient *redis.Client
var redisOnce sync.Once

// GetRedis returns the process-wide Redis client, configured from REDIS_URL.
// With no URL configured it falls back to a local instance.
func GetRedis() *redis.Client {
	redisOnce.Do(func() {
		url := config.GetConfig().RedisURL
		if url == "" {
			log.Printf("REDIS_URL not set, using localhost:6379")
			redisClient = redis.NewClient(&redis.Options{Addr: "localhost:6379"})
			return
		}
		opts, err := redis.ParseURL(url)
		if err != nil {
			panic(err)
		}
		redisClient = redis.NewClient(opts)
	})
	return redisClient
}
