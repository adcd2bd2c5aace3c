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

package quota

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/honeycombio/beeline-go"
	"github.com/redis/go-redis/v9"
)

// one credit is worth $0.000000025.
const TextSearchCredits = 1_280_000
const PlaceDetailsCredits = 1_000_000
const PlacePhotoCredits = 280_000
const StaticMapCredits = 80_000
const ExchangeRateCredits = 0

var ErrQuotaExhausted = errors.New("monthly maps quota exhausted")

// Tracker counts the Google Maps credits spent in the current month. A nil
// Tracker allows and charges nothing.
type Tracker struct {
	redis   *redis.Client
	scope   string
	monthly int
	now     func() time.Time
}

func NewTracker(redisClient *redis.Client, scope string, monthly int) *Tracker {
	return &Tracker{
		redis:   redisClient,
		scope:   scope,
		monthly: monthly,
		now:     time.Now,
	}
}

func (q *Tracker) key() string {
	now := q.now()
	return keyFor(q.scope, now)
}

func keyFor(scope string, now time.Time) string {
	return fmt.Sprintf("quota:%02d%02d:%s", now.Year()%100, now.Month(), scope)
}

func (q *Tracker) GetQuota(ctx context.Context) (used, remaining int, err error) {
	if q == nil {
		return 0, 0, nil
	}
	ctx, span := beeline.StartSpan(ctx, "get_quota")
	defer span.Send()
	result := q.redis.Get(ctx, q.key())
	if result.Err() == redis.Nil {
		return 0, q.monthly, nil
	}
	if result.Err() != nil {
		span.AddField("error", result.Err())
		return 0, 0, result.Err()
	}
	used, err = result.Int()
	if err != nil {
		return 0, 0, err
	}
	return used, q.monthly - used, nil
}

// Allow fails with ErrQuotaExhausted once the month's credits are spent. If
// the counter cannot be read the call is allowed.
func (q *Tracker) Allow(ctx context.Context) error {
	if q == nil {
		return nil
	}
	_, remaining, err := q.GetQuota(ctx)
	if err != nil {
		log.Printf("Failed to read maps quota, allowing request: %v", err)
		return nil
	}
	if remaining <= 0 {
		return ErrQuotaExhausted
	}
	return nil
}

func (q *Tracker) chargeCredits(ctx context.Context, credits int) (int, error) {
	ctx, span := beeline.StartSpan(ctx, "charge_credits")
	defer span.Send()
	key := q.key()
	result := q.redis.IncrBy(ctx, key, int64(credits))
	if result.Err() != nil {
		span.AddField("error", result.Err())
		return 0, result.Err()
	}
	i, err := result.Uint64()
	if err != nil {
		span.AddField("error", err)
		return 0, err
	}
	if int(i) == credits {
		_, err = q.redis.Expire(ctx, key, 45*24*time.Hour).Result()
		if err != nil {
			span.AddField("error", err)
			return 0, err
		}
	}
	return int(i), nil
}

func (q *Tracker) ChargeCredits(ctx context.Context, credits int) error {
	if q == nil || credits == 0 {
		return nil
	}
	used, err := q.chargeCredits(ctx, credits)
	if err != nil {
		log.Printf("Failed to charge %d credits to %s: %v", credits, q.scope, err)
		return err
	}
	log.Printf("Charging %d credits to %s. Total used: %d", credits, q.scope, used)
	return nil
}
