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

package planner

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/tabi-planner/japan-planner/planner/itinerary"
	"github.com/tabi-planner/japan-planner/planner/notify"
	"github.com/tabi-planner/japan-planner/planner/persistence"
	"github.com/tabi-planner/japan-planner/planner/pins"
	"github.com/tabi-planner/japan-planner/planner/places"
	"github.com/tabi-planner/japan-planner/planner/stations"
)

var ErrNoSession = errors.New("session id is required")

var sessionIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{8,64}$`)

// Session is everything one browser works with: its pins and trips, which are
// persisted, and its search results, station positions and notifications,
// which are not.
type Session struct {
	ID        string
	Pins      *pins.Store
	Planner   *itinerary.Planner
	Search    *places.Gateway
	Positions *stations.PositionCache
	Notices   *notify.Queue
}

// Sessions keeps the live sessions in memory and drops the ones that have been
// idle for a while. A dropped session is rebuilt from storage on its next
// request; only its search results and station positions are lost.
type Sessions struct {
	mu       sync.Mutex
	live     *cache.Cache
	store    persistence.Store
	backend  places.Backend
	prices   places.PriceSource
	currency string
	// how long a clicked station's position is remembered
	stationTTL time.Duration
}

type SessionOptions struct {
	Store           persistence.Store
	Backend         places.Backend
	Prices          places.PriceSource
	DefaultCurrency string
	IdleTimeout     time.Duration
	StationTTL      time.Duration
}

func NewSessions(opts SessionOptions) *Sessions {
	if opts.IdleTimeout <= 0 {
		opts.IdleTimeout = 2 * time.Hour
	}
	if opts.StationTTL <= 0 {
		opts.StationTTL = 12 * time.Hour
	}
	return &Sessions{
		live:       cache.New(opts.IdleTimeout, opts.IdleTimeout/4),
		store:      opts.Store,
		backend:    opts.Backend,
		prices:     opts.Prices,
		currency:   opts.DefaultCurrency,
		stationTTL: opts.StationTTL,
	}
}

func sessionPrefix(id string) string {
	return "session:" + id + ":"
}

// Get returns the session with the given id, loading it from storage the
// first time it is seen.
func (s *Sessions) Get(ctx context.Context, id string) (*Session, error) {
	if !sessionIDPattern.MatchString(id) {
		return nil, ErrNoSession
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.live.Get(id); ok {
		sess := v.(*Session)
		s.live.Set(id, sess, cache.DefaultExpiration)
		return sess, nil
	}
	store := persistence.Namespaced(s.store, sessionPrefix(id))
	positions := stations.NewPositionCache(s.stationTTL)
	sess := &Session{
		ID:        id,
		Pins:      pins.NewStore(ctx, store, positions),
		Planner:   itinerary.NewPlanner(ctx, store, s.currency),
		Search:    places.NewGateway(s.backend, s.prices),
		Positions: positions,
		Notices:   notify.NewQueue(0),
	}
	s.live.Set(id, sess, cache.DefaultExpiration)
	return sess, nil
}

func (s *Sessions) Len() int {
	return s.live.ItemCount()
}
