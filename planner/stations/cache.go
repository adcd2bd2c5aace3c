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

package stations

import (
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/tabi-planner/japan-planner/planner/poi"
)

const positionSuffix = "-position"

// PositionCache remembers where the stations a session clicked on are. It
// lives only as long as the session and is never persisted.
type PositionCache struct {
	c *cache.Cache
}

func NewPositionCache(ttl time.Duration) *PositionCache {
	return &PositionCache{c: cache.New(ttl, ttl/2+time.Minute)}
}

func positionKey(pinID string) string {
	return pinID + positionSuffix
}

func (pc *PositionCache) Remember(pinID string, pos poi.Position) {
	pc.c.Set(positionKey(pinID), pos, cache.DefaultExpiration)
}

func (pc *PositionCache) Lookup(pinID string) (poi.Position, bool) {
	v, ok := pc.c.Get(positionKey(pinID))
	if !ok {
		return poi.Position{}, false
	}
	pos, ok := v.(poi.Position)
	return pos, ok
}

// Resolve returns the best known position for a station pin: the remembered
// one, then the static line data, then Tokyo Station.
func (pc *PositionCache) Resolve(id ID) poi.Position {
	if pos, ok := pc.Lookup(id.PinID()); ok {
		return pos
	}
	if pos, ok := Lookup(id); ok {
		return pos
	}
	return TokyoStation
}

// PurgeStations drops every remembered station position.
func (pc *PositionCache) PurgeStations() {
	for k := range pc.c.Items() {
		if strings.HasPrefix(k, PinPrefix) && strings.HasSuffix(k, positionSuffix) {
			pc.c.Delete(k)
		}
	}
}

func (pc *PositionCache) Len() int {
	return pc.c.ItemCount()
}
