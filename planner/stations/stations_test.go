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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabi-planner/japan-planner/planner/poi"
)

func TestParseID(t *testing.T) {
	id, err := ParseID("station-Tokaido Shinkansen-Shin-Osaka-16")
	require.NoError(t, err)
	assert.Equal(t, ID{Line: "Tokaido Shinkansen", Station: "Shin-Osaka", Index: 16}, id)
	assert.Equal(t, "station-Tokaido Shinkansen-Shin-Osaka-16", id.PinID())

	id, err = ParseID("station-Yamanote Line-Shibuya-10")
	require.NoError(t, err)
	assert.Equal(t, "Shibuya", id.Station)

	for _, bad := range []string{
		"Yamanote Line-Shibuya-10",
		"station-",
		"station-Yamanote Line-Shibuya",
		"station-Yamanote Line-Shibuya-x",
		"station-Yamanote Line-Shibuya-1.5",
		"station--Shibuya-3",
		"station-Line--3",
	} {
		_, err := ParseID(bad)
		assert.ErrorIs(t, err, ErrInvalidStationID, bad)
	}
}

func TestMarkersMatchLookup(t *testing.T) {
	markers := Markers(Intercity)
	require.NotEmpty(t, markers)
	for _, m := range markers {
		id, err := ParseID(PinPrefix + m.ID)
		require.NoError(t, err, m.ID)
		pos, ok := Lookup(id)
		require.True(t, ok, m.ID)
		assert.Equal(t, m.Position, pos)
	}
	assert.Len(t, Lines(Intercity), 5)
	assert.Len(t, Lines(), len(lines))
}

func TestPin(t *testing.T) {
	id := ID{Line: "Tokaido Shinkansen", Station: "Kyoto", Index: 15}
	p := Pin(id, poi.Position{Lat: 34.98, Lng: 135.75})
	assert.Equal(t, "Kyoto Station (Tokaido Shinkansen Line)", p.Name)
	assert.Equal(t, "Train Station on Tokaido Shinkansen Line", p.Address)
	assert.Equal(t, []string{"transit_station", "train_station"}, p.Types)
	assert.Equal(t, id.PinID(), p.ID)
	assert.True(t, p.Valid())
}

func TestPositionCache(t *testing.T) {
	pc := NewPositionCache(time.Hour)
	known := ID{Line: "Yamanote Line", Station: "Shibuya", Index: 10}
	unknown := ID{Line: "Imaginary Line", Station: "Nowhere", Index: 0}

	assert.Equal(t, TokyoStation, pc.Resolve(unknown))
	assert.Equal(t, poi.Position{Lat: 35.6580339, Lng: 139.7016358}, pc.Resolve(known))

	pc.Remember(unknown.PinID(), poi.Position{Lat: 1, Lng: 2})
	assert.Equal(t, poi.Position{Lat: 1, Lng: 2}, pc.Resolve(unknown))

	pc.c.Set("unrelated", 1, 0)
	pc.PurgeStations()
	_, ok := pc.Lookup(unknown.PinID())
	assert.False(t, ok)
	assert.Equal(t, 1, pc.Len())
}
