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

package pins

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabi-planner/japan-planner/planner/directions"
	"github.com/tabi-planner/japan-planner/planner/persistence"
	"github.com/tabi-planner/japan-planner/planner/poi"
	"github.com/tabi-planner/japan-planner/planner/stations"
)

func place(n int) poi.PointOfInterest {
	return poi.PointOfInterest{
		Name:     fmt.Sprintf("Place %d", n),
		PlaceID:  fmt.Sprintf("place-%d", n),
		Position: &poi.Position{Lat: 35 + float64(n)/100, Lng: 139 + float64(n)/100},
		Types:    []string{"tourist_attraction"},
	}
}

func newTestStore(t *testing.T) (*Store, *persistence.MemoryStore) {
	t.Helper()
	mem := persistence.NewMemoryStore()
	return NewStore(context.Background(), mem, stations.NewPositionCache(time.Hour)), mem
}

func addPins(t *testing.T, s *Store, n int) []*MapPin {
	t.Helper()
	var out []*MapPin
	for i := 0; i < n; i++ {
		p, err := s.AddPin(context.Background(), place(i))
		require.NoError(t, err)
		out = append(out, p)
	}
	return out
}

func selectedIDs(s *Store) []string {
	var ids []string
	for _, p := range s.SelectedPins() {
		ids = append(ids, p.ID)
	}
	return ids
}

func countSelected(s *Store) int {
	n := 0
	for _, p := range s.Pins() {
		if p.IsSelected {
			n++
		}
	}
	return n
}

func TestAddPin(t *testing.T) {
	s, mem := newTestStore(t)
	p, err := s.AddPin(context.Background(), place(1))
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.False(t, p.IsSelected)
	assert.True(t, mem.Has(StorageKey))

	_, err = s.AddPin(context.Background(), place(1))
	assert.ErrorIs(t, err, ErrDuplicatePin)
	assert.Equal(t, "This location is already saved", s.Error())
	s.ClearError()
	assert.Empty(t, s.Error())

	noPos := place(2)
	noPos.Position = nil
	_, err = s.AddPin(context.Background(), noPos)
	assert.ErrorIs(t, err, ErrInvalidPin)
	assert.Len(t, s.Pins(), 1)
}

func TestSelectionEvictsOldest(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	p := addPins(t, s, 3)

	for _, pin := range p {
		sel, err := s.TogglePinSelection(ctx, pin.ID)
		require.NoError(t, err)
		assert.True(t, sel)
		assert.LessOrEqual(t, countSelected(s), MaxSelected)
	}
	assert.Equal(t, []string{p[1].ID, p[2].ID}, selectedIDs(s))

	sel, err := s.TogglePinSelection(ctx, p[1].ID)
	require.NoError(t, err)
	assert.False(t, sel)
	assert.Equal(t, []string{p[2].ID}, selectedIDs(s))

	sel, err = s.TogglePinSelection(ctx, "unknown")
	assert.NoError(t, err)
	assert.False(t, sel)
}

func TestRemoveSelectedPinDropsRoute(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	p := addPins(t, s, 2)
	for _, pin := range p {
		_, err := s.TogglePinSelection(ctx, pin.ID)
		require.NoError(t, err)
	}
	_, err := s.PlanRoute(directions.Transit)
	require.NoError(t, err)
	require.NotNil(t, s.Route())

	require.True(t, s.RemovePin(ctx, p[0].ID))
	assert.Nil(t, s.Route())
	assert.Equal(t, []string{p[1].ID}, selectedIDs(s))
	assert.False(t, s.RemovePin(ctx, p[0].ID))
}

func TestPlanRouteNeedsTwoPins(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	p := addPins(t, s, 2)
	_, err := s.PlanRoute(directions.Walking)
	assert.ErrorIs(t, err, ErrNeedTwoPins)

	_, _ = s.TogglePinSelection(ctx, p[1].ID)
	_, _ = s.TogglePinSelection(ctx, p[0].ID)
	r, err := s.PlanRoute(directions.Walking)
	require.NoError(t, err)
	assert.Equal(t, p[1].ID, r.Origin.ID)
	assert.Equal(t, p[0].ID, r.Destination.ID)
	assert.Contains(t, r.URL, "travelmode=walking")

	s.ClearSelection(ctx)
	assert.Nil(t, s.Route())
	assert.Zero(t, countSelected(s))
}

func TestStationPinSynthesis(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	p := addPins(t, s, 2)
	_, _ = s.TogglePinSelection(ctx, p[0].ID)
	_, _ = s.TogglePinSelection(ctx, p[1].ID)

	id := "station-Imaginary Line-Nowhere-3"
	sel, err := s.TogglePinSelection(ctx, id)
	require.NoError(t, err)
	assert.True(t, sel)
	assert.Equal(t, []string{p[1].ID, id}, selectedIDs(s))

	station := s.SelectedPins()[1]
	assert.True(t, station.IsStation)
	assert.Equal(t, "Nowhere Station (Imaginary Line Line)", station.Name)
	assert.Equal(t, stations.TokyoStation, *station.Position)

	remembered := "station-Yamanote Line-Shibuya-10"
	s.RememberStation(remembered, poi.Position{Lat: 35.658, Lng: 139.7016})
	_, err = s.TogglePinSelection(ctx, remembered)
	require.NoError(t, err)
	assert.Equal(t, poi.Position{Lat: 35.658, Lng: 139.7016}, *s.SelectedPins()[1].Position)
	assert.LessOrEqual(t, countSelected(s), MaxSelected)
}

func TestMalformedStationID(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.TogglePinSelection(context.Background(), "station-broken")
	assert.ErrorIs(t, err, stations.ErrInvalidStationID)
	assert.Empty(t, s.Pins())
	assert.NotEmpty(t, s.Error())
}

func TestCleanupTemporaryPinsIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	regular := addPins(t, s, 2)
	_, err := s.TogglePinSelection(ctx, "station-Tokaido Shinkansen-Kyoto-15")
	require.NoError(t, err)
	require.Len(t, s.Pins(), 3)

	assert.Equal(t, 1, s.CleanupTemporaryPins(ctx))
	once := s.Pins()
	assert.Equal(t, 0, s.CleanupTemporaryPins(ctx))
	assert.Equal(t, once, s.Pins())
	require.Len(t, once, 2)
	assert.Equal(t, regular[0].ID, once[0].ID)
	assert.Empty(t, s.SelectedPins())
}

func TestUpdatePin(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	p := addPins(t, s, 3)
	_, _ = s.TogglePinSelection(ctx, p[0].ID)

	notes := "go at dawn"
	got := s.UpdatePin(ctx, p[0].ID, PinUpdate{Notes: &notes})
	require.NotNil(t, got)
	assert.Equal(t, notes, got.Notes)
	assert.True(t, got.IsSelected)
	assert.Equal(t, p[0].Name, got.Name)

	yes := true
	s.UpdatePin(ctx, p[1].ID, PinUpdate{IsSelected: &yes})
	s.UpdatePin(ctx, p[2].ID, PinUpdate{IsSelected: &yes})
	assert.Equal(t, []string{p[1].ID, p[2].ID}, selectedIDs(s))
	assert.Equal(t, MaxSelected, countSelected(s))

	assert.Nil(t, s.UpdatePin(ctx, "missing", PinUpdate{Notes: &notes}))
}

func TestPinsRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, mem := newTestStore(t)
	addPins(t, s, 4)
	_, _ = s.TogglePinSelection(ctx, s.Pins()[2].ID)

	reloaded := NewStore(ctx, mem, nil)
	assert.Equal(t, s.Pins(), reloaded.Pins())
	assert.Equal(t, selectedIDs(s), selectedIDs(reloaded))

	for _, p := range s.Pins() {
		require.True(t, s.RemovePin(ctx, p.ID))
	}
	assert.False(t, mem.Has(StorageKey))
}

func TestLoadFiltersIncompleteEntries(t *testing.T) {
	mem := persistence.NewMemoryStore()
	mem.Put(StorageKey, []byte(`[
		{"id":"a","name":"Senso-ji","position":{"lat":35.7148,"lng":139.7967},"placeId":"p1","types":[]},
		{"id":"b","name":"No position","placeId":"p2"},
		{"id":"c","name":"No lng","position":{"lat":35.1},"placeId":"p3"},
		{"name":"No id","position":{"lat":35.1,"lng":139.1},"placeId":"p4"},
		{"id":"e","name":"Equator","position":{"lat":0,"lng":0},"placeId":"p5","isSelected":true},
		"garbage"
	]`))
	s := NewStore(context.Background(), mem, nil)
	pins := s.Pins()
	require.Len(t, pins, 2)
	assert.Equal(t, "a", pins[0].ID)
	assert.Equal(t, "e", pins[1].ID)
	assert.Equal(t, []string{"e"}, selectedIDs(s))
}

func TestClearPins(t *testing.T) {
	ctx := context.Background()
	s, mem := newTestStore(t)
	addPins(t, s, 2)
	s.ClearPins(ctx)
	assert.Empty(t, s.Pins())
	assert.False(t, mem.Has(StorageKey))
	assert.Equal(t, "-"+StorageKey, mem.Writes()[len(mem.Writes())-1])
}

func TestStorageFailureKeepsMemory(t *testing.T) {
	s, mem := newTestStore(t)
	mem.FailWith = errors.New("disk full")
	_, err := s.AddPin(context.Background(), place(1))
	require.NoError(t, err)
	assert.Len(t, s.Pins(), 1)
}
