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

// Package pins is the store of places a session has saved to its map, and of
// the (at most two) pins picked as route endpoints.
package pins

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slices"

	"github.com/tabi-planner/japan-planner/planner/directions"
	"github.com/tabi-planner/japan-planner/planner/persistence"
	"github.com/tabi-planner/japan-planner/planner/poi"
	"github.com/tabi-planner/japan-planner/planner/stations"
)

const (
	StorageKey = "pins"

	// MaxSelected is the size of the route selection window.
	MaxSelected = 2
)

var (
	ErrInvalidPin   = errors.New("pin needs a name, a position and a place id")
	ErrDuplicatePin = errors.New("this location is already saved")
	ErrNeedTwoPins  = errors.New("select two locations to plan a route")
)

type MapPin struct {
	poi.PointOfInterest
	IsSelected bool   `json:"isSelected"`
	Notes      string `json:"notes,omitempty"`
	IsStation  bool   `json:"isStation,omitempty"`
}

func (m MapPin) clone() MapPin {
	m.PointOfInterest = m.PointOfInterest.Clone()
	return m
}

// Store holds one session's pins. Every mutation rewrites the whole pin list
// to storage while the lock is held.
type Store struct {
	mu        sync.Mutex
	storage   persistence.Store
	positions *stations.PositionCache

	pins []MapPin
	// ids of the selected pins, oldest selection first
	selected []string
	route    *directions.Route
	errMsg   string
}

// NewStore loads the pins saved in storage. positions may be nil, in which case
// the store keeps its own station position cache.
func NewStore(ctx context.Context, storage persistence.Store, positions *stations.PositionCache) *Store {
	if positions == nil {
		positions = stations.NewPositionCache(12 * time.Hour)
	}
	s := &Store{storage: storage, positions: positions}
	s.load(ctx)
	return s
}

// storedPin is decoded alongside each entry to tell a missing coordinate from
// a zero one.
type storedPin struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Position *struct {
		Lat *float64 `json:"lat"`
		Lng *float64 `json:"lng"`
	} `json:"position"`
}

func (sp storedPin) complete() bool {
	return sp.ID != "" && sp.Name != "" && sp.Position != nil && sp.Position.Lat != nil && sp.Position.Lng != nil
}

func (s *Store) load(ctx context.Context) {
	var raw []json.RawMessage
	if _, err := persistence.LoadJSON(ctx, s.storage, StorageKey, &raw); err != nil {
		log.Printf("Failed to load pins: %v", err)
		s.errMsg = "Failed to load saved locations"
		return
	}
	for _, r := range raw {
		var probe storedPin
		var pin MapPin
		if json.Unmarshal(r, &probe) != nil || !probe.complete() || json.Unmarshal(r, &pin) != nil {
			continue
		}
		if pin.IsSelected {
			if len(s.selected) < MaxSelected {
				s.selected = append(s.selected, pin.ID)
			} else {
				pin.IsSelected = false
			}
		}
		s.pins = append(s.pins, pin)
	}
}

// persist writes the pin list, or removes it when empty. Callers hold s.mu.
func (s *Store) persist(ctx context.Context) {
	if len(s.pins) == 0 {
		if err := s.storage.Clear(ctx, StorageKey); err != nil {
			log.Printf("Failed to clear pins: %v", err)
		}
		return
	}
	if err := persistence.SaveJSON(ctx, s.storage, StorageKey, s.pins); err != nil {
		log.Printf("Failed to save pins: %v", err)
	}
}

func (s *Store) index(id string) int {
	for i := range s.pins {
		if s.pins[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) Pins() []MapPin {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]MapPin, len(s.pins))
	for i, p := range s.pins {
		out[i] = p.clone()
	}
	return out
}

// SelectedPins returns the selected pins, oldest selection first.
func (s *Store) SelectedPins() []MapPin {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedLocked()
}

func (s *Store) selectedLocked() []MapPin {
	out := make([]MapPin, 0, len(s.selected))
	for _, id := range s.selected {
		if i := s.index(id); i >= 0 {
			out = append(out, s.pins[i].clone())
		}
	}
	return out
}

// Error is the last user-facing error message, or "".
func (s *Store) Error() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

func (s *Store) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errMsg = ""
}

// AddPin saves place as a new, unselected pin with a fresh id. A place without
// a name, position or place id, or one already saved, is rejected and the
// reason is kept as the store's error message.
func (s *Store) AddPin(ctx context.Context, place poi.PointOfInterest) (*MapPin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !place.Valid() {
		s.errMsg = "Invalid location data"
		return nil, ErrInvalidPin
	}
	if slices.ContainsFunc(s.pins, func(p MapPin) bool { return p.PlaceID == place.PlaceID }) {
		s.errMsg = "This location is already saved"
		return nil, ErrDuplicatePin
	}
	pin := MapPin{PointOfInterest: place.Clone()}
	pin.ID = uuid.NewString()
	s.pins = append(s.pins, pin)
	s.persist(ctx)
	out := pin.clone()
	return &out, nil
}

// RemovePin deletes a pin. Removing a selected pin also drops the planned
// route.
func (s *Store) RemovePin(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.pins = append(s.pins[:i], s.pins[i+1:]...)
	if j := slices.Index(s.selected, id); j >= 0 {
		s.selected = slices.Delete(s.selected, j, j+1)
		s.route = nil
	}
	s.persist(ctx)
	return true
}

func (s *Store) selectLocked(i int) {
	if len(s.selected) >= MaxSelected {
		oldest := s.selected[0]
		s.selected = s.selected[1:]
		if j := s.index(oldest); j >= 0 {
			s.pins[j].IsSelected = false
		}
	}
	s.pins[i].IsSelected = true
	s.selected = append(s.selected, s.pins[i].ID)
	s.route = nil
}

func (s *Store) deselectLocked(i int) {
	s.pins[i].IsSelected = false
	if j := slices.Index(s.selected, s.pins[i].ID); j >= 0 {
		s.selected = slices.Delete(s.selected, j, j+1)
	}
	s.route = nil
}

// TogglePinSelection flips a pin's selection. Selecting a third pin evicts the
// one selected first. A station pin id that is not in the collection yet adds
// a temporary station pin, already selected, positioned from the session's
// station cache. It reports whether the pin ends up selected.
func (s *Store) TogglePinSelection(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		if !stations.IsStationID(id) {
			return false, nil
		}
		sid, err := stations.ParseID(id)
		if err != nil {
			log.Printf("Invalid station id %q: %v", id, err)
			s.errMsg = "Invalid station"
			return false, err
		}
		pin := MapPin{PointOfInterest: stations.Pin(sid, s.positions.Resolve(sid)), IsStation: true}
		pin.ID, pin.PlaceID = id, id
		s.pins = append(s.pins, pin)
		i = len(s.pins) - 1
		s.selectLocked(i)
		s.persist(ctx)
		return true, nil
	}
	if s.pins[i].IsSelected {
		s.deselectLocked(i)
	} else {
		s.selectLocked(i)
	}
	s.persist(ctx)
	return s.pins[i].IsSelected, nil
}

// ClearSelection deselects every pin and drops the planned route.
func (s *Store) ClearSelection(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.pins {
		s.pins[i].IsSelected = false
	}
	s.selected = nil
	s.route = nil
	s.persist(ctx)
}

// CleanupTemporaryPins removes every station pin and forgets the remembered
// station positions. Regular pins are untouched. It returns how many pins
// were removed.
func (s *Store) CleanupTemporaryPins(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.positions.PurgeStations()
	kept := s.pins[:0]
	removed := 0
	for _, p := range s.pins {
		if p.IsStation {
			removed++
			if j := slices.Index(s.selected, p.ID); j >= 0 {
				s.selected = slices.Delete(s.selected, j, j+1)
				s.route = nil
			}
			continue
		}
		kept = append(kept, p)
	}
	s.pins = kept
	if removed > 0 {
		s.persist(ctx)
	}
	return removed
}

// PinUpdate names the fields to change on a pin; nil fields are left alone.
type PinUpdate struct {
	Name         *string       `json:"name,omitempty"`
	Address      *string       `json:"address,omitempty"`
	Position     *poi.Position `json:"position,omitempty"`
	Types        []string      `json:"types,omitempty"`
	Price        *poi.Price    `json:"price,omitempty"`
	Rating       *float64      `json:"rating,omitempty"`
	OpeningHours []string      `json:"openingHours,omitempty"`
	Website      *string       `json:"website,omitempty"`
	PhoneNumber  *string       `json:"phoneNumber,omitempty"`
	Notes        *string       `json:"notes,omitempty"`
	IsSelected   *bool         `json:"isSelected,omitempty"`
}

// UpdatePin merges u into the pin with the given id. Selection only changes
// when u names it, and then obeys the same two-pin window as toggling.
func (s *Store) UpdatePin(ctx context.Context, id string, u PinUpdate) *MapPin {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return nil
	}
	p := &s.pins[i]
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Address != nil {
		p.Address = *u.Address
	}
	if u.Position != nil {
		pos := *u.Position
		p.Position = &pos
	}
	if u.Types != nil {
		p.Types = append([]string(nil), u.Types...)
	}
	if u.Price != nil {
		price := u.Price.Clone()
		p.Price = &price
	}
	if u.Rating != nil {
		r := *u.Rating
		p.Rating = &r
	}
	if u.OpeningHours != nil {
		p.OpeningHours = append([]string(nil), u.OpeningHours...)
	}
	if u.Website != nil {
		p.Website = *u.Website
	}
	if u.PhoneNumber != nil {
		p.PhoneNumber = *u.PhoneNumber
	}
	if u.Notes != nil {
		p.Notes = *u.Notes
	}
	if u.IsSelected != nil && *u.IsSelected != p.IsSelected {
		if *u.IsSelected {
			s.selectLocked(i)
		} else {
			s.deselectLocked(i)
		}
	}
	s.persist(ctx)
	out := s.pins[i].clone()
	return &out
}

// ClearPins removes every pin and the stored record.
func (s *Store) ClearPins(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pins = nil
	s.selected = nil
	s.route = nil
	s.persist(ctx)
}

// RememberStation records where a station marker is, so that selecting its pin
// id places the pin there.
func (s *Store) RememberStation(pinID string, pos poi.Position) {
	s.positions.Remember(pinID, pos)
}

// PlanRoute builds the route between the two selected pins, oldest selection
// first, and keeps it as the current route.
func (s *Store) PlanRoute(mode directions.TravelMode) (*directions.Route, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sel := s.selectedLocked()
	if len(sel) != MaxSelected {
		return nil, ErrNeedTwoPins
	}
	r, err := directions.Plan(sel[0].PointOfInterest, sel[1].PointOfInterest, mode)
	if err != nil {
		return nil, err
	}
	s.route = r
	return r, nil
}

// Route is the last planned route, or nil once the selection has changed.
func (s *Store) Route() *directions.Route {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.route
}
