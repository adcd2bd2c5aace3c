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

// Package itinerary holds a session's trip plans: the days of each plan, what is
// scheduled on them, and the per-category budget of every day.
//
// Day budgets are maintained incrementally. Every operation that adds, removes or
// changes a cost adjusts exactly the buckets it touches, so a day's bucket always
// equals the sum of the locations and expenses filed under it.
package itinerary

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"

	"github.com/tabi-planner/japan-planner/planner/persistence"
)

const (
	PlansKey  = "trip_plans"
	ActiveKey = "active_trip_id"

	DefaultCurrency = "JPY"
)

var (
	ErrInvalidDate  = errors.New("invalid date")
	ErrInvalidRange = errors.New("end date is before start date")
	ErrInvalidInput = errors.New("invalid input")
)

// Planner is the itinerary store of one session. All methods are safe for
// concurrent use; writes to the backing store are made while the lock is held,
// so they land in the order the mutations were applied.
type Planner struct {
	mu       sync.Mutex
	store    persistence.Store
	plans    []TripPlan
	activeID string
	currency string
}

// NewPlanner loads the plans saved in store. When no active plan id was saved,
// the first plan becomes active. currency is used for new plans; empty means JPY.
func NewPlanner(ctx context.Context, store persistence.Store, currency string) *Planner {
	if currency == "" {
		currency = DefaultCurrency
	}
	p := &Planner{store: store, currency: currency}
	p.load(ctx)
	return p
}

func (p *Planner) load(ctx context.Context) {
	var plans []TripPlan
	if _, err := persistence.LoadJSON(ctx, p.store, PlansKey, &plans); err != nil {
		log.Printf("Failed to load trip plans: %v", err)
		plans = nil
	}
	p.plans = plans
	active, err := p.store.Load(ctx, ActiveKey)
	if err != nil && !errors.Is(err, persistence.ErrNotFound) {
		log.Printf("Failed to load active trip id: %v", err)
	}
	p.activeID = string(active)
	if p.indexOf(p.activeID) < 0 {
		p.activeID = ""
		if len(p.plans) > 0 {
			p.activeID = p.plans[0].ID
		}
	}
}

// persist writes the cumulative state. Callers must hold p.mu. Storage failures
// are logged and the in-memory state stays authoritative.
func (p *Planner) persist(ctx context.Context) {
	if len(p.plans) == 0 {
		if err := p.store.Clear(ctx, PlansKey); err != nil {
			log.Printf("Failed to clear trip plans: %v", err)
		}
	} else if err := persistence.SaveJSON(ctx, p.store, PlansKey, p.plans); err != nil {
		log.Printf("Failed to save trip plans: %v", err)
	}
	if p.activeID == "" {
		if err := p.store.Clear(ctx, ActiveKey); err != nil {
			log.Printf("Failed to clear active trip id: %v", err)
		}
	} else if err := p.store.Save(ctx, ActiveKey, []byte(p.activeID)); err != nil {
		log.Printf("Failed to save active trip id: %v", err)
	}
}

func (p *Planner) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i := range p.plans {
		if p.plans[i].ID == id {
			return i
		}
	}
	return -1
}

// active returns the active plan for mutation, or nil. Callers must hold p.mu.
func (p *Planner) active() *TripPlan {
	i := p.indexOf(p.activeID)
	if i < 0 {
		return nil
	}
	return &p.plans[i]
}

func (t *TripPlan) day(id string) *TripDay {
	for i := range t.Days {
		if t.Days[i].ID == id {
			return &t.Days[i]
		}
	}
	return nil
}

func buildDays(start, end civil.Date, existing map[civil.Date]TripDay) []TripDay {
	n := InclusiveDays(start, end)
	days := make([]TripDay, 0, n)
	for i := 0; i < n; i++ {
		date := start.AddDays(i)
		day, ok := existing[date]
		if !ok {
			day = TripDay{
				ID:             uuid.NewString(),
				Date:           date,
				Locations:      []ScheduledLocation{},
				CustomExpenses: []CustomExpense{},
			}
		}
		day.DayNumber = i + 1
		days = append(days, day)
	}
	return days
}

func parseRange(startStr, endStr string) (civil.Date, civil.Date, error) {
	start, err := ParseDate(startStr)
	if err != nil {
		return civil.Date{}, civil.Date{}, err
	}
	end, err := ParseDate(endStr)
	if err != nil {
		return civil.Date{}, civil.Date{}, err
	}
	if end.Before(start) {
		return civil.Date{}, civil.Date{}, fmt.Errorf("%w: %s to %s", ErrInvalidRange, start, end)
	}
	return start, end, nil
}

// CreateTrip adds a plan with one day per calendar date in [start, end] and makes
// it active.
func (p *Planner) CreateTrip(ctx context.Context, name, startDate, endDate string) (*TripPlan, error) {
	start, end, err := parseRange(startDate, endDate)
	if err != nil {
		return nil, err
	}
	plan := TripPlan{
		ID:        uuid.NewString(),
		Name:      name,
		StartDate: start,
		EndDate:   end,
		Days:      buildDays(start, end, nil),
		Currency:  p.currency,
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.plans = append(p.plans, plan)
	p.activeID = plan.ID
	p.persist(ctx)
	out := plan.clone()
	return &out, nil
}

func (p *Planner) AllTrips() []TripPlan {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]TripPlan, len(p.plans))
	for i, t := range p.plans {
		out[i] = t.clone()
	}
	return out
}

// ActiveTrip returns a copy of the active plan, or nil when there is none.
func (p *Planner) ActiveTrip() *TripPlan {
	p.mu.Lock()
	defer p.mu.Unlock()
	t := p.active()
	if t == nil {
		return nil
	}
	out := t.clone()
	return &out
}

// SwitchTrip activates the plan with the given id. It reports false, changing
// nothing, when no such plan exists.
func (p *Planner) SwitchTrip(ctx context.Context, id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.indexOf(id) < 0 {
		return false
	}
	p.activeID = id
	p.persist(ctx)
	return true
}

// TripUpdate names the fields to change on the active plan; nil fields are left
// alone.
type TripUpdate struct {
	Name        *string  `json:"name,omitempty"`
	StartDate   *string  `json:"startDate,omitempty"`
	EndDate     *string  `json:"endDate,omitempty"`
	Currency    *string  `json:"currency,omitempty"`
	TotalBudget *float64 `json:"totalBudget,omitempty"`
	Notes       *string  `json:"notes,omitempty"`
}

// UpdateTripDetails applies u to the active plan. A change to either date
// regenerates the days: days whose date is still in range are kept with their
// contents, new dates get empty days, and days outside the range are discarded.
func (p *Planner) UpdateTripDetails(ctx context.Context, u TripUpdate) (*TripPlan, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	t := p.active()
	if t == nil {
		return nil, nil
	}
	start, end := t.StartDate, t.EndDate
	var err error
	if u.StartDate != nil {
		if start, err = ParseDate(*u.StartDate); err != nil {
			return nil, err
		}
	}
	if u.EndDate != nil {
		if end, err = ParseDate(*u.EndDate); err != nil {
			return nil, err
		}
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidRange, start, end)
	}
	if u.TotalBudget != nil && *u.TotalBudget < 0 {
		return nil, fmt.Errorf("%w: negative total budget", ErrInvalidInput)
	}

	if start != t.StartDate || end != t.EndDate {
		t.regenerateDays(start, end)
	}
	if u.Name != nil {
		t.Name = *u.Name
	}
	if u.Currency != nil {
		t.Currency = *u.Currency
	}
	if u.TotalBudget != nil {
		v := *u.TotalBudget
		t.TotalBudget = &v
	}
	if u.Notes != nil {
		t.Notes = *u.Notes
	}
	p.persist(ctx)
	out := t.clone()
	return &out, nil
}

func (t *TripPlan) regenerateDays(start, end civil.Date) {
	existing := make(map[civil.Date]TripDay, len(t.Days))
	for _, d := range t.Days {
		existing[d.Date] = d
	}
	days := buildDays(start, end, existing)
	kept := make(map[string]bool, len(days))
	for _, d := range days {
		kept[d.ID] = true
	}
	t.Days = days
	// A stay whose owning day was dropped takes its shares on surviving days with it.
	for _, d := range existing {
		if kept[d.ID] {
			continue
		}
		for _, l := range d.Locations {
			if l.StayMultipleDays {
				t.applyStay(l, -1)
			}
		}
	}
	for i := range t.Days {
		for j := range t.Days[i].Locations {
			l := &t.Days[i].Locations[j]
			if l.StayMultipleDays {
				l.StayDayIDs = t.presentDays(l.StayDayIDs)
			}
		}
	}
	t.StartDate, t.EndDate = start, end
}

func (t *TripPlan) presentDays(ids []string) []string {
	out := ids[:0:0]
	for _, id := range ids {
		if t.day(id) != nil {
			out = append(out, id)
		}
	}
	return out
}

// DuplicateTrip deep-copies the plan with the given id under a fresh id and makes
// the copy active. An empty name becomes "<original> (Copy)".
func (p *Planner) DuplicateTrip(ctx context.Context, id, name string) *TripPlan {
	p.mu.Lock()
	defer p.mu.Unlock()
	i := p.indexOf(id)
	if i < 0 {
		return nil
	}
	cp := p.plans[i].clone()
	cp.ID = uuid.NewString()
	if name == "" {
		name = p.plans[i].Name + " (Copy)"
	}
	cp.Name = name
	p.plans = append(p.plans, cp)
	p.activeID = cp.ID
	p.persist(ctx)
	out := cp.clone()
	return &out
}

// DeleteTrip removes a plan. If it was active the first remaining plan becomes
// active; when none remain all persisted state is cleared.
func (p *Planner) DeleteTrip(ctx context.Context, id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	i := p.indexOf(id)
	if i < 0 {
		return false
	}
	p.plans = append(p.plans[:i], p.plans[i+1:]...)
	if p.activeID == id {
		p.activeID = ""
		if len(p.plans) > 0 {
			p.activeID = p.plans[0].ID
		}
	}
	p.persist(ctx)
	return true
}

// Reset drops every plan and clears persisted state.
func (p *Planner) Reset(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.plans = nil
	p.activeID = ""
	p.persist(ctx)
}

// UpdateDayNotes replaces the notes of a day of the active plan.
func (p *Planner) UpdateDayNotes(ctx context.Context, dayID, notes string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	t := p.active()
	if t == nil {
		return false
	}
	d := t.day(dayID)
	if d == nil {
		return false
	}
	d.Notes = notes
	p.persist(ctx)
	return true
}
