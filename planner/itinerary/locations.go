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

package itinerary

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/tabi-planner/japan-planner/planner/poi"
)

// LocationOptions override what AddLocationToDay would otherwise derive from
// the place itself.
type LocationOptions struct {
	// Empty means derive from the place types.
	Category poi.Category `json:"category,omitempty"`
	// Nil means estimate from the place price; an explicit 0 is kept.
	Budget      *float64  `json:"budget,omitempty"`
	TimeSlot    *TimeSlot `json:"timeSlot,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	IsCompleted bool      `json:"isCompleted,omitempty"`
}

// LocationUpdate names the fields of a scheduled location to change.
type LocationUpdate struct {
	POI         *poi.PointOfInterest `json:"poi,omitempty"`
	Category    *poi.Category        `json:"category,omitempty"`
	Budget      *float64             `json:"budget,omitempty"`
	TimeSlot    *TimeSlot            `json:"timeSlot,omitempty"`
	Notes       *string              `json:"notes,omitempty"`
	IsCompleted *bool                `json:"isCompleted,omitempty"`
}

// covered returns the days whose buckets carry l's budget.
func (t *TripPlan) covered(owner *TripDay, l *ScheduledLocation) []*TripDay {
	if !l.StayMultipleDays {
		return []*TripDay{owner}
	}
	var days []*TripDay
	for _, id := range l.StayDayIDs {
		if d := t.day(id); d != nil {
			days = append(days, d)
		}
	}
	return days
}

// applyStay adds (sign > 0) or removes a stay's per-day share on each day it
// covers.
func (t *TripPlan) applyStay(l ScheduledLocation, sign int) {
	for _, id := range l.StayDayIDs {
		d := t.day(id)
		if d == nil {
			continue
		}
		if sign > 0 {
			d.Budget.add(l.Category, l.Budget)
		} else {
			d.Budget.subtract(l.Category, l.Budget)
		}
	}
}

func checkCategory(c poi.Category) error {
	if c != "" && !c.Valid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidInput, c)
	}
	return nil
}

func checkAmount(f *float64) error {
	if f != nil && *f < 0 {
		return fmt.Errorf("%w: negative amount", ErrInvalidInput)
	}
	return nil
}

// AddLocationToDay schedules place on a day of the active plan and adds its
// budget to the matching bucket. A day id that is not in the active plan is a
// no-op and returns nil.
func (p *Planner) AddLocationToDay(ctx context.Context, dayID string, place poi.PointOfInterest, opts *LocationOptions) (*ScheduledLocation, error) {
	if opts == nil {
		opts = &LocationOptions{}
	}
	if err := checkCategory(opts.Category); err != nil {
		return nil, err
	}
	if err := checkAmount(opts.Budget); err != nil {
		return nil, err
	}
	category := opts.Category
	if category == "" {
		category = poi.Classify(place.Types)
	}
	budget := poi.EstimateBudget(place, category)
	if opts.Budget != nil {
		budget = *opts.Budget
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	t := p.active()
	if t == nil {
		return nil, nil
	}
	d := t.day(dayID)
	if d == nil {
		return nil, nil
	}
	loc := ScheduledLocation{
		ID:          uuid.NewString(),
		POI:         place.Clone(),
		Category:    category,
		Budget:      budget,
		Notes:       opts.Notes,
		IsCompleted: opts.IsCompleted,
	}
	if opts.TimeSlot != nil {
		ts := *opts.TimeSlot
		loc.TimeSlot = &ts
	}
	d.Locations = append(d.Locations, loc)
	d.Budget.add(category, budget)
	p.persist(ctx)
	out := loc.clone()
	return &out, nil
}

// RemoveLocationFromDay removes a scheduled location and subtracts its budget,
// clamped at zero. Removing a multi-day stay takes its share off every day it
// covers.
func (p *Planner) RemoveLocationFromDay(ctx context.Context, dayID, locationID string) bool {
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
	for i := range d.Locations {
		if d.Locations[i].ID != locationID {
			continue
		}
		l := d.Locations[i]
		for _, cd := range t.covered(d, &l) {
			cd.Budget.subtract(l.Category, l.Budget)
		}
		d.Locations = append(d.Locations[:i], d.Locations[i+1:]...)
		p.persist(ctx)
		return true
	}
	return false
}

// AddMultiDayAccommodation books place for every day of the active plan within
// [startDate, endDate]. The total is split evenly; one record is kept on the
// first covered day and each covered day's accommodation bucket gets the share.
// When no day of the plan falls in range nothing happens and nil is returned.
func (p *Planner) AddMultiDayAccommodation(ctx context.Context, place poi.PointOfInterest, startDate, endDate string, total float64) (*ScheduledLocation, error) {
	start, end, err := parseRange(startDate, endDate)
	if err != nil {
		return nil, err
	}
	if err := checkAmount(&total); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	t := p.active()
	if t == nil {
		return nil, nil
	}
	var ids []string
	first := -1
	for i := range t.Days {
		if within(t.Days[i].Date, start, end) {
			if first < 0 {
				first = i
			}
			ids = append(ids, t.Days[i].ID)
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}
	stayEnd := end
	loc := ScheduledLocation{
		ID:               uuid.NewString(),
		POI:              place.Clone(),
		Category:         poi.Accommodation,
		Budget:           total / float64(len(ids)),
		StayMultipleDays: true,
		StayEndDate:      &stayEnd,
		StayDayIDs:       ids,
	}
	t.Days[first].Locations = append(t.Days[first].Locations, loc)
	t.applyStay(loc, 1)
	p.persist(ctx)
	out := loc.clone()
	return &out, nil
}

// UpdateScheduledLocation applies u to a scheduled location. A budget change
// moves the bucket by the difference; a category change re-homes the whole
// budget from the old bucket to the new one. For a multi-day stay this happens
// on every covered day.
func (p *Planner) UpdateScheduledLocation(ctx context.Context, dayID, locationID string, u LocationUpdate) (*ScheduledLocation, error) {
	if u.Category != nil {
		if *u.Category == "" {
			return nil, fmt.Errorf("%w: empty category", ErrInvalidInput)
		}
		if err := checkCategory(*u.Category); err != nil {
			return nil, err
		}
	}
	if err := checkAmount(u.Budget); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	t := p.active()
	if t == nil {
		return nil, nil
	}
	d := t.day(dayID)
	if d == nil {
		return nil, nil
	}
	var l *ScheduledLocation
	for i := range d.Locations {
		if d.Locations[i].ID == locationID {
			l = &d.Locations[i]
			break
		}
	}
	if l == nil {
		return nil, nil
	}

	category, budget := l.Category, l.Budget
	if u.Category != nil {
		category = *u.Category
	}
	if u.Budget != nil {
		budget = *u.Budget
	}
	if category != l.Category || budget != l.Budget {
		for _, cd := range t.covered(d, l) {
			cd.Budget.subtract(l.Category, l.Budget)
			cd.Budget.add(category, budget)
		}
		l.Category, l.Budget = category, budget
	}
	if u.POI != nil {
		l.POI = u.POI.Clone()
	}
	if u.TimeSlot != nil {
		ts := *u.TimeSlot
		l.TimeSlot = &ts
	}
	if u.Notes != nil {
		l.Notes = *u.Notes
	}
	if u.IsCompleted != nil {
		l.IsCompleted = *u.IsCompleted
	}
	p.persist(ctx)
	out := l.clone()
	return &out, nil
}
