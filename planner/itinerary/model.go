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
	"cloud.google.com/go/civil"

	"github.com/tabi-planner/japan-planner/planner/poi"
)

// Budget holds one running total per category. Values never go below zero.
type Budget struct {
	Accommodation  float64 `json:"accommodation"`
	Food           float64 `json:"food"`
	Activities     float64 `json:"activities"`
	Transportation float64 `json:"transportation"`
	Shopping       float64 `json:"shopping"`
	Other          float64 `json:"other"`
}

func (b *Budget) slot(c poi.Category) *float64 {
	switch c {
	case poi.Accommodation:
		return &b.Accommodation
	case poi.Food:
		return &b.Food
	case poi.Activities:
		return &b.Activities
	case poi.Transportation:
		return &b.Transportation
	case poi.Shopping:
		return &b.Shopping
	}
	return &b.Other
}

func (b Budget) Get(c poi.Category) float64 {
	return *b.slot(c)
}

func (b *Budget) add(c poi.Category, amount float64) {
	*b.slot(c) += amount
}

func (b *Budget) subtract(c poi.Category, amount float64) {
	s := b.slot(c)
	*s -= amount
	if *s < 0 {
		*s = 0
	}
}

// Total is the sum of every category.
func (b Budget) Total() float64 {
	var t float64
	for _, c := range poi.Categories {
		t += b.Get(c)
	}
	return t
}

type TimeSlot struct {
	StartTime string `json:"startTime,omitempty"`
	EndTime   string `json:"endTime,omitempty"`
}

type ScheduledLocation struct {
	ID       string              `json:"id"`
	POI      poi.PointOfInterest `json:"poi"`
	TimeSlot *TimeSlot           `json:"timeSlot,omitempty"`
	Category poi.Category        `json:"category"`
	// For a multi-day stay this is the per-day share.
	Budget           float64     `json:"budget"`
	Notes            string      `json:"notes,omitempty"`
	StayMultipleDays bool        `json:"stayMultipleDays,omitempty"`
	StayEndDate      *civil.Date `json:"stayEndDate,omitempty"`
	// Days whose buckets carry a share of this stay, the owning day included.
	StayDayIDs  []string `json:"stayDayIds,omitempty"`
	IsCompleted bool     `json:"isCompleted,omitempty"`
}

type CustomExpense struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Amount   float64      `json:"amount"`
	Category poi.Category `json:"category"`
	Date     civil.Date   `json:"date"`
	Notes    string       `json:"notes,omitempty"`
	IsPaid   bool         `json:"isPaid,omitempty"`
}

type TripDay struct {
	ID             string              `json:"id"`
	Date           civil.Date          `json:"date"`
	DayNumber      int                 `json:"dayNumber"`
	Locations      []ScheduledLocation `json:"locations"`
	CustomExpenses []CustomExpense     `json:"customExpenses"`
	Notes          string              `json:"notes"`
	Budget         Budget              `json:"budget"`
}

type TripPlan struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	StartDate   civil.Date `json:"startDate"`
	EndDate     civil.Date `json:"endDate"`
	Days        []TripDay  `json:"days"`
	Currency    string     `json:"currency"`
	TotalBudget *float64   `json:"totalBudget,omitempty"`
	Notes       string     `json:"notes"`
}

func (l ScheduledLocation) clone() ScheduledLocation {
	out := l
	out.POI = l.POI.Clone()
	if l.TimeSlot != nil {
		ts := *l.TimeSlot
		out.TimeSlot = &ts
	}
	if l.StayEndDate != nil {
		d := *l.StayEndDate
		out.StayEndDate = &d
	}
	if l.StayDayIDs != nil {
		out.StayDayIDs = append([]string(nil), l.StayDayIDs...)
	}
	return out
}

func (d TripDay) clone() TripDay {
	out := d
	out.Locations = make([]ScheduledLocation, len(d.Locations))
	for i, l := range d.Locations {
		out.Locations[i] = l.clone()
	}
	out.CustomExpenses = append(make([]CustomExpense, 0, len(d.CustomExpenses)), d.CustomExpenses...)
	return out
}

func (p TripPlan) clone() TripPlan {
	out := p
	out.Days = make([]TripDay, len(p.Days))
	for i, d := range p.Days {
		out.Days[i] = d.clone()
	}
	if p.TotalBudget != nil {
		v := *p.TotalBudget
		out.TotalBudget = &v
	}
	return out
}
