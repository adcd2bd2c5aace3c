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

	"cloud.google.com/go/civil"
	"github.com/google/uuid"

	"github.com/tabi-planner/japan-planner/planner/poi"
)

type ExpenseInput struct {
	Name     string       `json:"name"`
	Amount   float64      `json:"amount"`
	Category poi.Category `json:"category"`
	// Empty means the date of the day the expense is filed under.
	Date   string `json:"date,omitempty"`
	Notes  string `json:"notes,omitempty"`
	IsPaid bool   `json:"isPaid,omitempty"`
}

type ExpenseUpdate struct {
	Name     *string       `json:"name,omitempty"`
	Amount   *float64      `json:"amount,omitempty"`
	Category *poi.Category `json:"category,omitempty"`
	Date     *string       `json:"date,omitempty"`
	Notes    *string       `json:"notes,omitempty"`
	IsPaid   *bool         `json:"isPaid,omitempty"`
}

func (d *TripDay) expense(id string) *CustomExpense {
	for i := range d.CustomExpenses {
		if d.CustomExpenses[i].ID == id {
			return &d.CustomExpenses[i]
		}
	}
	return nil
}

// AddCustomExpense files an expense under a day of the active plan and adds its
// amount to the matching bucket.
func (p *Planner) AddCustomExpense(ctx context.Context, dayID string, in ExpenseInput) (*CustomExpense, error) {
	if !in.Category.Valid() {
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, in.Category)
	}
	if err := checkAmount(&in.Amount); err != nil {
		return nil, err
	}
	exp := CustomExpense{
		ID:       uuid.NewString(),
		Name:     in.Name,
		Amount:   in.Amount,
		Category: in.Category,
		Notes:    in.Notes,
		IsPaid:   in.IsPaid,
	}
	if in.Date != "" {
		date, err := ParseDate(in.Date)
		if err != nil {
			return nil, err
		}
		exp.Date = date
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
	if in.Date == "" {
		exp.Date = d.Date
	}
	d.CustomExpenses = append(d.CustomExpenses, exp)
	d.Budget.add(exp.Category, exp.Amount)
	p.persist(ctx)
	return &exp, nil
}

// UpdateCustomExpense applies u to an expense. The old amount leaves the old
// bucket (clamped at zero) and the new amount joins the new bucket.
func (p *Planner) UpdateCustomExpense(ctx context.Context, dayID, expenseID string, u ExpenseUpdate) (*CustomExpense, error) {
	if u.Category != nil && !u.Category.Valid() {
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, *u.Category)
	}
	if err := checkAmount(u.Amount); err != nil {
		return nil, err
	}
	var date *civil.Date
	if u.Date != nil {
		parsed, err := ParseDate(*u.Date)
		if err != nil {
			return nil, err
		}
		date = &parsed
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
	e := d.expense(expenseID)
	if e == nil {
		return nil, nil
	}
	category, amount := e.Category, e.Amount
	if u.Category != nil {
		category = *u.Category
	}
	if u.Amount != nil {
		amount = *u.Amount
	}
	if category != e.Category || amount != e.Amount {
		d.Budget.subtract(e.Category, e.Amount)
		d.Budget.add(category, amount)
		e.Category, e.Amount = category, amount
	}
	if u.Name != nil {
		e.Name = *u.Name
	}
	if date != nil {
		e.Date = *date
	}
	if u.Notes != nil {
		e.Notes = *u.Notes
	}
	if u.IsPaid != nil {
		e.IsPaid = *u.IsPaid
	}
	p.persist(ctx)
	out := *e
	return &out, nil
}

func (p *Planner) RemoveCustomExpense(ctx context.Context, dayID, expenseID string) bool {
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
	for i, e := range d.CustomExpenses {
		if e.ID == expenseID {
			d.Budget.subtract(e.Category, e.Amount)
			d.CustomExpenses = append(d.CustomExpenses[:i], d.CustomExpenses[i+1:]...)
			p.persist(ctx)
			return true
		}
	}
	return false
}

// TotalBudget sums the day buckets of the active plan.
func (p *Planner) TotalBudget() Budget {
	p.mu.Lock()
	defer p.mu.Unlock()
	var total Budget
	t := p.active()
	if t == nil {
		return total
	}
	for _, d := range t.Days {
		for _, c := range poi.Categories {
			total.add(c, d.Budget.Get(c))
		}
	}
	return total
}

// CustomExpensesByCategory groups every expense of the active plan by category.
func (p *Planner) CustomExpensesByCategory() map[poi.Category][]CustomExpense {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make(map[poi.Category][]CustomExpense, len(poi.Categories))
	for _, c := range poi.Categories {
		out[c] = []CustomExpense{}
	}
	t := p.active()
	if t == nil {
		return out
	}
	for _, d := range t.Days {
		for _, e := range d.CustomExpenses {
			out[e.Category] = append(out[e.Category], e)
		}
	}
	return out
}

// TotalExpensesByCategory recomputes the per-category totals of the active plan
// from its locations and expenses rather than from the day buckets. A stay
// counts once per day it covers.
func (p *Planner) TotalExpensesByCategory() Budget {
	p.mu.Lock()
	defer p.mu.Unlock()
	var total Budget
	t := p.active()
	if t == nil {
		return total
	}
	for i := range t.Days {
		d := &t.Days[i]
		for j := range d.Locations {
			l := &d.Locations[j]
			total.add(l.Category, l.Budget*float64(len(t.covered(d, l))))
		}
		for _, e := range d.CustomExpenses {
			total.add(e.Category, e.Amount)
		}
	}
	return total
}
