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
	"log"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"

	"github.com/tabi-planner/japan-planner/planner/itinerary"
	"github.com/tabi-planner/japan-planner/planner/poi"
	"github.com/tabi-planner/japan-planner/planner/query"
	"github.com/tabi-planner/japan-planner/planner/util/currencies"
)

func (s *Service) handleListTrips(rw http.ResponseWriter, r *http.Request, _ httprouter.Params, sess *Session) {
	var active string
	if t := sess.Planner.ActiveTrip(); t != nil {
		active = t.ID
	}
	respondJSON(rw, http.StatusOK, struct {
		Trips        []itinerary.TripPlan `json:"trips"`
		ActiveTripID string               `json:"activeTripId,omitempty"`
	}{sess.Planner.AllTrips(), active})
}

type createTripRequest struct {
	Name      string `json:"name"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

func (s *Service) handleCreateTrip(rw http.ResponseWriter, r *http.Request, _ httprouter.Params, sess *Session) {
	var req createTripRequest
	if err := decodeBody(r, &req); err != nil {
		respondErr(rw, err)
		return
	}
	plan, err := sess.Planner.CreateTrip(r.Context(), req.Name, req.StartDate, req.EndDate)
	if err != nil {
		sess.Notices.Error("Please choose valid trip dates")
		respondErr(rw, err)
		return
	}
	sess.Notices.Success("Trip created")
	respondJSON(rw, http.StatusCreated, plan)
}

func (s *Service) handleResetTrips(rw http.ResponseWriter, r *http.Request, _ httprouter.Params, sess *Session) {
	sess.Planner.Reset(r.Context())
	rw.WriteHeader(http.StatusNoContent)
}

func (s *Service) handleSwitchTrip(rw http.ResponseWriter, r *http.Request, ps httprouter.Params, sess *Session) {
	if !sess.Planner.SwitchTrip(r.Context(), ps.ByName("id")) {
		respondNotFound(rw, "trip")
		return
	}
	respondJSON(rw, http.StatusOK, sess.Planner.ActiveTrip())
}

func (s *Service) handleDuplicateTrip(rw http.ResponseWriter, r *http.Request, ps httprouter.Params, sess *Session) {
	var req struct {
		Name string `json:"name"`
	}
	if err := decodeBody(r, &req); err != nil {
		respondErr(rw, err)
		return
	}
	plan := sess.Planner.DuplicateTrip(r.Context(), ps.ByName("id"), req.Name)
	if plan == nil {
		respondNotFound(rw, "trip")
		return
	}
	sess.Notices.Success("Trip duplicated")
	respondJSON(rw, http.StatusCreated, plan)
}

func (s *Service) handleDeleteTrip(rw http.ResponseWriter, r *http.Request, ps httprouter.Params, sess *Session) {
	if !sess.Planner.DeleteTrip(r.Context(), ps.ByName("id")) {
		respondNotFound(rw, "trip")
		return
	}
	sess.Notices.Info("Trip deleted")
	rw.WriteHeader(http.StatusNoContent)
}

func (s *Service) handleActiveTrip(rw http.ResponseWriter, r *http.Request, _ httprouter.Params, sess *Session) {
	plan := sess.Planner.ActiveTrip()
	if plan == nil {
		respondNotFound(rw, "active trip")
		return
	}
	respondJSON(rw, http.StatusOK, plan)
}

func (s *Service) handleUpdateTrip(rw http.ResponseWriter, r *http.Request, _ httprouter.Params, sess *Session) {
	var u itinerary.TripUpdate
	if err := decodeBody(r, &u); err != nil {
		respondErr(rw, err)
		return
	}
	if u.Currency != nil {
		code := strings.ToUpper(*u.Currency)
		if !currencies.IsValidCurrency(code) {
			respondError(rw, http.StatusBadRequest, "unknown currency "+*u.Currency)
			return
		}
		u.Currency = &code
	}
	plan, err := sess.Planner.UpdateTripDetails(r.Context(), u)
	if err != nil {
		respondErr(rw, err)
		return
	}
	if plan == nil {
		respondNotFound(rw, "active trip")
		return
	}
	respondJSON(rw, http.StatusOK, plan)
}

type addLocationRequest struct {
	POI poi.PointOfInterest `json:"poi"`
	itinerary.LocationOptions
}

func (s *Service) handleAddLocation(rw http.ResponseWriter, r *http.Request, ps httprouter.Params, sess *Session) {
	var req addLocationRequest
	if err := decodeBody(r, &req); err != nil {
		respondErr(rw, err)
		return
	}
	loc, err := sess.Planner.AddLocationToDay(r.Context(), ps.ByName("day"), req.POI, &req.LocationOptions)
	if err != nil {
		respondErr(rw, err)
		return
	}
	if loc == nil {
		respondNotFound(rw, "day")
		return
	}
	sess.Notices.Success("Added " + loc.POI.Name + " to your itinerary")
	respondJSON(rw, http.StatusCreated, loc)
}

func (s *Service) handleUpdateLocation(rw http.ResponseWriter, r *http.Request, ps httprouter.Params, sess *Session) {
	var u itinerary.LocationUpdate
	if err := decodeBody(r, &u); err != nil {
		respondErr(rw, err)
		return
	}
	loc, err := sess.Planner.UpdateScheduledLocation(r.Context(), ps.ByName("day"), ps.ByName("loc"), u)
	if err != nil {
		respondErr(rw, err)
		return
	}
	if loc == nil {
		respondNotFound(rw, "location")
		return
	}
	respondJSON(rw, http.StatusOK, loc)
}

func (s *Service) handleRemoveLocation(rw http.ResponseWriter, r *http.Request, ps httprouter.Params, sess *Session) {
	if !sess.Planner.RemoveLocationFromDay(r.Context(), ps.ByName("day"), ps.ByName("loc")) {
		respondNotFound(rw, "location")
		return
	}
	rw.WriteHeader(http.StatusNoContent)
}

type addStayRequest struct {
	POI       poi.PointOfInterest `json:"poi"`
	StartDate string              `json:"startDate"`
	EndDate   string              `json:"endDate"`
	Total     float64             `json:"totalCost"`
}

func (s *Service) handleAddStay(rw http.ResponseWriter, r *http.Request, _ httprouter.Params, sess *Session) {
	var req addStayRequest
	if err := decodeBody(r, &req); err != nil {
		respondErr(rw, err)
		return
	}
	loc, err := sess.Planner.AddMultiDayAccommodation(r.Context(), req.POI, req.StartDate, req.EndDate, req.Total)
	if err != nil {
		respondErr(rw, err)
		return
	}
	if loc == nil {
		respondNotFound(rw, "trip day in range")
		return
	}
	sess.Notices.Success("Booked " + loc.POI.Name + " for your stay")
	respondJSON(rw, http.StatusCreated, loc)
}

func (s *Service) handleDayNotes(rw http.ResponseWriter, r *http.Request, ps httprouter.Params, sess *Session) {
	var req struct {
		Notes string `json:"notes"`
	}
	if err := decodeBody(r, &req); err != nil {
		respondErr(rw, err)
		return
	}
	if !sess.Planner.UpdateDayNotes(r.Context(), ps.ByName("day"), req.Notes) {
		respondNotFound(rw, "day")
		return
	}
	rw.WriteHeader(http.StatusNoContent)
}

func (s *Service) handleAddExpense(rw http.ResponseWriter, r *http.Request, ps httprouter.Params, sess *Session) {
	var in itinerary.ExpenseInput
	if err := decodeBody(r, &in); err != nil {
		respondErr(rw, err)
		return
	}
	exp, err := sess.Planner.AddCustomExpense(r.Context(), ps.ByName("day"), in)
	if err != nil {
		respondErr(rw, err)
		return
	}
	if exp == nil {
		respondNotFound(rw, "day")
		return
	}
	respondJSON(rw, http.StatusCreated, exp)
}

func (s *Service) handleUpdateExpense(rw http.ResponseWriter, r *http.Request, ps httprouter.Params, sess *Session) {
	var u itinerary.ExpenseUpdate
	if err := decodeBody(r, &u); err != nil {
		respondErr(rw, err)
		return
	}
	exp, err := sess.Planner.UpdateCustomExpense(r.Context(), ps.ByName("day"), ps.ByName("exp"), u)
	if err != nil {
		respondErr(rw, err)
		return
	}
	if exp == nil {
		respondNotFound(rw, "expense")
		return
	}
	respondJSON(rw, http.StatusOK, exp)
}

func (s *Service) handleRemoveExpense(rw http.ResponseWriter, r *http.Request, ps httprouter.Params, sess *Session) {
	if !sess.Planner.RemoveCustomExpense(r.Context(), ps.ByName("day"), ps.ByName("exp")) {
		respondNotFound(rw, "expense")
		return
	}
	rw.WriteHeader(http.StatusNoContent)
}

type budgetResponse struct {
	Currency       string                                     `json:"currency"`
	Total          float64                                    `json:"total"`
	Budget         itinerary.Budget                           `json:"budget"`
	ByCategory     itinerary.Budget                           `json:"byCategory"`
	CustomExpenses map[poi.Category][]itinerary.CustomExpense `json:"customExpenses"`
	TripBudget     *float64                                   `json:"tripBudget,omitempty"`
	Display        *currencies.Conversion                     `json:"display,omitempty"`
}

// handleBudget reports the running day totals alongside the totals re-derived
// from the entries. With ?currency= the grand total is also converted for
// display.
func (s *Service) handleBudget(rw http.ResponseWriter, r *http.Request, _ httprouter.Params, sess *Session) {
	plan := sess.Planner.ActiveTrip()
	if plan == nil {
		respondNotFound(rw, "active trip")
		return
	}
	budget := sess.Planner.TotalBudget()
	resp := budgetResponse{
		Currency:       plan.Currency,
		Total:          budget.Total(),
		Budget:         budget,
		ByCategory:     sess.Planner.TotalExpensesByCategory(),
		CustomExpenses: sess.Planner.CustomExpensesByCategory(),
		TripBudget:     plan.TotalBudget,
	}
	ctx := r.Context()
	if to := query.DisplayCurrencyFromContext(ctx); to != "" && to != plan.Currency {
		conv, err := s.currencies.Convert(ctx, resp.Total, plan.Currency, to)
		if err != nil {
			log.Printf("Failed to convert budget to %s: %v", to, err)
		} else {
			resp.Display = conv
		}
	}
	respondJSON(rw, http.StatusOK, resp)
}
