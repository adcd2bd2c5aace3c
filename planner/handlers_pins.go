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
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/tabi-planner/japan-planner/planner/directions"
	"github.com/tabi-planner/japan-planner/planner/pins"
	"github.com/tabi-planner/japan-planner/planner/poi"
	"github.com/tabi-planner/japan-planner/planner/stations"
)

type pinsResponse struct {
	Pins     []pins.MapPin     `json:"pins"`
	Selected []pins.MapPin     `json:"selected"`
	Route    *directions.Route `json:"route,omitempty"`
	Error    string            `json:"error,omitempty"`
}

func pinState(sess *Session) pinsResponse {
	return pinsResponse{
		Pins:     sess.Pins.Pins(),
		Selected: sess.Pins.SelectedPins(),
		Route:    sess.Pins.Route(),
		Error:    sess.Pins.Error(),
	}
}

func (s *Service) handleListPins(rw http.ResponseWriter, r *http.Request, _ httprouter.Params, sess *Session) {
	respondJSON(rw, http.StatusOK, pinState(sess))
}

func (s *Service) handleAddPin(rw http.ResponseWriter, r *http.Request, _ httprouter.Params, sess *Session) {
	var place poi.PointOfInterest
	if err := decodeBody(r, &place); err != nil {
		respondErr(rw, err)
		return
	}
	sess.Pins.ClearError()
	pin, err := sess.Pins.AddPin(r.Context(), place)
	if err != nil {
		msg := sess.Pins.Error()
		sess.Notices.Error(msg)
		respondError(rw, statusFor(err), msg)
		return
	}
	sess.Notices.Success("Location saved to your map")
	respondJSON(rw, http.StatusCreated, pin)
}

func (s *Service) handleClearPins(rw http.ResponseWriter, r *http.Request, _ httprouter.Params, sess *Session) {
	sess.Pins.ClearPins(r.Context())
	rw.WriteHeader(http.StatusNoContent)
}

func (s *Service) handleUpdatePin(rw http.ResponseWriter, r *http.Request, ps httprouter.Params, sess *Session) {
	var u pins.PinUpdate
	if err := decodeBody(r, &u); err != nil {
		respondErr(rw, err)
		return
	}
	pin := sess.Pins.UpdatePin(r.Context(), ps.ByName("id"), u)
	if pin == nil {
		respondNotFound(rw, "pin")
		return
	}
	respondJSON(rw, http.StatusOK, pin)
}

func (s *Service) handleRemovePin(rw http.ResponseWriter, r *http.Request, ps httprouter.Params, sess *Session) {
	if !sess.Pins.RemovePin(r.Context(), ps.ByName("id")) {
		respondNotFound(rw, "pin")
		return
	}
	rw.WriteHeader(http.StatusNoContent)
}

type toggleRequest struct {
	// Where the clicked station marker is; only read for station pin ids.
	Position *poi.Position `json:"position,omitempty"`
}

func (s *Service) handleTogglePin(rw http.ResponseWriter, r *http.Request, ps httprouter.Params, sess *Session) {
	id := ps.ByName("id")
	var req toggleRequest
	if err := decodeBody(r, &req); err != nil {
		respondErr(rw, err)
		return
	}
	if req.Position != nil && stations.IsStationID(id) {
		sess.Pins.RememberStation(id, *req.Position)
	}
	selected, err := sess.Pins.TogglePinSelection(r.Context(), id)
	if err != nil {
		respondErr(rw, err)
		return
	}
	respondJSON(rw, http.StatusOK, struct {
		ID         string `json:"id"`
		IsSelected bool   `json:"isSelected"`
		pinsResponse
	}{id, selected, pinState(sess)})
}

func (s *Service) handleClearSelection(rw http.ResponseWriter, r *http.Request, _ httprouter.Params, sess *Session) {
	sess.Pins.ClearSelection(r.Context())
	rw.WriteHeader(http.StatusNoContent)
}

func (s *Service) handleCleanupStations(rw http.ResponseWriter, r *http.Request, _ httprouter.Params, sess *Session) {
	removed := sess.Pins.CleanupTemporaryPins(r.Context())
	respondJSON(rw, http.StatusOK, map[string]int{"removed": removed})
}

func (s *Service) handleRoute(rw http.ResponseWriter, r *http.Request, _ httprouter.Params, sess *Session) {
	mode, err := directions.ParseMode(r.URL.Query().Get("mode"))
	if err != nil {
		respondErr(rw, err)
		return
	}
	route, err := sess.Pins.PlanRoute(mode)
	if errors.Is(err, pins.ErrNeedTwoPins) {
		respondError(rw, http.StatusConflict, "Please select two locations to get directions")
		return
	}
	if err != nil {
		respondErr(rw, err)
		return
	}
	respondJSON(rw, http.StatusOK, route)
}
