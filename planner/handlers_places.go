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
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/julienschmidt/httprouter"

	"github.com/tabi-planner/japan-planner/planner/places"
	"github.com/tabi-planner/japan-planner/planner/query"
)

func (s *Service) respondResults(rw http.ResponseWriter, res places.Results, err error) {
	switch {
	case err == nil:
		respondJSON(rw, http.StatusOK, res)
	case errors.Is(err, places.ErrSuperseded):
		respondJSON(rw, http.StatusConflict, res)
	default:
		status := statusFor(err)
		if res.Error == "" {
			res.Error = err.Error()
		}
		respondJSON(rw, status, res)
	}
}

func (s *Service) handleSearch(rw http.ResponseWriter, r *http.Request, _ httprouter.Params, sess *Session) {
	term := r.URL.Query().Get("query")
	if term == "" {
		respondError(rw, http.StatusBadRequest, "Query parameter is required")
		return
	}
	res, err := sess.Search.Search(r.Context(), term, query.LocationFromContext(r.Context()))
	s.respondResults(rw, res, err)
}

func (s *Service) handleNextPage(rw http.ResponseWriter, r *http.Request, _ httprouter.Params, sess *Session) {
	res, err := sess.Search.FetchNextPage(r.Context())
	s.respondResults(rw, res, err)
}

func (s *Service) handleClearSearch(rw http.ResponseWriter, r *http.Request, _ httprouter.Params, sess *Session) {
	sess.Search.ClearSearch()
	rw.WriteHeader(http.StatusNoContent)
}

// handleDetails answers null when nothing is known about the place.
func (s *Service) handleDetails(rw http.ResponseWriter, r *http.Request, _ httprouter.Params, sess *Session) {
	placeID := r.URL.Query().Get("placeId")
	if placeID == "" {
		respondError(rw, http.StatusBadRequest, "Place ID is required")
		return
	}
	details, err := sess.Search.GetDetails(r.Context(), placeID)
	if err != nil {
		log.Printf("Place details error for %s: %v", placeID, err)
		respondErr(rw, err)
		return
	}
	respondJSON(rw, http.StatusOK, details)
}

func (s *Service) handlePrices(rw http.ResponseWriter, r *http.Request, _ httprouter.Params, sess *Session) {
	q := r.URL.Query()
	estimate, err := sess.Search.Prices(r.Context(), q.Get("placeId"), q.Get("name"), q.Get("type"))
	if err != nil {
		respondErr(rw, err)
		return
	}
	respondJSON(rw, http.StatusOK, estimate)
}

func (s *Service) handlePhoto(rw http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ref := r.URL.Query().Get("ref")
	if ref == "" || s.backend == nil {
		respondError(rw, http.StatusBadRequest, "photo reference is required")
		return
	}
	width, _ := strconv.Atoi(r.URL.Query().Get("maxWidth"))
	if width < 0 || width > 1600 {
		width = 0
	}
	photo, err := s.backend.Photo(r.Context(), ref, uint(width))
	if err != nil {
		respondErr(rw, err)
		return
	}
	defer photo.Data.Close()
	if photo.ContentType != "" {
		rw.Header().Set("Content-Type", photo.ContentType)
	}
	rw.Header().Set("Cache-Control", "public, max-age=86400")
	if _, err := io.Copy(rw, photo.Data); err != nil {
		log.Printf("Failed to relay photo: %v", err)
	}
}

func (s *Service) handleQuota(rw http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	used, remaining, err := s.quota.GetQuota(r.Context())
	if err != nil {
		respondErr(rw, err)
		return
	}
	respondJSON(rw, http.StatusOK, map[string]int{"used": used, "remaining": remaining})
}

func (s *Service) handleConvert(rw http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	q := r.URL.Query()
	amountStr := q.Get("amount")
	if amountStr == "" {
		respondError(rw, http.StatusBadRequest, "Amount is required")
		return
	}
	amount, err := strconv.ParseFloat(amountStr, 64)
	if err != nil {
		respondError(rw, http.StatusBadRequest, "Invalid amount")
		return
	}
	from, to := strings.ToUpper(q.Get("from")), strings.ToUpper(q.Get("to"))
	if from == "" {
		from = "JPY"
	}
	if to == "" {
		to = s.display
	}
	conv, err := s.currencies.Convert(r.Context(), amount, from, to)
	if err != nil {
		respondErr(rw, err)
		return
	}
	respondJSON(rw, http.StatusOK, conv)
}
