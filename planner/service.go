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

// Package planner serves the trip planner API: place search, saved pins and
// routes, trip itineraries with their budgets, and the map overlay.
package planner

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/honeycombio/beeline-go"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
	gmaps "googlemaps.github.io/maps"

	"github.com/tabi-planner/japan-planner/planner/directions"
	"github.com/tabi-planner/japan-planner/planner/itinerary"
	"github.com/tabi-planner/japan-planner/planner/persistence"
	"github.com/tabi-planner/japan-planner/planner/pins"
	"github.com/tabi-planner/japan-planner/planner/places"
	"github.com/tabi-planner/japan-planner/planner/query"
	"github.com/tabi-planner/japan-planner/planner/quota"
	"github.com/tabi-planner/japan-planner/planner/stations"
	"github.com/tabi-planner/japan-planner/planner/util/currencies"
)

const maxBodyBytes = 1 << 20

type Options struct {
	Store      persistence.Store
	Backend    places.Backend
	Prices     places.PriceSource
	Maps       *gmaps.Client
	Quota      *quota.Tracker
	Currencies *currencies.DataManager

	AllowedOrigins  []string
	DefaultCurrency string
	DisplayCurrency string
	StationTTL      time.Duration
}

type Service struct {
	router     *httprouter.Router
	sessions   *Sessions
	backend    places.Backend
	maps       *gmaps.Client
	quota      *quota.Tracker
	currencies *currencies.DataManager
	display    string
	origins    []string
}

func NewService(opts Options) *Service {
	if opts.Currencies == nil {
		opts.Currencies = currencies.NewDataManager(nil, "")
	}
	if opts.DisplayCurrency == "" {
		opts.DisplayCurrency = "CAD"
	}
	s := &Service{
		router: httprouter.New(),
		sessions: NewSessions(SessionOptions{
			Store:           opts.Store,
			Backend:         opts.Backend,
			Prices:          opts.Prices,
			DefaultCurrency: opts.DefaultCurrency,
			StationTTL:      opts.StationTTL,
		}),
		backend:    opts.Backend,
		maps:       opts.Maps,
		quota:      opts.Quota,
		currencies: opts.Currencies,
		display:    opts.DisplayCurrency,
		origins:    opts.AllowedOrigins,
	}
	s.routes()
	return s
}

func (s *Service) routes() {
	r := s.router
	r.GET("/heartbeat", s.handleHeartbeat)

	r.GET("/api/places/search", s.withSession(s.handleSearch))
	r.POST("/api/places/search/next", s.withSession(s.handleNextPage))
	r.DELETE("/api/places/search", s.withSession(s.handleClearSearch))
	r.GET("/api/places/details", s.withSession(s.handleDetails))
	r.GET("/api/places/prices", s.withSession(s.handlePrices))
	r.GET("/api/places/photo", s.handlePhoto)
	r.GET("/api/quota", s.handleQuota)
	r.GET("/api/currency/convert", s.handleConvert)

	r.GET("/api/pins", s.withSession(s.handleListPins))
	r.POST("/api/pins", s.withSession(s.handleAddPin))
	r.DELETE("/api/pins", s.withSession(s.handleClearPins))
	r.PATCH("/api/pins/:id", s.withSession(s.handleUpdatePin))
	r.DELETE("/api/pins/:id", s.withSession(s.handleRemovePin))
	r.POST("/api/pins/:id/toggle", s.withSession(s.handleTogglePin))
	r.DELETE("/api/selection", s.withSession(s.handleClearSelection))
	r.DELETE("/api/station-pins", s.withSession(s.handleCleanupStations))
	r.GET("/api/route", s.withSession(s.handleRoute))

	r.GET("/api/trips", s.withSession(s.handleListTrips))
	r.POST("/api/trips", s.withSession(s.handleCreateTrip))
	r.DELETE("/api/trips", s.withSession(s.handleResetTrips))
	r.POST("/api/trips/:id/activate", s.withSession(s.handleSwitchTrip))
	r.POST("/api/trips/:id/duplicate", s.withSession(s.handleDuplicateTrip))
	r.DELETE("/api/trips/:id", s.withSession(s.handleDeleteTrip))

	r.GET("/api/itinerary", s.withSession(s.handleActiveTrip))
	r.PATCH("/api/itinerary", s.withSession(s.handleUpdateTrip))
	r.POST("/api/itinerary/days/:day/locations", s.withSession(s.handleAddLocation))
	r.PATCH("/api/itinerary/days/:day/locations/:loc", s.withSession(s.handleUpdateLocation))
	r.DELETE("/api/itinerary/days/:day/locations/:loc", s.withSession(s.handleRemoveLocation))
	r.POST("/api/itinerary/stays", s.withSession(s.handleAddStay))
	r.PUT("/api/itinerary/days/:day/notes", s.withSession(s.handleDayNotes))
	r.POST("/api/itinerary/days/:day/expenses", s.withSession(s.handleAddExpense))
	r.PATCH("/api/itinerary/days/:day/expenses/:exp", s.withSession(s.handleUpdateExpense))
	r.DELETE("/api/itinerary/days/:day/expenses/:exp", s.withSession(s.handleRemoveExpense))
	r.GET("/api/itinerary/budget", s.withSession(s.handleBudget))

	r.DELETE("/api/reset", s.withSession(s.handleReset))
	r.GET("/api/map/markers", s.withSession(s.handleMarkers))
	r.GET("/api/map/static.png", s.withSession(s.handleStaticMap))
	r.GET("/api/events", s.withSession(s.handleEvents))
}

// Handler is the service with CORS applied for the browser client.
func (s *Service) Handler() http.Handler {
	origins := s.origins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", query.SessionHeader},
	}).Handler(s.router)
}

func (s *Service) ListenAndServe(addr string, wrap func(http.Handler) http.Handler) error {
	handler := s.Handler()
	if wrap != nil {
		handler = wrap(handler)
	}
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return server.ListenAndServe()
}

func (s *Service) handleHeartbeat(rw http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	_, _ = rw.Write([]byte("japan-planner"))
}

type sessionHandle func(rw http.ResponseWriter, r *http.Request, ps httprouter.Params, sess *Session)

// withSession resolves the caller's session before running h.
func (s *Service) withSession(h sessionHandle) httprouter.Handle {
	return func(rw http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		ctx := query.ContextWith(r.Context(), r)
		r = r.WithContext(ctx)
		sess, err := s.sessions.Get(ctx, query.SessionFromContext(ctx))
		if err != nil {
			respondError(rw, http.StatusBadRequest, err.Error())
			return
		}
		beeline.AddField(ctx, "session_id", sess.ID)
		h(rw, r, ps, sess)
	}
}

func respondJSON(rw http.ResponseWriter, status int, v any) {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(status)
	if err := json.NewEncoder(rw).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func respondError(rw http.ResponseWriter, status int, msg string) {
	respondJSON(rw, status, map[string]string{"error": msg})
}

func respondNotFound(rw http.ResponseWriter, what string) {
	respondError(rw, http.StatusNotFound, what+" not found")
}

// decodeBody reads a JSON request body into v. An empty body leaves v alone.
func decodeBody(r *http.Request, v any) error {
	err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %v", itinerary.ErrInvalidInput, err)
	}
	return nil
}

// statusFor maps an error from the stores and collaborators onto a status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, itinerary.ErrInvalidDate),
		errors.Is(err, itinerary.ErrInvalidRange),
		errors.Is(err, itinerary.ErrInvalidInput),
		errors.Is(err, places.ErrNoQuery),
		errors.Is(err, pins.ErrInvalidPin),
		errors.Is(err, stations.ErrInvalidStationID),
		errors.Is(err, directions.ErrUnknownMode),
		errors.Is(err, currencies.ErrUnknownCurrency),
		errors.Is(err, currencies.ErrNoRate):
		return http.StatusBadRequest
	case errors.Is(err, pins.ErrDuplicatePin),
		errors.Is(err, pins.ErrNeedTwoPins),
		errors.Is(err, places.ErrSuperseded):
		return http.StatusConflict
	case errors.Is(err, quota.ErrQuotaExhausted):
		return http.StatusTooManyRequests
	}
	return http.StatusBadGateway
}

func respondErr(rw http.ResponseWriter, err error) {
	respondError(rw, statusFor(err), err.Error())
}
