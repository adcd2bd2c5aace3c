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

package main

import (
	"log"
	"net/http"
	"time"

	"github.com/honeycombio/beeline-go"
	"github.com/honeycombio/beeline-go/wrappers/hnynethttp"
	gmaps "googlemaps.github.io/maps"

	"github.com/tabi-planner/japan-planner/planner"
	"github.com/tabi-planner/japan-planner/planner/config"
	"github.com/tabi-planner/japan-planner/planner/persistence"
	"github.com/tabi-planner/japan-planner/planner/places"
	"github.com/tabi-planner/japan-planner/planner/quota"
	"github.com/tabi-planner/japan-planner/planner/util/currencies"
	"github.com/tabi-planner/japan-planner/planner/util/redact"
	"github.com/tabi-planner/japan-planner/planner/util/storage"
)

func main() {
	cfg := config.GetConfig()
	beeline.Init(beeline.Config{
		WriteKey:    cfg.HoneycombKey,
		Dataset:     "japan-planner",
		ServiceName: "planner",
		PresendHook: redact.CleanHoneycomb,
	})
	defer beeline.Close()
	http.DefaultTransport = hnynethttp.WrapRoundTripper(http.DefaultTransport)

	maps, err := gmaps.NewClient(gmaps.WithAPIKey(cfg.GoogleMapsKey))
	if err != nil {
		log.Fatalf("Failed to create maps client: %v", err)
	}
	r := storage.GetRedis()
	tracker := quota.NewTracker(r, "places", cfg.MonthlyQuota)
	backend, err := places.NewGoogleBackend(maps, cfg.PlacesQPS, tracker)
	if err != nil {
		log.Fatalf("Failed to create places backend: %v", err)
	}

	service := planner.NewService(planner.Options{
		Store:           persistence.NewRedisStore(r, time.Duration(cfg.SessionTTLDays)*24*time.Hour),
		Backend:         backend,
		Prices:          places.NewEstimator(backend),
		Maps:            maps,
		Quota:           tracker,
		Currencies:      currencies.GetCurrencyDataManager(),
		AllowedOrigins:  cfg.AllowedOrigins,
		DefaultCurrency: cfg.DefaultCurrency,
		DisplayCurrency: cfg.DisplayCurrency,
		StationTTL:      time.Duration(cfg.StationCacheMins) * time.Minute,
	})
	log.Printf("Listening on %s.", cfg.ListenAddr)
	log.Fatal(service.ListenAndServe(cfg.ListenAddr, func(h http.Handler) http.Handler {
		return hnynethttp.WrapHandler(h)
	}))
}
