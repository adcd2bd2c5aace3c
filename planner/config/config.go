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

package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenAddr         string
	GoogleMapsKey      string
	ExchangeRateApiKey string
	RedisURL           string
	HoneycombKey       string
	AllowedOrigins     []string

	// Outbound Google Places requests per second, shared by every session.
	PlacesQPS       float64
	DefaultCurrency string
	DisplayCurrency string

	// Places API credits per calendar month; one credit is $0.000000025.
	MonthlyQuota     int
	StationCacheMins int
	// Saved pins and trips are dropped after this many days without a write.
	SessionTTLDays   int
}

var c Config

func GetConfig() *Config {
	return &c
}

func init() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// Only log if the file exists but couldn't be loaded
		if !os.IsNotExist(err) {
			log.Printf("Error loading .env file: %v", err)
		}
	}

	c = Config{
		ListenAddr:         getenvDefault("LISTEN_ADDR", "0.0.0.0:8080"),
		GoogleMapsKey:      os.Getenv("GOOGLE_MAPS_KEY"),
		ExchangeRateApiKey: os.Getenv("EXCHANGE_RATE_API_KEY"),
		RedisURL:           os.Getenv("REDIS_URL"),
		HoneycombKey:       os.Getenv("HONEYCOMB_KEY"),
		AllowedOrigins:     splitList(getenvDefault("ALLOWED_ORIGINS", "*")),
		PlacesQPS:          getenvFloat("PLACES_QPS", 5),
		DefaultCurrency:    getenvDefault("DEFAULT_CURRENCY", "JPY"),
		DisplayCurrency:    getenvDefault("DISPLAY_CURRENCY", "CAD"),
		MonthlyQuota:       int(getenvFloat("PLACES_MONTHLY_QUOTA", 8_000_000_000)),
		StationCacheMins:   int(getenvFloat("STATION_CACHE_MINUTES", 720)),
		SessionTTLDays:     int(getenvFloat("SESSION_TTL_DAYS", 180)),
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("Ignoring %s=%q: %v", key, v, err)
		return def
	}
	return f
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
