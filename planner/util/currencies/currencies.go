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

// Package currencies converts amounts between currencies, using live rates when
// an exchange-rate API key is configured and a fixed table otherwise.
package currencies

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/honeycombio/beeline-go"
	"github.com/redis/go-redis/v9"
	"golang.org/x/text/currency"

	"github.com/tabi-planner/japan-planner/planner/config"
	"github.com/tabi-planner/japan-planner/planner/util/storage"
)

const defaultBaseURL = "https://v6.exchangerate-api.com/v6/"

type CurrencyExchangeData struct {
	Result             string             `json:"result"`
	ErrorType          string             `json:"error-type,omitempty"`
	TimeLastUpdateUnix int                `json:"time_last_update_unix"`
	TimeNextUpdateUnix int                `json:"time_next_update_unix"`
	BaseCode           string             `json:"base_code"`
	ConversionRates    map[string]float64 `json:"conversion_rates"`
}

var sharedCurrencyDataManager *DataManager
var sharedCurrencyDataManagerOnce sync.Once

func GetCurrencyDataManager() *DataManager {
	sharedCurrencyDataManagerOnce.Do(func() {
		sharedCurrencyDataManager = NewDataManager(storage.GetRedis(), config.GetConfig().ExchangeRateApiKey)
	})
	return sharedCurrencyDataManager
}

// DataManager fetches exchange rates and caches them in Redis until the
// upstream says they will next change. With no API key, or no Redis client, it
// works from the built-in rate table alone.
type DataManager struct {
	redisClient *redis.Client
	apiKey      string
	baseURL     string
	httpClient  *http.Client
}

func NewDataManager(redisClient *redis.Client, apiKey string) *DataManager {
	return &DataManager{
		redisClient: redisClient,
		apiKey:      apiKey,
		baseURL:     defaultBaseURL,
		httpClient:  http.DefaultClient,
	}
}

var ErrUnknownCurrency = errors.New("unknown currency code")
var ErrQuotaExceeded = errors.New("quota exceeded")
var ErrNoRate = errors.New("conversion rate not available")

// IsValidCurrency reports whether code is a known ISO 4217 currency.
func IsValidCurrency(code string) bool {
	if len(code) != 3 || strings.ToUpper(code) != code {
		return false
	}
	_, err := currency.ParseISO(code)
	return err == nil
}

func (dm *DataManager) GetExchangeData(ctx context.Context, from string) (*CurrencyExchangeData, error) {
	ctx, span := beeline.StartSpan(ctx, "get_exchange_data")
	defer span.Send()
	if !IsValidCurrency(from) {
		return nil, fmt.Errorf("%w %q", ErrUnknownCurrency, from)
	}
	data, err := dm.loadCachedData(ctx, from)
	if err != nil {
		return nil, fmt.Errorf("couldn't load cached data: %w", err)
	}
	if data != nil {
		return data, nil
	}
	data, err = dm.fetchExchangeRateData(ctx, from)
	if err != nil {
		span.AddField("error", err)
		return nil, fmt.Errorf("couldn't fetch exchange rate data: %w", err)
	}
	if err := dm.cacheData(ctx, from, data); err != nil {
		return nil, fmt.Errorf("error caching exchange rate data: %w", err)
	}
	return data, nil
}

func (dm *DataManager) fetchExchangeRateData(ctx context.Context, from string) (*CurrencyExchangeData, error) {
	ctx, span := beeline.StartSpan(ctx, "fetch_exchange_rate_data")
	defer span.Send()
	escaped := url.QueryEscape(from)
	request, err := http.NewRequestWithContext(ctx, "GET", dm.baseURL+dm.apiKey+"/latest/"+escaped, nil)
	if err != nil {
		return nil, err
	}
	resp, err := dm.httpClient.Do(request)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	var data CurrencyExchangeData
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, err
	}
	if data.Result != "success" {
		if data.Result != "error" {
			return nil, fmt.Errorf("unexpected result %q", data.Result)
		}
		switch data.ErrorType {
		case "unsupported-code":
			return nil, ErrUnknownCurrency
		case "quota-reached":
			return nil, ErrQuotaExceeded
		default:
			return nil, fmt.Errorf("error fetching currency data: %s", data.ErrorType)
		}
	}
	return &data, nil
}

func (dm *DataManager) cacheData(ctx context.Context, currency string, data *CurrencyExchangeData) error {
	if dm.redisClient == nil {
		return nil
	}
	ctx, span := beeline.StartSpan(ctx, "cache_data")
	defer span.Send()
	encoded, err := json.Marshal(data)
	if err != nil {
		return err
	}
	expirationTime := time.Unix(int64(data.TimeNextUpdateUnix+5), 0)
	ttl := time.Until(expirationTime)
	if ttl <= 0 {
		ttl = time.Hour
	}
	if err := dm.redisClient.Set(ctx, keyFromCurrency(currency), encoded, ttl).Err(); err != nil {
		return err
	}
	return nil
}

func (dm *DataManager) loadCachedData(ctx context.Context, currency string) (*CurrencyExchangeData, error) {
	if dm.redisClient == nil {
		return nil, nil
	}
	ctx, span := beeline.StartSpan(ctx, "load_cached_data")
	defer span.Send()
	data, err := dm.redisClient.Get(ctx, keyFromCurrency(currency)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var decoded CurrencyExchangeData
	if err := json.Unmarshal([]byte(data), &decoded); err != nil {
		return nil, err
	}
	return &decoded, nil
}

func keyFromCurrency(from string) string {
	return "currency:" + from
}

type Money struct {
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	Formatted string  `json:"formatted,omitempty"`
}

type Conversion struct {
	Original  Money   `json:"original"`
	Converted Money   `json:"converted"`
	Rate      float64 `json:"rate"`
	Source    string  `json:"source"`
}

// Convert turns amount of from into to. Live rates are used when available;
// any failure to get them falls back to the built-in table, which only knows
// yen and a handful of currencies travellers to Japan carry.
func (dm *DataManager) Convert(ctx context.Context, amount float64, from, to string) (*Conversion, error) {
	ctx, span := beeline.StartSpan(ctx, "convert_currency")
	defer span.Send()
	if !IsValidCurrency(from) {
		return nil, fmt.Errorf("%w %q", ErrUnknownCurrency, from)
	}
	if !IsValidCurrency(to) {
		return nil, fmt.Errorf("%w %q", ErrUnknownCurrency, to)
	}

	rate, source, ok := 0.0, "", false
	if from == to {
		rate, source, ok = 1, "identity", true
	}
	if !ok && dm.apiKey != "" {
		data, err := dm.GetExchangeData(ctx, from)
		if err != nil {
			log.Printf("error getting currency data for %s/%s, using fallback rates: %v", from, to, err)
		} else if r, found := data.ConversionRates[to]; found {
			rate, source, ok = r, "exchangerate-api", true
		}
	}
	if !ok {
		if rate, ok = fallbackRate(from, to); ok {
			source = "fallback"
		}
	}
	if !ok {
		span.AddField("error", ErrNoRate)
		return nil, fmt.Errorf("%w for %s to %s", ErrNoRate, from, to)
	}
	converted := amount * rate
	return &Conversion{
		Original:  Money{Amount: amount, Currency: from},
		Converted: Money{Amount: converted, Currency: to, Formatted: Format(converted, to)},
		Rate:      rate,
		Source:    source,
	}, nil
}
