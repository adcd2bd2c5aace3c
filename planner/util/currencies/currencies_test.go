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

package currencies

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidCurrency(t *testing.T) {
	assert.True(t, IsValidCurrency("JPY"))
	assert.True(t, IsValidCurrency("CAD"))
	assert.False(t, IsValidCurrency("jpy"))
	assert.False(t, IsValidCurrency("XXXX"))
	assert.False(t, IsValidCurrency(""))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "¥15,000", Format(15000, "JPY"))
	assert.Equal(t, "¥1,235", Format(1234.5, "JPY"))
	assert.Equal(t, "C$145.05", Format(145.05, "CAD"))
	assert.Equal(t, "$10.00", Format(10, "USD"))
	assert.Equal(t, "€3.10", Format(3.1, "EUR"))
	assert.Equal(t, "£0.53", Format(0.53, "GBP"))
	assert.Equal(t, "12.30 AUD", Format(12.3, "AUD"))
}

func TestConvertFallback(t *testing.T) {
	dm := NewDataManager(nil, "")
	ctx := context.Background()

	c, err := dm.Convert(ctx, 15000, "JPY", "CAD")
	require.NoError(t, err)
	assert.InDelta(t, 145.05, c.Converted.Amount, 0.001)
	assert.Equal(t, "C$145.05", c.Converted.Formatted)
	assert.Equal(t, 0.00967, c.Rate)
	assert.Equal(t, "fallback", c.Source)

	c, err = dm.Convert(ctx, 100, "CAD", "JPY")
	require.NoError(t, err)
	assert.Equal(t, "¥10,343", c.Converted.Formatted)

	c, err = dm.Convert(ctx, 42, "JPY", "JPY")
	require.NoError(t, err)
	assert.Equal(t, 42.0, c.Converted.Amount)

	_, err = dm.Convert(ctx, 1, "USD", "EUR")
	assert.ErrorIs(t, err, ErrNoRate)
	_, err = dm.Convert(ctx, 1, "ZZZ", "JPY")
	assert.ErrorIs(t, err, ErrUnknownCurrency)
}

func TestConvertLive(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v6/secret/latest/USD", r.URL.Path)
		fmt.Fprint(w, `{"result":"success","base_code":"USD","conversion_rates":{"EUR":0.9,"JPY":150}}`)
	}))
	defer srv.Close()
	dm := NewDataManager(nil, "secret")
	dm.baseURL = srv.URL + "/v6/"

	c, err := dm.Convert(context.Background(), 10, "USD", "EUR")
	require.NoError(t, err)
	assert.Equal(t, 0.9, c.Rate)
	assert.Equal(t, "€9.00", c.Converted.Formatted)
	assert.Equal(t, "exchangerate-api", c.Source)
}

func TestConvertLiveFailureFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"result":"error","error-type":"quota-reached"}`)
	}))
	defer srv.Close()
	dm := NewDataManager(nil, "secret")
	dm.baseURL = srv.URL + "/v6/"

	c, err := dm.Convert(context.Background(), 1, "USD", "JPY")
	require.NoError(t, err)
	assert.Equal(t, 149.25, c.Rate)
	assert.Equal(t, "fallback", c.Source)
}
