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

package query

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextWith(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/places/search?location=34.7,135.5&currency=cad&session=from-query", nil)
	r.Header.Set(SessionHeader, "from-header")
	ctx := ContextWith(context.Background(), r)
	assert.Equal(t, "from-header", SessionFromContext(ctx))
	require.NotNil(t, LocationFromContext(ctx))
	assert.Equal(t, 135.5, LocationFromContext(ctx).Lng)
	assert.Equal(t, "CAD", DisplayCurrencyFromContext(ctx))

	r = httptest.NewRequest("GET", "/api/pins?session=from-query", nil)
	ctx = ContextWith(context.Background(), r)
	assert.Equal(t, "from-query", SessionFromContext(ctx))
	assert.Nil(t, LocationFromContext(ctx))
}

func TestEmptyContext(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, SessionFromContext(ctx))
	assert.Nil(t, LocationFromContext(ctx))
}

func TestParseLocation(t *testing.T) {
	assert.Nil(t, ParseLocation(""))
	assert.Nil(t, ParseLocation("1,2,3"))
	assert.Nil(t, ParseLocation("north,south"))
	assert.Nil(t, ParseLocation("95,10"))
	assert.Equal(t, 35.0, ParseLocation("35, 139.7").Lat)
}
