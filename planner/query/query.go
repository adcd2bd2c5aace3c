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
	"net/http"
	"strconv"
	"strings"

	"github.com/tabi-planner/japan-planner/planner/poi"
)

const SessionHeader = "X-Session-Id"

type queryContext struct {
	sessionID       string
	location        *poi.Position
	displayCurrency string
}

type qckt int

var queryContextKey qckt

// ParseLocation reads "lat,lng". It returns nil for anything else.
func ParseLocation(s string) *poi.Position {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return nil
	}
	lat, latErr := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lng, lngErr := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if latErr != nil || lngErr != nil || lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return nil
	}
	return &poi.Position{Lat: lat, Lng: lng}
}

// ContextWith records what the request says about who is asking and where.
// The session comes from the X-Session-Id header, or failing that the session
// query parameter.
func ContextWith(ctx context.Context, r *http.Request) context.Context {
	q := r.URL.Query()
	session := r.Header.Get(SessionHeader)
	if session == "" {
		session = q.Get("session")
	}
	qc := queryContext{
		sessionID:       strings.TrimSpace(session),
		location:        ParseLocation(q.Get("location")),
		displayCurrency: strings.ToUpper(q.Get("currency")),
	}
	return context.WithValue(ctx, queryContextKey, qc)
}

func fromContext(ctx context.Context) queryContext {
	qc, _ := ctx.Value(queryContextKey).(queryContext)
	return qc
}

func SessionFromContext(ctx context.Context) string {
	return fromContext(ctx).sessionID
}

func LocationFromContext(ctx context.Context) *poi.Position {
	return fromContext(ctx).location
}

func DisplayCurrencyFromContext(ctx context.Context) string {
	return fromContext(ctx).displayCurrency
}
