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

package itinerary

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

// ParseDate reads a YYYY-MM-DD calendar date. The components are taken as
// written; no clock or time zone is involved, so a date can never shift by a day.
// Unpadded months and days ("2024-4-9") are accepted.
func ParseDate(s string) (civil.Date, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 3 {
		return civil.Date{}, fmt.Errorf("%w: %q is not YYYY-MM-DD", ErrInvalidDate, s)
	}
	var n [3]int
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return civil.Date{}, fmt.Errorf("%w: %q is not YYYY-MM-DD", ErrInvalidDate, s)
		}
		n[i] = v
	}
	d := civil.Date{Year: n[0], Month: time.Month(n[1]), Day: n[2]}
	if !d.IsValid() {
		return civil.Date{}, fmt.Errorf("%w: %q does not exist", ErrInvalidDate, s)
	}
	return d, nil
}

// InclusiveDays counts the calendar dates in [start, end].
func InclusiveDays(start, end civil.Date) int {
	if end.Before(start) {
		return 0
	}
	return end.DaysSince(start) + 1
}

func within(d, start, end civil.Date) bool {
	return !d.Before(start) && !d.After(end)
}
