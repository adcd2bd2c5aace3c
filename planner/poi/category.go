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

package poi

import (
	"golang.org/x/exp/slices"
)

// Category is one of the six budget buckets.
type Category string

const (
	Accommodation  Category = "accommodation"
	Food           Category = "food"
	Activities     Category = "activities"
	Transportation Category = "transportation"
	Shopping       Category = "shopping"
	Other          Category = "other"
)

var Categories = []Category{Accommodation, Food, Activities, Transportation, Shopping, Other}

func (c Category) Valid() bool {
	return slices.Contains(Categories, c)
}

var (
	accommodationTypes  = []string{"lodging", "hotel", "guest_house"}
	foodTypes           = []string{"restaurant", "cafe", "food", "bakery", "meal_takeaway", "bar"}
	activityTypes       = []string{"tourist_attraction", "museum", "zoo", "aquarium", "amusement_park", "temple", "shrine", "park", "art_gallery"}
	transportationTypes = []string{"train_station", "subway_station", "bus_station", "transit_station", "airport"}
	shoppingTypes       = []string{"shopping_mall", "store", "shop", "market"}
)

// Classify maps a place's type list onto a budget category. This is the only
// place the type-to-category rule lives; budgeting, price lookups and grouping
// all go through it.
func Classify(types []string) Category {
	switch {
	case anyOf(types, accommodationTypes):
		return Accommodation
	case anyOf(types, foodTypes):
		return Food
	case anyOf(types, activityTypes):
		return Activities
	case anyOf(types, transportationTypes):
		return Transportation
	case anyOf(types, shoppingTypes):
		return Shopping
	}
	return Other
}

// Order matters: it decides which price source a mixed-type place is looked up
// under.
var primaryTypePriority = []string{
	"restaurant", "cafe", "bar", "food",
	"tourist_attraction", "museum", "temple",
	"lodging", "hotel",
	"shopping_mall", "store",
}

// PrimaryType picks the type used to key a price lookup: the first entry of the
// priority list present in types, else the first listed type, else "".
func PrimaryType(types []string) string {
	if len(types) == 0 {
		return ""
	}
	for _, t := range primaryTypePriority {
		if slices.Contains(types, t) {
			return t
		}
	}
	return types[0]
}

// EstimateBudget derives a default cost for p when it is scheduled under c.
func EstimateBudget(p PointOfInterest, c Category) float64 {
	if p.Price == nil {
		return 0
	}
	value := positive(p.Price.Value)
	switch {
	case c == Accommodation && value > 0:
		return value
	case c == Activities && positive(p.Price.EntranceFee) > 0:
		return *p.Price.EntranceFee
	case c == Food && value > 0:
		return value
	}
	return value
}

func IsAttractionType(t string) bool {
	return slices.Contains(activityTypes, t) || t == "gallery"
}

func IsFoodType(t string) bool {
	return slices.Contains(foodTypes, t)
}

func IsAccommodationType(t string) bool {
	return slices.Contains(accommodationTypes, t)
}

func anyOf(types, set []string) bool {
	for _, t := range types {
		if slices.Contains(set, t) {
			return true
		}
	}
	return false
}

func positive(f *float64) float64 {
	if f == nil || *f < 0 {
		return 0
	}
	return *f
}
