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

package places

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabi-planner/japan-planner/planner/poi"
)

func TestEstimateByName(t *testing.T) {
	tests := []struct {
		name     string
		fee      *float64
		meal     *float64
		room     *float64
		rangeMax float64
	}{
		{name: "Universal Studios Japan", fee: poi.Float(8600)},
		{name: "Tokyo DisneySea", fee: poi.Float(9400)},
		{name: "Tokyo Disneyland", fee: poi.Float(9400)},
		{name: "Fushimi Inari Taisha", fee: poi.Float(0)},
		{name: "Kinkaku-ji (Golden Pavilion)", fee: poi.Float(500)},
		{name: "Senso-ji Temple", fee: poi.Float(0)},
		{name: "teamLab Planets", fee: poi.Float(3200)},
		{name: "Ginza Six", meal: poi.Float(3000)},
		{name: "Park Hyatt Tokyo", room: poi.Float(60000), rangeMax: 120000},
		{name: "Hoshinoya Ryokan", room: poi.Float(25000), rangeMax: 40000},
		{name: "Sushi Dai", meal: poi.Float(4000), rangeMax: 20000},
		{name: "Ichiran Ramen", meal: poi.Float(1000)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Estimate("", nil, tt.name)
			assert.Equal(t, tt.fee, e.EntranceFee)
			assert.Equal(t, tt.meal, e.AverageMealCost)
			assert.Equal(t, tt.room, e.RoomRate)
			if tt.rangeMax > 0 {
				require.NotNil(t, e.PriceRange)
				assert.Equal(t, tt.rangeMax, *e.PriceRange.Max)
			}
			assert.Equal(t, "JPY", e.Currency)
			assert.Equal(t, "Estimated", e.Source)
			assert.NotEmpty(t, e.Description)
		})
	}
}

func TestEstimateByType(t *testing.T) {
	assert.Equal(t, 1000.0, *Estimate("museum", []string{"museum"}, "").EntranceFee)
	assert.Equal(t, 8000.0, *Estimate("", []string{"amusement_park"}, "Fun Land").EntranceFee)
	assert.Equal(t, 500.0, *Estimate("", []string{"shrine", "place_of_worship"}, "").EntranceFee)
	assert.Equal(t, 2400.0, *Estimate("", []string{"aquarium"}, "").EntranceFee)
	assert.Equal(t, 1500.0, *Estimate("tourist_attraction", nil, "").EntranceFee)
	assert.Equal(t, 800.0, *Estimate("cafe", []string{"cafe"}, "").AverageMealCost)
	assert.Equal(t, 3000.0, *Estimate("bar", []string{"bar"}, "").AverageMealCost)
	assert.Equal(t, 2000.0, *Estimate("restaurant", nil, "").AverageMealCost)
	assert.Equal(t, 15000.0, *Estimate("lodging", nil, "").RoomRate)

	none := Estimate("store", []string{"store"}, "Uniqlo")
	assert.False(t, none.known())
}

func TestMergePricePrecedence(t *testing.T) {
	p := place("p", "P")
	p.Price = &poi.Price{
		Level:       poi.Int(3),
		Value:       poi.Float(5000),
		Currency:    "JPY",
		Description: "base",
		TicketInfo:  "tickets at the gate",
	}
	MergePrice(&p, &PriceEstimate{RoomRate: poi.Float(20000), Description: "estimate"})
	assert.Equal(t, 20000.0, *p.Price.Value)
	assert.Equal(t, "estimate", p.Price.Description)
	assert.Equal(t, 3, *p.Price.Level)
	assert.Equal(t, "tickets at the gate", p.Price.TicketInfo)
	assert.Equal(t, "JPY", p.Price.Currency)

	bare := place("q", "Q")
	MergePrice(&bare, &PriceEstimate{EntranceFee: poi.Float(0)})
	require.NotNil(t, bare.Price)
	assert.Equal(t, 0.0, *bare.Price.EntranceFee)
	assert.Nil(t, bare.Price.Value)

	MergePrice(&bare, nil)
	assert.Equal(t, 0.0, *bare.Price.EntranceFee)
}

func TestEstimatorPrefersDetails(t *testing.T) {
	backend := newFakeBackend()
	p := place("p1", "Some Ramen Shop")
	p.Types = []string{"restaurant"}
	p.Price = &poi.Price{Value: poi.Float(1350), Currency: "JPY", Description: "Bowl was 1350 yen"}
	backend.details["p1"] = &p
	e := NewEstimator(backend)

	got, err := e.Prices(context.Background(), "p1", "Some Ramen Shop", "restaurant")
	require.NoError(t, err)
	assert.Equal(t, 1350.0, *got.AverageMealCost)
	assert.Equal(t, "Google Places", got.Source)

	got, err = e.Prices(context.Background(), "unknown", "Some Ramen Shop", "restaurant")
	require.NoError(t, err)
	assert.Equal(t, 1000.0, *got.AverageMealCost)
	assert.Equal(t, "Estimated", got.Source)

	_, err = e.Prices(context.Background(), "", "", "")
	assert.ErrorIs(t, err, ErrNoQuery)
}
