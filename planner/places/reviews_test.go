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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabi-planner/japan-planner/planner/poi"
)

func TestPriceLevelLabel(t *testing.T) {
	assert.Equal(t, "", PriceLevelLabel(nil))
	assert.Equal(t, "Free", PriceLevelLabel(poi.Int(0)))
	assert.Equal(t, "Moderate", PriceLevelLabel(poi.Int(2)))
	assert.Equal(t, "Very Expensive", PriceLevelLabel(poi.Int(4)))
	assert.Equal(t, "", PriceLevelLabel(poi.Int(5)))
}

func TestMinePriceAveragesAmounts(t *testing.T) {
	reviews := []string{
		"Great views. Tickets were 1200 yen for adults!",
		"Paid 800円 at the gate. Not cheap but worth it.",
		"We had 12 yen left and 250000 yen is not a price.",
	}
	price := minePrice(nil, []string{"park"}, reviews)
	require.NotNil(t, price.Value)
	assert.Equal(t, 1000.0, *price.Value)
	require.NotNil(t, price.Range)
	assert.Equal(t, 800.0, *price.Range.Min)
	assert.Equal(t, 1200.0, *price.Range.Max)
	assert.Equal(t, "Tickets were 1200 yen for adults", price.Description)
	assert.Equal(t, "Tickets were 1200 yen for adults", price.TicketInfo)
	assert.Equal(t, "Google Places", price.Source)
}

func TestMinePriceEntranceFee(t *testing.T) {
	reviews := []string{"The entrance fee is 600 yen and it is worth it."}
	price := minePrice(poi.Int(1), []string{"museum"}, reviews)
	require.NotNil(t, price.EntranceFee)
	assert.Equal(t, 600.0, *price.EntranceFee)
	assert.Equal(t, "Inexpensive", price.FormattedPrice)
	assert.Nil(t, price.Range)
}

func TestMinePriceRoomAndMeal(t *testing.T) {
	hotel := minePrice(nil, []string{"lodging"}, []string{
		"Our room cost 18000 yen per night, breakfast 2000 yen.",
		"One night was 22000円.",
	})
	assert.Equal(t, 20000.0, *hotel.Value)
	assert.Equal(t, 18000.0, *hotel.Range.Min)

	food := minePrice(nil, []string{"restaurant"}, []string{"The lunch set was 1500 yen."})
	assert.Equal(t, 1500.0, *food.Value)
}

func TestMinePriceWithoutReviews(t *testing.T) {
	price := minePrice(poi.Int(3), []string{"restaurant"}, nil)
	assert.Nil(t, price.Value)
	assert.Equal(t, "Expensive", price.FormattedPrice)
	assert.Equal(t, "JPY", price.Currency)
}

func TestMineInfo(t *testing.T) {
	assert.Nil(t, mineInfo([]string{"Lovely place"}))
	info := mineInfo([]string{
		"The paths are wheelchair accessible. Lovely.",
		"We spent about 2 hours here.",
	})
	require.NotNil(t, info)
	assert.Equal(t, "The paths are wheelchair accessible", info.Accessibility)
	assert.Equal(t, "2 hours", info.EstimatedDuration)

	info = mineInfo([]string{"It took 1 hour"})
	assert.Equal(t, "1 hour", info.EstimatedDuration)
}
