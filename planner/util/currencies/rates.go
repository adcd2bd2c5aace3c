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

// fallbackRates holds rates for when no live data can be had.
var fallbackRates = map[string]map[string]float64{
	"JPY": {"CAD": 0.00967, "USD": 0.0067, "EUR": 0.0062, "GBP": 0.0053},
	"CAD": {"JPY": 103.43, "USD": 0.74, "EUR": 0.68, "GBP": 0.58},
	"USD": {"JPY": 149.25, "CAD": 1.35},
	"EUR": {"JPY": 161.29, "CAD": 1.47},
	"GBP": {"JPY": 188.68, "CAD": 1.72},
}

func fallbackRate(from, to string) (float64, bool) {
	rate, ok := fallbackRates[from][to]
	return rate, ok
}
