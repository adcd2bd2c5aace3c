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
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var symbols = map[string]string{
	"CAD": "C$",
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
}

var printer = message.NewPrinter(language.English)

// Format renders an amount for display: yen as a rounded, grouped whole number
// ("¥15,000"), the common travel currencies with their symbol and two decimals,
// and anything else as "12.30 XYZ".
func Format(amount float64, code string) string {
	if code == "JPY" {
		return "¥" + printer.Sprintf("%d", int64(math.Round(amount)))
	}
	if symbol, ok := symbols[code]; ok {
		return fmt.Sprintf("%s%.2f", symbol, amount)
	}
	return fmt.Sprintf("%.2f %s", amount, code)
}
