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

package redact

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanHoneycomb(t *testing.T) {
	data := map[string]interface{}{
		"request.query":  "query=ramen&location=35.1,139.2&session=abc",
		"request.path":   "/v6/supersecret/latest/JPY",
		"request.url":    "https://maps.googleapis.com/maps/api/place/textsearch/json?key=AIza&query=ramen+japan",
		"app.session_id": "abc",
		"other":          "untouched",
	}
	CleanHoneycomb(data)
	assert.Equal(t, "location=redacted&query=ramen&session=redacted", data["request.query"])
	assert.Equal(t, "/v6/[key]/latest/JPY", data["request.path"])
	assert.Equal(t, "https://maps.googleapis.com/maps/api/place/textsearch/json?key=redacted&query=ramen+japan", data["request.url"])
	assert.Equal(t, "redacted", data["app.session_id"])
	assert.Equal(t, "untouched", data["other"])
}

func TestCleanHoneycombBadQuery(t *testing.T) {
	data := map[string]interface{}{"request.query": "%zz"}
	CleanHoneycomb(data)
	assert.Equal(t, "[parse error redacted for safety]", data["request.query"])
}
