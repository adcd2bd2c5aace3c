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
	"net/url"
	"regexp"

	"golang.org/x/exp/slices"
)

// API keys, session ids and anything locating the user.
var sensitiveQueryParams = []string{
	"key", "session", "location", "origin", "destination", "center", "markers",
}
var exchangeRatePathRegex = regexp.MustCompile(`^/v6/[^/]+/latest/(.+)$`)

func redactQuery(query string) string {
	values, err := url.ParseQuery(query)
	if err != nil {
		return "[parse error redacted for safety]"
	}
	newValues := url.Values{}
	for k, v := range values {
		if slices.Contains(sensitiveQueryParams, k) {
			newValues[k] = []string{"redacted"}
		} else {
			newValues[k] = v
		}
	}
	return newValues.Encode()
}

func cleanPath(path string) string {
	// The exchange-rate API takes its key in the path.
	if m := exchangeRatePathRegex.FindStringSubmatch(path); m != nil {
		return "/v6/[key]/latest/" + m[1]
	}
	return path
}

func cleanUrl(u string) string {
	parsedUrl, err := url.Parse(u)
	if err != nil {
		return "[parse error redacted for safety]"
	}
	parsedUrl.Path = cleanPath(parsedUrl.Path)
	parsedUrl.RawPath = ""
	parsedUrl.RawQuery = redactQuery(parsedUrl.RawQuery)
	return parsedUrl.String()
}

func CleanHoneycomb(data map[string]interface{}) {
	// Requests carry API keys, session ids and where people are going.
	if query, ok := data["request.query"]; ok {
		if queryStr, ok := query.(string); ok {
			data["request.query"] = redactQuery(queryStr)
		}
	}
	if path, ok := data["request.path"]; ok {
		if pathStr, ok := path.(string); ok {
			data["request.path"] = cleanPath(pathStr)
		}
	}
	if u, ok := data["request.url"]; ok {
		if urlStr, ok := u.(string); ok {
			data["request.url"] = cleanUrl(urlStr)
		}
	}
	if _, ok := data["app.session_id"]; ok {
		data["app.session_id"] = "redacted"
	}
}
