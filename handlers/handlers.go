// Package handlers contains the HTTP handlers for the Astoria API. Handlers
// are thin: decode, validate, delegate to repositories, encode.
package handlers

import (
	"net/http"
	"strconv"
)

// queryParamInt reads an integer query parameter, falling back to def when
// absent or unparsable
func queryParamInt(r *http.Request, name string, def int) int {
	value := r.URL.Query().Get(name)
	if value == "" {
		return def
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return n
}

// defaultListLimit bounds listing endpoints the same way the frontend pages
const defaultListLimit = 50
