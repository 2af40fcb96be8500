// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"
)

const msgRouteNotFound = "Route not found"

var errRouteNotFound = errors.New("route not found")

// routeNotFound answers unknown paths with the JSON error envelope. It is
// also registered as the MethodNotAllowed handler, so a known path called
// with an unsupported method looks exactly like an unknown path.
func routeNotFound(w http.ResponseWriter, r *http.Request) {
	writeErrorMessage(w, r, errRouteNotFound, http.StatusNotFound, msgRouteNotFound)
}
