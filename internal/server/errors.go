// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

// errMissingHTTPHandler is returned by NewServer when there is nothing to
// serve or no address to listen on.
var errMissingHTTPHandler = errors.New("server: http handler or address is missing")
