// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the REST transport of the storefront.
//
// It wires the chi router, the request handlers and the middleware chain:
// trace ids, access logging, CORS, rate limiting, compression, the bearer
// token gate and role gating. Handlers decode JSON, call the service layer
// and translate service errors into the {"error": "..."} envelope.
package http
