// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"math"
	"net"
	"net/http"
	"strconv"

	"github.com/MKhiriev/treasured-fragrances/internal/logger"
)

const msgTooManyRequests = "Too many requests, please try again later."

var errRateLimited = errors.New("rate limit exceeded")

// withRateLimit applies the fixed-window limit per client address. When
// the limiter itself fails the request is let through.
func (h *Handler) withRateLimit(next http.Handler) http.Handler {
	if h.limiter == nil {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		decision, err := h.limiter.Allow(r.Context(), clientAddress(r))
		if err != nil {
			logger.FromRequest(r).Err(err).Msg("rate limiter unavailable, request allowed")
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))

		if !decision.Allowed {
			seconds := int(math.Ceil(decision.RetryAfter.Seconds()))
			w.Header().Set("Retry-After", strconv.Itoa(max(seconds, 1)))
			writeErrorMessage(w, r, errRateLimited, http.StatusTooManyRequests, msgTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientAddress returns the host part of RemoteAddr. Forwarded headers only
// reach it when the server trusts its proxy and RealIP is installed.
func clientAddress(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
