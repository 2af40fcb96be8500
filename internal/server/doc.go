// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server runs the HTTP listener of the storefront and shuts it down
// gracefully when the run context is cancelled.
package server
