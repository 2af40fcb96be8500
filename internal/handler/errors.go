// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import "errors"

var errEmptyHTTPAddress = errors.New("handler: server http address is empty")
