// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/treasured-fragrances/internal/utils"
	"github.com/MKhiriev/treasured-fragrances/models"
)

const msgDashboard = "Welcome to the admin dashboard"

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	stats, err := h.services.CatalogService.Stats(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.DashboardResponse{
		Message: msgDashboard,
		Admin:   identity,
		Catalog: stats,
	}, http.StatusOK)
}
