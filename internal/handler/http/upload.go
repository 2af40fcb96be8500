// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/treasured-fragrances/internal/logger"
	"github.com/MKhiriev/treasured-fragrances/internal/utils"
	"github.com/MKhiriev/treasured-fragrances/models"
)

const msgImageDeleted = "Image deleted successfully"

func (h *Handler) presignUpload(w http.ResponseWriter, r *http.Request) {
	var req models.PresignUploadRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	upload, err := h.services.ImageService.PresignUpload(r.Context(), req.ContentType)
	if err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().Str("key", upload.Key).Msg("upload presigned")
	utils.WriteJSON(w, upload, http.StatusOK)
}

func (h *Handler) deleteImage(w http.ResponseWriter, r *http.Request) {
	var req models.DeleteImageRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.services.ImageService.DeleteImage(r.Context(), req.Key); err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: msgImageDeleted}, http.StatusOK)
}
