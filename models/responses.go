// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// MessageResponse is the generic {"message": "..."} body.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// LoginResponse is returned by a successful login. The token is also set
// in the Authorization response header.
type LoginResponse struct {
	Message string   `json:"message"`
	User    Identity `json:"user"`
	Token   string   `json:"token"`
}

// ProfileResponse is returned by GET /api/auth/profile.
type ProfileResponse struct {
	Message string   `json:"message"`
	User    Identity `json:"user"`
}

// PresignedUpload is a short-lived direct upload target for a product image.
type PresignedUpload struct {
	Key       string `json:"key"`
	UploadURL string `json:"uploadUrl"`
	PublicURL string `json:"publicUrl,omitempty"`
}

// DashboardResponse is returned by GET /api/admin/dashboard.
type DashboardResponse struct {
	Message string       `json:"message"`
	Admin   Identity     `json:"admin"`
	Catalog CatalogStats `json:"catalog"`
}
