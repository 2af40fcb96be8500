// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ForgotPasswordRequest is the body of POST /api/auth/forgot-password.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// VerifyCodeRequest is the body of POST /api/auth/verify-code.
type VerifyCodeRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// ResetPasswordRequest is the body of POST /api/auth/reset-password.
type ResetPasswordRequest struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"newPassword"`
}

// AddToCartRequest is the body of POST /api/cart/add.
// A nil Quantity means one unit.
type AddToCartRequest struct {
	ProductID string `json:"productId"`
	Quantity  *int   `json:"quantity,omitempty"`
}

// Units returns the requested quantity, defaulting to one.
func (r AddToCartRequest) Units() int {
	if r.Quantity == nil {
		return 1
	}
	return *r.Quantity
}

// UpdateQuantityRequest is the body of PUT /api/cart/update/{productId}.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// DeleteImageRequest is the body of POST /api/upload/delete.
type DeleteImageRequest struct {
	Key string `json:"key"`
}

// PresignUploadRequest is the body of POST /api/upload/presign.
type PresignUploadRequest struct {
	ContentType string `json:"contentType"`
}

// NewIdentity describes an account created out of band by the
// provisioning command.
type NewIdentity struct {
	Email    string
	Name     string
	Password string
	Role     Role
}
