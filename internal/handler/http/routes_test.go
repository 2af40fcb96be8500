// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/treasured-fragrances/internal/service"
	"github.com/MKhiriev/treasured-fragrances/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// routeCase describes a single expected route.
type routeCase struct {
	method string
	path   string
}

var protectedRoutes = []routeCase{
	{http.MethodGet, "/api/auth/profile"},
	{http.MethodGet, "/api/admin/dashboard"},
	{http.MethodGet, "/api/cart"},
	{http.MethodPost, "/api/cart/add"},
	{http.MethodPut, "/api/cart/update/some-product"},
	{http.MethodDelete, "/api/cart/some-product"},
	{http.MethodPost, "/api/products"},
	{http.MethodPut, "/api/products/some-product"},
	{http.MethodDelete, "/api/products/some-product"},
	{http.MethodPost, "/api/upload/presign"},
	{http.MethodPost, "/api/upload/delete"},
}

func TestInit_ProtectedRoutesRequireToken(t *testing.T) {
	h, _ := newTestHandler(t)

	for _, tc := range protectedRoutes {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rec := serve(t, h, tc.method, tc.path, "", nil)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, msgNoToken, decodeError(t, rec))
		})
	}
}

func TestInit_PublicPostRoutesReachHandlers(t *testing.T) {
	h, _ := newTestHandler(t)

	for _, path := range []string{
		"/api/auth/login",
		"/api/auth/forgot-password",
		"/api/auth/verify-code",
		"/api/auth/reset-password",
	} {
		t.Run(path, func(t *testing.T) {
			rec := serve(t, h, http.MethodPost, path, "", "not json")

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "Invalid JSON was passed", decodeError(t, rec))
		})
	}
}

func TestInit_PublicGetRoutes(t *testing.T) {
	h, ts := newTestHandler(t)
	ts.catalog.EXPECT().ListProducts(gomock.Any(), gomock.Any()).Return(nil, nil)
	ts.catalog.EXPECT().GetProduct(gomock.Any(), "abc").Return(models.Product{ID: "abc"}, nil)
	ts.catalog.EXPECT().GetProductByName(gomock.Any(), "Oud").Return(models.Product{Name: "Oud"}, nil)
	ts.appInfo.EXPECT().GetAppBuildInfo(gomock.Any()).Return(models.NewAppBuildInfo("", "", ""))

	for _, path := range []string{"/api/products", "/api/products/abc", "/api/products/name/Oud", "/api/version", "/healthz"} {
		t.Run(path, func(t *testing.T) {
			rec := serve(t, h, http.MethodGet, path, "", nil)
			assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		})
	}
}

func TestInit_UnknownRouteReturnsJSON404(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := serve(t, h, http.MethodGet, "/api/nonexistent", "", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, msgRouteNotFound, decodeError(t, rec))
}

func TestInit_WrongMethodLooksLikeUnknownRoute(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := serve(t, h, http.MethodGet, "/api/auth/login", "", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, msgRouteNotFound, decodeError(t, rec))
}

func TestInit_RecoversFromPanics(t *testing.T) {
	h, ts := newTestHandler(t)
	ts.appInfo.EXPECT().GetAppBuildInfo(gomock.Any()).DoAndReturn(func(context.Context) models.AppBuildInfo {
		panic("boom")
	})

	rec := serve(t, h, http.MethodGet, "/api/version", "", nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestInit_EchoesTraceID(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := serve(t, h, http.MethodGet, "/healthz", "", nil)

	assert.NotEmpty(t, rec.Header().Get(traceIDHeader))
}

func TestInit_CORSAllowList(t *testing.T) {
	h, _ := newTestHandler(t)
	router := h.Init()

	preflight := func(origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, "/api/auth/login", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	allowed := preflight(testOrigin)
	require.Equal(t, testOrigin, allowed.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", allowed.Header().Get("Access-Control-Allow-Credentials"))

	denied := preflight("https://evil.example")
	assert.Empty(t, denied.Header().Get("Access-Control-Allow-Origin"))
}

// Scenario A: self sign-up is refused without reaching storage.
func TestInit_RegisterAlwaysForbidden(t *testing.T) {
	h, ts := newTestHandler(t)
	ts.auth.EXPECT().Register(gomock.Any()).Return(service.ErrRegistrationDisabled)

	rec := serve(t, h, http.MethodPost, "/api/auth/register", "",
		map[string]string{"email": "x@y.com", "password": "secret123", "name": "X"})

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, msgRegistrationDisabled, decodeMessage(t, rec))
}

// Scenario B: a customer token never reaches the admin dashboard.
func TestInit_CustomerDeniedAdminDashboard(t *testing.T) {
	h, ts := newTestHandler(t)
	ts.expectTokens()

	rec := serve(t, h, http.MethodGet, "/api/admin/dashboard", customerToken, nil)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, msgNotAdmin, decodeError(t, rec))
}

func TestInit_AdminReachesDashboard(t *testing.T) {
	h, ts := newTestHandler(t)
	ts.expectTokens()
	stats := models.CatalogStats{TotalProducts: 3, InStockProducts: 2, ByCategory: map[string]int{"oud": 3}}
	ts.catalog.EXPECT().Stats(gomock.Any()).Return(stats, nil)

	rec := serve(t, h, http.MethodGet, "/api/admin/dashboard", adminToken, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"message": "Welcome to the admin dashboard",
		"admin": {"id": "`+adminIdentity.ID+`", "name": "Owner", "email": "owner@treasured.shop", "role": "admin"},
		"catalog": {"totalProducts": 3, "inStockProducts": 2, "byCategory": {"oud": 3}}
	}`, rec.Body.String())
}
