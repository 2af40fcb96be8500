// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/treasured-fragrances/internal/logger"
	"github.com/MKhiriev/treasured-fragrances/internal/utils"
	"github.com/MKhiriev/treasured-fragrances/models"
	"github.com/go-resty/resty/v2"
)

type httpStorefrontClient struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPStorefrontClient builds a client for the server at address, which
// may omit the scheme ("localhost:8080"). Returns an error for an empty or
// unparsable address.
func NewHTTPStorefrontClient(address string, timeout time.Duration, logger *logger.Logger) (StorefrontClient, error) {
	baseURL, err := normalizeBaseURL(address)
	if err != nil {
		return nil, fmt.Errorf("invalid storefront address: %w", err)
	}

	return &httpStorefrontClient{
		client: utils.NewHTTPClient(baseURL, timeout),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpStorefrontClient) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpStorefrontClient) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Login prefers the token from the Authorization header and falls back to
// the one in the body.
func (h *httpStorefrontClient) Login(ctx context.Context, email, password string) (models.Identity, error) {
	var result models.LoginResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(models.LoginRequest{Email: email, Password: password}).
		SetResult(&result).
		Post("/api/auth/login")
	if err != nil {
		return models.Identity{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Identity{}, err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		token = result.Token
	}
	if token == "" {
		return models.Identity{}, fmt.Errorf("login parse bearer token: %w", utils.ErrInvalidAuthorizationHeader)
	}

	h.SetToken(token)
	logger.FromContext(ctx).Debug().Str("user_id", result.User.ID).Msg("logged in")
	return result.User, nil
}

func (h *httpStorefrontClient) Profile(ctx context.Context) (models.Identity, error) {
	var result models.ProfileResponse

	resp, err := h.authedRequest(ctx).SetResult(&result).Get("/api/auth/profile")
	if err != nil {
		return models.Identity{}, fmt.Errorf("profile request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Identity{}, err
	}

	return result.User, nil
}

func (h *httpStorefrontClient) ForgotPassword(ctx context.Context, email string) (string, error) {
	return h.postMessage(ctx, "/api/auth/forgot-password", models.ForgotPasswordRequest{Email: email})
}

func (h *httpStorefrontClient) VerifyCode(ctx context.Context, email, code string) (string, error) {
	return h.postMessage(ctx, "/api/auth/verify-code", models.VerifyCodeRequest{Email: email, Code: code})
}

func (h *httpStorefrontClient) ResetPassword(ctx context.Context, email, code, newPassword string) (string, error) {
	return h.postMessage(ctx, "/api/auth/reset-password", models.ResetPasswordRequest{
		Email:       email,
		Code:        code,
		NewPassword: newPassword,
	})
}

func (h *httpStorefrontClient) ListProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	var products []models.Product

	resp, err := h.client.R().
		SetContext(ctx).
		SetQueryParamsFromValues(filterQuery(filter)).
		SetResult(&products).
		Get("/api/products")
	if err != nil {
		return nil, fmt.Errorf("list products request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return products, nil
}

func (h *httpStorefrontClient) GetProduct(ctx context.Context, productID string) (models.Product, error) {
	var product models.Product

	resp, err := h.client.R().
		SetContext(ctx).
		SetPathParam("id", productID).
		SetResult(&product).
		Get("/api/products/{id}")
	if err != nil {
		return models.Product{}, fmt.Errorf("get product request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Product{}, err
	}

	return product, nil
}

func (h *httpStorefrontClient) GetCart(ctx context.Context) (models.Cart, error) {
	return h.cartRequest(h.authedRequest(ctx), http.MethodGet, "/api/cart")
}

func (h *httpStorefrontClient) AddToCart(ctx context.Context, productID string, quantity *int) (models.Cart, error) {
	req := h.authedRequest(ctx).SetBody(models.AddToCartRequest{ProductID: productID, Quantity: quantity})
	return h.cartRequest(req, http.MethodPost, "/api/cart/add")
}

func (h *httpStorefrontClient) UpdateQuantity(ctx context.Context, productID string, quantity int) (models.Cart, error) {
	req := h.authedRequest(ctx).
		SetPathParam("productId", productID).
		SetBody(models.UpdateQuantityRequest{Quantity: quantity})
	return h.cartRequest(req, http.MethodPut, "/api/cart/update/{productId}")
}

func (h *httpStorefrontClient) RemoveFromCart(ctx context.Context, productID string) (models.Cart, error) {
	req := h.authedRequest(ctx).SetPathParam("productId", productID)
	return h.cartRequest(req, http.MethodDelete, "/api/cart/{productId}")
}

func (h *httpStorefrontClient) Version(ctx context.Context) (models.AppBuildInfo, error) {
	var info models.AppBuildInfo

	resp, err := h.client.R().SetContext(ctx).SetResult(&info).Get("/api/version")
	if err != nil {
		return models.AppBuildInfo{}, fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AppBuildInfo{}, err
	}

	return info, nil
}

func (h *httpStorefrontClient) cartRequest(req *resty.Request, method, path string) (models.Cart, error) {
	var cart models.Cart

	resp, err := req.SetResult(&cart).Execute(method, path)
	if err != nil {
		return nil, fmt.Errorf("cart request %s %s: %w", method, path, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return cart, nil
}

func (h *httpStorefrontClient) postMessage(ctx context.Context, path string, body any) (string, error) {
	var result models.MessageResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&result).
		Post(path)
	if err != nil {
		return "", fmt.Errorf("request %s: %w", path, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return result.Message, nil
}

func (h *httpStorefrontClient) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetAuthToken(token)
	}
	return req
}

func filterQuery(filter models.ProductFilter) url.Values {
	query := url.Values{}
	if filter.Category != "" {
		query.Set("category", filter.Category)
	}
	if filter.Query != "" {
		query.Set("q", filter.Query)
	}
	if filter.InStock != nil {
		query.Set("inStock", strconv.FormatBool(*filter.InStock))
	}
	if filter.Limit > 0 {
		query.Set("limit", strconv.FormatUint(filter.Limit, 10))
	}
	if filter.Offset > 0 {
		query.Set("offset", strconv.FormatUint(filter.Offset, 10))
	}
	return query
}
