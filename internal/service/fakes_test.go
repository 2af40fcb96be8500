// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/MKhiriev/treasured-fragrances/internal/store"
	"github.com/MKhiriev/treasured-fragrances/models"
)

// memUserRepo is an in-memory store.UserRepository that follows the same
// predicates as the SQL implementation.
type memUserRepo struct {
	mu    sync.Mutex
	users map[string]models.User
}

func newMemUserRepo(users ...models.User) *memUserRepo {
	r := &memUserRepo{users: make(map[string]models.User)}
	for _, u := range users {
		u.Email = models.NormalizeEmail(u.Email)
		r.users[u.ID] = u
	}
	return r
}

func (r *memUserRepo) get(id string) models.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.users[id]
}

func (r *memUserRepo) CreateUser(_ context.Context, user models.User) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return models.User{}, store.ErrEmailAlreadyExists
		}
	}
	r.users[user.ID] = user
	return user, nil
}

func (r *memUserRepo) findBy(match func(models.User) bool) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if match(u) {
			return u, nil
		}
	}
	return models.User{}, store.ErrNoUserWasFound
}

func (r *memUserRepo) FindUserByEmail(_ context.Context, email string) (models.User, error) {
	return r.findBy(func(u models.User) bool { return u.Email == email })
}

func (r *memUserRepo) FindUserByEmailAndRoles(_ context.Context, email string, roles []models.Role) (models.User, error) {
	return r.findBy(func(u models.User) bool { return u.Email == email && slices.Contains(roles, u.Role) })
}

func (r *memUserRepo) FindUserByID(_ context.Context, userID string) (models.User, error) {
	return r.findBy(func(u models.User) bool { return u.ID == userID })
}

func (r *memUserRepo) SetResetCode(_ context.Context, userID, code string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return store.ErrNoUserWasFound
	}
	u.ResetCode, u.ResetCodeExpiresAt = &code, &expiresAt
	r.users[userID] = u
	return nil
}

func (r *memUserRepo) ClearResetCode(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return store.ErrNoUserWasFound
	}
	u.ResetCode, u.ResetCodeExpiresAt = nil, nil
	r.users[userID] = u
	return nil
}

func codeMatches(u models.User, email, code string, now time.Time) bool {
	return u.Email == email && u.ResetCode != nil && *u.ResetCode == code && u.HasActiveResetCode(now)
}

func (r *memUserRepo) MatchResetCode(_ context.Context, email, code string, now time.Time) (models.User, error) {
	u, err := r.findBy(func(u models.User) bool { return codeMatches(u, email, code, now) })
	if err != nil {
		return models.User{}, store.ErrResetCodeMismatch
	}
	return u, nil
}

func (r *memUserRepo) ConsumeResetCode(_ context.Context, email, code string, now time.Time, passwordHash string) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, u := range r.users {
		if codeMatches(u, email, code, now) {
			u.PasswordHash = passwordHash
			u.ResetCode, u.ResetCodeExpiresAt = nil, nil
			r.users[id] = u
			return u, nil
		}
	}
	return models.User{}, store.ErrResetCodeMismatch
}

func (r *memUserRepo) ClearExpiredResetCodes(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, u := range r.users {
		if u.ResetCodeExpiresAt != nil && !now.Before(*u.ResetCodeExpiresAt) {
			u.ResetCode, u.ResetCodeExpiresAt = nil, nil
			r.users[id] = u
			n++
		}
	}
	return n, nil
}

// memCartRepo is an in-memory store.CartRepository keyed by (user, product).
type memCartRepo struct {
	mu       sync.Mutex
	products map[string]models.Product
	lines    []models.CartLine
	nextID   int64
}

func newMemCartRepo(products ...models.Product) *memCartRepo {
	r := &memCartRepo{products: make(map[string]models.Product)}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *memCartRepo) ListCart(_ context.Context, userID string) (models.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cart := models.Cart{}
	for _, l := range r.lines {
		if l.UserID == userID {
			cart = append(cart, models.CartItem{Product: r.products[l.ProductID], Quantity: l.Quantity})
		}
	}
	return cart, nil
}

func (r *memCartRepo) AddLine(_ context.Context, userID, productID string, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[productID]; !ok {
		return store.ErrProductNotFound
	}
	for i, l := range r.lines {
		if l.UserID == userID && l.ProductID == productID {
			if l.Quantity+quantity > MaxLineQuantity {
				return store.ErrQuantityOutOfRange
			}
			r.lines[i].Quantity += quantity
			return nil
		}
	}
	r.nextID++
	r.lines = append(r.lines, models.CartLine{LineID: r.nextID, UserID: userID, ProductID: productID, Quantity: quantity})
	return nil
}

func (r *memCartRepo) SetLineQuantity(_ context.Context, userID, productID string, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, l := range r.lines {
		if l.UserID == userID && l.ProductID == productID {
			r.lines[i].Quantity = quantity
			return nil
		}
	}
	return store.ErrCartLineNotFound
}

func (r *memCartRepo) RemoveLine(_ context.Context, userID, productID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = slices.DeleteFunc(r.lines, func(l models.CartLine) bool {
		return l.UserID == userID && l.ProductID == productID
	})
	return nil
}

// captureNotifier records delivered messages and can be told to fail.
type captureNotifier struct {
	mu       sync.Mutex
	messages []models.Message
	err      error
}

func (n *captureNotifier) Deliver(_ context.Context, msg models.Message) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.messages = append(n.messages, msg)
	return nil
}

func (n *captureNotifier) last() models.Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.messages) == 0 {
		return models.Message{}
	}
	return n.messages[len(n.messages)-1]
}

// fakeClock is a settable clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}
