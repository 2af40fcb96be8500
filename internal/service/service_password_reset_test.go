// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/MKhiriev/treasured-fragrances/internal/crypto"
	"github.com/MKhiriev/treasured-fragrances/internal/logger"
	"github.com/MKhiriev/treasured-fragrances/internal/mock"
	"github.com/MKhiriev/treasured-fragrances/internal/validators"
	"github.com/MKhiriev/treasured-fragrances/models"
	"github.com/alexedwards/argon2id"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	adminID    = "0190f5a2-0000-7000-8000-000000000001"
	customerID = "0190f5a2-0000-7000-8000-000000000002"
	adminEmail = "owner@treasured.shop"
)

var (
	cheapParams = &argon2id.Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}
	codeRe      = regexp.MustCompile(`\b\d{5}\b`)
	issuedAt    = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
)

type resetFixture struct {
	users    *memUserRepo
	notifier *captureNotifier
	clock    *fakeClock
	hasher   crypto.PasswordHasher
	reset    *passwordResetService
	auth     AuthService
}

func newResetFixture(t *testing.T) *resetFixture {
	t.Helper()

	hasher := crypto.NewPasswordHasher(cheapParams)
	oldHash, err := hasher.Hash("old-password")
	require.NoError(t, err)
	customerHash, err := hasher.Hash("customer-password")
	require.NoError(t, err)

	users := newMemUserRepo(
		models.User{ID: adminID, Email: adminEmail, Name: "Owner", Role: models.RoleAdmin, PasswordHash: oldHash},
		models.User{ID: customerID, Email: "buyer@example.com", Name: "Buyer", Role: models.RoleCustomer, PasswordHash: customerHash},
	)
	notifier := &captureNotifier{}
	clock := &fakeClock{now: issuedAt}
	validator := validators.NewAuthValidator(8)

	reset := NewPasswordResetService(users, crypto.NewResetCodeGenerator(), hasher, notifier, validator, PasswordResetConfig{
		CodeTTL:       10 * time.Minute,
		NotifyTimeout: time.Second,
		Roles:         []models.Role{models.RoleAdmin},
	}, logger.Nop()).(*passwordResetService)
	reset.now = clock.Now

	tokens := NewTokenService(testAppConfig(), logger.Nop())
	auth := NewAuthService(users, tokens, hasher, validator, []models.Role{models.RoleAdmin}, logger.Nop())

	return &resetFixture{users: users, notifier: notifier, clock: clock, hasher: hasher, reset: reset, auth: auth}
}

func (f *resetFixture) issueCode(t *testing.T) string {
	t.Helper()
	require.NoError(t, f.reset.RequestCode(context.Background(), adminEmail))
	code := codeRe.FindString(f.notifier.last().Text)
	require.NotEmpty(t, code, "delivered message must contain the code")
	return code
}

func TestPasswordReset_RequestCode_NonDisclosure(t *testing.T) {
	f := newResetFixture(t)
	ctx := context.Background()

	assert.NoError(t, f.reset.RequestCode(ctx, "nonexistent@x.com"))
	assert.Empty(t, f.notifier.messages)

	// customers are not reset-eligible
	assert.NoError(t, f.reset.RequestCode(ctx, "buyer@example.com"))
	assert.Empty(t, f.notifier.messages)
	assert.Nil(t, f.users.get(customerID).ResetCode)

	assert.NoError(t, f.reset.RequestCode(ctx, adminEmail))
	require.Len(t, f.notifier.messages, 1)
	assert.Equal(t, adminEmail, f.notifier.messages[0].To)
	assert.Equal(t, "Admin Password Reset Code", f.notifier.messages[0].Subject)
}

func TestPasswordReset_RequestCode_CaseInsensitiveEmail(t *testing.T) {
	f := newResetFixture(t)

	require.NoError(t, f.reset.RequestCode(context.Background(), "Owner@Treasured.SHOP"))
	require.Len(t, f.notifier.messages, 1)
	assert.NotNil(t, f.users.get(adminID).ResetCode)
}

func TestPasswordReset_RequestCode_InvalidEmail(t *testing.T) {
	f := newResetFixture(t)

	err := f.reset.RequestCode(context.Background(), "not-an-email")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
	assert.ErrorIs(t, err, validators.ErrInvalidEmail)
}

func TestPasswordReset_RequestCode_StoresCodeAndExpiry(t *testing.T) {
	f := newResetFixture(t)
	code := f.issueCode(t)

	u := f.users.get(adminID)
	require.NotNil(t, u.ResetCode)
	require.NotNil(t, u.ResetCodeExpiresAt)
	assert.Equal(t, code, *u.ResetCode)
	assert.Equal(t, issuedAt.Add(10*time.Minute), *u.ResetCodeExpiresAt)
	assert.Contains(t, f.notifier.last().Text, "This code will expire in 10 minutes.")
}

func TestPasswordReset_CodeExpiry(t *testing.T) {
	f := newResetFixture(t)
	code := f.issueCode(t)
	ctx := context.Background()

	f.clock.Set(issuedAt.Add(9*time.Minute + 59*time.Second))
	assert.NoError(t, f.reset.VerifyCode(ctx, adminEmail, code))

	f.clock.Set(issuedAt.Add(10 * time.Minute))
	assert.ErrorIs(t, f.reset.VerifyCode(ctx, adminEmail, code), ErrInvalidOrExpiredCode)

	f.clock.Set(issuedAt.Add(10*time.Minute + time.Second))
	assert.ErrorIs(t, f.reset.VerifyCode(ctx, adminEmail, code), ErrInvalidOrExpiredCode)
	assert.ErrorIs(t, f.reset.ResetPassword(ctx, adminEmail, code, "brand-new-pass"), ErrInvalidOrExpiredCode)
}

func TestPasswordReset_SecondCodeInvalidatesFirst(t *testing.T) {
	f := newResetFixture(t)
	ctx := context.Background()

	var first, second string
	for first == second {
		first = f.issueCode(t)
		second = f.issueCode(t)
	}

	assert.ErrorIs(t, f.reset.VerifyCode(ctx, adminEmail, first), ErrInvalidOrExpiredCode)
	assert.NoError(t, f.reset.VerifyCode(ctx, adminEmail, second))
}

func TestPasswordReset_VerifyCodeIsReadOnly(t *testing.T) {
	f := newResetFixture(t)
	code := f.issueCode(t)
	ctx := context.Background()

	require.NoError(t, f.reset.VerifyCode(ctx, adminEmail, code))
	require.NoError(t, f.reset.VerifyCode(ctx, adminEmail, code))
	assert.NotNil(t, f.users.get(adminID).ResetCode)
}

func TestPasswordReset_VerifyCode_Malformed(t *testing.T) {
	f := newResetFixture(t)
	f.issueCode(t)

	assert.ErrorIs(t, f.reset.VerifyCode(context.Background(), adminEmail, "12"), ErrInvalidOrExpiredCode)
	assert.ErrorIs(t, f.reset.VerifyCode(context.Background(), "", "12345"), ErrInvalidOrExpiredCode)
}

func TestPasswordReset_ResetConsumesCode(t *testing.T) {
	f := newResetFixture(t)
	code := f.issueCode(t)
	ctx := context.Background()

	require.NoError(t, f.reset.ResetPassword(ctx, adminEmail, code, "brand-new-pass"))

	u := f.users.get(adminID)
	assert.Nil(t, u.ResetCode)
	assert.Nil(t, u.ResetCodeExpiresAt)

	assert.ErrorIs(t, f.reset.ResetPassword(ctx, adminEmail, code, "another-pass"), ErrInvalidOrExpiredCode)

	_, err := f.auth.VerifyCredentials(ctx, adminEmail, "brand-new-pass")
	assert.NoError(t, err)
	_, err = f.auth.VerifyCredentials(ctx, adminEmail, "old-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestPasswordReset_ShortPasswordKeepsCode(t *testing.T) {
	f := newResetFixture(t)
	code := f.issueCode(t)

	err := f.reset.ResetPassword(context.Background(), adminEmail, code, "short")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
	assert.ErrorIs(t, err, validators.ErrPasswordTooShort)
	assert.NotNil(t, f.users.get(adminID).ResetCode)
}

func TestPasswordReset_FullCycle(t *testing.T) {
	f := newResetFixture(t)
	ctx := context.Background()

	require.NoError(t, f.reset.RequestCode(ctx, adminEmail))
	code := codeRe.FindString(f.notifier.last().Text)
	require.Len(t, code, 5)

	require.NoError(t, f.reset.VerifyCode(ctx, adminEmail, code))

	wrong := "10000"
	if code == wrong {
		wrong = "10001"
	}
	assert.ErrorIs(t, f.reset.ResetPassword(ctx, adminEmail, wrong, "new-password-1"), ErrInvalidOrExpiredCode)
	require.NoError(t, f.reset.ResetPassword(ctx, adminEmail, code, "new-password-1"))

	identity, token, err := f.auth.Login(ctx, adminEmail, "new-password-1")
	require.NoError(t, err)
	assert.Equal(t, adminID, identity.ID)
	assert.NotEmpty(t, token.SignedString)

	_, _, err = f.auth.Login(ctx, adminEmail, "old-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestPasswordReset_DeliveryFailureClearsCode(t *testing.T) {
	f := newResetFixture(t)
	f.notifier.err = errors.New("smtp: 421 service not available")

	err := f.reset.RequestCode(context.Background(), adminEmail)
	assert.ErrorIs(t, err, ErrCodeDeliveryFailed)

	u := f.users.get(adminID)
	assert.Nil(t, u.ResetCode)
	assert.Nil(t, u.ResetCodeExpiresAt)
}

func TestPasswordReset_DeliveryTimeout(t *testing.T) {
	ctrl := gomock.NewController(t)

	users := mock.NewMockUserRepository(ctrl)
	codes := mock.NewMockCodeGenerator(ctrl)
	notifier := mock.NewMockNotifier(ctrl)
	admin := models.User{ID: adminID, Email: adminEmail, Role: models.RoleAdmin}

	svc := NewPasswordResetService(users, codes, crypto.NewPasswordHasher(cheapParams), notifier, validators.NewAuthValidator(8), PasswordResetConfig{
		CodeTTL:       10 * time.Minute,
		NotifyTimeout: 20 * time.Millisecond,
		Roles:         []models.Role{models.RoleAdmin},
	}, logger.Nop())

	gomock.InOrder(
		users.EXPECT().FindUserByEmailAndRoles(gomock.Any(), adminEmail, []models.Role{models.RoleAdmin}).Return(admin, nil),
		codes.EXPECT().Generate().Return("48213", nil),
		users.EXPECT().SetResetCode(gomock.Any(), adminID, "48213", gomock.Any()).Return(nil),
		notifier.EXPECT().Deliver(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, _ models.Message) error {
			<-ctx.Done()
			return ctx.Err()
		}),
		users.EXPECT().ClearResetCode(gomock.Any(), adminID).DoAndReturn(func(ctx context.Context, _ string) error {
			require.NoError(t, ctx.Err(), "rollback must run on a live context")
			return nil
		}),
	)

	err := svc.RequestCode(context.Background(), adminEmail)
	assert.ErrorIs(t, err, ErrCodeDeliveryFailed)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestPasswordReset_RollbackSurvivesCancelledRequest(t *testing.T) {
	ctrl := gomock.NewController(t)

	users := mock.NewMockUserRepository(ctrl)
	codes := mock.NewMockCodeGenerator(ctrl)
	notifier := mock.NewMockNotifier(ctrl)
	admin := models.User{ID: adminID, Email: adminEmail, Role: models.RoleAdmin}

	svc := NewPasswordResetService(users, codes, crypto.NewPasswordHasher(cheapParams), notifier, validators.NewAuthValidator(8), PasswordResetConfig{
		CodeTTL:       10 * time.Minute,
		NotifyTimeout: time.Second,
		Roles:         []models.Role{models.RoleAdmin},
	}, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())

	users.EXPECT().FindUserByEmailAndRoles(gomock.Any(), adminEmail, gomock.Any()).Return(admin, nil)
	codes.EXPECT().Generate().Return("55555", nil)
	users.EXPECT().SetResetCode(gomock.Any(), adminID, "55555", gomock.Any()).Return(nil)
	notifier.EXPECT().Deliver(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, _ models.Message) error {
		cancel()
		return ctx.Err()
	})
	users.EXPECT().ClearResetCode(gomock.Any(), adminID).DoAndReturn(func(ctx context.Context, _ string) error {
		assert.NoError(t, ctx.Err())
		return nil
	})

	err := svc.RequestCode(ctx, adminEmail)
	assert.ErrorIs(t, err, ErrCodeDeliveryFailed)
}

func TestPasswordReset_GeneratorFailureWritesNothing(t *testing.T) {
	ctrl := gomock.NewController(t)

	users := mock.NewMockUserRepository(ctrl)
	codes := mock.NewMockCodeGenerator(ctrl)
	notifier := mock.NewMockNotifier(ctrl)

	svc := NewPasswordResetService(users, codes, crypto.NewPasswordHasher(cheapParams), notifier, validators.NewAuthValidator(8), PasswordResetConfig{
		CodeTTL:       10 * time.Minute,
		NotifyTimeout: time.Second,
		Roles:         []models.Role{models.RoleAdmin},
	}, logger.Nop())

	users.EXPECT().FindUserByEmailAndRoles(gomock.Any(), adminEmail, gomock.Any()).
		Return(models.User{ID: adminID, Email: adminEmail, Role: models.RoleAdmin}, nil)
	codes.EXPECT().Generate().Return("", errors.New("entropy exhausted"))

	err := svc.RequestCode(context.Background(), adminEmail)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCodeDeliveryFailed)
}
