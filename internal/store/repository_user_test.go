// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/treasured-fragrances/internal/logger"
	"github.com/MKhiriev/treasured-fragrances/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var userRowColumns = []string{"id", "email", "name", "password_hash", "role", "reset_code", "reset_code_expires_at", "created_at", "updated_at"}

func newTestDB(t *testing.T) (*DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	return NewDB(db, logger.Nop()), mock, db
}

func newTestUserRepo(t *testing.T) (*userRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	wrapped, mock, db := newTestDB(t)
	repo := &userRepository{
		db:     wrapped,
		logger: logger.Nop(),
	}
	return repo, mock, db
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func userRow(id, email, role string, code any, expires any) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(userRowColumns).
		AddRow(id, email, "Ada", "$argon2id$hash", role, code, expires, now, now)
}

func TestCreateUser_AssignsIDWhenEmpty(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(uuidArg{}, "ada@example.com", "Ada", "$argon2id$hash", "customer").
		WillReturnRows(userRow("0190d7a4-0000-7000-8000-000000000002", "ada@example.com", "customer", nil, nil))

	_, err := repo.CreateUser(context.Background(), models.User{
		Email: "ada@example.com", Name: "Ada", PasswordHash: "$argon2id$hash", Role: models.RoleCustomer,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err = mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreateUser_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	user := models.User{
		ID:           "0190d7a4-0000-7000-8000-000000000001",
		Email:        "Ada@Example.com",
		Name:         "Ada",
		PasswordHash: "$argon2id$hash",
		Role:         models.RoleAdmin,
	}

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(user.ID, "ada@example.com", user.Name, user.PasswordHash, "admin").
		WillReturnRows(userRow(user.ID, "ada@example.com", "admin", nil, nil))

	created, err := repo.CreateUser(context.Background(), user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != user.ID {
		t.Errorf("expected ID=%s, got %s", user.ID, created.ID)
	}
	if created.Email != "ada@example.com" {
		t.Errorf("expected lower-cased email, got %s", created.Email)
	}
	if created.Role != models.RoleAdmin {
		t.Errorf("expected admin role, got %s", created.Role)
	}
	if created.ResetCode != nil || created.ResetCodeExpiresAt != nil {
		t.Error("expected no reset code on a fresh user")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreateUser_UniqueViolation(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateUser(context.Background(), models.User{Email: "ada@example.com", Role: models.RoleAdmin})
	if !errors.Is(err, ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestCreateUser_UnexpectedDBError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(errors.New("db network error"))

	_, err := repo.CreateUser(context.Background(), models.User{Email: "ada@example.com", Role: models.RoleAdmin})
	if err == nil || !strings.Contains(err.Error(), "unexpected DB error") {
		t.Fatalf("expected wrapped unexpected DB error, got %v", err)
	}
}

func TestCreateUser_ScanError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	rows := sqlmock.
		NewRows([]string{"id"}). // intentionally wrong shape → scan error
		AddRow("x")

	mock.ExpectQuery("INSERT INTO users").
		WillReturnRows(rows)

	_, err := repo.CreateUser(context.Background(), models.User{Role: models.RoleAdmin})
	if err == nil {
		t.Fatal("expected scan error, got nil")
	}
}

func TestFindUserByEmail_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	expires := time.Now().Add(5 * time.Minute)
	mock.ExpectQuery("SELECT id, email").
		WithArgs("ada@example.com").
		WillReturnRows(userRow("u-1", "ada@example.com", "admin", "12345", expires))

	found, err := repo.FindUserByEmail(context.Background(), "  ADA@example.com ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.ID != "u-1" {
		t.Errorf("expected u-1, got %s", found.ID)
	}
	if found.ResetCode == nil || *found.ResetCode != "12345" {
		t.Errorf("expected reset code 12345, got %v", found.ResetCode)
	}
	if found.ResetCodeExpiresAt == nil || !found.ResetCodeExpiresAt.Equal(expires) {
		t.Errorf("expected expiry %v, got %v", expires, found.ResetCodeExpiresAt)
	}
}

func TestFindUserByEmail_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT id, email").
		WithArgs("nobody@example.com").
		WillReturnRows(sqlmock.NewRows(userRowColumns))

	_, err := repo.FindUserByEmail(context.Background(), "nobody@example.com")
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestFindUserByEmail_UnknownRoleInRow(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT id, email").
		WillReturnRows(userRow("u-1", "ada@example.com", "root", nil, nil))

	_, err := repo.FindUserByEmail(context.Background(), "ada@example.com")
	if !errors.Is(err, ErrScanningRow) {
		t.Fatalf("expected ErrScanningRow, got %v", err)
	}
}

func TestFindUserByEmail_RetriesTransientError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT id, email").
		WillReturnError(pgError(pgerrcode.SerializationFailure))
	mock.ExpectQuery("SELECT id, email").
		WillReturnRows(userRow("u-1", "ada@example.com", "admin", nil, nil))

	found, err := repo.FindUserByEmail(context.Background(), "ada@example.com")
	if err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	if found.ID != "u-1" {
		t.Errorf("expected u-1, got %s", found.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestFindUserByEmail_DoesNotRetryPermanentError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT id, email").
		WillReturnError(pgError(pgerrcode.UndefinedTable))

	_, err := repo.FindUserByEmail(context.Background(), "ada@example.com")
	if err == nil || !strings.Contains(err.Error(), "unexpected DB error") {
		t.Fatalf("expected wrapped unexpected DB error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestFindUserByEmailAndRoles_FiltersByRole(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT .* FROM users WHERE lower\(email\) = \$1 AND role IN \(\$2\)`).
		WithArgs("ada@example.com", "admin").
		WillReturnRows(userRow("u-1", "ada@example.com", "admin", nil, nil))

	found, err := repo.FindUserByEmailAndRoles(context.Background(), "Ada@example.com", []models.Role{models.RoleAdmin})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.Role != models.RoleAdmin {
		t.Errorf("expected admin, got %s", found.Role)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestFindUserByEmailAndRoles_CustomerIsNotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT .* FROM users WHERE lower\(email\) = \$1 AND role IN`).
		WithArgs("shopper@example.com", "admin").
		WillReturnRows(sqlmock.NewRows(userRowColumns))

	_, err := repo.FindUserByEmailAndRoles(context.Background(), "shopper@example.com", []models.Role{models.RoleAdmin})
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestFindUserByEmailAndRoles_NoRoles(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	_, err := repo.FindUserByEmailAndRoles(context.Background(), "ada@example.com", nil)
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expected no queries, got: %v", err)
	}
}

func TestFindUserByID_MalformedID(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT id, email").
		WithArgs("not-a-uuid").
		WillReturnError(pgError(pgerrcode.InvalidTextRepresentation))

	_, err := repo.FindUserByID(context.Background(), "not-a-uuid")
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestSetResetCode_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	expires := time.Now().Add(10 * time.Minute)
	mock.ExpectExec("UPDATE users").
		WithArgs("u-1", "12345", expires).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.SetResetCode(context.Background(), "u-1", "12345", expires); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSetResetCode_UserGone(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE users").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetResetCode(context.Background(), "u-1", "12345", time.Now())
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestClearResetCode_ExecError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE users").
		WithArgs("u-1").
		WillReturnError(errors.New("connection reset"))

	err := repo.ClearResetCode(context.Background(), "u-1")
	if !errors.Is(err, ErrExecutingStatement) {
		t.Fatalf("expected ErrExecutingStatement, got %v", err)
	}
}

func TestMatchResetCode_Match(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery("reset_code = \\$2 AND reset_code_expires_at > \\$3").
		WithArgs("ada@example.com", "12345", now).
		WillReturnRows(userRow("u-1", "ada@example.com", "admin", "12345", now.Add(time.Minute)))

	user, err := repo.MatchResetCode(context.Background(), "ada@example.com", "12345", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != "u-1" {
		t.Errorf("expected u-1, got %s", user.ID)
	}
}

func TestMatchResetCode_Mismatch(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("reset_code = \\$2").
		WillReturnRows(sqlmock.NewRows(userRowColumns))

	_, err := repo.MatchResetCode(context.Background(), "ada@example.com", "00000", time.Now())
	if !errors.Is(err, ErrResetCodeMismatch) {
		t.Fatalf("expected ErrResetCodeMismatch, got %v", err)
	}
}

func TestConsumeResetCode_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery("UPDATE users\\s+SET password_hash = \\$4, reset_code = NULL, reset_code_expires_at = NULL").
		WithArgs("ada@example.com", "12345", now, "$argon2id$new").
		WillReturnRows(userRow("u-1", "ada@example.com", "admin", nil, nil))

	user, err := repo.ConsumeResetCode(context.Background(), "ada@example.com", "12345", now, "$argon2id$new")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ResetCode != nil || user.ResetCodeExpiresAt != nil {
		t.Error("expected reset pair to be cleared")
	}
}

func TestConsumeResetCode_NoRow(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("UPDATE users").
		WillReturnRows(sqlmock.NewRows(userRowColumns))

	_, err := repo.ConsumeResetCode(context.Background(), "ada@example.com", "12345", time.Now(), "h")
	if !errors.Is(err, ErrResetCodeMismatch) {
		t.Fatalf("expected ErrResetCodeMismatch, got %v", err)
	}
}

func TestConsumeResetCode_DBError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("UPDATE users").
		WillReturnError(errors.New("db down"))

	_, err := repo.ConsumeResetCode(context.Background(), "ada@example.com", "12345", time.Now(), "h")
	if err == nil || errors.Is(err, ErrResetCodeMismatch) {
		t.Fatalf("expected unexpected DB error, got %v", err)
	}
}

func TestClearExpiredResetCodes(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectExec("reset_code_expires_at <= \\$1").
		WithArgs(now).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.ClearExpiredResetCodes(context.Background(), now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 3 {
		t.Errorf("expected 3 cleared, got %d", n)
	}
}
