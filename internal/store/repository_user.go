// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/treasured-fragrances/internal/logger"
	"github.com/MKhiriev/treasured-fragrances/models"
	"github.com/jackc/pgerrcode"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles account creation, lookup and reset-code state against the
// "users" table.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (models.User, error) {
	var (
		user      models.User
		role      string
		code      sql.NullString
		expiresAt sql.NullTime
	)

	if err := row.Scan(&user.ID, &user.Email, &user.Name, &user.PasswordHash, &role, &code, &expiresAt, &user.CreatedAt, &user.UpdatedAt); err != nil {
		return models.User{}, err
	}

	parsed, err := models.ParseRole(role)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	user.Role = parsed

	if code.Valid && expiresAt.Valid {
		c, t := code.String, expiresAt.Time
		user.ResetCode, user.ResetCodeExpiresAt = &c, &t
	}

	return user, nil
}

// CreateUser persists a new user record and returns the fully populated
// [models.User] with server-assigned fields (CreatedAt, UpdatedAt).
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrEmailAlreadyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
//   - Scan failure → returned directly.
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createUser, orNewID(user.ID), models.NormalizeEmail(user.Email), user.Name, user.PasswordHash, user.Role.String())

	// create user in db
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error inserting user")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.User{}, ErrEmailAlreadyExists
		default:
			return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	// scan saved user from db
	created, err := scanUser(row)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error: scanning error")
		return models.User{}, err
	}

	return created, nil
}

// FindUserByEmail retrieves the user whose email matches, ignoring case.
//
// Error handling:
//   - no rows → [ErrNoUserWasFound].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findOne(ctx, "*userRepository.FindUserByEmail", findUserByEmail, models.NormalizeEmail(email))
}

// FindUserByEmailAndRoles is FindUserByEmail restricted to the given roles.
// The role filter is part of the query, so users in other roles are
// indistinguishable from unknown emails.
func (r *userRepository) FindUserByEmailAndRoles(ctx context.Context, email string, roles []models.Role) (models.User, error) {
	log := logger.FromContext(ctx)

	if len(roles) == 0 {
		return models.User{}, ErrNoUserWasFound
	}

	names := make([]string, 0, len(roles))
	for _, role := range roles {
		names = append(names, role.String())
	}

	query, args, err := psql.Select(userColumns).
		From(models.User{}.TableName()).
		Where(sq.Expr("lower(email) = ?", models.NormalizeEmail(email))).
		Where(sq.Eq{"role": names}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*userRepository.FindUserByEmailAndRoles").Msg("error building query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.findOne(ctx, "*userRepository.FindUserByEmailAndRoles", query, args...)
}

// FindUserByID retrieves a user by primary key.
func (r *userRepository) FindUserByID(ctx context.Context, userID string) (models.User, error) {
	return r.findOne(ctx, "*userRepository.FindUserByID", findUserByID, userID)
}

func (r *userRepository) findOne(ctx context.Context, op, query string, args ...any) (models.User, error) {
	log := logger.FromContext(ctx)

	var found models.User
	err := r.db.withRetry(ctx, op, func() error {
		var scanErr error
		found, scanErr = scanUser(r.db.QueryRowContext(ctx, query, args...))
		return scanErr
	})

	switch {
	case err == nil:
		return found, nil
	case errors.Is(err, sql.ErrNoRows):
		return models.User{}, ErrNoUserWasFound
	case postgresError(err) == pgerrcode.InvalidTextRepresentation:
		// malformed uuid can never match a row
		return models.User{}, ErrNoUserWasFound
	default:
		log.Err(err).Str("func", op).Msg("error querying user")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}
}

// SetResetCode stores code and its expiry for userID, replacing any previous
// pair.
func (r *userRepository) SetResetCode(ctx context.Context, userID, code string, expiresAt time.Time) error {
	return r.execUserUpdate(ctx, "*userRepository.SetResetCode", setResetCode, userID, code, expiresAt)
}

// ClearResetCode clears both reset columns for userID.
func (r *userRepository) ClearResetCode(ctx context.Context, userID string) error {
	return r.execUserUpdate(ctx, "*userRepository.ClearResetCode", clearResetCode, userID)
}

func (r *userRepository) execUserUpdate(ctx context.Context, op, query string, args ...any) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", op).Msg("error updating user")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrNoUserWasFound
	}

	return nil
}

// MatchResetCode returns the user with email whose code equals code and has
// not expired at now. It does not modify any state.
func (r *userRepository) MatchResetCode(ctx context.Context, email, code string, now time.Time) (models.User, error) {
	user, err := r.findOne(ctx, "*userRepository.MatchResetCode", matchResetCode, models.NormalizeEmail(email), code, now)
	if errors.Is(err, ErrNoUserWasFound) {
		return models.User{}, ErrResetCodeMismatch
	}
	return user, err
}

// ConsumeResetCode atomically swaps in passwordHash and clears the reset pair
// when, and only when, the code still matches and is unexpired. Two
// concurrent calls with the same code cannot both succeed.
func (r *userRepository) ConsumeResetCode(ctx context.Context, email, code string, now time.Time, passwordHash string) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, consumeResetCode, models.NormalizeEmail(email), code, now, passwordHash)
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*userRepository.ConsumeResetCode").Msg("error consuming reset code")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrResetCodeMismatch
	}
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ConsumeResetCode").Msg("error: scanning error")
		return models.User{}, err
	}

	return user, nil
}

// ClearExpiredResetCodes clears every reset pair whose expiry is at or
// before now.
func (r *userRepository) ClearExpiredResetCodes(ctx context.Context, now time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, clearExpiredResetCodes, now)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ClearExpiredResetCodes").Msg("error clearing expired codes")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return affected, nil
}
