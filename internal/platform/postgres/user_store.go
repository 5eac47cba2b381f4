package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/bookshelf-api/internal/domain"
	"github.com/phrazzld/bookshelf-api/internal/platform/logger"
	"github.com/phrazzld/bookshelf-api/internal/store"
)

const userSelect = `
	SELECT id, user_name, password_hash, admin, created, updated, created_by, updated_by
	FROM users`

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db        store.DBTX
	sequences store.SequenceStore
	logger    *slog.Logger
	now       func() time.Time
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the UserStore interface.
// It accepts a database connection that should be initialized and managed by the caller.
func NewPostgresUserStore(db store.DBTX, logger *slog.Logger) *PostgresUserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresUserStore{
		db:        db,
		sequences: NewPostgresSequenceStore(db, logger),
		logger:    logger.With(slog.String("component", "user_store")),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

func scanUser(row rowScanner) (*domain.User, error) {
	var (
		user      domain.User
		createdBy sql.NullInt64
		updatedBy sql.NullInt64
	)
	err := row.Scan(
		&user.ID,
		&user.UserName,
		&user.HashedPassword,
		&user.Admin,
		&user.Created,
		&user.Updated,
		&createdBy,
		&updatedBy,
	)
	if err != nil {
		return nil, err
	}
	user.CreatedBy = createdBy.Int64
	user.UpdatedBy = updatedBy.Int64
	return &user, nil
}

func (s *PostgresUserStore) getOne(ctx context.Context, where string, arg any) (*domain.User, error) {
	user, err := scanUser(s.db.QueryRowContext(ctx, userSelect+"\n\tWHERE "+where, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUserNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get user",
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get user: %w", MapError(err))
	}
	return user, nil
}

// Get implements store.UserStore.Get.
func (s *PostgresUserStore) Get(ctx context.Context, id int64) (*domain.User, error) {
	return s.getOne(ctx, "id = $1", id)
}

// FindByUserName implements store.UserStore.FindByUserName.
func (s *PostgresUserStore) FindByUserName(ctx context.Context, userName string) (*domain.User, error) {
	return s.getOne(ctx, "user_name = $1", userName)
}

// Create implements store.UserStore.Create.
// Returns store.ErrUserNameExists when the unique index on user_name rejects the row.
// A zero actorID (self registration, bootstrap) is stored as NULL.
func (s *PostgresUserStore) Create(ctx context.Context, actorID int64, user *domain.User) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	id, err := s.sequences.Next(ctx, domain.UserSequence)
	if err != nil {
		return 0, err
	}

	actor := sql.NullInt64{Int64: actorID, Valid: actorID != 0}
	now := s.now()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO users (id, user_name, password_hash, admin, created, updated, created_by, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		id, user.UserName, user.HashedPassword, user.Admin, now, now, actor, actor,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("user name already registered", slog.String("user_name", user.UserName))
			return 0, fmt.Errorf("%w: %v", store.ErrUserNameExists, err)
		}
		log.Error("failed to insert user", slog.String("error", err.Error()))
		return 0, fmt.Errorf("failed to insert user: %w", MapError(err))
	}

	user.ID = id
	user.Created, user.Updated = now, now
	user.CreatedBy, user.UpdatedBy = actorID, actorID

	log.Info("user created", slog.Int64("user_id", id), slog.Bool("admin", user.Admin))
	return id, nil
}

// UpdatePassword implements store.UserStore.UpdatePassword.
func (s *PostgresUserStore) UpdatePassword(
	ctx context.Context,
	actorID, userID int64,
	hashedPassword string,
) (bool, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE users SET password_hash = $2, updated = $3, updated_by = $4
		WHERE id = $1`,
		userID, hashedPassword, s.now(), actorID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update password: %w", MapError(err))
	}
	ok, err := rowsAffected(result)
	if err != nil {
		return false, err
	}
	if ok {
		logger.FromContextOrDefault(ctx, s.logger).Info("password changed",
			slog.Int64("user_id", userID),
			slog.Int64("updated_by", actorID))
	}
	return ok, nil
}

// Count implements store.UserStore.Count.
func (s *PostgresUserStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", MapError(err))
	}
	return n, nil
}

// Remove implements store.UserStore.Remove.
func (s *PostgresUserStore) Remove(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	query := fmt.Sprintf("DELETE FROM users WHERE id IN (%s)", inPlaceholders(1, len(ids)))
	if _, err := s.db.ExecContext(ctx, query, int64Args(ids)...); err != nil {
		return fmt.Errorf("failed to delete users: %w", MapError(err))
	}
	return nil
}

// RemoveAll implements store.UserStore.RemoveAll.
func (s *PostgresUserStore) RemoveAll(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM users`); err != nil {
		return fmt.Errorf("failed to delete all users: %w", MapError(err))
	}
	return nil
}

// WithTx implements store.UserStore.WithTx.
func (s *PostgresUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return &PostgresUserStore{
		db:        tx,
		sequences: s.sequences.WithTx(tx),
		logger:    s.logger,
		now:       s.now,
	}
}
