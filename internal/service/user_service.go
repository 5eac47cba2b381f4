package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/bookshelf-api/internal/domain"
	"github.com/phrazzld/bookshelf-api/internal/platform/logger"
	"github.com/phrazzld/bookshelf-api/internal/service/auth"
	"github.com/phrazzld/bookshelf-api/internal/store"
)

// UserService provides registration, login and password management.
type UserService interface {
	// GetUser retrieves a user by id, with password material scrubbed.
	GetUser(ctx context.Context, userID int64) (*domain.User, error)

	// Login checks the credentials and returns the user without password material.
	// Fails with ErrUserNotFound or ErrPasswordMismatch.
	Login(ctx context.Context, userName, password string) (*domain.User, error)

	// CreateUser hashes password and registers a non-admin user.
	// Fails with ErrUserExists when the user name is taken.
	CreateUser(ctx context.Context, userName, password string) (int64, error)

	// ChangePassword verifies oldPassword for userID and stores the hash of newPassword,
	// stamping actor as the updater. Authorization is the caller's responsibility.
	ChangePassword(ctx context.Context, actor domain.Principal, userID int64, oldPassword, newPassword string) error

	// EnsureAdmin creates the bootstrap admin when no user exists yet.
	// It reports whether an account was created.
	EnsureAdmin(ctx context.Context, password string) (bool, error)
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userStore store.UserStore
	hasher    auth.PasswordHasher
	logger    *slog.Logger
	db        *sql.DB
}

// NewUserService creates a new UserService
func NewUserService(
	userStore store.UserStore,
	hasher auth.PasswordHasher,
	db *sql.DB,
	logger *slog.Logger,
) UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserServiceImpl{
		userStore: userStore,
		hasher:    hasher,
		db:        db,
		logger:    logger.With("component", "user_service"),
	}
}

// GetUser retrieves a user by their ID
func (s *UserServiceImpl) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.userStore.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrUserNotFound, userID)
		}
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	return user.Scrubbed(), nil
}

// Login looks the user up by name and compares the password against the stored hash.
func (s *UserServiceImpl) Login(ctx context.Context, userName, password string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.userStore.FindByUserName(ctx, userName)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("login for unknown user", "user_name", userName)
			return nil, ErrUserNotFound
		}
		log.Error("failed to look up user for login",
			"error", err,
			"user_name", userName)
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}

	if err := s.hasher.Compare(user.HashedPassword, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			log.Debug("login password mismatch", "user_id", user.ID)
			return nil, ErrPasswordMismatch
		}
		return nil, fmt.Errorf("failed to compare password: %w", err)
	}

	log.Info("user logged in", "user_id", user.ID)
	return user.Scrubbed(), nil
}

// CreateUser creates a new user with the specified user name and password.
// Uses a transaction so the sequence increment and the insert commit together.
func (s *UserServiceImpl) CreateUser(ctx context.Context, userName, password string) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	id, err := s.create(ctx, &domain.User{UserName: userName, Password: password})
	if err != nil {
		if errors.Is(err, store.ErrUserNameExists) {
			log.Debug("attempted to register existing user name", "user_name", userName)
			return 0, fmt.Errorf("%w: %s", ErrUserExists, userName)
		}
		log.Error("failed to create user",
			"error", err,
			"user_name", userName)
		return 0, fmt.Errorf("failed to create user: %w", err)
	}

	log.Info("user registered", "user_id", id)
	return id, nil
}

func (s *UserServiceImpl) create(ctx context.Context, user *domain.User) (int64, error) {
	hash, err := s.hasher.Hash(user.Password)
	if err != nil {
		return 0, err
	}
	record := &domain.User{UserName: user.UserName, HashedPassword: hash, Admin: user.Admin}

	var id int64
	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		id, err = s.userStore.WithTx(tx).Create(ctx, 0, record)
		return err
	})
	return id, err
}

// ChangePassword replaces the password of userID after checking oldPassword.
func (s *UserServiceImpl) ChangePassword(
	ctx context.Context,
	actor domain.Principal,
	userID int64,
	oldPassword, newPassword string,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.userStore.WithTx(tx)

		user, err := txStore.Get(ctx, userID)
		if err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				return fmt.Errorf("%w: id %d", ErrUserNotFound, userID)
			}
			log.Error("failed to retrieve user for password change",
				"error", err,
				"user_id", userID)
			return fmt.Errorf("failed to retrieve user for password change: %w", err)
		}

		if err := s.hasher.Compare(user.HashedPassword, oldPassword); err != nil {
			if errors.Is(err, auth.ErrPasswordMismatch) {
				return ErrPasswordMismatch
			}
			return fmt.Errorf("failed to compare password: %w", err)
		}

		hash, err := s.hasher.Hash(newPassword)
		if err != nil {
			return fmt.Errorf("failed to hash new password: %w", err)
		}

		ok, err := txStore.UpdatePassword(ctx, actor.ID, userID, hash)
		if err != nil {
			return fmt.Errorf("failed to update password: %w", err)
		}
		if !ok {
			return fmt.Errorf("%w: id %d", ErrUserNotFound, userID)
		}

		log.Info("password changed",
			"user_id", userID,
			"changed_by", actor.ID)
		return nil
	})
}

// EnsureAdmin creates the bootstrap admin account on an empty user table.
func (s *UserServiceImpl) EnsureAdmin(ctx context.Context, password string) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	n, err := s.userStore.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to count users: %w", err)
	}
	if n > 0 {
		log.Debug("users present, skipping bootstrap admin", "count", n)
		return false, nil
	}

	id, err := s.create(ctx, &domain.User{
		UserName: domain.BootstrapAdminUserName,
		Password: password,
		Admin:    true,
	})
	if err != nil {
		// Another instance may have bootstrapped concurrently.
		if errors.Is(err, store.ErrUserNameExists) {
			return false, nil
		}
		return false, fmt.Errorf("failed to create bootstrap admin: %w", err)
	}

	log.Info("bootstrap admin created", "user_id", id)
	return true, nil
}
