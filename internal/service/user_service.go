package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/phrazzld/blog-api/internal/domain"
	"github.com/phrazzld/blog-api/internal/platform/logger"
	"github.com/phrazzld/blog-api/internal/store"
	"gorm.io/gorm"
)

// UserService provides signup and signin.
type UserService interface {
	// Register creates a user after checking, in the same transaction, that the
	// email is unused. Returns ErrUserExists if it is taken, including when a
	// concurrent signup wins the race on the unique index.
	Register(ctx context.Context, email, password string) (*domain.User, error)

	// Authenticate looks the user up by email.
	// Returns store.ErrUserNotFound if no such user exists.
	//
	// The password is not compared with the stored one.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userStore store.UserStore
	db        *gorm.DB
	logger    *slog.Logger
}

// NewUserService creates a new UserService. db is the session transactions
// are started on.
func NewUserService(userStore store.UserStore, db *gorm.DB, logger *slog.Logger) *UserServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserServiceImpl{
		userStore: userStore,
		db:        db,
		logger:    logger.With("component", "user_service"),
	}
}

var _ UserService = (*UserServiceImpl)(nil)

// Register implements UserService.Register
func (s *UserServiceImpl) Register(ctx context.Context, email, password string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := domain.NewUser(email, password)
	if err != nil {
		return nil, NewServiceError("register", "invalid user", err)
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *gorm.DB) error {
		txStore := s.userStore.WithTx(tx)

		_, err := txStore.GetByEmail(ctx, email)
		switch {
		case err == nil:
			return ErrUserExists
		case !errors.Is(err, store.ErrUserNotFound):
			return err
		}

		return txStore.Create(ctx, user)
	})
	if err != nil {
		if errors.Is(err, ErrUserExists) || store.IsDuplicateError(err) {
			log.Debug("signup with registered email")
			return nil, NewServiceError("register", "email taken", ErrUserExists)
		}
		log.Error("failed to register user", "error", err)
		return nil, NewServiceError("register", "failed to save user", err)
	}

	log.Info("user registered", "user_id", user.ID)
	return user, nil
}

// Authenticate implements UserService.Authenticate
func (s *UserServiceImpl) Authenticate(ctx context.Context, email, _ string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("signin for unknown email")
		} else {
			log.Error("failed to look up user for signin", "error", err)
		}
		return nil, NewServiceError("authenticate", "failed to retrieve user by email", err)
	}

	log.Warn("signin accepted without password verification",
		"user_id", user.ID,
		"password_checked", false)
	return user, nil
}
