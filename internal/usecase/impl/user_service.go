package impl

import (
	"context"
	"log/slog"

	deliverycontext "pulpit/internal/delivery/context"
	"pulpit/internal/domain/entity"
	domainerrors "pulpit/internal/domain/errors"
	"pulpit/internal/domain/repository"
	"pulpit/internal/usecase"

	"github.com/pkg/errors"
)

// userService implements the UserUsecase interface.
type userService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// NewUserService is the constructor for userService.
func NewUserService(
	txManager repository.TransactionManager,
	logger *slog.Logger,
) usecase.UserUsecase {
	return &userService{
		txManager: txManager,
		logger:    logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateUser registers an account and issues its first session token. The
// duplicate check, insert and token issuance share one transaction: a
// concurrent registration with the same identifier makes one of the two
// inserts fail on the partial unique index and the loser rolls back whole.
func (srv *userService) CreateUser(ctx context.Context, input usecase.CreateUserInput) (*usecase.CreateUserOutput, error) {
	srv.log(ctx).Debug("Creating user", slog.String("email", input.Email))

	var output usecase.CreateUserOutput

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()
		tokenRepo := repoFactory.SessionTokenRepo()

		// 1. Reject identifiers already held by an active account
		phone := ""
		if input.Phone != nil {
			phone = *input.Phone
		}

		existing, err := userRepo.FindByEmailOrPhone(ctx, input.Email, phone)
		if err != nil {
			return errors.Wrap(err, "failed to check for existing user")
		}
		if existing != nil {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("email or phone already registered")
		}

		// 2. Insert the account
		user, err := userRepo.Create(ctx, repository.CreateUserArgs{
			FullName:   input.FullName,
			Email:      input.Email,
			Phone:      input.Phone,
			Password:   input.Password,
			ColorTheme: input.ColorTheme,
			Lang:       input.Lang,
		})
		if err != nil {
			return errors.Wrap(err, "failed to create user")
		}

		// 3. Issue the first session token
		token, err := tokenRepo.Create(ctx, user.ID)
		if err != nil {
			return errors.Wrap(err, "failed to create session token")
		}

		output.User = user
		output.Token = token

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Failed to create user", slog.Any("error", err), slog.String("email", input.Email))

		return nil, errors.Wrap(err, "create user failed")
	}
	srv.log(ctx).Info("User created", slog.Int64("user_id", output.User.ID))

	return &output, nil
}

// FindUserByID retrieves an active account by id.
func (srv *userService) FindUserByID(ctx context.Context, id int64) (*entity.User, error) {
	srv.log(ctx).Debug("Finding user by id", slog.Int64("user_id", id))

	var user *entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.UserRepo().FindByID(ctx, id)
		if err != nil {
			return errors.Wrap(err, "failed to find user")
		}
		if found == nil {
			return domainerrors.ErrUserLookupNotFound.WrapMessage("no active user with given id")
		}

		user = found

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Failed to find user by id", slog.Any("error", err), slog.Int64("user_id", id))

		return nil, errors.Wrap(err, "find user by id failed")
	}

	return user, nil
}

// FindUserByEmailOrPhone retrieves the first active account matching either
// identifier.
func (srv *userService) FindUserByEmailOrPhone(ctx context.Context, email, phone string) (*entity.User, error) {
	srv.log(ctx).Debug("Finding user by identifier", slog.String("email", email), slog.String("phone", phone))

	var user *entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.UserRepo().FindByEmailOrPhone(ctx, email, phone)
		if err != nil {
			return errors.Wrap(err, "failed to find user")
		}
		if found == nil {
			return domainerrors.ErrUserLookupNotFound.WrapMessage("no active user with given identifier")
		}

		user = found

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Failed to find user by identifier", slog.Any("error", err), slog.String("email", email))

		return nil, errors.Wrap(err, "find user by identifier failed")
	}

	return user, nil
}

// UpdateUser mutates the account's profile fields.
func (srv *userService) UpdateUser(ctx context.Context, user *entity.User, args repository.UpdateUserArgs) error {
	srv.log(ctx).Debug("Updating user", slog.Int64("user_id", user.ID))

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		updated, err := repoFactory.UserRepo().Update(ctx, user, args)
		if err != nil {
			return errors.Wrap(err, "failed to update user")
		}
		if !updated {
			return domainerrors.ErrUserLookupNotFound.WrapMessage("no active user to update")
		}

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Failed to update user", slog.Any("error", err), slog.Int64("user_id", user.ID))

		return errors.Wrap(err, "update user failed")
	}
	srv.log(ctx).Info("User updated", slog.Int64("user_id", user.ID))

	return nil
}

// DeleteUser soft-deletes the account and revokes its active session in the
// same transaction, so a deleted account cannot keep a live token.
func (srv *userService) DeleteUser(ctx context.Context, user *entity.User) error {
	srv.log(ctx).Debug("Deleting user", slog.Int64("user_id", user.ID))

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()
		tokenRepo := repoFactory.SessionTokenRepo()

		// 1. Soft-delete the account. Already deleted is a no-op.
		deleted, err := userRepo.Delete(ctx, user)
		if err != nil {
			return errors.Wrap(err, "failed to delete user")
		}
		if !deleted {
			srv.log(ctx).Debug("User already deleted", slog.Int64("user_id", user.ID))

			return nil
		}

		// 2. Revoke the session that would otherwise outlive the account
		token, err := tokenRepo.FindByUserID(ctx, user.ID)
		if err != nil {
			return errors.Wrap(err, "failed to find session token")
		}
		if token != nil {
			if _, err := tokenRepo.Revoke(ctx, token); err != nil {
				return errors.Wrap(err, "failed to revoke session token")
			}
		}

		return nil
	})

	if err != nil {
		srv.log(ctx).Error("Failed to delete user", slog.Any("error", err), slog.Int64("user_id", user.ID))

		return errors.Wrap(err, "delete user failed")
	}
	srv.log(ctx).Info("User deleted", slog.Int64("user_id", user.ID))

	return nil
}
