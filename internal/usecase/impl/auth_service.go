// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "pulpit/internal/delivery/context"
	"pulpit/internal/domain/entity"
	domainerrors "pulpit/internal/domain/errors"
	"pulpit/internal/domain/repository"
	"pulpit/internal/domain/service"
	"pulpit/internal/usecase"

	"github.com/pkg/errors"
)

// authService implements the AuthUsecase interface.
type authService struct {
	txManager repository.TransactionManager
	hasher    service.PasswordHasher
	logger    *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(
	txManager repository.TransactionManager,
	hasher service.PasswordHasher,
	logger *slog.Logger,
) usecase.AuthUsecase {
	return &authService{
		txManager: txManager,
		hasher:    hasher,
		logger:    logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Login verifies credentials and issues a session token. The lookup,
// password check and token rotation run in one transaction so two
// concurrent logins for the same user cannot both insert a token row.
func (srv *authService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error) {
	srv.log(ctx).Debug("Logging in", slog.String("email", input.Email), slog.String("phone", input.Phone))

	// Reject before touching the database when no identifier was given.
	if input.Email == "" && input.Phone == "" {
		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("no email or phone provided")
	}

	var output usecase.LoginOutput

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()
		tokenRepo := repoFactory.SessionTokenRepo()

		// 1. Resolve the account
		user, err := userRepo.FindByEmailOrPhone(ctx, input.Email, input.Phone)
		if err != nil {
			return errors.Wrap(err, "failed to find user")
		}
		if user == nil {
			return domainerrors.ErrUserNotFound.WrapMessage("no account for given identifier")
		}

		// 2. Check the password. A verifier error (malformed stored hash)
		// is indistinguishable from a mismatch to the caller, but it is
		// logged server-side for diagnosis.
		ok, err := srv.hasher.Verify(user.PasswordHash, input.Password)
		if err != nil {
			srv.log(ctx).Error("Password verification failed to run",
				slog.Any("error", err), slog.Int64("user_id", user.ID))

			return domainerrors.ErrInvalidPassword.WrapMessage("password verification failed")
		}
		if !ok {
			return domainerrors.ErrInvalidPassword.WrapMessage("password mismatch")
		}

		// 3. Rotate the existing session token, or create the first one
		token, err := tokenRepo.FindByUserID(ctx, user.ID)
		if err != nil {
			return errors.Wrap(err, "failed to find session token")
		}

		if token != nil {
			rotated, err := tokenRepo.Regenerate(ctx, token)
			if err != nil {
				return errors.Wrap(err, "failed to regenerate session token")
			}
			if !rotated {
				// The row was revoked between the find and the update.
				token = nil
			}
		}

		if token == nil {
			token, err = tokenRepo.Create(ctx, user.ID)
			if err != nil {
				return errors.Wrap(err, "failed to create session token")
			}
		}

		output.User = user
		output.Token = token

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Login failed", slog.Any("error", err), slog.String("email", input.Email))

		return nil, errors.Wrap(err, "login failed")
	}
	srv.log(ctx).Info("Login succeeded", slog.Int64("user_id", output.User.ID))

	return &output, nil
}

// Logout revokes the session token. A token that is already revoked makes
// this a no-op rather than an error.
func (srv *authService) Logout(ctx context.Context, token *entity.SessionToken) error {
	srv.log(ctx).Debug("Logging out", slog.Int64("token_id", token.ID), slog.Int64("user_id", token.UserID))

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		revoked, err := repoFactory.SessionTokenRepo().Revoke(ctx, token)
		if err != nil {
			return errors.Wrap(err, "failed to revoke session token")
		}
		if !revoked {
			srv.log(ctx).Debug("Session token already revoked", slog.Int64("token_id", token.ID))
		}

		return nil
	})

	if err != nil {
		srv.log(ctx).Error("Logout failed", slog.Any("error", err), slog.Int64("token_id", token.ID))

		return errors.Wrap(err, "logout failed")
	}
	srv.log(ctx).Info("Logout succeeded", slog.Int64("user_id", token.UserID))

	return nil
}
