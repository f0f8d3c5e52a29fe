package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"pulpit/internal/domain/entity"
	domainerrors "pulpit/internal/domain/errors"
	"pulpit/internal/mocks"
	"pulpit/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthServiceUnderTest(t *testing.T) (usecase.AuthUsecase, *mocks.MockUserRepository, *mocks.MockSessionTokenRepository, *mocks.MockPasswordHasher) {
	t.Helper()

	userRepo := new(mocks.MockUserRepository)
	tokenRepo := new(mocks.MockSessionTokenRepository)
	hasher := new(mocks.MockPasswordHasher)
	txManager := &mocks.TransactionManagerStub{
		Factory: &mocks.RepositoryFactoryStub{Users: userRepo, Tokens: tokenRepo},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewAuthService(txManager, hasher, logger), userRepo, tokenRepo, hasher
}

func TestAuthService_Login_FirstSession(t *testing.T) {
	service, userRepo, tokenRepo, hasher := newAuthServiceUnderTest(t)

	ctx := context.Background()
	user := &entity.User{ID: 7, Email: "alice@example.com", PasswordHash: "$argon2id$stored"}
	token := &entity.SessionToken{ID: 1, UserID: 7, Token: "aa11"}

	userRepo.On("FindByEmailOrPhone", ctx, "alice@example.com", "").Return(user, nil)
	hasher.On("Verify", "$argon2id$stored", "longenough1").Return(true, nil)
	tokenRepo.On("FindByUserID", ctx, int64(7)).Return(nil, nil)
	tokenRepo.On("Create", ctx, int64(7)).Return(token, nil)

	output, err := service.Login(ctx, usecase.LoginInput{Email: "alice@example.com", Password: "longenough1"})

	require.NoError(t, err)
	assert.Equal(t, user, output.User)
	assert.Equal(t, token, output.Token)
	tokenRepo.AssertNotCalled(t, "Regenerate", ctx, token)
}

func TestAuthService_Login_RotatesExistingToken(t *testing.T) {
	service, userRepo, tokenRepo, hasher := newAuthServiceUnderTest(t)

	ctx := context.Background()
	user := &entity.User{ID: 7, Email: "alice@example.com", PasswordHash: "$argon2id$stored"}
	existing := &entity.SessionToken{ID: 1, UserID: 7, Token: "old"}

	userRepo.On("FindByEmailOrPhone", ctx, "alice@example.com", "").Return(user, nil)
	hasher.On("Verify", "$argon2id$stored", "longenough1").Return(true, nil)
	tokenRepo.On("FindByUserID", ctx, int64(7)).Return(existing, nil)
	tokenRepo.On("Regenerate", ctx, existing).Return(true, nil)

	output, err := service.Login(ctx, usecase.LoginInput{Email: "alice@example.com", Password: "longenough1"})

	require.NoError(t, err)
	// Same session row is returned; only the credential changed.
	assert.Equal(t, int64(1), output.Token.ID)
	tokenRepo.AssertNotCalled(t, "Create", ctx, int64(7))
}

func TestAuthService_Login_CreatesWhenRotationMissesRow(t *testing.T) {
	service, userRepo, tokenRepo, hasher := newAuthServiceUnderTest(t)

	ctx := context.Background()
	user := &entity.User{ID: 7, Email: "alice@example.com", PasswordHash: "$argon2id$stored"}
	stale := &entity.SessionToken{ID: 1, UserID: 7, Token: "old"}
	fresh := &entity.SessionToken{ID: 2, UserID: 7, Token: "new"}

	userRepo.On("FindByEmailOrPhone", ctx, "alice@example.com", "").Return(user, nil)
	hasher.On("Verify", "$argon2id$stored", "longenough1").Return(true, nil)
	tokenRepo.On("FindByUserID", ctx, int64(7)).Return(stale, nil)
	tokenRepo.On("Regenerate", ctx, stale).Return(false, nil)
	tokenRepo.On("Create", ctx, int64(7)).Return(fresh, nil)

	output, err := service.Login(ctx, usecase.LoginInput{Email: "alice@example.com", Password: "longenough1"})

	require.NoError(t, err)
	assert.Equal(t, fresh, output.Token)
}

func TestAuthService_Login_NoIdentifier(t *testing.T) {
	service, userRepo, tokenRepo, _ := newAuthServiceUnderTest(t)

	output, err := service.Login(context.Background(), usecase.LoginInput{Password: "longenough1"})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	assert.Nil(t, output)
	userRepo.AssertNotCalled(t, "FindByEmailOrPhone", context.Background(), "", "")
	tokenRepo.AssertExpectations(t)
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	service, userRepo, tokenRepo, hasher := newAuthServiceUnderTest(t)

	ctx := context.Background()
	userRepo.On("FindByEmailOrPhone", ctx, "ghost@example.com", "").Return(nil, nil)

	output, err := service.Login(ctx, usecase.LoginInput{Email: "ghost@example.com", Password: "longenough1"})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
	assert.Nil(t, output)
	hasher.AssertNotCalled(t, "Verify", "", "longenough1")
	tokenRepo.AssertNotCalled(t, "Create", ctx, int64(0))
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	service, userRepo, tokenRepo, hasher := newAuthServiceUnderTest(t)

	ctx := context.Background()
	user := &entity.User{ID: 7, Email: "alice@example.com", PasswordHash: "$argon2id$stored"}

	userRepo.On("FindByEmailOrPhone", ctx, "alice@example.com", "").Return(user, nil)
	hasher.On("Verify", "$argon2id$stored", "wrong").Return(false, nil)

	output, err := service.Login(ctx, usecase.LoginInput{Email: "alice@example.com", Password: "wrong"})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidPassword)
	assert.Nil(t, output)
	tokenRepo.AssertNotCalled(t, "FindByUserID", ctx, int64(7))
}

func TestAuthService_Login_VerifierFailure(t *testing.T) {
	// A hash that cannot even be parsed reads as a bad password to the
	// caller, not as an internal error.
	service, userRepo, tokenRepo, hasher := newAuthServiceUnderTest(t)

	ctx := context.Background()
	user := &entity.User{ID: 7, Email: "alice@example.com", PasswordHash: "corrupted"}

	userRepo.On("FindByEmailOrPhone", ctx, "alice@example.com", "").Return(user, nil)
	hasher.On("Verify", "corrupted", "longenough1").Return(false, errors.New("malformed hash"))

	output, err := service.Login(ctx, usecase.LoginInput{Email: "alice@example.com", Password: "longenough1"})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidPassword)
	assert.Nil(t, output)
	tokenRepo.AssertNotCalled(t, "FindByUserID", ctx, int64(7))
}

func TestAuthService_Login_ByPhone(t *testing.T) {
	service, userRepo, tokenRepo, hasher := newAuthServiceUnderTest(t)

	ctx := context.Background()
	user := &entity.User{ID: 9, Email: "bob@example.com", PasswordHash: "$argon2id$stored"}
	token := &entity.SessionToken{ID: 3, UserID: 9, Token: "bb22"}

	userRepo.On("FindByEmailOrPhone", ctx, "", "+886912345678").Return(user, nil)
	hasher.On("Verify", "$argon2id$stored", "longenough1").Return(true, nil)
	tokenRepo.On("FindByUserID", ctx, int64(9)).Return(nil, nil)
	tokenRepo.On("Create", ctx, int64(9)).Return(token, nil)

	output, err := service.Login(ctx, usecase.LoginInput{Phone: "+886912345678", Password: "longenough1"})

	require.NoError(t, err)
	assert.Equal(t, token, output.Token)
}

func TestAuthService_Logout(t *testing.T) {
	service, _, tokenRepo, _ := newAuthServiceUnderTest(t)

	ctx := context.Background()
	token := &entity.SessionToken{ID: 1, UserID: 7, Token: "aa11"}

	tokenRepo.On("Revoke", ctx, token).Return(true, nil)

	require.NoError(t, service.Logout(ctx, token))
	tokenRepo.AssertExpectations(t)
}

func TestAuthService_Logout_AlreadyRevoked(t *testing.T) {
	service, _, tokenRepo, _ := newAuthServiceUnderTest(t)

	ctx := context.Background()
	token := &entity.SessionToken{ID: 1, UserID: 7, Token: "aa11"}

	tokenRepo.On("Revoke", ctx, token).Return(false, nil)

	require.NoError(t, service.Logout(ctx, token))
}
