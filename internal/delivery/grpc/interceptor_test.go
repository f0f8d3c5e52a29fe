package grpc

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"pulpit/internal/domain/entity"
	"pulpit/internal/mocks"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const testTokenValue = "8f434346648f6b96df89dda901c5176b10a6d83961dd3c1ac88b59b2dc327aa4"

func newInterceptorUnderTest() (*AuthInterceptor, *mocks.MockSessionTokenRepository, *mocks.MockUserRepository) {
	tokenRepo := new(mocks.MockSessionTokenRepository)
	userRepo := new(mocks.MockUserRepository)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewAuthInterceptor(tokenRepo, userRepo, logger), tokenRepo, userRepo
}

// invoke runs the interceptor against a context carrying the given
// authorization metadata value.
func invoke(t *testing.T, interceptor *AuthInterceptor, header string, method string) (context.Context, error) {
	t.Helper()

	ctx := context.Background()
	if header != "" {
		ctx = metadata.NewIncomingContext(ctx, metadata.Pairs("authorization", header))
	}

	var handlerCtx context.Context
	handler := func(ctx context.Context, req any) (any, error) {
		handlerCtx = ctx

		return "ok", nil
	}

	info := &grpc.UnaryServerInfo{FullMethod: method}
	_, err := interceptor.Unary()(ctx, nil, info, handler)

	return handlerCtx, err
}

func TestAuthInterceptor_MalformedMetadata(t *testing.T) {
	cases := []struct {
		name   string
		header string
	}{
		{"absent", ""},
		{"scheme only", "Bearer"},
		{"wrong scheme", "Basic " + testTokenValue},
		{"three parts", "Bearer " + testTokenValue + " extra"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			interceptor, tokenRepo, _ := newInterceptorUnderTest()

			handlerCtx, err := invoke(t, interceptor, tc.header, "/pulpit.v1.UserService/GetProfile")

			require.Error(t, err)
			st, ok := status.FromError(err)
			require.True(t, ok)
			assert.Equal(t, codes.Unauthenticated, st.Code())
			assert.Equal(t, "Missing or invalid Authorization header", st.Message())
			assert.Nil(t, handlerCtx)
			tokenRepo.AssertNotCalled(t, "FindByToken", mock.Anything, mock.Anything)
		})
	}
}

func TestAuthInterceptor_UnknownToken(t *testing.T) {
	interceptor, tokenRepo, userRepo := newInterceptorUnderTest()

	tokenRepo.On("FindByToken", mock.Anything, testTokenValue).Return(nil, nil)

	_, err := invoke(t, interceptor, "Bearer "+testTokenValue, "/pulpit.v1.UserService/GetProfile")

	require.Error(t, err)
	st, _ := status.FromError(err)
	assert.Equal(t, codes.Unauthenticated, st.Code())
	assert.Equal(t, "Invalid or expired token", st.Message())
	userRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestAuthInterceptor_TokenWithoutUser(t *testing.T) {
	interceptor, tokenRepo, userRepo := newInterceptorUnderTest()

	token := &entity.SessionToken{ID: 1, UserID: 7, Token: testTokenValue}
	tokenRepo.On("FindByToken", mock.Anything, testTokenValue).Return(token, nil)
	userRepo.On("FindByID", mock.Anything, int64(7)).Return(nil, nil)

	_, err := invoke(t, interceptor, "Bearer "+testTokenValue, "/pulpit.v1.UserService/GetProfile")

	require.Error(t, err)
	st, _ := status.FromError(err)
	assert.Equal(t, codes.Unauthenticated, st.Code())
	assert.Equal(t, "User not found", st.Message())
}

func TestAuthInterceptor_LookupFault(t *testing.T) {
	interceptor, tokenRepo, _ := newInterceptorUnderTest()

	tokenRepo.On("FindByToken", mock.Anything, testTokenValue).
		Return(nil, errors.New("connection refused"))

	_, err := invoke(t, interceptor, "Bearer "+testTokenValue, "/pulpit.v1.UserService/GetProfile")

	require.Error(t, err)
	st, _ := status.FromError(err)
	assert.Equal(t, codes.Internal, st.Code())
	assert.Equal(t, "Authentication failed due to an internal error", st.Message())
	assert.NotContains(t, st.Message(), "connection refused")
}

func TestAuthInterceptor_SuccessInjectsPrincipal(t *testing.T) {
	interceptor, tokenRepo, userRepo := newInterceptorUnderTest()

	token := &entity.SessionToken{ID: 1, UserID: 7, Token: testTokenValue}
	user := &entity.User{ID: 7, Email: "alice@example.com"}
	tokenRepo.On("FindByToken", mock.Anything, testTokenValue).Return(token, nil)
	userRepo.On("FindByID", mock.Anything, int64(7)).Return(user, nil)

	handlerCtx, err := invoke(t, interceptor, "Bearer "+testTokenValue, "/pulpit.v1.UserService/GetProfile")

	require.NoError(t, err)
	require.NotNil(t, handlerCtx)
	assert.Equal(t, user, UserFromContext(handlerCtx))
	assert.Equal(t, token, TokenFromContext(handlerCtx))
}

func TestAuthInterceptor_PublicMethodSkipsGate(t *testing.T) {
	interceptor, tokenRepo, _ := newInterceptorUnderTest()

	handlerCtx, err := invoke(t, interceptor, "", "/grpc.health.v1.Health/Check")

	require.NoError(t, err)
	require.NotNil(t, handlerCtx)
	assert.Nil(t, UserFromContext(handlerCtx))
	tokenRepo.AssertNotCalled(t, "FindByToken", mock.Anything, mock.Anything)
}

func TestUserFromContext_Unset(t *testing.T) {
	assert.Nil(t, UserFromContext(context.Background()))
	assert.Nil(t, TokenFromContext(context.Background()))
}
