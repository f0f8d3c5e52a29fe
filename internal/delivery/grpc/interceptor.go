package grpc

import (
	"context"
	"log/slog"
	"time"

	"pulpit/internal/delivery"
	"pulpit/internal/domain/repository"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// publicMethods are callable without a session, keyed by full method name.
var publicMethods = map[string]struct{}{
	"/grpc.health.v1.Health/Check":                                   {},
	"/grpc.health.v1.Health/Watch":                                   {},
	"/grpc.reflection.v1.ServerReflection/ServerReflectionInfo":      {},
	"/grpc.reflection.v1alpha.ServerReflection/ServerReflectionInfo": {},
}

// AuthInterceptor gates unary calls on the same opaque bearer token as the
// HTTP surface, read from the `authorization` metadata entry.
type AuthInterceptor struct {
	tokenRepo repository.SessionTokenRepository
	userRepo  repository.UserRepository
	logger    *slog.Logger
}

// NewAuthInterceptor is the constructor for AuthInterceptor.
func NewAuthInterceptor(
	tokenRepo repository.SessionTokenRepository,
	userRepo repository.UserRepository,
	logger *slog.Logger,
) *AuthInterceptor {
	return &AuthInterceptor{tokenRepo: tokenRepo, userRepo: userRepo, logger: logger}
}

// Unary returns the interceptor function. Rejections use the same three
// messages as the HTTP gate, surfaced as Unauthenticated; unexpected
// faults become a generic Internal status with the cause kept server-side.
func (i *AuthInterceptor) Unary() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if _, ok := publicMethods[info.FullMethod]; ok {
			return handler(ctx, req)
		}

		var header string
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if values := md.Get("authorization"); len(values) > 0 {
				header = values[0]
			}
		}

		tokenValue, ok := delivery.ParseBearerToken(header)
		if !ok {
			return nil, status.Error(codes.Unauthenticated, delivery.MsgMissingAuthHeader)
		}

		token, err := i.tokenRepo.FindByToken(ctx, tokenValue)
		if err != nil {
			i.logger.Error("Auth gate failed to look up token",
				slog.Any("error", err), slog.String("method", info.FullMethod))

			return nil, status.Error(codes.Internal, delivery.MsgAuthInternal)
		}
		if token == nil {
			return nil, status.Error(codes.Unauthenticated, delivery.MsgInvalidToken)
		}

		user, err := i.userRepo.FindByID(ctx, token.UserID)
		if err != nil {
			i.logger.Error("Auth gate failed to look up user",
				slog.Any("error", err), slog.Int64("user_id", token.UserID))

			return nil, status.Error(codes.Internal, delivery.MsgAuthInternal)
		}
		if user == nil {
			return nil, status.Error(codes.Unauthenticated, delivery.MsgUserNotFound)
		}

		return handler(withPrincipal(ctx, user, token), req)
	}
}

// LoggingInterceptor logs every unary call with its duration and status.
func LoggingInterceptor(logger *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		attrs := []slog.Attr{
			slog.String("method", info.FullMethod),
			slog.Duration("duration", time.Since(start)),
			slog.String("code", status.Code(err).String()),
		}
		level := slog.LevelInfo
		if err != nil {
			attrs = append(attrs, slog.Any("error", err))
			level = slog.LevelWarn
		}
		logger.LogAttrs(ctx, level, "gRPC request", attrs...)

		return resp, err
	}
}
