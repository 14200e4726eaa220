package module

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/emrgen/prd/internal/identity"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

const (
	authorization = "authorization"
)

// UnaryServerAuthTokenInterceptor attaches the caller to the context when the
// request carries a valid bearer token. Requests without one pass through
// unauthenticated; each operation decides whether it needs a caller.
func UnaryServerAuthTokenInterceptor(verifier identity.Verifier) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
		accessToken, err := accessTokenFromHeader(ctx, authorization)
		if err != nil {
			return handler(ctx, req)
		}

		return handler(withCaller(ctx, verifier, accessToken), req)
	}
}

// HTTPAuthMiddleware does for the rest gateway what the interceptor does for grpc.
func HTTPAuthMiddleware(verifier identity.Verifier, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accessToken, ok := bearerToken(r.Header.Get(authorization))
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(withCaller(r.Context(), verifier, accessToken)))
	})
}

func withCaller(ctx context.Context, verifier identity.Verifier, accessToken string) context.Context {
	caller, err := verifier.Verify(ctx, accessToken)
	if err != nil {
		logrus.Debugf("ignoring bearer token: %v", err)
		return ctx
	}
	return identity.NewContext(ctx, caller)
}

func accessTokenFromHeader(ctx context.Context, header string) (string, error) {
	headers, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", errors.New("metadata not found")
	}

	val, ok := headers[header]
	if !ok || len(val) == 0 {
		return "", errors.New("header not found")
	}

	authToken, ok := bearerToken(val[0])
	if !ok {
		return "", errors.New("authToken not found")
	}

	return authToken, nil
}

func bearerToken(value string) (string, bool) {
	token, ok := strings.CutPrefix(value, "Bearer ")
	if !ok || token == "" {
		return "", false
	}
	return token, true
}
