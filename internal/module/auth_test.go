package module

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/emrgen/prd/internal/identity"
	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

func TestUnaryServerAuthTokenInterceptor(t *testing.T) {
	interceptor := UnaryServerAuthTokenInterceptor(identity.InsecureVerifier{})

	tests := []struct {
		name    string
		md      metadata.MD
		subject string
	}{
		{name: "no metadata"},
		{name: "no header", md: metadata.Pairs("x-other", "1")},
		{name: "not bearer", md: metadata.Pairs(authorization, "Basic abc")},
		{name: "empty bearer", md: metadata.Pairs(authorization, "Bearer ")},
		{name: "bearer", md: metadata.Pairs(authorization, "Bearer user_1"), subject: "user_1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			if tt.md != nil {
				ctx = metadata.NewIncomingContext(ctx, tt.md)
			}

			var got *identity.Caller
			_, err := interceptor(ctx, nil, &grpc.UnaryServerInfo{}, func(ctx context.Context, req any) (any, error) {
				got = identity.FromContext(ctx)
				return nil, nil
			})
			assert.NoError(t, err)

			if tt.subject == "" {
				assert.Nil(t, got)
				return
			}
			if assert.NotNil(t, got) {
				assert.Equal(t, tt.subject, got.Subject)
			}
		})
	}
}

func TestHTTPAuthMiddleware(t *testing.T) {
	var got *identity.Caller
	handler := HTTPAuthMiddleware(identity.NewJWTVerifier("secret"), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = identity.FromContext(r.Context())
	}))

	token, err := identity.NewJWTVerifier("secret").IssueToken("user_1", time.Minute)
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/prd", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(httptest.NewRecorder(), req)
	if assert.NotNil(t, got) {
		assert.Equal(t, "user_1", got.Subject)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/prd", nil)
	req.Header.Set("Authorization", "Bearer forged")
	handler.ServeHTTP(httptest.NewRecorder(), req)
	assert.Nil(t, got)
}
