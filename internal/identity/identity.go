package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/emrgen/prd/internal/config"
	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Caller is the authenticated principal of a request. Subject is the id
// assigned by the external identity provider (the user's clerk id).
type Caller struct {
	Subject string
}

type callerKey struct{}

// NewContext returns a copy of ctx carrying the caller.
func NewContext(ctx context.Context, caller Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, caller)
}

// FromContext returns the caller attached to ctx, or nil when the request is
// unauthenticated.
func FromContext(ctx context.Context) *Caller {
	caller, ok := ctx.Value(callerKey{}).(Caller)
	if !ok || caller.Subject == "" {
		return nil
	}
	return &caller
}

// Verifier turns a bearer token into a caller.
type Verifier interface {
	Verify(ctx context.Context, token string) (Caller, error)
}

// JWTVerifier accepts HS256 tokens signed with a shared secret whose sub
// claim names the caller.
type JWTVerifier struct {
	secret []byte
}

func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

func (v *JWTVerifier) Verify(_ context.Context, token string) (Caller, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return v.secret, nil
	})
	if err != nil || !parsed.Valid {
		return Caller{}, ErrInvalidToken
	}
	if claims.Subject == "" {
		return Caller{}, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	return Caller{Subject: claims.Subject}, nil
}

// IssueToken signs a token for subject. The server never issues tokens; this
// is used by the cli context and by tests.
func (v *JWTVerifier) IssueToken(subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}

// InsecureVerifier trusts the token as the subject itself. Local development only.
type InsecureVerifier struct{}

func (InsecureVerifier) Verify(_ context.Context, token string) (Caller, error) {
	if token == "" {
		return Caller{}, ErrInvalidToken
	}
	return Caller{Subject: token}, nil
}

// NewVerifier builds the verifier selected by AUTH_MODE.
func NewVerifier(cfg *config.Config) (Verifier, error) {
	switch cfg.Auth.Mode {
	case "jwt":
		if cfg.Auth.JWTSecret == "" {
			return nil, errors.New("AUTH_JWT_SECRET is required when AUTH_MODE is jwt")
		}
		return NewJWTVerifier(cfg.Auth.JWTSecret), nil
	case "insecure":
		return InsecureVerifier{}, nil
	default:
		return nil, fmt.Errorf("unknown auth mode %q", cfg.Auth.Mode)
	}
}
