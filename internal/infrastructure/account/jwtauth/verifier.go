package jwtauth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/riskibarqy/betfinder/internal/domain/user"
	"github.com/riskibarqy/betfinder/internal/usecase"
)

// Verifier checks HS256 bearer tokens issued by the account service.
// Tokens are verified only; this service never issues them.
type Verifier struct {
	secret []byte
	issuer string
	leeway time.Duration
}

type claims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

func NewVerifier(secret, issuer string) *Verifier {
	return &Verifier{
		secret: []byte(secret),
		issuer: strings.TrimSpace(issuer),
		leeway: 30 * time.Second,
	}
}

func (v *Verifier) VerifyAccessToken(_ context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}
	if len(v.secret) == 0 {
		return user.Principal{}, fmt.Errorf("%w: token verification is not configured", usecase.ErrUnauthorized)
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(v.leeway),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	var parsed claims
	if _, err := jwt.ParseWithClaims(token, &parsed, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, opts...); err != nil {
		return user.Principal{}, fmt.Errorf("%w: %w", usecase.ErrUnauthorized, err)
	}

	if strings.TrimSpace(parsed.Subject) == "" {
		return user.Principal{}, fmt.Errorf("%w: token subject is empty", usecase.ErrUnauthorized)
	}

	return user.Principal{
		UserID: parsed.Subject,
		Email:  parsed.Email,
		Role:   parsed.Role,
	}, nil
}
