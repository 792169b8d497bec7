package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var errMissingSubject = errors.New("token missing subject claim")

const defaultTokenTTL = 7 * 24 * time.Hour

// Issuer mints HMAC-signed session tokens for authenticated learners.
type Issuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer creates a token issuer signing with the shared secret.
func NewIssuer(secret, issuer string) (*Issuer, error) {
	if secret == "" {
		return nil, fmt.Errorf("signing secret is required")
	}
	return &Issuer{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    defaultTokenTTL,
		now:    time.Now,
	}, nil
}

// IssueToken signs a session token for the given user.
func (i *Issuer) IssueToken(userID, username string) (string, error) {
	now := i.now()
	claims := jwt.MapClaims{
		"sub":      userID,
		"username": username,
		"iat":      now.Unix(),
		"exp":      now.Add(i.ttl).Unix(),
	}
	if i.issuer != "" {
		claims["iss"] = i.issuer
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// tokenVerifier validates HMAC-signed session tokens.
type tokenVerifier struct {
	secret []byte
	issuer string
}

func newTokenVerifier(cfg Config) (Verifier, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("signing secret is required when auth mode=token")
	}
	return &tokenVerifier{secret: []byte(cfg.Secret), issuer: cfg.Issuer}, nil
}

func (v *tokenVerifier) Verify(_ context.Context, token string) (AuthenticatedUser, error) {
	options := []jwt.ParserOption{
		jwt.WithLeeway(5 * time.Second),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	}
	if v.issuer != "" {
		options = append(options, jwt.WithIssuer(v.issuer))
	}

	t, err := jwt.Parse(token, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, options...)
	if err != nil {
		return AuthenticatedUser{}, fmt.Errorf("token verification failed: %w", err)
	}

	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return AuthenticatedUser{}, errors.New("unexpected claims type")
	}

	subject, ok := claims["sub"].(string)
	if !ok || subject == "" {
		return AuthenticatedUser{}, errMissingSubject
	}

	username, _ := claims["username"].(string)

	expiresAt := int64(0)
	if expRaw, ok := claims["exp"].(float64); ok {
		expiresAt = int64(expRaw)
	}

	return AuthenticatedUser{
		UserID:    subject,
		Username:  username,
		ExpiresAt: expiresAt,
		Token:     token,
	}, nil
}
