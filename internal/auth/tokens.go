package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"lempek/internal/domain"
	"lempek/internal/domain/models"
)

// AccessClaims is the payload of the short-lived access token. It carries
// the full Principal so request handling never needs a user lookup.
type AccessClaims struct {
	jwt.RegisteredClaims
	Login    string `json:"login"`
	Username string `json:"username"`
	Admin    bool   `json:"admin"`
}

// RefreshClaims is the payload of the refresh token. TokenID points at the
// user_tokens row, so revoking the row invalidates the token.
type RefreshClaims struct {
	jwt.RegisteredClaims
	UserID  string `json:"user_id"`
	TokenID string `json:"token_id"`
}

// Tokens signs and verifies the cookie token pair with a shared HMAC secret
type Tokens struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokens creates a token signer
func NewTokens(secret string, accessTTL, refreshTTL time.Duration) *Tokens {
	return &Tokens{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// AccessTTL returns the access token lifetime
func (t *Tokens) AccessTTL() time.Duration { return t.accessTTL }

// RefreshTTL returns the refresh token lifetime
func (t *Tokens) RefreshTTL() time.Duration { return t.refreshTTL }

// SignAccess issues an access token for the principal
func (t *Tokens) SignAccess(principal *models.Principal) (string, error) {
	now := time.Now()
	claims := &AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.accessTTL)),
		},
		Login:    principal.Login,
		Username: principal.Username,
		Admin:    principal.Admin,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return signed, nil
}

// SignRefresh issues a refresh token bound to a session row
func (t *Tokens) SignRefresh(userID, tokenID string, expiresAt time.Time) (string, error) {
	claims := &RefreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UserID:  userID,
		TokenID: tokenID,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign refresh token: %w", err)
	}
	return signed, nil
}

// VerifyAccess validates an access token and returns the principal it carries
func (t *Tokens) VerifyAccess(token string) (*models.Principal, error) {
	claims := &AccessClaims{}
	if err := t.parse(token, claims); err != nil {
		return nil, err
	}

	return &models.Principal{
		UserID:   claims.Subject,
		Login:    claims.Login,
		Username: claims.Username,
		Admin:    claims.Admin,
	}, nil
}

// VerifyRefresh validates a refresh token and returns its claims
func (t *Tokens) VerifyRefresh(token string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	if err := t.parse(token, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

func (t *Tokens) parse(token string, claims jwt.Claims) error {
	parsed, err := jwt.ParseWithClaims(token, claims, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", tok.Method.Alg())
		}
		return t.secret, nil
	})
	if err != nil || !parsed.Valid {
		return domain.ErrUnauthorized
	}
	return nil
}
