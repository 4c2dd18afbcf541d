package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/config"
	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	ID       string `json:"id,omitempty"`
	jwt.RegisteredClaims
}

// Complete reports whether the identity fields every token must carry are present.
func (c *Claims) Complete() bool {
	return c.Username != "" && c.Email != "" && c.Role != ""
}

// SameIdentity compares username, email and role. ID and timestamps are ignored.
func (c *Claims) SameIdentity(other *Claims) bool {
	return c.Username == other.Username && c.Email == other.Email && c.Role == other.Role
}

type TokenStatus int

const (
	TokenValid TokenStatus = iota
	TokenExpired
	TokenInvalid
)

func (s TokenStatus) String() string {
	switch s {
	case TokenValid:
		return "valid"
	case TokenExpired:
		return "expired"
	default:
		return "invalid"
	}
}

// Verification is the outcome of TokenCodec.Verify.
// Claims is set for TokenValid and TokenExpired, Reason only for TokenInvalid.
type Verification struct {
	Status TokenStatus
	Claims *Claims
	Reason string
}

type TokenCodec struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewTokenCodec(cfg *config.JWTConfig) (*TokenCodec, error) {
	if cfg == nil || cfg.SecretKey == "" {
		return nil, errors.New("jwt secret key is not configured")
	}

	accessTTL, err := time.ParseDuration(cfg.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("parsing access token ttl: %w", err)
	}
	refreshTTL, err := time.ParseDuration(cfg.RefreshTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("parsing refresh token ttl: %w", err)
	}

	return &TokenCodec{
		secret:     []byte(cfg.SecretKey),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}, nil
}

func (c *TokenCodec) AccessTTL() time.Duration {
	return c.accessTTL
}

func (c *TokenCodec) RefreshTTL() time.Duration {
	return c.refreshTTL
}

// Issue signs the identity part of claims with a fresh iat/exp.
func (c *TokenCodec) Issue(claims Claims, ttl time.Duration) (string, error) {
	now := c.now()
	toSign := Claims{
		Username: claims.Username,
		Email:    claims.Email,
		Role:     claims.Role,
		ID:       claims.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, toSign).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return token, nil
}

func (c *TokenCodec) IssueAccess(claims Claims) (string, error) {
	return c.Issue(claims, c.accessTTL)
}

func (c *TokenCodec) IssueRefresh(claims Claims) (string, error) {
	return c.Issue(claims, c.refreshTTL)
}

func (c *TokenCodec) Verify(token string) Verification {
	claims := &Claims{}

	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
	)

	switch {
	case err == nil:
		return Verification{Status: TokenValid, Claims: claims}
	case errors.Is(err, jwt.ErrTokenExpired):
		// the signature is checked before the claims, so an expired token is authentic
		return Verification{Status: TokenExpired, Claims: claims}
	default:
		return Verification{Status: TokenInvalid, Reason: invalidReason(err)}
	}
}

func invalidReason(err error) string {
	for _, known := range []error{
		jwt.ErrTokenMalformed,
		jwt.ErrTokenSignatureInvalid,
		jwt.ErrTokenUnverifiable,
		jwt.ErrTokenNotValidYet,
		jwt.ErrTokenUsedBeforeIssued,
		jwt.ErrTokenInvalidClaims,
	} {
		if errors.Is(err, known) {
			return known.Error()
		}
	}
	return err.Error()
}
