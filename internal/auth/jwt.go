package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mmynk/tripsplit/internal/models"
)

const issuer = "tripsplit"

// DefaultRefreshTTL is how long refresh tokens live unless WithRefreshTTL says otherwise.
const DefaultRefreshTTL = 7 * 24 * time.Hour

// Token types carried in the typ claim. Only access tokens authenticate RPCs; refresh
// tokens are only good for minting new access tokens.
const (
	TokenAccess  = "access"
	TokenRefresh = "refresh"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrMissingToken = errors.New("authorization token required")
)

// JWTManager issues and verifies session tokens.
type JWTManager struct {
	secretKey       []byte
	tokenDuration   time.Duration
	refreshDuration time.Duration
	now             func() time.Time
}

// JWTOption configures a JWTManager.
type JWTOption func(*JWTManager)

// WithRefreshTTL sets the lifetime of refresh tokens.
func WithRefreshTTL(d time.Duration) JWTOption {
	return func(m *JWTManager) {
		if d > 0 {
			m.refreshDuration = d
		}
	}
}

// Claims carries the session identity. The subject is the user ID.
type Claims struct {
	Email       string `json:"email"`
	DisplayName string `json:"name,omitempty"`
	Type        string `json:"typ"`
	jwt.RegisteredClaims
}

// UserID returns the subject claim.
func (c *Claims) UserID() string { return c.Subject }

// NewJWTManager creates a manager signing with secretKey; access tokens live for
// tokenDuration.
func NewJWTManager(secretKey string, tokenDuration time.Duration, opts ...JWTOption) *JWTManager {
	m := &JWTManager{
		secretKey:       []byte(secretKey),
		tokenDuration:   tokenDuration,
		refreshDuration: DefaultRefreshTTL,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Generate signs an access token for user.
func (m *JWTManager) Generate(user *models.User) (string, error) {
	return m.sign(user, TokenAccess, m.tokenDuration)
}

// GenerateRefresh signs a long-lived refresh token for user.
func (m *JWTManager) GenerateRefresh(user *models.User) (string, error) {
	return m.sign(user, TokenRefresh, m.refreshDuration)
}

func (m *JWTManager) sign(user *models.User, typ string, ttl time.Duration) (string, error) {
	now := m.now()
	claims := &Claims{
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Type:        typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Validate parses an access token and returns its claims.
func (m *JWTManager) Validate(tokenString string) (*Claims, error) {
	return m.parse(tokenString, TokenAccess)
}

// ValidateRefresh parses a refresh token and returns its claims.
func (m *JWTManager) ValidateRefresh(tokenString string) (*Claims, error) {
	return m.parse(tokenString, TokenRefresh)
}

func (m *JWTManager) parse(tokenString, typ string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (any, error) {
			return m.secretKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	if claims.Type != typ {
		return nil, fmt.Errorf("%w: %s token where %s expected", ErrInvalidToken, claims.Type, typ)
	}
	return claims, nil
}
