// internal/app/system/auth/tokens.go

// Package auth issues and verifies the signed bearer tokens the API
// authenticates with, and provides the router middleware that gates
// endpoints by role.
//
// Three token kinds share one claim shape: short-lived access tokens,
// longer-lived refresh tokens (delivered in an httpOnly cookie), and
// ten-minute password-reset tokens. Access and reset tokens are signed
// with the primary secret, refresh tokens with their own.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/hopecharity/hopehub/internal/app/system/apierror"
	"github.com/hopecharity/hopehub/internal/domain/models"
)

// CookieName is the cookie carrying the refresh token.
const CookieName = "refreshToken"

// Claims is the payload every HopeHub token carries: subject id (the
// user's ObjectID hex), email, and role.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Manager signs and verifies tokens.
type Manager struct {
	secret        []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	resetTTL      time.Duration
}

// NewManager builds a token manager. resetTTL bounds password-reset
// links.
func NewManager(secret, refreshSecret string, accessTTL, refreshTTL, resetTTL time.Duration) *Manager {
	return &Manager{
		secret:        []byte(secret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		resetTTL:      resetTTL,
	}
}

// RefreshTTL returns the refresh token lifetime, used for cookie expiry.
func (m *Manager) RefreshTTL() time.Duration { return m.refreshTTL }

// IssueAccess signs a short-lived access token for u.
func (m *Manager) IssueAccess(u *models.User) (string, error) {
	return m.sign(u, m.secret, m.accessTTL)
}

// IssueRefresh signs a refresh token for u.
func (m *Manager) IssueRefresh(u *models.User) (string, error) {
	return m.sign(u, m.refreshSecret, m.refreshTTL)
}

// IssueReset signs a password-reset token for u.
func (m *Manager) IssueReset(u *models.User) (string, error) {
	return m.sign(u, m.secret, m.resetTTL)
}

func (m *Manager) sign(u *models.User, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: u.Email,
		Role:  u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.Hex(),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// VerifyAccess validates an access (or reset) token and returns its
// claims. Invalid or expired tokens yield a Forbidden error.
func (m *Manager) VerifyAccess(token string) (*Claims, error) {
	return verify(token, m.secret)
}

// VerifyRefresh validates a refresh token and returns its claims.
func (m *Manager) VerifyRefresh(token string) (*Claims, error) {
	return verify(token, m.refreshSecret)
}

func verify(token string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return nil, apierror.Forbidden("Invalid token")
	}
	return claims, nil
}

// PairMatch verifies the access/refresh pair independently and checks
// both identify the same subject. Used as a secondary gate before
// role-authenticated mutations; any failure is Unauthorized.
func (m *Manager) PairMatch(accessToken, refreshToken string) error {
	access, err := m.VerifyAccess(accessToken)
	if err != nil {
		return apierror.Unauthorized("Unauthorized access")
	}
	refresh, err := m.VerifyRefresh(refreshToken)
	if err != nil {
		return apierror.Unauthorized("Unauthorized access")
	}
	if access.Subject == "" || access.Subject != refresh.Subject {
		return apierror.Unauthorized("Unauthorized access")
	}
	return nil
}
