package security

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrTokenInvalid covers every signature, expiry and format failure. Callers
// must not learn which check rejected the token.
var ErrTokenInvalid = errors.New("invalid token")

// JWTManager signs and verifies bearer tokens. Access and refresh tokens use
// distinct secrets so one class can never be replayed as the other.
type JWTManager struct {
	issuer        string
	audience      string
	accessSecret  []byte
	refreshSecret []byte
}

func NewJWTManager(issuer, audience, accessSecret, refreshSecret string) *JWTManager {
	return &JWTManager{
		issuer:        issuer,
		audience:      audience,
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
	}
}

func (m *JWTManager) SignAccessToken(userID string, ttl time.Duration) (string, error) {
	return m.sign(userID, ttl, m.accessSecret)
}

func (m *JWTManager) SignRefreshToken(userID string, ttl time.Duration) (string, error) {
	return m.sign(userID, ttl, m.refreshSecret)
}

func (m *JWTManager) sign(userID string, ttl time.Duration, secret []byte) (string, error) {
	now := time.Now().UTC()
	// The jti keeps tokens distinct even when two are minted inside the same
	// second; rotation relies on successor tokens hashing differently.
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   userID,
		Issuer:    m.issuer,
		Audience:  jwt.ClaimStrings{m.audience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ParseAccessToken returns the subject of a valid access token.
func (m *JWTManager) ParseAccessToken(token string) (string, error) {
	return m.parse(token, m.accessSecret)
}

// ParseRefreshToken returns the subject of a valid refresh token.
func (m *JWTManager) ParseRefreshToken(token string) (string, error) {
	return m.parse(token, m.refreshSecret)
}

func (m *JWTManager) parse(token string, secret []byte) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrTokenInvalid
			}
			return secret, nil
		},
		jwt.WithIssuer(m.issuer),
		jwt.WithAudience(m.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return "", ErrTokenInvalid
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrTokenInvalid
	}
	return claims.Subject, nil
}

// HashRefreshToken produces the peppered digest stored in the refresh session
// allow-list. The raw token never touches Redis.
func HashRefreshToken(token, pepper string) string {
	mac := hmac.New(sha256.New, []byte(pepper))
	mac.Write([]byte(token))
	return hex.EncodeToString(mac.Sum(nil))
}
