package service

import (
	"context"
	"fmt"
	"time"

	"github.com/applymate/applymate-backend/internal/security"
)

// TokenPair is the caller-visible result of every token issuance. ExpiresIn
// is the access token's lifetime in seconds.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn"`
}

type TokenService struct {
	jwtMgr     *security.JWTManager
	sessions   RefreshSessionStore
	pepper     string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenService(jwtMgr *security.JWTManager, sessions RefreshSessionStore, pepper string, accessTTL, refreshTTL time.Duration) *TokenService {
	return &TokenService{jwtMgr: jwtMgr, sessions: sessions, pepper: pepper, accessTTL: accessTTL, refreshTTL: refreshTTL}
}

// Issue signs a fresh pair and records the refresh token's hash as the user's
// single active session.
func (s *TokenService) Issue(ctx context.Context, userID string) (*TokenPair, error) {
	access, err := s.jwtMgr.SignAccessToken(userID, s.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := s.jwtMgr.SignRefreshToken(userID, s.refreshTTL)
	if err != nil {
		return nil, err
	}
	hash := security.HashRefreshToken(refresh, s.pepper)
	if err := s.sessions.Put(ctx, userID, hash, s.refreshTTL); err != nil {
		return nil, fmt.Errorf("store refresh session: %w", err)
	}
	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.accessTTL.Seconds()),
	}, nil
}

// Rotate exchanges a valid refresh token for a new pair. The presented token
// is consumed from the allow-list first, so it cannot be rotated twice and
// dies the moment its successor is issued.
func (s *TokenService) Rotate(ctx context.Context, refreshToken string) (*TokenPair, string, error) {
	userID, err := s.jwtMgr.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, "", security.ErrTokenInvalid
	}
	hash := security.HashRefreshToken(refreshToken, s.pepper)
	ok, err := s.sessions.Consume(ctx, userID, hash)
	if err != nil {
		return nil, "", fmt.Errorf("consume refresh session: %w", err)
	}
	if !ok {
		return nil, "", security.ErrTokenInvalid
	}
	pair, err := s.Issue(ctx, userID)
	if err != nil {
		return nil, "", err
	}
	return pair, userID, nil
}

// Revoke drops the user's active refresh session. Outstanding access tokens
// stay valid until their own expiry.
func (s *TokenService) Revoke(ctx context.Context, userID string) error {
	return s.sessions.Revoke(ctx, userID)
}
