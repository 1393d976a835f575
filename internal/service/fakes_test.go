package service

import (
	"context"
	"sync"
	"time"

	"github.com/applymate/applymate-backend/internal/domain"
	"github.com/applymate/applymate-backend/internal/repository"

	"github.com/google/uuid"
)

type userRepoState struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newUserRepoState() *userRepoState {
	return &userRepoState{users: make(map[string]*domain.User)}
}

func (s *userRepoState) Create(user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedAt = time.Now().UTC()
	clone := *user
	s.users[user.ID] = &clone
	return nil
}

func (s *userRepoState) FindByID(id string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (s *userRepoState) FindByEmail(email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (s *userRepoState) MarkEmailVerified(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.IsEmailVerified = true
	return nil
}

func (s *userRepoState) UpdatePassword(userID, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (s *userRepoState) Delete(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[userID]; !ok {
		return repository.ErrUserNotFound
	}
	delete(s.users, userID)
	return nil
}

type otpEntry struct {
	code      string
	expiresAt time.Time
}

type otpStoreState struct {
	mu      sync.Mutex
	entries map[string]otpEntry
	now     func() time.Time
}

func newOtpStoreState() *otpStoreState {
	return &otpStoreState{entries: make(map[string]otpEntry), now: func() time.Time { return time.Now().UTC() }}
}

func (s *otpStoreState) key(purpose domain.OtpPurpose, userID string) string {
	slot, _ := purpose.CacheSlot()
	return slot + ":" + userID
}

func (s *otpStoreState) Put(_ context.Context, purpose domain.OtpPurpose, userID, code string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[s.key(purpose, userID)] = otpEntry{code: code, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *otpStoreState) CheckAndConsume(_ context.Context, purpose domain.OtpPurpose, userID, code string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := s.key(purpose, userID)
	entry, ok := s.entries[key]
	if !ok || s.now().After(entry.expiresAt) || entry.code != code {
		return false, nil
	}
	delete(s.entries, key)
	return true, nil
}

func (s *otpStoreState) Delete(_ context.Context, purpose domain.OtpPurpose, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, s.key(purpose, userID))
	return nil
}

type otpAuditState struct {
	mu   sync.Mutex
	rows []domain.OtpCode
}

func newOtpAuditState() *otpAuditState { return &otpAuditState{} }

func (s *otpAuditState) Create(code *domain.OtpCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	code.ID = uint(len(s.rows) + 1)
	code.CreatedAt = time.Now().UTC()
	s.rows = append(s.rows, *code)
	return nil
}

func (s *otpAuditState) MarkUsed(userID string, purpose domain.OtpPurpose) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.rows {
		if s.rows[i].UserID == userID && s.rows[i].Purpose == purpose && !s.rows[i].Used {
			s.rows[i].Used = true
		}
	}
	return nil
}

func (s *otpAuditState) ListByUserPurpose(userID string, purpose domain.OtpPurpose) ([]domain.OtpCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.OtpCode
	for _, row := range s.rows {
		if row.UserID == userID && row.Purpose == purpose {
			out = append(out, row)
		}
	}
	return out, nil
}

type sessionStoreState struct {
	mu     sync.Mutex
	hashes map[string]string
}

func newSessionStoreState() *sessionStoreState {
	return &sessionStoreState{hashes: make(map[string]string)}
}

func (s *sessionStoreState) Put(_ context.Context, userID, tokenHash string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hashes[userID] = tokenHash
	return nil
}

func (s *sessionStoreState) Consume(_ context.Context, userID, tokenHash string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.hashes[userID]
	if !ok || stored != tokenHash {
		return false, nil
	}
	delete(s.hashes, userID)
	return true, nil
}

func (s *sessionStoreState) Revoke(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.hashes, userID)
	return nil
}

type notifierState struct {
	mu      sync.Mutex
	sent    []OtpNotification
	failErr error
}

func (s *notifierState) SendOtp(_ context.Context, n OtpNotification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failErr != nil {
		return s.failErr
	}
	s.sent = append(s.sent, n)
	return nil
}

func (s *notifierState) last() (OtpNotification, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.sent) == 0 {
		return OtpNotification{}, false
	}
	return s.sent[len(s.sent)-1], true
}

func (s *notifierState) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}
