package repository

import (
	"context"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5"

	"youapp-client/internal/domain"
)

// InMemoryAccountRepository sirve para desarrollo local sin Postgres.
// Igual que la versión pg, devuelve pgx.ErrNoRows cuando no encuentra.
type InMemoryAccountRepository struct {
	mu       sync.RWMutex
	byID     map[string]domain.Account
	email    map[string]string
	username map[string]string
}

func NewInMemoryAccountRepository() *InMemoryAccountRepository {
	return &InMemoryAccountRepository{
		byID:     make(map[string]domain.Account),
		email:    make(map[string]string),
		username: make(map[string]string),
	}
}

func (r *InMemoryAccountRepository) Create(_ context.Context, account domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	emailKey := strings.ToLower(account.Email)
	if _, ok := r.email[emailKey]; ok {
		return ErrDuplicate
	}
	if _, ok := r.username[account.Username]; ok {
		return ErrDuplicate
	}
	r.byID[account.ID] = account
	r.email[emailKey] = account.ID
	r.username[account.Username] = account.ID
	return nil
}

func (r *InMemoryAccountRepository) GetByID(_ context.Context, id string) (domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.byID[id]
	if !ok {
		return domain.Account{}, pgx.ErrNoRows
	}
	return a, nil
}

func (r *InMemoryAccountRepository) GetByEmail(ctx context.Context, email string) (domain.Account, error) {
	r.mu.RLock()
	id, ok := r.email[strings.ToLower(email)]
	r.mu.RUnlock()
	if !ok {
		return domain.Account{}, pgx.ErrNoRows
	}
	return r.GetByID(ctx, id)
}

func (r *InMemoryAccountRepository) GetByUsername(ctx context.Context, username string) (domain.Account, error) {
	r.mu.RLock()
	id, ok := r.username[username]
	r.mu.RUnlock()
	if !ok {
		return domain.Account{}, pgx.ErrNoRows
	}
	return r.GetByID(ctx, id)
}

type InMemoryProfileRepository struct {
	mu       sync.RWMutex
	profiles map[string]domain.Profile
}

func NewInMemoryProfileRepository() *InMemoryProfileRepository {
	return &InMemoryProfileRepository{profiles: make(map[string]domain.Profile)}
}

func (r *InMemoryProfileRepository) Create(_ context.Context, profile domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[profile.UserID]; ok {
		return ErrDuplicate
	}
	r.profiles[profile.UserID] = cloneProfile(profile)
	return nil
}

func (r *InMemoryProfileRepository) Update(_ context.Context, profile domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[profile.UserID]; !ok {
		return pgx.ErrNoRows
	}
	r.profiles[profile.UserID] = cloneProfile(profile)
	return nil
}

func (r *InMemoryProfileRepository) GetByUserID(_ context.Context, userID string) (domain.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.profiles[userID]
	if !ok {
		return domain.Profile{}, pgx.ErrNoRows
	}
	return cloneProfile(p), nil
}

func cloneProfile(p domain.Profile) domain.Profile {
	p.Interests = append([]string{}, p.Interests...)
	return p
}
