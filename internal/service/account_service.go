package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"youapp-client/internal/domain"
	"youapp-client/internal/repository"
)

var (
	ErrAccountExists      = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrRateLimited        = errors.New("too many login attempts")
)

// ValidationError agrupa los mensajes de validación de un request.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, ", ")
}

// AccountService registra cuentas y emite tokens para la API de desarrollo.
type AccountService struct {
	logger   *zap.Logger
	accounts repository.AccountRepository
	jwt      *JWTService
	limiter  LoginRateLimiter
}

func NewAccountService(logger *zap.Logger, accounts repository.AccountRepository, jwtSvc *JWTService, limiter LoginRateLimiter) *AccountService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if limiter == nil {
		limiter = NewLoginRateLimiter(10)
	}
	return &AccountService{
		logger:   logger,
		accounts: accounts,
		jwt:      jwtSvc,
		limiter:  limiter,
	}
}

func (s *AccountService) Register(ctx context.Context, creds domain.Credentials) (domain.Account, error) {
	creds = cleanCredentials(creds)
	creds.Email = normalizeEmail(creds.Email)
	if err := validateRegistration(creds); err != nil {
		return domain.Account{}, err
	}

	if _, err := s.accounts.GetByEmail(ctx, creds.Email); err == nil {
		return domain.Account{}, ErrAccountExists
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return domain.Account{}, err
	}
	if _, err := s.accounts.GetByUsername(ctx, creds.Username); err == nil {
		return domain.Account{}, ErrAccountExists
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return domain.Account{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.Account{}, err
	}
	account := domain.Account{
		ID:           uuid.NewString(),
		Email:        creds.Email,
		Username:     creds.Username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return domain.Account{}, ErrAccountExists
		}
		return domain.Account{}, err
	}
	s.logger.Info("account registered", zap.String("account_id", account.ID))
	return account, nil
}

// Login busca la cuenta por email y si no por username, y devuelve un access token.
func (s *AccountService) Login(ctx context.Context, creds domain.Credentials) (string, error) {
	creds = cleanCredentials(creds)
	creds.Email = normalizeEmail(creds.Email)
	if (creds.Email == "" && creds.Username == "") || creds.Password == "" {
		return "", ErrInvalidCredentials
	}

	key := creds.Email
	if key == "" {
		key = creds.Username
	}
	if !s.limiter.Allow(key) {
		s.logger.Warn("login throttled", zap.String("key", key))
		return "", ErrRateLimited
	}

	account, err := s.lookup(ctx, creds)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(creds.Password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.jwt.Issue(account)
}

func (s *AccountService) lookup(ctx context.Context, creds domain.Credentials) (domain.Account, error) {
	if creds.Email != "" {
		account, err := s.accounts.GetByEmail(ctx, creds.Email)
		if err == nil || !errors.Is(err, pgx.ErrNoRows) || creds.Username == "" {
			return account, err
		}
	}
	return s.accounts.GetByUsername(ctx, creds.Username)
}

// Logout revoca el token presentado.
func (s *AccountService) Logout(_ context.Context, claims TokenClaims) error {
	return s.jwt.Revoke(claims)
}

func validateRegistration(c domain.Credentials) error {
	var msgs []string
	if _, err := mail.ParseAddress(c.Email); err != nil || c.Email == "" {
		msgs = append(msgs, "email must be an email")
	}
	if c.Username == "" {
		msgs = append(msgs, "username should not be empty")
	}
	if utf8.RuneCountInString(c.Password) < minPasswordLength {
		msgs = append(msgs, "password must be longer than or equal to 8 characters")
	}
	if len(msgs) > 0 {
		return &ValidationError{Messages: msgs}
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
