package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"youapp-client/internal/domain"
)

const defaultIssuer = "youapp-dev-api"

// JWTService emite y valida los access tokens de la API de desarrollo.
type JWTService struct {
	secret   []byte
	ttl      time.Duration
	issuer   string
	denylist TokenDenylist
}

var (
	ErrJWTInvalid = errors.New("jwt invalid")
	ErrJWTExpired = errors.New("jwt expired")
	ErrJWTRevoked = errors.New("jwt revoked")
)

func NewJWTService(secret string, ttl time.Duration, denylist TokenDenylist) *JWTService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if denylist == nil {
		denylist = NewMemoryTokenDenylist()
	}
	return &JWTService{
		secret:   []byte(secret),
		ttl:      ttl,
		issuer:   defaultIssuer,
		denylist: denylist,
	}
}

// Issue firma un token HS256 con id, email y username en el payload.
func (s *JWTService) Issue(account domain.Account) (string, error) {
	if len(s.secret) == 0 {
		return "", ErrJWTInvalid
	}
	now := time.Now().UTC()
	claims := TokenClaims{
		UserID:   account.ID,
		Email:    account.Email,
		Username: account.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Subject:   account.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Parse valida firma, expiración, emisor y que el jti no esté revocado.
func (s *JWTService) Parse(tokenString string) (TokenClaims, error) {
	if len(s.secret) == 0 {
		return TokenClaims{}, ErrJWTInvalid
	}
	if strings.TrimSpace(tokenString) == "" {
		return TokenClaims{}, ErrJWTInvalid
	}

	var claims TokenClaims
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	_, err := parser.ParseWithClaims(tokenString, &claims, func(_ *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return TokenClaims{}, ErrJWTExpired
		}
		return TokenClaims{}, ErrJWTInvalid
	}
	if !s.isValidClaims(claims) {
		return TokenClaims{}, ErrJWTInvalid
	}

	revoked, err := s.denylist.IsRevoked(claims.ID)
	if err != nil {
		return TokenClaims{}, err
	}
	if revoked {
		return TokenClaims{}, ErrJWTRevoked
	}
	return claims, nil
}

// Revoke invalida el token hasta su expiración natural.
func (s *JWTService) Revoke(claims TokenClaims) error {
	if claims.ID == "" {
		return ErrJWTInvalid
	}
	ttl := s.ttl
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	if ttl <= 0 {
		return nil
	}
	return s.denylist.Revoke(claims.ID, ttl)
}

func (s *JWTService) isValidClaims(claims TokenClaims) bool {
	if strings.TrimSpace(claims.UserID) == "" {
		return false
	}
	if claims.Subject != claims.UserID {
		return false
	}
	if strings.TrimSpace(claims.ID) == "" {
		return false
	}
	return strings.TrimSpace(claims.Issuer) == s.issuer
}
