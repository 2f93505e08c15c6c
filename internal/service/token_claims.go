package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"youapp-client/internal/domain"
)

// TokenClaims es el payload de los access tokens que emite la API.
type TokenClaims struct {
	UserID   string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

var (
	unverifiedParser = jwt.NewParser(jwt.WithPaddingAllowed())

	ErrMalformedToken = errors.New("token must have three segments")
)

// ExtractUserFromToken decodifica solo el segmento de payload del JWT; el header
// y la firma no se miran. La identidad es informativa, la API es quien valida.
func ExtractUserFromToken(token string) (domain.User, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return domain.User{}, ErrMalformedToken
	}
	raw, err := unverifiedParser.DecodeSegment(parts[1])
	if err != nil {
		return domain.User{}, fmt.Errorf("decode token payload: %w", err)
	}
	var claims TokenClaims
	if err := json.Unmarshal(raw, &claims); err != nil {
		return domain.User{}, fmt.Errorf("decode token payload: %w", err)
	}
	return domain.User{
		ID:       claims.UserID,
		Email:    claims.Email,
		Username: claims.Username,
	}, nil
}
