package service

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signedTestToken(t *testing.T, claims TokenClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestExtractUserFromToken(t *testing.T) {
	token := signedTestToken(t, TokenClaims{
		UserID:   "u1",
		Email:    "ana@example.com",
		Username: "ana",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	user, err := ExtractUserFromToken(token)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if user.ID != "u1" || user.Email != "ana@example.com" || user.Username != "ana" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestExtractUserFromToken_IgnoresExpiryAndSignature(t *testing.T) {
	token := signedTestToken(t, TokenClaims{
		UserID: "u1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})
	tampered := token[:len(token)-4] + "AAAA"

	user, err := ExtractUserFromToken(tampered)
	if err != nil {
		t.Fatalf("expected expired/tampered token to decode, got %v", err)
	}
	if user.ID != "u1" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestExtractUserFromToken_PaddedPayload(t *testing.T) {
	header := base64.URLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	payload := base64.URLEncoding.EncodeToString([]byte(`{"id":"u9","email":"e@x.io","username":"uu"}`))
	if payload[len(payload)-1] != '=' {
		t.Fatalf("test payload should carry padding: %s", payload)
	}
	token := header + "." + payload + ".sig"

	user, err := ExtractUserFromToken(token)
	if err != nil {
		t.Fatalf("extract padded: %v", err)
	}
	if user.ID != "u9" || user.Username != "uu" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestExtractUserFromToken_Malformed(t *testing.T) {
	for _, token := range []string{"", "abc", "a.b", "a.b.c.d", "x.%%%.y"} {
		if _, err := ExtractUserFromToken(token); err == nil {
			t.Fatalf("expected error for %q", token)
		}
	}
}

func TestExtractUserFromToken_UnknownAlgorithm(t *testing.T) {
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"XYZ"}`))
	payload := base64.RawURLEncoding.EncodeToString([]byte(`{"id":"u3","email":"kai@example.com","username":"kai"}`))

	user, err := ExtractUserFromToken(header + "." + payload + ".sig")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if user.ID != "u3" || user.Email != "kai@example.com" || user.Username != "kai" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestExtractUserFromToken_PayloadNotJSON(t *testing.T) {
	payload := base64.RawURLEncoding.EncodeToString([]byte(`not json`))
	if _, err := ExtractUserFromToken("h." + payload + ".s"); err == nil {
		t.Fatalf("expected error for non-JSON payload")
	}
}
