package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"youapp-client/internal/repository"
	"youapp-client/internal/service"
)

type testServer struct {
	router *gin.Engine
	jwt    *service.JWTService
}

func newTestServer(t *testing.T, limiter service.LoginRateLimiter) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()
	accounts := repository.NewInMemoryAccountRepository()
	profiles := repository.NewInMemoryProfileRepository()
	jwtSvc := service.NewJWTService("secret", time.Hour, service.NewMemoryTokenDenylist())
	accountSvc := service.NewAccountService(logger, accounts, jwtSvc, limiter)
	profileSvc := service.NewProfileRecordService(logger, profiles, accounts)
	router := NewRouter(logger, NewAuthHandler(logger, accountSvc), NewProfileHandler(logger, profileSvc), jwtSvc, nil)
	return &testServer{router: router, jwt: jwtSvc}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("x-access-token", token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var out map[string]any
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
			t.Fatalf("decode response %q: %v", rec.Body.String(), err)
		}
	}
	return rec, out
}

func (s *testServer) registerAndLogin(t *testing.T) string {
	t.Helper()
	creds := map[string]string{"email": "ana@example.com", "username": "ana", "password": "supersecret"}
	if rec, _ := s.do(t, http.MethodPost, "/api/register", "", creds); rec.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	rec, out := s.do(t, http.MethodPost, "/api/login", "", creds)
	if rec.Code != http.StatusCreated {
		t.Fatalf("login: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	token, _ := out["access_token"].(string)
	if token == "" {
		t.Fatalf("expected access_token in %v", out)
	}
	return token
}

func TestRouter_CORSAllowsTokenHeader(t *testing.T) {
	s := newTestServer(t, nil)
	req := httptest.NewRequest(http.MethodOptions, "/api/getProfile", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	req.Header.Set("Access-Control-Request-Headers", "x-access-token")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected preflight 204, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("unexpected allow origin: %q", rec.Header().Get("Access-Control-Allow-Origin"))
	}
}
