package main

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"youapp-client/internal/api"
	"youapp-client/internal/domain"
	"youapp-client/internal/service"
)

type fixedSession struct{}

func (fixedSession) State() service.AuthState {
	return service.AuthState{
		User:            &domain.User{ID: "u1", Username: "ana"},
		Token:           "token",
		IsAuthenticated: true,
	}
}

func (fixedSession) Subscribe(service.AuthListener) func() { return func() {} }

// silentAPI acepta todas las escrituras sin devolver "message".
type silentAPI struct{}

func (silentAPI) Get(context.Context, string, string, any) error { return nil }
func (silentAPI) Post(context.Context, string, any, string, any) error { return nil }
func (silentAPI) Put(context.Context, string, any, string, any) error { return nil }

func TestFailureMessage(t *testing.T) {
	cases := []struct {
		name  string
		err   error
		state string
		want  string
	}{
		{"state wins", &api.Error{Message: "Unauthorized", Status: 401}, "Unauthorized", "Unauthorized"},
		{"falls back to error", service.ErrProfileUpdateFailed, "", "profile update failed"},
		{"validation is marked", service.ErrPasswordTooShort, service.ErrPasswordTooShort.Error(), "Datos inválidos: password must be at least 8 characters"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := failureMessage(tc.err, tc.state); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestEditInterests_ReportsWriteWithoutMessage(t *testing.T) {
	color.NoColor = true
	var out bytes.Buffer
	c := &cli{
		reader:   bufio.NewReader(strings.NewReader("+Music\n\n")),
		out:      &out,
		profiles: service.NewProfileService(zap.NewNop(), silentAPI{}, fixedSession{}),
	}

	c.editInterests(context.Background())

	got := out.String()
	if !strings.Contains(got, service.ErrProfileCreateFailed.Error()) {
		t.Fatalf("expected create failure in output, got %q", got)
	}
	if strings.Contains(got, "Error desconocido.") {
		t.Fatalf("unexpected generic error: %q", got)
	}
}
