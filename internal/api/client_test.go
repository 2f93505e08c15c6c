package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClientPost_SendsJSONAndToken(t *testing.T) {
	var gotHeader, gotContentType, gotAccept string
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get("x-access-token")
		gotContentType = r.Header.Get("Content-Type")
		gotAccept = r.Header.Get("Accept")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"message":"ok"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", time.Second)
	var out struct {
		Message string `json:"message"`
	}
	if err := c.Post(context.Background(), "/api/login", map[string]string{"email": "a@b.c"}, "tok", &out); err != nil {
		t.Fatalf("post: %v", err)
	}
	if out.Message != "ok" {
		t.Fatalf("unexpected response: %+v", out)
	}
	if gotHeader != "tok" {
		t.Fatalf("expected token header, got %q", gotHeader)
	}
	if gotContentType != "application/json" || gotAccept != "application/json" {
		t.Fatalf("unexpected content headers: %q %q", gotContentType, gotAccept)
	}
	if gotBody["email"] != "a@b.c" {
		t.Fatalf("unexpected body: %v", gotBody)
	}
}

func TestClientGet_OmitsTokenHeaderWhenEmpty(t *testing.T) {
	var present bool
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, present = r.Header["X-Access-Token"]
		gotBody, _ = io.ReadAll(r.Body)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	if err := c.Get(context.Background(), "/api/getProfile", "", nil); err != nil {
		t.Fatalf("get: %v", err)
	}
	if present {
		t.Fatalf("expected no token header")
	}
	if len(gotBody) != 0 {
		t.Fatalf("expected empty body, got %q", gotBody)
	}
}

func TestClient_CustomTokenHeader(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, WithTokenHeader("Authorization"))
	if err := c.Delete(context.Background(), "/x", "tok", nil); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got != "tok" {
		t.Fatalf("expected token in custom header, got %q", got)
	}
}

func TestClient_ErrorMessageArrayIsJoined(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":["email must be an email","password is too short"],"error":"Bad Request","statusCode":400}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	err := c.Put(context.Background(), "/api/updateProfile", map[string]int{"height": 1}, "tok", nil)

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if apiErr.Status != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", apiErr.Status)
	}
	if apiErr.Message != "email must be an email, password is too short" {
		t.Fatalf("unexpected message: %q", apiErr.Message)
	}
}

func TestClient_ErrorMessageString(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Unauthorized"}`))
	}))
	defer srv.Close()

	err := NewClient(srv.URL, time.Second).Get(context.Background(), "/", "", nil)
	if Message(err) != "Unauthorized" || StatusOf(err) != http.StatusUnauthorized {
		t.Fatalf("unexpected error: %v (status %d)", err, StatusOf(err))
	}
}

func TestClient_GenericMessageWhenBodyHasNone(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<html>oops</html>`))
	}))
	defer srv.Close()

	err := NewClient(srv.URL, time.Second).Get(context.Background(), "/", "", nil)
	if Message(err) != "http error: status 500" {
		t.Fatalf("unexpected message: %q", Message(err))
	}
}

func TestClient_TransportErrorHasNoStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	err := NewClient(url, time.Second).Get(context.Background(), "/", "", nil)
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if !apiErr.IsTransport() {
		t.Fatalf("expected transport error, got status %d", apiErr.Status)
	}
	if apiErr.Unwrap() == nil {
		t.Fatalf("expected wrapped cause")
	}
}

func TestClient_DecodeErrorOnSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	var out map[string]any
	err := NewClient(srv.URL, time.Second).Get(context.Background(), "/", "", &out)
	if err == nil {
		t.Fatalf("expected decode error")
	}
	var apiErr *Error
	if !errors.As(err, &apiErr) || !apiErr.IsTransport() {
		t.Fatalf("expected transport-class *Error, got %#v", err)
	}
	if StatusOf(err) != 0 {
		t.Fatalf("expected status 0 on decode error, got %d", StatusOf(err))
	}
}

func TestMessage_PlainError(t *testing.T) {
	if Message(nil) != "" {
		t.Fatalf("expected empty message for nil")
	}
	if Message(errors.New("boom")) != "boom" {
		t.Fatalf("expected plain error text")
	}
}
