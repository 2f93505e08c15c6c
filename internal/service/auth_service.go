package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"go.uber.org/zap"

	"youapp-client/internal/api"
	"youapp-client/internal/domain"
	"youapp-client/internal/storage"
)

const (
	StorageKeyToken = "access_token"
	StorageKeyUser  = "user"

	minPasswordLength = 8
)

var (
	ErrFieldsRequired   = errors.New("all fields are required")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	ErrLoginFailed      = errors.New("login failed")
	ErrRegisterFailed   = errors.New("registration failed")
	ErrNetwork          = errors.New("network error occurred")
)

// APIClient es el subconjunto del cliente REST que usan los servicios.
type APIClient interface {
	Get(ctx context.Context, path, token string, out any) error
	Post(ctx context.Context, path string, body any, token string, out any) error
	Put(ctx context.Context, path string, body any, token string, out any) error
}

// AuthState es la foto del estado de autenticación.
type AuthState struct {
	User            *domain.User
	Token           string
	IsLoading       bool
	Error           string
	IsAuthenticated bool
}

// AuthListener recibe cada transición autenticado/anónimo.
type AuthListener func(ctx context.Context, state AuthState)

// RegisterResult describe el resultado de un registro exitoso.
type RegisterResult struct {
	Session   *domain.Session
	AutoLogin bool
	Message   string
}

type authResponse struct {
	Message     string `json:"message"`
	AccessToken string `json:"access_token"`
}

// AuthService mantiene la sesión del usuario y la persiste en un storage.Store.
type AuthService struct {
	logger *zap.Logger
	api    APIClient
	store  storage.Store

	mu        sync.Mutex
	state     AuthState
	listeners map[int]AuthListener
	nextID    int
}

func NewAuthService(logger *zap.Logger, apiClient APIClient, store storage.Store) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		logger:    logger,
		api:       apiClient,
		store:     store,
		state:     AuthState{IsLoading: true},
		listeners: make(map[int]AuthListener),
	}
}

// Init restaura la sesión persistida. Datos corruptos se borran y la sesión queda anónima.
func (s *AuthService) Init(ctx context.Context) AuthState {
	token, user, ok := s.loadPersisted(ctx)
	s.update(ctx, func(st *AuthState) {
		st.IsLoading = false
		if ok {
			st.Token = token
			st.User = &user
			st.IsAuthenticated = true
		}
	})
	return s.State()
}

func (s *AuthService) loadPersisted(ctx context.Context) (string, domain.User, bool) {
	token, hasToken, err := s.store.Get(ctx, StorageKeyToken)
	if err != nil {
		s.discardOnCorrupt(ctx, err)
		return "", domain.User{}, false
	}
	rawUser, hasUser, err := s.store.Get(ctx, StorageKeyUser)
	if err != nil {
		s.discardOnCorrupt(ctx, err)
		return "", domain.User{}, false
	}
	if !hasToken || token == "" || !hasUser || rawUser == "" {
		s.logger.Debug("no stored session found")
		return "", domain.User{}, false
	}

	var user domain.User
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		s.logger.Warn("discarding malformed stored session", zap.Error(err))
		s.clearPersisted(ctx)
		return "", domain.User{}, false
	}
	s.logger.Debug("restored session", zap.String("token", domain.TokenPreview(token)))
	return token, user, true
}

func (s *AuthService) discardOnCorrupt(ctx context.Context, err error) {
	if !errors.Is(err, storage.ErrCorruptStore) {
		s.logger.Warn("session storage not available", zap.Error(err))
		return
	}
	s.logger.Warn("discarding corrupt session storage", zap.Error(err))
	s.clearPersisted(ctx)
}

func (s *AuthService) clearPersisted(ctx context.Context) {
	if err := s.store.Delete(ctx, StorageKeyToken, StorageKeyUser); err != nil {
		s.logger.Warn("clear stored session failed", zap.Error(err))
	}
}

func (s *AuthService) Login(ctx context.Context, creds domain.Credentials) (domain.Session, error) {
	s.update(ctx, func(st *AuthState) {
		st.IsLoading = true
		st.Error = ""
	})
	defer s.setLoading(ctx, false)

	creds = cleanCredentials(creds)
	if err := validateCredentials(creds); err != nil {
		s.setError(ctx, err)
		return domain.Session{}, err
	}

	var resp authResponse
	if err := s.api.Post(ctx, "/api/login", creds, "", &resp); err != nil {
		s.setError(ctx, err)
		return domain.Session{}, err
	}
	if resp.AccessToken == "" {
		err := ErrLoginFailed
		if resp.Message != "" {
			err = fmt.Errorf("%w: %s", ErrLoginFailed, resp.Message)
		}
		s.setError(ctx, err)
		return domain.Session{}, err
	}

	return s.establish(ctx, resp.AccessToken), nil
}

func (s *AuthService) Register(ctx context.Context, creds domain.Credentials) (RegisterResult, error) {
	s.update(ctx, func(st *AuthState) {
		st.IsLoading = true
		st.Error = ""
	})
	defer s.setLoading(ctx, false)

	creds = cleanCredentials(creds)
	if err := validateCredentials(creds); err != nil {
		s.setError(ctx, err)
		return RegisterResult{}, err
	}

	var resp authResponse
	if err := s.api.Post(ctx, "/api/register", creds, "", &resp); err != nil {
		s.setError(ctx, err)
		return RegisterResult{}, err
	}

	switch {
	case resp.AccessToken != "":
		session := s.establish(ctx, resp.AccessToken)
		return RegisterResult{Session: &session, AutoLogin: true, Message: resp.Message}, nil
	case resp.Message != "":
		return RegisterResult{Message: resp.Message}, nil
	default:
		s.setError(ctx, ErrRegisterFailed)
		return RegisterResult{}, ErrRegisterFailed
	}
}

// Logout avisa al servidor si puede y siempre limpia la sesión local.
func (s *AuthService) Logout(ctx context.Context) {
	s.setLoading(ctx, true)
	token := s.Token()
	if token != "" {
		if err := s.api.Post(ctx, "/api/logout", struct{}{}, token, nil); err != nil {
			s.logger.Warn("logout request failed", zap.Error(err))
		}
	}
	s.clearPersisted(ctx)
	s.update(ctx, func(st *AuthState) {
		*st = AuthState{}
	})
}

// establish decodifica el token, lo persiste y marca la sesión autenticada.
// Un payload ilegible deja un usuario con campos vacíos.
func (s *AuthService) establish(ctx context.Context, token string) domain.Session {
	user, err := ExtractUserFromToken(token)
	if err != nil {
		s.logger.Warn("could not extract user from token", zap.Error(err))
		user = domain.User{}
	}

	if err := s.store.Set(ctx, StorageKeyToken, token); err != nil {
		s.logger.Warn("persist token failed", zap.Error(err))
	}
	if rawUser, err := json.Marshal(user); err != nil {
		s.logger.Warn("encode user failed", zap.Error(err))
	} else if err := s.store.Set(ctx, StorageKeyUser, string(rawUser)); err != nil {
		s.logger.Warn("persist user failed", zap.Error(err))
	}

	s.update(ctx, func(st *AuthState) {
		u := user
		st.User = &u
		st.Token = token
		st.IsAuthenticated = true
		st.Error = ""
	})
	s.logger.Debug("session established", zap.String("token", domain.TokenPreview(token)))
	return domain.Session{User: user, Token: token, IsAuthenticated: true}
}

func (s *AuthService) State() AuthState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyState(s.state)
}

func (s *AuthService) Session() (domain.Session, bool) {
	st := s.State()
	if !st.IsAuthenticated || st.User == nil {
		return domain.Session{}, false
	}
	return domain.Session{User: *st.User, Token: st.Token, IsAuthenticated: true}, true
}

func (s *AuthService) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Token
}

// Subscribe registra un listener; la función devuelta lo quita.
func (s *AuthService) Subscribe(fn AuthListener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// Close suelta los listeners; el Store lo cierra quien lo creó.
func (s *AuthService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = make(map[int]AuthListener)
}

func (s *AuthService) setLoading(ctx context.Context, loading bool) {
	s.update(ctx, func(st *AuthState) { st.IsLoading = loading })
}

func (s *AuthService) setError(ctx context.Context, err error) {
	msg := api.Message(err)
	if msg == "" {
		msg = ErrNetwork.Error()
	}
	s.update(ctx, func(st *AuthState) { st.Error = msg })
}

// update aplica fn bajo lock y, si cambió la identidad de la sesión,
// notifica a los listeners ya sin lock.
func (s *AuthService) update(ctx context.Context, fn func(st *AuthState)) {
	s.mu.Lock()
	before := s.state
	fn(&s.state)
	after := copyState(s.state)
	changed := before.IsAuthenticated != after.IsAuthenticated || before.Token != after.Token
	var listeners []AuthListener
	if changed {
		listeners = make([]AuthListener, 0, len(s.listeners))
		for _, l := range s.listeners {
			listeners = append(listeners, l)
		}
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(ctx, after)
	}
}

func copyState(st AuthState) AuthState {
	if st.User != nil {
		u := *st.User
		st.User = &u
	}
	return st
}

func cleanCredentials(c domain.Credentials) domain.Credentials {
	return domain.Credentials{
		Email:    strings.TrimSpace(c.Email),
		Username: strings.TrimSpace(c.Username),
		Password: strings.TrimSpace(c.Password),
	}
}

func validateCredentials(c domain.Credentials) error {
	if c.Email == "" || c.Username == "" || c.Password == "" {
		return ErrFieldsRequired
	}
	if utf8.RuneCountInString(c.Password) < minPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

// IsValidationError indica si el error se produjo antes de llamar a la API.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrFieldsRequired) || errors.Is(err, ErrPasswordTooShort) || errors.Is(err, ErrInvalidBirthday)
}
