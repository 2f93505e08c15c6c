package service

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"youapp-client/internal/api"
	"youapp-client/internal/domain"
)

var (
	ErrNotAuthenticated    = errors.New("user not authenticated")
	ErrNoProfileData       = errors.New("no profile data received")
	ErrProfileCreateFailed = errors.New("profile creation failed")
	ErrProfileUpdateFailed = errors.New("profile update failed")
	ErrProfileMissing      = errors.New("profile not created yet")
	ErrInvalidBirthday     = errors.New("invalid birthday")
)

// SessionSource es lo que ProfileService necesita del AuthService.
type SessionSource interface {
	State() AuthState
	Subscribe(fn AuthListener) func()
}

type profileResponse struct {
	Message string          `json:"message"`
	Data    *domain.Profile `json:"data"`
}

type writeResponse struct {
	Message string `json:"message"`
}

type profileWriteRequest struct {
	Name      string   `json:"name"`
	Birthday  string   `json:"birthday"`
	Height    int      `json:"height"`
	Weight    int      `json:"weight"`
	Interests []string `json:"interests"`
}

// ProfileService cachea el perfil del usuario autenticado.
//
// Política de consistencia: write-then-reload. Tras un create/update exitoso
// se vuelve a pedir el perfil y la caché se reemplaza con esa lectura; el
// cuerpo de la respuesta de escritura nunca se usa como fuente de verdad.
type ProfileService struct {
	logger *zap.Logger
	api    APIClient
	auth   SessionSource

	mu          sync.Mutex
	profile     *domain.Profile
	loading     bool
	err         string
	unsubscribe func()
}

func NewProfileService(logger *zap.Logger, apiClient APIClient, auth SessionSource) *ProfileService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileService{
		logger: logger,
		api:    apiClient,
		auth:   auth,
	}
}

// Start engancha el servicio a las transiciones de sesión: al autenticarse sin
// perfil en caché lo pide una vez; al cerrar sesión limpia la caché.
func (s *ProfileService) Start(ctx context.Context) {
	s.mu.Lock()
	if s.unsubscribe != nil {
		s.mu.Unlock()
		return
	}
	s.unsubscribe = s.auth.Subscribe(s.onAuthChange)
	s.mu.Unlock()

	s.onAuthChange(ctx, s.auth.State())
}

func (s *ProfileService) Stop() {
	s.mu.Lock()
	unsubscribe := s.unsubscribe
	s.unsubscribe = nil
	s.mu.Unlock()
	if unsubscribe != nil {
		unsubscribe()
	}
}

func (s *ProfileService) onAuthChange(ctx context.Context, st AuthState) {
	if !st.IsAuthenticated || st.Token == "" {
		s.clear()
		return
	}
	if s.HasProfile() {
		return
	}
	if _, err := s.GetProfile(ctx); err != nil {
		s.logger.Warn("auto fetch profile failed", zap.Error(err))
	}
}

func (s *ProfileService) GetProfile(ctx context.Context) (domain.Profile, error) {
	token, ok := s.token()
	if !ok {
		return domain.Profile{}, ErrNotAuthenticated
	}
	s.begin()
	defer s.end()
	return s.fetch(ctx, token)
}

func (s *ProfileService) fetch(ctx context.Context, token string) (domain.Profile, error) {
	var resp profileResponse
	if err := s.api.Get(ctx, "/api/getProfile", token, &resp); err != nil {
		s.logger.Error("get profile failed", zap.Error(err))
		s.fail(err)
		return domain.Profile{}, err
	}
	if resp.Data == nil {
		return domain.Profile{}, ErrNoProfileData
	}
	profile := *resp.Data
	s.mu.Lock()
	s.profile = &profile
	s.mu.Unlock()
	return profile, nil
}

func (s *ProfileService) CreateProfile(ctx context.Context, p domain.Profile) (string, error) {
	token, ok := s.token()
	if !ok {
		return "", ErrNotAuthenticated
	}
	s.begin()
	defer s.end()

	interests := p.Interests
	if interests == nil {
		interests = []string{}
	}
	body := profileWriteRequest{
		Name:      p.Name,
		Birthday:  p.Birthday,
		Height:    p.Height,
		Weight:    p.Weight,
		Interests: interests,
	}
	var resp writeResponse
	if err := s.api.Post(ctx, "/api/createProfile", body, token, &resp); err != nil {
		s.logger.Error("create profile failed", zap.Error(err))
		s.fail(err)
		return "", err
	}
	if resp.Message == "" {
		return "", ErrProfileCreateFailed
	}
	s.reload(ctx, token)
	return resp.Message, nil
}

func (s *ProfileService) UpdateProfile(ctx context.Context, upd domain.ProfileUpdate) (string, error) {
	token, ok := s.token()
	if !ok {
		return "", ErrNotAuthenticated
	}
	s.begin()
	defer s.end()

	var resp writeResponse
	if err := s.api.Put(ctx, "/api/updateProfile", upd, token, &resp); err != nil {
		s.logger.Error("update profile failed", zap.Error(err))
		s.fail(err)
		return "", err
	}
	if resp.Message == "" {
		return "", ErrProfileUpdateFailed
	}
	s.reload(ctx, token)
	return resp.Message, nil
}

// reload aplica la política write-then-reload. Una falla de lectura queda en
// el estado pero no anula la escritura ya aceptada por el servidor.
func (s *ProfileService) reload(ctx context.Context, token string) {
	if _, err := s.fetch(ctx, token); err != nil {
		s.logger.Warn("reload after write failed", zap.Error(err))
	}
}

// SaveAbout actualiza el perfil completo si existe y si no lo crea.
func (s *ProfileService) SaveAbout(ctx context.Context, p domain.Profile) (string, error) {
	if p.Birthday != "" {
		normalized, err := NormalizeBirthday(p.Birthday)
		if err != nil {
			s.SetError(err.Error())
			return "", err
		}
		p.Birthday = normalized
	}
	if s.HasProfile() {
		return s.UpdateProfile(ctx, domain.FullUpdate(p))
	}
	return s.CreateProfile(ctx, p)
}

// SaveInterests guarda solo los intereses; sin perfil crea uno mínimo con el username.
func (s *ProfileService) SaveInterests(ctx context.Context, interests []string) (string, error) {
	if interests == nil {
		interests = []string{}
	}
	if s.HasProfile() {
		return s.UpdateProfile(ctx, domain.ProfileUpdate{Interests: interests})
	}
	name := ""
	if st := s.auth.State(); st.User != nil {
		name = st.User.Username
	}
	return s.CreateProfile(ctx, domain.Profile{Name: name, Interests: interests})
}

// SetName cambia solo el nombre visible; requiere un perfil existente.
func (s *ProfileService) SetName(ctx context.Context, name string) (string, error) {
	if !s.HasProfile() {
		return "", ErrProfileMissing
	}
	return s.UpdateProfile(ctx, domain.ProfileUpdate{Name: &name})
}

func (s *ProfileService) Profile() (domain.Profile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile == nil {
		return domain.Profile{}, false
	}
	p := *s.profile
	p.Interests = append([]string(nil), s.profile.Interests...)
	return p, true
}

func (s *ProfileService) HasProfile() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile != nil
}

func (s *ProfileService) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *ProfileService) Error() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *ProfileService) SetError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = msg
}

func (s *ProfileService) token() (string, bool) {
	st := s.auth.State()
	if !st.IsAuthenticated || st.Token == "" {
		s.SetError(ErrNotAuthenticated.Error())
		return "", false
	}
	return st.Token, true
}

func (s *ProfileService) begin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = true
	s.err = ""
}

func (s *ProfileService) end() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
}

func (s *ProfileService) fail(err error) {
	msg := api.Message(err)
	if msg == "" {
		msg = ErrNetwork.Error()
	}
	s.SetError(msg)
}

func (s *ProfileService) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = nil
	s.err = ""
}
