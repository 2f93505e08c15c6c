package service

import (
	"fmt"
	"time"

	"youapp-client/internal/domain"
)

// SyncStatus resume el estado del perfil para la vista.
type SyncStatus string

const (
	StatusSyncing     SyncStatus = "syncing"
	StatusSyncFailed  SyncStatus = "sync failed"
	StatusSetupNeeded SyncStatus = "setup needed"
	StatusOK          SyncStatus = "ok"
)

// ProfileView son los datos listos para mostrar, con los campos derivados ya calculados.
type ProfileView struct {
	Username  string
	Name      string
	Birthday  string
	Age       int
	Horoscope string
	Zodiac    string
	Height    string
	Weight    string
	Interests []string
	Status    SyncStatus
	Error     string
}

// NewProfileView arma la vista; horóscopo y zodiaco del servidor tienen prioridad
// y se calculan localmente solo si vienen vacíos.
func NewProfileView(p *domain.Profile, username string, loading bool, errMsg string, now time.Time) ProfileView {
	v := ProfileView{
		Username: username,
		Status:   statusFor(p, loading, errMsg),
		Error:    errMsg,
	}
	if p == nil {
		return v
	}

	v.Name = p.Name
	if v.Name == "" {
		v.Name = username
	}
	if p.Birthday != "" {
		v.Birthday = FormatBirthdayDisplay(p.Birthday)
		v.Age = CalculateAge(p.Birthday, now)
	}
	v.Horoscope = p.Horoscope
	if v.Horoscope == "" {
		v.Horoscope = CalculateHoroscope(p.Birthday)
	}
	v.Zodiac = p.Zodiac
	if v.Zodiac == "" {
		v.Zodiac = CalculateZodiac(p.Birthday)
	}
	if p.Height > 0 {
		v.Height = fmt.Sprintf("%d cm", p.Height)
	}
	if p.Weight > 0 {
		v.Weight = fmt.Sprintf("%d kg", p.Weight)
	}
	v.Interests = append([]string(nil), p.Interests...)
	return v
}

func statusFor(p *domain.Profile, loading bool, errMsg string) SyncStatus {
	switch {
	case loading:
		return StatusSyncing
	case errMsg != "":
		return StatusSyncFailed
	case p == nil || p.IsEmpty():
		return StatusSetupNeeded
	default:
		return StatusOK
	}
}

// View arma la vista del perfil en caché para el usuario de la sesión.
func (s *ProfileService) View(now time.Time) ProfileView {
	username := ""
	if st := s.auth.State(); st.User != nil {
		username = st.User.Username
	}
	s.mu.Lock()
	var p *domain.Profile
	if s.profile != nil {
		cp := *s.profile
		p = &cp
	}
	loading, errMsg := s.loading, s.err
	s.mu.Unlock()
	return NewProfileView(p, username, loading, errMsg, now)
}

// Status devuelve el estado de sincronización actual.
func (s *ProfileService) Status() SyncStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return statusFor(s.profile, s.loading, s.err)
}
