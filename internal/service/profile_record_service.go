package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"youapp-client/internal/domain"
	"youapp-client/internal/repository"
)

var ErrProfileExists = errors.New("profile already exists")

// ProfileRecordService es el lado servidor de los perfiles: valida, normaliza
// la fecha y calcula horóscopo y zodiaco antes de guardar.
type ProfileRecordService struct {
	logger   *zap.Logger
	profiles repository.ProfileRepository
	accounts repository.AccountRepository
	now      func() time.Time
}

func NewProfileRecordService(logger *zap.Logger, profiles repository.ProfileRepository, accounts repository.AccountRepository) *ProfileRecordService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileRecordService{
		logger:   logger,
		profiles: profiles,
		accounts: accounts,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Get devuelve el perfil de la cuenta; si no existe, uno vacío con email y username.
func (s *ProfileRecordService) Get(ctx context.Context, userID string) (domain.Profile, error) {
	account, err := s.accounts.GetByID(ctx, userID)
	if err != nil {
		return domain.Profile{}, err
	}
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return domain.Profile{}, err
		}
		profile = domain.Profile{UserID: userID, Interests: []string{}}
	}
	profile.Email = account.Email
	profile.Username = account.Username
	return profile, nil
}

func (s *ProfileRecordService) Create(ctx context.Context, userID string, input domain.Profile) (domain.Profile, error) {
	if _, err := s.profiles.GetByUserID(ctx, userID); err == nil {
		return domain.Profile{}, ErrProfileExists
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return domain.Profile{}, err
	}

	profile, err := s.prepare(userID, input)
	if err != nil {
		return domain.Profile{}, err
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return domain.Profile{}, ErrProfileExists
		}
		return domain.Profile{}, err
	}
	s.logger.Info("profile created", zap.String("user_id", userID))
	return s.Get(ctx, userID)
}

// Update aplica un parche parcial; sin perfil previo lo crea.
func (s *ProfileRecordService) Update(ctx context.Context, userID string, upd domain.ProfileUpdate) (domain.Profile, error) {
	current, err := s.profiles.GetByUserID(ctx, userID)
	exists := err == nil
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return domain.Profile{}, err
	}

	profile, err := s.prepare(userID, upd.Apply(current))
	if err != nil {
		return domain.Profile{}, err
	}
	if exists {
		err = s.profiles.Update(ctx, profile)
	} else {
		err = s.profiles.Create(ctx, profile)
	}
	if err != nil {
		return domain.Profile{}, err
	}
	return s.Get(ctx, userID)
}

func (s *ProfileRecordService) prepare(userID string, p domain.Profile) (domain.Profile, error) {
	var msgs []string
	p.UserID = userID
	p.Name = strings.TrimSpace(p.Name)
	p.Birthday = strings.TrimSpace(p.Birthday)
	if p.Birthday != "" {
		normalized, err := NormalizeBirthday(p.Birthday)
		if err != nil {
			msgs = append(msgs, "birthday must be a valid date")
		} else {
			p.Birthday = normalized
		}
	}
	if p.Height < 0 {
		msgs = append(msgs, "height must not be less than 0")
	}
	if p.Weight < 0 {
		msgs = append(msgs, "weight must not be less than 0")
	}
	if len(msgs) > 0 {
		return domain.Profile{}, &ValidationError{Messages: msgs}
	}

	interests := make([]string, 0, len(p.Interests))
	for _, interest := range p.Interests {
		interests = domain.AddInterest(interests, interest)
	}
	p.Interests = interests
	p.Horoscope = CalculateHoroscope(p.Birthday)
	p.Zodiac = CalculateZodiac(p.Birthday)
	p.UpdatedAt = s.now()
	return p, nil
}
