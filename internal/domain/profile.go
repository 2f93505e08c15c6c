package domain

import (
	"encoding/json"
	"strings"
	"time"
)

// Profile es el perfil único asociado a una cuenta.
type Profile struct {
	UserID    string    `json:"-"`
	Email     string    `json:"email,omitempty"`
	Username  string    `json:"username,omitempty"`
	Name      string    `json:"name"`
	Birthday  string    `json:"birthday"`
	Horoscope string    `json:"horoscope,omitempty"`
	Zodiac    string    `json:"zodiac,omitempty"`
	Height    int       `json:"height"`
	Weight    int       `json:"weight"`
	Interests []string  `json:"interests"`
	UpdatedAt time.Time `json:"-"`
}

// IsEmpty indica si el perfil no tiene ningun dato editable cargado.
func (p Profile) IsEmpty() bool {
	return p.Name == "" && p.Birthday == "" && p.Height == 0 && p.Weight == 0 && len(p.Interests) == 0
}

// ProfileUpdate es un parche parcial: solo los campos no nulos se envian.
// Interests nil significa "sin cambios"; un slice vacio borra los intereses.
type ProfileUpdate struct {
	Name      *string
	Birthday  *string
	Height    *int
	Weight    *int
	Interests []string
}

type profileUpdateJSON struct {
	Name      *string   `json:"name,omitempty"`
	Birthday  *string   `json:"birthday,omitempty"`
	Height    *int      `json:"height,omitempty"`
	Weight    *int      `json:"weight,omitempty"`
	Interests *[]string `json:"interests,omitempty"`
}

func (u ProfileUpdate) MarshalJSON() ([]byte, error) {
	out := profileUpdateJSON{
		Name:     u.Name,
		Birthday: u.Birthday,
		Height:   u.Height,
		Weight:   u.Weight,
	}
	if u.Interests != nil {
		interests := u.Interests
		out.Interests = &interests
	}
	return json.Marshal(out)
}

func (u *ProfileUpdate) UnmarshalJSON(data []byte) error {
	var in profileUpdateJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*u = ProfileUpdate{
		Name:     in.Name,
		Birthday: in.Birthday,
		Height:   in.Height,
		Weight:   in.Weight,
	}
	if in.Interests != nil {
		u.Interests = *in.Interests
		if u.Interests == nil {
			u.Interests = []string{}
		}
	}
	return nil
}

// IsEmpty indica si el parche no modifica ningun campo.
func (u ProfileUpdate) IsEmpty() bool {
	return u.Name == nil && u.Birthday == nil && u.Height == nil && u.Weight == nil && u.Interests == nil
}

// Apply devuelve una copia del perfil con el parche aplicado.
func (u ProfileUpdate) Apply(p Profile) Profile {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Birthday != nil {
		p.Birthday = *u.Birthday
	}
	if u.Height != nil {
		p.Height = *u.Height
	}
	if u.Weight != nil {
		p.Weight = *u.Weight
	}
	if u.Interests != nil {
		p.Interests = append([]string(nil), u.Interests...)
	}
	return p
}

// FullUpdate construye un parche que reemplaza todos los campos editables.
func FullUpdate(p Profile) ProfileUpdate {
	interests := p.Interests
	if interests == nil {
		interests = []string{}
	}
	return ProfileUpdate{
		Name:      &p.Name,
		Birthday:  &p.Birthday,
		Height:    &p.Height,
		Weight:    &p.Weight,
		Interests: append([]string{}, interests...),
	}
}

// AddInterest agrega un interes recortado si no esta vacio ni repetido.
func AddInterest(interests []string, interest string) []string {
	interest = strings.TrimSpace(interest)
	if interest == "" {
		return interests
	}
	for _, existing := range interests {
		if existing == interest {
			return interests
		}
	}
	out := make([]string, 0, len(interests)+1)
	out = append(out, interests...)
	return append(out, interest)
}

// RemoveInterest quita todas las apariciones de un interes.
func RemoveInterest(interests []string, interest string) []string {
	out := make([]string, 0, len(interests))
	for _, existing := range interests {
		if existing != interest {
			out = append(out, existing)
		}
	}
	return out
}
