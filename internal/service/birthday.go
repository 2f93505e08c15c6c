package service

import (
	"fmt"
	"strings"
	"time"
)

var birthdayLayouts = []string{"2006-1-2", "2/1/2006"}

type signStart struct {
	month time.Month
	day   int
	name  string
}

// signStarts en orden de calendario; cada signo rige desde su fecha hasta la siguiente.
var signStarts = []signStart{
	{time.January, 20, "Aquarius"},
	{time.February, 19, "Pisces"},
	{time.March, 21, "Aries"},
	{time.April, 20, "Taurus"},
	{time.May, 21, "Gemini"},
	{time.June, 22, "Cancer"},
	{time.July, 23, "Leo"},
	{time.August, 23, "Virgo"},
	{time.September, 23, "Libra"},
	{time.October, 24, "Scorpio"},
	{time.November, 22, "Sagittarius"},
	{time.December, 22, "Capricorn"},
}

var zodiacAnimals = []string{"Rat", "Ox", "Tiger", "Rabbit", "Dragon", "Snake", "Horse", "Goat", "Monkey", "Rooster", "Dog", "Pig"}

const zodiacBaseYear = 1900

// ParseBirthday acepta YYYY-MM-DD, DD/MM/YYYY (con espacios opcionales) o RFC3339.
func ParseBirthday(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), true
	}
	compact := strings.ReplaceAll(value, " ", "")
	for _, layout := range birthdayLayouts {
		if t, err := time.Parse(layout, compact); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// CalculateAge devuelve los años cumplidos a la fecha now; 0 si no se puede parsear.
func CalculateAge(birthday string, now time.Time) int {
	born, ok := ParseBirthday(birthday)
	if !ok {
		return 0
	}
	age := now.Year() - born.Year()
	if now.Month() < born.Month() || (now.Month() == born.Month() && now.Day() < born.Day()) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}

func CalculateHoroscope(birthday string) string {
	born, ok := ParseBirthday(birthday)
	if !ok {
		return ""
	}
	return horoscopeFor(born.Month(), born.Day())
}

func horoscopeFor(month time.Month, day int) string {
	for i := len(signStarts) - 1; i >= 0; i-- {
		s := signStarts[i]
		if month > s.month || (month == s.month && day >= s.day) {
			return s.name
		}
	}
	return "Capricorn"
}

func CalculateZodiac(birthday string) string {
	born, ok := ParseBirthday(birthday)
	if !ok {
		return ""
	}
	idx := (born.Year() - zodiacBaseYear) % len(zodiacAnimals)
	if idx < 0 {
		idx += len(zodiacAnimals)
	}
	return zodiacAnimals[idx]
}

// FormatBirthdayDisplay convierte YYYY-MM-DD en "DD / MM / YYYY"; lo demás se devuelve igual.
func FormatBirthdayDisplay(value string) string {
	if !strings.Contains(value, "-") || len(strings.Split(value, "-")) != 3 {
		return value
	}
	t, ok := ParseBirthday(value)
	if !ok {
		return value
	}
	return fmt.Sprintf("%02d / %02d / %d", t.Day(), int(t.Month()), t.Year())
}

// FormatBirthdayInput convierte "DD MM YYYY" en YYYY-MM-DD; lo demás se devuelve igual.
func FormatBirthdayInput(value string) string {
	parts := strings.Split(value, " ")
	if len(parts) != 3 {
		return value
	}
	return fmt.Sprintf("%s-%s-%s", parts[2], padTwo(parts[1]), padTwo(parts[0]))
}

// NormalizeBirthday devuelve la fecha en YYYY-MM-DD, o error si no es una fecha valida.
func NormalizeBirthday(value string) (string, error) {
	t, ok := ParseBirthday(value)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidBirthday, value)
	}
	return t.Format("2006-01-02"), nil
}

func padTwo(s string) string {
	if len(s) >= 2 {
		return s
	}
	return strings.Repeat("0", 2-len(s)) + s
}
