package service

import (
	"errors"
	"testing"
	"time"
)

func TestCalculateHoroscope_Boundaries(t *testing.T) {
	cases := map[string]string{
		"2024-01-20":     "Aquarius",
		"2024-01-19":     "Capricorn",
		"2024-01-01":     "Capricorn",
		"2024-02-19":     "Pisces",
		"2024-03-20":     "Pisces",
		"2024-03-21":     "Aries",
		"2024-06-22":     "Cancer",
		"2024-10-23":     "Libra",
		"2024-10-24":     "Scorpio",
		"2024-12-21":     "Sagittarius",
		"2024-12-22":     "Capricorn",
		"20/01/2024":     "Aquarius",
		"20 / 01 / 2024": "Aquarius",
	}
	for input, want := range cases {
		if got := CalculateHoroscope(input); got != want {
			t.Fatalf("CalculateHoroscope(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestCalculateHoroscope_Unparseable(t *testing.T) {
	for _, input := range []string{"", "   ", "not a date", "2024-13-40"} {
		if got := CalculateHoroscope(input); got != "" {
			t.Fatalf("CalculateHoroscope(%q) = %q, want empty", input, got)
		}
	}
}

func TestCalculateZodiac(t *testing.T) {
	cases := map[string]string{
		"2000-06-01": "Dragon",
		"1900-01-01": "Rat",
		"1911-05-05": "Pig",
		"1991-07-07": "Goat",
		"1899-12-31": "Pig",
		"01/06/2000": "Dragon",
	}
	for input, want := range cases {
		if got := CalculateZodiac(input); got != want {
			t.Fatalf("CalculateZodiac(%q) = %q, want %q", input, got, want)
		}
	}
	if got := CalculateZodiac("garbage"); got != "" {
		t.Fatalf("expected empty zodiac, got %q", got)
	}
}

func TestCalculateAge(t *testing.T) {
	now := time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)

	if got := CalculateAge("2000-10-19", now); got != 26 {
		t.Fatalf("birthday today: got %d, want 26", got)
	}
	if got := CalculateAge("2000-10-20", now); got != 25 {
		t.Fatalf("birthday tomorrow: got %d, want 25", got)
	}
	if got := CalculateAge("2000-11-01", now); got != 25 {
		t.Fatalf("birthday next month: got %d, want 25", got)
	}
	if got := CalculateAge("19/10/2000", now); got != 26 {
		t.Fatalf("DD/MM/YYYY input: got %d, want 26", got)
	}
	if got := CalculateAge(" 20 / 10 / 2000 ", now); got != 25 {
		t.Fatalf("spaced input: got %d, want 25", got)
	}
	if got := CalculateAge("nope", now); got != 0 {
		t.Fatalf("unparseable: got %d, want 0", got)
	}
	if got := CalculateAge("2030-01-01", now); got != 0 {
		t.Fatalf("future birthday: got %d, want 0", got)
	}
}

func TestCalculateAge_OneYearMinusOneDay(t *testing.T) {
	now := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
	birthday := now.AddDate(-1, 0, 1).Format("2006-01-02")

	naive := now.Year() - 2025
	if got := CalculateAge(birthday, now); got != naive-1 {
		t.Fatalf("CalculateAge(%q) = %d, want %d", birthday, got, naive-1)
	}
}

func TestFormatBirthdayDisplay(t *testing.T) {
	if got := FormatBirthdayDisplay("2000-06-01"); got != "01 / 06 / 2000" {
		t.Fatalf("unexpected display: %q", got)
	}
	if got := FormatBirthdayDisplay("01/06/2000"); got != "01/06/2000" {
		t.Fatalf("expected passthrough, got %q", got)
	}
	if got := FormatBirthdayDisplay(""); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}

func TestFormatBirthdayInput(t *testing.T) {
	if got := FormatBirthdayInput("1 6 2000"); got != "2000-06-01" {
		t.Fatalf("unexpected input format: %q", got)
	}
	if got := FormatBirthdayInput("2000-06-01"); got != "2000-06-01" {
		t.Fatalf("expected passthrough, got %q", got)
	}
}

func TestNormalizeBirthday(t *testing.T) {
	got, err := NormalizeBirthday("01 / 06 / 2000")
	if err != nil || got != "2000-06-01" {
		t.Fatalf("unexpected normalize: %q %v", got, err)
	}
	if _, err := NormalizeBirthday("31/02/2000"); !errors.Is(err, ErrInvalidBirthday) {
		t.Fatalf("expected ErrInvalidBirthday, got %v", err)
	}
}
