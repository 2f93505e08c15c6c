package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"youapp-client/internal/service"
)

// renderProfile imprime la vista del perfil como tabla de dos columnas.
func renderProfile(w io.Writer, v service.ProfileView) {
	title := "@" + v.Username
	if v.Age > 0 {
		title += ", " + strconv.Itoa(v.Age)
	}
	color.New(color.FgHiYellow, color.Bold).Fprintln(w, title)

	switch v.Status {
	case service.StatusSyncFailed:
		color.New(color.FgHiRed).Fprintf(w, "Sin sincronizar: %s\n", v.Error)
	case service.StatusSetupNeeded:
		fmt.Fprintln(w, "Completá tu perfil para ayudar a otros a conocerte mejor.")
		return
	case service.StatusSyncing:
		fmt.Fprintln(w, "Sincronizando...")
		return
	}

	rows := [][]string{
		{"Display name", v.Name},
		{"Birthday", v.Birthday},
		{"Horoscope", v.Horoscope},
		{"Zodiac", v.Zodiac},
		{"Height", v.Height},
		{"Weight", v.Weight},
		{"Interests", strings.Join(v.Interests, ", ")},
	}
	table := tablewriter.NewWriter(w)
	for _, row := range rows {
		field := color.New(color.FgHiBlue, color.Bold).Sprint(row[0])
		if err := table.Append([]string{field, row[1]}); err != nil {
			fmt.Fprintf(w, "Failed to append row: %v\n", err)
			return
		}
	}
	if err := table.Render(); err != nil {
		fmt.Fprintf(w, "Failed to render table: %v\n", err)
	}
}
