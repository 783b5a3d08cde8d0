// Package calendar merges dated records from the live, income and phono
// modules into one list of calendar events.
package calendar

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"sidekick/internal/datefmt"
	"sidekick/internal/sidekick"
)

type Sector string

const (
	SectorLive    Sector = "live"
	SectorRevenus Sector = "revenus"
	SectorPhono   Sector = "phono"
)

// Sectors lists every sector in display order.
var Sectors = []Sector{SectorLive, SectorRevenus, SectorPhono}

var sectorLabels = map[Sector]string{
	SectorLive:    "Live",
	SectorRevenus: "Revenus",
	SectorPhono:   "Phono",
}

func (s Sector) Label() string {
	if l, ok := sectorLabels[s]; ok {
		return l
	}
	return string(s)
}

// ParseSector validates s as a sector name.
func ParseSector(s string) (Sector, error) {
	sec := Sector(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := sectorLabels[sec]; !ok {
		return "", fmt.Errorf("unknown sector %q (expected live, revenus or phono)", s)
	}
	return sec, nil
}

type Type string

const (
	TypeRepresentation Type = "representation"
	TypeRehearsal      Type = "rehearsal"
	TypeInvoice        Type = "invoice"
	TypeSession        Type = "session"
)

// Event is one dated entry on the calendar. DateKey is YYYY-MM-DD.
type Event struct {
	ID       string `json:"id"`
	DateKey  string `json:"dateKey"`
	Label    string `json:"label"`
	Sector   Sector `json:"sector"`
	Type     Type   `json:"type"`
	SubLabel string `json:"subLabel,omitempty"`
	IsPast   bool   `json:"isPast"`
}

// Sources are the module records the calendar is built from.
type Sources struct {
	Representations []sidekick.Representation
	Rehearsals      []sidekick.RehearsalRecord
	Invoices        []sidekick.Invoice
	Sessions        []sidekick.StudioSession
}

// Build returns one event per source record with a readable date, in source
// order: representations, rehearsals, invoices, then sessions. Records whose
// date does not parse are left out. An event is past when its date is
// strictly before today's date.
func Build(src Sources, today time.Time) []Event {
	todayKey := datefmt.TodayKey(today)
	events := make([]Event, 0, len(src.Representations)+len(src.Rehearsals)+len(src.Invoices)+len(src.Sessions))

	add := func(date string, ev Event) {
		t, ok := datefmt.ParseDisplayDate(strings.TrimSpace(date))
		if !ok {
			return
		}
		ev.DateKey = datefmt.DateKey(t)
		ev.IsPast = ev.DateKey < todayKey
		events = append(events, ev)
	}

	for _, r := range src.Representations {
		add(r.Date, Event{
			ID:       fmt.Sprintf("live-rep-%d", r.ID),
			Label:    r.Venue + " - " + r.City,
			Sector:   SectorLive,
			Type:     TypeRepresentation,
			SubLabel: "Représentation",
		})
	}
	for _, r := range src.Rehearsals {
		add(r.Date, Event{
			ID:       fmt.Sprintf("live-rehearsal-%d", r.ID),
			Label:    firstNonEmpty(r.Label, r.Location),
			Sector:   SectorLive,
			Type:     TypeRehearsal,
			SubLabel: "Répétition",
		})
	}
	for _, inv := range src.Invoices {
		add(inv.DueDate, Event{
			ID:       fmt.Sprintf("revenus-invoice-%d", inv.ID),
			Label:    fmt.Sprintf("Facture %s - %s", inv.Number, inv.Client),
			Sector:   SectorRevenus,
			Type:     TypeInvoice,
			SubLabel: "Échéance facture",
		})
	}
	for _, s := range src.Sessions {
		add(s.Date, Event{
			ID:       fmt.Sprintf("phono-session-%d", s.ID),
			Label:    firstNonEmpty(s.Title, s.Location),
			Sector:   SectorPhono,
			Type:     TypeSession,
			SubLabel: "Session studio",
		})
	}
	return events
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

// Filter keeps the events of the given sectors, in order. With no sectors
// every event is kept.
func Filter(events []Event, sectors ...Sector) []Event {
	if len(sectors) == 0 {
		return append([]Event(nil), events...)
	}
	keep := make(map[Sector]bool, len(sectors))
	for _, s := range sectors {
		keep[s] = true
	}
	var out []Event
	for _, ev := range events {
		if keep[ev.Sector] {
			out = append(out, ev)
		}
	}
	return out
}

// ByDay groups events by date key, preserving their relative order.
func ByDay(events []Event) map[string][]Event {
	out := make(map[string][]Event)
	for _, ev := range events {
		out[ev.DateKey] = append(out[ev.DateKey], ev)
	}
	return out
}

// Upcoming returns at most limit events that are not past, ordered by date.
// Events on the same day keep their relative order. A limit <= 0 means no
// limit.
func Upcoming(events []Event, limit int) []Event {
	var out []Event
	for _, ev := range events {
		if !ev.IsPast {
			out = append(out, ev)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DateKey < out[j].DateKey })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// InMonth keeps the events dated in month of year.
func InMonth(events []Event, year int, month time.Month) []Event {
	prefix := fmt.Sprintf("%04d-%02d-", year, int(month))
	var out []Event
	for _, ev := range events {
		if strings.HasPrefix(ev.DateKey, prefix) {
			out = append(out, ev)
		}
	}
	return out
}

// Week holds the days of one calendar row, Monday first. Zero marks a cell
// outside the month.
type Week [7]int

// Weekdays are the column headings matching Week.
var Weekdays = [7]string{"Lun", "Mar", "Mer", "Jeu", "Ven", "Sam", "Dim"}

// MonthMatrix lays out month of year as Monday-first weeks. The first and
// last weeks are padded with zeros.
func MonthMatrix(year int, month time.Month) []Week {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	offset := (int(first.Weekday()) + 6) % 7
	days := datefmt.DaysIn(year, month)

	var weeks []Week
	var current Week
	col := offset
	for day := 1; day <= days; day++ {
		current[col] = day
		col++
		if col == 7 {
			weeks = append(weeks, current)
			current = Week{}
			col = 0
		}
	}
	if col > 0 {
		weeks = append(weeks, current)
	}
	return weeks
}
