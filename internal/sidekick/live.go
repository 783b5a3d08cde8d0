package sidekick

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"sidekick/internal/datefmt"
)

var (
	// ErrInvalidDate is returned when a date is not a DD/MM/YYYY calendar date.
	ErrInvalidDate = errors.New("invalid date, expected DD/MM/YYYY")
	// ErrRequired is returned when a mandatory field is empty.
	ErrRequired = errors.New("required field is empty")
)

// DefaultTime is the start time given to rehearsals and sessions without one.
const DefaultTime = "14:00"

// eventDate returns the display form of value, or today for an empty value.
func eventDate(value string, now time.Time) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return now.In(time.Local).Format("02/01/2006"), nil
	}
	d := datefmt.Normalize(value)
	if !datefmt.IsValidDisplayDate(d) {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}
	return d, nil
}

func required(field, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("%s: %w", field, ErrRequired)
	}
	return value, nil
}

// AddRepresentation appends rep with the next free id. The venue is
// required, an empty date means today and an empty status is an option.
func AddRepresentation(reps []Representation, rep Representation, now time.Time) ([]Representation, Representation, error) {
	venue, err := required("venue", rep.Venue)
	if err != nil {
		return reps, Representation{}, err
	}
	rep.Venue = venue
	if rep.Date, err = eventDate(rep.Date, now); err != nil {
		return reps, Representation{}, err
	}
	rep.City = strings.TrimSpace(rep.City)
	rep.Address = strings.TrimSpace(rep.Address)
	if rep.Status == "" {
		rep.Status = TourOption
	}
	if rep.Timetable == nil {
		rep.Timetable = []TimetableItem{}
	}
	rep.ID = NextID(reps, func(r Representation) int64 { return r.ID })
	return append(append([]Representation{}, reps...), rep), rep, nil
}

// RemoveRepresentation drops the representation with id. Its details are
// dropped separately with DropDetails.
func RemoveRepresentation(reps []Representation, id int64) []Representation {
	return filter(reps, func(r Representation) bool { return r.ID != id })
}

// DropDetails returns a copy of byRep without the entry of representation id.
func DropDetails[V any](byRep map[int64]V, id int64) map[int64]V {
	out := make(map[int64]V, len(byRep))
	for k, v := range byRep {
		if k != id {
			out[k] = v
		}
	}
	return out
}

// AssignMaterial assigns material list listID to representation repID. A
// zero listID removes the assignment.
func AssignMaterial(byRep map[int64]int64, repID, listID int64) map[int64]int64 {
	out := DropDetails(byRep, repID)
	if listID != 0 {
		out[repID] = listID
	}
	return out
}

// appendDetail copies byRep and appends entry to the list of repID, after
// stamping it with the next id within that list.
func appendDetail[E any](byRep map[int64][]E, repID int64, entry E, id func(E) int64, setID func(*E, int64)) (map[int64][]E, E) {
	out := DropDetails(byRep, repID)
	list := byRep[repID]
	setID(&entry, NextID(list, id))
	out[repID] = append(append([]E{}, list...), entry)
	return out, entry
}

// AddTransport records a transport for representation repID. The type
// defaults to train, the amount to 0.00 and the payment mode to self.
func AddTransport(byRep map[int64][]TransportEntry, repID int64, t TransportEntry) (map[int64][]TransportEntry, TransportEntry) {
	if t.Type == "" {
		t.Type = "train"
	}
	if t.Amount = strings.TrimSpace(t.Amount); t.Amount == "" {
		t.Amount = "0.00"
	}
	if t.PaymentMode == "" {
		t.PaymentMode = PaymentSelf
	}
	t.Details = strings.TrimSpace(t.Details)
	return appendDetail(byRep, repID, t,
		func(e TransportEntry) int64 { return e.ID },
		func(e *TransportEntry, id int64) { e.ID = id })
}

// AddLodging records a lodging for representation repID: a hotel night
// paid by the artist unless told otherwise.
func AddLodging(byRep map[int64][]LodgingEntry, repID int64, l LodgingEntry) (map[int64][]LodgingEntry, LodgingEntry) {
	if l.Type == "" {
		l.Type = "hotel"
	}
	if l.Nights = strings.TrimSpace(l.Nights); l.Nights == "" {
		l.Nights = "1"
	}
	if l.Amount = strings.TrimSpace(l.Amount); l.Amount == "" {
		l.Amount = "0,00"
	}
	if l.PaymentMode == "" {
		l.PaymentMode = PaymentSelf
	}
	l.Details = strings.TrimSpace(l.Details)
	return appendDetail(byRep, repID, l,
		func(e LodgingEntry) int64 { return e.ID },
		func(e *LodgingEntry, id int64) { e.ID = id })
}

// AddTourDocument records a document note for representation repID. The
// note is required.
func AddTourDocument(byRep map[int64][]TourDocumentEntry, repID int64, d TourDocumentEntry) (map[int64][]TourDocumentEntry, TourDocumentEntry, error) {
	note, err := required("note", d.Note)
	if err != nil {
		return byRep, TourDocumentEntry{}, err
	}
	d.Note = note
	if d.Type == "" {
		d.Type = "contract"
	}
	out, stored := appendDetail(byRep, repID, d,
		func(e TourDocumentEntry) int64 { return e.ID },
		func(e *TourDocumentEntry, id int64) { e.ID = id })
	return out, stored, nil
}

// SetTimetable replaces the timetable of representation repID. Rows with
// neither a time nor an activity are dropped; an empty result removes it.
func SetTimetable(byRep map[int64][]TimetableItem, repID int64, items []TimetableItem) map[int64][]TimetableItem {
	out := DropDetails(byRep, repID)
	kept := filter(items, func(it TimetableItem) bool {
		return strings.TrimSpace(it.Time) != "" || strings.TrimSpace(it.Activity) != ""
	})
	if len(kept) > 0 {
		out[repID] = kept
	}
	return out
}

// AddRehearsal puts r first in rehearsals with the next free id. The
// location is required; the date defaults to today and the time to 14:00.
func AddRehearsal(rehearsals []RehearsalRecord, r RehearsalRecord, now time.Time) ([]RehearsalRecord, RehearsalRecord, error) {
	loc, err := required("location", r.Location)
	if err != nil {
		return rehearsals, RehearsalRecord{}, err
	}
	r.Location = loc
	if r.Date, err = eventDate(r.Date, now); err != nil {
		return rehearsals, RehearsalRecord{}, err
	}
	if r.Time = strings.TrimSpace(r.Time); r.Time == "" {
		r.Time = DefaultTime
	}
	r.Label = strings.TrimSpace(r.Label)
	r.Address = strings.TrimSpace(r.Address)
	if r.Remunerations == nil {
		r.Remunerations = []RemunerationEntry{}
	}
	if r.Equipments == nil {
		r.Equipments = []EquipmentEntry{}
	}
	r.ID = NextID(rehearsals, func(x RehearsalRecord) int64 { return x.ID })
	return append([]RehearsalRecord{r}, rehearsals...), r, nil
}

// RemoveRehearsal drops the rehearsal with id.
func RemoveRehearsal(rehearsals []RehearsalRecord, id int64) []RehearsalRecord {
	return filter(rehearsals, func(r RehearsalRecord) bool { return r.ID != id })
}
