package sidekick

import "strings"

// VenueContactRole is the role given to contacts created from prospection.
const VenueContactRole = "Programmateur de salle"

// AddProspectionEntry normalizes entry and puts it first in entries with the
// next free id.
func AddProspectionEntry(entries []ProspectionEntry, entry ProspectionEntry) ([]ProspectionEntry, ProspectionEntry) {
	entry.VenueName = strings.TrimSpace(entry.VenueName)
	if entry.VenueName == "" {
		entry.VenueName = "Sans nom"
	}
	entry.City = strings.TrimSpace(entry.City)
	entry.Contact = strings.TrimSpace(entry.Contact)
	entry.Email = strings.TrimSpace(entry.Email)
	entry.Phone = strings.TrimSpace(entry.Phone)
	entry.Notes = strings.TrimSpace(entry.Notes)
	if entry.Status == "" {
		entry.Status = ProspectionToContact
	}
	entry.ID = NextID(entries, func(e ProspectionEntry) int64 { return e.ID })
	return append([]ProspectionEntry{entry}, entries...), entry
}

// AddVenueContact appends the contact person of a stored prospection entry
// to contacts unless one with the same name exists. It reports whether a
// contact was added.
func AddVenueContact(contacts []ContactRecord, entry ProspectionEntry) ([]ContactRecord, bool) {
	name := strings.TrimSpace(entry.Contact)
	if name == "" || hasContactNamed(contacts, name) {
		return contacts, false
	}
	return append(append([]ContactRecord{}, contacts...), ContactRecord{
		ID:    NextID(contacts, func(c ContactRecord) int64 { return c.ID }),
		Name:  name,
		Role:  VenueContactRole,
		City:  strings.TrimSpace(entry.City),
		Email: strings.TrimSpace(entry.Email),
		Phone: strings.TrimSpace(entry.Phone),
	}), true
}

func hasContactNamed(contacts []ContactRecord, name string) bool {
	want := normalizeName(name)
	for _, c := range contacts {
		if normalizeName(c.Name) == want {
			return true
		}
	}
	return false
}

func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
