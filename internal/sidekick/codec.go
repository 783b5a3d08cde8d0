package sidekick

import "encoding/json"

// JSON encoding for document records. Every record keeps unknown members in
// its Extra map; see decodeRecord and encodeRecord.

func unmarshalEntity[T any](data []byte, dst *T, def T) error {
	if isJSONNull(data) {
		return nil
	}
	*dst = def
	return decodeRecord(data, dst)
}

// unmarshalGroup merges data over the group defaults. A group that is not an
// object is replaced by its defaults.
func unmarshalGroup[T any](data []byte, dst *T, def T) error {
	*dst = def
	if !isJSONObject(data) {
		return nil
	}
	return decodeRecord(data, dst)
}

func (d Document) MarshalJSON() ([]byte, error) { return encodeRecord(d) }

// UnmarshalJSON decodes data with MergeWithDefaults semantics.
func (d *Document) UnmarshalJSON(data []byte) error {
	*d = MergeWithDefaults(data)
	return nil
}

func (t Todo) MarshalJSON() ([]byte, error)     { return encodeRecord(t) }
func (t *Todo) UnmarshalJSON(data []byte) error { return unmarshalEntity(data, t, Todo{}) }

func (g Admin) MarshalJSON() ([]byte, error)     { return encodeRecord(g) }
func (g *Admin) UnmarshalJSON(data []byte) error { return unmarshalGroup(data, g, defaultAdmin()) }

func (r AdminStructure) MarshalJSON() ([]byte, error) { return encodeRecord(r) }
func (r *AdminStructure) UnmarshalJSON(data []byte) error {
	return unmarshalEntity(data, r, AdminStructure{})
}

func (r AdminProcedure) MarshalJSON() ([]byte, error) { return encodeRecord(r) }
func (r *AdminProcedure) UnmarshalJSON(data []byte) error {
	return unmarshalEntity(data, r, AdminProcedure{})
}

func (r AdminDocument) MarshalJSON() ([]byte, error) { return encodeRecord(r) }
func (r *AdminDocument) UnmarshalJSON(data []byte) error {
	return unmarshalEntity(data, r, AdminDocument{})
}

func (r AdminIntermittenceMission) MarshalJSON() ([]byte, error) { return encodeRecord(r) }
func (r *AdminIntermittenceMission) UnmarshalJSON(data []byte) error {
	return unmarshalEntity(data, r, AdminIntermittenceMission{})
}

func (g Calendar) MarshalJSON() ([]byte, error) { return encodeRecord(g) }
func (g *Calendar) UnmarshalJSON(data []byte) error {
	return unmarshalGroup(data, g, defaultCalendar())
}

func (r CalendarEvent) MarshalJSON() ([]byte, error) { return encodeRecord(r) }
func (r *CalendarEvent) UnmarshalJSON(data []byte) error {
	return unmarshalEntity(data, r, CalendarEvent{})
}

func (g Contacts) MarshalJSON() ([]byte, error) { return encodeRecord(g) }
func (g *Contacts) UnmarshalJSON(data []byte) error {
	return unmarshalGroup(data, g, defaultContacts())
}

func (r Contact) MarshalJSON() ([]byte, error)     { return encodeRecord(r) }
func (r *Contact) UnmarshalJSON(data []byte) error { return unmarshalEntity(data, r, Contact{}) }

func (r ProspectionItem) MarshalJSON() ([]byte, error) { return encodeRecord(r) }
func (r *ProspectionItem) UnmarshalJSON(data []byte) error {
	return unmarshalEntity(data, r, ProspectionItem{})
}

func (g Dashboard) MarshalJSON() ([]byte, error) { return encodeRecord(g) }
func (g *Dashboard) UnmarshalJSON(data []byte) error {
	return unmarshalGroup(data, g, Dashboard{})
}

func (r Profile) MarshalJSON() ([]byte, error)     { return encodeRecord(r) }
func (r *Profile) UnmarshalJSON(data []byte) error { return unmarshalEntity(data, r, Profile{}) }

func (g Edition) MarshalJSON() ([]byte, error) { return encodeRecord(g) }
func (g *Edition) UnmarshalJSON(data []byte) error {
	return unmarshalGroup(data, g, defaultEdition())
}

func (r Work) MarshalJSON() ([]byte, error)     { return encodeRecord(r) }
func (r *Work) UnmarshalJSON(data []byte) error { return unmarshalEntity(data, r, Work{}) }

func (r SyncState) MarshalJSON() ([]byte, error)     { return encodeRecord(r) }
func (r *SyncState) UnmarshalJSON(data []byte) error { return unmarshalEntity(data, r, SyncState{}) }

func (g Incomes) MarshalJSON() ([]byte, error) { return encodeRecord(g) }
func (g *Incomes) UnmarshalJSON(data []byte) error {
	return unmarshalGroup(data, g, defaultIncomes())
}

func (r IncomeItem) MarshalJSON() ([]byte, error)     { return encodeRecord(r) }
func (r *IncomeItem) UnmarshalJSON(data []byte) error { return unmarshalEntity(data, r, IncomeItem{}) }

func (g Live) MarshalJSON() ([]byte, error)     { return encodeRecord(g) }
func (g *Live) UnmarshalJSON(data []byte) error { return unmarshalGroup(data, g, defaultLive()) }

func (r TourDate) MarshalJSON() ([]byte, error)     { return encodeRecord(r) }
func (r *TourDate) UnmarshalJSON(data []byte) error { return unmarshalEntity(data, r, TourDate{}) }

func (r Rehearsal) MarshalJSON() ([]byte, error)     { return encodeRecord(r) }
func (r *Rehearsal) UnmarshalJSON(data []byte) error { return unmarshalEntity(data, r, Rehearsal{}) }

func (r EquipmentItem) MarshalJSON() ([]byte, error) { return encodeRecord(r) }
func (r *EquipmentItem) UnmarshalJSON(data []byte) error {
	return unmarshalEntity(data, r, EquipmentItem{})
}

func (g Marketing) MarshalJSON() ([]byte, error) { return encodeRecord(g) }
func (g *Marketing) UnmarshalJSON(data []byte) error {
	return unmarshalGroup(data, g, defaultMarketing())
}

func (r MailingItem) MarshalJSON() ([]byte, error) { return encodeRecord(r) }
func (r *MailingItem) UnmarshalJSON(data []byte) error {
	return unmarshalEntity(data, r, MailingItem{})
}

func (r MarketingEvent) MarshalJSON() ([]byte, error) { return encodeRecord(r) }
func (r *MarketingEvent) UnmarshalJSON(data []byte) error {
	return unmarshalEntity(data, r, MarketingEvent{})
}

func (g Phono) MarshalJSON() ([]byte, error)     { return encodeRecord(g) }
func (g *Phono) UnmarshalJSON(data []byte) error { return unmarshalGroup(data, g, defaultPhono()) }

func (r TrackVersion) MarshalJSON() ([]byte, error) { return encodeRecord(r) }
func (r *TrackVersion) UnmarshalJSON(data []byte) error {
	return unmarshalEntity(data, r, TrackVersion{})
}

// Tracks missing selfProduced are self-produced; tracks missing a role are
// credited to the main artist.
func (r Track) MarshalJSON() ([]byte, error)     { return encodeRecord(r) }
func (r *Track) UnmarshalJSON(data []byte) error { return unmarshalEntity(data, r, NewTrack()) }

func (r Album) MarshalJSON() ([]byte, error)     { return encodeRecord(r) }
func (r *Album) UnmarshalJSON(data []byte) error { return unmarshalEntity(data, r, NewAlbum()) }

func (r Session) MarshalJSON() ([]byte, error)     { return encodeRecord(r) }
func (r *Session) UnmarshalJSON(data []byte) error { return unmarshalEntity(data, r, Session{}) }

// Clone returns a deep copy of d.
func (d Document) Clone() Document {
	data, err := json.Marshal(d)
	if err != nil {
		// Only an Extra member holding invalid JSON can fail to encode;
		// such a document cannot be persisted either.
		return d
	}
	return MergeWithDefaults(data)
}
