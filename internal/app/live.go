package app

import (
	"context"
	"errors"
	"fmt"

	"sidekick/internal/sidekick"
)

// addTo runs a validating add inside s.Update. A rejected record leaves the
// stored list as it was.
func addTo[T, R any](ctx context.Context, s *sidekick.Slice[T], add func(T) (T, R, error)) (R, error) {
	var stored R
	var addErr error
	_, err := s.Update(ctx, func(current T) T {
		next, r, err := add(current)
		if err != nil {
			addErr = err
			return current
		}
		stored = r
		return next
	})
	if addErr != nil {
		var zero R
		return zero, addErr
	}
	return stored, err
}

// removeByID drops the record with id from s, reporting ErrNoSuchItem when
// there is none.
func removeByID[T any](ctx context.Context, s *sidekick.Slice[[]T], what string, id int64, idOf func(T) int64, drop func([]T, int64) []T) error {
	found := false
	_, err := s.Update(ctx, func(all []T) []T {
		for _, v := range all {
			if idOf(v) == id {
				found = true
			}
		}
		return drop(all, id)
	})
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%s %d: %w", what, id, ErrNoSuchItem)
	}
	return nil
}

func find[T any](all []T, id int64, idOf func(T) int64) (T, bool) {
	for _, v := range all {
		if idOf(v) == id {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func repID(r sidekick.Representation) int64          { return r.ID }
func rehearsalID(r sidekick.RehearsalRecord) int64   { return r.ID }
func studioSessionID(s sidekick.StudioSession) int64 { return s.ID }
func contactID(c sidekick.ContactRecord) int64       { return c.ID }
func itemID(it sidekick.InventoryItem) int64         { return it.ID }
func listID(l sidekick.MaterialList) int64           { return l.ID }

// Gigs

// AddGig stores a new representation.
func (a *SidekickApp) AddGig(ctx context.Context, rep sidekick.Representation) (sidekick.Representation, error) {
	stored, err := addTo(ctx, a.slices.Representations, func(all []sidekick.Representation) ([]sidekick.Representation, sidekick.Representation, error) {
		return sidekick.AddRepresentation(all, rep, a.clock.Now())
	})
	if err != nil {
		return stored, err
	}
	a.logger.Info("gig added", "id", stored.ID, "venue", stored.Venue, "date", stored.Date)
	return stored, nil
}

func (a *SidekickApp) Gigs(ctx context.Context) []sidekick.Representation {
	return a.slices.Representations.Get(ctx)
}

// RemoveGig deletes a representation together with its transports,
// lodgings, documents, timetable and material assignment.
func (a *SidekickApp) RemoveGig(ctx context.Context, id int64) error {
	if err := removeByID(ctx, a.slices.Representations, "gig", id, repID, sidekick.RemoveRepresentation); err != nil {
		return err
	}
	var errs []error
	if _, err := a.slices.TourTransports.Update(ctx, func(m map[int64][]sidekick.TransportEntry) map[int64][]sidekick.TransportEntry {
		return sidekick.DropDetails(m, id)
	}); err != nil {
		errs = append(errs, err)
	}
	if _, err := a.slices.TourLodgings.Update(ctx, func(m map[int64][]sidekick.LodgingEntry) map[int64][]sidekick.LodgingEntry {
		return sidekick.DropDetails(m, id)
	}); err != nil {
		errs = append(errs, err)
	}
	if _, err := a.slices.TourDocuments.Update(ctx, func(m map[int64][]sidekick.TourDocumentEntry) map[int64][]sidekick.TourDocumentEntry {
		return sidekick.DropDetails(m, id)
	}); err != nil {
		errs = append(errs, err)
	}
	if _, err := a.slices.TourTimetables.Update(ctx, func(m map[int64][]sidekick.TimetableItem) map[int64][]sidekick.TimetableItem {
		return sidekick.DropDetails(m, id)
	}); err != nil {
		errs = append(errs, err)
	}
	if _, err := a.slices.RepresentationMaterial.Update(ctx, func(m map[int64]int64) map[int64]int64 {
		return sidekick.DropDetails(m, id)
	}); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// GigDetails is a representation with everything recorded for it.
type GigDetails struct {
	Gig        sidekick.Representation
	Transports []sidekick.TransportEntry
	Lodgings   []sidekick.LodgingEntry
	Documents  []sidekick.TourDocumentEntry
	Timetable  []sidekick.TimetableItem

	// Material is the assigned list, if any, and MaterialItems the
	// inventory items it still resolves to.
	Material      *sidekick.MaterialList
	MaterialItems []sidekick.InventoryItem
}

func (a *SidekickApp) Gig(ctx context.Context, id int64) (GigDetails, error) {
	rep, ok := find(a.Gigs(ctx), id, repID)
	if !ok {
		return GigDetails{}, fmt.Errorf("gig %d: %w", id, ErrNoSuchItem)
	}
	d := GigDetails{
		Gig:        rep,
		Transports: a.slices.TourTransports.Get(ctx)[id],
		Lodgings:   a.slices.TourLodgings.Get(ctx)[id],
		Documents:  a.slices.TourDocuments.Get(ctx)[id],
		Timetable:  rep.Timetable,
	}
	if tt, ok := a.slices.TourTimetables.Get(ctx)[id]; ok {
		d.Timetable = tt
	}
	if list, ok := sidekick.MaterialForRepresentation(a.slices.RepresentationMaterial.Get(ctx), a.slices.EquipmentLists.Get(ctx), id); ok {
		d.Material = &list
		d.MaterialItems = sidekick.ResolveListItems(list, a.slices.EquipmentInventory.Get(ctx))
	}
	return d, nil
}

// requireGig returns ErrNoSuchItem unless representation id exists.
func (a *SidekickApp) requireGig(ctx context.Context, id int64) error {
	if _, ok := find(a.Gigs(ctx), id, repID); !ok {
		return fmt.Errorf("gig %d: %w", id, ErrNoSuchItem)
	}
	return nil
}

// AssignGigMaterial sets the material list of a gig. A zero list id clears it.
func (a *SidekickApp) AssignGigMaterial(ctx context.Context, gigID, materialListID int64) error {
	if err := a.requireGig(ctx, gigID); err != nil {
		return err
	}
	if materialListID != 0 {
		if _, ok := find(a.MaterialLists(ctx), materialListID, listID); !ok {
			return fmt.Errorf("material list %d: %w", materialListID, ErrNoSuchItem)
		}
	}
	_, err := a.slices.RepresentationMaterial.Update(ctx, func(m map[int64]int64) map[int64]int64 {
		return sidekick.AssignMaterial(m, gigID, materialListID)
	})
	return err
}

func (a *SidekickApp) AddTransport(ctx context.Context, gigID int64, t sidekick.TransportEntry) (sidekick.TransportEntry, error) {
	if err := a.requireGig(ctx, gigID); err != nil {
		return sidekick.TransportEntry{}, err
	}
	return addTo(ctx, a.slices.TourTransports, func(m map[int64][]sidekick.TransportEntry) (map[int64][]sidekick.TransportEntry, sidekick.TransportEntry, error) {
		next, stored := sidekick.AddTransport(m, gigID, t)
		return next, stored, nil
	})
}

func (a *SidekickApp) AddLodging(ctx context.Context, gigID int64, l sidekick.LodgingEntry) (sidekick.LodgingEntry, error) {
	if err := a.requireGig(ctx, gigID); err != nil {
		return sidekick.LodgingEntry{}, err
	}
	return addTo(ctx, a.slices.TourLodgings, func(m map[int64][]sidekick.LodgingEntry) (map[int64][]sidekick.LodgingEntry, sidekick.LodgingEntry, error) {
		next, stored := sidekick.AddLodging(m, gigID, l)
		return next, stored, nil
	})
}

func (a *SidekickApp) AddTourDocument(ctx context.Context, gigID int64, d sidekick.TourDocumentEntry) (sidekick.TourDocumentEntry, error) {
	if err := a.requireGig(ctx, gigID); err != nil {
		return sidekick.TourDocumentEntry{}, err
	}
	return addTo(ctx, a.slices.TourDocuments, func(m map[int64][]sidekick.TourDocumentEntry) (map[int64][]sidekick.TourDocumentEntry, sidekick.TourDocumentEntry, error) {
		return sidekick.AddTourDocument(m, gigID, d)
	})
}

// SetTimetable replaces the timetable of a gig.
func (a *SidekickApp) SetTimetable(ctx context.Context, gigID int64, items []sidekick.TimetableItem) error {
	if err := a.requireGig(ctx, gigID); err != nil {
		return err
	}
	_, err := a.slices.TourTimetables.Update(ctx, func(m map[int64][]sidekick.TimetableItem) map[int64][]sidekick.TimetableItem {
		return sidekick.SetTimetable(m, gigID, items)
	})
	return err
}

// Rehearsals

func (a *SidekickApp) AddRehearsal(ctx context.Context, r sidekick.RehearsalRecord) (sidekick.RehearsalRecord, error) {
	return addTo(ctx, a.slices.Rehearsals, func(all []sidekick.RehearsalRecord) ([]sidekick.RehearsalRecord, sidekick.RehearsalRecord, error) {
		return sidekick.AddRehearsal(all, r, a.clock.Now())
	})
}

func (a *SidekickApp) Rehearsals(ctx context.Context) []sidekick.RehearsalRecord {
	return a.slices.Rehearsals.Get(ctx)
}

func (a *SidekickApp) RemoveRehearsal(ctx context.Context, id int64) error {
	return removeByID(ctx, a.slices.Rehearsals, "rehearsal", id, rehearsalID, sidekick.RemoveRehearsal)
}

// Studio sessions

func (a *SidekickApp) AddStudioSession(ctx context.Context, s sidekick.StudioSession) (sidekick.StudioSession, error) {
	return addTo(ctx, a.slices.StudioSessions, func(all []sidekick.StudioSession) ([]sidekick.StudioSession, sidekick.StudioSession, error) {
		return sidekick.AddStudioSession(all, s, a.clock.Now())
	})
}

func (a *SidekickApp) StudioSessions(ctx context.Context) []sidekick.StudioSession {
	return a.slices.StudioSessions.Get(ctx)
}

func (a *SidekickApp) RemoveStudioSession(ctx context.Context, id int64) error {
	return removeByID(ctx, a.slices.StudioSessions, "session", id, studioSessionID, sidekick.RemoveStudioSession)
}

// Contacts

func (a *SidekickApp) AddContact(ctx context.Context, c sidekick.ContactRecord) (sidekick.ContactRecord, error) {
	return addTo(ctx, a.slices.Contacts, func(all []sidekick.ContactRecord) ([]sidekick.ContactRecord, sidekick.ContactRecord, error) {
		return sidekick.AddContact(all, c)
	})
}

func (a *SidekickApp) RemoveContact(ctx context.Context, id int64) error {
	return removeByID(ctx, a.slices.Contacts, "contact", id, contactID, sidekick.RemoveContact)
}

// Equipment

func (a *SidekickApp) AddInventoryItem(ctx context.Context, it sidekick.InventoryItem) (sidekick.InventoryItem, error) {
	return addTo(ctx, a.slices.EquipmentInventory, func(all []sidekick.InventoryItem) ([]sidekick.InventoryItem, sidekick.InventoryItem, error) {
		next, stored := sidekick.AddInventoryItem(all, it)
		return next, stored, nil
	})
}

func (a *SidekickApp) Inventory(ctx context.Context) []sidekick.InventoryItem {
	return a.slices.EquipmentInventory.Get(ctx)
}

// RemoveInventoryItem deletes an item. Material lists keep its id and stop
// resolving it.
func (a *SidekickApp) RemoveInventoryItem(ctx context.Context, id int64) error {
	return removeByID(ctx, a.slices.EquipmentInventory, "item", id, itemID, sidekick.RemoveInventoryItem)
}

// AddMaterialList stores a list. Every item id must name an inventory item.
func (a *SidekickApp) AddMaterialList(ctx context.Context, l sidekick.MaterialList) (sidekick.MaterialList, error) {
	inventory := a.Inventory(ctx)
	for _, id := range l.ItemIDs {
		if _, ok := find(inventory, id, itemID); !ok {
			return sidekick.MaterialList{}, fmt.Errorf("item %d: %w", id, ErrNoSuchItem)
		}
	}
	return addTo(ctx, a.slices.EquipmentLists, func(all []sidekick.MaterialList) ([]sidekick.MaterialList, sidekick.MaterialList, error) {
		return sidekick.AddMaterialList(all, l)
	})
}

func (a *SidekickApp) MaterialLists(ctx context.Context) []sidekick.MaterialList {
	return a.slices.EquipmentLists.Get(ctx)
}

func (a *SidekickApp) RemoveMaterialList(ctx context.Context, id int64) error {
	return removeByID(ctx, a.slices.EquipmentLists, "material list", id, listID, sidekick.RemoveMaterialList)
}

// MaterialListView is a material list with its items resolved.
type MaterialListView struct {
	List  sidekick.MaterialList
	Items []sidekick.InventoryItem
}

func (a *SidekickApp) MaterialListViews(ctx context.Context) []MaterialListView {
	inventory := a.Inventory(ctx)
	lists := a.MaterialLists(ctx)
	out := make([]MaterialListView, 0, len(lists))
	for _, l := range lists {
		out = append(out, MaterialListView{List: l, Items: sidekick.ResolveListItems(l, inventory)})
	}
	return out
}
