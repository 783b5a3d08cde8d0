package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sidekick/internal/calendar"
	"sidekick/internal/config"
	"sidekick/internal/sidekick"
	"sidekick/internal/testutil"
)

func TestAddGig_AppearsInCalendar(t *testing.T) {
	a := newTestApp(t, "alice")
	ctx := context.Background()

	_, err := a.AddGig(ctx, sidekick.Representation{Venue: "La Cigale", Date: "31/02/2025"})
	assert.ErrorIs(t, err, sidekick.ErrInvalidDate)
	assert.Empty(t, a.Gigs(ctx))

	rep, err := a.AddGig(ctx, sidekick.Representation{Venue: "La Cigale", City: "Paris", Date: "22/03/2025"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), rep.ID)
	assert.Equal(t, sidekick.TourOption, rep.Status)

	events := a.CalendarEvents(ctx, calendar.SectorLive)
	require.Len(t, events, 1)
	assert.Equal(t, "live-rep-1", events[0].ID)
	assert.Equal(t, "La Cigale - Paris", events[0].Label)
	assert.Equal(t, "2025-03-22", events[0].DateKey)
	assert.False(t, events[0].IsPast)
}

func TestRehearsalAndSession_AppearInCalendar(t *testing.T) {
	a := newTestApp(t, "alice")
	ctx := context.Background()

	_, err := a.AddRehearsal(ctx, sidekick.RehearsalRecord{})
	assert.ErrorIs(t, err, sidekick.ErrRequired)

	r, err := a.AddRehearsal(ctx, sidekick.RehearsalRecord{Location: "Studio Bleu"})
	require.NoError(t, err)
	assert.Equal(t, "14/03/2025", r.Date, "defaults to today")

	s, err := a.AddStudioSession(ctx, sidekick.StudioSession{Title: "Prises batterie", Date: "10/03/2025"})
	require.NoError(t, err)

	events := a.CalendarEvents(ctx)
	require.Len(t, events, 2)
	assert.Equal(t, "live-rehearsal-1", events[0].ID)
	assert.Equal(t, "Studio Bleu", events[0].Label)
	assert.False(t, events[0].IsPast)
	assert.Equal(t, "phono-session-1", events[1].ID)
	assert.True(t, events[1].IsPast)

	require.NoError(t, a.RemoveRehearsal(ctx, r.ID))
	require.NoError(t, a.RemoveStudioSession(ctx, s.ID))
	assert.Empty(t, a.CalendarEvents(ctx))
	assert.ErrorIs(t, a.RemoveRehearsal(ctx, r.ID), ErrNoSuchItem)
}

func TestGig_DetailsAndMaterial(t *testing.T) {
	a := newTestApp(t, "alice")
	ctx := context.Background()

	rep, err := a.AddGig(ctx, sidekick.Representation{Venue: "Le Sucre", Date: "20/03/2025"})
	require.NoError(t, err)

	guitar, err := a.AddInventoryItem(ctx, sidekick.InventoryItem{Name: "Guitare", Quantity: 1})
	require.NoError(t, err)
	amp, err := a.AddInventoryItem(ctx, sidekick.InventoryItem{Name: "Ampli", Quantity: 1})
	require.NoError(t, err)

	_, err = a.AddMaterialList(ctx, sidekick.MaterialList{Name: "Trio", ItemIDs: []int64{99}})
	assert.ErrorIs(t, err, ErrNoSuchItem)
	list, err := a.AddMaterialList(ctx, sidekick.MaterialList{Name: "Trio", ItemIDs: []int64{amp.ID, guitar.ID}})
	require.NoError(t, err)

	assert.ErrorIs(t, a.AssignGigMaterial(ctx, rep.ID, 42), ErrNoSuchItem)
	assert.ErrorIs(t, a.AssignGigMaterial(ctx, 42, list.ID), ErrNoSuchItem)
	require.NoError(t, a.AssignGigMaterial(ctx, rep.ID, list.ID))

	_, err = a.AddTransport(ctx, rep.ID, sidekick.TransportEntry{Details: "TGV Paris-Lyon"})
	require.NoError(t, err)
	_, err = a.AddLodging(ctx, rep.ID, sidekick.LodgingEntry{})
	require.NoError(t, err)
	_, err = a.AddTourDocument(ctx, rep.ID, sidekick.TourDocumentEntry{Note: "Fiche technique envoyée"})
	require.NoError(t, err)
	require.NoError(t, a.SetTimetable(ctx, rep.ID, []sidekick.TimetableItem{{Time: "18:00", Activity: "Balances"}}))

	_, err = a.AddTransport(ctx, 42, sidekick.TransportEntry{})
	assert.ErrorIs(t, err, ErrNoSuchItem)

	d, err := a.Gig(ctx, rep.ID)
	require.NoError(t, err)
	assert.Len(t, d.Transports, 1)
	assert.Len(t, d.Lodgings, 1)
	assert.Len(t, d.Documents, 1)
	assert.Equal(t, []sidekick.TimetableItem{{Time: "18:00", Activity: "Balances"}}, d.Timetable)
	require.NotNil(t, d.Material)
	assert.Equal(t, "Trio", d.Material.Name)
	assert.Equal(t, []string{"Ampli", "Guitare"}, itemNames(d.MaterialItems))

	// A removed item drops out of the views but stays referenced by the list.
	require.NoError(t, a.RemoveInventoryItem(ctx, amp.ID))
	d, err = a.Gig(ctx, rep.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Guitare"}, itemNames(d.MaterialItems))
	views := a.MaterialListViews(ctx)
	require.Len(t, views, 1)
	assert.Equal(t, []int64{amp.ID, guitar.ID}, views[0].List.ItemIDs)
	assert.Equal(t, []string{"Guitare"}, itemNames(views[0].Items))

	require.NoError(t, a.RemoveMaterialList(ctx, list.ID))
	d, err = a.Gig(ctx, rep.ID)
	require.NoError(t, err)
	assert.Nil(t, d.Material)
}

func TestRemoveGig_DropsDetails(t *testing.T) {
	a := newTestApp(t, "alice")
	ctx := context.Background()

	keep, err := a.AddGig(ctx, sidekick.Representation{Venue: "Stereolux"})
	require.NoError(t, err)
	gone, err := a.AddGig(ctx, sidekick.Representation{Venue: "Le Sucre"})
	require.NoError(t, err)
	list, err := a.AddMaterialList(ctx, sidekick.MaterialList{Name: "Solo"})
	require.NoError(t, err)

	for _, id := range []int64{keep.ID, gone.ID} {
		_, err = a.AddTransport(ctx, id, sidekick.TransportEntry{})
		require.NoError(t, err)
		_, err = a.AddLodging(ctx, id, sidekick.LodgingEntry{})
		require.NoError(t, err)
		_, err = a.AddTourDocument(ctx, id, sidekick.TourDocumentEntry{Note: "Contrat"})
		require.NoError(t, err)
		require.NoError(t, a.SetTimetable(ctx, id, []sidekick.TimetableItem{{Time: "20:00"}}))
		require.NoError(t, a.AssignGigMaterial(ctx, id, list.ID))
	}

	require.NoError(t, a.RemoveGig(ctx, gone.ID))
	assert.ErrorIs(t, a.RemoveGig(ctx, gone.ID), ErrNoSuchItem)

	require.Len(t, a.Gigs(ctx), 1)
	assert.NotContains(t, a.slices.TourTransports.Get(ctx), gone.ID)
	assert.NotContains(t, a.slices.TourLodgings.Get(ctx), gone.ID)
	assert.NotContains(t, a.slices.TourDocuments.Get(ctx), gone.ID)
	assert.NotContains(t, a.slices.TourTimetables.Get(ctx), gone.ID)
	assert.NotContains(t, a.slices.RepresentationMaterial.Get(ctx), gone.ID)

	d, err := a.Gig(ctx, keep.ID)
	require.NoError(t, err)
	assert.Len(t, d.Transports, 1)
	assert.NotNil(t, d.Material)
}

func TestContacts_AddAndRemove(t *testing.T) {
	a := newTestApp(t, "alice")
	ctx := context.Background()

	_, err := a.AddContact(ctx, sidekick.ContactRecord{Name: " "})
	assert.ErrorIs(t, err, sidekick.ErrRequired)

	c, err := a.AddContact(ctx, sidekick.ContactRecord{Name: "Nadia", Role: "Régisseuse"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), c.ID)
	require.Len(t, a.Contacts(ctx), 1)

	require.NoError(t, a.RemoveContact(ctx, c.ID))
	assert.Empty(t, a.Contacts(ctx))
	assert.ErrorIs(t, a.RemoveContact(ctx, c.ID), ErrNoSuchItem)
}

func TestEditTrack(t *testing.T) {
	a := newTestApp(t, "alice")
	ctx := context.Background()

	tr, err := a.AddTrack(ctx, sidekick.Track{Title: "Aube"})
	require.NoError(t, err)

	got, err := a.EditTrack(ctx, tr.ID, func(t sidekick.Track) sidekick.Track {
		t.Role = sidekick.RoleSinger
		t.ISRC = "FRXXX2500001"
		return t
	})
	require.NoError(t, err)
	assert.Equal(t, sidekick.RoleSinger, got.Role)
	assert.Equal(t, "FRXXX2500001", a.Tracks()[0].ISRC)

	_, err = a.EditTrack(ctx, "track-missing", func(t sidekick.Track) sidekick.Track { return t })
	assert.ErrorIs(t, err, ErrNoSuchItem)
}

func TestAddProspect_UnreadableContactsAreNotOverwritten(t *testing.T) {
	cfg := config.NewConfig("alice", t.TempDir())
	backend := testutil.NewTestStorage()
	ctx := context.Background()
	require.NoError(t, sidekick.SetSlice(ctx, sidekick.NewSliceStore(backend, sidekick.NewNopLogger()), sidekick.KeyContacts,
		[]sidekick.ContactRecord{{ID: 1, Name: "Paul"}, {ID: 2, Name: "Lise"}}))

	store := &keyFailingStorage{Storage: backend, key: sidekick.KeyContacts}
	a := New(ctx, cfg, Deps{Storage: store, Clock: testutil.FixedClock(), IDGen: testutil.NewStubIDGenerator()}, "alice")

	entry, err := a.AddProspect(ctx, sidekick.ProspectionEntry{VenueName: "Le Périscope", Contact: "Marie"})
	assert.ErrorIs(t, err, testutil.ErrInjected)
	assert.Equal(t, int64(1), entry.ID, "the prospection entry is kept")
	assert.Len(t, a.Prospects(ctx), 1)

	store.key = ""
	contacts := a.Contacts(ctx)
	require.Len(t, contacts, 2)
	assert.Equal(t, "Paul", contacts[0].Name)
}

// keyFailingStorage fails every Get of one key.
type keyFailingStorage struct {
	sidekick.Storage
	key string
}

func (s *keyFailingStorage) Get(ctx context.Context, key string) ([]byte, error) {
	if key == s.key {
		return nil, testutil.ErrInjected
	}
	return s.Storage.Get(ctx, key)
}

func itemNames(items []sidekick.InventoryItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Name)
	}
	return out
}
