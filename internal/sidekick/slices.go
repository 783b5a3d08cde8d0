package sidekick

// Slices gives typed access to every module key.
type Slices struct {
	store *SliceStore

	Contacts               *Slice[[]ContactRecord]
	Prospection            *Slice[[]ProspectionEntry]
	Representations        *Slice[[]Representation]
	Rehearsals             *Slice[[]RehearsalRecord]
	EquipmentInventory     *Slice[[]InventoryItem]
	EquipmentLists         *Slice[[]MaterialList]
	TourTransports         *Slice[map[int64][]TransportEntry]
	TourLodgings           *Slice[map[int64][]LodgingEntry]
	TourTimetables         *Slice[map[int64][]TimetableItem]
	TourDocuments          *Slice[map[int64][]TourDocumentEntry]
	RepresentationMaterial *Slice[map[int64]int64]
	Invoices               *Slice[[]Invoice]
	RoyaltiesImports       *Slice[RoyaltyImports]
	StudioSessions         *Slice[[]StudioSession]
}

func emptyList[T any]() func() []T { return func() []T { return []T{} } }

func emptyMap[K comparable, V any]() func() map[K]V { return func() map[K]V { return map[K]V{} } }

func NewSlices(store *SliceStore) *Slices {
	return &Slices{
		store:                  store,
		Contacts:               NewSlice(store, KeyContacts, emptyList[ContactRecord]()),
		Prospection:            NewSlice(store, KeyProspection, emptyList[ProspectionEntry]()),
		Representations:        NewSlice(store, KeyRepresentations, emptyList[Representation]()),
		Rehearsals:             NewSlice(store, KeyRehearsals, emptyList[RehearsalRecord]()),
		EquipmentInventory:     NewSlice(store, KeyEquipmentInventory, emptyList[InventoryItem]()),
		EquipmentLists:         NewSlice(store, KeyEquipmentLists, emptyList[MaterialList]()),
		TourTransports:         NewSlice(store, KeyTourTransports, emptyMap[int64, []TransportEntry]()),
		TourLodgings:           NewSlice(store, KeyTourLodgings, emptyMap[int64, []LodgingEntry]()),
		TourTimetables:         NewSlice(store, KeyTourTimetables, emptyMap[int64, []TimetableItem]()),
		TourDocuments:          NewSlice(store, KeyTourDocuments, emptyMap[int64, []TourDocumentEntry]()),
		RepresentationMaterial: NewSlice(store, KeyRepresentationsMaterial, emptyMap[int64, int64]()),
		Invoices:               NewSlice(store, KeyInvoices, emptyList[Invoice]()),
		RoyaltiesImports:       NewSlice(store, KeyRoyaltiesImports, DefaultRoyaltyImports),
		StudioSessions:         NewSlice(store, KeyStudioSessions, emptyList[StudioSession]()),
	}
}

// Store returns the SliceStore behind the handles.
func (s *Slices) Store() *SliceStore { return s.store }
