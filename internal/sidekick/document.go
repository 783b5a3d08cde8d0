package sidekick

// CurrentSchemaVersion is stamped on every document produced by
// MergeWithDefaults. Bump it together with a migration step in merge.go when
// the document shape changes incompatibly.
const CurrentSchemaVersion = 1

// Document is the full application state of one user. Every group is always
// present and every sequence is non-nil once a document has been through
// Default or MergeWithDefaults.
type Document struct {
	SchemaVersion int       `json:"schemaVersion"`
	Tasks         []Todo    `json:"tasks"`
	Admin         Admin     `json:"admin"`
	Calendar      Calendar  `json:"calendar"`
	Contacts      Contacts  `json:"contacts"`
	Dashboard     Dashboard `json:"dashboard"`
	Edition       Edition   `json:"edition"`
	Incomes       Incomes   `json:"incomes"`
	Live          Live      `json:"live"`
	Marketing     Marketing `json:"marketing"`
	Phono         Phono     `json:"phono"`

	Extra Extra `json:"-"`
}

type Todo struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Done  bool   `json:"done"`
	Extra Extra  `json:"-"`
}

// Admin

type Admin struct {
	Structures            []AdminStructure            `json:"structures"`
	Procedures            []AdminProcedure            `json:"procedures"`
	Documents             []AdminDocument             `json:"documents"`
	IntermittenceMissions []AdminIntermittenceMission `json:"intermittenceMissions"`
	Extra                 Extra                       `json:"-"`
}

type AdminStructure struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Extra Extra  `json:"-"`
}

type AdminProcedure struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Extra Extra  `json:"-"`
}

type AdminDocument struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Extra Extra  `json:"-"`
}

type AdminIntermittenceMission struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Extra Extra  `json:"-"`
}

// Calendar

type Calendar struct {
	Events []CalendarEvent `json:"events"`
	Extra  Extra           `json:"-"`
}

type CalendarEvent struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Start string `json:"start"`
	End   string `json:"end,omitempty"`
	Extra Extra  `json:"-"`
}

// Contacts

type Contacts struct {
	Contacts    []Contact         `json:"contacts"`
	Prospection []ProspectionItem `json:"prospection"`
	Extra       Extra             `json:"-"`
}

type Contact struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Extra Extra  `json:"-"`
}

type ProspectionItem struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Extra Extra  `json:"-"`
}

// Dashboard

type Dashboard struct {
	Profile Profile `json:"profile"`
	Extra   Extra   `json:"-"`
}

type Profile struct {
	DisplayName string `json:"displayName,omitempty"`
	Extra       Extra  `json:"-"`
}

// Edition

type Edition struct {
	Works []Work    `json:"works"`
	Sync  SyncState `json:"sync"`
	Extra Extra     `json:"-"`
}

type Work struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Extra Extra  `json:"-"`
}

type SyncState struct {
	LastSync string `json:"lastSync,omitempty"`
	Extra    Extra  `json:"-"`
}

// Incomes

type Incomes struct {
	Royalties         []IncomeItem `json:"royalties"`
	Invoices          []IncomeItem `json:"invoices"`
	Copyright         []IncomeItem `json:"copyright"`
	NeighboringRights []IncomeItem `json:"neighboringRights"`
	Extra             Extra        `json:"-"`
}

type IncomeItem struct {
	ID     string   `json:"id"`
	Label  string   `json:"label"`
	Amount *float64 `json:"amount,omitempty"`
	Extra  Extra    `json:"-"`
}

// Live

type Live struct {
	TourDates  []TourDate      `json:"tourDates"`
	Rehearsals []Rehearsal     `json:"rehearsals"`
	Equipment  []EquipmentItem `json:"equipment"`
	Extra      Extra           `json:"-"`
}

type TourDate struct {
	ID     string `json:"id"`
	City   string `json:"city"`
	Venue  string `json:"venue"`
	Date   string `json:"date"`
	Status string `json:"status,omitempty"`
	Extra  Extra  `json:"-"`
}

type Rehearsal struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Date     string `json:"date"`
	Location string `json:"location,omitempty"`
	Extra    Extra  `json:"-"`
}

type EquipmentItem struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Priority string `json:"priority,omitempty"`
	Extra    Extra  `json:"-"`
}

// Marketing

type Marketing struct {
	Mailing []MailingItem    `json:"mailing"`
	Events  []MarketingEvent `json:"events"`
	Extra   Extra            `json:"-"`
}

type MailingItem struct {
	ID      string `json:"id"`
	Subject string `json:"subject"`
	Extra   Extra  `json:"-"`
}

type MarketingEvent struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Date  string `json:"date,omitempty"`
	Extra Extra  `json:"-"`
}

// Phono

type Phono struct {
	Albums   []Album   `json:"albums"`
	Tracks   []Track   `json:"tracks"`
	Sessions []Session `json:"sessions"`
	Extra    Extra     `json:"-"`
}

// Role is the part an artist played on a track.
type Role string

const (
	RoleMainArtist      Role = "artiste_principal"
	RoleSecondaryArtist Role = "artiste_secondaire"
	RoleMusician        Role = "musicien_interprete"
	RoleSinger          Role = "chanteur_interprete"
	RoleMusicalDirector Role = "directeur_musical"
)

type TrackVersion struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Extra Extra  `json:"-"`
}

type Track struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	MainArtist   string         `json:"mainArtist"`
	Role         Role           `json:"role"`
	GuestArtists []string       `json:"guestArtists"`
	ISRC         string         `json:"isrc"`
	ReleaseDate  string         `json:"releaseDate"`
	SelfProduced bool           `json:"selfProduced"`
	Label        string         `json:"label,omitempty"`
	Versions     []TrackVersion `json:"versions"`
	Notes        string         `json:"notes"`
	Extra        Extra          `json:"-"`
}

// AlbumType classifies a release.
type AlbumType string

const (
	AlbumTypeAlbum  AlbumType = "album"
	AlbumTypeEP     AlbumType = "ep"
	AlbumTypeSingle AlbumType = "single"
)

// Album groups catalog tracks. TrackIDs reference Phono.Tracks weakly: an id
// whose track has been removed is skipped when resolving, never an error.
type Album struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Type        AlbumType `json:"type"`
	ReleaseDate string    `json:"releaseDate"`
	UPCEAN      string    `json:"upcEan"`
	TrackIDs    []string  `json:"trackIds"`
	Notes       string    `json:"notes"`
	Cover       string    `json:"cover,omitempty"`
	Extra       Extra     `json:"-"`
}

type Session struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Date  string `json:"date,omitempty"`
	Extra Extra  `json:"-"`
}

// Default returns a fully populated empty document. Each call returns fresh
// sequences, so callers may mutate the result freely.
func Default() Document {
	return Document{
		SchemaVersion: CurrentSchemaVersion,
		Tasks:         []Todo{},
		Admin:         defaultAdmin(),
		Calendar:      defaultCalendar(),
		Contacts:      defaultContacts(),
		Dashboard:     Dashboard{},
		Edition:       defaultEdition(),
		Incomes:       defaultIncomes(),
		Live:          defaultLive(),
		Marketing:     defaultMarketing(),
		Phono:         defaultPhono(),
	}
}

func defaultAdmin() Admin {
	return Admin{
		Structures:            []AdminStructure{},
		Procedures:            []AdminProcedure{},
		Documents:             []AdminDocument{},
		IntermittenceMissions: []AdminIntermittenceMission{},
	}
}

func defaultCalendar() Calendar { return Calendar{Events: []CalendarEvent{}} }

func defaultContacts() Contacts {
	return Contacts{Contacts: []Contact{}, Prospection: []ProspectionItem{}}
}

func defaultEdition() Edition { return Edition{Works: []Work{}} }

func defaultIncomes() Incomes {
	return Incomes{
		Royalties:         []IncomeItem{},
		Invoices:          []IncomeItem{},
		Copyright:         []IncomeItem{},
		NeighboringRights: []IncomeItem{},
	}
}

func defaultLive() Live {
	return Live{TourDates: []TourDate{}, Rehearsals: []Rehearsal{}, Equipment: []EquipmentItem{}}
}

func defaultMarketing() Marketing {
	return Marketing{Mailing: []MailingItem{}, Events: []MarketingEvent{}}
}

func defaultPhono() Phono {
	return Phono{Albums: []Album{}, Tracks: []Track{}, Sessions: []Session{}}
}

// NewTrack returns a track draft carrying the catalog defaults.
func NewTrack() Track {
	return Track{
		Role:         RoleMainArtist,
		GuestArtists: []string{},
		SelfProduced: true,
		Versions:     []TrackVersion{},
	}
}

// NewAlbum returns an album draft carrying the catalog defaults.
func NewAlbum() Album {
	return Album{Type: AlbumTypeAlbum, TrackIDs: []string{}}
}
