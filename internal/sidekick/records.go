package sidekick

// Records stored under the module keys in keys.go. Unlike document records
// they carry numeric ids, allocated as max(existing)+1 by NextID.

type ContactRecord struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	City  string `json:"city"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Notes string `json:"notes"`
}

// ProspectionStatus tracks where a venue prospection stands.
type ProspectionStatus string

const (
	ProspectionToContact  ProspectionStatus = "À contacter"
	ProspectionPending    ProspectionStatus = "En attente"
	ProspectionDiscussing ProspectionStatus = "En discussion"
	ProspectionAccepted   ProspectionStatus = "Accepté"
)

type ProspectionEntry struct {
	ID        int64             `json:"id"`
	VenueName string            `json:"venueName"`
	City      string            `json:"city"`
	Contact   string            `json:"contact"`
	Email     string            `json:"email"`
	Phone     string            `json:"phone"`
	Status    ProspectionStatus `json:"status"`
	Notes     string            `json:"notes,omitempty"`
}

// TourStatus is the booking state of a representation.
type TourStatus string

const (
	TourFinalized TourStatus = "Finalisée"
	TourPast      TourStatus = "Passée"
	TourSigned    TourStatus = "Signée"
	TourConfirmed TourStatus = "Confirmée"
	TourOption    TourStatus = "En option"
)

type TimetableItem struct {
	Time     string `json:"time"`
	Activity string `json:"activity"`
}

// Representation is a concert date. The boolean flags record whether
// transport, lodging, remuneration and equipment are sorted out.
type Representation struct {
	ID           int64           `json:"id"`
	City         string          `json:"city"`
	Venue        string          `json:"venue"`
	Date         string          `json:"date"`
	Status       TourStatus      `json:"status"`
	Address      string          `json:"address"`
	Timetable    []TimetableItem `json:"timetable"`
	Transport    bool            `json:"transport"`
	Lodging      bool            `json:"lodging"`
	Remuneration bool            `json:"remuneration"`
	Equipment    bool            `json:"equipment"`
	Note         string          `json:"note,omitempty"`
}

// PaymentMode says who pays for a transport or lodging.
type PaymentMode string

const (
	PaymentSelf      PaymentMode = "self"
	PaymentReimburse PaymentMode = "reimburse"
	PaymentCovered   PaymentMode = "covered"
)

type TransportEntry struct {
	ID          int64       `json:"id"`
	Type        string      `json:"type"` // train, plane, car, other
	Amount      string      `json:"amount"`
	PaymentMode PaymentMode `json:"paymentMode"`
	Details     string      `json:"details"`
}

type LodgingEntry struct {
	ID          int64       `json:"id"`
	Type        string      `json:"type"` // hotel, airbnb, friend, other
	Nights      string      `json:"nights"`
	Amount      string      `json:"amount"`
	Details     string      `json:"details"`
	PaymentMode PaymentMode `json:"paymentMode"`
}

type TourDocumentEntry struct {
	ID   int64  `json:"id"`
	Type string `json:"type"` // contract, tech, other
	Note string `json:"note"`
}

type RemunerationEntry struct {
	ID     int64  `json:"id"`
	Label  string `json:"label"`
	Amount string `json:"amount,omitempty"`
}

type EquipmentEntry struct {
	ID    int64  `json:"id"`
	Label string `json:"label"`
}

type RehearsalRecord struct {
	ID            int64               `json:"id"`
	Label         string              `json:"label,omitempty"`
	Date          string              `json:"date"`
	Time          string              `json:"time"`
	Location      string              `json:"location"`
	Address       string              `json:"address,omitempty"`
	Note          string              `json:"note,omitempty"`
	Remunerations []RemunerationEntry `json:"remunerations"`
	Equipments    []EquipmentEntry    `json:"equipments"`
}

// Condition grades an inventory item.
type Condition string

const (
	ConditionToRepair Condition = "A réparer"
	ConditionFair     Condition = "Moyen"
	ConditionGood     Condition = "Bon"
	ConditionNew      Condition = "Neuf"
)

type InventoryItem struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	Condition Condition `json:"condition"`
	Comment   string    `json:"comment,omitempty"`
}

// MaterialList is a named selection of inventory items. ItemIDs reference
// the inventory weakly; see ResolveListItems.
type MaterialList struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	ItemIDs     []int64 `json:"itemIds"`
}

type InvoiceStatus string

const (
	InvoicePending InvoiceStatus = "en_attente"
	InvoicePaid    InvoiceStatus = "payee"
)

// IncomeType categorizes what an invoice bills for.
type IncomeType string

const (
	IncomeLive          IncomeType = "Live"
	IncomePhono         IncomeType = "Phono"
	IncomeEdition       IncomeType = "Edition"
	IncomeMerchandising IncomeType = "Merchandising"
	IncomeOther         IncomeType = "Autre"
)

type LineType string

const (
	LineService LineType = "service"
	LineGoods   LineType = "vente de marchandise"
)

// InvoiceLine keeps its numbers as typed text; ParseAmount reads them.
type InvoiceLine struct {
	ID          int64    `json:"id"`
	Description string   `json:"description"`
	Type        LineType `json:"type"`
	Quantity    string   `json:"quantity"`
	UnitPrice   string   `json:"unitPrice"`
	VATPercent  string   `json:"vatPercent"`
}

type Invoice struct {
	ID         int64         `json:"id"`
	Number     string        `json:"number"`
	Client     string        `json:"client"`
	Subject    string        `json:"subject"`
	Amount     string        `json:"amount"`
	DueDate    string        `json:"dueDate"`
	Status     InvoiceStatus `json:"status"`
	Address    string        `json:"address,omitempty"`
	SIRET      string        `json:"siret,omitempty"`
	IncomeType IncomeType    `json:"incomeType,omitempty"`
	Lines      []InvoiceLine `json:"lines,omitempty"`
	Notes      string        `json:"notes,omitempty"`
}

type SessionType string

const (
	SessionRecording SessionType = "prise"
	SessionTrial     SessionType = "essai"
	SessionMix       SessionType = "mix"
	SessionMastering SessionType = "mastering"
	SessionOther     SessionType = "autre"
)

type ParticipantEntry struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"` // artiste_principal, artiste_secondaire, musicien, chanteur, ingenieur_du_son
}

type StudioSession struct {
	ID               int64              `json:"id"`
	Title            string             `json:"title"`
	Date             string             `json:"date"`
	Time             string             `json:"time"`
	Location         string             `json:"location"`
	Address          string             `json:"address,omitempty"`
	SessionType      SessionType        `json:"sessionType"`
	SessionTypeOther string             `json:"sessionTypeOther,omitempty"`
	Participants     []ParticipantEntry `json:"participants"`
	Note             string             `json:"note,omitempty"`
}

// NextID returns one more than the largest id in items, or 1 for none.
func NextID[T any](items []T, id func(T) int64) int64 {
	var highest int64
	for _, it := range items {
		if v := id(it); v > highest {
			highest = v
		}
	}
	return highest + 1
}
