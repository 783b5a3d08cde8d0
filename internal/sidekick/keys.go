package sidekick

// Keys of the module values stored outside the user document. They follow
// the "{module}:{slice}" convention.
const (
	KeyContacts                = "contacts:list"
	KeyProspection             = "live:prospection"
	KeyRepresentations         = "live:representations"
	KeyRehearsals              = "live:rehearsals"
	KeyEquipmentInventory      = "live:equipment-inventory"
	KeyEquipmentLists          = "live:equipment-lists"
	KeyTourTransports          = "live:tour-dates:transports"
	KeyTourLodgings            = "live:tour-dates:lodgings"
	KeyTourTimetables          = "live:tour-dates:timetables"
	KeyTourDocuments           = "live:tour-dates:documents"
	KeyRepresentationsMaterial = "live:representations-material-by-date"
	KeyInvoices                = "incomes:invoices"
	KeyRoyaltiesImports        = "incomes:royalties-imports"
	KeyStudioSessions          = "phono:sessions-studio"
)

// SliceKeys lists every module key, in a stable order. Reset wipes them all.
var SliceKeys = []string{
	KeyContacts,
	KeyProspection,
	KeyRepresentations,
	KeyRehearsals,
	KeyEquipmentInventory,
	KeyEquipmentLists,
	KeyTourTransports,
	KeyTourLodgings,
	KeyTourTimetables,
	KeyTourDocuments,
	KeyRepresentationsMaterial,
	KeyInvoices,
	KeyRoyaltiesImports,
	KeyStudioSessions,
}
