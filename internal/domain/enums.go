package domain

import (
	"fmt"
	"strings"
)

// SourceKind identifies which export a file belongs to.
type SourceKind string

const (
	SourceManifest SourceKind = "dfds"
	SourceTickets  SourceKind = "tme"
)

// Source tags an incidence with where the record was seen.
type Source string

const (
	SourceOnlyManifest Source = "dfds"
	SourceOnlyTickets  Source = "tme"
	SourceBoth         Source = "both"
)

// TicketStatus is the boarding classification derived for a ticket record.
// The Spanish labels are the wire format the reviewers consume.
type TicketStatus string

const (
	StatusBoarded   TicketStatus = "Embarcado"
	StatusCancelled TicketStatus = "Cancelado"
	StatusUnknown   TicketStatus = "Sin Estado"
)

// Incidence display labels.
const (
	LabelNotBoarded     = "No embarcado"
	TicketTypeVehicle   = "Coche"
	TicketTypePassenger = "Pasajero"

	duplicateLabelPrefix = "Duplicado"
)

// DuplicateLabel renders the ticket-side status of a duplicate incidence,
// carrying the record's original boarding classification.
func DuplicateLabel(original TicketStatus) string {
	return fmt.Sprintf("%s (%s)", duplicateLabelPrefix, original)
}

// IsDuplicateLabel reports whether a ticket-side status string was produced
// by DuplicateLabel.
func IsDuplicateLabel(status string) bool {
	return strings.HasPrefix(status, duplicateLabelPrefix)
}

// Section identifies one block of a boarding manifest.
type Section string

const (
	SectionSummary       Section = "summary"
	SectionPassengers    Section = "passengers"
	SectionVehicles      Section = "vehicles"
	SectionBoardingCards Section = "boarding_cards"
)

// FileType represents the allowed upload formats.
type FileType string

const (
	FileTypeXLSX FileType = "xlsx"
	FileTypeXLS  FileType = "xls"
	FileTypeCSV  FileType = "csv"
)

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"xlsx": FileTypeXLSX,
	"xls":  FileTypeXLS,
	"csv":  FileTypeCSV,
}
