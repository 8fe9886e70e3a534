package domain

import (
	"strconv"
	"time"
)

// Cell is a single raw spreadsheet cell as handed over by the parsing
// adapter: a string, a float64, or nil when the cell is absent.
type Cell any

// Record is a field-keyed row. Absent cells are stored as nil.
type Record map[string]any

// String returns the string form of a field, or "" when the field is
// absent. Numbers are rendered without a trailing decimal point so ticket
// numbers read back exactly as they appear in the spreadsheet.
func (r Record) String(field string) string {
	return CellString(r[field])
}

// Has reports whether the field is present with a non-nil value.
func (r Record) Has(field string) bool {
	return r[field] != nil
}

// CellString converts a raw cell value to its display string.
func CellString(v any) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	case float64:
		return strconv.FormatFloat(c, 'f', -1, 64)
	case int:
		return strconv.Itoa(c)
	default:
		return ""
	}
}

// ManifestMeta describes one ingested boarding-manifest file.
type ManifestMeta struct {
	FileName    string    `json:"file_name"`
	ProcessedAt time.Time `json:"processed_at"`
	TotalRows   int       `json:"total_rows"`
}

// ManifestData is the sectionized boarding manifest (DFDS export).
// Passenger and vehicle records carry a synthetic STATUS field set to
// boarded at creation time; summary and boarding-card records do not.
type ManifestData struct {
	Metadata      ManifestMeta `json:"metadata"`
	Summary       []Record     `json:"summary"`
	Passengers    []Record     `json:"passengers"`
	Vehicles      []Record     `json:"vehicles"`
	BoardingCards []Record     `json:"boarding_cards"`
}

// TicketMeta describes one ingested ticket-sales file.
type TicketMeta struct {
	FileName        string    `json:"file_name"`
	ProcessedAt     time.Time `json:"processed_at"`
	TotalRows       int       `json:"total_rows"`
	TotalDataRows   int       `json:"total_data_rows"`
	DuplicatesFound int       `json:"duplicates_found"`
}

// TicketRecord is one normalized ticket-sales row. Status and
// DuplicateRank are derived once during normalization and never mutated
// afterwards; Fields keeps the full header-keyed row with the coupon
// value already cleaned.
type TicketRecord struct {
	Fields        Record       `json:"fields"`
	Status        TicketStatus `json:"status"`
	DuplicateRank int          `json:"duplicate_rank,omitempty"` // 0 when the coupon is unique
}

// TicketData is the normalized ticket table (TME export).
type TicketData struct {
	Metadata TicketMeta     `json:"metadata"`
	Headers  []string       `json:"headers"`
	Records  []TicketRecord `json:"records"`
}

// Incidence is one row of the reconciliation output.
type Incidence struct {
	TicketNumber      string `json:"ticket_number"`
	FullName          string `json:"full_name"`
	DocumentOrLicense string `json:"document_or_license"`
	AccessType        string `json:"access_type"`
	TicketType        string `json:"ticket_type"`
	ManifestStatus    string `json:"manifest_status"`
	TicketStatus      string `json:"ticket_status"`
	Source            Source `json:"source"`
}

// Stats summarizes one reconciliation run. TotalRecords and Incidences
// both equal the incidence-list length; the split fields partition it by
// classification.
type Stats struct {
	TotalRecords   int `json:"total_records"`
	MatchedRecords int `json:"matched_records"`
	OnlyInManifest int `json:"only_in_dfds"`
	OnlyInTickets  int `json:"only_in_tme"`
	Duplicates     int `json:"duplicates"`
	Incidences     int `json:"incidences"`
}

// Result is the full output of one reconciliation run.
type Result struct {
	Incidences []Incidence `json:"incidences"`
	Stats      Stats       `json:"stats"`
}
