package ingest

import (
	"strings"
	"time"

	"sobordos/internal/domain"
)

// Section-header sentinels emitted by the boarding system. The summary and
// boarding-card sections are recognized by their first cell alone; the
// passenger and vehicle sections need the second cell too because their
// first cells are ordinary words.
const (
	sentinelSummary      = "RESOURCE"
	sentinelBoardingCard = "TYPE"
)

// ParseManifest scans the raw manifest rows once, left to right, routing
// data rows into the section opened by the most recent sentinel row. Rows
// before the first sentinel, rows with a blank first cell, and rows with no
// data under the current headers are skipped. Passenger and vehicle records
// receive a synthetic STATUS field set to boarded at creation time.
func ParseManifest(rows [][]domain.Cell) *domain.ManifestData {
	data := &domain.ManifestData{
		Metadata: domain.ManifestMeta{
			ProcessedAt: time.Now().UTC(),
			TotalRows:   len(rows),
		},
		Summary:       []domain.Record{},
		Passengers:    []domain.Record{},
		Vehicles:      []domain.Record{},
		BoardingCards: []domain.Record{},
	}

	var section domain.Section
	var headers []string

	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		first := strings.TrimSpace(domain.CellString(row[0]))
		if first == "" {
			continue
		}

		if s, hdrs, ok := detectSectionHeader(first, row); ok {
			section = s
			headers = hdrs
			continue
		}

		if section == "" || len(headers) == 0 {
			continue
		}
		if !rowHasData(row, len(headers)) {
			continue
		}

		rec := MapRow(headers, row)
		switch section {
		case domain.SectionSummary:
			data.Summary = append(data.Summary, rec)
		case domain.SectionPassengers:
			rec[domain.FieldStatus] = string(domain.StatusBoarded)
			data.Passengers = append(data.Passengers, rec)
		case domain.SectionVehicles:
			rec[domain.FieldStatus] = string(domain.StatusBoarded)
			data.Vehicles = append(data.Vehicles, rec)
		case domain.SectionBoardingCards:
			data.BoardingCards = append(data.BoardingCards, rec)
		}
	}

	return data
}

// detectSectionHeader matches a row against the four section sentinels and,
// on a hit, captures the row's non-empty cells as the section's header
// list. The sentinel row itself is never emitted as data.
func detectSectionHeader(first string, row []domain.Cell) (domain.Section, []string, bool) {
	var second string
	if len(row) > 1 {
		second = domain.CellString(row[1])
	}

	var section domain.Section
	switch {
	case first == sentinelSummary:
		section = domain.SectionSummary
	case first == domain.FieldSurname && second == domain.FieldFirstName:
		section = domain.SectionPassengers
	case first == domain.FieldMake && second == domain.FieldModel:
		section = domain.SectionVehicles
	case first == sentinelBoardingCard:
		section = domain.SectionBoardingCards
	default:
		return "", nil, false
	}

	var headers []string
	for _, cell := range row {
		s := domain.CellString(cell)
		if strings.TrimSpace(s) != "" {
			headers = append(headers, s)
		}
	}
	return section, headers, true
}

// rowHasData reports whether any of the cells covered by the current
// header list carries a value.
func rowHasData(row []domain.Cell, headerLen int) bool {
	limit := headerLen
	if limit > len(row) {
		limit = len(row)
	}
	for _, cell := range row[:limit] {
		if hasValue(cell) {
			return true
		}
	}
	return false
}
