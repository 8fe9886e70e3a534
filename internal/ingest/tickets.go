package ingest

import (
	"strings"
	"time"

	"sobordos/internal/domain"
)

// Status keywords used to classify a raw ticket status value. "desembarque"
// contains "embarque", hence the explicit exclusion when testing for
// boarding.
const (
	boardingKeyword = "embarque"
	cancelKeyword   = "desembarque"
)

// couponPrefixes are the kiosk series prefixes the ticketing system pads
// coupon numbers with. The boarding system stores the bare number.
var couponPrefixes = []string{"1969", "2969"}

// ParseTickets normalizes a ticket-sales export. The first row is the
// header row; an input with no header row at all is a configuration error.
// Coupon and status columns are located by keyword; either may be absent,
// in which case the affected derivations degrade gracefully (no cleanup,
// status unknown, no duplicate ranking).
func ParseTickets(rows [][]domain.Cell) (*domain.TicketData, error) {
	if len(rows) == 0 {
		return nil, domain.ErrEmptyTicketTable
	}

	headers := make([]string, 0, len(rows[0]))
	for _, cell := range rows[0] {
		headers = append(headers, domain.CellString(cell))
	}

	couponField := domain.FindField(headers, domain.CouponKeywords)
	statusField := domain.FindField(headers, domain.StatusKeywords)

	records := []domain.TicketRecord{}
	for _, row := range rows[1:] {
		if !rowAnyData(row) {
			continue
		}
		rec := MapRow(headers, row)
		if couponField != "" && rec.Has(couponField) {
			rec[couponField] = CleanCoupon(rec.String(couponField))
		}
		records = append(records, domain.TicketRecord{
			Fields: rec,
			Status: deriveStatus(rec, statusField),
		})
	}

	duplicates := 0
	if couponField != "" {
		duplicates = rankDuplicates(records, couponField)
	}

	return &domain.TicketData{
		Metadata: domain.TicketMeta{
			ProcessedAt:     time.Now().UTC(),
			TotalRows:       len(rows),
			TotalDataRows:   len(records),
			DuplicatesFound: duplicates,
		},
		Headers: headers,
		Records: records,
	}, nil
}

// CleanCoupon strips the kiosk series prefix and any leading zeros that
// follow it. A coupon that is all zeros after the prefix is kept unchanged,
// since the stripped remainder would be empty. Coupons without a known
// prefix are only trimmed.
func CleanCoupon(coupon string) string {
	s := strings.TrimSpace(coupon)
	if s == "" {
		return coupon
	}
	for _, prefix := range couponPrefixes {
		if strings.HasPrefix(s, prefix) {
			rest := strings.TrimLeft(s[len(prefix):], "0")
			if rest == "" {
				return s
			}
			return rest
		}
	}
	return s
}

func deriveStatus(rec domain.Record, statusField string) domain.TicketStatus {
	if statusField == "" || !rec.Has(statusField) {
		return domain.StatusUnknown
	}
	raw := strings.ToLower(strings.TrimSpace(rec.String(statusField)))
	switch {
	case strings.Contains(raw, boardingKeyword) && !strings.Contains(raw, cancelKeyword):
		return domain.StatusBoarded
	case strings.Contains(raw, cancelKeyword):
		return domain.StatusCancelled
	default:
		return domain.StatusUnknown
	}
}

// rankDuplicates groups records by trimmed coupon value, ignoring blanks,
// and assigns 1-based ranks in original row order to every group with more
// than one member. Returns the total number of records that are part of a
// duplicate group.
func rankDuplicates(records []domain.TicketRecord, couponField string) int {
	groups := make(map[string][]int)
	var order []string
	for i := range records {
		coupon := strings.TrimSpace(records[i].Fields.String(couponField))
		if coupon == "" {
			continue
		}
		if _, seen := groups[coupon]; !seen {
			order = append(order, coupon)
		}
		groups[coupon] = append(groups[coupon], i)
	}

	total := 0
	for _, coupon := range order {
		indices := groups[coupon]
		if len(indices) < 2 {
			continue
		}
		total += len(indices)
		for rank, idx := range indices {
			records[idx].DuplicateRank = rank + 1
		}
	}
	return total
}

// rowAnyData reports whether any cell of the row carries a value.
func rowAnyData(row []domain.Cell) bool {
	for _, cell := range row {
		if hasValue(cell) {
			return true
		}
	}
	return false
}
