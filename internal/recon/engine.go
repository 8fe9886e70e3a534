// Package recon cross-matches a sectionized boarding manifest against a
// normalized ticket table and classifies every discrepancy into an
// incidence list with summary statistics.
package recon

import (
	"strings"

	"sobordos/internal/domain"
)

// Matches reports whether a ticket coupon and a manifest ticket number
// refer to the same sale. Bidirectional substring containment (not
// equality) tolerates the prefix/suffix padding differences between the
// two systems' numbering schemes. A very short number contained in an
// unrelated longer one matches too.
func Matches(coupon, ticket string) bool {
	return strings.Contains(coupon, ticket) || strings.Contains(ticket, coupon)
}

// Compare runs the four classification passes over the manifest and ticket
// collections and returns the incidence list plus statistics. Inputs are
// never mutated; every call builds a fresh result.
//
// Compare degrades rather than fails: a nil input, an empty coupon field
// name, or a coupon field that is not among the ticket headers yields an
// empty incidence list with zeroed statistics.
func Compare(manifest *domain.ManifestData, tickets *domain.TicketData, couponField string) *domain.Result {
	empty := &domain.Result{Incidences: []domain.Incidence{}}
	if manifest == nil || tickets == nil || couponField == "" {
		return empty
	}
	if !containsHeader(tickets.Headers, couponField) {
		return empty
	}

	c := &comparison{
		tickets:     tickets,
		couponField: couponField,
		incidences:  []domain.Incidence{},
	}
	// Pool order matters: first-match search walks passengers, then
	// vehicles, in row order.
	c.boarded = append(c.boarded, manifest.Passengers...)
	c.boarded = append(c.boarded, manifest.Vehicles...)

	c.unmatchedTickets()
	c.unmatchedManifest()
	c.cancelledTickets()
	c.duplicateTickets()

	return &domain.Result{
		Incidences: c.incidences,
		Stats:      buildStats(c.incidences),
	}
}

// comparison holds the immutable inputs and the incidence list under
// construction for a single Compare call.
type comparison struct {
	boarded     []domain.Record // manifest passengers + vehicles
	tickets     *domain.TicketData
	couponField string
	incidences  []domain.Incidence
}

// unmatchedTickets is pass 1: valid, non-cancelled, non-duplicate ticket
// records with no manifest counterpart were sold but never boarded.
func (c *comparison) unmatchedTickets() {
	for i := range c.tickets.Records {
		rec := &c.tickets.Records[i]
		coupon := rec.Fields.String(c.couponField)
		if strings.TrimSpace(coupon) == "" {
			continue
		}
		if rec.Status == domain.StatusCancelled || rec.DuplicateRank > 0 {
			continue
		}
		if c.findManifestMatch(coupon) != nil {
			continue
		}
		c.incidences = append(c.incidences, domain.Incidence{
			TicketNumber:      coupon,
			FullName:          c.joinTicketFields(rec, domain.NameKeywords),
			DocumentOrLicense: c.joinTicketFields(rec, domain.DocumentKeywords),
			AccessType:        c.firstTicketField(rec, domain.AccessTypeKeywords),
			TicketType:        c.firstTicketField(rec, domain.TicketTypeKeywords),
			ManifestStatus:    domain.LabelNotBoarded,
			TicketStatus:      statusOrBoarded(rec.Status),
			Source:            domain.SourceOnlyTickets,
		})
	}
}

// unmatchedManifest is pass 2: manifest passengers and vehicles whose
// ticket number has no ticket-side counterpart boarded without a sale.
// A counterpart that exists but was cancelled is skipped here; pass 3
// reports it.
func (c *comparison) unmatchedManifest() {
	for _, rec := range c.boarded {
		ticket := rec.String(domain.FieldTicketNumber)
		if strings.TrimSpace(ticket) == "" {
			continue
		}

		// Any counterpart means the sale exists; a cancelled counterpart
		// is pass 3's responsibility, not a manifest-only incidence.
		if c.findTicketMatch(ticket) != nil {
			continue
		}

		isVehicle := rec.Has(domain.FieldMake) || rec.Has(domain.FieldModel) || rec.Has(domain.FieldLicensePlate)

		var fullName, document, ticketType string
		if isVehicle {
			fullName = vehicleName(rec)
			document = valueOrDash(rec.String(domain.FieldLicensePlate))
			ticketType = domain.TicketTypeVehicle
		} else {
			fullName = passengerName(rec)
			document = valueOrDash(rec.String(domain.FieldDocumentID))
			ticketType = domain.TicketTypePassenger
		}

		c.incidences = append(c.incidences, domain.Incidence{
			TicketNumber:      ticket,
			FullName:          fullName,
			DocumentOrLicense: document,
			AccessType:        "-",
			TicketType:        ticketType,
			ManifestStatus:    manifestStatus(rec),
			TicketStatus:      domain.LabelNotBoarded,
			Source:            domain.SourceOnlyManifest,
		})
	}
}

// cancelledTickets is pass 3: every non-duplicate cancelled ticket record
// is reported, whether or not it boarded.
func (c *comparison) cancelledTickets() {
	for i := range c.tickets.Records {
		rec := &c.tickets.Records[i]
		if rec.Status != domain.StatusCancelled || rec.DuplicateRank > 0 {
			continue
		}
		coupon := rec.Fields.String(c.couponField)
		if strings.TrimSpace(coupon) == "" {
			continue
		}
		c.incidences = append(c.incidences, c.ticketSideIncidence(rec, coupon, string(domain.StatusCancelled)))
	}
}

// duplicateTickets is pass 4: every record carrying a duplicate rank is
// reported separately, regardless of cancellation, so a group of N
// duplicates yields N rows sharing the cleaned coupon value.
func (c *comparison) duplicateTickets() {
	for i := range c.tickets.Records {
		rec := &c.tickets.Records[i]
		if rec.DuplicateRank == 0 {
			continue
		}
		coupon := rec.Fields.String(c.couponField)
		if strings.TrimSpace(coupon) == "" {
			continue
		}
		original := rec.Status
		if original == "" {
			original = domain.StatusUnknown
		}
		c.incidences = append(c.incidences, c.ticketSideIncidence(rec, coupon, domain.DuplicateLabel(original)))
	}
}

// ticketSideIncidence builds an incidence for a ticket record, looking up
// the manifest counterpart to decide source and manifest-side status.
func (c *comparison) ticketSideIncidence(rec *domain.TicketRecord, coupon, ticketStatus string) domain.Incidence {
	status := domain.LabelNotBoarded
	source := domain.SourceOnlyTickets
	if match := c.findManifestMatch(coupon); match != nil {
		status = manifestStatus(match)
		source = domain.SourceBoth
	}
	return domain.Incidence{
		TicketNumber:      coupon,
		FullName:          c.joinTicketFields(rec, domain.NameKeywords),
		DocumentOrLicense: c.joinTicketFields(rec, domain.DocumentKeywords),
		AccessType:        c.firstTicketField(rec, domain.AccessTypeKeywords),
		TicketType:        c.firstTicketField(rec, domain.TicketTypeKeywords),
		ManifestStatus:    status,
		TicketStatus:      ticketStatus,
		Source:            source,
	}
}

// findManifestMatch returns the first boarded manifest record whose ticket
// number matches the coupon, or nil. First match in iteration order; no
// best-match search.
func (c *comparison) findManifestMatch(coupon string) domain.Record {
	for _, rec := range c.boarded {
		ticket := rec.String(domain.FieldTicketNumber)
		if strings.TrimSpace(ticket) == "" {
			continue
		}
		if Matches(coupon, ticket) {
			return rec
		}
	}
	return nil
}

// findTicketMatch returns the first ticket record whose coupon matches the
// manifest ticket number, or nil. Blank coupons never match.
func (c *comparison) findTicketMatch(ticket string) *domain.TicketRecord {
	for i := range c.tickets.Records {
		coupon := c.tickets.Records[i].Fields.String(c.couponField)
		if strings.TrimSpace(coupon) == "" {
			continue
		}
		if Matches(coupon, ticket) {
			return &c.tickets.Records[i]
		}
	}
	return nil
}

// joinTicketFields concatenates the values of every header in the family
// with single spaces; "-" when nothing matched or everything was blank.
func (c *comparison) joinTicketFields(rec *domain.TicketRecord, family domain.KeywordFamily) string {
	fields := domain.FilterFields(c.tickets.Headers, family)
	if len(fields) == 0 {
		return "-"
	}
	values := make([]string, len(fields))
	for i, f := range fields {
		values[i] = rec.Fields.String(f)
	}
	return valueOrDash(strings.TrimSpace(strings.Join(values, " ")))
}

// firstTicketField returns the value of the first header in the family,
// or "-".
func (c *comparison) firstTicketField(rec *domain.TicketRecord, family domain.KeywordFamily) string {
	field := domain.FindField(c.tickets.Headers, family)
	if field == "" {
		return "-"
	}
	return valueOrDash(rec.Fields.String(field))
}

func buildStats(incidences []domain.Incidence) domain.Stats {
	stats := domain.Stats{
		TotalRecords: len(incidences),
		Incidences:   len(incidences),
	}
	for _, inc := range incidences {
		dup := domain.IsDuplicateLabel(inc.TicketStatus)
		switch {
		case dup:
			stats.Duplicates++
		case inc.Source == domain.SourceBoth && inc.TicketStatus != string(domain.StatusCancelled):
			stats.MatchedRecords++
		}
		if inc.Source == domain.SourceOnlyManifest {
			stats.OnlyInManifest++
		}
		if inc.Source == domain.SourceOnlyTickets && !dup {
			stats.OnlyInTickets++
		}
	}
	return stats
}

func manifestStatus(rec domain.Record) string {
	if s := rec.String(domain.FieldStatus); s != "" {
		return s
	}
	return string(domain.StatusBoarded)
}

func statusOrBoarded(s domain.TicketStatus) string {
	if s == "" {
		return string(domain.StatusBoarded)
	}
	return string(s)
}

func vehicleName(rec domain.Record) string {
	var parts []string
	for _, f := range []string{domain.FieldMake, domain.FieldModel} {
		if v := rec.String(f); v != "" {
			parts = append(parts, v)
		}
	}
	if name := strings.Join(parts, " "); name != "" {
		return name
	}
	return valueOrDash(rec.String(domain.FieldDriver))
}

func passengerName(rec domain.Record) string {
	name := rec.String(domain.FieldFirstName) + " " + rec.String(domain.FieldSurname)
	return valueOrDash(strings.TrimSpace(name))
}

func valueOrDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func containsHeader(headers []string, name string) bool {
	for _, h := range headers {
		if h == name {
			return true
		}
	}
	return false
}
