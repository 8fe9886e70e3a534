package domain

import "strings"

// Well-known manifest column names. The boarding system emits these
// headers verbatim, so they are matched exactly rather than by keyword.
const (
	FieldTicketNumber = "TICKET NUMBER"
	FieldStatus       = "STATUS"
	FieldSurname      = "SURNAME"
	FieldFirstName    = "FIRST NAME"
	FieldDocumentID   = "DOCUMENT ID"
	FieldMake         = "MAKE"
	FieldModel        = "MODEL"
	FieldLicensePlate = "LICENSE PLATE"
	FieldDriver       = "DRIVER"
)

// KeywordFamily is an ordered list of lower-case substrings used to locate
// a column in a schema that varies between exports. A header belongs to the
// family when it contains any of the keywords, case-insensitively.
type KeywordFamily []string

// Keyword families for ticket-table column discovery. Kept as data so the
// heuristics stay in one place.
var (
	CouponKeywords     = KeywordFamily{"cupon", "ticket", "numero", "coupon"}
	StatusKeywords     = KeywordFamily{"estado", "status", "state"}
	NameKeywords       = KeywordFamily{"nombre", "apellido", "name"}
	DocumentKeywords   = KeywordFamily{"documento", "dni", "pasaporte", "document"}
	AccessTypeKeywords = KeywordFamily{"tipo acceso", "acceso", "access", "categoria"}
	TicketTypeKeywords = KeywordFamily{"tipo billete", "billete", "ticket", "tarifa"}
)

// Matches reports whether the header belongs to the family.
func (f KeywordFamily) Matches(header string) bool {
	h := strings.ToLower(header)
	for _, kw := range f {
		if strings.Contains(h, kw) {
			return true
		}
	}
	return false
}

// FindField returns the first header belonging to the family, or "" when
// no header matches.
func FindField(headers []string, family KeywordFamily) string {
	for _, h := range headers {
		if family.Matches(h) {
			return h
		}
	}
	return ""
}

// FilterFields returns every header belonging to the family, in header
// order.
func FilterFields(headers []string, family KeywordFamily) []string {
	var out []string
	for _, h := range headers {
		if family.Matches(h) {
			out = append(out, h)
		}
	}
	return out
}
