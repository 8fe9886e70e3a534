// Package ingest turns raw spreadsheet row grids into the typed record
// collections the reconciliation engine consumes. It never reads file
// bytes; the fileparse adapter hands it already-tokenized rows.
package ingest

import "sobordos/internal/domain"

// MapRow builds a field-keyed record from an ordered header list and a raw
// cell row. record[header[i]] = row[i], with absent cells stored as nil;
// header positions beyond the row length map to nil and extra cells beyond
// the header length are dropped. Empty strings and numeric zeros are
// coerced to nil, matching how the exports encode "no value".
func MapRow(headers []string, row []domain.Cell) domain.Record {
	rec := make(domain.Record, len(headers))
	for i, h := range headers {
		var v any
		if i < len(row) {
			v = row[i]
		}
		if isAbsent(v) {
			rec[h] = nil
		} else {
			rec[h] = v
		}
	}
	return rec
}

func isAbsent(v any) bool {
	switch c := v.(type) {
	case nil:
		return true
	case string:
		return c == ""
	case float64:
		return c == 0
	case int:
		return c == 0
	}
	return false
}

// hasValue reports whether a raw cell carries data. Unlike isAbsent it
// treats numeric zero as data; this is the row-validity check, not the
// record-mapping coercion.
func hasValue(v any) bool {
	switch c := v.(type) {
	case nil:
		return false
	case string:
		return c != ""
	}
	return true
}
