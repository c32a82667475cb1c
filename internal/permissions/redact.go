package permissions

// DefaultSensitiveFields are the map keys treated as financial data
// when a caller does not supply its own list.
var DefaultSensitiveFields = []string{
	"cost",
	"unit_price",
	"total_price",
	"budget",
	"actual_cost",
	"initial_cost",
	"markup",
}

// FilterSensitiveFields strips financial keys from generic row maps for
// callers whose capability set lacks financial visibility. The input
// slice is never mutated; holders of the capability get it back
// unchanged. A nil sensitiveFields falls back to the default list.
func FilterSensitiveFields(rows []map[string]any, set CapabilitySet, sensitiveFields []string) []map[string]any {
	if CanViewFinancialData(set) {
		return rows
	}
	if sensitiveFields == nil {
		sensitiveFields = DefaultSensitiveFields
	}

	filtered := make([]map[string]any, len(rows))
	for i, row := range rows {
		clone := make(map[string]any, len(row))
		for k, v := range row {
			clone[k] = v
		}
		for _, field := range sensitiveFields {
			delete(clone, field)
		}
		filtered[i] = clone
	}
	return filtered
}

// Redactor is implemented by entities carrying financial fields. The
// contract is explicit per type: RedactFinancials returns a copy with
// those fields cleared, so redaction never relies on reflection over
// struct tags.
type Redactor[T any] interface {
	RedactFinancials() T
}

// RedactAll redacts every item unless the set grants financial
// visibility, in which case the input is returned as is.
func RedactAll[T Redactor[T]](items []T, set CapabilitySet) []T {
	if CanViewFinancialData(set) {
		return items
	}
	redacted := make([]T, len(items))
	for i, item := range items {
		redacted[i] = item.RedactFinancials()
	}
	return redacted
}
