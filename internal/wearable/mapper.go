// ABOUTME: Heuristic mapping of CSV header names to wearable parameters.
// ABOUTME: Exact match wins, then first case-insensitive substring match.
package wearable

import (
	"strings"

	"github.com/harperreed/healthtwin/internal/models"
)

// TimestampColumn is the header name auto-detected as the timestamp.
const TimestampColumn = "timestamp"

// Mapping maps each wearable parameter to the name of the input column
// that carries it. An empty string means the parameter is unmapped.
// A Mapping is a default suggestion only; callers may override entries
// before ingestion.
type Mapping map[models.Parameter]string

// AutoMap suggests a mapping for the given input columns. For each
// parameter, in canonical order: an exact column-name match wins; failing
// that, the first column containing the parameter name case-insensitively
// is used; otherwise the parameter stays unmapped. Ties always resolve to
// the earliest matching column, keeping the suggestion deterministic.
func AutoMap(columns []string) Mapping {
	m := make(Mapping, len(models.AllParameters))
	for _, p := range models.AllParameters {
		m[p] = matchColumn(string(p), columns)
	}
	return m
}

func matchColumn(param string, columns []string) string {
	for _, c := range columns {
		if c == param {
			return c
		}
	}
	for _, c := range columns {
		if strings.Contains(strings.ToLower(c), param) {
			return c
		}
	}
	return ""
}

// DetectTimestampColumn returns the timestamp column if one is named
// "timestamp", or "" when the caller must pick one.
func DetectTimestampColumn(columns []string) string {
	for _, c := range columns {
		if c == TimestampColumn {
			return c
		}
	}
	return ""
}
