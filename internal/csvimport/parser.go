// Package csvimport parses the semicolon-delimited roadmap import
// format: eight positional columns (title, description, status,
// category, objective, module, team, tags), double-quote quoting with
// "" as the escaped quote, one record per line.
package csvimport

import (
	"errors"
	"strings"

	"github.com/yukikurage/roadmap-planner-api/internal/models"
)

var (
	ErrEmptyFile  = errors.New("the file contains no rows")
	ErrNoDataRows = errors.New("the file contains no data rows")
)

// Record is one validated, defaulted item-creation row. Issues are
// advisory: they describe values that were defaulted or names that
// could not be matched, and never block the import.
type Record struct {
	Title       string
	Description *string
	Status      models.ItemStatus
	Category    models.ItemCategory
	ObjectiveID *string
	ModuleID    *string
	TeamID      *string
	Tags        []string
	Issues      []string
}

// EntityRef is the (id, title) pair used to resolve free-text grouping
// names against existing entities.
type EntityRef struct {
	ID    string
	Title string
}

// Lookup holds the roadmap's existing groupings for name resolution.
type Lookup struct {
	Objectives []EntityRef
	Modules    []EntityRef
	Teams      []EntityRef
}

// findEntity matches a free-text name against entity titles,
// case-insensitively on the trimmed value.
func findEntity(name string, entities []EntityRef) (string, bool) {
	want := strings.ToLower(strings.TrimSpace(name))
	for _, e := range entities {
		if strings.ToLower(e.Title) == want {
			return e.ID, true
		}
	}
	return "", false
}

// Parse tokenizes content and validates every data row independently.
// It fails only when there are no rows at all, or no data rows left
// after the optional header is removed; everything else is a per-row
// issue on the affected Record.
func Parse(content string, hasHeaders bool, lookup Lookup) ([]Record, error) {
	rows := tokenize(content)
	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}

	dataRows := rows
	if hasHeaders {
		dataRows = rows[1:]
	}
	if len(dataRows) == 0 {
		return nil, ErrNoDataRows
	}

	records := make([]Record, 0, len(dataRows))
	for _, row := range dataRows {
		records = append(records, parseRow(row, lookup))
	}
	return records, nil
}

// tokenize splits content into rows of trimmed fields. The delimiter is
// a semicolon; fields may be quoted with double quotes and a doubled
// quote inside a quoted field is a literal quote. A newline always ends
// the row, even mid-quote, and blank lines are skipped entirely.
func tokenize(content string) [][]string {
	var rows [][]string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var row []string
		var current strings.Builder
		inQuotes := false
		runes := []rune(line)
		for i := 0; i < len(runes); i++ {
			ch := runes[i]
			switch {
			case ch == '"':
				if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
					current.WriteRune('"')
					i++
				} else {
					inQuotes = !inQuotes
				}
			case ch == ';' && !inQuotes:
				row = append(row, strings.TrimSpace(current.String()))
				current.Reset()
			default:
				current.WriteRune(ch)
			}
		}
		row = append(row, strings.TrimSpace(current.String()))
		rows = append(rows, row)
	}
	return rows
}

func cell(row []string, column int) string {
	if column >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[column])
}
