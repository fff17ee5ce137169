package csvimport

import (
	"fmt"
	"strings"

	"github.com/yukikurage/roadmap-planner-api/internal/models"
)

// fieldRule validates and defaults one positional column. apply mutates
// the record and returns an advisory issue, or "" when the value was
// accepted or silently defaulted. Rules are independent: one column's
// problem never affects another, and no rule can abort the row.
type fieldRule struct {
	column int
	apply  func(value string, lookup Lookup, rec *Record) string
}

var fieldRules = []fieldRule{
	{0, applyTitle},
	{1, applyDescription},
	{2, applyStatus},
	{3, applyCategory},
	{4, applyObjective},
	{5, applyModule},
	{6, applyTeam},
	{7, applyTags},
}

func parseRow(row []string, lookup Lookup) Record {
	rec := Record{
		Status:   models.StatusLater,
		Category: models.CategoryBusiness,
	}
	for _, rule := range fieldRules {
		if issue := rule.apply(cell(row, rule.column), lookup, &rec); issue != "" {
			rec.Issues = append(rec.Issues, issue)
		}
	}
	return rec
}

func applyTitle(value string, _ Lookup, rec *Record) string {
	if value == "" {
		rec.Title = "Missing title"
		return "Title is missing, using default"
	}
	rec.Title = value
	return ""
}

func applyDescription(value string, _ Lookup, rec *Record) string {
	if value != "" {
		rec.Description = &value
	}
	return ""
}

func applyStatus(value string, _ Lookup, rec *Record) string {
	if value == "" {
		return ""
	}
	status := models.ItemStatus(strings.ToLower(value))
	if models.ValidStatus(status) {
		rec.Status = status
		return ""
	}
	return fmt.Sprintf("Unknown status %q, using %q", strings.ToLower(value), models.StatusLater)
}

// applyCategory accepts "technical" as an alias for tech. An empty cell
// silently falls back to business; only an unrecognized non-empty value
// records an issue. The asymmetry with applyStatus is deliberate and
// covered by tests.
func applyCategory(value string, _ Lookup, rec *Record) string {
	if value == "" {
		return ""
	}
	switch strings.ToLower(value) {
	case "tech", "technical":
		rec.Category = models.CategoryTech
	case "business":
		rec.Category = models.CategoryBusiness
	case "mixed":
		rec.Category = models.CategoryMixed
	default:
		return fmt.Sprintf("Unknown category %q, using %q", strings.ToLower(value), models.CategoryBusiness)
	}
	return ""
}

func applyObjective(value string, lookup Lookup, rec *Record) string {
	return resolveGrouping(value, lookup.Objectives, "Objective", &rec.ObjectiveID)
}

func applyModule(value string, lookup Lookup, rec *Record) string {
	return resolveGrouping(value, lookup.Modules, "Module", &rec.ModuleID)
}

func applyTeam(value string, lookup Lookup, rec *Record) string {
	return resolveGrouping(value, lookup.Teams, "Team", &rec.TeamID)
}

func resolveGrouping(value string, entities []EntityRef, label string, target **string) string {
	if value == "" {
		return ""
	}
	if id, ok := findEntity(value, entities); ok {
		*target = &id
		return ""
	}
	return fmt.Sprintf("%s %q not found", label, value)
}

func applyTags(value string, _ Lookup, rec *Record) string {
	if value == "" {
		return ""
	}
	pieces := strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == ';'
	})
	for _, piece := range pieces {
		if tag := strings.TrimSpace(piece); tag != "" {
			rec.Tags = append(rec.Tags, tag)
		}
	}
	return ""
}
