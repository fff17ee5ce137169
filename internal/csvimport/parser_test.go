package csvimport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/roadmap-planner-api/internal/models"
)

func testLookup() Lookup {
	return Lookup{
		Objectives: []EntityRef{{ID: "obj-1", Title: "Growth"}},
		Modules:    []EntityRef{{ID: "mod-1", Title: "Core"}},
		Teams:      []EntityRef{{ID: "team-1", Title: "Platform"}},
	}
}

func TestParseFullyPopulatedRow(t *testing.T) {
	content := `"Ship v2";"Desc";"now";"tech";"Growth";"Core";"";"a,b"`

	records, err := Parse(content, false, testLookup())
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "Ship v2", rec.Title)
	require.NotNil(t, rec.Description)
	assert.Equal(t, "Desc", *rec.Description)
	assert.Equal(t, models.StatusNow, rec.Status)
	assert.Equal(t, models.CategoryTech, rec.Category)
	require.NotNil(t, rec.ObjectiveID)
	assert.Equal(t, "obj-1", *rec.ObjectiveID)
	require.NotNil(t, rec.ModuleID)
	assert.Equal(t, "mod-1", *rec.ModuleID)
	assert.Nil(t, rec.TeamID)
	assert.Equal(t, []string{"a", "b"}, rec.Tags)
	assert.Empty(t, rec.Issues)
}

// A bad status records an issue but an empty category stays silent;
// the two default paths are intentionally asymmetric.
func TestParseDefaultsAndIssueAsymmetry(t *testing.T) {
	records, err := Parse(";;weird;;;;;", false, testLookup())
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "Missing title", rec.Title)
	assert.Nil(t, rec.Description)
	assert.Equal(t, models.StatusLater, rec.Status)
	assert.Equal(t, models.CategoryBusiness, rec.Category)

	require.Len(t, rec.Issues, 2)
	assert.Equal(t, "Title is missing, using default", rec.Issues[0])
	assert.Contains(t, rec.Issues[1], `"weird"`)
}

func TestParseHeaderRemoval(t *testing.T) {
	content := "Title;Description;Status;Category;Objective;Module;Team;Tags\nThing;;;;;;;"

	records, err := Parse(content, true, testLookup())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Thing", records[0].Title)
}

func TestParseFatalErrors(t *testing.T) {
	_, err := Parse("", false, Lookup{})
	assert.ErrorIs(t, err, ErrEmptyFile)

	_, err = Parse("\n\n  \n", false, Lookup{})
	assert.ErrorIs(t, err, ErrEmptyFile)

	_, err = Parse("Title;Description\n", true, Lookup{})
	assert.ErrorIs(t, err, ErrNoDataRows)
}

func TestParseRowsAreIndependent(t *testing.T) {
	content := "First;;bogus;;Nowhere;;;\nSecond;;next;business;Growth;;;"

	records, err := Parse(content, false, testLookup())
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.NotEmpty(t, records[0].Issues)
	assert.Nil(t, records[0].ObjectiveID)

	assert.Empty(t, records[1].Issues)
	assert.Equal(t, models.StatusNext, records[1].Status)
	require.NotNil(t, records[1].ObjectiveID)
	assert.Equal(t, "obj-1", *records[1].ObjectiveID)
}

func TestParseGroupingLookupIsCaseInsensitive(t *testing.T) {
	records, err := Parse("Thing;;;;gRoWtH;;PLATFORM;", false, testLookup())
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	require.NotNil(t, rec.ObjectiveID)
	assert.Equal(t, "obj-1", *rec.ObjectiveID)
	require.NotNil(t, rec.TeamID)
	assert.Equal(t, "team-1", *rec.TeamID)
	assert.Empty(t, rec.Issues)
}

func TestParseUnmatchedGroupingRecordsIssue(t *testing.T) {
	records, err := Parse("Thing;;;;Unknown Goal;;;", false, testLookup())
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Nil(t, rec.ObjectiveID)
	require.Len(t, rec.Issues, 1)
	assert.Equal(t, `Objective "Unknown Goal" not found`, rec.Issues[0])
}

func TestParseCategoryAliases(t *testing.T) {
	records, err := Parse("A;;;Technical;;;;\nB;;;MIXED;;;;\nC;;;nonsense;;;;", false, Lookup{})
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, models.CategoryTech, records[0].Category)
	assert.Equal(t, models.CategoryMixed, records[1].Category)

	assert.Equal(t, models.CategoryBusiness, records[2].Category)
	require.Len(t, records[2].Issues, 1)
	assert.Contains(t, records[2].Issues[0], `"nonsense"`)
}

func TestTokenizeQuoting(t *testing.T) {
	rows := tokenize(`"a;b";"he said ""hi""";plain`)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"a;b", `he said "hi"`, "plain"}, rows[0])
}

func TestTokenizeNewlineEndsRowEvenMidQuote(t *testing.T) {
	rows := tokenize("\"unterminated;field\nnext;row")
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"unterminated;field"}, rows[0])
	assert.Equal(t, []string{"next", "row"}, rows[1])
}

func TestTokenizeSkipsBlankLines(t *testing.T) {
	rows := tokenize("a;b\n\n   \nc;d\n")
	require.Len(t, rows, 2)
}

func TestParseTagsSplitOnCommaAndSemicolon(t *testing.T) {
	records, err := Parse(`Thing;;;;;;;"x, y; z,,"`, false, Lookup{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, []string{"x", "y", "z"}, records[0].Tags)
}

func TestParseShortRowTreatsMissingColumnsAsEmpty(t *testing.T) {
	records, err := Parse("Only a title", false, Lookup{})
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "Only a title", rec.Title)
	assert.Equal(t, models.StatusLater, rec.Status)
	assert.Equal(t, models.CategoryBusiness, rec.Category)
	assert.Empty(t, rec.Issues)
	assert.Nil(t, rec.Tags)
}
