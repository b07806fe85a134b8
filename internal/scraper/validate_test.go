package scraper

import (
	"os"
	"strings"
	"testing"
)

func TestValidateStructureNoTable(t *testing.T) {
	html := `<div><p>maintenance page</p></div>`

	result := ValidateStructure(html, 169)

	if result.Valid {
		t.Error("expected validation to fail without a table")
	}
	if len(result.Errors) != 1 {
		t.Fatalf("expected exactly one error, got %d: %v", len(result.Errors), result.Errors)
	}
	if result.Errors[0].Code != CodeTableMissing {
		t.Errorf("expected TABLE_MISSING, got %s", result.Errors[0].Code)
	}
	if result.Shop != 169 {
		t.Errorf("expected shop 169, got %d", result.Shop)
	}
	if result.RawHTMLSample == "" {
		t.Error("expected a raw HTML sample on failure")
	}
}

func TestValidateStructureFixtureIsValid(t *testing.T) {
	data, err := os.ReadFile("testdata/schedule.html")
	if err != nil {
		t.Fatalf("failed to load test fixture: %v", err)
	}

	result := ValidateStructure(string(data), 169)

	if !result.Valid {
		t.Fatalf("expected fixture to validate, got errors: %v", result.Errors)
	}
	if result.RawHTMLSample != "" {
		t.Error("valid result should not carry an HTML sample")
	}
}

func TestValidateStructureFilterSelectCount(t *testing.T) {
	html := `<select class="course-list__filter"></select>
		<table><tr class="course-list__table__date-header"><td>Montag, 01.01.2024</td></tr>
		<tr class="course-list__table__course"><td>10:00 - 11:00</td><td></td><td></td><td></td><td></td><td></td></tr></table>`

	result := ValidateStructure(html, 1)

	found := false
	for _, e := range result.Errors {
		if e.Code == CodeFilterSelectMissing {
			found = true
			if e.Expected != "2" || e.Actual != "1" {
				t.Errorf("expected/actual = %q/%q, want 2/1", e.Expected, e.Actual)
			}
		}
	}
	if !found {
		t.Errorf("expected FILTER_SELECT_MISSING, got %v", result.Errors)
	}
}

func TestValidateStructureDateHeaderMissing(t *testing.T) {
	html := `<table><tr><td>no headers here</td></tr></table>`

	result := ValidateStructure(html, 1)

	found := false
	for _, e := range result.Errors {
		if e.Code == CodeDateHeaderRowMissing {
			found = true
		}
	}
	if !found {
		t.Errorf("expected DATE_HEADER_ROW_MISSING, got %v", result.Errors)
	}
}

func TestValidateStructureDateFormatChanged(t *testing.T) {
	html := `<table>
		<tr class="course-list__table__date-header"><td>2024-01-01</td></tr>
		<tr class="course-list__table__course"><td>10:00 - 11:00</td><td></td><td></td><td></td><td></td><td></td></tr>
	</table>`

	result := ValidateStructure(html, 1)

	found := false
	for _, e := range result.Errors {
		if e.Code == CodeDateFormatChanged {
			found = true
			if e.Actual != "2024-01-01" {
				t.Errorf("actual = %q, want the offending text", e.Actual)
			}
		}
	}
	if !found {
		t.Errorf("expected DATE_FORMAT_CHANGED, got %v", result.Errors)
	}
}

func TestValidateStructureCourseRowsMissing(t *testing.T) {
	html := `<table><tr class="course-list__table__date-header"><td>Montag, 01.01.2024</td></tr></table>`

	result := ValidateStructure(html, 1)

	found := false
	for _, e := range result.Errors {
		if e.Code == CodeCourseRowStructureInvalid {
			found = true
		}
	}
	if !found {
		t.Errorf("expected COURSE_ROW_STRUCTURE_INVALID, got %v", result.Errors)
	}
}

func TestValidateStructureCourseRowChecks(t *testing.T) {
	html := `<table>
		<tr class="course-list__table__date-header"><td>Montag, 01.01.2024</td></tr>
		<tr class="course-list__table__course"><td>10 Uhr</td><td></td></tr>
	</table>`

	result := ValidateStructure(html, 1)

	var codes []ErrorCode
	for _, e := range result.Errors {
		codes = append(codes, e.Code)
	}

	hasCellCount, hasTimeFormat := false, false
	for _, c := range codes {
		if c == CodeCellCountMismatch {
			hasCellCount = true
		}
		if c == CodeTimeFormatChanged {
			hasTimeFormat = true
		}
	}
	if !hasCellCount || !hasTimeFormat {
		t.Errorf("expected CELL_COUNT_MISMATCH and TIME_FORMAT_CHANGED, got %v", codes)
	}
}

func TestValidateStructureAcceptsEnDashTimes(t *testing.T) {
	html := `<select class="course-list__filter"></select><select class="course-list__filter"></select>
	<table>
		<tr class="course-list__table__date-header"><td>Montag, 01.01.2024</td></tr>
		<tr class="course-list__table__course"><td>10:00 – 11:00</td><td></td><td></td><td></td><td></td><td></td></tr>
	</table>`

	result := ValidateStructure(html, 1)

	for _, e := range result.Errors {
		if e.Code == CodeTimeFormatChanged {
			t.Errorf("EN DASH time range should validate, got %v", e)
		}
	}
}

func TestRawSampleIsCapped(t *testing.T) {
	html := "<div>" + strings.Repeat("x", 2000)

	result := ValidateStructure(html, 1)

	if !result.Valid && len([]rune(result.RawHTMLSample)) != 500 {
		t.Errorf("sample length = %d, expected 500", len([]rune(result.RawHTMLSample)))
	}
}
