package scraper

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// ErrorCode categorizes a structural drift finding.
type ErrorCode string

const (
	CodeTableMissing              ErrorCode = "TABLE_MISSING"
	CodeFilterSelectMissing       ErrorCode = "FILTER_SELECT_MISSING"
	CodeDateHeaderRowMissing      ErrorCode = "DATE_HEADER_ROW_MISSING"
	CodeDateFormatChanged         ErrorCode = "DATE_FORMAT_CHANGED"
	CodeCourseRowStructureInvalid ErrorCode = "COURSE_ROW_STRUCTURE_INVALID"
	CodeCellCountMismatch         ErrorCode = "CELL_COUNT_MISMATCH"
	CodeTimeFormatChanged         ErrorCode = "TIME_FORMAT_CHANGED"
)

// ValidationError describes one way the page shape deviates from what the
// extractor expects.
type ValidationError struct {
	Code     ErrorCode `json:"code"`
	Message  string    `json:"message"`
	Selector string    `json:"selector,omitempty"`
	Expected string    `json:"expected,omitempty"`
	Actual   string    `json:"actual,omitempty"`
}

// ValidationResult is the outcome of inspecting one fetched document. On
// failure it carries the first 500 characters of the raw HTML as a forensic
// sample.
type ValidationResult struct {
	Timestamp     time.Time         `json:"timestamp"`
	Shop          int               `json:"shop"`
	Valid         bool              `json:"isValid"`
	Errors        []ValidationError `json:"errors"`
	RawHTMLSample string            `json:"rawHtmlSample,omitempty"`
}

const (
	selectorFilterSelect = "select.course-list__filter"
	selectorDateHeader   = "tr.course-list__table__date-header"
	selectorCourseRow    = "tr.course-list__table__course"

	minCourseCells  = 6
	rawSampleLength = 500
)

var (
	headerDatePattern = regexp.MustCompile(`^\w+,\s+\d{2}\.\d{2}\.\d{4}$`)
	courseTimePattern = regexp.MustCompile(`^\d{2}:\d{2}\s*[–-]\s*\d{2}:\d{2}$`)
)

// ValidateStructure inspects the document against the expected page shape,
// accumulating all findings. It short-circuits only when the schedule table
// itself is missing, since nothing else is checkable then. Validation never
// blocks extraction; callers run both and use the result for alerting.
func ValidateStructure(html string, shop int) ValidationResult {
	var errs []ValidationError

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		errs = append(errs, ValidationError{
			Code:    CodeTableMissing,
			Message: fmt.Sprintf("document does not parse: %v", err),
		})
		return buildResult(shop, errs, html)
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		errs = append(errs, ValidationError{
			Code:     CodeTableMissing,
			Message:  "main course table not found",
			Selector: "table",
		})
		return buildResult(shop, errs, html)
	}

	filterSelects := doc.Find(selectorFilterSelect)
	if filterSelects.Length() != 2 {
		errs = append(errs, ValidationError{
			Code:     CodeFilterSelectMissing,
			Message:  "expected 2 filter selects, found different count",
			Selector: selectorFilterSelect,
			Expected: "2",
			Actual:   strconv.Itoa(filterSelects.Length()),
		})
	}

	dateHeaderRows := table.Find(selectorDateHeader)
	if dateHeaderRows.Length() == 0 {
		errs = append(errs, ValidationError{
			Code:     CodeDateHeaderRowMissing,
			Message:  "no date header rows found",
			Selector: selectorDateHeader,
		})
	}

	dateHeaderRows.Each(func(i int, row *goquery.Selection) {
		dateText := strings.TrimSpace(row.Find("td").First().Text())
		if dateText != "" && !headerDatePattern.MatchString(dateText) {
			errs = append(errs, ValidationError{
				Code:     CodeDateFormatChanged,
				Message:  fmt.Sprintf("date format changed in row %d", i+1),
				Selector: selectorDateHeader + " td",
				Expected: "Weekday, DD.MM.YYYY (e.g., Montag, 01.01.2024)",
				Actual:   dateText,
			})
		}
	})

	courseRows := table.Find(selectorCourseRow)
	if courseRows.Length() == 0 && dateHeaderRows.Length() > 0 {
		errs = append(errs, ValidationError{
			Code:     CodeCourseRowStructureInvalid,
			Message:  "date headers exist but no course rows found",
			Selector: selectorCourseRow,
		})
	}

	courseRows.Each(func(i int, row *goquery.Selection) {
		cells := row.Find("td")

		if cells.Length() < minCourseCells {
			errs = append(errs, ValidationError{
				Code:     CodeCellCountMismatch,
				Message:  fmt.Sprintf("course row %d has fewer cells than expected", i+1),
				Selector: selectorCourseRow + " td",
				Expected: fmt.Sprintf(">= %d", minCourseCells),
				Actual:   strconv.Itoa(cells.Length()),
			})
		}

		timeText := strings.TrimSpace(cells.First().Text())
		if timeText != "" && !courseTimePattern.MatchString(timeText) {
			errs = append(errs, ValidationError{
				Code:     CodeTimeFormatChanged,
				Message:  fmt.Sprintf("time format changed in course row %d", i+1),
				Selector: selectorCourseRow + " td:first-child",
				Expected: "HH:MM - HH:MM or HH:MM – HH:MM",
				Actual:   timeText,
			})
		}
	})

	return buildResult(shop, errs, html)
}

func buildResult(shop int, errs []ValidationError, html string) ValidationResult {
	result := ValidationResult{
		Timestamp: time.Now().UTC(),
		Shop:      shop,
		Valid:     len(errs) == 0,
		Errors:    errs,
	}
	if len(errs) > 0 {
		result.RawHTMLSample = sample(html)
	}
	return result
}

// sample returns the first rawSampleLength characters of the document.
func sample(html string) string {
	runes := []rune(html)
	if len(runes) > rawSampleLength {
		runes = runes[:rawSampleLength]
	}
	return string(runes)
}
