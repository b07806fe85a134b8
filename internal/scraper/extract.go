package scraper

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/javierperezm/fitnesspark-ical/internal/event"
)

// DayResult is everything extracted from one (shop, day) document.
type DayResult struct {
	Locations  []event.FilterOption
	Categories []event.FilterOption
	Events     []event.Event
	Validation ValidationResult
}

// Extractor turns rendered schedule HTML into typed events. Row-level
// anomalies are logged and skipped; a single malformed row never fails the
// document.
type Extractor struct {
	logger *zap.Logger
}

// NewExtractor creates an Extractor. A nil logger falls back to zap.NewNop.
func NewExtractor(logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{logger: logger}
}

// Category ids are embedded as a bracketed numeric token in a data
// attribute, e.g. data-tid="category[42]".
var categoryIDPattern = regexp.MustCompile(`\[(\d+)\]`)

// ExtractDay parses one schedule document. The structure validator runs over
// the same document and its result is attached, but a failed validation does
// not prevent extraction; the events are merely flagged as suspect.
func (x *Extractor) ExtractDay(html string, shop int) (*DayResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	result := &DayResult{
		Validation: ValidateStructure(html, shop),
	}

	selects := doc.Find(selectorFilterSelect)
	result.Locations = parseLocationOptions(selects.Eq(0))
	result.Categories = parseCategoryOptions(selects.Eq(1))

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return result, nil
	}

	// The table interleaves date-header rows and course rows; a header row
	// sets the date for every course row until the next header.
	var currentDate time.Time

	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		switch {
		case row.HasClass("course-list__table__date-header"):
			dateText := strings.TrimSpace(row.Find("td").First().Text())
			parsed, ok := event.ParseHeaderDate(dateText)
			if !ok {
				x.logger.Warn("unexpected date header format, keeping previous cursor",
					zap.Int("shop", shop), zap.String("text", dateText))
				return
			}
			currentDate = parsed

		case row.HasClass("course-list__table__course"):
			evt, ok := x.parseCourseRow(row, shop, currentDate)
			if !ok {
				return
			}
			result.Events = append(result.Events, evt)
		}
	})

	return result, nil
}

// parseCourseRow builds one event from a course row. Returns ok=false when
// the row lacks a usable time or no date cursor is established yet.
func (x *Extractor) parseCourseRow(row *goquery.Selection, shop int, currentDate time.Time) (event.Event, bool) {
	cells := row.Find("td")

	timeCell := strings.TrimSpace(cells.Eq(0).Text())
	timeStart, _ := event.SplitTimeRange(timeCell)
	if timeStart == "" || currentDate.IsZero() {
		x.logger.Warn("course row missing time or date, skipping",
			zap.Int("shop", shop), zap.String("time_cell", timeCell),
			zap.Bool("date_known", !currentDate.IsZero()))
		return event.Event{}, false
	}

	// Name and status live in nested div.table-cell children of cell 1.
	inner := cells.Eq(1).Find("div.table-cell")
	statusText := strings.TrimSpace(inner.Eq(1).Text())
	status, freeSlots := event.ClassifyStatus(statusText)

	return event.Event{
		Shop:      shop,
		Start:     event.At(currentDate, timeStart),
		TimeStart: timeStart,
		Duration:  event.DurationMinutes(timeCell),
		Name:      strings.TrimSpace(inner.Eq(0).Text()),
		Status:    status,
		FreeSlots: freeSlots,
		Location:  strings.TrimSpace(cells.Eq(3).Text()),
		Room:      event.ClassifyRoom(strings.TrimSpace(cells.Eq(4).Text())),
		Trainer:   strings.TrimSpace(cells.Eq(5).Text()),
	}, true
}

// parseLocationOptions reads the location filter select; ids come from the
// data-location attribute, defaulting to 0 when malformed or absent.
func parseLocationOptions(sel *goquery.Selection) []event.FilterOption {
	options := make([]event.FilterOption, 0)
	sel.Find("option").Each(func(_ int, option *goquery.Selection) {
		id, _ := strconv.Atoi(strings.TrimSpace(option.AttrOr("data-location", "")))
		options = append(options, event.FilterOption{
			ID:   id,
			Name: strings.TrimSpace(option.Text()),
		})
	})
	return options
}

// parseCategoryOptions reads the category filter select; ids come from a
// bracketed token in the data-tid attribute, defaulting to 0.
func parseCategoryOptions(sel *goquery.Selection) []event.FilterOption {
	options := make([]event.FilterOption, 0)
	sel.Find("option").Each(func(_ int, option *goquery.Selection) {
		id := 0
		if m := categoryIDPattern.FindStringSubmatch(option.AttrOr("data-tid", "")); m != nil {
			id, _ = strconv.Atoi(m[1])
		}
		options = append(options, event.FilterOption{
			ID:   id,
			Name: strings.TrimSpace(option.Text()),
		})
	})
	return options
}
