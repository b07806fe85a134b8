package scraper

import (
	"os"
	"testing"

	"github.com/javierperezm/fitnesspark-ical/internal/event"
)

func loadFixture(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile("testdata/schedule.html")
	if err != nil {
		t.Fatalf("failed to load test fixture: %v", err)
	}
	return string(data)
}

func TestExtractDayFixture(t *testing.T) {
	x := NewExtractor(nil)

	result, err := x.ExtractDay(loadFixture(t), 169)
	if err != nil {
		t.Fatalf("ExtractDay failed: %v", err)
	}

	if len(result.Events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(result.Events))
	}

	yoga := result.Events[0]
	if yoga.Name != "Yoga" {
		t.Errorf("name = %q, expected Yoga", yoga.Name)
	}
	if yoga.TimeStart != "10:00" {
		t.Errorf("timeStart = %q, expected 10:00", yoga.TimeStart)
	}
	if yoga.Duration != 60 {
		t.Errorf("duration = %d, expected 60", yoga.Duration)
	}
	if yoga.Status != event.StatusAvailable {
		t.Errorf("status = %s, expected available", yoga.Status)
	}
	if yoga.FreeSlots != 3 {
		t.Errorf("freeSlots = %d, expected 3", yoga.FreeSlots)
	}
	if yoga.Location != "Zug" {
		t.Errorf("location = %q, expected Zug", yoga.Location)
	}
	if yoga.Room != 1 {
		t.Errorf("room = %v, expected 1", yoga.Room)
	}
	if yoga.Trainer != "Anna" {
		t.Errorf("trainer = %q, expected Anna", yoga.Trainer)
	}
	if yoga.Shop != 169 {
		t.Errorf("shop = %d, expected 169", yoga.Shop)
	}
	if event.DayKey(yoga.Start) != "2024-01-01" {
		t.Errorf("start day = %s, expected 2024-01-01", event.DayKey(yoga.Start))
	}
	if yoga.Start.Hour() != 10 || yoga.Start.Minute() != 0 {
		t.Errorf("start = %v, expected 10:00 wall clock", yoga.Start)
	}
	if yoga.Start.Location() != event.Zone() {
		t.Errorf("start zone = %v, expected %s", yoga.Start.Location(), event.ReferenceTimezone)
	}

	aqua := result.Events[1]
	if aqua.Status != event.StatusFull || aqua.Room != event.RoomPool {
		t.Errorf("aqua = %s/%v, expected full/pool", aqua.Status, aqua.Room)
	}
	if aqua.Duration != 45 {
		t.Errorf("aqua duration = %d, expected 45", aqua.Duration)
	}

	// Third event belongs to the second date header.
	pilates := result.Events[2]
	if event.DayKey(pilates.Start) != "2024-01-02" {
		t.Errorf("pilates day = %s, expected 2024-01-02", event.DayKey(pilates.Start))
	}
	if pilates.Status != event.StatusCancelled {
		t.Errorf("pilates status = %s, expected cancelled", pilates.Status)
	}
	if pilates.Room != 2 {
		t.Errorf("pilates room = %v, expected 2", pilates.Room)
	}

	if !result.Validation.Valid {
		t.Errorf("fixture should validate, got %v", result.Validation.Errors)
	}
}

func TestExtractDayFilters(t *testing.T) {
	x := NewExtractor(nil)

	result, err := x.ExtractDay(loadFixture(t), 169)
	if err != nil {
		t.Fatalf("ExtractDay failed: %v", err)
	}

	if len(result.Locations) != 3 {
		t.Fatalf("expected 3 locations, got %d", len(result.Locations))
	}
	if result.Locations[0].ID != 169 || result.Locations[0].Name != "Zug" {
		t.Errorf("location[0] = %+v, expected {169 Zug}", result.Locations[0])
	}
	if result.Locations[2].ID != 0 {
		t.Errorf("location without data-location should default to id 0, got %d", result.Locations[2].ID)
	}

	if len(result.Categories) != 3 {
		t.Fatalf("expected 3 categories, got %d", len(result.Categories))
	}
	if result.Categories[0].ID != 12 || result.Categories[0].Name != "Yoga 55'" {
		t.Errorf("category[0] = %+v, expected {12 Yoga 55'}", result.Categories[0])
	}
	if result.Categories[2].ID != 0 {
		t.Errorf("category without bracketed token should default to id 0, got %d", result.Categories[2].ID)
	}
}

func TestExtractDaySkipsRowsWithoutDateCursor(t *testing.T) {
	// A course row before any date header has no date cursor and is skipped.
	html := `<table>
		<tr class="course-list__table__course">
			<td>10:00 - 11:00</td>
			<td><div class="table-cell">Yoga</div><div class="table-cell">3 Frei</div></td>
			<td></td><td>Zug</td><td>Kursraum 1</td><td>Anna</td>
		</tr>
		<tr class="course-list__table__date-header"><td>Montag, 01.01.2024</td></tr>
		<tr class="course-list__table__course">
			<td>12:00 - 13:00</td>
			<td><div class="table-cell">Pilates</div><div class="table-cell">5 Frei</div></td>
			<td></td><td>Zug</td><td>Kursraum 2</td><td>Ben</td>
		</tr>
	</table>`

	x := NewExtractor(nil)
	result, err := x.ExtractDay(html, 1)
	if err != nil {
		t.Fatalf("ExtractDay failed: %v", err)
	}

	if len(result.Events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(result.Events))
	}
	if result.Events[0].Name != "Pilates" {
		t.Errorf("kept event = %q, expected Pilates", result.Events[0].Name)
	}
}

func TestExtractDaySkipsUnparsableDateHeader(t *testing.T) {
	// The bad header leaves the cursor on the previous date.
	html := `<table>
		<tr class="course-list__table__date-header"><td>Montag, 01.01.2024</td></tr>
		<tr class="course-list__table__date-header"><td>garbage</td></tr>
		<tr class="course-list__table__course">
			<td>12:00 - 13:00</td>
			<td><div class="table-cell">Pilates</div><div class="table-cell">5 Frei</div></td>
			<td></td><td>Zug</td><td>Kursraum 2</td><td>Ben</td>
		</tr>
	</table>`

	x := NewExtractor(nil)
	result, err := x.ExtractDay(html, 1)
	if err != nil {
		t.Fatalf("ExtractDay failed: %v", err)
	}

	if len(result.Events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(result.Events))
	}
	if event.DayKey(result.Events[0].Start) != "2024-01-01" {
		t.Errorf("cursor moved despite unparsable header: %s", event.DayKey(result.Events[0].Start))
	}
}

func TestExtractDaySkipsRowsWithoutTime(t *testing.T) {
	html := `<table>
		<tr class="course-list__table__date-header"><td>Montag, 01.01.2024</td></tr>
		<tr class="course-list__table__course">
			<td></td>
			<td><div class="table-cell">Yoga</div><div class="table-cell">3 Frei</div></td>
			<td></td><td>Zug</td><td>Kursraum 1</td><td>Anna</td>
		</tr>
	</table>`

	x := NewExtractor(nil)
	result, err := x.ExtractDay(html, 1)
	if err != nil {
		t.Fatalf("ExtractDay failed: %v", err)
	}

	if len(result.Events) != 0 {
		t.Errorf("expected no events, got %d", len(result.Events))
	}
}

func TestExtractDayWithoutTable(t *testing.T) {
	x := NewExtractor(nil)

	result, err := x.ExtractDay("<div>maintenance</div>", 1)
	if err != nil {
		t.Fatalf("ExtractDay failed: %v", err)
	}

	if len(result.Events) != 0 {
		t.Errorf("expected no events, got %d", len(result.Events))
	}
	if result.Validation.Valid {
		t.Error("expected validation failure without a table")
	}
}
