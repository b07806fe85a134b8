package main

import (
	"fmt"
	"os"
	"time"

	"github.com/javierperezm/fitnesspark-ical/internal/calendar"
	"github.com/javierperezm/fitnesspark-ical/internal/event"
)

func main() {
	// Create a sample schedule
	now := time.Now().In(event.Zone())
	events := []event.Event{
		{
			Shop:      169,
			Start:     time.Date(now.Year(), now.Month(), now.Day(), 10, 0, 0, 0, event.Zone()),
			TimeStart: "10:00",
			Duration:  60,
			Name:      "Yoga 55'",
			Status:    event.StatusAvailable,
			FreeSlots: 5,
			Location:  "Zug",
			Room:      1,
			Trainer:   "Anna",
		},
		{
			Shop:      169,
			Start:     time.Date(now.Year(), now.Month(), now.Day(), 12, 15, 0, 0, event.Zone()),
			TimeStart: "12:15",
			Duration:  45,
			Name:      "Aqua Fit",
			Status:    event.StatusFull,
			Location:  "Zug",
			Room:      event.RoomPool,
			Trainer:   "Ben",
		},
	}

	icsContent := calendar.Generate("Fitnesspark Events", events)

	// Write to file (owner read/write only for security)
	filename := "test-fitnesspark-feed.ics"
	if err := os.WriteFile(filename, []byte(icsContent), 0600); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Generated calendar file: %s\n\n", filename)
	fmt.Println("Test it by:")
	fmt.Println("1. Open the .ics file with your calendar app (double-click)")
	fmt.Println("2. Or import it into Google Calendar, Apple Calendar, or Outlook")
	fmt.Println("\nFile contents preview:")
	fmt.Println("---")
	fmt.Println(icsContent)
}
