// calendar-check verifies the Google Calendar credentials and prints the
// next few events on the primary calendar.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/chronolock/chronolock/internal/calendar"
	"github.com/chronolock/chronolock/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cal, err := calendar.NewGoogle(ctx, calendar.GoogleOptions{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleSecret,
		TokenPath:    cfg.GoogleTokenPath,
		Timeout:      cfg.CalendarTimeout,
	})
	if err != nil {
		log.Fatalf("failed to setup calendar client: %v", err)
	}

	events, err := cal.ListUpcoming(ctx, 5)
	if err != nil {
		log.Fatalf("failed to list events: %v", err)
	}

	if len(events) == 0 {
		fmt.Println("No upcoming events found.")
		return
	}

	fmt.Println("Upcoming events:")
	for _, event := range events {
		summary := event.Summary
		if summary == "" {
			summary = "(no title)"
		}
		fmt.Printf("- %s: %s\n", event.StartsAt.Format(time.RFC3339), summary)
	}
}
