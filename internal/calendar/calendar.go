// Package calendar talks to the external calendar provider. The booking
// core only ever sees the Client interface; credential handling and the
// provider wire format stay in here.
package calendar

import (
	"context"
	"time"
)

type Event struct {
	ID       string
	Summary  string
	StartsAt time.Time
	EndsAt   time.Time
}

type EventRequest struct {
	Summary  string
	StartsAt time.Time
	EndsAt   time.Time
}

type Client interface {
	CreateEvent(ctx context.Context, req EventRequest) (Event, error)
	ListUpcoming(ctx context.Context, max int) ([]Event, error)
	DeleteEvent(ctx context.Context, eventID string) error
}
