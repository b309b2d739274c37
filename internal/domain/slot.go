package domain

import "time"

type SlotStatus string

const (
	SlotOpen   SlotStatus = "open"
	SlotHeld   SlotStatus = "held"
	SlotBooked SlotStatus = "booked"
)

// Slot is an availability window. Status moves open -> held -> booked;
// expiry of an unconfirmed hold moves held back to open. There is no
// transition out of booked. Only the reservation store mutates a Slot.
type Slot struct {
	ID       string
	StartsAt time.Time
	EndsAt   time.Time
	Status   SlotStatus
}
