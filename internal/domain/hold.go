package domain

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

type HoldStatus string

const (
	HoldPending   HoldStatus = "pending"
	HoldConfirmed HoldStatus = "confirmed"
	HoldExpired   HoldStatus = "expired"
	// HoldCancelled is reserved for explicit release; no operation
	// produces it yet.
	HoldCancelled HoldStatus = "cancelled"
)

// PaymentProtocol tags the settlement scheme of every payment intent.
const PaymentProtocol = "x402"

// PaymentIntent describes how the caller is expected to settle a hold.
// All fields are always present; the intent is issued, never verified.
type PaymentIntent struct {
	Protocol  string
	Amount    string
	Asset     string
	Address   string
	ExpiresAt time.Time
}

func NewPaymentIntent(tier Tier, asset, address string, expiresAt time.Time) PaymentIntent {
	return PaymentIntent{
		Protocol:  PaymentProtocol,
		Amount:    strconv.FormatInt(tier.PriceUSD, 10),
		Asset:     asset,
		Address:   address,
		ExpiresAt: expiresAt,
	}
}

// Hold is a temporary claim on a slot while payment is arranged. While a
// Hold is pending its slot is held; confirming books the slot, expiry
// reopens it. CalendarEventID is set once, on the first successful
// calendar sync, so confirmation replays can return the same event.
type Hold struct {
	ID              string
	TierID          TierID
	SlotID          string
	Payment         PaymentIntent
	Status          HoldStatus
	ExpiresAt       time.Time
	CreatedAt       time.Time
	CalendarEventID string
}

func NewHold(tierID TierID, slotID string, payment PaymentIntent, now time.Time, ttl time.Duration) Hold {
	return Hold{
		ID:        uuid.NewString(),
		TierID:    tierID,
		SlotID:    slotID,
		Payment:   payment,
		Status:    HoldPending,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
}
