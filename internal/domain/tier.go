package domain

import "time"

type TierID string

const (
	TierBronze TierID = "bronze"
	TierSilver TierID = "silver"
	TierGold   TierID = "gold"
)

// Tier is a bookable service level. Tiers are defined once at startup and
// shared read-only by every request.
type Tier struct {
	ID          TierID
	Name        string
	PriceUSD    int64
	Duration    time.Duration
	Summary     string
	Constraints []string
}
