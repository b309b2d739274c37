package catalog

import (
	"fmt"
	"time"

	"github.com/chronolock/chronolock/internal/domain"
)

// SlotSource provides the live slot view. Slots are mutable, so reads go
// through the reservation store rather than a static copy.
type SlotSource interface {
	GetSlot(id string) (domain.Slot, error)
	ListSlots() []domain.Slot
}

// Catalog serves the tier definitions and the current slot view. Tiers
// are fixed at construction; the only error either lookup can return is
// domain.ErrNotFound.
type Catalog struct {
	tiers map[domain.TierID]domain.Tier
	order []domain.TierID
	slots SlotSource
}

func New(tiers []domain.Tier, slots SlotSource) *Catalog {
	c := &Catalog{
		tiers: make(map[domain.TierID]domain.Tier, len(tiers)),
		slots: slots,
	}
	for _, tier := range tiers {
		c.tiers[tier.ID] = tier
		c.order = append(c.order, tier.ID)
	}
	return c
}

func (c *Catalog) GetTier(id domain.TierID) (domain.Tier, error) {
	tier, ok := c.tiers[id]
	if !ok {
		return domain.Tier{}, domain.ErrNotFound
	}
	return tier, nil
}

func (c *Catalog) ListTiers() []domain.Tier {
	out := make([]domain.Tier, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.tiers[id])
	}
	return out
}

func (c *Catalog) GetSlot(id string) (domain.Slot, error) {
	return c.slots.GetSlot(id)
}

func (c *Catalog) ListSlots() []domain.Slot {
	return c.slots.ListSlots()
}

// DefaultTiers returns the fixed consulting tiers.
func DefaultTiers() []domain.Tier {
	return []domain.Tier{
		{
			ID:          domain.TierBronze,
			Name:        "Rubber Duck",
			PriceUSD:    25,
			Duration:    10 * time.Minute,
			Summary:     "Quick clarification or sanity check.",
			Constraints: []string{"No prep", "No follow-ups", "No screen-share"},
		},
		{
			ID:          domain.TierSilver,
			Name:        "Working Session",
			PriceUSD:    120,
			Duration:    30 * time.Minute,
			Summary:     "Active problem-solving with direct answers.",
			Constraints: []string{"Limited prep", "One concrete outcome expected"},
		},
		{
			ID:          domain.TierGold,
			Name:        "Deep Consult",
			PriceUSD:    400,
			Duration:    60 * time.Minute,
			Summary:     "Strategic advice with full attention.",
			Constraints: []string{"Review materials in advance", "May include follow-up notes"},
		},
	}
}

// SeedSlots builds n one-hour availability windows starting tomorrow at
// the top of the hour.
func SeedSlots(now time.Time, n int) []domain.Slot {
	base := now.UTC().Truncate(time.Hour).Add(24 * time.Hour)
	slots := make([]domain.Slot, 0, n)
	for i := 0; i < n; i++ {
		slots = append(slots, domain.Slot{
			ID:       fmt.Sprintf("slot-%d", i),
			StartsAt: base.Add(time.Duration(i) * time.Hour),
			EndsAt:   base.Add(time.Duration(i+1) * time.Hour),
			Status:   domain.SlotOpen,
		})
	}
	return slots
}
