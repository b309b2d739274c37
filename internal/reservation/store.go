package reservation

import (
	"sync"
	"time"

	"github.com/chronolock/chronolock/internal/clock"
	"github.com/chronolock/chronolock/internal/domain"
	"github.com/chronolock/chronolock/internal/observability"
)

// Store is the single source of truth for slot and hold state and the
// only place either is mutated. Every transition runs under the table
// lock, so check-and-set on a slot is indivisible: exactly one caller
// wins a race for an open slot, and the expiry revert can never run
// twice for the same hold. Expiry is evaluated lazily on every read and
// transition; the background sweeper goes through the same locked
// revert.
type Store struct {
	mu        sync.Mutex
	clock     clock.Clock
	slots     map[string]*domain.Slot
	slotOrder []string
	holds     map[string]*domain.Hold
	bySlot    map[string]*domain.Hold
}

func NewStore(clk clock.Clock, slots []domain.Slot) *Store {
	s := &Store{
		clock:  clk,
		slots:  make(map[string]*domain.Slot, len(slots)),
		holds:  make(map[string]*domain.Hold),
		bySlot: make(map[string]*domain.Hold),
	}
	for _, slot := range slots {
		cp := slot
		if cp.Status == "" {
			cp.Status = domain.SlotOpen
		}
		s.slots[cp.ID] = &cp
		s.slotOrder = append(s.slotOrder, cp.ID)
	}
	return s
}

// GetSlot returns a copy of the slot, with any due expiry applied first.
func (s *Store) GetSlot(id string) (domain.Slot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	slot, ok := s.slots[id]
	if !ok {
		return domain.Slot{}, domain.ErrNotFound
	}
	s.expireSlotLocked(id, s.clock.Now())
	return *slot, nil
}

// ListSlots returns copies of all slots in seed order.
func (s *Store) ListSlots() []domain.Slot {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	out := make([]domain.Slot, 0, len(s.slotOrder))
	for _, id := range s.slotOrder {
		s.expireSlotLocked(id, now)
		out = append(out, *s.slots[id])
	}
	return out
}

// GetHold returns a copy of the hold, with any due expiry applied first.
func (s *Store) GetHold(id string) (domain.Hold, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	hold, ok := s.holds[id]
	if !ok {
		return domain.Hold{}, domain.ErrNotFound
	}
	s.expireHoldLocked(hold, s.clock.Now())
	return *hold, nil
}

// TryHold attempts the open -> held transition for the hold's slot. The
// slot must exist and be open; exactly one of any set of concurrent
// callers succeeds, the rest get ErrConflict. On success the hold is
// registered in pending status.
func (s *Store) TryHold(hold domain.Hold) (domain.Hold, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	slot, ok := s.slots[hold.SlotID]
	if !ok {
		return domain.Hold{}, domain.ErrNotFound
	}

	s.expireSlotLocked(hold.SlotID, s.clock.Now())
	if slot.Status != domain.SlotOpen {
		return domain.Hold{}, domain.ErrConflict
	}

	slot.Status = domain.SlotHeld
	cp := hold
	cp.Status = domain.HoldPending
	s.holds[cp.ID] = &cp
	s.bySlot[cp.SlotID] = &cp
	return cp, nil
}

// TryConfirm attempts the held -> booked transition for the hold's slot.
// A hold past its expiry is reverted (slot reopens) and reported as
// ErrHoldExpired. Confirming an already-confirmed hold returns the hold
// alongside ErrHoldAlreadyConfirmed so the caller can replay the
// original confirmation instead of re-running side effects.
func (s *Store) TryConfirm(holdID string) (domain.Hold, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	hold, ok := s.holds[holdID]
	if !ok {
		return domain.Hold{}, domain.ErrNotFound
	}

	if s.expireHoldLocked(hold, s.clock.Now()) || hold.Status == domain.HoldExpired {
		return domain.Hold{}, domain.ErrHoldExpired
	}
	if hold.Status == domain.HoldConfirmed {
		return *hold, domain.ErrHoldAlreadyConfirmed
	}

	hold.Status = domain.HoldConfirmed
	s.slots[hold.SlotID].Status = domain.SlotBooked
	delete(s.bySlot, hold.SlotID)
	return *hold, nil
}

// AttachCalendarEvent records the calendar event created for a confirmed
// hold. It is set once; replays keep the original event.
func (s *Store) AttachCalendarEvent(holdID, eventID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	hold, ok := s.holds[holdID]
	if !ok {
		return domain.ErrNotFound
	}
	if hold.CalendarEventID == "" {
		hold.CalendarEventID = eventID
	}
	return nil
}

// ReleaseExpired reverts every pending hold past its expiry and returns
// how many were released. The sweeper calls this on a timer; the lazy
// path applies the same revert per slot.
func (s *Store) ReleaseExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	released := 0
	for _, hold := range s.holds {
		if s.expireHoldLocked(hold, now) {
			released++
		}
	}
	return released
}

// expireSlotLocked reverts the slot's pending hold if its window has
// elapsed. Caller must hold s.mu.
func (s *Store) expireSlotLocked(slotID string, now time.Time) {
	if hold, ok := s.bySlot[slotID]; ok {
		s.expireHoldLocked(hold, now)
	}
}

// expireHoldLocked marks a pending hold expired and reopens its slot
// once its window has elapsed. Reports whether a revert happened.
// Caller must hold s.mu.
func (s *Store) expireHoldLocked(hold *domain.Hold, now time.Time) bool {
	if hold.Status != domain.HoldPending || !now.After(hold.ExpiresAt) {
		return false
	}
	hold.Status = domain.HoldExpired
	s.slots[hold.SlotID].Status = domain.SlotOpen
	delete(s.bySlot, hold.SlotID)
	observability.HoldsExpired.Inc()
	return true
}
