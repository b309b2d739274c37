// Package booking implements the reservation workflow on top of the
// catalog and the reservation store: issuing holds with a payment
// intent, and confirming holds into booked calendar events.
package booking

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/chronolock/chronolock/internal/calendar"
	"github.com/chronolock/chronolock/internal/catalog"
	"github.com/chronolock/chronolock/internal/clock"
	"github.com/chronolock/chronolock/internal/domain"
	"github.com/chronolock/chronolock/internal/observability"
	"github.com/chronolock/chronolock/internal/reservation"
)

const defaultHoldTTL = 15 * time.Minute

type Service struct {
	catalog *catalog.Catalog
	store   *reservation.Store
	cal     calendar.Client
	clock   clock.Clock
	logger  observability.Logger
	holdTTL time.Duration
	asset   string
	address string
	flight  singleflight.Group
}

type Option func(*Service)

// WithHoldTTL overrides the default payment window for new holds.
func WithHoldTTL(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.holdTTL = d
		}
	}
}

// WithPayment sets the settlement asset and destination address stamped
// on every payment intent.
func WithPayment(asset, address string) Option {
	return func(s *Service) {
		s.asset = asset
		s.address = address
	}
}

func NewService(cat *catalog.Catalog, store *reservation.Store, cal calendar.Client, clk clock.Clock, logger observability.Logger, opts ...Option) *Service {
	svc := &Service{
		catalog: cat,
		store:   store,
		cal:     cal,
		clock:   clk,
		logger:  logger,
		holdTTL: defaultHoldTTL,
		asset:   "USDC",
		address: "0xDEMOADDRESS",
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// HoldView is what a caller gets back for a freshly issued hold.
type HoldView struct {
	Hold domain.Hold
	Tier domain.Tier
	Slot domain.Slot
}

// CreateHold resolves the tier, mints a hold with a payment intent, and
// attempts the open -> held transition. ErrConflict means the slot was
// taken in the meantime; that is an expected outcome under contention,
// not a failure of the system.
func (s *Service) CreateHold(ctx context.Context, tierID domain.TierID, slotID string) (HoldView, error) {
	tier, err := s.catalog.GetTier(tierID)
	if err != nil {
		return HoldView{}, err
	}

	now := s.clock.Now()
	payment := domain.NewPaymentIntent(tier, s.asset, s.address, now.Add(s.holdTTL))
	hold := domain.NewHold(tier.ID, slotID, payment, now, s.holdTTL)

	created, err := s.store.TryHold(hold)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			observability.HoldConflicts.Inc()
		}
		return HoldView{}, err
	}
	observability.HoldsCreated.Inc()

	slot, err := s.store.GetSlot(slotID)
	if err != nil {
		return HoldView{}, err
	}

	s.logger.WithField("hold_id", created.ID).WithField("slot_id", slotID).Info("hold created")
	return HoldView{Hold: created, Tier: tier, Slot: slot}, nil
}

// ConfirmationView is the result of confirming a hold. SyncErr is set
// when the reservation was booked but the calendar event could not be
// created; the booking stands regardless.
type ConfirmationView struct {
	HoldID  string
	Slot    domain.Slot
	Event   calendar.Event
	SyncErr error
}

// Confirm attempts the held -> booked transition and materializes a
// calendar event for the booked window. Confirming an already-confirmed
// hold is a no-op returning the original confirmation; no second
// calendar event is created. Concurrent confirmations of the same hold
// coalesce into one execution, so a racing caller cannot observe the
// confirmed hold before its calendar event is recorded. The calendar
// call happens outside any store lock and its failure never rolls the
// booking back.
func (s *Service) Confirm(ctx context.Context, holdID string) (ConfirmationView, error) {
	v, err, _ := s.flight.Do(holdID, func() (interface{}, error) {
		return s.confirm(ctx, holdID)
	})
	if err != nil {
		return ConfirmationView{}, err
	}
	return v.(ConfirmationView), nil
}

func (s *Service) confirm(ctx context.Context, holdID string) (ConfirmationView, error) {
	hold, err := s.store.TryConfirm(holdID)
	replay := errors.Is(err, domain.ErrHoldAlreadyConfirmed)
	if err != nil && !replay {
		return ConfirmationView{}, err
	}

	tier, err := s.catalog.GetTier(hold.TierID)
	if err != nil {
		return ConfirmationView{}, err
	}
	slot, err := s.store.GetSlot(hold.SlotID)
	if err != nil {
		return ConfirmationView{}, err
	}

	view := ConfirmationView{HoldID: hold.ID, Slot: slot}

	if replay {
		if hold.CalendarEventID == "" {
			view.SyncErr = domain.ErrCalendarSync
			return view, nil
		}
		view.Event = calendar.Event{
			ID:       hold.CalendarEventID,
			Summary:  tier.Name,
			StartsAt: slot.StartsAt,
			EndsAt:   slot.EndsAt,
		}
		return view, nil
	}

	observability.Confirmations.Inc()

	event, cerr := s.cal.CreateEvent(ctx, calendar.EventRequest{
		Summary:  tier.Name,
		StartsAt: slot.StartsAt,
		EndsAt:   slot.EndsAt,
	})
	if cerr != nil {
		observability.CalendarSyncFailures.Inc()
		s.logger.WithError(cerr).WithField("hold_id", hold.ID).Warn("calendar sync failed, booking stands")
		view.SyncErr = cerr
		return view, nil
	}

	if err := s.store.AttachCalendarEvent(hold.ID, event.ID); err != nil {
		return ConfirmationView{}, err
	}

	view.Event = event
	s.logger.WithField("hold_id", hold.ID).WithField("event_id", event.ID).Info("hold confirmed")
	return view, nil
}
