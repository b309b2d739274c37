package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/chronolock/chronolock/internal/booking"
	"github.com/chronolock/chronolock/internal/calendar"
	"github.com/chronolock/chronolock/internal/catalog"
	"github.com/chronolock/chronolock/internal/domain"
)

type Handlers struct {
	svc     *booking.Service
	catalog *catalog.Catalog
}

func NewHandlers(svc *booking.Service, cat *catalog.Catalog) *Handlers {
	return &Handlers{svc: svc, catalog: cat}
}

func (h *Handlers) ListTiers(w http.ResponseWriter, r *http.Request) {
	tiers := h.catalog.ListTiers()
	views := make([]tierView, 0, len(tiers))
	for _, tier := range tiers {
		views = append(views, newTierView(tier))
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *Handlers) ListAvailability(w http.ResponseWriter, r *http.Request) {
	slots := h.catalog.ListSlots()
	views := make([]slotView, 0, len(slots))
	for _, slot := range slots {
		views = append(views, newSlotView(slot))
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *Handlers) CreateHold(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TierID string `json:"tier_id"`
		SlotID string `json:"slot_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.TierID == "" || req.SlotID == "" {
		http.Error(w, "tier_id and slot_id are required", http.StatusBadRequest)
		return
	}

	view, err := h.svc.CreateHold(r.Context(), domain.TierID(req.TierID), req.SlotID)
	if errors.Is(err, domain.ErrNotFound) {
		http.Error(w, "tier or slot not found", http.StatusNotFound)
		return
	}
	if errors.Is(err, domain.ErrConflict) {
		http.Error(w, "slot is not available", http.StatusConflict)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, newHoldView(view))
}

func (h *Handlers) ConfirmHold(w http.ResponseWriter, r *http.Request) {
	holdID := chi.URLParam(r, "holdID")

	view, err := h.svc.Confirm(r.Context(), holdID)
	if errors.Is(err, domain.ErrNotFound) {
		http.Error(w, "hold not found", http.StatusNotFound)
		return
	}
	if errors.Is(err, domain.ErrHoldExpired) {
		http.Error(w, "hold expired", http.StatusGone)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, newConfirmView(view))
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type tierView struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	PriceUSD        int64    `json:"price_usd"`
	DurationMinutes int      `json:"duration_minutes"`
	Summary         string   `json:"summary"`
	Constraints     []string `json:"constraints"`
}

func newTierView(tier domain.Tier) tierView {
	return tierView{
		ID:              string(tier.ID),
		Name:            tier.Name,
		PriceUSD:        tier.PriceUSD,
		DurationMinutes: int(tier.Duration / time.Minute),
		Summary:         tier.Summary,
		Constraints:     tier.Constraints,
	}
}

type slotView struct {
	ID       string    `json:"id"`
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
	Status   string    `json:"status"`
}

func newSlotView(slot domain.Slot) slotView {
	return slotView{
		ID:       slot.ID,
		StartsAt: slot.StartsAt,
		EndsAt:   slot.EndsAt,
		Status:   string(slot.Status),
	}
}

type paymentView struct {
	Protocol  string    `json:"protocol"`
	Amount    string    `json:"amount"`
	Asset     string    `json:"asset"`
	Address   string    `json:"address"`
	ExpiresAt time.Time `json:"expires_at"`
}

type holdView struct {
	HoldID  string      `json:"hold_id"`
	Tier    tierView    `json:"tier"`
	Slot    slotView    `json:"slot"`
	Payment paymentView `json:"payment"`
}

func newHoldView(view booking.HoldView) holdView {
	return holdView{
		HoldID: view.Hold.ID,
		Tier:   newTierView(view.Tier),
		Slot:   newSlotView(view.Slot),
		Payment: paymentView{
			Protocol:  view.Hold.Payment.Protocol,
			Amount:    view.Hold.Payment.Amount,
			Asset:     view.Hold.Payment.Asset,
			Address:   view.Hold.Payment.Address,
			ExpiresAt: view.Hold.Payment.ExpiresAt,
		},
	}
}

type calendarEventView struct {
	Provider string    `json:"provider"`
	EventID  string    `json:"event_id"`
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
}

type confirmView struct {
	HoldID        string             `json:"hold_id"`
	Status        string             `json:"status"`
	CalendarEvent *calendarEventView `json:"calendar_event,omitempty"`
	CalendarSync  string             `json:"calendar_sync,omitempty"`
}

func newConfirmView(view booking.ConfirmationView) confirmView {
	out := confirmView{HoldID: view.HoldID, Status: string(domain.HoldConfirmed)}
	if view.SyncErr != nil {
		out.CalendarSync = "failed"
		return out
	}
	out.CalendarEvent = newCalendarEventView(view.Event)
	return out
}

func newCalendarEventView(event calendar.Event) *calendarEventView {
	return &calendarEventView{
		Provider: "google",
		EventID:  event.ID,
		StartsAt: event.StartsAt,
		EndsAt:   event.EndsAt,
	}
}
