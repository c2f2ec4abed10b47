package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	chi "github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/akshata29/corporateactions-sub000/internal/domain"
	"github.com/akshata29/corporateactions-sub000/internal/usecase/dispatch"
	"github.com/akshata29/corporateactions-sub000/internal/usecase/subscriptions"
)

// Handler exposes the engine to the external command layer over REST. The
// command layer owns user-visible wording; this surface returns structured
// data and maps domain errors onto status codes.
type Handler struct {
	subs       *subscriptions.Service
	dispatcher *dispatch.Service
	queue      domain.PendingQueue
	ledger     domain.HistoryLedger
	log        zerolog.Logger
}

// NewHandler builds the API handler.
func NewHandler(subs *subscriptions.Service, dispatcher *dispatch.Service, queue domain.PendingQueue, ledger domain.HistoryLedger, log zerolog.Logger) *Handler {
	return &Handler{subs: subs, dispatcher: dispatcher, queue: queue, ledger: ledger, log: log}
}

// Routes mounts the API under /api/v1.
func (h *Handler) Routes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/subscriptions", h.handleSubscribe)
		r.Get("/subscriptions", h.handleListSubscriptions)
		r.Delete("/subscriptions/{userID}/symbols", h.handleUnsubscribe)
		r.Get("/subscriptions/{userID}/preferences", h.handleGetPreferences)
		r.Put("/subscriptions/{userID}/preferences/{key}", h.handleSetPreference)

		r.Post("/notifications/{userID}/pop", h.handlePop)
		r.Get("/notifications", h.handleListNotifications)
		r.Delete("/notifications", h.handleClearNotifications)

		r.Get("/history", h.handleHistory)
		r.Get("/stats", h.handleStats)

		r.Post("/campaigns/{name}/trigger", h.handleTrigger)
	})
}

type subscribeRequest struct {
	UserID      string                `json:"user_id"`
	DisplayName string                `json:"display_name"`
	Symbols     []string              `json:"symbols"`
	Target      domain.DeliveryTarget `json:"target"`
}

func (h *Handler) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var req subscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}
	sub, err := h.subs.Subscribe(r.Context(), req.UserID, req.DisplayName, req.Symbols, req.Target)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, subscriptionView(sub))
}

func (h *Handler) handleListSubscriptions(w http.ResponseWriter, r *http.Request) {
	subs := h.subs.List(r.Context())
	views := make([]map[string]any, 0, len(subs))
	for _, sub := range subs {
		views = append(views, subscriptionView(sub))
	}
	writeJSON(w, views)
}

type symbolsRequest struct {
	Symbols []string `json:"symbols"`
}

func (h *Handler) handleUnsubscribe(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var req symbolsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.subs.Unsubscribe(r.Context(), chi.URLParam(r, "userID"), req.Symbols); err != nil {
		h.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleGetPreferences(w http.ResponseWriter, r *http.Request) {
	prefs, err := h.subs.GetPreferences(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, prefs)
}

type setPreferenceRequest struct {
	Enabled bool `json:"enabled"`
}

func (h *Handler) handleSetPreference(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var req setPreferenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	userID := chi.URLParam(r, "userID")
	key := chi.URLParam(r, "key")
	if err := h.subs.SetPreference(r.Context(), userID, key, req.Enabled); err != nil {
		h.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handlePop(w http.ResponseWriter, r *http.Request) {
	n, ok := h.queue.PopNext(chi.URLParam(r, "userID"))
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, n)
}

func (h *Handler) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	items := h.queue.ListAll(r.URL.Query().Get("user_id"))
	if items == nil {
		items = []domain.PendingNotification{}
	}
	writeJSON(w, items)
}

func (h *Handler) handleClearNotifications(w http.ResponseWriter, r *http.Request) {
	h.queue.Clear(r.URL.Query().Get("user_id"))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}
	entries := h.ledger.Query(r.URL.Query().Get("user_id"), limit)
	if entries == nil {
		entries = []domain.HistoryEntry{}
	}
	writeJSON(w, entries)
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.subs.Stats(r.Context()))
}

type triggerRequest struct {
	Symbols []string `json:"symbols"`
}

func (h *Handler) handleTrigger(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var req triggerRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}
	result, err := h.dispatcher.TriggerNow(r.Context(), chi.URLParam(r, "name"), req.Symbols)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, result)
}

func (h *Handler) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrSubscriptionNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnknownPreference),
		errors.Is(err, domain.ErrUnknownCampaign),
		errors.Is(err, domain.ErrNoSymbols):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.log.Error().Err(err).Msg("api: internal error")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func subscriptionView(sub domain.Subscription) map[string]any {
	return map[string]any{
		"user_id":          sub.UserID,
		"display_name":     sub.DisplayName,
		"symbols":          sub.Symbols,
		"preferences":      sub.Preferences,
		"target":           sub.Target,
		"created_at":       sub.CreatedAt,
		"last_activity_at": sub.LastActivityAt,
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
