// Package api provides the HTTP transport for the assistant.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/strelka-labs/meeting-assistant/internal/api/respond"
	"github.com/strelka-labs/meeting-assistant/internal/assistant"
	"github.com/strelka-labs/meeting-assistant/internal/model"
	"github.com/strelka-labs/meeting-assistant/internal/store"
)

// MessageHandler exposes the natural-language entry point. The upstream
// messenger transport (bot gateway, webhook relay) posts each incoming
// message here and relays the reply text back to the user.
type MessageHandler struct {
	svc *assistant.Service
}

func NewMessageHandler(svc *assistant.Service) *MessageHandler {
	return &MessageHandler{svc: svc}
}

// HandleMessage POST /api/messages
func (h *MessageHandler) HandleMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OwnerID    string `json:"ownerId"`
		SenderName string `json:"senderName,omitempty"`
		Text       string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if req.OwnerID == "" || req.Text == "" {
		respond.WriteBadRequest(w, "ownerId and text are required")
		return
	}

	reply := h.svc.HandleMessage(r.Context(), req.OwnerID, req.SenderName, req.Text)
	respond.WriteJSON(w, http.StatusOK, map[string]string{"reply": reply})
}

// ReportLocation POST /api/owners/{ownerId}/location
func (h *MessageHandler) ReportLocation(w http.ResponseWriter, r *http.Request) {
	ownerID := mux.Vars(r)["ownerId"]

	var req struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}

	reply := h.svc.ReportLocation(ownerID, req.Latitude, req.Longitude)
	respond.WriteJSON(w, http.StatusOK, map[string]string{"reply": reply})
}

// MeetingHandler exposes direct meeting access next to the
// natural-language surface.
type MeetingHandler struct {
	svc *assistant.Service
}

func NewMeetingHandler(svc *assistant.Service) *MeetingHandler {
	return &MeetingHandler{svc: svc}
}

// CreateMeeting POST /api/owners/{ownerId}/meetings
func (h *MeetingHandler) CreateMeeting(w http.ResponseWriter, r *http.Request) {
	ownerID := mux.Vars(r)["ownerId"]

	var req struct {
		Title           string  `json:"title"`
		StartTime       string  `json:"startTime"`
		DurationMinutes int     `json:"durationMinutes,omitempty"`
		Location        *string `json:"location,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		respond.WriteBadRequest(w, "startTime must be RFC 3339")
		return
	}

	created, err := h.svc.CreateMeeting(r.Context(), &model.Meeting{
		OwnerID:         ownerID,
		Title:           req.Title,
		StartTime:       start,
		DurationMinutes: req.DurationMinutes,
		Location:        req.Location,
	})
	if err != nil {
		if errors.Is(err, model.ErrValidation) {
			respond.WriteBadRequest(w, err.Error())
			return
		}
		respond.WriteInternalError(w, err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusCreated, created)
}

// ListMeetings GET /api/owners/{ownerId}/meetings?query=&from=&to=
// query runs through the same date-aware filter the assistant uses, so
// "завтра" or "8 ноября" narrow the window.
func (h *MeetingHandler) ListMeetings(w http.ResponseWriter, r *http.Request) {
	ownerID := mux.Vars(r)["ownerId"]
	q := r.URL.Query()

	var timeMin, timeMax *time.Time
	if v := q.Get("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			respond.WriteBadRequest(w, "from must be RFC 3339")
			return
		}
		timeMin = &t
	}
	if v := q.Get("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			respond.WriteBadRequest(w, "to must be RFC 3339")
			return
		}
		timeMax = &t
	}

	meetings, err := h.svc.ListMeetings(r.Context(), ownerID, q.Get("query"), timeMin, timeMax)
	if err != nil {
		respond.WriteInternalError(w, err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"meetings": meetings, "count": len(meetings)})
}

// HealthHandler reports liveness and store connectivity.
type HealthHandler struct {
	st store.Store
}

func NewHealthHandler(st store.Store) *HealthHandler {
	return &HealthHandler{st: st}
}

// CheckHealth GET /api/health
func (h *HealthHandler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	if pinger, ok := h.st.(store.HealthPinger); ok {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pinger.HealthPing(ctx); err != nil {
			respond.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy", "error": err.Error()})
			return
		}
	}
	respond.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
