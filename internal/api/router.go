package api

import (
	"github.com/gorilla/mux"

	"github.com/strelka-labs/meeting-assistant/internal/api/recovery"
	"github.com/strelka-labs/meeting-assistant/internal/assistant"
	"github.com/strelka-labs/meeting-assistant/internal/store"
)

// NewRouter creates the HTTP router with all API routes.
func NewRouter(svc *assistant.Service, st store.Store) *mux.Router {
	router := mux.NewRouter()
	router.Use(recovery.Middleware)

	messageHandler := NewMessageHandler(svc)
	meetingHandler := NewMeetingHandler(svc)
	healthHandler := NewHealthHandler(st)

	router.HandleFunc("/api/health", healthHandler.CheckHealth).Methods("GET")

	router.HandleFunc("/api/messages", messageHandler.HandleMessage).Methods("POST")
	router.HandleFunc("/api/owners/{ownerId}/location", messageHandler.ReportLocation).Methods("POST")

	router.HandleFunc("/api/owners/{ownerId}/meetings", meetingHandler.CreateMeeting).Methods("POST")
	router.HandleFunc("/api/owners/{ownerId}/meetings", meetingHandler.ListMeetings).Methods("GET")

	return router
}
