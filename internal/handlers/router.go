package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter маршруты API
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/ping", h.PingHandler)
		// лента
		r.Get("/bids", h.GetBidsHandler)
		r.Post("/bids/refresh", h.RefreshBidsHandler)
		r.Get("/bids/{bidId}", h.GetBidHandler)
		r.Get("/bids/{bidId}/document", h.GetBidDocumentHandler)
		r.Get("/feed/logs", h.GetFeedLogsHandler)
		// аналитика
		r.Get("/stats", h.GetStatsHandler)
		r.Get("/calendar", h.GetCalendarHandler)
		// AI
		r.Post("/insights", h.CreateInsightHandler)
		r.Post("/bids/{bidId}/messages", h.CreateMessageHandler)
		r.Post("/bids/{bidId}/messages/send", h.SendMessageHandler)
	})
	return r
}
