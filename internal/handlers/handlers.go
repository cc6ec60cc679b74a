package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"biddashboard/internal/filter"
	"biddashboard/internal/logger"
	"biddashboard/models"
)

const (
	DefaultRefreshSize = 150
	defaultLimit       = 50
	maxLimit           = 500
)

// Handler оборачивает ленту, генератор и AI-сервис
type Handler struct {
	Store       FeedStore
	Gen         RecordGenerator
	AI          InsightService
	RefreshSize int
	Now         func() time.Time

	log *logger.Entry
}

// NewHandler создает новый Handler
func NewHandler(store FeedStore, gen RecordGenerator, ai InsightService) *Handler {
	return &Handler{
		Store:       store,
		Gen:         gen,
		AI:          ai,
		RefreshSize: DefaultRefreshSize,
		Now:         time.Now,
		log:         logger.GetLogger().WithComponent("handlers"),
	}
}

// PingHandler отвечает "ok" для проверки сервера
func (h *Handler) PingHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

type PaginationParams struct {
	Limit  int
	Offset int
}

// parsePaginationParams парсит limit и offset из query, с дефолтами и ограничениями
func parsePaginationParams(r *http.Request) PaginationParams {
	params := PaginationParams{Limit: defaultLimit}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= maxLimit {
			params.Limit = l
		}
	}
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			params.Offset = o
		}
	}
	return params
}

func paginate(records []models.BidRecord, p PaginationParams) []models.BidRecord {
	if p.Offset >= len(records) {
		return []models.BidRecord{}
	}
	end := min(p.Offset+p.Limit, len(records))
	return records[p.Offset:end]
}

// filteredView текущая лента после фильтров из query
func (h *Handler) filteredView(r *http.Request) []models.BidRecord {
	return filter.Apply(h.Store.Snapshot(), filter.ParseCriteria(r.URL.Query()))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
