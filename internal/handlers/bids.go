package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"biddashboard/internal/document"
	"biddashboard/internal/insight"
	"biddashboard/internal/logger"

	"github.com/go-chi/chi/v5"
)

var sendMethods = map[string]bool{"sms": true, "email": true, "fax": true}

// GetBidsHandler отфильтрованная лента с пагинацией, общее число в X-Total-Count
func (h *Handler) GetBidsHandler(w http.ResponseWriter, r *http.Request) {
	params := parsePaginationParams(r)
	records := h.filteredView(r)

	w.Header().Set("X-Total-Count", strconv.Itoa(len(records)))
	writeJSON(w, http.StatusOK, paginate(records, params))
}

func (h *Handler) GetBidHandler(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.Store.Find(chi.URLParam(r, "bidId"))
	if !ok {
		http.Error(w, "Bid not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// GetBidDocumentHandler выгрузка карточки торгов в текстовый файл
func (h *Handler) GetBidDocumentHandler(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.Store.Find(chi.URLParam(r, "bidId"))
	if !ok {
		http.Error(w, "Bid not found", http.StatusNotFound)
		return
	}

	name := document.FileName(rec)
	w.Header().Set("Content-Type", document.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename*=UTF-8''%s", url.PathEscape(name)))
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(document.Render(rec)))
}

// RefreshBidsHandler заменяет ленту новой пачкой записей
func (h *Handler) RefreshBidsHandler(w http.ResponseWriter, r *http.Request) {
	records := h.Gen.Generate(h.RefreshSize)
	h.Store.Reset(records)
	h.Store.Log(fmt.Sprintf("[REFRESH] %d건 데이터 갱신", len(records)))

	w.Header().Set("X-Total-Count", strconv.Itoa(len(records)))
	writeJSON(w, http.StatusOK, map[string]int{"count": len(records)})
}

// CreateMessageHandler маркетинговое сообщение по записи
func (h *Handler) CreateMessageHandler(w http.ResponseWriter, r *http.Request) {
	kind, ok := insight.ParseMessageKind(r.URL.Query().Get("kind"))
	if !ok {
		http.Error(w, "Invalid kind parameter", http.StatusBadRequest)
		return
	}

	rec, ok := h.Store.Find(chi.URLParam(r, "bidId"))
	if !ok {
		http.Error(w, "Bid not found", http.StatusNotFound)
		return
	}

	res, err := h.AI.Message(r.Context(), rec, kind)
	if err != nil {
		h.aiError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type sendResponse struct {
	Status string `json:"status"`
	Method string `json:"method"`
	Target string `json:"target"`
	Log    string `json:"log"`
}

// SendMessageHandler имитация отправки: только строка в журнале ленты
func (h *Handler) SendMessageHandler(w http.ResponseWriter, r *http.Request) {
	method := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("method")))
	if !sendMethods[method] {
		http.Error(w, "Invalid method parameter", http.StatusBadRequest)
		return
	}

	rec, ok := h.Store.Find(chi.URLParam(r, "bidId"))
	if !ok {
		http.Error(w, "Bid not found", http.StatusNotFound)
		return
	}

	target := rec.Organization
	if rec.Award != nil && rec.Award.WinnerName != "" {
		target = rec.Award.WinnerName
	}
	line := fmt.Sprintf("[발송성공] %s -> %s", strings.ToUpper(method), target)
	h.Store.Log(line)

	writeJSON(w, http.StatusOK, sendResponse{Status: "sent", Method: method, Target: target, Log: line})
}

func (h *Handler) aiError(w http.ResponseWriter, err error) {
	if errors.Is(err, insight.ErrRateLimited) {
		w.Header().Set("Retry-After", "60")
		http.Error(w, "Too many AI requests", http.StatusTooManyRequests)
		return
	}
	h.log.WithError(err).WithFields(logger.Fields{"status": http.StatusInternalServerError}).Error("ai request failed")
	http.Error(w, "Failed to generate text", http.StatusInternalServerError)
}
