package handlers

import (
	"net/http"
	"time"

	"biddashboard/internal/analytics"
	"biddashboard/models"
)

func (h *Handler) GetFeedLogsHandler(w http.ResponseWriter, r *http.Request) {
	logs := h.Store.Logs()
	if logs == nil {
		logs = []string{}
	}
	writeJSON(w, http.StatusOK, logs)
}

// GetStatsHandler диаграммы по отфильтрованной выборке
func (h *Handler) GetStatsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, analytics.Summarize(h.filteredView(r)))
}

type calendarResponse struct {
	Date   string            `json:"date"`
	Grid   []int             `json:"grid"`
	Marks  map[int]int       `json:"marks"`
	Events []analytics.Event `json:"events"`
}

// GetCalendarHandler сетка месяца и события выбранного дня, по умолчанию сегодня
func (h *Handler) GetCalendarHandler(w http.ResponseWriter, r *http.Request) {
	day := h.Now().UTC().Truncate(24 * time.Hour)
	if s := r.URL.Query().Get("date"); s != "" {
		d, err := time.Parse(models.DateLayout, s)
		if err != nil {
			http.Error(w, "Invalid date parameter", http.StatusBadRequest)
			return
		}
		day = d
	}

	records := h.filteredView(r)
	writeJSON(w, http.StatusOK, calendarResponse{
		Date:   day.Format(models.DateLayout),
		Grid:   analytics.MonthGrid(day.Year(), day.Month()),
		Marks:  monthMarks(records, day),
		Events: analytics.EventsOn(records, day),
	})
}

// monthMarks число событий по дням месяца
func monthMarks(records []models.BidRecord, day time.Time) map[int]int {
	marks := make(map[int]int)
	for _, r := range records {
		for _, d := range []time.Time{r.OpenDate, r.CloseDate} {
			if d.Year() == day.Year() && d.Month() == day.Month() {
				marks[d.Day()]++
			}
		}
	}
	return marks
}

type insightResponse struct {
	Count          int    `json:"count"`
	Text           string `json:"text"`
	Fallback       bool   `json:"fallback"`
	QuotaExhausted bool   `json:"quotaExhausted"`
}

// CreateInsightHandler сводка по текущей выборке. Сбой AI не дает 5xx.
func (h *Handler) CreateInsightHandler(w http.ResponseWriter, r *http.Request) {
	records := h.filteredView(r)

	res, err := h.AI.Insight(r.Context(), records)
	if err != nil {
		h.aiError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, insightResponse{
		Count:          len(records),
		Text:           res.Text,
		Fallback:       res.Fallback,
		QuotaExhausted: res.QuotaExhausted,
	})
}
