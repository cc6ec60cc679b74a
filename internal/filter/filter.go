package filter

import (
	"errors"
	"math"
	"net/url"
	"strconv"
	"strings"

	"biddashboard/models"
)

// AmountUnit суммы в фильтре задаются в единицах по 10 000 вон
const AmountUnit = 10_000

// Criteria условия фильтрации. Пустое значение, "all" или "전체" не ограничивают выборку.
type Criteria struct {
	Outcome   string `json:"type"`
	Category  string `json:"category"`
	Region    string `json:"region"`
	DateFrom  string `json:"startDate"`
	DateTo    string `json:"endDate"`
	Keyword   string `json:"keyword"`
	MinAmount string `json:"minAmount"`
	MaxAmount string `json:"maxAmount"`
}

func isAny(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || strings.EqualFold(v, "all") || v == "전체"
}

// Apply возвращает новую выборку в исходном порядке. Источник не меняется.
func Apply(records []models.BidRecord, c Criteria) []models.BidRecord {
	m := compile(c)
	out := make([]models.BidRecord, 0, len(records))
	for _, r := range records {
		if m.match(r) {
			out = append(out, r)
		}
	}
	return out
}

// matcher условия, разобранные один раз на весь проход
type matcher struct {
	outcome  string
	category string
	region   string
	from, to string
	terms    []string
	min, max int64
	hasMin   bool
	hasMax   bool
}

func compile(c Criteria) matcher {
	m := matcher{}
	if !isAny(c.Outcome) {
		m.outcome = strings.TrimSpace(c.Outcome)
		if o, ok := models.ParseOutcome(m.outcome); ok {
			m.outcome = string(o)
		}
	}
	if !isAny(c.Category) {
		m.category = strings.TrimSpace(c.Category)
		if cat, ok := models.ParseCategory(m.category); ok {
			m.category = string(cat)
		}
	}
	if !isAny(c.Region) {
		m.region = strings.TrimSpace(c.Region)
	}
	m.from = strings.TrimSpace(c.DateFrom)
	m.to = strings.TrimSpace(c.DateTo)
	m.terms = strings.Fields(strings.ToLower(c.Keyword))
	m.min, m.hasMin = parseAmount(c.MinAmount)
	m.max, m.hasMax = parseAmount(c.MaxAmount)
	return m
}

// parseAmount разбирает ведущие цифры, как parseInt; нечисловой ввод не ограничивает выборку
func parseAmount(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	end := 0
	if s[0] == '-' || s[0] == '+' {
		end = 1
	}
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	v, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	switch {
	case v > math.MaxInt64/AmountUnit:
		return math.MaxInt64, true
	case v < math.MinInt64/AmountUnit:
		return math.MinInt64, true
	}
	return v * AmountUnit, true
}

func (m matcher) match(r models.BidRecord) bool {
	day := r.OpenDay()
	if m.from != "" && day < m.from {
		return false
	}
	if m.to != "" && day > m.to {
		return false
	}
	if m.outcome != "" && string(r.Outcome()) != m.outcome {
		return false
	}
	if m.category != "" && string(r.Category) != m.category {
		return false
	}
	if m.region != "" && r.Region != m.region {
		return false
	}
	if len(m.terms) > 0 {
		haystack := strings.ToLower(r.Title + " " + r.Organization + " " + r.NoticeNumber)
		for _, term := range m.terms {
			if !strings.Contains(haystack, term) {
				return false
			}
		}
	}
	price := r.EffectivePrice()
	if m.hasMin && price < m.min {
		return false
	}
	if m.hasMax && price > m.max {
		return false
	}
	return true
}

// ParseCriteria собирает условия из query-параметров запроса
func ParseCriteria(q url.Values) Criteria {
	return Criteria{
		Outcome:   q.Get("type"),
		Category:  q.Get("category"),
		Region:    q.Get("region"),
		DateFrom:  q.Get("startDate"),
		DateTo:    q.Get("endDate"),
		Keyword:   q.Get("keyword"),
		MinAmount: q.Get("minAmount"),
		MaxAmount: q.Get("maxAmount"),
	}
}
