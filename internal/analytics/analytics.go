package analytics

import (
	"sort"
	"time"

	"biddashboard/models"
)

const (
	TopRegions = 8
	GridCells  = 42
)

// Count строка диаграммы
type Count struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// Event запись в календаре дня. Closing только для открытых торгов в день закрытия.
type Event struct {
	Record  models.BidRecord `json:"record"`
	Opening bool             `json:"opening"`
	Closing bool             `json:"closing"`
}

// Stats сводка по отфильтрованной выборке
type Stats struct {
	Total      int     `json:"total"`
	Regions    []Count `json:"regions"`
	Outcomes   []Count `json:"outcomes"`
	Categories []Count `json:"categories"`
	Prices     []Count `json:"prices"`
}

var priceBuckets = []struct {
	name  string
	upper int64
}{
	{"1억 미만", 100_000_000},
	{"1~5억", 500_000_000},
	{"5~10억", 1_000_000_000},
	{"10억 이상", 0},
}

func Summarize(records []models.BidRecord) Stats {
	return Stats{
		Total:      len(records),
		Regions:    RegionCounts(records),
		Outcomes:   OutcomeCounts(records),
		Categories: CategoryCounts(records),
		Prices:     PriceBuckets(records),
	}
}

// RegionCounts первые TopRegions регионов по убыванию, при равенстве по имени
func RegionCounts(records []models.BidRecord) []Count {
	byRegion := make(map[string]int)
	for _, r := range records {
		byRegion[r.Region]++
	}

	out := make([]Count, 0, len(byRegion))
	for name, v := range byRegion {
		out = append(out, Count{Name: name, Value: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > TopRegions {
		out = out[:TopRegions]
	}
	return out
}

func OutcomeCounts(records []models.BidRecord) []Count {
	var open, awarded int
	for _, r := range records {
		if r.Outcome() == models.OutcomeAwarded {
			awarded++
		} else {
			open++
		}
	}
	return []Count{
		{Name: models.OutcomeOpen.Label(), Value: open},
		{Name: models.OutcomeAwarded.Label(), Value: awarded},
	}
}

func CategoryCounts(records []models.BidRecord) []Count {
	byCategory := make(map[models.Category]int)
	for _, r := range records {
		byCategory[r.Category]++
	}
	out := make([]Count, 0, len(models.Categories))
	for _, c := range models.Categories {
		out = append(out, Count{Name: c.Label(), Value: byCategory[c]})
	}
	return out
}

// PriceBuckets группировка по базовой цене
func PriceBuckets(records []models.BidRecord) []Count {
	out := make([]Count, len(priceBuckets))
	for i, b := range priceBuckets {
		out[i].Name = b.name
	}
	for _, r := range records {
		for i, b := range priceBuckets {
			if b.upper == 0 || r.BasePrice < b.upper {
				out[i].Value++
				break
			}
		}
	}
	return out
}

// EventsOn записи, открывающиеся или закрывающиеся в указанный день
func EventsOn(records []models.BidRecord, day time.Time) []Event {
	key := day.Format(models.DateLayout)
	out := []Event{}
	for _, r := range records {
		opening := r.OpenDay() == key
		closes := r.CloseDay() == key
		if !opening && !closes {
			continue
		}
		out = append(out, Event{
			Record:  r,
			Opening: opening,
			Closing: closes && r.Outcome() == models.OutcomeOpen,
		})
	}
	return out
}

// MonthGrid сетка месяца с воскресенья, 0 для пустых ячеек
func MonthGrid(year int, month time.Month) []int {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	days := first.AddDate(0, 1, -1).Day()
	offset := int(first.Weekday())

	grid := make([]int, GridCells)
	for d := 1; d <= days; d++ {
		grid[offset+d-1] = d
	}
	return grid
}
