package analytics_test

import (
	"testing"
	"time"

	"biddashboard/internal/analytics"
	"biddashboard/models"

	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse(models.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func rec(id, region string, price int64, open string, awarded bool) models.BidRecord {
	r := models.BidRecord{
		ID:        id,
		Region:    region,
		Category:  models.CategoryTelecom,
		BasePrice: price,
		OpenDate:  day(open),
		CloseDate: day(open).AddDate(0, 0, 7),
	}
	if awarded {
		r.Award = &models.Award{AwardPrice: price * 9 / 10, WinnerName: "(주)진주정보"}
	}
	return r
}

func TestRegionCountsTopEight(t *testing.T) {
	var records []models.BidRecord
	regions := []string{"서울", "부산", "대구", "인천", "광주", "대전", "울산", "세종", "경기", "강원"}
	for i, name := range regions {
		for j := 0; j <= i%3; j++ {
			records = append(records, rec("x", name, 1, "2025-03-01", false))
		}
	}

	want := []analytics.Count{
		{Name: "경기", Value: 3},
		{Name: "대구", Value: 3},
		{Name: "대전", Value: 3},
		{Name: "광주", Value: 2},
		{Name: "부산", Value: 2},
		{Name: "세종", Value: 2},
		{Name: "강원", Value: 1},
		{Name: "서울", Value: 1},
	}
	require.Equal(t, want, analytics.RegionCounts(records))
	require.Empty(t, analytics.RegionCounts(nil))
}

func TestOutcomeAndCategoryCounts(t *testing.T) {
	records := []models.BidRecord{
		rec("a", "서울", 1, "2025-03-01", true),
		rec("b", "서울", 1, "2025-03-01", false),
		rec("c", "서울", 1, "2025-03-01", true),
	}
	records[1].Category = models.CategoryFireSafety

	require.Equal(t, []analytics.Count{{Name: "입찰", Value: 1}, {Name: "낙찰", Value: 2}}, analytics.OutcomeCounts(records))
	require.Equal(t, []analytics.Count{
		{Name: "정보통신", Value: 2},
		{Name: "전기", Value: 0},
		{Name: "소방", Value: 1},
	}, analytics.CategoryCounts(records))
}

func TestPriceBuckets(t *testing.T) {
	prices := []int64{30_000_000, 99_999_999, 100_000_000, 499_999_999, 500_000_000, 999_999_999, 1_000_000_000, 4_000_000_000}
	var records []models.BidRecord
	for _, p := range prices {
		records = append(records, rec("x", "서울", p, "2025-03-01", false))
	}

	require.Equal(t, []analytics.Count{
		{Name: "1억 미만", Value: 2},
		{Name: "1~5억", Value: 2},
		{Name: "5~10억", Value: 2},
		{Name: "10억 이상", Value: 2},
	}, analytics.PriceBuckets(records))
}

func TestEventsOn(t *testing.T) {
	records := []models.BidRecord{
		rec("opens", "서울", 1, "2025-03-10", false),
		rec("closes-open", "서울", 1, "2025-03-03", false),
		rec("closes-awarded", "서울", 1, "2025-03-03", true),
		rec("other", "서울", 1, "2025-03-11", false),
	}

	got := analytics.EventsOn(records, day("2025-03-10"))
	require.Len(t, got, 3)

	byID := map[string]analytics.Event{}
	for _, e := range got {
		byID[e.Record.ID] = e
	}
	require.True(t, byID["opens"].Opening)
	require.False(t, byID["opens"].Closing)
	require.True(t, byID["closes-open"].Closing)
	require.False(t, byID["closes-awarded"].Closing)
	require.False(t, byID["closes-awarded"].Opening)

	require.Empty(t, analytics.EventsOn(records, day("2025-01-01")))
}

func TestMonthGrid(t *testing.T) {
	// 2025-03-01 суббота
	grid := analytics.MonthGrid(2025, time.March)
	require.Len(t, grid, analytics.GridCells)
	require.Equal(t, []int{0, 0, 0, 0, 0, 0, 1}, grid[:7])
	require.Equal(t, 31, grid[6+30])
	require.Zero(t, grid[37])

	feb := analytics.MonthGrid(2024, time.February)
	require.Equal(t, 29, feb[4+28])
}

func TestSummarize(t *testing.T) {
	records := []models.BidRecord{rec("a", "서울", 1, "2025-03-01", true)}
	s := analytics.Summarize(records)
	require.Equal(t, 1, s.Total)
	require.Len(t, s.Regions, 1)
	require.Len(t, s.Prices, 4)
}
