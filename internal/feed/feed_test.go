package feed_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"biddashboard/internal/feed"
	"biddashboard/internal/synth"
	"biddashboard/models"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// stubGenerator возвращает предсказуемые записи и считает вызовы
type stubGenerator struct {
	mu    sync.Mutex
	calls int
	fixed *models.BidRecord
}

func (g *stubGenerator) Synthesize(seq int, date time.Time) models.BidRecord {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	if g.fixed != nil {
		return *g.fixed
	}
	return models.BidRecord{
		ID:       fmt.Sprintf("BID-%d", seq),
		Category: models.CategoryTelecom,
		OpenDate: date,
		Title:    fmt.Sprintf("title %d", seq),
	}
}

func (g *stubGenerator) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

func seed(n int) []models.BidRecord {
	out := make([]models.BidRecord, n)
	for i := range out {
		out[i] = models.BidRecord{ID: fmt.Sprintf("SEED-%d", i)}
	}
	return out
}

func TestTickPrependsExactRecord(t *testing.T) {
	known := models.BidRecord{
		ID:       "BID-KNOWN",
		Category: models.CategoryFireSafety,
		Title:    "서울 조달청 소방시설 보수",
		Award:    &models.Award{WinnerName: "(주)진주소방", AwardPrice: 1000},
	}
	s := feed.New(&stubGenerator{fixed: &known})

	s.Tick()

	snap := s.Snapshot()
	require.Len(t, snap, 1)
	require.Equal(t, known, snap[0])
	require.Equal(t, []string{"[NEW] 소방 낙찰: 서울 조달청 소방시설 보수"}, s.Logs())
}

func TestTickRespectsCapacity(t *testing.T) {
	cases := []struct {
		initial, ticks, capacity int
	}{
		{0, 1, 5},
		{0, 10, 5},
		{3, 2, 10},
		{120, 400, 500},
		{498, 5, 500},
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("%d+%d/%d", tc.initial, tc.ticks, tc.capacity), func(t *testing.T) {
			s := feed.New(&stubGenerator{}, feed.WithInitial(seed(tc.initial)), feed.WithCapacity(tc.capacity))

			var last models.BidRecord
			for i := 0; i < tc.ticks; i++ {
				last = s.Tick()
				require.Equal(t, last.ID, s.Snapshot()[0].ID)
			}

			snap := s.Snapshot()
			require.Len(t, snap, min(tc.initial+tc.ticks, tc.capacity))
			require.Equal(t, last.ID, snap[0].ID)
		})
	}
}

func TestNewestFirstOrder(t *testing.T) {
	s := feed.New(&stubGenerator{}, feed.WithInitial(seed(2)))

	s.Tick()
	s.Tick()

	ids := []string{}
	for _, r := range s.Snapshot() {
		ids = append(ids, r.ID)
	}
	require.Equal(t, []string{"BID-3", "BID-2", "SEED-0", "SEED-1"}, ids)
}

func TestLogRingKeepsLastLines(t *testing.T) {
	s := feed.New(&stubGenerator{}, feed.WithInitial(nil, "[시스템] 실시간 인텔리전스 가동..."))

	for i := 0; i < 15; i++ {
		s.Tick()
	}
	s.Log("[발송성공] SMS -> (주)진주정보통신")

	logs := s.Logs()
	require.Len(t, logs, feed.DefaultLogSize)
	require.Equal(t, "[발송성공] SMS -> (주)진주정보통신", logs[len(logs)-1])
	require.Equal(t, "[NEW] 정보통신 입찰: title 14", logs[len(logs)-2])
}

func TestSnapshotIsCopy(t *testing.T) {
	s := feed.New(&stubGenerator{}, feed.WithInitial(seed(3)))

	snap := s.Snapshot()
	snap[0].ID = "mutated"

	require.Equal(t, "SEED-0", s.Snapshot()[0].ID)
}

func TestResetAndFind(t *testing.T) {
	s := feed.New(&stubGenerator{}, feed.WithInitial(seed(3)), feed.WithCapacity(4))

	s.Reset(seed(10))
	require.Len(t, s.Snapshot(), 4)

	rec, ok := s.Find("SEED-2")
	require.True(t, ok)
	require.Equal(t, "SEED-2", rec.ID)

	_, ok = s.Find("SEED-9")
	require.False(t, ok)
}

func TestStopIsIdempotent(t *testing.T) {
	defer goleak.VerifyNone(t)

	s := feed.New(&stubGenerator{})
	s.Stop()

	s.Start(time.Millisecond, 10)
	s.Start(time.Millisecond, 10)
	require.True(t, s.Running())

	s.Stop()
	s.Stop()
	require.False(t, s.Running())
}

func TestStartTicksAndStopFreezes(t *testing.T) {
	defer goleak.VerifyNone(t)

	gen := &stubGenerator{}
	s := feed.New(gen)
	s.Start(2*time.Millisecond, 3)

	require.Eventually(t, func() bool { return gen.Calls() >= 5 }, 2*time.Second, time.Millisecond)
	s.Stop()

	frozen := s.Snapshot()
	calls := gen.Calls()
	require.Len(t, frozen, 3)

	time.Sleep(20 * time.Millisecond)
	require.Equal(t, calls, gen.Calls())
	require.Equal(t, frozen, s.Snapshot())
}

func TestStartNonPositiveIntervalUsesDefault(t *testing.T) {
	defer goleak.VerifyNone(t)

	for _, interval := range []time.Duration{0, -time.Second} {
		gen := &stubGenerator{}
		s := feed.New(gen, feed.WithInitial(seed(2)))
		s.Start(interval, 10)
		require.True(t, s.Running())

		time.Sleep(10 * time.Millisecond)
		require.Zero(t, gen.Calls())
		require.Len(t, s.Snapshot(), 2)

		s.Stop()
		require.False(t, s.Running())
	}
}

func TestWithRealSynthesizer(t *testing.T) {
	clock := func() time.Time { return time.Date(2025, time.May, 31, 9, 0, 0, 0, time.UTC) }
	gen := synth.New(synth.WithRand(synth.NewSeededRand(5)), synth.WithClock(clock))
	s := feed.New(gen, feed.WithClock(clock))

	rec := s.Tick()
	require.Equal(t, "2025-05-31", rec.OpenDay())
	require.Equal(t, "2025-06-07", rec.CloseDay())
}
