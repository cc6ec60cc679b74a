package feed

import (
	"fmt"
	"sync"
	"time"

	"biddashboard/internal/logger"
	"biddashboard/models"
)

const (
	DefaultCapacity = 500
	DefaultLogSize  = 10
	DefaultInterval = 15 * time.Second
)

// Generator создает новую запись для ленты
type Generator interface {
	Synthesize(seq int, date time.Time) models.BidRecord
}

// Simulator владеет лентой записей (новые в начале) и журналом событий.
// Все изменения ленты идут под одним мьютексом, тики не пересекаются.
type Simulator struct {
	gen     Generator
	now     func() time.Time
	logSize int
	log     *logger.Entry

	mu       sync.Mutex
	records  []models.BidRecord
	logs     []string
	seq      int
	capacity int

	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

type Option func(*Simulator)

func WithClock(now func() time.Time) Option {
	return func(s *Simulator) { s.now = now }
}

func WithLogSize(n int) Option {
	return func(s *Simulator) {
		if n > 0 {
			s.logSize = n
		}
	}
}

// WithInitial начальное содержимое ленты и журнала
func WithInitial(records []models.BidRecord, logs ...string) Option {
	return func(s *Simulator) {
		s.records = append([]models.BidRecord(nil), records...)
		s.seq = len(records)
		s.logs = append([]string(nil), logs...)
	}
}

func WithCapacity(n int) Option {
	return func(s *Simulator) {
		if n > 0 {
			s.capacity = n
		}
	}
}

func New(gen Generator, opts ...Option) *Simulator {
	s := &Simulator{
		gen:      gen,
		now:      time.Now,
		logSize:  DefaultLogSize,
		capacity: DefaultCapacity,
		log:      logger.GetLogger().WithComponent("feed"),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.records = truncate(s.records, s.capacity)
	s.logs = tail(s.logs, s.logSize)
	return s
}

// Start запускает периодическую генерацию. Повторный вызов на работающей ленте ничего не делает.
// Неположительный interval заменяется на DefaultInterval.
func (s *Simulator) Start(interval time.Duration, capacity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	if capacity > 0 {
		s.capacity = capacity
	}
	s.running = true
	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})

	go s.loop(interval, s.stopCh, s.doneCh)

	s.log.WithFields(logger.Fields{
		"interval": interval.String(),
		"capacity": s.capacity,
	}).Info("feed started")
}

func (s *Simulator) loop(interval time.Duration, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			select {
			case <-stop:
				return
			default:
			}
			s.Tick()
		}
	}
}

// Stop останавливает генерацию и дожидается выхода горутины.
// Безопасен до Start и при повторных вызовах.
func (s *Simulator) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stopCh)
	done := s.doneCh
	s.mu.Unlock()

	<-done
	s.log.Info("feed stopped")
}

// Running сообщает, идет ли генерация
func (s *Simulator) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Tick один шаг ленты: новая запись в начало, обрезка хвоста, строка в журнал
func (s *Simulator) Tick() models.BidRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.gen.Synthesize(s.seq, s.now())
	s.seq++

	next := make([]models.BidRecord, 0, min(len(s.records)+1, s.capacity))
	next = append(next, rec)
	next = append(next, s.records...)
	s.records = truncate(next, s.capacity)

	s.appendLog(fmt.Sprintf("[NEW] %s %s: %s", rec.Category.Label(), rec.Outcome().Label(), rec.Title))

	s.log.WithFields(logger.Fields{
		"id":       rec.ID,
		"category": rec.Category,
		"outcome":  rec.Outcome(),
		"size":     len(s.records),
	}).Debug("feed tick")

	return rec
}

// Reset заменяет содержимое ленты (кнопка обновления на дашборде)
func (s *Simulator) Reset(records []models.BidRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = truncate(append([]models.BidRecord(nil), records...), s.capacity)
	if len(records) > s.seq {
		s.seq = len(records)
	}
	s.log.WithField("size", len(s.records)).Info("feed reset")
}

// Log добавляет произвольную строку в журнал
func (s *Simulator) Log(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appendLog(line)
}

// Snapshot копия ленты, новые записи первыми
func (s *Simulator) Snapshot() []models.BidRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.BidRecord(nil), s.records...)
}

// Logs последние строки журнала, старые первыми
func (s *Simulator) Logs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.logs...)
}

// Find ищет запись по идентификатору
func (s *Simulator) Find(id string) (models.BidRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.records {
		if r.ID == id {
			return r, true
		}
	}
	return models.BidRecord{}, false
}

func (s *Simulator) appendLog(line string) {
	s.logs = tail(append(s.logs, line), s.logSize)
}

func truncate(records []models.BidRecord, capacity int) []models.BidRecord {
	if capacity > 0 && len(records) > capacity {
		return records[:capacity:capacity]
	}
	return records
}

func tail(lines []string, n int) []string {
	if len(lines) > n {
		return append([]string(nil), lines[len(lines)-n:]...)
	}
	return lines
}
