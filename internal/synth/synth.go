package synth

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"biddashboard/models"

	"github.com/google/uuid"
)

// DefaultAwardProbability вероятность того, что запись будет итогом (낙찰)
const DefaultAwardProbability = 0.6

// recordNamespace пространство имен для UUID записей
var recordNamespace = uuid.MustParse("3f1c2b9e-6c44-5a7e-9d2b-8a1e0c7d4b11")

// Rand источник случайности. *rand.Rand из math/rand/v2 подходит как есть.
type Rand interface {
	IntN(n int) int
	Float64() float64
	Shuffle(n int, swap func(i, j int))
}

// lockedRand делает источник безопасным для нескольких горутин
type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *lockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

func (l *lockedRand) Shuffle(n int, swap func(i, j int)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.r.Shuffle(n, swap)
}

// NewRand источник по умолчанию, засеянный от времени
func NewRand() Rand {
	seed := uint64(time.Now().UnixNano())
	return &lockedRand{r: rand.New(rand.NewPCG(seed, seed>>1|1))}
}

// NewSeededRand детерминированный источник для тестов и воспроизводимых выгрузок
func NewSeededRand(seed uint64) Rand {
	return &lockedRand{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Synthesizer генерирует синтетические записи о закупках
type Synthesizer struct {
	rng              Rand
	now              func() time.Time
	awardProbability float64
}

type Option func(*Synthesizer)

// WithRand подменяет источник случайности
func WithRand(r Rand) Option {
	return func(s *Synthesizer) { s.rng = r }
}

// WithClock подменяет текущее время
func WithClock(now func() time.Time) Option {
	return func(s *Synthesizer) { s.now = now }
}

// WithAwardProbability задает долю итогов; значения вне [0,1] игнорируются
func WithAwardProbability(p float64) Option {
	return func(s *Synthesizer) {
		if p >= 0 && p <= 1 {
			s.awardProbability = p
		}
	}
}

func New(opts ...Option) *Synthesizer {
	s := &Synthesizer{
		now:              time.Now,
		awardProbability: DefaultAwardProbability,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = NewRand()
	}
	return s
}

// Synthesize создает одну запись. seq нужен только для уникальности идентификаторов.
// Нулевая date означает случайный день текущего месяца.
func (s *Synthesizer) Synthesize(seq int, date time.Time) models.BidRecord {
	category := models.Categories[s.rng.IntN(len(models.Categories))]
	awarded := s.rng.Float64() < s.awardProbability
	basePrice := int64(minBasePrice + s.rng.IntN(basePriceRange))

	openDate := s.resolveDate(date)
	closeDate := openDate.AddDate(0, 0, 7)

	region := Regions[s.rng.IntN(len(Regions))]
	org := organizations[s.rng.IntN(len(organizations))]
	words := keywords[category]
	keyword := words[s.rng.IntN(len(words))]

	participants := s.participants(category)

	rec := models.BidRecord{
		ID:            s.recordID(seq),
		NoticeNumber:  fmt.Sprintf("%04d%02d%05d-00", openDate.Year(), int(openDate.Month()), noticeSuffix(seq)),
		Category:      category,
		OpenDate:      openDate,
		CloseDate:     closeDate,
		Title:         fmt.Sprintf("%s %s %s", region, org, keyword),
		Organization:  org,
		Region:        region,
		BasePrice:     basePrice,
		Link:          noticeLink,
		ProjectScope:  projectScopes[category],
		SpecDetails:   append([]string(nil), specDetails[category]...),
		EquipmentList: s.shuffled(equipment[category]),
	}

	if awarded {
		idx := s.rng.IntN(len(participants))
		w := &participants[idx]
		w.IsWinner = true
		w.AwardPrice = AwardPrice(basePrice, w.BidRate)
		if w.Fax == "" {
			w.Fax = winnerFax
		}
		rec.Award = &models.Award{
			AwardPrice: w.AwardPrice,
			WinnerName: w.CompanyName,
			WinnerContact: models.Contact{
				Phone: w.Phone,
				Email: w.Email,
				Fax:   w.Fax,
			},
			WinRate: w.BidRate,
		}
	}
	rec.Participants = participants

	return rec
}

// Generate пакет записей со случайными днями текущего месяца
func (s *Synthesizer) Generate(count int) []models.BidRecord {
	if count <= 0 {
		return []models.BidRecord{}
	}
	out := make([]models.BidRecord, count)
	for i := range out {
		out[i] = s.Synthesize(i, time.Time{})
	}
	return out
}

// AwardPrice цена победителя: basePrice * bidRate / 100 с округлением
func AwardPrice(basePrice int64, bidRate float64) int64 {
	return int64(math.Round(float64(basePrice) * bidRate / 100))
}

func (s *Synthesizer) resolveDate(date time.Time) time.Time {
	if date.IsZero() {
		now := s.now()
		return time.Date(now.Year(), now.Month(), s.rng.IntN(28)+1, 0, 0, 0, 0, time.UTC)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *Synthesizer) participants(category models.Category) []models.Participant {
	n := minParticipants + s.rng.IntN(participantsRange)
	suffix := []rune(category.Label())
	if len(suffix) > 2 {
		suffix = suffix[:2]
	}
	out := make([]models.Participant, n)
	for i := range out {
		out[i] = models.Participant{
			CompanyName: fmt.Sprintf("(주)%s%s", companyPrefixes[i%len(companyPrefixes)], string(suffix)),
			BidRate:     minBidRate + s.rng.Float64()*bidRateRange,
			Phone:       fmt.Sprintf("010-%d-%d", 1000+s.rng.IntN(9000), 1000+s.rng.IntN(9000)),
			Email:       fmt.Sprintf("contact%d@biz.co.kr", i),
		}
	}
	return out
}

func (s *Synthesizer) shuffled(items []string) []string {
	out := append([]string(nil), items...)
	s.rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// noticeSuffix пять последних цифр номера, для отрицательных seq тоже
func noticeSuffix(seq int) int {
	return (seq%100000 + 100000) % 100000
}

func (s *Synthesizer) recordID(seq int) string {
	name := fmt.Sprintf("%d/%d", seq, s.now().UnixNano())
	return "BID-" + uuid.NewSHA1(recordNamespace, []byte(name)).String()
}
