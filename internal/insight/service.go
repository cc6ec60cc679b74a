package insight

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"biddashboard/models"

	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

// ErrRateLimited запрос отклонен локальным ограничителем, удаленный вызов не делался
var ErrRateLimited = errors.New("insight requests are rate limited")

const (
	staticInsightFormat = "[정적 분석] %d건 데이터 기반 시장 경쟁 강도 보통 이상 예측."
	messageFailedText   = "메시지 생성 실패"
	fallbackMessage     = "[AI 한도 초과]\n안녕하십니까, (주)진주정보통신입니다.\n귀사의 %s 관련하여 협업을 제안드립니다.\n협업 문의: 010-8758-5959"
)

// sharedInsightTimeout общий вызов не зависит от отмены запроса, который его начал
const sharedInsightTimeout = 2 * time.Minute

// Result текст для пользователя. Fallback помечает локально собранный ответ.
type Result struct {
	Text           string `json:"text"`
	Fallback       bool   `json:"fallback"`
	QuotaExhausted bool   `json:"quotaExhausted"`
}

// Service граница вызова: сбои превращаются в помеченный запасной текст
type Service struct {
	client  *Client
	limiter *rate.Limiter
	group   singleflight.Group
}

// NewService perMinute <= 0 отключает ограничение
func NewService(client *Client, perMinute int) *Service {
	limiter := rate.NewLimiter(rate.Inf, 0)
	if perMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), max(1, perMinute/6))
	}
	return &Service{client: client, limiter: limiter}
}

// Insight одновременные запросы по одной и той же выборке схлопываются в один вызов
func (s *Service) Insight(ctx context.Context, records []models.BidRecord) (Result, error) {
	if len(records) == 0 {
		return Result{Text: NoDataText}, nil
	}

	v, err, _ := s.group.Do(insightKey(records, s.client.sampleSize), func() (interface{}, error) {
		if !s.limiter.Allow() {
			return Result{}, ErrRateLimited
		}
		callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedInsightTimeout)
		defer cancel()
		text, err := s.client.RequestInsight(callCtx, records)
		if err != nil {
			if errors.Is(err, ErrQuotaExhausted) {
				return Result{
					Text:           fmt.Sprintf(staticInsightFormat, len(records)),
					Fallback:       true,
					QuotaExhausted: true,
				}, nil
			}
			return Result{}, err
		}
		return Result{Text: text, Fallback: text == UnavailableText}, nil
	})
	if err != nil {
		return Result{}, err
	}
	return v.(Result), nil
}

// Message любое падение генерации заменяется локальным шаблоном
func (s *Service) Message(ctx context.Context, rec models.BidRecord, kind MessageKind) (Result, error) {
	if !s.limiter.Allow() {
		return Result{}, ErrRateLimited
	}
	text, err := s.client.RequestMessage(ctx, rec, kind)
	if err != nil {
		return Result{
			Text:           fmt.Sprintf(fallbackMessage, rec.Title),
			Fallback:       true,
			QuotaExhausted: errors.Is(err, ErrQuotaExhausted),
		}, nil
	}
	if strings.TrimSpace(text) == "" {
		return Result{Text: messageFailedText, Fallback: true}, nil
	}
	return Result{Text: text}, nil
}

func insightKey(records []models.BidRecord, n int) string {
	if n > len(records) {
		n = len(records)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d", len(records))
	for _, r := range records[:n] {
		b.WriteByte('|')
		b.WriteString(r.ID)
	}
	return b.String()
}
