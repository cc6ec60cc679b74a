package insight

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"biddashboard/internal/logger"
	"biddashboard/models"
)

const (
	DefaultSampleSize = 5
	MaxSampleSize     = 10

	NoDataText      = "분석할 데이터가 없습니다."
	UnavailableText = "분석 엔진이 일시적으로 응답하지 않습니다."
	Signature       = "(주)진주정보통신 전략영업본부 | 문의: 010-8758-5959"
)

// MessageKind вид маркетингового сообщения
type MessageKind string

const (
	Congratulation MessageKind = "CONGRATULATION"
	Proposal       MessageKind = "PROPOSAL"
)

func (k MessageKind) Label() string {
	if k == Proposal {
		return "제안"
	}
	return "축하"
}

// ParseMessageKind принимает имя или подпись
func ParseMessageKind(s string) (MessageKind, bool) {
	switch s {
	case string(Congratulation), "축하", "":
		return Congratulation, true
	case string(Proposal), "제안":
		return Proposal, true
	}
	return "", false
}

// Client собирает промпты и вызывает генератор по политике повторов
type Client struct {
	gen        Generator
	policy     RetryPolicy
	sampleSize int
	log        *logger.Entry
}

func NewClient(gen Generator, policy RetryPolicy, sampleSize int) *Client {
	if sampleSize <= 0 {
		sampleSize = DefaultSampleSize
	}
	if sampleSize > MaxSampleSize {
		sampleSize = MaxSampleSize
	}
	return &Client{
		gen:        gen,
		policy:     policy,
		sampleSize: sampleSize,
		log:        logger.GetLogger().WithComponent("insight"),
	}
}

type recordSummary struct {
	Title  string `json:"title"`
	Price  int64  `json:"price"`
	Type   string `json:"type"`
	Winner string `json:"winner,omitempty"`
}

// Summarize краткая сводка первых n записей для промпта
func Summarize(records []models.BidRecord, n int) string {
	if n > len(records) {
		n = len(records)
	}
	out := make([]recordSummary, 0, n)
	for _, r := range records[:n] {
		s := recordSummary{Title: r.Title, Price: r.BasePrice, Type: r.Outcome().Label()}
		if r.Award != nil {
			s.Winner = r.Award.WinnerName
		}
		out = append(out, s)
	}
	b, _ := json.Marshal(out)
	return string(b)
}

// RequestInsight короткий аналитический вывод по выборке.
// ErrQuotaExhausted возвращается вызывающему, прочие сбои заменяются статическим текстом.
func (c *Client) RequestInsight(ctx context.Context, records []models.BidRecord) (string, error) {
	if len(records) == 0 {
		return NoDataText, nil
	}

	prompt := "당신은 (주)진주정보통신의 수석 비즈니스 컨설턴트입니다. " +
		"다음 입찰 데이터를 분석하여 경영진이 즉시 참고할 수 있는 전략적 통찰 한 줄을 한국어로 작성해주세요:\n" +
		Summarize(records, c.sampleSize)

	text, err := c.policy.Do(ctx, func(ctx context.Context) (string, error) {
		return c.gen.Generate(ctx, prompt)
	})
	if err != nil {
		if errors.Is(err, ErrQuotaExhausted) {
			c.log.WithError(err).Warn("insight quota exhausted")
			return "", err
		}
		c.log.WithError(err).Error("insight request failed")
		return UnavailableText, nil
	}
	return text, nil
}

// RequestMessage маркетинговое сообщение для одной записи. Ошибки возвращаются как есть.
func (c *Client) RequestMessage(ctx context.Context, rec models.BidRecord, kind MessageKind) (string, error) {
	prompt := MessagePrompt(rec, kind)
	text, err := c.policy.Do(ctx, func(ctx context.Context) (string, error) {
		return c.gen.Generate(ctx, prompt)
	})
	if err != nil {
		c.log.WithError(err).WithFields(logger.Fields{"id": rec.ID, "kind": kind}).Warn("message request failed")
		return "", fmt.Errorf("generate %s message: %w", kind, err)
	}
	return text, nil
}

var capabilities = map[models.Category]string{
	models.CategoryTelecom:    "지능형 CCTV 통합 보안 솔루션, AI 기반 장애 예측 네트워크 시스템, 초고속 광대역 망 고도화 및 데이터센터 인프라 최적화 기술",
	models.CategoryElectrical: "에너지 효율 극대화 스마트 배전 솔루션, 고압 수변전 설비 정밀 진단 및 시공, 신재생 에너지 연계 마이크로그리드 시스템 구축 역량",
	models.CategoryFireSafety: "IoT 연동 실시간 화재 감지 및 자동 진압 시스템, 무결점 소방 방재 통합 관제 솔루션, 강화된 소방법규를 상회하는 최고 수준의 내화 공법",
}

const defaultCapability = "스마트 시티 구현을 위한 종합 엔지니어링 및 융복합 시설물 관리 솔루션"

// Capability ключевые технологии компании для сферы записи
func Capability(c models.Category) string {
	if v, ok := capabilities[c]; ok {
		return v
	}
	return defaultCapability
}

// MessagePrompt промпт делового письма. Подпись обязательна в тексте промпта.
func MessagePrompt(rec models.BidRecord, kind MessageKind) string {
	recipient := "귀사"
	if rec.Award != nil && rec.Award.WinnerName != "" {
		recipient = rec.Award.WinnerName
	}
	capability := Capability(rec.Category)

	opening := fmt.Sprintf(
		"   - '%s'가 확보한 '%s' 수주의 쾌거를 진심으로 축하하며, 해당 사업이 발주처('%s')의 핵심 과제임을 인지하고 있음을 보여주세요.",
		recipient, rec.Title, rec.Organization)
	if kind == Proposal {
		opening = fmt.Sprintf(
			"   - '%s'가 추진 중인 '%s' 사업이 발주처('%s')의 핵심 과제임을 인지하고 있음을 보여주고, 성공적 수행을 위한 협력 의지를 밝히세요.",
			recipient, rec.Title, rec.Organization)
	}

	return fmt.Sprintf(`
당신은 대한민국 ICT 및 시설 공사 분야의 선두주자인 '(주)진주정보통신'의 전략영업 부사장입니다.
상대 업체가 '이 업체와 함께하면 사업의 리스크가 줄고 수익이 극대화되겠다'는 확신을 가질 수 있도록 매우 구체적이고 알찬 비즈니스 협력 %s 메시지를 작성하십시오.

[분석 데이터]
- 프로젝트: %s
- 발주처: %s
- 사업분야: %s (핵심 기술: %s)
- 수신 업체: %s

[메시지 작성 지침]
1. [사업 가치 분석]:
%s
   - 업계 전문가로서 해당 프로젝트가 갖는 기술적 난이도와 중요성을 높이 평가하십시오.
2. [차별화된 기술 솔루션 제시]:
   - (주)진주정보통신이 보유한 '%s'를 프로젝트 현장에 어떻게 접목할 수 있는지 구체적인 시나리오를 제시하세요.
3. [파트너사가 얻게 될 3대 실질 이익]:
   - [원가 경쟁력] 효율적인 자재 수급 네트워크와 전문 인력 직접 투입을 통한 시공 단가 최적화.
   - [무결점 품질] 국가 표준 이상의 시공 품질과 철저한 준공 검사 지원으로 발주처 신뢰도 확보.
   - [행정 및 설계 지원] 인허가 절차 및 설계 변경 상황에 대한 전문가 그룹의 실시간 대응.
4. [전략적 파트너십 제안 및 마무리]:
   - 단순 하도급 관계가 아닌 상생 모델을 제안하고, 미팅을 정중히 요청하십시오.

[작성 형식]
- 분량: 공백 포함 600자 ~ 900자 내외.
- 어조: 신뢰와 권위가 느껴지는 최고급 비즈니스 경어체.
- 하단 필수 포함: "%s"
`, kind.Label(), rec.Title, rec.Organization, rec.Category.Label(), capability, recipient, opening, capability, Signature)
}
