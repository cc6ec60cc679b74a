package models

import (
	"encoding/json"
	"time"
)

// DateLayout формат дат в записях и фильтрах (YYYY-MM-DD, сравнивается как строка)
const DateLayout = "2006-01-02"

// Outcome результат записи: открытый конкурс или итог
type Outcome string

const (
	OutcomeOpen    Outcome = "OPEN"
	OutcomeAwarded Outcome = "AWARDED"
)

// Label возвращает подпись, которую показывает дашборд
func (o Outcome) Label() string {
	switch o {
	case OutcomeAwarded:
		return "낙찰"
	case OutcomeOpen:
		return "입찰"
	}
	return string(o)
}

// ParseOutcome принимает как имя, так и подпись
func ParseOutcome(s string) (Outcome, bool) {
	switch s {
	case string(OutcomeOpen), "입찰":
		return OutcomeOpen, true
	case string(OutcomeAwarded), "낙찰":
		return OutcomeAwarded, true
	}
	return "", false
}

// Category сфера работ
type Category string

const (
	CategoryTelecom    Category = "TELECOM"
	CategoryElectrical Category = "ELECTRICAL"
	CategoryFireSafety Category = "FIRE_SAFETY"
)

// Categories все сферы в фиксированном порядке
var Categories = []Category{CategoryTelecom, CategoryElectrical, CategoryFireSafety}

func (c Category) Label() string {
	switch c {
	case CategoryTelecom:
		return "정보통신"
	case CategoryElectrical:
		return "전기"
	case CategoryFireSafety:
		return "소방"
	}
	return string(c)
}

func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories {
		if s == string(c) || s == c.Label() {
			return c, true
		}
	}
	return "", false
}

// Contact контакты победителя
type Contact struct {
	Phone string `json:"phone"`
	Email string `json:"email"`
	Fax   string `json:"fax"`
}

// Award данные итога. Есть только у записей с результатом AWARDED.
type Award struct {
	AwardPrice    int64   `json:"awardPrice"`
	WinnerName    string  `json:"winner"`
	WinnerContact Contact `json:"winnerContact"`
	WinRate       float64 `json:"winRate"`
}

// Сущность участника торгов
type Participant struct {
	CompanyName string  `json:"companyName"`
	IsWinner    bool    `json:"isWinner"`
	BidRate     float64 `json:"bidRate"`
	AwardPrice  int64   `json:"awardPrice,omitempty"`
	Phone       string  `json:"phone,omitempty"`
	Email       string  `json:"email,omitempty"`
	Fax         string  `json:"fax,omitempty"`
}

// Сущность записи о закупке. Создается один раз и больше не меняется.
type BidRecord struct {
	ID            string
	NoticeNumber  string
	Category      Category
	OpenDate      time.Time
	CloseDate     time.Time
	Title         string
	Organization  string
	Region        string
	BasePrice     int64
	Award         *Award
	Participants  []Participant
	Link          string
	ProjectScope  string
	SpecDetails   []string
	EquipmentList []string
}

// Outcome выводится из наличия итога, поэтому поля победителя не могут разойтись со статусом
func (b BidRecord) Outcome() Outcome {
	if b.Award != nil {
		return OutcomeAwarded
	}
	return OutcomeOpen
}

// EffectivePrice цена итога, если она есть, иначе базовая
func (b BidRecord) EffectivePrice() int64 {
	if b.Award != nil && b.Award.AwardPrice > 0 {
		return b.Award.AwardPrice
	}
	return b.BasePrice
}

func (b BidRecord) OpenDay() string  { return b.OpenDate.Format(DateLayout) }
func (b BidRecord) CloseDay() string { return b.CloseDate.Format(DateLayout) }

// Winner возвращает участника-победителя
func (b BidRecord) Winner() (Participant, bool) {
	for _, p := range b.Participants {
		if p.IsWinner {
			return p, true
		}
	}
	return Participant{}, false
}

type bidRecordJSON struct {
	ID            string        `json:"id"`
	NoticeNumber  string        `json:"bidNo"`
	Type          string        `json:"type"`
	Outcome       Outcome       `json:"outcome"`
	Category      string        `json:"category"`
	CategoryCode  Category      `json:"categoryCode"`
	OpenDate      string        `json:"openDate"`
	CloseDate     string        `json:"closeDate"`
	Title         string        `json:"title"`
	Organization  string        `json:"organization"`
	Region        string        `json:"region"`
	BasePrice     int64         `json:"basePrice"`
	AwardPrice    *int64        `json:"awardPrice,omitempty"`
	Winner        string        `json:"winner,omitempty"`
	WinnerContact *Contact      `json:"winnerContact,omitempty"`
	WinRate       *float64      `json:"winRate,omitempty"`
	Participants  []Participant `json:"participants"`
	Link          string        `json:"link"`
	ProjectScope  string        `json:"projectScope,omitempty"`
	SpecDetails   []string      `json:"specDetails,omitempty"`
	EquipmentList []string      `json:"equipmentList,omitempty"`
}

// MarshalJSON отдает плоский объект в том виде, который ждет фронтенд
func (b BidRecord) MarshalJSON() ([]byte, error) {
	out := bidRecordJSON{
		ID:            b.ID,
		NoticeNumber:  b.NoticeNumber,
		Type:          b.Outcome().Label(),
		Outcome:       b.Outcome(),
		Category:      b.Category.Label(),
		CategoryCode:  b.Category,
		OpenDate:      b.OpenDay(),
		CloseDate:     b.CloseDay(),
		Title:         b.Title,
		Organization:  b.Organization,
		Region:        b.Region,
		BasePrice:     b.BasePrice,
		Participants:  b.Participants,
		Link:          b.Link,
		ProjectScope:  b.ProjectScope,
		SpecDetails:   b.SpecDetails,
		EquipmentList: b.EquipmentList,
	}
	if b.Award != nil {
		a := *b.Award
		out.AwardPrice = &a.AwardPrice
		out.Winner = a.WinnerName
		out.WinnerContact = &a.WinnerContact
		out.WinRate = &a.WinRate
	}
	if out.Participants == nil {
		out.Participants = []Participant{}
	}
	return json.Marshal(out)
}
