package document

import (
	"fmt"
	"strings"

	"biddashboard/models"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	ContentType = "text/plain; charset=utf-8"
	attribution = "본 문서는 진주정보통신 입찰마스터에서 생성된 공식 리포트입니다."
)

var printer = message.NewPrinter(language.Korean)

// FormatWon сумма с разделителями разрядов
func FormatWon(amount int64) string {
	return printer.Sprintf("%d", amount)
}

// SpecTitle заголовок технических условий для сферы
func SpecTitle(c models.Category) string {
	switch c {
	case models.CategoryElectrical:
		return "전기설비 공사 표준 시방서"
	case models.CategoryFireSafety:
		return "소방시설 설치 및 정비 시방서"
	}
	return "정보통신공사 세부 기술 시방서"
}

// FileName имя файла выгрузки
func FileName(rec models.BidRecord) string {
	return rec.NoticeNumber + "_상세정보.txt"
}

// Render текстовая выгрузка записи в фиксированном порядке полей
func Render(rec models.BidRecord) string {
	var b strings.Builder

	fmt.Fprintf(&b, "[%s] %s\n", rec.Category.Label(), rec.Title)
	fmt.Fprintf(&b, "공고번호: %s\n", rec.NoticeNumber)
	fmt.Fprintf(&b, "수요기관: %s\n", rec.Organization)
	fmt.Fprintf(&b, "금액: %s원\n", FormatWon(rec.BasePrice))
	fmt.Fprintf(&b, "상태: %s\n", rec.Outcome().Label())

	b.WriteString("\n[공사개요]\n")
	b.WriteString(rec.ProjectScope)
	b.WriteString("\n\n[기술 시방]\n")
	for i, s := range rec.SpecDetails {
		fmt.Fprintf(&b, "%d. %s\n", i+1, s)
	}
	b.WriteString("\n[주요 자재]\n")
	b.WriteString(strings.Join(rec.EquipmentList, ", "))
	b.WriteString("\n\n")
	b.WriteString(attribution)

	return b.String()
}
