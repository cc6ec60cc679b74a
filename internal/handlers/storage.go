package handlers

import (
	"context"

	"biddashboard/internal/insight"
	"biddashboard/models"
)

// FeedStore живая лента торгов
type FeedStore interface {
	Snapshot() []models.BidRecord
	Find(id string) (models.BidRecord, bool)
	Reset(records []models.BidRecord)
	Log(line string)
	Logs() []string
}

// RecordGenerator пакетная генерация для обновления ленты
type RecordGenerator interface {
	Generate(count int) []models.BidRecord
}

type InsightService interface {
	Insight(ctx context.Context, records []models.BidRecord) (insight.Result, error)
	Message(ctx context.Context, rec models.BidRecord, kind insight.MessageKind) (insight.Result, error)
}
