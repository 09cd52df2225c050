package services

import (
	"context"

	"bunq-wrapped/internal/models"
)

// GeneratorInterface is the boundary contract with the external
// text-generation backend. One blocking call per invocation: the
// streamed response is fully accumulated before Generate returns.
// Implementations must not retry, cache, or rate limit.
type GeneratorInterface interface {
	Generate(ctx context.Context, prompt, systemMessage string) (string, error)
}

// ReportServiceInterface assembles the year-in-review report from a
// transaction dataset. Each metric is also exposed on its own; all of
// them treat the dataset as immutable and return a default-valued
// result for inputs with no qualifying rows.
type ReportServiceInterface interface {
	GenerateReport(ctx context.Context, transactions []models.Transaction) models.Report

	WorstNight(transactions []models.Transaction) models.NightSummary
	TopSender(transactions []models.Transaction) models.PersonAmount
	TopReceiver(transactions []models.Transaction) models.PersonAmount
	LargestExpense(transactions []models.Transaction) models.ExpenseSummary
	SpendingPlaylist(ctx context.Context, transactions []models.Transaction) models.Playlist
	PeakSpendingHour(transactions []models.Transaction) models.HourInsight
	TopPlace(transactions []models.Transaction) models.PlaceSummary
	PurchaseStats(transactions []models.Transaction) models.PurchaseStats
	YearSlogan(ctx context.Context, transactions []models.Transaction) models.Slogan
	TransferMashup(transactions []models.Transaction) models.TransferMashup
}

// MetricsRecorderInterface defines operational metrics recording
type MetricsRecorderInterface interface {
	RecordReportGenerated(durationMs float64, entries int)
	RecordGenerationCall(metric, status string, durationMs float64)
	RecordTransactionsIngested(accepted, rejected int)
}
