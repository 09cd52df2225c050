package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"bunq-wrapped/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	// SloganExpenseLimit caps how many company expenses are fed to the
	// slogan prompt.
	SloganExpenseLimit = 100
	// PlaylistSize is the number of expenses turned into songs and the
	// maximum number of songs returned.
	PlaylistSize = 5

	daysPerYear = 365
)

// Fixed narrative texts for the peak spending hour, one per time-of-day
// band plus the two no-data cases.
const (
	hourDescNoData    = "No data, no damage. You're either broke or a budgeting ninja. 🥷💸"
	hourDescNoSpend   = "Your wallet slept while the world spent. 💤💳"
	hourDescNight     = "Nothing good happens after midnight, except maybe online shopping. 🌙📦"
	hourDescMorning   = "Coffee, croissants, and questionable financial decisions. ☕🥐💸"
	hourDescAfternoon = "Peak productivity or peak procrastination with a side of spending? ⏰🛒"
	hourDescEvening   = "Spending therapy hits different after dark. 🌆🤑"
)

type reportService struct {
	generator GeneratorInterface
	metrics   MetricsRecorderInterface
}

// NewReportService creates the report assembler. The generator backs the
// two generative metrics; the metrics recorder may be nil.
func NewReportService(generator GeneratorInterface, metrics MetricsRecorderInterface) ReportServiceInterface {
	return &reportService{
		generator: generator,
		metrics:   metrics,
	}
}

// GenerateReport runs all ten metrics over the same immutable dataset
// and returns their results in the fixed report order. Metrics are
// independent and evaluated concurrently; only the output positions are
// ordered. A failing generative metric degrades its own entry instead
// of aborting the report, so GenerateReport always yields ten entries.
func (s *reportService) GenerateReport(ctx context.Context, transactions []models.Transaction) models.Report {
	started := time.Now()

	var entries [10]any
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error { entries[0] = s.WorstNight(transactions); return nil })
	g.Go(func() error { entries[1] = s.TopSender(transactions); return nil })
	g.Go(func() error { entries[2] = s.TopReceiver(transactions); return nil })
	g.Go(func() error { entries[3] = s.LargestExpense(transactions); return nil })
	g.Go(func() error { entries[4] = s.SpendingPlaylist(gctx, transactions); return nil })
	g.Go(func() error { entries[5] = s.PeakSpendingHour(transactions); return nil })
	g.Go(func() error { entries[6] = s.TopPlace(transactions); return nil })
	g.Go(func() error { entries[7] = s.PurchaseStats(transactions); return nil })
	g.Go(func() error { entries[8] = s.YearSlogan(gctx, transactions); return nil })
	g.Go(func() error { entries[9] = s.TransferMashup(transactions); return nil })

	// Closures never return an error; Wait only synchronizes.
	_ = g.Wait()

	if s.metrics != nil {
		s.metrics.RecordReportGenerated(float64(time.Since(started).Milliseconds()), len(entries))
	}

	slog.Info("report generated",
		"transaction_count", len(transactions),
		"duration_ms", time.Since(started).Milliseconds())

	return entries[:]
}

// WorstNight finds the night with the most total spending. A spend
// belongs to a night when it happened at 20:00 or later (that calendar
// date) or before 06:00 (the previous calendar date); daytime spending
// is excluded.
func (s *reportService) WorstNight(transactions []models.Transaction) models.NightSummary {
	sums := make(map[string]decimal.Decimal)
	var order []string

	for i := range transactions {
		t := &transactions[i]
		if t.Timestamp == nil || !t.IsSpend() {
			continue
		}

		var night time.Time
		switch hour := t.Timestamp.Hour(); {
		case hour >= 20:
			night = *t.Timestamp
		case hour < 6:
			night = t.Timestamp.AddDate(0, 0, -1)
		default:
			continue
		}

		key := night.Format("2006-01-02")
		if _, seen := sums[key]; !seen {
			order = append(order, key)
		}
		sums[key] = sums[key].Add(t.Amount)
	}

	if len(order) == 0 {
		return models.NightSummary{Date: nil, Amount: 0}
	}

	best := order[0]
	for _, key := range order[1:] {
		if sums[key].LessThan(sums[best]) {
			best = key
		}
	}

	night, _ := time.Parse("2006-01-02", best)
	label := night.Format("January 02")
	return models.NightSummary{
		Date:   &label,
		Amount: roundAbs(sums[best]),
	}
}

// TopSender finds the person who sent the most money to the account.
func (s *reportService) TopSender(transactions []models.Transaction) models.PersonAmount {
	sums, order := sumByCounterparty(transactions, func(t *models.Transaction) bool {
		return t.IsReceipt() && t.IsPerson()
	})
	if len(order) == 0 {
		return models.PersonAmount{Name: nil, Amount: 0}
	}

	best := order[0]
	for _, name := range order[1:] {
		if sums[name].GreaterThan(sums[best]) {
			best = name
		}
	}
	return models.PersonAmount{Name: &best, Amount: round2(sums[best])}
}

// TopReceiver finds the person who received the most money from the
// account.
func (s *reportService) TopReceiver(transactions []models.Transaction) models.PersonAmount {
	sums, order := sumByCounterparty(transactions, func(t *models.Transaction) bool {
		return t.IsSpend() && t.IsPerson()
	})
	if len(order) == 0 {
		return models.PersonAmount{Name: nil, Amount: 0}
	}

	best := order[0]
	for _, name := range order[1:] {
		if sums[name].LessThan(sums[best]) {
			best = name
		}
	}
	return models.PersonAmount{Name: &best, Amount: roundAbs(sums[best])}
}

// LargestExpense finds the single most negative transaction.
func (s *reportService) LargestExpense(transactions []models.Transaction) models.ExpenseSummary {
	var best *models.Transaction
	for i := range transactions {
		t := &transactions[i]
		if !t.IsSpend() {
			continue
		}
		if best == nil || t.Amount.LessThan(best.Amount) {
			best = t
		}
	}

	if best == nil {
		return models.ExpenseSummary{Amount: 0, Expense: nil, Date: nil}
	}

	result := models.ExpenseSummary{
		Amount:  roundAbs(best.Amount),
		Expense: best.Description,
	}
	if best.Timestamp != nil {
		date := best.Timestamp.Format("2006-01-02")
		result.Date = &date
	}
	return result
}

// TopPlace finds the merchant that received the most money. The vendor
// is the place name when present, otherwise the counterparty name;
// rows without either are excluded.
func (s *reportService) TopPlace(transactions []models.Transaction) models.PlaceSummary {
	sums := make(map[string]decimal.Decimal)
	counts := make(map[string]int)
	var order []string

	for i := range transactions {
		t := &transactions[i]
		if !t.IsSpend() || !t.IsCompany() {
			continue
		}
		vendor := vendorName(t)
		if vendor == "" {
			continue
		}
		if _, seen := sums[vendor]; !seen {
			order = append(order, vendor)
		}
		sums[vendor] = sums[vendor].Add(t.Amount)
		counts[vendor]++
	}

	if len(order) == 0 {
		return models.PlaceSummary{Place: nil, NrVisits: 0, Amount: 0}
	}

	best := order[0]
	for _, vendor := range order[1:] {
		if sums[vendor].LessThan(sums[best]) {
			best = vendor
		}
	}
	return models.PlaceSummary{
		Place:    &best,
		NrVisits: counts[best],
		Amount:   roundAbs(sums[best]),
	}
}

// PeakSpendingHour finds the hour of day with the heaviest spending and
// picks the narrative for its time-of-day band.
func (s *reportService) PeakSpendingHour(transactions []models.Transaction) models.HourInsight {
	if len(transactions) == 0 {
		return models.HourInsight{Hour: nil, Desc: hourDescNoData}
	}

	sums := make(map[int]decimal.Decimal)
	var order []int

	for i := range transactions {
		t := &transactions[i]
		if t.Timestamp == nil || !t.IsSpend() {
			continue
		}
		hour := t.Timestamp.Hour()
		if _, seen := sums[hour]; !seen {
			order = append(order, hour)
		}
		sums[hour] = sums[hour].Add(t.Amount)
	}

	if len(order) == 0 {
		return models.HourInsight{Hour: nil, Desc: hourDescNoSpend}
	}

	best := order[0]
	for _, hour := range order[1:] {
		if sums[hour].LessThan(sums[best]) {
			best = hour
		}
	}

	label := fmt.Sprintf("%02d:00", best)
	var desc string
	switch {
	case best < 6:
		desc = hourDescNight
	case best < 12:
		desc = hourDescMorning
	case best < 18:
		desc = hourDescAfternoon
	default:
		desc = hourDescEvening
	}
	return models.HourInsight{Hour: &label, Desc: desc}
}

// PurchaseStats counts all transactions and averages them over the year.
func (s *reportService) PurchaseStats(transactions []models.Transaction) models.PurchaseStats {
	count := len(transactions)
	avg := decimal.NewFromInt(int64(count)).
		Div(decimal.NewFromInt(daysPerYear))
	return models.PurchaseStats{
		NrPurchases: count,
		AvgDay:      round2(avg),
	}
}

// TransferMashup finds the person with the most transfers in either
// direction.
func (s *reportService) TransferMashup(transactions []models.Transaction) models.TransferMashup {
	counts := make(map[string]int)
	var order []string

	for i := range transactions {
		t := &transactions[i]
		if !t.IsPerson() || t.CounterpartyName == nil {
			continue
		}
		name := *t.CounterpartyName
		if _, seen := counts[name]; !seen {
			order = append(order, name)
		}
		counts[name]++
	}

	if len(order) == 0 {
		return models.TransferMashup{Name: nil, NrTransfers: 0}
	}

	best := order[0]
	for _, name := range order[1:] {
		if counts[name] > counts[best] {
			best = name
		}
	}
	return models.TransferMashup{Name: &best, NrTransfers: counts[best]}
}

// YearSlogan feeds the top company expenses to the text-generation
// backend and returns a sanitized one-line slogan. A backend failure
// degrades the entry; an empty company subset skips the call entirely.
func (s *reportService) YearSlogan(ctx context.Context, transactions []models.Transaction) models.Slogan {
	var companies []models.Transaction
	for i := range transactions {
		if transactions[i].IsCompany() {
			companies = append(companies, transactions[i])
		}
	}
	if len(companies) == 0 {
		return models.Slogan{Desc: ""}
	}

	sort.SliceStable(companies, func(i, j int) bool {
		return companies[i].Amount.LessThan(companies[j].Amount)
	})
	if len(companies) > SloganExpenseLimit {
		companies = companies[:SloganExpenseLimit]
	}

	raw, err := s.generate(ctx, "year_slogan", buildSloganPrompt(companies), "")
	if err != nil {
		slog.Error("year slogan generation failed", "error", err)
		return models.Slogan{Desc: "", Error: err.Error()}
	}
	return models.Slogan{Desc: SanitizeSlogan(raw)}
}

// SpendingPlaylist turns the most painful expenses into a generated
// playlist. A backend failure degrades the entry; no eligible expenses
// yield an empty playlist without a call.
func (s *reportService) SpendingPlaylist(ctx context.Context, transactions []models.Transaction) models.Playlist {
	var spends []models.Transaction
	for i := range transactions {
		t := &transactions[i]
		if t.IsSpend() && t.Description != nil {
			spends = append(spends, *t)
		}
	}
	if len(spends) == 0 {
		return models.Playlist{Songs: []string{}}
	}

	sort.SliceStable(spends, func(i, j int) bool {
		return spends[i].Amount.LessThan(spends[j].Amount)
	})
	if len(spends) > PlaylistSize {
		spends = spends[:PlaylistSize]
	}

	raw, err := s.generate(ctx, "spending_playlist", buildPlaylistPrompt(spends), playlistSystemMessage)
	if err != nil {
		slog.Error("spending playlist generation failed", "error", err)
		return models.Playlist{Songs: []string{}, Error: err.Error()}
	}

	songs := SanitizeSongs(raw)
	if len(songs) > PlaylistSize {
		songs = songs[:PlaylistSize]
	}
	return models.Playlist{Songs: songs}
}

func (s *reportService) generate(ctx context.Context, metric, prompt, systemMessage string) (string, error) {
	started := time.Now()
	raw, err := s.generator.Generate(ctx, prompt, systemMessage)

	status := "success"
	if err != nil {
		status = "error"
	}
	if s.metrics != nil {
		s.metrics.RecordGenerationCall(metric, status, float64(time.Since(started).Milliseconds()))
	}
	return raw, err
}

// sumByCounterparty accumulates amounts per counterparty name over the
// rows matched by the filter, remembering first-appearance order of the
// names so that ties resolve to the earliest group in the dataset.
func sumByCounterparty(transactions []models.Transaction, match func(*models.Transaction) bool) (map[string]decimal.Decimal, []string) {
	sums := make(map[string]decimal.Decimal)
	var order []string

	for i := range transactions {
		t := &transactions[i]
		if !match(t) || t.CounterpartyName == nil {
			continue
		}
		name := *t.CounterpartyName
		if _, seen := sums[name]; !seen {
			order = append(order, name)
		}
		sums[name] = sums[name].Add(t.Amount)
	}
	return sums, order
}

// vendorName picks the vendor for a row: the place name when present,
// else the counterparty name. Trimmed; empty means no usable vendor.
func vendorName(t *models.Transaction) string {
	if t.PlaceName != nil {
		return strings.TrimSpace(*t.PlaceName)
	}
	if t.CounterpartyName != nil {
		return strings.TrimSpace(*t.CounterpartyName)
	}
	return ""
}

func round2(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func roundAbs(d decimal.Decimal) float64 {
	return d.Abs().Round(2).InexactFloat64()
}
