package models

// Result shapes for the year-in-review report. Each metric produces one
// of these; the report is the ordered sequence of all ten. Positions are
// part of the output contract, so entries carry no metric identifiers.

// NightSummary is the night with the most total spending. A night runs
// from 20:00 to 06:00 and is keyed by the calendar date it started on.
type NightSummary struct {
	Date   *string `json:"date"`
	Amount float64 `json:"amount"`
}

// PersonAmount names a person and a total amount moved to or from them.
type PersonAmount struct {
	Name   *string `json:"name"`
	Amount float64 `json:"amount"`
}

// ExpenseSummary is the single largest expense of the year.
type ExpenseSummary struct {
	Amount  float64 `json:"amount"`
	Expense *string `json:"expense"`
	Date    *string `json:"date"`
}

// Playlist is the generated soundtrack for the top expenses. Error is
// set when the text-generation backend failed and the entry degraded.
type Playlist struct {
	Songs []string `json:"songs"`
	Error string   `json:"error,omitempty"`
}

// HourInsight is the hour of day with the heaviest spending.
type HourInsight struct {
	Hour *string `json:"hour"`
	Desc string  `json:"desc"`
}

// PlaceSummary is the merchant that received the most money.
type PlaceSummary struct {
	Place    *string `json:"place"`
	NrVisits int     `json:"nr_visits"`
	Amount   float64 `json:"amount"`
}

// PurchaseStats counts all transactions over the year.
type PurchaseStats struct {
	NrPurchases int     `json:"nr_purchases"`
	AvgDay      float64 `json:"avg_day"`
}

// Slogan is the generated one-line summary of the year. Error is set
// when the text-generation backend failed and the entry degraded.
type Slogan struct {
	Desc  string `json:"desc"`
	Error string `json:"error,omitempty"`
}

// TransferMashup names the person with the most transfers either way.
type TransferMashup struct {
	Name        *string `json:"name"`
	NrTransfers int     `json:"nr_transfers"`
}

// Report is the ordered sequence of the ten metric results.
type Report []any
