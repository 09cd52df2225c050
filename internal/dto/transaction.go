package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"bunq-wrapped/internal/models"

	"github.com/shopspring/decimal"
)

var ErrMissingAmount = errors.New("amount is required")

// RawTransaction mirrors one loosely-typed payment record as delivered
// by the banking collaborator. Everything except the amount may be
// absent or null; the amount may arrive as a JSON number or a string
// (the bunq API quotes it).
type RawTransaction struct {
	Amount           *json.Number `json:"amount"`
	Description      *string      `json:"transaction_description"`
	CounterpartyName *string      `json:"counterparty_name"`
	PlaceName        *string      `json:"place_name"`
	Category         *string      `json:"category"`
	UserType         *string      `json:"user_type"`
	UpdatedTimestamp *string      `json:"updated_timestamp"`
}

// IngestRequest is the payload for the transaction ingestion endpoint.
type IngestRequest struct {
	Transactions []RawTransaction `json:"transactions" validate:"required,dive"`
}

// IngestResponse reports how many records were accepted and which were
// rejected, by position in the submitted array.
type IngestResponse struct {
	Accepted int      `json:"accepted"`
	Rejected []string `json:"rejected,omitempty"`
}

// ToModel converts a raw record into a validated Transaction. Missing
// or unparseable amounts reject the record; every other field downgrades
// to its zero/nil form so that metrics exclude the record per metric
// instead of losing it entirely.
func (r *RawTransaction) ToModel() (*models.Transaction, error) {
	if r.Amount == nil {
		return nil, ErrMissingAmount
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(r.Amount.String()))
	if err != nil {
		return nil, fmt.Errorf("parsing amount %q: %w", r.Amount.String(), err)
	}

	tx := &models.Transaction{
		Amount:           amount,
		Description:      r.Description,
		CounterpartyName: r.CounterpartyName,
		PlaceName:        r.PlaceName,
		Category:         r.Category,
	}
	if r.UserType != nil {
		userType := strings.ToUpper(strings.TrimSpace(*r.UserType))
		if !models.IsValidUserType(userType) {
			return nil, fmt.Errorf("%w: %q", models.ErrInvalidUserType, *r.UserType)
		}
		tx.UserType = userType
	}
	if r.UpdatedTimestamp != nil {
		tx.Timestamp = models.ParseTimestamp(*r.UpdatedTimestamp)
	}
	return tx, nil
}
