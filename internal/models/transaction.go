package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	UserTypeCompany = "COMPANY"
	UserTypePerson  = "PERSON"
)

var ErrInvalidUserType = errors.New("invalid counterparty user type")

// timestampLayouts are the accepted formats for the updated timestamp,
// tried in order. The bunq sandbox delivers the space-separated
// microsecond variant; ISO-8601 forms are accepted as well.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.000000",
	"2006-01-02 15:04:05",
}

// Transaction is a single validated payment record. The amount sign is
// the single source of truth for direction: negative amounts leave the
// account, positive amounts enter it. Optional fields are pointers and
// stay nil when the upstream record omitted them; Timestamp is nil when
// the raw timestamp was absent or unparseable.
type Transaction struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Seq              int64           `gorm:"autoIncrement;uniqueIndex" json:"-"`
	Amount           decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Description      *string         `gorm:"type:text" json:"transaction_description,omitempty"`
	CounterpartyName *string         `gorm:"type:varchar(255)" json:"counterparty_name,omitempty"`
	PlaceName        *string         `gorm:"type:varchar(255)" json:"place_name,omitempty"`
	Category         *string         `gorm:"type:varchar(100)" json:"category,omitempty"`
	UserType         string          `gorm:"type:varchar(20)" json:"user_type,omitempty"`
	Timestamp        *time.Time      `json:"updated_timestamp,omitempty"`
	CreatedAt        time.Time       `gorm:"not null" json:"-"`
}

// BeforeCreate hook for Transaction
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	return t.Validate()
}

// Validate validates the transaction fields
func (t *Transaction) Validate() error {
	if !IsValidUserType(t.UserType) {
		return ErrInvalidUserType
	}
	return nil
}

// TableName returns the table name for Transaction
func (t *Transaction) TableName() string {
	return "transactions"
}

// IsSpend reports whether money left the account.
func (t *Transaction) IsSpend() bool {
	return t.Amount.IsNegative()
}

// IsReceipt reports whether money entered the account.
func (t *Transaction) IsReceipt() bool {
	return t.Amount.IsPositive()
}

// IsCompany reports whether the counterparty is a business.
func (t *Transaction) IsCompany() bool {
	return t.UserType == UserTypeCompany
}

// IsPerson reports whether the counterparty is a private individual.
func (t *Transaction) IsPerson() bool {
	return t.UserType == UserTypePerson
}

// IsValidUserType checks if the counterparty user type is valid.
// An empty user type is allowed: upstream records may omit it, and the
// affected metrics simply skip such rows.
func IsValidUserType(userType string) bool {
	switch userType {
	case "", UserTypeCompany, UserTypePerson:
		return true
	default:
		return false
	}
}

// ParseTimestamp parses a raw timestamp string, trying the accepted
// layouts in order. Returns nil for empty or unparseable input rather
// than an error: a bad timestamp only excludes the record from
// time-based metrics, it never rejects the record.
func ParseTimestamp(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return &ts
		}
	}
	return nil
}
