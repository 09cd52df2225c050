package repositories

import (
	"bunq-wrapped/internal/models"
)

// TransactionRepositoryInterface defines the contract for transaction
// repository operations. GetAll returns rows in insertion order: the
// dataset's original order carries the report's tie-break semantics.
type TransactionRepositoryInterface interface {
	CreateBatch(transactions []*models.Transaction) error
	GetAll() ([]models.Transaction, error)
	Count() (int64, error)
}
