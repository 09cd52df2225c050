package repositories

import (
	"fmt"

	"bunq-wrapped/internal/models"

	"gorm.io/gorm"
)

// transactionRepository implements TransactionRepositoryInterface
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) TransactionRepositoryInterface {
	return &transactionRepository{
		db: db,
	}
}

// CreateBatch inserts transactions preserving the order they arrived in
func (r *transactionRepository) CreateBatch(transactions []*models.Transaction) error {
	if len(transactions) == 0 {
		return nil
	}
	if err := r.db.Create(transactions).Error; err != nil {
		return fmt.Errorf("failed to create transactions: %w", err)
	}
	return nil
}

// GetAll retrieves every transaction in insertion order
func (r *transactionRepository) GetAll() ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := r.db.Order("seq ASC").Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}
	return transactions, nil
}

// Count returns the number of stored transactions
func (r *transactionRepository) Count() (int64, error) {
	var total int64
	if err := r.db.Model(&models.Transaction{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return total, nil
}
