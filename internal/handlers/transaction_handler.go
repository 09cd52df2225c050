package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"bunq-wrapped/internal/dto"
	"bunq-wrapped/internal/errors"
	"bunq-wrapped/internal/models"
	"bunq-wrapped/internal/repositories"
	"bunq-wrapped/internal/services"

	"github.com/labstack/echo/v4"
)

// TransactionHandler ingests raw transaction records
type TransactionHandler struct {
	transactionRepo repositories.TransactionRepositoryInterface
	metrics         services.MetricsRecorderInterface
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(
	transactionRepo repositories.TransactionRepositoryInterface,
	metrics services.MetricsRecorderInterface,
) *TransactionHandler {
	return &TransactionHandler{
		transactionRepo: transactionRepo,
		metrics:         metrics,
	}
}

// IngestTransactions accepts a batch of raw payment records, converts
// each to a validated transaction, and stores the accepted ones in
// arrival order. Records that fail conversion are reported by position
// without rejecting the rest of the batch.
func (h *TransactionHandler) IngestTransactions(c echo.Context) error {
	var req dto.IngestRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationInvalidFormat,
			errors.WithDetails("Request body must be a JSON object with a transactions array"))
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if len(req.Transactions) == 0 {
		return SendError(c, errors.TransactionEmptyBatch)
	}

	accepted := make([]*models.Transaction, 0, len(req.Transactions))
	var rejected []string
	for i := range req.Transactions {
		tx, err := req.Transactions[i].ToModel()
		if err != nil {
			rejected = append(rejected, fmt.Sprintf("transactions[%d]: %v", i, err))
			continue
		}
		accepted = append(accepted, tx)
	}

	if err := h.transactionRepo.CreateBatch(accepted); err != nil {
		slog.Error("failed to store ingested transactions",
			"trace_id", getTraceID(c),
			"count", len(accepted),
			"error", err)
		return SendError(c, errors.TransactionStoreFailure)
	}

	if h.metrics != nil {
		h.metrics.RecordTransactionsIngested(len(accepted), len(rejected))
	}

	slog.Info("transactions ingested",
		"trace_id", getTraceID(c),
		"accepted", len(accepted),
		"rejected", len(rejected))

	return c.JSON(http.StatusCreated, dto.IngestResponse{
		Accepted: len(accepted),
		Rejected: rejected,
	})
}
