package handlers

import (
	"log/slog"
	"net/http"

	"bunq-wrapped/internal/errors"
	"bunq-wrapped/internal/repositories"
	"bunq-wrapped/internal/services"

	"github.com/labstack/echo/v4"
)

// ReportHandler serves the year-in-review report
type ReportHandler struct {
	transactionRepo repositories.TransactionRepositoryInterface
	reportService   services.ReportServiceInterface
}

// NewReportHandler creates a new report handler
func NewReportHandler(
	transactionRepo repositories.TransactionRepositoryInterface,
	reportService services.ReportServiceInterface,
) *ReportHandler {
	return &ReportHandler{
		transactionRepo: transactionRepo,
		reportService:   reportService,
	}
}

// GetReport generates the report from all stored transactions and
// returns the ordered array of ten metric results
func (h *ReportHandler) GetReport(c echo.Context) error {
	transactions, err := h.transactionRepo.GetAll()
	if err != nil {
		slog.Error("failed to load transactions for report",
			"trace_id", getTraceID(c),
			"error", err)
		return SendError(c, errors.ReportSourceUnavailable,
			errors.WithDetails("Could not read transaction records"))
	}

	report := h.reportService.GenerateReport(c.Request().Context(), transactions)

	return c.JSON(http.StatusOK, report)
}
