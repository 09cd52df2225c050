package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apierrors "bunq-wrapped/internal/errors"
	"bunq-wrapped/internal/middleware"
	"bunq-wrapped/internal/models"
	"bunq-wrapped/internal/services"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

// stubTransactionRepo is a hand-rolled repository double. Fields set the
// canned results; calls are recorded for assertions.
type stubTransactionRepo struct {
	transactions []models.Transaction
	getAllErr    error
	createErr    error
	created      []*models.Transaction
	count        int64
}

func (r *stubTransactionRepo) CreateBatch(transactions []*models.Transaction) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.created = append(r.created, transactions...)
	return nil
}

func (r *stubTransactionRepo) GetAll() ([]models.Transaction, error) {
	return r.transactions, r.getAllErr
}

func (r *stubTransactionRepo) Count() (int64, error) {
	return r.count, nil
}

// stubReportService overrides only GenerateReport; the embedded
// interface panics on anything else, which no handler should reach.
type stubReportService struct {
	services.ReportServiceInterface
	report models.Report
}

func (s *stubReportService) GenerateReport(ctx context.Context, transactions []models.Transaction) models.Report {
	return s.report
}

type ReportHandlerTestSuite struct {
	suite.Suite
	echo *echo.Echo
	repo *stubTransactionRepo
}

func TestReportHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReportHandlerTestSuite))
}

func (s *ReportHandlerTestSuite) SetupTest() {
	s.echo = echo.New()
	s.repo = &stubTransactionRepo{}
}

func (s *ReportHandlerTestSuite) TestGetReport_ReturnsOrderedEntries() {
	date := "March 14"
	report := make(models.Report, 0, 10)
	report = append(report,
		models.NightSummary{Date: &date, Amount: 55.00},
		models.PersonAmount{}, models.PersonAmount{},
		models.ExpenseSummary{},
		models.Playlist{Songs: []string{}},
		models.HourInsight{},
		models.PlaceSummary{},
		models.PurchaseStats{NrPurchases: 3, AvgDay: 0.01},
		models.Slogan{},
		models.TransferMashup{},
	)
	handler := NewReportHandler(s.repo, &stubReportService{report: report})

	req := httptest.NewRequest(http.MethodGet, "/report", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	err := handler.GetReport(c)

	s.Require().NoError(err)
	s.Equal(http.StatusOK, rec.Code)

	var decoded []json.RawMessage
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &decoded))
	s.Len(decoded, 10)

	var night models.NightSummary
	s.Require().NoError(json.Unmarshal(decoded[0], &night))
	s.Require().NotNil(night.Date)
	s.Equal("March 14", *night.Date)
}

func (s *ReportHandlerTestSuite) TestGetReport_RepositoryDown_Returns503() {
	s.repo.getAllErr = errors.New("disk on fire")
	handler := NewReportHandler(s.repo, &stubReportService{})

	req := httptest.NewRequest(http.MethodGet, "/report", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	c.Set(middleware.TraceIDContextKey, "trace-report")

	err := handler.GetReport(c)

	s.Require().NoError(err)
	s.Equal(http.StatusServiceUnavailable, rec.Code)

	var response apierrors.ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal(string(apierrors.ReportSourceUnavailable), response.Error.Code)
	s.Equal("trace-report", response.Error.TraceID)
	// Internal failure text never reaches the client.
	s.NotContains(rec.Body.String(), "disk on fire")
}
