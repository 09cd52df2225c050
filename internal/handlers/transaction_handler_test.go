package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bunq-wrapped/internal/dto"
	apierrors "bunq-wrapped/internal/errors"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

type TransactionHandlerTestSuite struct {
	suite.Suite
	echo    *echo.Echo
	repo    *stubTransactionRepo
	handler *TransactionHandler
}

func TestTransactionHandlerSuite(t *testing.T) {
	suite.Run(t, new(TransactionHandlerTestSuite))
}

func (s *TransactionHandlerTestSuite) SetupTest() {
	s.echo = echo.New()
	s.echo.Validator = NewValidator()
	s.repo = &stubTransactionRepo{}
	s.handler = NewTransactionHandler(s.repo, nil)
}

func (s *TransactionHandlerTestSuite) post(body string) (*httptest.ResponseRecorder, error) {
	req := httptest.NewRequest(http.MethodPost, "/transactions", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	return rec, s.handler.IngestTransactions(c)
}

func (s *TransactionHandlerTestSuite) TestIngestTransactions_ValidBatch_Returns201() {
	rec, err := s.post(`{
		"transactions": [
			{"amount": "-42.50", "transaction_description": "Groceries", "user_type": "COMPANY"},
			{"amount": 100.00, "counterparty_name": "Alice", "user_type": "PERSON"}
		]
	}`)

	s.Require().NoError(err)
	s.Equal(http.StatusCreated, rec.Code)

	var response dto.IngestResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal(2, response.Accepted)
	s.Empty(response.Rejected)
	s.Len(s.repo.created, 2)
}

func (s *TransactionHandlerTestSuite) TestIngestTransactions_BadRecords_ReportedByPosition() {
	rec, err := s.post(`{
		"transactions": [
			{"amount": "-42.50"},
			{"counterparty_name": "no amount"},
			{"amount": "5.00", "user_type": "ROBOT"}
		]
	}`)

	s.Require().NoError(err)
	s.Equal(http.StatusCreated, rec.Code)

	var response dto.IngestResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal(1, response.Accepted)
	s.Require().Len(response.Rejected, 2)
	s.Contains(response.Rejected[0], "transactions[1]")
	s.Contains(response.Rejected[1], "transactions[2]")
	s.Len(s.repo.created, 1)
}

func (s *TransactionHandlerTestSuite) TestIngestTransactions_EmptyBatch_Returns400() {
	rec, err := s.post(`{"transactions": []}`)

	s.Require().NoError(err)
	s.Equal(http.StatusBadRequest, rec.Code)

	var response apierrors.ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal(string(apierrors.TransactionEmptyBatch), response.Error.Code)
}

func (s *TransactionHandlerTestSuite) TestIngestTransactions_MalformedBody_Returns400() {
	rec, err := s.post(`{"transactions": [`)

	s.Require().NoError(err)
	s.Equal(http.StatusBadRequest, rec.Code)

	var response apierrors.ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal(string(apierrors.ValidationInvalidFormat), response.Error.Code)
}

func (s *TransactionHandlerTestSuite) TestIngestTransactions_MissingTransactionsField_FailsValidation() {
	_, err := s.post(`{}`)

	// Validation errors bubble up to the central error handler.
	s.Error(err)
}

func (s *TransactionHandlerTestSuite) TestIngestTransactions_StoreFailure_Returns500() {
	s.repo.createErr = errors.New("database locked")

	rec, err := s.post(`{"transactions": [{"amount": "-1.00"}]}`)

	s.Require().NoError(err)
	s.Equal(http.StatusInternalServerError, rec.Code)

	var response apierrors.ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal(string(apierrors.TransactionStoreFailure), response.Error.Code)
	s.NotContains(rec.Body.String(), "database locked")
}
