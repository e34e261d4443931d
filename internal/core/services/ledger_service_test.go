package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/bizledger/bizledger_backend/internal/apperrors"
	"github.com/bizledger/bizledger_backend/internal/core/domain"
	portssvc "github.com/bizledger/bizledger_backend/internal/core/ports/services"
	"github.com/bizledger/bizledger_backend/internal/core/services"
	"github.com/bizledger/bizledger_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockTransactionRepository is a mock type for the TransactionRepositoryFacade interface
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, filter domain.LedgerFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, filter, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return args.Get(0).([]domain.Transaction), token, args.Error(2)
}

func (m *MockTransactionRepository) StreamTransactions(ctx context.Context, filter domain.LedgerFilter, fn func(domain.Transaction) error) error {
	args := m.Called(ctx, filter, fn)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	args := m.Called(ctx, transactionID)
	return args.Error(0)
}

// --- Test Suite Setup ---

type LedgerServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockLedgerRepo  *MockTransactionRepository
	service         portssvc.LedgerSvcFacade
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockLedgerRepo = new(MockTransactionRepository)
	suite.service = services.NewLedgerService(suite.mockAccountRepo, suite.mockLedgerRepo)
}

func (suite *LedgerServiceTestSuite) activeAccount(accountType domain.AccountType) *domain.Account {
	return &domain.Account{
		AccountID:   uuid.NewString(),
		Name:        "Till",
		AccountType: accountType,
		IsActive:    true,
	}
}

// --- Test Cases ---

func (suite *LedgerServiceTestSuite) TestPostTransaction_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	account := suite.activeAccount(domain.Cash)
	occurredAt := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	req := dto.PostTransactionRequest{
		AccountID:  account.AccountID,
		Amount:     decimal.NewFromInt(500),
		Direction:  domain.Credit,
		OccurredAt: &occurredAt,
		Source:     domain.SourceInvoice,
		Notes:      "March invoice settled",
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()
	suite.mockLedgerRepo.On("SaveTransaction", ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.AccountID == account.AccountID &&
			txn.Amount.Equal(req.Amount) &&
			txn.Direction == domain.Credit &&
			txn.OccurredAt.Equal(occurredAt) &&
			txn.Source == domain.SourceInvoice &&
			txn.CreatedBy == userID
	})).Return(nil).Once()

	txn, err := suite.service.PostTransaction(ctx, req, userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.NotEmpty(txn.TransactionID)
	suite.Equal(occurredAt, txn.OccurredAt)

	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestPostTransaction_DefaultsApplied() {
	ctx := context.Background()
	account := suite.activeAccount(domain.Bank)
	req := dto.PostTransactionRequest{
		AccountID: account.AccountID,
		Amount:    decimal.NewFromInt(75),
		Direction: domain.Debit,
		// OccurredAt and Source omitted
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()
	suite.mockLedgerRepo.On("SaveTransaction", ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.Source == domain.SourceManual && !txn.OccurredAt.IsZero()
	})).Return(nil).Once()

	txn, err := suite.service.PostTransaction(ctx, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal(domain.SourceManual, txn.Source)
	suite.WithinDuration(time.Now(), txn.OccurredAt, time.Second)

	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestPostTransaction_NonPositiveAmount() {
	ctx := context.Background()

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-10)} {
		req := dto.PostTransactionRequest{
			AccountID: uuid.NewString(),
			Amount:    amount,
			Direction: domain.Credit,
		}

		txn, err := suite.service.PostTransaction(ctx, req, uuid.NewString())

		suite.Require().Error(err)
		suite.Nil(txn)
		suite.ErrorIs(err, apperrors.ErrValidation)
	}

	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestPostTransaction_UnknownAccount() {
	ctx := context.Background()
	accountID := uuid.NewString()
	req := dto.PostTransactionRequest{
		AccountID: accountID,
		Amount:    decimal.NewFromInt(100),
		Direction: domain.Credit,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(nil, apperrors.ErrNotFound).Once()

	txn, err := suite.service.PostTransaction(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestPostTransaction_InactiveAccount() {
	ctx := context.Background()
	account := suite.activeAccount(domain.Cash)
	account.IsActive = false
	req := dto.PostTransactionRequest{
		AccountID: account.AccountID,
		Amount:    decimal.NewFromInt(100),
		Direction: domain.Credit,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()

	txn, err := suite.service.PostTransaction(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestGetTransactionByID_Success() {
	ctx := context.Background()
	expected := &domain.Transaction{
		TransactionID: uuid.NewString(),
		AccountID:     uuid.NewString(),
		Amount:        decimal.NewFromInt(250),
		Direction:     domain.Credit,
	}

	suite.mockLedgerRepo.On("FindTransactionByID", ctx, expected.TransactionID).Return(expected, nil).Once()

	txn, err := suite.service.GetTransactionByID(ctx, expected.TransactionID)

	suite.Require().NoError(err)
	suite.Equal(expected, txn)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestGetTransactionByID_NotFound() {
	ctx := context.Background()
	testID := uuid.NewString()

	suite.mockLedgerRepo.On("FindTransactionByID", ctx, testID).Return(nil, apperrors.ErrNotFound).Once()

	txn, err := suite.service.GetTransactionByID(ctx, testID)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *LedgerServiceTestSuite) TestListTransactions_Success() {
	ctx := context.Background()
	from := "2026-01-01"
	to := "2026-02-01"
	params := dto.ListTransactionsParams{
		From:  &from,
		To:    &to,
		Limit: 25,
	}
	returned := []domain.Transaction{
		{TransactionID: uuid.NewString(), AccountID: uuid.NewString(), Amount: decimal.NewFromInt(100), Direction: domain.Credit},
	}
	nextToken := "opaque-cursor"

	suite.mockLedgerRepo.On("ListTransactions", ctx, mock.MatchedBy(func(f domain.LedgerFilter) bool {
		return f.From != nil && f.To != nil && f.From.Before(*f.To)
	}), 25, (*string)(nil)).Return(returned, &nextToken, nil).Once()

	resp, err := suite.service.ListTransactions(ctx, params)

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.Len(resp.Transactions, 1)
	suite.Equal(&nextToken, resp.NextToken)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestListTransactions_InvalidDate() {
	ctx := context.Background()
	bad := "01/02/2026"
	params := dto.ListTransactionsParams{From: &bad}

	resp, err := suite.service.ListTransactions(ctx, params)

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "ListTransactions", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestListTransactions_InvertedRange() {
	ctx := context.Background()
	from := "2026-02-01"
	to := "2026-01-01"
	params := dto.ListTransactionsParams{From: &from, To: &to}

	resp, err := suite.service.ListTransactions(ctx, params)

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestListTransactions_LimitClamped() {
	ctx := context.Background()
	params := dto.ListTransactionsParams{Limit: 10000}

	suite.mockLedgerRepo.On("ListTransactions", ctx, mock.AnythingOfType("domain.LedgerFilter"), 50, (*string)(nil)).
		Return([]domain.Transaction{}, nil, nil).Once()

	_, err := suite.service.ListTransactions(ctx, params)

	suite.Require().NoError(err)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestDeleteTransaction_Success() {
	ctx := context.Background()
	testID := uuid.NewString()

	suite.mockLedgerRepo.On("DeleteTransaction", ctx, testID).Return(nil).Once()

	err := suite.service.DeleteTransaction(ctx, testID, uuid.NewString())

	suite.Require().NoError(err)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestDeleteTransaction_NotFound() {
	ctx := context.Background()
	testID := uuid.NewString()

	suite.mockLedgerRepo.On("DeleteTransaction", ctx, testID).Return(apperrors.ErrNotFound).Once()

	err := suite.service.DeleteTransaction(ctx, testID, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- Run Test Suite ---

func TestLedgerService(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
