package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/fintrax/ledger-api/internal/apperrors"
	"github.com/fintrax/ledger-api/internal/core/domain"
	portssvc "github.com/fintrax/ledger-api/internal/core/ports/services"
	"github.com/fintrax/ledger-api/internal/dto"
	"github.com/fintrax/ledger-api/internal/handlers"
	"github.com/fintrax/ledger-api/internal/utils"
	"github.com/fintrax/ledger-api/pkg/config"
)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

func (m *MockLedgerService) Deposit(ctx context.Context, accountID string, amount decimal.Decimal, currencyCode string) (*domain.Transaction, error) {
	args := m.Called(ctx, accountID, amount, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockLedgerService) Withdraw(ctx context.Context, accountID string, amount decimal.Decimal, currencyCode string) (*domain.Transaction, error) {
	args := m.Called(ctx, accountID, amount, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockLedgerService) Transfer(ctx context.Context, fromAccountID, toAccountID string, amount decimal.Decimal) (*domain.Transaction, error) {
	args := m.Called(ctx, fromAccountID, toAccountID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockLedgerService) GetBalance(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockLedgerService) GetProfile(ctx context.Context, userID string) (*domain.User, []domain.Account, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.User), args.Get(1).([]domain.Account), args.Error(2)
}

func (m *MockLedgerService) ListAccountTransactions(ctx context.Context, userID, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, userID, accountID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Transaction), returnedNextToken, args.Error(2)
}

// --- Test Suite Setup ---
type LedgerHandlerTestSuite struct {
	suite.Suite
	router            *gin.Engine
	mockLedgerService *MockLedgerService
	cfg               *config.Config
	userID            string
}

func (suite *LedgerHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.cfg = &config.Config{
		JWTSecret: "test-secret-key-that-is-long-enough",
		JWTExpiry: time.Hour,
		JWTIssuer: "ledger-test",
	}
	suite.userID = uuid.NewString()
	suite.mockLedgerService = new(MockLedgerService)

	handlers.RegisterRoutes(suite.router, suite.cfg, &portssvc.ServiceContainer{
		Ledger: suite.mockLedgerService,
	})
}

func (suite *LedgerHandlerTestSuite) tokenFor(userID, role string) string {
	token, err := utils.GenerateJWT(userID, role, suite.cfg.JWTSecret, suite.cfg.JWTExpiry, suite.cfg.JWTIssuer)
	suite.Require().NoError(err)
	return token
}

func (suite *LedgerHandlerTestSuite) doJSON(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		suite.Require().NoError(err)
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *LedgerHandlerTestSuite) TestDeposit_Success() {
	accountID := uuid.NewString()
	amount := decimal.NewFromInt(100)
	expected := &domain.Transaction{
		TransactionID:   uuid.NewString(),
		ToAccountID:     accountID,
		Amount:          amount,
		CurrencyCode:    "USD",
		ConvertedAmount: amount,
		ExchangeRate:    decimal.NewFromInt(1),
		Kind:            domain.Deposit,
		Entries: []domain.Entry{
			{AccountID: "reserve", Amount: amount.Neg(), CurrencyCode: "USD"},
			{AccountID: accountID, Amount: amount, CurrencyCode: "USD"},
		},
	}

	suite.mockLedgerService.On("Deposit", mock.Anything, accountID, mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(amount)
	}), "USD").Return(expected, nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/ledger/deposit", dto.DepositRequest{
		AccountID:    accountID,
		Amount:       amount,
		CurrencyCode: "USD",
	}, suite.tokenFor(suite.userID, string(domain.RoleUser)))

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.TransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(expected.TransactionID, resp.TransactionID)
	suite.Equal("DEPOSIT", resp.Kind)
	suite.Len(resp.Entries, 2)
	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestDeposit_RequiresAuth() {
	w := suite.doJSON(http.MethodPost, "/api/v1/ledger/deposit", dto.DepositRequest{
		AccountID:    uuid.NewString(),
		Amount:       decimal.NewFromInt(10),
		CurrencyCode: "USD",
	}, "")

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockLedgerService.AssertNotCalled(suite.T(), "Deposit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerHandlerTestSuite) TestDeposit_MalformedBody() {
	token := suite.tokenFor(suite.userID, string(domain.RoleUser))
	w := suite.doJSON(http.MethodPost, "/api/v1/ledger/deposit", map[string]any{"accountId": "a1"}, token)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestWithdraw_InsufficientFunds() {
	accountID := uuid.NewString()

	suite.mockLedgerService.On("Withdraw", mock.Anything, accountID, mock.Anything, "USD").
		Return(nil, fmt.Errorf("%w: balance 10 is less than 60", apperrors.ErrInsufficientFunds)).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/ledger/withdraw", dto.WithdrawRequest{
		AccountID:    accountID,
		Amount:       decimal.NewFromInt(60),
		CurrencyCode: "USD",
	}, suite.tokenFor(suite.userID, string(domain.RoleUser)))

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestTransfer_AccountNotFound() {
	fromID := uuid.NewString()
	toID := uuid.NewString()

	suite.mockLedgerService.On("Transfer", mock.Anything, fromID, toID, mock.Anything).
		Return(nil, fmt.Errorf("%w: %s", apperrors.ErrAccountNotFound, toID)).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/ledger/transfer", dto.TransferRequest{
		FromAccountID: fromID,
		ToAccountID:   toID,
		Amount:        decimal.NewFromInt(10),
	}, suite.tokenFor(suite.userID, string(domain.RoleUser)))

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestGetBalance_Success() {
	accountID := uuid.NewString()
	account := &domain.Account{
		AccountID:    accountID,
		UserID:       suite.userID,
		Balance:      decimal.RequireFromString("42.50"),
		CurrencyCode: "USD",
		Kind:         domain.KindUser,
	}

	suite.mockLedgerService.On("GetBalance", mock.Anything, accountID).Return(account, nil).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/accounts/"+accountID+"/balance", nil, suite.tokenFor(suite.userID, string(domain.RoleUser)))

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.BalanceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(accountID, resp.AccountID)
	suite.True(resp.Balance.Equal(decimal.RequireFromString("42.50")))
	suite.Equal("USD", resp.CurrencyCode)
}

func (suite *LedgerHandlerTestSuite) TestListAccountTransactions_ForbiddenForOtherUsersAccount() {
	accountID := uuid.NewString()

	suite.mockLedgerService.On("ListAccountTransactions", mock.Anything, suite.userID, accountID, 10, (*string)(nil)).
		Return(nil, nil, fmt.Errorf("%w: account %s does not belong to user", apperrors.ErrForbidden, accountID)).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/accounts/"+accountID+"/transactions", nil, suite.tokenFor(suite.userID, string(domain.RoleUser)))

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestAdminRoutes_RejectNonAdmin() {
	w := suite.doJSON(http.MethodGet, "/api/v1/admin/users", nil, suite.tokenFor(suite.userID, string(domain.RoleUser)))

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestHealth_Public() {
	w := suite.doJSON(http.MethodGet, "/health", nil, "")

	suite.Equal(http.StatusOK, w.Code)
}

func TestLedgerHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerHandlerTestSuite))
}
