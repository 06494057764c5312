package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/SscSPs/store_credit_app/internal/apperrors"
	"github.com/SscSPs/store_credit_app/internal/core/domain"
	"github.com/SscSPs/store_credit_app/internal/dto"
	"github.com/SscSPs/store_credit_app/internal/handlers"
	"github.com/SscSPs/store_credit_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type AccountHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockAccountService *MockAccountService
	adminID            string
	adminToken         string
	customerID         string
	customerToken      string
}

func (suite *AccountHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.mockAccountService = new(MockAccountService)

	v1 := suite.router.Group("/api/v1", middleware.AuthMiddleware(testJWTSecret))
	handlers.RegisterAccountRoutes(v1, suite.mockAccountService)

	var err error
	suite.adminID = uuid.NewString()
	suite.adminToken, err = generateTestToken(suite.adminID, domain.RoleAdmin)
	suite.Require().NoError(err)
	suite.customerID = uuid.NewString()
	suite.customerToken, err = generateTestToken(suite.customerID, domain.RoleCustomer)
	suite.Require().NoError(err)
}

func (suite *AccountHandlerTestSuite) sampleAccount(limit, balance int64) *domain.Account {
	return &domain.Account{
		AccountID:   uuid.NewString(),
		UserID:      suite.customerID,
		CreditLimit: decimal.NewFromInt(limit),
		Balance:     decimal.NewFromInt(balance),
		Status:      domain.AccountActive,
	}
}

// --- Test Cases ---

func (suite *AccountHandlerTestSuite) TestMissingToken_Unauthorized() {
	w := doRequest(suite.router, http.MethodGet, "/api/v1/accounts", "", nil)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockAccountService.AssertNotCalled(suite.T(), "ListAccounts", mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestCustomerOnAdminRoute_Forbidden() {
	w := doRequest(suite.router, http.MethodPost, "/api/v1/accounts/"+uuid.NewString()+"/charges", suite.customerToken,
		map[string]any{"amount": "10", "concept": "Manual"})

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockAccountService.AssertNotCalled(suite.T(), "Charge", mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestAdminOnCustomerRoute_Forbidden() {
	w := doRequest(suite.router, http.MethodGet, "/api/v1/accounts/me", suite.adminToken, nil)

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *AccountHandlerTestSuite) TestCharge_Success() {
	account := suite.sampleAccount(100, 50)
	suite.mockAccountService.On("Charge", mock.Anything, mock.MatchedBy(func(e domain.LedgerEntry) bool {
		return e.AccountID == account.AccountID &&
			e.Amount.Equal(decimal.RequireFromString("50.00")) &&
			e.Concept == "Manual charge" &&
			e.ActingUserID == suite.adminID &&
			e.Reference == nil
	})).Return(account, nil).Once()

	url := fmt.Sprintf("/api/v1/accounts/%s/charges", account.AccountID)
	w := doRequest(suite.router, http.MethodPost, url, suite.adminToken,
		map[string]any{"amount": "50.00", "concept": "Manual charge"})

	suite.Equal(http.StatusOK, w.Code)
	var res dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &res))
	suite.True(res.Balance.Equal(decimal.NewFromInt(50)))
	suite.True(res.AvailableCredit.Equal(decimal.NewFromInt(50)))
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestCharge_InsufficientBalance() {
	accountID := uuid.NewString()
	suite.mockAccountService.On("Charge", mock.Anything, mock.AnythingOfType("domain.LedgerEntry")).
		Return(nil, fmt.Errorf("%w: available credit 10 is below 50", apperrors.ErrInsufficientBalance)).Once()

	w := doRequest(suite.router, http.MethodPost, "/api/v1/accounts/"+accountID+"/charges", suite.adminToken,
		map[string]any{"amount": "50", "concept": "Manual charge"})

	suite.Equal(http.StatusBadRequest, w.Code)
	var res handlers.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &res))
	suite.Contains(res.Error, "insufficient balance")
}

func (suite *AccountHandlerTestSuite) TestCredit_ReferenceRequiresID() {
	w := doRequest(suite.router, http.MethodPost, "/api/v1/accounts/"+uuid.NewString()+"/credits", suite.adminToken,
		map[string]any{"amount": "5", "concept": "Refund", "referenceKind": "PAYMENT"})

	suite.Equal(http.StatusBadRequest, w.Code)
	var res handlers.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &res))
	suite.Equal("Validation failed", res.Error)
	suite.Equal("is required", res.Fields["ReferenceID"])
	suite.mockAccountService.AssertNotCalled(suite.T(), "Credit", mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_ValidationFields() {
	w := doRequest(suite.router, http.MethodPost, "/api/v1/accounts", suite.adminToken,
		map[string]any{"creditLimit": "100", "status": "FROZEN"})

	suite.Equal(http.StatusBadRequest, w.Code)
	var res handlers.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &res))
	suite.Equal("is required", res.Fields["UserID"])
	suite.Equal("must be one of ACTIVE SUSPENDED CLOSED", res.Fields["Status"])
}

func (suite *AccountHandlerTestSuite) TestClose_PendingBalance() {
	accountID := uuid.NewString()
	suite.mockAccountService.On("ChangeStatus", mock.Anything, accountID, domain.AccountClosed, suite.adminID).
		Return(nil, apperrors.ErrPendingBalance).Once()

	w := doRequest(suite.router, http.MethodPut, "/api/v1/accounts/"+accountID+"/close", suite.adminToken, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestGetAccount_NotFound() {
	accountID := uuid.NewString()
	suite.mockAccountService.On("GetAccountByID", mock.Anything, accountID).Return(nil, apperrors.ErrNotFound).Once()

	w := doRequest(suite.router, http.MethodGet, "/api/v1/accounts/"+accountID, suite.adminToken, nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *AccountHandlerTestSuite) TestCanPurchase() {
	accountID := uuid.NewString()
	suite.mockAccountService.On("CanPurchase", mock.Anything, accountID, mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(decimal.RequireFromString("25.50"))
	})).Return(true, nil).Once()

	w := doRequest(suite.router, http.MethodGet, "/api/v1/accounts/"+accountID+"/can-purchase?amount=25.50", suite.adminToken, nil)

	suite.Equal(http.StatusOK, w.Code)
	var res dto.CanPurchaseResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &res))
	suite.True(res.CanPurchase)
}

func (suite *AccountHandlerTestSuite) TestCanPurchase_BadAmount() {
	w := doRequest(suite.router, http.MethodGet, "/api/v1/accounts/"+uuid.NewString()+"/can-purchase?amount=lots", suite.adminToken, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockAccountService.AssertNotCalled(suite.T(), "CanPurchase", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestMyAvailableCredit_IsDerived() {
	account := suite.sampleAccount(100, 30)
	suite.mockAccountService.On("GetAccountByUserID", mock.Anything, suite.customerID).Return(account, nil).Once()

	w := doRequest(suite.router, http.MethodGet, "/api/v1/accounts/me/available-credit", suite.customerToken, nil)

	suite.Equal(http.StatusOK, w.Code)
	var res dto.AvailableCreditResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &res))
	suite.Equal(account.AccountID, res.AccountID)
	suite.True(res.AvailableCredit.Equal(decimal.NewFromInt(70)))
}

func (suite *AccountHandlerTestSuite) TestServiceFailure_HidesInternalError() {
	accountID := uuid.NewString()
	suite.mockAccountService.On("GetAccountByID", mock.Anything, accountID).
		Return(nil, fmt.Errorf("pool exhausted")).Once()

	w := doRequest(suite.router, http.MethodGet, "/api/v1/accounts/"+accountID, suite.adminToken, nil)

	suite.Equal(http.StatusInternalServerError, w.Code)
	var res handlers.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &res))
	suite.Equal("Failed to retrieve account", res.Error)
}

// --- Run Test Suite ---
func TestAccountHandler(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}
