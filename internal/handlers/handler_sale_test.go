package handlers_test

import (
	"encoding/json"
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

type SaleHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockSaleService *MockSaleService
	adminID         string
	adminToken      string
	customerID      string
	customerToken   string
}

func (suite *SaleHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.mockSaleService = new(MockSaleService)

	v1 := suite.router.Group("/api/v1", middleware.AuthMiddleware(testJWTSecret))
	handlers.RegisterSaleRoutes(v1, suite.mockSaleService)

	var err error
	suite.adminID = uuid.NewString()
	suite.adminToken, err = generateTestToken(suite.adminID, domain.RoleAdmin)
	suite.Require().NoError(err)
	suite.customerID = uuid.NewString()
	suite.customerToken, err = generateTestToken(suite.customerID, domain.RoleCustomer)
	suite.Require().NoError(err)
}

func (suite *SaleHandlerTestSuite) TestCreateSale_Success() {
	accountID := uuid.NewString()
	productID := uuid.NewString()
	created := &domain.Sale{
		SaleID:    uuid.NewString(),
		AccountID: accountID,
		Kind:      domain.SaleCredit,
		Status:    domain.SalePending,
		Subtotal:  decimal.NewFromInt(30),
		Total:     decimal.NewFromInt(30),
		Items: []domain.SaleItem{
			{ProductID: productID, Quantity: 3, UnitPrice: decimal.NewFromInt(10), Subtotal: decimal.NewFromInt(30)},
		},
	}
	suite.mockSaleService.On("CreateSale", mock.Anything, mock.MatchedBy(func(req dto.CreateSaleRequest) bool {
		return req.AccountID == accountID && req.Kind == domain.SaleCredit &&
			len(req.Items) == 1 && req.Items[0].Quantity == 3
	}), suite.adminID).Return(created, nil).Once()

	w := doRequest(suite.router, http.MethodPost, "/api/v1/sales", suite.adminToken, map[string]any{
		"accountID": accountID,
		"kind":      "CREDIT",
		"items":     []map[string]any{{"productID": productID, "quantity": 3}},
	})

	suite.Equal(http.StatusCreated, w.Code)
	var res dto.SaleResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &res))
	suite.Equal(created.SaleID, res.SaleID)
	suite.True(res.Total.Equal(decimal.NewFromInt(30)))
	suite.Len(res.Items, 1)
	suite.mockSaleService.AssertExpectations(suite.T())
}

func (suite *SaleHandlerTestSuite) TestCreateSale_ItemsValidated() {
	w := doRequest(suite.router, http.MethodPost, "/api/v1/sales", suite.adminToken, map[string]any{
		"kind":  "CREDIT",
		"items": []map[string]any{{"productID": uuid.NewString(), "quantity": 0}},
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	var res handlers.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &res))
	suite.Equal("Validation failed", res.Error)
	suite.Contains(res.Fields, "Quantity")
	suite.mockSaleService.AssertNotCalled(suite.T(), "CreateSale", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SaleHandlerTestSuite) TestCreateSale_InsufficientCredit() {
	suite.mockSaleService.On("CreateSale", mock.Anything, mock.Anything, suite.adminID).
		Return(nil, apperrors.ErrInsufficientBalance).Once()

	w := doRequest(suite.router, http.MethodPost, "/api/v1/sales", suite.adminToken, map[string]any{
		"accountID": uuid.NewString(),
		"kind":      "CREDIT",
		"items":     []map[string]any{{"productID": uuid.NewString(), "quantity": 1}},
	})

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *SaleHandlerTestSuite) TestCancel_InvalidTransition() {
	saleID := uuid.NewString()
	suite.mockSaleService.On("Cancel", mock.Anything, saleID, suite.adminID).
		Return(nil, apperrors.ErrInvalidSaleState).Once()

	w := doRequest(suite.router, http.MethodPut, "/api/v1/sales/"+saleID+"/cancel", suite.adminToken, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockSaleService.AssertExpectations(suite.T())
}

func (suite *SaleHandlerTestSuite) TestMarkPaid_Success() {
	saleID := uuid.NewString()
	suite.mockSaleService.On("MarkPaid", mock.Anything, saleID, suite.adminID).
		Return(&domain.Sale{SaleID: saleID, Kind: domain.SaleCredit, Status: domain.SalePaid}, nil).Once()

	w := doRequest(suite.router, http.MethodPut, "/api/v1/sales/"+saleID+"/pay", suite.adminToken, nil)

	suite.Equal(http.StatusOK, w.Code)
	var res dto.SaleResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &res))
	suite.Equal(domain.SalePaid, res.Status)
}

func (suite *SaleHandlerTestSuite) TestCanCancel() {
	saleID := uuid.NewString()
	suite.mockSaleService.On("CanCancel", mock.Anything, saleID).Return(false, nil).Once()

	w := doRequest(suite.router, http.MethodGet, "/api/v1/sales/"+saleID+"/can-cancel", suite.adminToken, nil)

	suite.Equal(http.StatusOK, w.Code)
	var res dto.SaleCheckResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &res))
	suite.Equal(saleID, res.SaleID)
	suite.False(res.Allowed)
}

func (suite *SaleHandlerTestSuite) TestMySales_ScopedToCaller() {
	suite.mockSaleService.On("ListMySales", mock.Anything, suite.customerID, mock.MatchedBy(func(f domain.SaleFilter) bool {
		return f.Status == domain.SalePending && f.Limit == 20
	})).Return([]domain.Sale{{SaleID: uuid.NewString(), Kind: domain.SaleCredit, Status: domain.SalePending}}, nil).Once()

	w := doRequest(suite.router, http.MethodGet, "/api/v1/sales/mine?status=PENDING", suite.customerToken, nil)

	suite.Equal(http.StatusOK, w.Code)
	var res []dto.SaleResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &res))
	suite.Len(res, 1)
	suite.mockSaleService.AssertExpectations(suite.T())
}

func (suite *SaleHandlerTestSuite) TestMySale_OtherCustomersSaleNotFound() {
	saleID := uuid.NewString()
	suite.mockSaleService.On("GetMySale", mock.Anything, suite.customerID, saleID).Return(nil, apperrors.ErrNotFound).Once()

	w := doRequest(suite.router, http.MethodGet, "/api/v1/sales/mine/"+saleID, suite.customerToken, nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *SaleHandlerTestSuite) TestCustomerCannotCreateSale() {
	w := doRequest(suite.router, http.MethodPost, "/api/v1/sales", suite.customerToken, map[string]any{
		"kind":  "CASH",
		"items": []map[string]any{{"productID": uuid.NewString(), "quantity": 1}},
	})

	suite.Equal(http.StatusForbidden, w.Code)
}

func TestSaleHandler(t *testing.T) {
	suite.Run(t, new(SaleHandlerTestSuite))
}
