package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/bizledger/internal/apperrors"
	"github.com/SscSPs/bizledger/internal/core/domain"
	"github.com/SscSPs/bizledger/internal/dto"
	"github.com/SscSPs/bizledger/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	testJWTSecret   = "handler-test-secret"
	testUserID      = "user-1"
	testWorkplaceID = "wp-1"
)

// BillHandlerSuite exercises the bill routes through a real gin router and auth middleware.
type BillHandlerSuite struct {
	suite.Suite
	router      *gin.Engine
	billService *MockBillService
	token       string
}

func (s *BillHandlerSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	s.Require().NoError(RegisterValidators())

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   testUserID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte(testJWTSecret))
	s.Require().NoError(err)
	s.token = token
}

func (s *BillHandlerSuite) SetupTest() {
	s.billService = new(MockBillService)
	s.router = gin.New()
	v1 := s.router.Group("/api/v1", middleware.AuthMiddleware(testJWTSecret))
	RegisterBillRoutes(v1.Group("/workplaces/:workplace_id"), s.billService)
}

func (s *BillHandlerSuite) TearDownTest() {
	s.billService.AssertExpectations(s.T())
}

func (s *BillHandlerSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, "/api/v1/workplaces/"+testWorkplaceID+path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.token)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func sampleBill(status domain.BillStatus) *domain.Bill {
	return &domain.Bill{
		BillID:       "bill-1",
		WorkplaceID:  testWorkplaceID,
		VendorID:     "vendor-1",
		BillNumber:   "BILL-00001",
		BillDate:     time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		DueDate:      time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		Status:       status,
		Subtotal:     decimal.NewFromInt(100),
		Total:        decimal.NewFromInt(100),
		AmountPaid:   decimal.Zero,
		CurrencyCode: "USD",
	}
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["error"]
}

func (s *BillHandlerSuite) TestCreateBill() {
	s.billService.On("CreateBill", mock.Anything, testWorkplaceID, mock.MatchedBy(func(req dto.CreateBillRequest) bool {
		return req.VendorID == "vendor-1" && len(req.Lines) == 1 && req.Lines[0].Quantity.Equal(decimal.NewFromInt(10))
	}), testUserID).Return(sampleBill(domain.BillDraft), nil).Once()

	w := s.do(http.MethodPost, "/bills", map[string]any{
		"vendor_id":     "vendor-1",
		"currency_code": "USD",
		"bill_date":     "2026-03-01",
		"lines": []map[string]any{
			{"description": "Widgets", "quantity": "10", "unit_cost": "10"},
		},
	})

	s.Equal(http.StatusCreated, w.Code)
	var resp dto.BillResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("BILL-00001", resp.BillNumber)
	s.Equal(domain.BillDraft, resp.Status)
	s.True(resp.BalanceDue.Equal(decimal.NewFromInt(100)))
}

func (s *BillHandlerSuite) TestCreateBillRejectsMissingVendor() {
	w := s.do(http.MethodPost, "/bills", map[string]any{"currency_code": "USD"})

	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(decodeError(s.T(), w), "Invalid request format")
	s.billService.AssertNotCalled(s.T(), "CreateBill", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *BillHandlerSuite) TestRequiresToken() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/workplaces/"+testWorkplaceID+"/bills", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *BillHandlerSuite) TestListBillsNormalisesStatus() {
	s.billService.On("ListBills", mock.Anything, testWorkplaceID, testUserID, mock.MatchedBy(func(p dto.ListBillsParams) bool {
		return p.Status != nil && *p.Status == "approved"
	})).Return(&dto.ListBillsResponse{Bills: []dto.BillResponse{dto.ToBillResponse(sampleBill(domain.BillApproved))}}, nil).Once()

	w := s.do(http.MethodGet, "/bills?status=APPROVED", nil)

	s.Equal(http.StatusOK, w.Code)
	var resp dto.ListBillsResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Len(resp.Bills, 1)
}

func (s *BillHandlerSuite) TestListBillsRejectsUnknownStatus() {
	w := s.do(http.MethodGet, "/bills?status=settled", nil)

	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *BillHandlerSuite) TestGetBillNotFound() {
	s.billService.On("GetBill", mock.Anything, testWorkplaceID, "missing", testUserID).
		Return(nil, apperrors.NewNotFoundError("bill not found")).Once()

	w := s.do(http.MethodGet, "/bills/missing", nil)

	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("bill not found", decodeError(s.T(), w))
}

func (s *BillHandlerSuite) TestUpdateBillApproves() {
	s.billService.On("UpdateBill", mock.Anything, testWorkplaceID, "bill-1", mock.MatchedBy(func(req dto.UpdateBillRequest) bool {
		return req.Status != nil && *req.Status == domain.BillApproved
	}), testUserID).Return(sampleBill(domain.BillApproved), nil).Once()

	w := s.do(http.MethodPatch, "/bills/bill-1", map[string]any{"status": "Approved"})

	s.Equal(http.StatusOK, w.Code)
	var resp dto.BillResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal(domain.BillApproved, resp.Status)
}

func (s *BillHandlerSuite) TestUpdateBillRejectsUnknownStatus() {
	w := s.do(http.MethodPatch, "/bills/bill-1", map[string]any{"status": "archived"})

	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *BillHandlerSuite) TestUpdateBillInventoryConflict() {
	s.billService.On("UpdateBill", mock.Anything, testWorkplaceID, "bill-1", mock.Anything, testUserID).
		Return(nil, apperrors.NewAppError(http.StatusConflict, "insufficient stock", apperrors.ErrConflict)).Once()

	w := s.do(http.MethodPatch, "/bills/bill-1", map[string]any{"status": "approved"})

	s.Equal(http.StatusConflict, w.Code)
	s.Equal("insufficient stock", decodeError(s.T(), w))
}

func (s *BillHandlerSuite) TestVoidIsDefaultAction() {
	journalID := "je-rev"
	s.billService.On("VoidBill", mock.Anything, testWorkplaceID, "bill-1", testUserID).
		Return(sampleBill(domain.BillVoid), &domain.InventoryReversal{Reversed: true, JournalEntryID: &journalID}, nil).Once()

	w := s.do(http.MethodDelete, "/bills/bill-1", nil)

	s.Equal(http.StatusOK, w.Code)
	var resp dto.VoidBillResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal(domain.BillVoid, resp.Data.Status)
	s.True(resp.Inventory.Reversed)
	s.Require().NotNil(resp.Inventory.JournalEntryID)
	s.Equal(journalID, *resp.Inventory.JournalEntryID)
	s.Equal("Bill voided and inventory reversed", resp.Message)
}

func (s *BillHandlerSuite) TestVoidWithoutInventory() {
	s.billService.On("VoidBill", mock.Anything, testWorkplaceID, "bill-1", testUserID).
		Return(sampleBill(domain.BillVoid), nil, nil).Once()

	w := s.do(http.MethodDelete, "/bills/bill-1?action=void", nil)

	s.Equal(http.StatusOK, w.Code)
	var resp dto.VoidBillResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.False(resp.Inventory.Reversed)
	s.Nil(resp.Inventory.JournalEntryID)
	s.Equal("Bill voided", resp.Message)
}

func (s *BillHandlerSuite) TestVoidRejectedForDraft() {
	s.billService.On("VoidBill", mock.Anything, testWorkplaceID, "bill-1", testUserID).
		Return(nil, nil, apperrors.NewValidationError("Draft bills cannot be voided; delete them instead")).Once()

	w := s.do(http.MethodDelete, "/bills/bill-1", nil)

	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("Draft bills cannot be voided; delete them instead", decodeError(s.T(), w))
}

func (s *BillHandlerSuite) TestDeleteAction() {
	s.billService.On("DeleteBill", mock.Anything, testWorkplaceID, "bill-1", testUserID).Return(nil).Once()

	w := s.do(http.MethodDelete, "/bills/bill-1?action=delete", nil)

	s.Equal(http.StatusOK, w.Code)
	var resp dto.MessageResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("Bill deleted", resp.Message)
}

func (s *BillHandlerSuite) TestUnknownAction() {
	w := s.do(http.MethodDelete, "/bills/bill-1?action=archive", nil)

	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *BillHandlerSuite) TestRecordPayment() {
	paid := sampleBill(domain.BillPartial)
	paid.AmountPaid = decimal.NewFromInt(40)
	s.billService.On("RecordPayment", mock.Anything, testWorkplaceID, "bill-1", mock.MatchedBy(func(req dto.RecordPaymentRequest) bool {
		return req.Amount.Equal(decimal.NewFromInt(40)) && req.Reference == "CHK-1"
	}), testUserID).Return(paid, nil).Once()

	w := s.do(http.MethodPost, "/bills/bill-1/payments", map[string]any{"amount": "40", "reference": "CHK-1"})

	s.Equal(http.StatusOK, w.Code)
	var resp dto.BillResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal(domain.BillPartial, resp.Status)
	s.True(resp.BalanceDue.Equal(decimal.NewFromInt(60)))
}

func (s *BillHandlerSuite) TestListPayments() {
	s.billService.On("ListPayments", mock.Anything, testWorkplaceID, "bill-1", testUserID).Return([]domain.BillPayment{
		{PaymentID: "pay-1", BillID: "bill-1", Amount: decimal.NewFromInt(40), PaymentDate: time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)},
	}, nil).Once()

	w := s.do(http.MethodGet, "/bills/bill-1/payments", nil)

	s.Equal(http.StatusOK, w.Code)
	var resp []dto.BillPaymentResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Require().Len(resp, 1)
	s.Equal("pay-1", resp[0].PaymentID)
}

func (s *BillHandlerSuite) TestInternalErrorUsesFallback() {
	s.billService.On("GetBill", mock.Anything, testWorkplaceID, "bill-1", testUserID).
		Return(nil, context.DeadlineExceeded).Once()

	w := s.do(http.MethodGet, "/bills/bill-1", nil)

	s.Equal(http.StatusInternalServerError, w.Code)
	assert.Contains(s.T(), decodeError(s.T(), w), "Failed to retrieve bill")
}

func TestBillHandlerSuite(t *testing.T) {
	suite.Run(t, new(BillHandlerSuite))
}
