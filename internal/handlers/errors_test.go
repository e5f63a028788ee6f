package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SscSPs/bizledger/internal/apperrors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
)

func TestRespondWithError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"validation", apperrors.NewValidationError("bad input"), http.StatusBadRequest, "bad input"},
		{"unbalanced", apperrors.NewUnbalancedEntryError("10.00", "9.00"), http.StatusBadRequest, ""},
		{"unauthorized", fmt.Errorf("wrapped: %w", apperrors.ErrUnauthorized), http.StatusUnauthorized, "Unauthorized"},
		{"forbidden", apperrors.ErrForbidden, http.StatusForbidden, "forbidden"},
		{"not found", apperrors.NewNotFoundError("bill not found"), http.StatusNotFound, "bill not found"},
		{"duplicate", fmt.Errorf("sku: %w", apperrors.ErrDuplicate), http.StatusConflict, "sku: resource already exists"},
		{"conflict", apperrors.ErrConflict, http.StatusConflict, "resource state conflict"},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, "Failed to do thing: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			respondWithError(c, slog.Default(), tt.err, "Failed to do thing")

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, decodeError(t, w))
			}
		})
	}
}

func TestValidateBillStatusTag(t *testing.T) {
	assert.NoError(t, RegisterValidators())

	type probe struct {
		Status string `binding:"billstatus"`
	}
	for _, s := range []string{"draft", "APPROVED", "partial", "paid", "overdue", "void"} {
		assert.NoError(t, validateStruct(probe{Status: s}), s)
	}
	assert.Error(t, validateStruct(probe{Status: "archived"}))
}

func validateStruct(v any) error {
	return binding.Validator.ValidateStruct(v)
}
