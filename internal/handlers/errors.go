package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/bizledger/internal/apperrors"
	"github.com/SscSPs/bizledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// respondWithError maps a service error onto an HTTP status and writes {"error": msg}.
// Known client errors surface their message; anything else is logged and reported as
// fallback with the underlying message appended.
func respondWithError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	status, msg := http.StatusInternalServerError, fallback+": "+err.Error()
	switch {
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrUnbalancedEntry):
		status, msg = http.StatusBadRequest, errorMessage(err)
	case errors.Is(err, apperrors.ErrUnauthorized):
		status, msg = http.StatusUnauthorized, "Unauthorized"
	case errors.Is(err, apperrors.ErrForbidden):
		status, msg = http.StatusForbidden, errorMessage(err)
	case errors.Is(err, apperrors.ErrNotFound):
		status, msg = http.StatusNotFound, errorMessage(err)
	case errors.Is(err, apperrors.ErrDuplicate), errors.Is(err, apperrors.ErrConflict):
		status, msg = http.StatusConflict, errorMessage(err)
	}

	if status >= http.StatusInternalServerError {
		logger.Error(fallback, slog.String("error", err.Error()))
	} else {
		logger.Warn(fallback, slog.String("error", err.Error()), slog.Int("status", status))
	}
	c.JSON(status, gin.H{"error": msg})
}

// errorMessage prefers the human readable message of an AppError over the wrapped chain.
func errorMessage(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return err.Error()
}

// currentUserID returns the authenticated user or writes a 401.
func currentUserID(c *gin.Context, logger *slog.Logger) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return userID, true
}
