package utils

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

func RespondCreated(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusCreated, APIResponse{
		Status:  "success",
		Code:    http.StatusCreated,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
	})
}

// HandleServiceError maps service-level sentinel errors onto HTTP codes.
// Insufficient credits intentionally keeps its message string verbatim:
// existing clients branch on the message, not the status code.
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrUnauthorized):
		RespondError(c, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, ErrAccountNotFound):
		RespondError(c, http.StatusNotFound, "Account not found")
	case errors.Is(err, ErrEmailAlreadyExists):
		RespondError(c, http.StatusConflict, "Email already exists")
	case errors.Is(err, ErrInvalidCredentials):
		RespondError(c, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, ErrInvalidResetToken):
		RespondError(c, http.StatusBadRequest, "Invalid or expired reset token")
	case errors.Is(err, ErrInsufficientCredits):
		RespondError(c, http.StatusPaymentRequired, err.Error())
	case errors.Is(err, ErrCreditRowMissing):
		RespondError(c, http.StatusPaymentRequired, "No credits left for training")
	case errors.Is(err, ErrModelNotFound):
		RespondError(c, http.StatusNotFound, "Model not found")
	case errors.Is(err, ErrImageNotFound):
		RespondError(c, http.StatusNotFound, "Image not found")
	case errors.Is(err, ErrUpstreamFailure):
		RespondError(c, http.StatusInternalServerError, "Upstream provider request failed")
	case errors.Is(err, ErrDatabaseError):
		log.Printf("Database error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		log.Printf("Unknown error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
