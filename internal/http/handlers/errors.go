package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shiptix/internal/domain"
	"shiptix/internal/http/middleware"
	"shiptix/internal/utils"
)

// ErrorResponse standardizes error payloads.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	Field     string `json:"field,omitempty"`
	Details   any    `json:"details,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string, details any) {
	if code == "" {
		code = http.StatusText(status)
	}
	c.JSON(status, ErrorResponse{
		Error:     message,
		Code:      code,
		Details:   details,
		RequestID: middleware.GetRequestID(c),
	})
}

// RespondDomainError maps domain errors to HTTP responses.
func RespondDomainError(c *gin.Context, err error) {
	code := domain.Code(err)
	resp := ErrorResponse{Error: err.Error(), Code: code, RequestID: middleware.GetRequestID(c)}

	var ve domain.ValidationError
	if errors.As(err, &ve) {
		resp.Field = ve.Field
		if ve.Msg != "" {
			resp.Error = ve.Msg
		}
	}

	status := http.StatusInternalServerError
	switch code {
	case "incomplete_input", "invalid_route", "invalid_passenger_mix", "validation_error":
		status = http.StatusBadRequest
	case "not_found":
		status = http.StatusNotFound
	case "conflict":
		status = http.StatusConflict
	case "unauthorized":
		status = http.StatusUnauthorized
	case "data_source_unavailable":
		status = http.StatusServiceUnavailable
	default:
		utils.L().Error("unhandled error", zap.String("request_id", resp.RequestID), zap.Error(err))
		var ie domain.InternalError
		if errors.As(err, &ie) && ie.Msg != "" {
			resp.Error = ie.Msg
		} else {
			resp.Error = "terjadi kesalahan"
		}
	}
	_ = c.Error(err)
	c.JSON(status, resp)
}
