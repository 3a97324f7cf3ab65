package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "cashflow/internal/errors"
	"cashflow/internal/logger"
)

// ErrorResponse is the body of every failed AJAX call.
type ErrorResponse struct {
	Error string `json:"error" example:"Invalid request"`
}

// parsePathID parses a uint path parameter.
// Returns ErrInvalidInput if the parameter is not a valid positive integer.
//
//nolint:unparam // param is intentionally generic for reuse across handlers with different path params
func parsePathID(c *gin.Context, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil || id == 0 {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return uint(id), nil
}

// requireMethod rejects the request with a 400 and message unless it uses
// method. It reports whether the handler may continue.
func requireMethod(c *gin.Context, method, message string) bool {
	if c.Request.Method == method {
		return true
	}
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
	return false
}

// respondWithError writes a JSON error body. An *AppError keeps its status
// code and message; anything else is logged and reported as a generic
// internal server error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		if appErr.StatusCode >= http.StatusInternalServerError {
			c.JSON(appErr.StatusCode, ErrorResponse{Error: apperrors.ErrInternalServer.Message})
			return
		}
		c.JSON(appErr.StatusCode, ErrorResponse{Error: appErr.Message})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, ErrorResponse{Error: apperrors.ErrInternalServer.Message})
}

// respondWithStorageError reports a strict-create failure. Constraint
// violations expose the storage message so the user sees why the insert
// was refused.
func respondWithStorageError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrDuplicateName) || errors.Is(err, apperrors.ErrInvalidReference) {
		var appErr *apperrors.AppError
		errors.As(err, &appErr)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: appErr.InternalMessage()})
		return
	}
	respondWithError(c, err)
}
