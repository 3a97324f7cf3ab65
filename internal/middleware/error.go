package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "cashflow/internal/errors"
	"cashflow/internal/logger"
)

// ErrorTemplate is the HTML template rendered for failed page requests.
const ErrorTemplate = "error.html"

// ErrorPage is the view model of ErrorTemplate.
type ErrorPage struct {
	Title   string
	Message string
}

// ErrorHandler returns a Gin middleware that converts errors set on the Gin
// context into responses. Clients asking for JSON get {"error": message},
// everyone else the error page. AppErrors keep their status and message;
// anything else, or any 5xx, is logged and reported generically so storage
// details never reach the client.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		// Process the last error (most relevant in a middleware chain)
		err := c.Errors.Last().Err

		status := apperrors.ErrInternalServer.StatusCode
		message := apperrors.ErrInternalServer.Message

		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			if appErr.Internal != nil {
				logger.Get().Errorw("app error",
					"code", appErr.Code,
					"message", appErr.Message,
					"internal", appErr.Internal.Error(),
					"path", c.Request.URL.Path,
				)
			}
			status = appErr.StatusCode
			if status < http.StatusInternalServerError {
				message = appErr.Message
			}
		} else {
			// Unexpected error: log full details, return generic message
			logger.Get().Errorw("unexpected error",
				"error", err.Error(),
				"path", c.Request.URL.Path,
				"method", c.Request.Method,
			)
		}

		if c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON {
			c.JSON(status, gin.H{"error": message})
			return
		}
		c.HTML(status, ErrorTemplate, ErrorPage{
			Title:   http.StatusText(status),
			Message: message,
		})
	}
}
