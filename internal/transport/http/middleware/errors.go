package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/storefront-labs/storefront/internal/domain"
	"github.com/storefront-labs/storefront/internal/token"
)

// ErrorResponse is the uniform envelope every failure reaching the
// normalizer is rendered into. Errors is only present for validation
// failures.
type ErrorResponse struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// Errors is the last-resort translator from the internal failure
// taxonomy to the wire taxonomy. Handlers resolve their domain-specific
// failures locally; whatever they push into the gin error list instead
// is classified here, exactly once per request.
func Errors(logger *slog.Logger) gin.HandlerFunc {
	log := logger.With("component", "error_normalizer")

	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status, body := Classify(err)
		if status == http.StatusInternalServerError {
			log.ErrorContext(c.Request.Context(), "unhandled error",
				"path", c.FullPath(), "error", err)
		}
		c.JSON(status, body)
	}
}

// Classify maps a failure to its HTTP status and response body.
// First match wins; it never panics and always yields a valid envelope.
func Classify(err error) (int, ErrorResponse) {
	var verr *domain.ValidationError
	var serr *domain.StatusError

	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, ErrorResponse{Message: verr.Message, Errors: verr.Fields}
	case errors.Is(err, domain.ErrInvalidID):
		return http.StatusBadRequest, ErrorResponse{Message: "Invalid ID format"}
	case errors.Is(err, token.ErrSignatureInvalid):
		return http.StatusUnauthorized, ErrorResponse{Message: "Invalid token"}
	case errors.Is(err, token.ErrTokenExpired):
		return http.StatusUnauthorized, ErrorResponse{Message: "Token expired"}
	case errors.As(err, &serr):
		return serr.Code, ErrorResponse{Message: serr.Message}
	default:
		return http.StatusInternalServerError, ErrorResponse{Message: "Internal server error"}
	}
}

// Recovery converts handler panics into the generic 500 envelope so
// even a crashing handler responds with valid JSON.
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	log := logger.With("component", "recovery")

	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		log.ErrorContext(c.Request.Context(), "panic recovered",
			"path", c.FullPath(), "panic", recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError,
			ErrorResponse{Message: "Internal server error"})
	})
}
