package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mediatekformation/internal/domain"
)

// statusFor maps a domain error to the HTTP status the page is rendered with
func statusFor(err error) int {
	switch {
	case domain.IsNotFoundError(err):
		return http.StatusNotFound
	case domain.IsBadRequestError(err):
		return http.StatusBadRequest
	case domain.IsValidationError(err):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrNotImplemented):
		return http.StatusNotImplemented
	case errors.Is(err, domain.ErrOAuthNotConfigured):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// handleServiceError logs err and renders the error page with the matching status.
// Internal failures never leak their cause to the browser.
func (s *Server) handleServiceError(c *gin.Context, operation string, err error) {
	status := statusFor(err)
	ctx := c.Request.Context()

	message := http.StatusText(status)
	var domainErr *domain.DomainError
	if status < http.StatusInternalServerError || status == http.StatusNotImplemented || status == http.StatusServiceUnavailable {
		if errors.As(err, &domainErr) {
			message = domainErr.Message
		}
		s.logger.WarnContext(ctx, "request failed", "operation", operation, "status", status, "error", err)
	} else {
		s.logger.ErrorContext(ctx, "request failed", "operation", operation, "status", status, "error", err)
	}

	s.renderError(c, status, message)
}

func (s *Server) renderError(c *gin.Context, status int, message string) {
	c.HTML(status, "error.html", errorPage{
		Title:   http.StatusText(status),
		Status:  status,
		Message: message,
	})
	c.Abort()
}
