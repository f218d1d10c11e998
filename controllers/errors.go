package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"ecom-cart/models"
	"ecom-cart/services"

	"github.com/gin-gonic/gin"
)

const internalErrorMessage = "Internal server error"

// respondError maps a service error kind to its status code. Storage errors
// are logged in full and reported with a generic message.
func respondError(c *gin.Context, op string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
	}

	if status == http.StatusInternalServerError {
		slog.Error("request failed", "op", op, "err", err, "request_id", requestID(c))
		_ = c.Error(err)
		c.AbortWithStatusJSON(status, models.ErrorResponse{Error: internalErrorMessage})
		return
	}

	message := err.Error()
	var svcErr *services.Error
	if errors.As(err, &svcErr) {
		message = svcErr.Message()
	}
	c.AbortWithStatusJSON(status, models.ErrorResponse{Error: message})
}

func requestID(c *gin.Context) string {
	return c.GetString("request_id")
}
