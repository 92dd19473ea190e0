package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierrors "github.com/Eras256/FlowFi/internal/api/shared/errors"
	"github.com/Eras256/FlowFi/internal/logger"
)

// respondBadRequest responds with a bad request error
func respondBadRequest(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusBadRequest, apierrors.NewBadRequestError(message, details...))
}

// respondValidationError responds with a validation error
func respondValidationError(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, apierrors.NewValidationError(message))
}

// respondError maps an executor error to its status and logs server-side failures
func respondError(c *gin.Context, err error, message string) {
	status, apiErr := apierrors.FromError(err)
	var known *apierrors.APIError
	if status >= http.StatusInternalServerError && !errors.As(err, &known) {
		logger.ErrorCtx(c.Request.Context(), err,
			zap.String("message", message),
			zap.String("path", c.Request.URL.Path),
		)
		if apiErr.Details == "" {
			apiErr.Message = message
		}
	}
	c.JSON(status, apiErr)
}
