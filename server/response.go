package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/endpoints/errors"
)

// DataResponse wraps a successful payload as {"data": ...}.
type DataResponse struct {
	Data any `json:"data"`
}

// RespondOK answers 200 with data in the success envelope.
func RespondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, DataResponse{Data: data})
}

// RespondWithError answers with the error envelope at the status the code
// implies. Errors that are not AppErrors are reported as INTERNAL_ERROR.
func RespondWithError(c *gin.Context, err error) {
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		appErr = apperrors.Internal(err)
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
}
