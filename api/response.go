package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Surya-sourav/glass/errors"
)

// DataResponse is the standard success envelope.
type DataResponse struct {
	Data any `json:"data"`
}

// RespondWithError aborts with the status and body derived from err. Errors
// that are not *errors.AppError become a generic 500. The body carries the
// request id set by RequestID.
func RespondWithError(c *gin.Context, err error) {
	status, body := errors.ResponseFor(err, c.GetString(ctxKeyRequestID))
	c.AbortWithStatusJSON(status, body)
}

// RespondOK sends a 200 response wrapping data.
func RespondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, DataResponse{Data: data})
}
