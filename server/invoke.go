package server

import (
	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/endpoints/errors"
	"github.com/kbukum/endpoints/llm"
	"github.com/kbukum/endpoints/provider"
	"github.com/kbukum/endpoints/validation"
)

// InvokePath is the route that answers queries.
const InvokePath = "/v1/invoke"

// Invoker answers one query with a {query, response} result. Both the
// dispatcher and the model client satisfy it.
type Invoker = provider.RequestResponse[string, llm.Result]

// InvokeRequest is the body of POST /v1/invoke. Query is a pointer so an
// empty string is a valid query while a missing field is not.
type InvokeRequest struct {
	Query *string `json:"query" validate:"required"`
}

// InvokeHandler returns a handler that sends the body's query through inv.
func InvokeHandler(inv Invoker) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req InvokeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			RespondWithError(c, apperrors.InvalidFormat("body", "JSON object with a query string").WithCause(err))
			return
		}
		if err := validation.Validate(req); err != nil {
			RespondWithError(c, err)
			return
		}

		res, err := inv.Execute(c.Request.Context(), *req.Query)
		if err != nil {
			RespondWithError(c, toAppError(inv.Name(), err))
			return
		}
		RespondOK(c, res)
	}
}
