package api

import (
	"errors"

	"github.com/rogtrack/rog-api/internal/http/response"
	"github.com/rogtrack/rog-api/internal/logger"
	"github.com/rogtrack/rog-api/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError maps a business error to a response code and message.
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			response.Error(c, rule.code, rule.msg)
			return
		}
	}
	logger.Errorw("api_unmapped_error", "request_id", c.GetString("request_id"), "error", err)
	response.Error(c, fallbackCode, fallbackMsg)
}

// Each transition precondition surfaces its own message so receipt clerks
// can correct the specific field.
var transitionErrorRules = []mappedHandlerError{
	{target: service.ErrEmptyBatch, code: response.CodeBadRequest, msg: "request batch is empty"},
	{target: service.ErrDocumentNotEligible, code: response.CodeBadRequest, msg: "document is not eligible for this transition"},
	{target: service.ErrSuppAddMissing, code: response.CodeBadRequest, msg: "document has no suppadd assigned"},
	{target: service.ErrSubInventoryNotFound, code: response.CodeBadRequest, msg: "subinventory does not exist for this suppadd"},
	{target: service.ErrLocatorNotFound, code: response.CodeBadRequest, msg: "locator does not exist for this subinventory"},
	{target: service.ErrReceivedQtyInvalid, code: response.CodeBadRequest, msg: "received quantity must be at least 1"},
	{target: service.ErrReceivedByRequired, code: response.CodeBadRequest, msg: "received by is required"},
}

func respondTransitionError(c *gin.Context, err error) {
	respondWithMappedError(c, err, transitionErrorRules, response.CodeInternal, "transition failed")
}
