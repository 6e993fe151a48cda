package utils

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func traceID(c *gin.Context) string {
	if v, ok := c.Get("trace_id"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: traceID(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceID(c),
	})
}

func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		RespondError(c, http.StatusNotFound, "Planner session not found")
	case errors.Is(err, ErrItineraryNotFound):
		RespondError(c, http.StatusNotFound, "Saved itinerary not found")
	case errors.Is(err, ErrQuestionNotFound):
		RespondError(c, http.StatusNotFound, "Question not found")
	case errors.Is(err, ErrAnswerRequired):
		RespondError(c, http.StatusUnprocessableEntity, "This question requires an answer before continuing")
	case errors.Is(err, ErrInvalidAnswerOp):
		RespondError(c, http.StatusBadRequest, "Answer operation does not match the question type")
	case errors.Is(err, ErrStepOutOfRange):
		RespondError(c, http.StatusBadRequest, "Step index out of range")
	case errors.Is(err, ErrCatalogNotReady):
		RespondError(c, http.StatusServiceUnavailable, "Question catalog is still loading")
	case errors.Is(err, ErrGenerationFailed):
		RespondError(c, http.StatusBadGateway, "Itinerary generation failed")
	case errors.Is(err, ErrDatabaseError):
		log.Printf("Database error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		log.Printf("Unknown error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
