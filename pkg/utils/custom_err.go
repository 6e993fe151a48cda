package utils

import "errors"

var (
	ErrCatalogNotReady   = errors.New("question catalog not loaded")
	ErrQuestionNotFound  = errors.New("question not found")
	ErrSessionNotFound   = errors.New("planner session not found")
	ErrAnswerRequired    = errors.New("answer required before continuing")
	ErrInvalidAnswerOp   = errors.New("invalid answer operation for question type")
	ErrStepOutOfRange    = errors.New("step index out of range")
	ErrItineraryNotFound = errors.New("saved itinerary not found")
	ErrGenerationFailed  = errors.New("itinerary generation failed")
	ErrDatabaseError     = errors.New("database error")
)
