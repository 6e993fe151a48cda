package controllers

import (
	"github.com/gin-gonic/gin"

	"voyago/internal/models/response_models"
	"voyago/internal/services"
	"voyago/pkg/utils"
)

type SavedController struct {
	savedService services.SavedServiceInterface
}

func NewSavedController(savedService services.SavedServiceInterface) *SavedController {
	return &SavedController{savedService: savedService}
}

func (s *SavedController) ListItinerariesHandler(c *gin.Context) {
	items := s.savedService.List(c.Request.Context())
	utils.RespondSuccess(c, response_models.SavedItineraryList{Items: items}, "")
}

func (s *SavedController) DeleteItineraryHandler(c *gin.Context) {
	if err := s.savedService.Remove(c.Request.Context(), c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Itinerary deleted")
}
