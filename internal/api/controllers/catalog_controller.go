package controllers

import (
	"github.com/gin-gonic/gin"

	"voyago/internal/services"
	"voyago/pkg/utils"
)

type CatalogController struct {
	catalogService services.CatalogServiceInterface
}

func NewCatalogController(catalogService services.CatalogServiceInterface) *CatalogController {
	return &CatalogController{catalogService: catalogService}
}

func (ctl *CatalogController) GetQuestionsHandler(c *gin.Context) {
	catalog, err := ctl.catalogService.Get(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, catalog, "")
}
