package controllers_fx

import (
	"go.uber.org/fx"

	"voyago/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewPlannerController),
	fx.Provide(controllers.NewSavedController),
	fx.Provide(controllers.NewCatalogController))
