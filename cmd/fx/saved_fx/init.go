package saved_fx

import (
	"go.uber.org/fx"

	"voyago/internal/repositories"
	"voyago/internal/services"
)

var Module = fx.Provide(
	repositories.NewSavedItineraryRepository,
	services.NewSavedService)
