package prompt_fx

import (
	"go.uber.org/fx"

	"voyago/internal/services"
)

var Module = fx.Provide(
	services.NewPromptService)
