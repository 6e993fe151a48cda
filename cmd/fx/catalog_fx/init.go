package catalog_fx

import (
	"context"
	"log"
	"os"

	"go.uber.org/fx"

	"voyago/internal/services"
)

var Module = fx.Options(
	fx.Provide(ProvideCatalogService),
	fx.Invoke(registerCatalogLoader))

const defaultCatalogURL = "https://ai-planner.pages.dev/api/questions.json"

func ProvideCatalogService() services.CatalogServiceInterface {
	url := os.Getenv("CATALOG_URL")
	if url == "" {
		url = defaultCatalogURL
	}
	return services.NewCatalogService(url)
}

// The catalog loads in the background at startup. A failed fetch leaves the
// wizard in its loading state rather than crashing the process.
func registerCatalogLoader(lc fx.Lifecycle, catalogService services.CatalogServiceInterface) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := catalogService.Load(context.Background()); err != nil {
					log.Printf("Question catalog load failed: %v", err)
				}
			}()
			return nil
		},
	})
}
