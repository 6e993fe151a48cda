package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"voyago/cmd/fx/catalog_fx"
	"voyago/cmd/fx/controllers_fx"
	"voyago/cmd/fx/db_fx"
	"voyago/cmd/fx/generation_fx"
	"voyago/cmd/fx/prompt_fx"
	"voyago/cmd/fx/saved_fx"
	"voyago/cmd/fx/session_fx"
	"voyago/internal/api/controllers"
	"voyago/pkg/middleware"
)

func main() {
	_ = godotenv.Load()

	app := fx.New(
		db_fx.Module,
		catalog_fx.Module,
		prompt_fx.Module,
		session_fx.Module,
		generation_fx.Module,
		saved_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Println("Starting HTTP server at ${PORT}")
				if err := engine.Run(":" + os.Getenv("PORT")); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	plannerController *controllers.PlannerController,
	savedController *controllers.SavedController,
	catalogController *controllers.CatalogController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, plannerController, savedController, catalogController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	plannerController *controllers.PlannerController,
	savedController *controllers.SavedController,
	catalogController *controllers.CatalogController) {

	catalogGroup := r.Group("/catalog")
	catalogGroup.GET("/questions", catalogController.GetQuestionsHandler)

	plannerGroup := r.Group("/planner/sessions")
	plannerGroup.POST("", plannerController.StartSessionHandler)
	plannerGroup.GET("/:id", plannerController.GetSessionHandler)
	plannerGroup.POST("/:id/answers", plannerController.SubmitAnswerHandler)
	plannerGroup.POST("/:id/next", plannerController.NextHandler)
	plannerGroup.POST("/:id/skip", plannerController.SkipHandler)
	plannerGroup.POST("/:id/prev", plannerController.PrevHandler)
	plannerGroup.POST("/:id/jump", plannerController.JumpHandler)
	plannerGroup.POST("/:id/reset", plannerController.ResetHandler)
	plannerGroup.POST("/:id/generate", plannerController.GenerateHandler)
	plannerGroup.POST("/:id/save", plannerController.SaveHandler)
	plannerGroup.POST("/:id/load/:savedId", plannerController.LoadSavedHandler)

	savedGroup := r.Group("/itineraries")
	savedGroup.GET("", savedController.ListItinerariesHandler)
	savedGroup.DELETE("/:id", savedController.DeleteItineraryHandler)
}
