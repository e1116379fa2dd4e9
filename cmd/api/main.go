package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tarifler/internal/api"
	"tarifler/internal/config"
	"tarifler/internal/platform/gemini"
	"tarifler/internal/platform/localllm"
	"tarifler/internal/recipe"
	"tarifler/internal/suggest"
	"tarifler/internal/user"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Errorf("failed to load config: %w", err))
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		panic(fmt.Errorf("failed to create logger: %w", err))
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	recipeStore, err := recipe.NewPostgresStore(cfg.DB.URL)
	if err != nil {
		logger.Fatal("failed to create recipe store", zap.Error(err))
	}
	userStore := user.NewPostgresStore(recipeStore.DB())

	var generator suggest.TextGenerator
	if cfg.Gemini.LocalURL != "" {
		generator = localllm.NewClient(cfg.Gemini.LocalURL, cfg.Gemini.Model)
		logger.Info("using local llm", zap.String("url", cfg.Gemini.LocalURL))
	} else {
		generator, err = gemini.NewClient(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			logger.Fatal("failed to create gemini client", zap.Error(err))
		}
	}
	extractor := suggest.NewExtractor(generator)

	tokens := api.NewTokenIssuer(cfg.Auth.JWTSecret)
	handler := api.NewHandler(recipeStore, userStore, extractor, tokens, logger)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORS.AllowOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/", handler.Home)

	// Ingredient-driven discovery.
	r.POST("/recipes/suggest", handler.SuggestRecipes)
	r.POST("/recipes/ai-suggest", handler.AISuggestRecipes)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/categories", handler.GetCategories)
		apiGroup.GET("/recipes", handler.GetRecipes)
		apiGroup.GET("/recipes/search", handler.SearchRecipes)
		apiGroup.GET("/recipes/category/:category_id", handler.GetRecipesByCategory)
		apiGroup.GET("/recipes/:id", handler.GetRecipe)
		apiGroup.GET("/recipes/:id/comments", handler.GetComments)
		apiGroup.GET("/recipes/:id/rating", handler.GetRating)
		apiGroup.GET("/top-recipes", handler.GetTopRecipes)

		apiGroup.POST("/auth/register", handler.Register)
		apiGroup.POST("/auth/login", handler.Login)

		authed := apiGroup.Group("")
		authed.Use(handler.AuthRequired())
		{
			authed.GET("/favorites", handler.GetFavorites)
			authed.POST("/favorites/:recipe_id", handler.AddFavorite)
			authed.DELETE("/favorites/:recipe_id", handler.RemoveFavorite)
			authed.POST("/recipes/:id/comments", handler.AddComment)
			authed.POST("/recipes/:id/rating", handler.RateRecipe)
			authed.POST("/recipes/:id/image", handler.UploadRecipeImage)
		}
	}

	r.Static("/images", "./images")

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	logger.Info("starting server", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func newLogger(level string) (*zap.Logger, error) {
	if level == "debug" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
