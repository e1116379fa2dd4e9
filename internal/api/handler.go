package api

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tarifler/internal/recipe"
	"tarifler/internal/suggest"
	"tarifler/internal/user"
)

// maxAISuggestions caps the number of AI-suggested recipes returned to the
// client. Extraction itself is uncapped; the cut happens here at the
// boundary.
const maxAISuggestions = 8

// RecipeStore defines the interface for recipe data operations.
type RecipeStore interface {
	SearchCandidates(ctx context.Context, q recipe.Query) ([]recipe.Recipe, error)
	ListRecipes(ctx context.Context) ([]recipe.Recipe, error)
	ListRecipesByCategory(ctx context.Context, categoryID int) ([]recipe.Recipe, error)
	TopRecipes(ctx context.Context) ([]recipe.Recipe, error)
	SearchRecipes(ctx context.Context, term string) ([]recipe.Recipe, error)
	GetRecipe(ctx context.Context, id int) (*recipe.Recipe, error)
	SetRecipeImage(ctx context.Context, id int, filename string) error
	ListCategories(ctx context.Context) ([]recipe.Category, error)
	ListComments(ctx context.Context, recipeID int) ([]recipe.Comment, error)
	AddComment(ctx context.Context, c *recipe.Comment) error
	RateRecipe(ctx context.Context, userID, recipeID, score int) error
	RecipeRating(ctx context.Context, recipeID int) (*recipe.Rating, error)
}

// UserStore defines the interface for user and favorite data operations.
type UserStore interface {
	CreateUser(ctx context.Context, username, email, passwordHash string) (*user.User, error)
	GetUserByUsername(ctx context.Context, username string) (*user.User, error)
	ListFavorites(ctx context.Context, userID int) ([]recipe.Recipe, error)
	AddFavorite(ctx context.Context, userID, recipeID int) error
	RemoveFavorite(ctx context.Context, userID, recipeID int) error
}

// SuggestionExtractor defines the interface for AI-assisted recipe
// extraction.
type SuggestionExtractor interface {
	Extract(ctx context.Context, ingredients []string) ([]suggest.Draft, error)
}

// Handler handles HTTP requests.
type Handler struct {
	RecipeStore RecipeStore
	UserStore   UserStore
	Extractor   SuggestionExtractor
	Tokens      *TokenIssuer
	Logger      *zap.Logger
}

// NewHandler creates a new Handler.
func NewHandler(recipeStore RecipeStore, userStore UserStore, extractor SuggestionExtractor, tokens *TokenIssuer, logger *zap.Logger) *Handler {
	return &Handler{
		RecipeStore: recipeStore,
		UserStore:   userStore,
		Extractor:   extractor,
		Tokens:      tokens,
		Logger:      logger,
	}
}

// Home reports that the API is up.
func (h *Handler) Home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Lezzetli Tarifler API çalışıyor!"})
}

// SuggestRecipes handles ingredient-driven recipe discovery. The request
// names selected ingredients plus optional category, serving-size and
// cooking-time filters; the response is at most fifteen candidate recipes.
func (h *Handler) SuggestRecipes(c *gin.Context) {
	var criteria suggest.SelectionCriteria
	if err := c.ShouldBindJSON(&criteria); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid request body: %s", err.Error())})
		return
	}

	q, err := suggest.BuildQuery(criteria)
	if err != nil {
		if errors.Is(err, suggest.ErrNoIngredients) {
			// No selection never means "match everything".
			c.JSON(http.StatusOK, []recipe.Recipe{})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	candidates, err := h.RecipeStore.SearchCandidates(ctx, q)
	if err != nil {
		h.Logger.Error("candidate search failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	results := suggest.Refine(candidates, criteria)
	if results == nil {
		results = []recipe.Recipe{}
	}
	c.JSON(http.StatusOK, results)
}

// AISuggestRecipes handles AI-assisted recipe discovery. Ingredients are
// recognized in the user's free-text message before anything goes upstream;
// a message with no recognizable ingredients is rejected without a model
// call.
func (h *Handler) AISuggestRecipes(c *gin.Context) {
	var req struct {
		UserMessage string `json:"user_message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid request body: %s", err.Error())})
		return
	}

	ingredients := suggest.RecognizeIngredients(req.UserMessage)
	if len(ingredients) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no recognizable ingredients found"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 45*time.Second)
	defer cancel()

	drafts, err := h.Extractor.Extract(ctx, ingredients)
	if err != nil {
		h.Logger.Error("ai suggestion failed", zap.Error(err), zap.Strings("ingredients", ingredients))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	results := make([]suggest.Draft, 0, maxAISuggestions)
	for _, d := range drafts {
		if len(results) == maxAISuggestions {
			break
		}
		results = append(results, suggest.Normalize(d))
	}

	h.Logger.Info("ai suggestions served",
		zap.Int("extracted", len(drafts)),
		zap.Int("returned", len(results)),
	)
	c.JSON(http.StatusOK, results)
}

// GetCategories handles requests to list all categories.
func (h *Handler) GetCategories(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	categories, err := h.RecipeStore.ListCategories(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, categories)
}

// GetRecipes handles requests to list all recipes.
func (h *Handler) GetRecipes(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	recipes, err := h.RecipeStore.ListRecipes(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, recipes)
}

// GetRecipe handles requests to retrieve a single recipe by id.
func (h *Handler) GetRecipe(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	r, err := h.RecipeStore.GetRecipe(ctx, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if r == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "tarif bulunamadı"})
		return
	}
	c.JSON(http.StatusOK, r)
}

// GetRecipesByCategory handles requests to list recipes in a category.
func (h *Handler) GetRecipesByCategory(c *gin.Context) {
	categoryID, err := strconv.Atoi(c.Param("category_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	recipes, err := h.RecipeStore.ListRecipesByCategory(ctx, categoryID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, recipes)
}

// GetTopRecipes handles requests to list the most viewed recipes.
func (h *Handler) GetTopRecipes(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	recipes, err := h.RecipeStore.TopRecipes(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, recipes)
}

// SearchRecipes handles free-text recipe search.
func (h *Handler) SearchRecipes(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	recipes, err := h.RecipeStore.SearchRecipes(ctx, c.Query("q"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, recipes)
}

// GetComments handles requests to list a recipe's comments.
func (h *Handler) GetComments(c *gin.Context) {
	recipeID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	comments, err := h.RecipeStore.ListComments(ctx, recipeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, comments)
}

// AddComment handles requests to comment on a recipe. Requires auth.
func (h *Handler) AddComment(c *gin.Context) {
	recipeID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	var req struct {
		Body string `json:"body" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "yorum metni gereklidir"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	comment := &recipe.Comment{
		RecipeID: recipeID,
		UserID:   c.GetInt(ctxUserID),
		Username: c.GetString(ctxUsername),
		Body:     req.Body,
	}
	if err := h.RecipeStore.AddComment(ctx, comment); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// RateRecipe handles requests to rate a recipe. Requires auth.
func (h *Handler) RateRecipe(c *gin.Context) {
	recipeID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	var req struct {
		Score int `json:"score" binding:"required,min=1,max=5"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "puan 1 ile 5 arasında olmalıdır"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.RecipeStore.RateRecipe(ctx, c.GetInt(ctxUserID), recipeID, req.Score); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	rating, err := h.RecipeStore.RecipeRating(ctx, recipeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rating)
}

// GetRating handles requests for a recipe's aggregated rating.
func (h *Handler) GetRating(c *gin.Context) {
	recipeID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	rating, err := h.RecipeStore.RecipeRating(ctx, recipeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rating)
}

// GetFavorites handles requests to list the caller's favorite recipes.
// Requires auth.
func (h *Handler) GetFavorites(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	recipes, err := h.UserStore.ListFavorites(ctx, c.GetInt(ctxUserID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if recipes == nil {
		recipes = []recipe.Recipe{}
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

// AddFavorite handles requests to favorite a recipe. Requires auth.
func (h *Handler) AddFavorite(c *gin.Context) {
	recipeID, err := strconv.Atoi(c.Param("recipe_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.UserStore.AddFavorite(ctx, c.GetInt(ctxUserID), recipeID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "tarif favorilere eklendi"})
}

// RemoveFavorite handles requests to unfavorite a recipe. Requires auth.
func (h *Handler) RemoveFavorite(c *gin.Context) {
	recipeID, err := strconv.Atoi(c.Param("recipe_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.UserStore.RemoveFavorite(ctx, c.GetInt(ctxUserID), recipeID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "tarif favorilerden çıkarıldı"})
}

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
