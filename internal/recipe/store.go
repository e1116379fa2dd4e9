package recipe

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Store defines read/write access to recipes, categories, comments and the
// favorite-count aggregate. The discovery pipeline only uses SearchCandidates
// and ListCategories; the rest backs the plain CRUD endpoints.
type Store interface {
	SearchCandidates(ctx context.Context, q Query) ([]Recipe, error)
	ListRecipes(ctx context.Context) ([]Recipe, error)
	ListRecipesByCategory(ctx context.Context, categoryID int) ([]Recipe, error)
	TopRecipes(ctx context.Context) ([]Recipe, error)
	SearchRecipes(ctx context.Context, term string) ([]Recipe, error)
	GetRecipe(ctx context.Context, id int) (*Recipe, error)
	SetRecipeImage(ctx context.Context, id int, filename string) error
	ListCategories(ctx context.Context) ([]Category, error)
	ListComments(ctx context.Context, recipeID int) ([]Comment, error)
	AddComment(ctx context.Context, c *Comment) error
	RateRecipe(ctx context.Context, userID, recipeID, score int) error
	RecipeRating(ctx context.Context, recipeID int) (*Rating, error)
}

// recipeColumns is the shared select list; favorite_count is an aggregate
// over the favorites table, not a stored column.
const recipeColumns = `r.id, r.title, r.ingredients, r.instructions, r.category_id, r.serving_size,
	r.preparation_time, r.cooking_time, r.tips, r.image_filename, r.views, r.user_id, r.username, r.created_at,
	(SELECT COUNT(*) FROM favorites f WHERE f.recipe_id = r.id) AS favorite_count`

// PostgresStore implements the Store interface for PostgreSQL.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore connects to the database and ensures the schema exists.
func NewPostgresStore(dataSourceName string) (*PostgresStore, error) {
	db, err := sqlx.Connect("postgres", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS categories (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL UNIQUE
	);

	CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		profile_image TEXT NOT NULL DEFAULT '',
		appearance TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS recipes (
		id SERIAL PRIMARY KEY,
		title TEXT NOT NULL,
		ingredients TEXT NOT NULL DEFAULT '',
		instructions TEXT NOT NULL DEFAULT '',
		category_id INTEGER NOT NULL DEFAULT 0,
		serving_size TEXT NOT NULL DEFAULT '',
		preparation_time TEXT NOT NULL DEFAULT '',
		cooking_time TEXT NOT NULL DEFAULT '',
		tips TEXT NOT NULL DEFAULT '',
		image_filename TEXT NOT NULL DEFAULT '',
		views INTEGER NOT NULL DEFAULT 0,
		user_id INTEGER NOT NULL DEFAULT 0,
		username TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);

	CREATE TABLE IF NOT EXISTS favorites (
		id SERIAL PRIMARY KEY,
		user_id INTEGER NOT NULL,
		recipe_id INTEGER NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (user_id, recipe_id)
	);

	CREATE TABLE IF NOT EXISTS comments (
		id SERIAL PRIMARY KEY,
		recipe_id INTEGER NOT NULL,
		user_id INTEGER NOT NULL,
		username TEXT NOT NULL DEFAULT '',
		body TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);

	CREATE TABLE IF NOT EXISTS ratings (
		id SERIAL PRIMARY KEY,
		recipe_id INTEGER NOT NULL,
		user_id INTEGER NOT NULL,
		score INTEGER NOT NULL CHECK (score BETWEEN 1 AND 5),
		UNIQUE (user_id, recipe_id)
	);
	`
	if _, err = db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	// Seed the fixed category set. IDs are stable because the category
	// name -> id mapping used by the discovery filters depends on them.
	seed := `
	INSERT INTO categories (id, name) VALUES
		(1, 'Ana Yemek'),
		(2, 'Çorba'),
		(3, 'Salata'),
		(4, 'Tatlı'),
		(5, 'Hamur İşi'),
		(6, 'İçecek')
	ON CONFLICT (id) DO NOTHING;
	`
	if _, err = db.Exec(seed); err != nil {
		return nil, fmt.Errorf("failed to seed categories: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

// DB exposes the underlying connection so other stores can share it.
func (s *PostgresStore) DB() *sqlx.DB {
	return s.db
}

// SearchCandidates executes a compiled candidate query. Results are ordered
// by descending favorite count; the query itself only filters.
func (s *PostgresStore) SearchCandidates(ctx context.Context, q Query) ([]Recipe, error) {
	if q.Where == nil {
		return nil, fmt.Errorf("candidate query has no predicate")
	}

	where, args, err := CompileWhere(q.Where)
	if err != nil {
		return nil, fmt.Errorf("failed to compile candidate query: %w", err)
	}

	query := fmt.Sprintf("SELECT %s FROM recipes r WHERE %s ORDER BY favorite_count DESC, r.views DESC", recipeColumns, where)

	var recipes []Recipe
	if err := s.db.SelectContext(ctx, &recipes, query, args...); err != nil {
		return nil, fmt.Errorf("failed to search candidates: %w", err)
	}
	return recipes, nil
}

// ListRecipes retrieves all recipes ordered by views.
func (s *PostgresStore) ListRecipes(ctx context.Context) ([]Recipe, error) {
	var recipes []Recipe
	query := fmt.Sprintf("SELECT %s FROM recipes r ORDER BY r.views DESC", recipeColumns)
	if err := s.db.SelectContext(ctx, &recipes, query); err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return recipes, nil
}

// ListRecipesByCategory retrieves all recipes in a category ordered by views.
func (s *PostgresStore) ListRecipesByCategory(ctx context.Context, categoryID int) ([]Recipe, error) {
	var recipes []Recipe
	query := fmt.Sprintf("SELECT %s FROM recipes r WHERE r.category_id = $1 ORDER BY r.views DESC", recipeColumns)
	if err := s.db.SelectContext(ctx, &recipes, query, categoryID); err != nil {
		return nil, fmt.Errorf("failed to list recipes by category: %w", err)
	}
	return recipes, nil
}

// TopRecipes retrieves the ten most viewed recipes.
func (s *PostgresStore) TopRecipes(ctx context.Context) ([]Recipe, error) {
	var recipes []Recipe
	query := fmt.Sprintf("SELECT %s FROM recipes r ORDER BY r.views DESC LIMIT 10", recipeColumns)
	if err := s.db.SelectContext(ctx, &recipes, query); err != nil {
		return nil, fmt.Errorf("failed to list top recipes: %w", err)
	}
	return recipes, nil
}

// SearchRecipes retrieves recipes whose title, ingredients or instructions
// contain the search term.
func (s *PostgresStore) SearchRecipes(ctx context.Context, term string) ([]Recipe, error) {
	var recipes []Recipe
	query := fmt.Sprintf(
		"SELECT %s FROM recipes r WHERE r.title ILIKE $1 OR r.ingredients ILIKE $1 OR r.instructions ILIKE $1 ORDER BY r.views DESC",
		recipeColumns,
	)
	if err := s.db.SelectContext(ctx, &recipes, query, "%"+term+"%"); err != nil {
		return nil, fmt.Errorf("failed to search recipes: %w", err)
	}
	return recipes, nil
}

// GetRecipe retrieves a single recipe by id and increments its view count.
// Returns nil without error when the recipe does not exist.
func (s *PostgresStore) GetRecipe(ctx context.Context, id int) (*Recipe, error) {
	var r Recipe
	query := fmt.Sprintf("SELECT %s FROM recipes r WHERE r.id = $1", recipeColumns)
	if err := s.db.GetContext(ctx, &r, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, "UPDATE recipes SET views = views + 1 WHERE id = $1", id); err != nil {
		return nil, fmt.Errorf("failed to increment views: %w", err)
	}
	r.Views++

	return &r, nil
}

// SetRecipeImage records the stored image filename for a recipe.
func (s *PostgresStore) SetRecipeImage(ctx context.Context, id int, filename string) error {
	res, err := s.db.ExecContext(ctx, "UPDATE recipes SET image_filename = $2 WHERE id = $1", id, filename)
	if err != nil {
		return fmt.Errorf("failed to set recipe image: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to set recipe image: %w", err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListCategories retrieves all categories ordered by name.
func (s *PostgresStore) ListCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := s.db.SelectContext(ctx, &categories, "SELECT id, name FROM categories ORDER BY name"); err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// ListComments retrieves all comments on a recipe, newest first.
func (s *PostgresStore) ListComments(ctx context.Context, recipeID int) ([]Comment, error) {
	var comments []Comment
	query := "SELECT id, recipe_id, user_id, username, body, created_at FROM comments WHERE recipe_id = $1 ORDER BY created_at DESC"
	if err := s.db.SelectContext(ctx, &comments, query, recipeID); err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// AddComment saves a comment and fills in its generated id and timestamp.
func (s *PostgresStore) AddComment(ctx context.Context, c *Comment) error {
	query := "INSERT INTO comments (recipe_id, user_id, username, body) VALUES ($1, $2, $3, $4) RETURNING id, created_at"
	if err := s.db.QueryRowContext(ctx, query, c.RecipeID, c.UserID, c.Username, c.Body).Scan(&c.ID, &c.CreatedAt); err != nil {
		return fmt.Errorf("failed to add comment: %w", err)
	}
	return nil
}

// RateRecipe records a user's score for a recipe, replacing any earlier one.
func (s *PostgresStore) RateRecipe(ctx context.Context, userID, recipeID, score int) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO ratings (recipe_id, user_id, score) VALUES ($1, $2, $3) ON CONFLICT (user_id, recipe_id) DO UPDATE SET score = $3",
		recipeID, userID, score,
	)
	if err != nil {
		return fmt.Errorf("failed to rate recipe: %w", err)
	}
	return nil
}

// RecipeRating retrieves the average score and vote count for a recipe.
func (s *PostgresStore) RecipeRating(ctx context.Context, recipeID int) (*Rating, error) {
	var r Rating
	r.RecipeID = recipeID
	err := s.db.QueryRowContext(ctx,
		"SELECT COALESCE(AVG(score), 0), COUNT(*) FROM ratings WHERE recipe_id = $1", recipeID,
	).Scan(&r.Average, &r.Count)
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe rating: %w", err)
	}
	return &r, nil
}
