package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"tarifler/internal/recipe"
)

// ErrUsernameTaken is returned when registering with an existing username.
var ErrUsernameTaken = errors.New("bu kullanıcı adı zaten kullanılıyor")

// ErrEmailTaken is returned when registering with an existing email address.
var ErrEmailTaken = errors.New("bu email adresi zaten kullanılıyor")

// Store defines user and favorite data operations.
type Store interface {
	CreateUser(ctx context.Context, username, email, passwordHash string) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	ListFavorites(ctx context.Context, userID int) ([]recipe.Recipe, error)
	AddFavorite(ctx context.Context, userID, recipeID int) error
	RemoveFavorite(ctx context.Context, userID, recipeID int) error
}

// PostgresStore implements the Store interface for PostgreSQL. It shares the
// database with the recipe store; the schema is bootstrapped there.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore creates a user store on an existing connection.
func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// CreateUser registers a new user after checking username and email
// uniqueness.
func (s *PostgresStore) CreateUser(ctx context.Context, username, email, passwordHash string) (*User, error) {
	var exists bool
	if err := s.db.QueryRowContext(ctx, "SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)", username).Scan(&exists); err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if exists {
		return nil, ErrUsernameTaken
	}
	if err := s.db.QueryRowContext(ctx, "SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)", email).Scan(&exists); err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, ErrEmailTaken
	}

	u := &User{Username: username, Email: email, PasswordHash: passwordHash}
	err := s.db.QueryRowContext(ctx,
		"INSERT INTO users (username, email, password_hash) VALUES ($1, $2, $3) RETURNING id",
		username, email, passwordHash,
	).Scan(&u.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return u, nil
}

// GetUserByUsername retrieves a user by username. Returns nil without error
// when the user does not exist.
func (s *PostgresStore) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	var u User
	query := "SELECT id, username, email, password_hash, profile_image, appearance FROM users WHERE username = $1"
	if err := s.db.GetContext(ctx, &u, query, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

// ListFavorites retrieves the recipes a user has favorited, newest first.
func (s *PostgresStore) ListFavorites(ctx context.Context, userID int) ([]recipe.Recipe, error) {
	var recipes []recipe.Recipe
	query := `SELECT r.id, r.title, r.ingredients, r.instructions, r.category_id, r.serving_size,
		r.preparation_time, r.cooking_time, r.tips, r.image_filename, r.views, r.user_id, r.username, r.created_at,
		(SELECT COUNT(*) FROM favorites f2 WHERE f2.recipe_id = r.id) AS favorite_count
	FROM favorites f
	JOIN recipes r ON r.id = f.recipe_id
	WHERE f.user_id = $1
	ORDER BY f.created_at DESC`
	if err := s.db.SelectContext(ctx, &recipes, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	return recipes, nil
}

// AddFavorite marks a recipe as a favorite of the user. Adding an existing
// favorite is a no-op.
func (s *PostgresStore) AddFavorite(ctx context.Context, userID, recipeID int) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO favorites (user_id, recipe_id) VALUES ($1, $2) ON CONFLICT (user_id, recipe_id) DO NOTHING",
		userID, recipeID,
	)
	if err != nil {
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	return nil
}

// RemoveFavorite removes a recipe from the user's favorites.
func (s *PostgresStore) RemoveFavorite(ctx context.Context, userID, recipeID int) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM favorites WHERE user_id = $1 AND recipe_id = $2",
		userID, recipeID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	return nil
}
