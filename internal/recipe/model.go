package recipe

import "time"

// Recipe represents a stored recipe row. Ingredients and instructions are
// free text as entered by the author; the discovery pipeline matches against
// them with substring predicates rather than parsing them.
type Recipe struct {
	ID              int       `json:"id" db:"id"`
	Title           string    `json:"title" db:"title"`
	Ingredients     string    `json:"ingredients" db:"ingredients"`
	Instructions    string    `json:"instructions" db:"instructions"`
	CategoryID      int       `json:"category_id" db:"category_id"`
	ServingSize     string    `json:"serving_size" db:"serving_size"`
	PreparationTime string    `json:"preparation_time" db:"preparation_time"`
	CookingTime     string    `json:"cooking_time" db:"cooking_time"`
	Tips            string    `json:"tips" db:"tips"`
	ImageFilename   string    `json:"image_filename" db:"image_filename"`
	Views           int       `json:"views" db:"views"`
	UserID          int       `json:"user_id" db:"user_id"`
	Username        string    `json:"username" db:"username"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	FavoriteCount   int       `json:"favorite_count" db:"favorite_count"`
}

// Category represents a recipe category row.
type Category struct {
	ID   int    `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// Comment represents a comment left on a recipe.
type Comment struct {
	ID        int       `json:"id" db:"id"`
	RecipeID  int       `json:"recipe_id" db:"recipe_id"`
	UserID    int       `json:"user_id" db:"user_id"`
	Username  string    `json:"username" db:"username"`
	Body      string    `json:"body" db:"body"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Rating is the aggregated rating of a recipe.
type Rating struct {
	RecipeID int     `json:"recipe_id"`
	Average  float64 `json:"average"`
	Count    int     `json:"count"`
}
