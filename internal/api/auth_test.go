package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tarifler/internal/user"
)

func newAuthRouter() (*gin.Engine, *mockUserStore) {
	gin.SetMode(gin.TestMode)
	userStore := newMockUserStore()
	handler := NewHandler(newMockRecipeStore(), userStore, &mockExtractor{}, NewTokenIssuer("test-secret"), zap.NewNop())

	r := gin.New()
	r.POST("/api/auth/register", handler.Register)
	r.POST("/api/auth/login", handler.Login)

	authed := r.Group("/api", handler.AuthRequired())
	authed.GET("/favorites", handler.GetFavorites)
	authed.POST("/favorites/:recipe_id", handler.AddFavorite)
	return r, userStore
}

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")

	token, err := issuer.Issue(&user.User{ID: 7, Username: "ayse"})
	require.NoError(t, err)

	userID, username, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, 7, userID)
	assert.Equal(t, "ayse", username)
}

func TestTokenIssuer_RejectsWrongSecret(t *testing.T) {
	token, err := NewTokenIssuer("secret-a").Issue(&user.User{ID: 1, Username: "ayse"})
	require.NoError(t, err)

	_, _, err = NewTokenIssuer("secret-b").Verify(token)
	assert.Error(t, err)
}

func TestRegisterAndLogin(t *testing.T) {
	r, userStore := newAuthRouter()

	rr := postJSON(r, "/api/auth/register", gin.H{
		"username": "ayse",
		"email":    "ayse@example.com",
		"password": "gizli123",
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	var registered map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &registered))
	assert.NotEmpty(t, registered["token"])

	// Stored password is a bcrypt hash, never the plaintext.
	stored := userStore.users["ayse"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "gizli123", stored.PasswordHash)
	assert.NotContains(t, string(registered["user"]), "gizli123")

	rr = postJSON(r, "/api/auth/login", gin.H{
		"username": "ayse",
		"password": "gizli123",
	})
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = postJSON(r, "/api/auth/login", gin.H{
		"username": "ayse",
		"password": "yanlis",
	})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	r, _ := newAuthRouter()

	body := gin.H{"username": "ayse", "email": "ayse@example.com", "password": "gizli123"}
	rr := postJSON(r, "/api/auth/register", body)
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = postJSON(r, "/api/auth/register", body)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRegister_RejectsShortPassword(t *testing.T) {
	r, _ := newAuthRouter()

	rr := postJSON(r, "/api/auth/register", gin.H{
		"username": "ayse",
		"email":    "ayse@example.com",
		"password": "kisa",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestLogin_UnknownUser(t *testing.T) {
	r, _ := newAuthRouter()

	rr := postJSON(r, "/api/auth/login", gin.H{"username": "yok", "password": "gizli123"})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuthRequired(t *testing.T) {
	r, _ := newAuthRouter()

	// No token.
	req := httptest.NewRequest(http.MethodGet, "/api/favorites", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	// Garbage token.
	req = httptest.NewRequest(http.MethodGet, "/api/favorites", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	// Valid token reaches the handler and scopes data to the caller.
	token, err := NewTokenIssuer("test-secret").Issue(&user.User{ID: 3, Username: "ayse"})
	require.NoError(t, err)

	req = httptest.NewRequest(http.MethodPost, "/api/favorites/12", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/favorites", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Recipes []struct {
			ID int `json:"id"`
		} `json:"recipes"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Len(t, body.Recipes, 1)
	assert.Equal(t, 12, body.Recipes[0].ID)
}
