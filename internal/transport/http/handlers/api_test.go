package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ivanmarin/orbit/internal/logger"
	"github.com/ivanmarin/orbit/internal/service"
	"github.com/ivanmarin/orbit/internal/transport/http/middleware"
)

// testAPI wires the full route table over in-memory repositories, the
// same way cmd/server does over postgres.
type testAPI struct {
	mux   *http.ServeMux
	store *memStore
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	log := logger.New(0)
	store := &memStore{}
	users := &memUserRepo{s: store}
	follows := &memFollowRepo{s: store}
	activities := &memActivityRepo{s: store}

	tokens := service.NewTokenIssuer("test-secret", 2*time.Hour)
	authService := service.NewAuthService(users, tokens)
	profileService := service.NewProfileService(users, follows, activities, nil)
	followService := service.NewFollowService(follows, users, nil)
	adminService := service.NewAdminService(users, follows)

	authHandler := NewAuthHandler(authService, log)
	profileHandler := NewProfileHandler(profileService, log)
	followHandler := NewFollowHandler(followService, log)
	adminHandler := NewAdminHandler(adminService, log)

	auth := middleware.Auth(tokens, users)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /signup", authHandler.Signup)
	mux.HandleFunc("POST /login", authHandler.Login)
	mux.Handle("GET /profile", auth(http.HandlerFunc(profileHandler.GetOwn)))
	mux.Handle("PUT /profile", auth(http.HandlerFunc(profileHandler.Update)))
	mux.Handle("GET /profile/activity", auth(http.HandlerFunc(profileHandler.Activity)))
	mux.Handle("GET /profile/{id}", auth(http.HandlerFunc(profileHandler.Get)))
	mux.Handle("POST /follow/{id}", auth(http.HandlerFunc(followHandler.Follow)))
	mux.Handle("DELETE /unfollow/{id}", auth(http.HandlerFunc(followHandler.Unfollow)))
	mux.Handle("GET /admin/users", auth(middleware.RequireAdmin(http.HandlerFunc(adminHandler.ListUserSummaries))))
	mux.Handle("GET /admin/all_users", auth(middleware.RequireAdmin(http.HandlerFunc(adminHandler.ListUsers))))
	mux.Handle("GET /admin/all_follows", auth(middleware.RequireAdmin(http.HandlerFunc(adminHandler.ListFollows))))

	return &testAPI{mux: mux, store: store}
}

func (api *testAPI) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	api.mux.ServeHTTP(rec, req)
	return rec
}

// signup creates a user and returns a login token.
func (api *testAPI) signup(t *testing.T, name, email, password string) string {
	t.Helper()

	rec := api.do(t, http.MethodPost, "/signup", "", map[string]string{
		"name": name, "email": email, "password": password,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = api.do(t, http.MethodPost, "/login", "", map[string]string{
		"email": email, "password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestSignupLogin(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)

	t.Run("signup then login", func(t *testing.T) {
		rec := api.do(t, http.MethodPost, "/signup", "", map[string]string{
			"name": "A", "email": "a@x.com", "password": "secret1",
		})
		require.Equal(t, http.StatusCreated, rec.Code)
		require.Contains(t, rec.Body.String(), "User created successfully")

		rec = api.do(t, http.MethodPost, "/login", "", map[string]string{
			"email": "a@x.com", "password": "secret1",
		})
		require.Equal(t, http.StatusOK, rec.Code)
		var resp struct {
			Token string `json:"token"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.NotEmpty(t, resp.Token)
	})

	t.Run("missing required fields", func(t *testing.T) {
		rec := api.do(t, http.MethodPost, "/signup", "", map[string]string{"email": "b@x.com"})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "Name, email, and password required!")
	})

	t.Run("duplicate email", func(t *testing.T) {
		rec := api.do(t, http.MethodPost, "/signup", "", map[string]string{
			"name": "A2", "email": "a@x.com", "password": "secret2",
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "User already exists")
		require.Len(t, api.store.users, 1)
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := api.do(t, http.MethodPost, "/login", "", map[string]string{
			"email": "a@x.com", "password": "nope",
		})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Body.String(), "Login failed!")
	})
}

func TestFollowEndpoints(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)

	tokenA := api.signup(t, "A", "a@x.com", "secret1")
	api.signup(t, "B", "b@x.com", "secret2")
	idA := api.store.users[0].ID
	idB := api.store.users[1].ID

	t.Run("self follow", func(t *testing.T) {
		rec := api.do(t, http.MethodPost, "/follow/"+idA.String(), tokenA, nil)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "You can't follow yourself.")
	})

	t.Run("unknown target", func(t *testing.T) {
		rec := api.do(t, http.MethodPost, "/follow/not-a-uuid", tokenA, nil)
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("follow and counts", func(t *testing.T) {
		rec := api.do(t, http.MethodPost, "/follow/"+idB.String(), tokenA, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "User followed.")

		rec = api.do(t, http.MethodGet, "/profile", tokenA, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var view struct {
			Following int `json:"following"`
			Followers int `json:"followers"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
		require.Equal(t, 1, view.Following)
		require.Equal(t, 0, view.Followers)
	})

	t.Run("double follow", func(t *testing.T) {
		rec := api.do(t, http.MethodPost, "/follow/"+idB.String(), tokenA, nil)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "Already following.")
		require.Len(t, api.store.follows, 1)
	})

	t.Run("unfollow twice", func(t *testing.T) {
		rec := api.do(t, http.MethodDelete, "/unfollow/"+idB.String(), tokenA, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "Unfollowed.")

		rec = api.do(t, http.MethodDelete, "/unfollow/"+idB.String(), tokenA, nil)
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Contains(t, rec.Body.String(), "Not following this user.")
	})
}

func TestProfileEndpoints(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)

	tokenA := api.signup(t, "A", "a@x.com", "secret1")
	tokenB := api.signup(t, "B", "b@x.com", "secret2")
	idB := api.store.users[1].ID

	t.Run("unauthenticated", func(t *testing.T) {
		rec := api.do(t, http.MethodGet, "/profile", "", nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Body.String(), "Token is missing!")
	})

	t.Run("update and read back", func(t *testing.T) {
		rec := api.do(t, http.MethodPut, "/profile", tokenA, map[string]any{
			"bio": "hello", "date_of_birth": "1990-06-15", "is_private": true,
		})
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "Profile updated successfully")

		rec = api.do(t, http.MethodGet, "/profile", tokenA, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), `"bio":"hello"`)
		require.Contains(t, rec.Body.String(), `"date_of_birth":"1990-06-15"`)
	})

	t.Run("invalid date", func(t *testing.T) {
		rec := api.do(t, http.MethodPut, "/profile", tokenA, map[string]any{
			"date_of_birth": "June 15 1990",
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "Invalid date format. Use YYYY-MM-DD.")
	})

	t.Run("private profile hidden from others", func(t *testing.T) {
		idA := api.store.users[0].ID
		rec := api.do(t, http.MethodGet, "/profile/"+idA.String(), tokenB, nil)
		require.Equal(t, http.StatusForbidden, rec.Code)
		require.Contains(t, rec.Body.String(), "This profile is private.")
	})

	t.Run("public view hides email", func(t *testing.T) {
		rec := api.do(t, http.MethodGet, "/profile/"+idB.String(), tokenA, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.NotContains(t, rec.Body.String(), "b@x.com")
		require.Contains(t, rec.Body.String(), `"name":"B"`)
	})

	t.Run("recent activity feed", func(t *testing.T) {
		rec := api.do(t, http.MethodGet, "/profile/activity", tokenA, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "profile_update")
		require.Contains(t, rec.Body.String(), "join")
	})
}

func TestAdminEndpoints(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)

	tokenA := api.signup(t, "A", "a@x.com", "secret1")
	tokenB := api.signup(t, "B", "b@x.com", "secret2")
	api.store.users[0].IsAdmin = true

	t.Run("non-admin forbidden", func(t *testing.T) {
		rec := api.do(t, http.MethodGet, "/admin/users", tokenB, nil)
		require.Equal(t, http.StatusForbidden, rec.Code)
		require.Contains(t, rec.Body.String(), "Admin access required")
	})

	t.Run("admin lists summaries", func(t *testing.T) {
		rec := api.do(t, http.MethodGet, "/admin/users", tokenA, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "a@x.com")
		require.Contains(t, rec.Body.String(), "b@x.com")
		// Summaries carry no profile fields.
		require.NotContains(t, rec.Body.String(), "theme_pref")
	})

	t.Run("admin lists full users and follows", func(t *testing.T) {
		rec := api.do(t, http.MethodGet, "/admin/all_users", tokenA, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "theme_pref")

		rec = api.do(t, http.MethodGet, "/admin/all_follows", tokenA, nil)
		require.Equal(t, http.StatusOK, rec.Code)
	})
}
