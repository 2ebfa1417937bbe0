package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ivanmarin/orbit/internal/config"
	"github.com/ivanmarin/orbit/internal/database"
	"github.com/ivanmarin/orbit/internal/logger"
	postgresrepo "github.com/ivanmarin/orbit/internal/repository/postgres"
	"github.com/ivanmarin/orbit/internal/service"
	"github.com/ivanmarin/orbit/internal/transport/http/handlers"
	"github.com/ivanmarin/orbit/internal/transport/http/middleware"
	"github.com/ivanmarin/orbit/internal/transport/ws"
)

func main() {
	log := logger.New(0)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load config", "error", err)
	}
	log = logger.New(cfg.LogLevel)

	// Database
	ctx := context.Background()
	pool, err := database.Connect(ctx, cfg)
	if err != nil {
		log.Fatal("failed to connect to database", "error", err)
	}
	defer pool.Close()
	if err := database.Migrate(ctx, pool); err != nil {
		log.Fatal("failed to run migrations", "error", err)
	}
	log.Info("connected to database")

	// Repositories
	userRepo := postgresrepo.NewUserRepo(pool)
	followRepo := postgresrepo.NewFollowRepo(pool)
	activityRepo := postgresrepo.NewActivityRepo(pool)

	// Live notification hub
	hub := ws.NewHub(log)
	go hub.Run()
	notifier := ws.NewHubNotifier(hub)

	// Services
	tokens := service.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(userRepo, tokens)
	profileService := service.NewProfileService(userRepo, followRepo, activityRepo, notifier)
	followService := service.NewFollowService(followRepo, userRepo, notifier)
	adminService := service.NewAdminService(userRepo, followRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, log)
	profileHandler := handlers.NewProfileHandler(profileService, log)
	followHandler := handlers.NewFollowHandler(followService, log)
	adminHandler := handlers.NewAdminHandler(adminService, log)

	// Middleware
	auth := middleware.Auth(tokens, userRepo)
	authLimit := middleware.RateLimitByIP(cfg.AuthRatePerMinute, cfg.AuthRateBurst)

	// Routes
	mux := http.NewServeMux()

	// Public
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ok"}`))
	})
	mux.Handle("POST /signup", authLimit(http.HandlerFunc(authHandler.Signup)))
	mux.Handle("POST /login", authLimit(http.HandlerFunc(authHandler.Login)))

	// Protected - Profile
	mux.Handle("GET /profile", auth(http.HandlerFunc(profileHandler.GetOwn)))
	mux.Handle("PUT /profile", auth(http.HandlerFunc(profileHandler.Update)))
	mux.Handle("GET /profile/activity", auth(http.HandlerFunc(profileHandler.Activity)))
	mux.Handle("GET /profile/{id}", auth(http.HandlerFunc(profileHandler.Get)))

	// Protected - Follow graph
	mux.Handle("POST /follow/{id}", auth(http.HandlerFunc(followHandler.Follow)))
	mux.Handle("DELETE /unfollow/{id}", auth(http.HandlerFunc(followHandler.Unfollow)))

	// Protected - Admin
	mux.Handle("GET /admin/users", auth(middleware.RequireAdmin(http.HandlerFunc(adminHandler.ListUserSummaries))))
	mux.Handle("GET /admin/all_users", auth(middleware.RequireAdmin(http.HandlerFunc(adminHandler.ListUsers))))
	mux.Handle("GET /admin/all_follows", auth(middleware.RequireAdmin(http.HandlerFunc(adminHandler.ListFollows))))

	// Live notifications
	mux.HandleFunc("GET /ws", ws.ServeWS(hub, tokens))

	// Start server with CORS
	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	log.Info("starting server", "addr", addr)
	if err := http.ListenAndServe(addr, middleware.CORS(mux)); err != nil {
		log.Fatal("server stopped", "error", err)
	}
}
