package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/cors"

	"github.com/anshk25/formbot/internal/config"
	"github.com/anshk25/formbot/internal/database"
	postgresrepo "github.com/anshk25/formbot/internal/repository/postgres"
	"github.com/anshk25/formbot/internal/service"
	"github.com/anshk25/formbot/internal/transport/http/handlers"
	"github.com/anshk25/formbot/internal/transport/http/middleware"
	"github.com/anshk25/formbot/internal/transport/ws"
)

func main() {
	cfg := config.Load()

	// Database
	pool, err := database.Connect(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()
	log.Println("Connected to database")

	// Repositories
	userRepo := postgresrepo.NewUserRepo(pool)
	workspaceRepo := postgresrepo.NewWorkspaceRepo(pool)
	formbotRepo := postgresrepo.NewFormbotRepo(pool)

	// Services
	authService := service.NewAuthService(userRepo, cfg.JWTSecret)
	userService := service.NewUserService(userRepo)
	workspaceService := service.NewWorkspaceService(workspaceRepo, userRepo)
	formbotService := service.NewFormbotService(formbotRepo, workspaceService)

	// WebSocket hub
	hub := ws.NewHub()
	go hub.Run()
	notifier := ws.NewHubNotifier(hub)
	workspaceService.SetNotifier(notifier)
	formbotService.SetNotifier(notifier)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	workspaceHandler := handlers.NewWorkspaceHandler(workspaceService)
	formbotHandler := handlers.NewFormbotHandler(formbotService)

	// Auth middleware
	auth := middleware.Auth(cfg.JWTSecret)

	// Routes
	mux := http.NewServeMux()

	// Public
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ok"}`))
	})
	mux.HandleFunc("POST /register", authHandler.Register)
	mux.HandleFunc("POST /login", authHandler.Login)

	// Protected - Users
	mux.Handle("PUT /updateUser", auth(http.HandlerFunc(userHandler.Update)))
	mux.Handle("GET /alluserdetails", auth(http.HandlerFunc(userHandler.Details)))

	// Protected - Workspaces
	mux.Handle("GET /fetchWorkspaces", auth(http.HandlerFunc(workspaceHandler.List)))
	mux.Handle("PUT /updateWorkspace/{id}", auth(http.HandlerFunc(workspaceHandler.Share)))
	mux.Handle("POST /addFolder/{id}/folder", auth(http.HandlerFunc(workspaceHandler.AddFolder)))
	mux.Handle("GET /fetchFolders/{id}", auth(http.HandlerFunc(workspaceHandler.Folders)))
	mux.Handle("DELETE /deleteFolder/{id}/folder/{folderName}", auth(http.HandlerFunc(workspaceHandler.RemoveFolder)))

	// Protected - Formbots
	mux.Handle("POST /createFormbot", auth(http.HandlerFunc(formbotHandler.Create)))
	mux.Handle("PUT /modifyFormbot/{workspaceId}/{folderName}/{formbotId}", auth(http.HandlerFunc(formbotHandler.Modify)))
	mux.Handle("DELETE /deleteFormbot/{workspaceId}/{folderName}/{formbotId}", auth(http.HandlerFunc(formbotHandler.Delete)))
	mux.Handle("GET /fetchFormbots", auth(http.HandlerFunc(formbotHandler.List)))
	mux.Handle("GET /fetchFormbot/{workspaceId}/{folderName}/{formbotId}", auth(http.HandlerFunc(formbotHandler.Get)))

	// WebSocket (token via query param)
	mux.HandleFunc("GET /ws", ws.ServeWS(hub, cfg.JWTSecret))

	// CORS: allow all origins, like the original deployment
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	// Start server
	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	log.Printf("Starting server on %s", addr)
	log.Fatal(http.ListenAndServe(addr, c.Handler(mux)))
}
