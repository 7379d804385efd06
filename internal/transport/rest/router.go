package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"holomeet/internal/cache"
	"holomeet/internal/service"
	"holomeet/internal/transport/rest/handler"
	"holomeet/internal/transport/rest/middleware"
	"holomeet/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService    *service.AuthService
	ArchiveService *service.ArchiveService
	Transcripts    *service.TranscriptService
	Summarizer     *service.SummarizerService
	Presence       cache.PresenceCache
	WSHandler      *ws.Handler
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	roomHandler := handler.NewRoomHandler(c.Presence, c.Transcripts, c.Summarizer)
	archiveHandler := handler.NewArchiveHandler(c.ArchiveService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	v1.HandleFunc("/rooms/{key}/presence", roomHandler.Presence).Methods("GET", "OPTIONS")
	v1.HandleFunc("/rooms/{key}/summary", roomHandler.Summary).Methods("POST", "OPTIONS")
	v1.HandleFunc("/rooms/{key}/archives", archiveHandler.List).Methods("GET", "OPTIONS")
	v1.HandleFunc("/rooms/{key}/archives/{handle}", archiveHandler.Get).Methods("GET", "OPTIONS")

	// WebSocket route (identity is declared on join, not authenticated)
	v1.HandleFunc("/ws", c.WSHandler.Serve).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Session routes (require a minted identity token)
	sessionRoutes := v1.NewRoute().Subrouter()
	sessionRoutes.Use(authMW.RequireSession)
	sessionRoutes.HandleFunc("/auth/me", authHandler.Me).Methods("GET", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
