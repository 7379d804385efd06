package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"holomeet/internal/cache"
	"holomeet/internal/config"
	"holomeet/internal/repository"
	"holomeet/internal/service"
	"holomeet/internal/store"
	"holomeet/internal/transport/rest"
	"holomeet/internal/transport/ws"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	log.Println("started")
	ctx := context.Background()

	cfg := config.Load()

	summaryCfg := config.DefaultSummaryConfig()
	if summaryCfg.IsEnabled() {
		log.Printf("Summary model: %s (remote)", summaryCfg.Model)
	} else {
		log.Println("Summary model: API key not set, using extractive fallback")
	}

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDatabase)

	// Redis connection
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// WebSocket hub
	hub := ws.NewHub()
	log.Println("WebSocket hub started")

	// Live room state, repositories and caches
	rooms := store.NewRoomStore()
	archiveRepo := repository.NewArchiveRepo(db)
	presenceCache := cache.NewPresenceCache(rdb)

	// Services
	authSvc := service.NewAuthService(cfg.JWTSecret)
	roomSvc := service.NewRoomService(rooms, presenceCache)
	signalSvc := service.NewSignalService(roomSvc)
	whiteboardSvc := service.NewWhiteboardService(rooms)
	documentSvc := service.NewDocumentService(rooms)
	transcriptSvc := service.NewTranscriptService(rooms)
	chatSvc := service.NewChatService(rooms)
	archiveSvc := service.NewArchiveService(rooms, archiveRepo)
	summarizerSvc := service.NewSummarizerService()

	// Inject broadcaster (hub implements service.Broadcaster)
	roomSvc.SetBroadcaster(hub)
	signalSvc.SetBroadcaster(hub)
	whiteboardSvc.SetBroadcaster(hub)
	documentSvc.SetBroadcaster(hub)
	transcriptSvc.SetBroadcaster(hub)
	chatSvc.SetBroadcaster(hub)

	wsHandler := ws.NewHandler(hub, &ws.Services{
		Rooms:       roomSvc,
		Signals:     signalSvc,
		Whiteboard:  whiteboardSvc,
		Documents:   documentSvc,
		Transcripts: transcriptSvc,
		Chat:        chatSvc,
		Archives:    archiveSvc,
	})

	container := &rest.Container{
		AuthService:    authSvc,
		ArchiveService: archiveSvc,
		Transcripts:    transcriptSvc,
		Summarizer:     summarizerSvc,
		Presence:       presenceCache,
		WSHandler:      wsHandler,
	}

	router := rest.NewRouter(container)

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.HTTPPort)
		log.Println("Endpoints:")
		log.Println("  POST /v1/auth/login")
		log.Println("  GET  /v1/auth/me")
		log.Println("  GET  /v1/rooms/{key}/presence")
		log.Println("  POST /v1/rooms/{key}/summary")
		log.Println("  GET  /v1/rooms/{key}/archives")
		log.Println("  GET  /v1/rooms/{key}/archives/{handle}")
		log.Println("  WS   /v1/ws")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
