package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Pavanyata999/AI-Companion-Video-Call/internal/api/handler"
	"github.com/Pavanyata999/AI-Companion-Video-Call/internal/callhub"
	"github.com/Pavanyata999/AI-Companion-Video-Call/internal/companion"
	"github.com/Pavanyata999/AI-Companion-Video-Call/internal/config"
	"github.com/Pavanyata999/AI-Companion-Video-Call/internal/iceconfig"
	"github.com/Pavanyata999/AI-Companion-Video-Call/internal/storage"
)

// newRoomStore picks the durable Redis store when REDIS_URL is set, and
// falls back to the in-process store otherwise. The volatile mode has
// no native expiry: rooms that are never read again stay in memory
// until restart.
func newRoomStore(cfg config.Settings) storage.RoomStore {
	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not set, using in-memory room store (rooms do not survive restarts)")
		return storage.NewMemoryStore()
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Invalid REDIS_URL: %v", err)
	}
	rdb := redis.NewClient(opts)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}
	log.Printf("Connected to Redis at %s", opts.Addr)
	return storage.NewRedisStore(rdb)
}

func newRecordingStore(cfg config.Settings) *storage.RecordingStore {
	db, err := gorm.Open(postgres.Open(cfg.PostgresDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	store := storage.NewRecordingStore(db)
	if err := store.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("PostgreSQL connection established, migrations complete.")
	return store
}

func main() {
	log.Println("Starting AI Companion Video Call backend...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}
	cfg := config.Load()

	roomStore := newRoomStore(cfg)
	recordings := newRecordingStore(cfg)
	companions := companion.NewService(cfg.PersonaFetcherURL)
	ice := iceconfig.NewProvider(cfg)

	hub := callhub.NewHub(roomStore, recordings)

	r := gin.Default()
	r.Use(handler.CORS(cfg.CORSOrigins))
	h := handler.NewHandler(hub, roomStore, recordings, companions, ice, cfg.SessionTTL)

	r.GET("/", h.Health)
	r.GET("/ws", h.ServeWebSocket)

	api := r.Group("/api")
	{
		api.POST("/video/rooms", h.CreateRoom)
		api.GET("/video/rooms/:roomId", h.GetRoom)
		api.POST("/video/recordings", h.PostRecording)
		api.GET("/webrtc/config", h.GetWebRTCConfig)
		api.GET("/companions", h.GetCompanions)
		api.POST("/chat/messages", h.PostChatMessage)
		api.GET("/chat/messages/:roomId", h.GetChatMessages)
	}

	server := &http.Server{
		Addr:           cfg.Addr(),
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Printf("Listening on %s", cfg.Addr())
	log.Fatal(server.ListenAndServe())
}
