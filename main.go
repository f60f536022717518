package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anumeetkumar/restaurants-booking/analytics"
	"github.com/anumeetkumar/restaurants-booking/bookings"
	"github.com/anumeetkumar/restaurants-booking/categories"
	"github.com/anumeetkumar/restaurants-booking/mq"
	"github.com/anumeetkumar/restaurants-booking/organizations"
	"github.com/anumeetkumar/restaurants-booking/persist"
	"github.com/anumeetkumar/restaurants-booking/qr"
	"github.com/anumeetkumar/restaurants-booking/ratelim"
	"github.com/anumeetkumar/restaurants-booking/routes"
	"github.com/anumeetkumar/restaurants-booking/settings"

	"github.com/joho/godotenv"
	"github.com/julienschmidt/httprouter"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
)

// securityHeaders applies a set of recommended HTTP security headers.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "frame-ancestors 'none'")
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, private")
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs each request method, path, remote address, and duration.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		duration := time.Since(start)
		log.Printf("%s %s from %s – %v", r.Method, r.RequestURI, r.RemoteAddr, duration)
	})
}

// Index is a simple health check handler.
func Index(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	fmt.Fprint(w, "200")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// newKV picks the persistence backend for the store slots.
// STORE_BACKEND: file (default), redis, memory.
func newKV(redisClient *redis.Client) (persist.KV, error) {
	switch envOr("STORE_BACKEND", "file") {
	case "redis":
		if redisClient == nil {
			return nil, fmt.Errorf("STORE_BACKEND=redis requires REDIS_ADDR")
		}
		return persist.NewRedisKV(redisClient), nil
	case "memory":
		return persist.NewMemoryKV(), nil
	default:
		return persist.NewFileKV(envOr("DATA_DIR", "data"))
	}
}

func main() {
	// load .env if present
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	// read port
	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	} else if port[0] != ':' {
		port = ":" + port
	}

	// optional redis: pub/sub events and the redis store backend
	var redisClient *redis.Client
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: addr})
	}

	kv, err := newKV(redisClient)
	if err != nil {
		log.Fatalf("❌ Persistence init failed: %v", err)
	}

	// stores rehydrate from their slots here; a corrupt or unreadable
	// slot is fatal rather than silently starting empty
	categoryStore, err := categories.NewStore(kv)
	if err != nil {
		log.Fatalf("❌ Category store init failed: %v", err)
	}
	bookingStore, err := bookings.NewStore(kv, qr.BookingPayload)
	if err != nil {
		log.Fatalf("❌ Booking store init failed: %v", err)
	}
	settingsStore, err := settings.NewStore(kv)
	if err != nil {
		log.Fatalf("❌ Settings store init failed: %v", err)
	}
	organizationStore, err := organizations.NewStore(kv)
	if err != nil {
		log.Fatalf("❌ Organization store init failed: %v", err)
	}

	emitter := mq.NewEmitter(redisClient)
	rateLimiter := ratelim.NewRateLimiter()

	staticDir := envOr("STATIC_DIR", "static")

	router := httprouter.New()
	router.GET("/health", Index)
	routes.AddCategoryRoutes(router, rateLimiter, categories.NewAPI(categoryStore, emitter))
	routes.AddBookingRoutes(router, rateLimiter, bookings.NewAPI(bookingStore, emitter))
	routes.AddSettingsRoutes(router, rateLimiter, settings.NewAPI(settingsStore, emitter, staticDir+"/logopic", "/static/logopic"))
	routes.AddOrganizationRoutes(router, rateLimiter, organizations.NewAPI(organizationStore, emitter))
	routes.AddAnalyticsRoutes(router, analytics.NewAPI(analytics.NewService(categoryStore, bookingStore)))
	routes.AddQRRoutes(router, rateLimiter, qr.NewAPI(bookingStore, categoryStore))
	routes.AddLiveRoutes(router)
	routes.AddStaticRoutes(router, staticDir)

	// apply middleware: CORS → security headers → logging → router
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // lock down in production
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(router)

	handler := loggingMiddleware(securityHeaders(corsHandler))

	server := &http.Server{
		Addr:              port,
		Handler:           handler,
		ReadTimeout:       7 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	server.RegisterOnShutdown(func() {
		if redisClient != nil {
			redisClient.Close()
		}
	})

	// start server
	go func() {
		log.Printf("🚀 Server listening on %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe error: %v", err)
		}
	}()

	// wait for interrupt or SIGTERM
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("🛑 Shutdown signal received; shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Graceful shutdown failed: %v", err)
	}

	log.Println("✅ Server stopped cleanly")
}
