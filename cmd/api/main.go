package main

import (
	"context"
	"net/http"
	"os"
	"strings"
	"time"

	"collegebooks/internal/httpx"
	"collegebooks/internal/listing"
	"collegebooks/internal/upload"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	connectTimeout  = 2 * time.Second
	queryTimeout    = 5 * time.Second
	maxRequestBytes = 12 << 20 // multipart body incl. one image
)

func main() {
	_ = godotenv.Load(".env.local")

	logger := mustBuildLogger()
	defer func() { _ = logger.Sync() }()

	serverAddress := getEnv("APP_ADDR", ":5000")
	mongoURI := getEnv("MONGO_URI", "mongodb://localhost:27017")
	mongoDB := getEnv("MONGO_DB", "collegebooks")
	uploadDir := getEnv("UPLOAD_DIR", "uploads")

	images, err := upload.NewDiskStore(uploadDir)
	if err != nil {
		logger.Fatal("cannot prepare upload directory", zap.String("dir", uploadDir), zap.Error(err))
	}

	repo, client := openRepository(logger, mongoURI, mongoDB)
	if client != nil {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
			defer cancel()
			_ = client.Disconnect(ctx)
		}()
	}

	service := listing.NewService(repo, images)
	handler := listing.NewHTTPHandler(service)

	router := newRouter(handler, images.Dir(), client)

	var allowedOrigins []string
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		allowedOrigins = strings.Split(v, ",")
	}

	chain := httpx.RequestIDMiddleware(
		httpx.AccessLogMiddleware(logger)(
			httpx.MetricsMiddleware(router)(
				httpx.RecoveryMiddleware(logger)(
					httpx.CORSMiddleware(allowedOrigins)(
						httpx.SecurityHeadersMiddleware(
							httpx.RequestSizeLimitMiddleware(maxRequestBytes)(router)))))))

	httpServer := &http.Server{
		Addr:         serverAddress,
		Handler:      chain,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("starting server", zap.String("addr", serverAddress))
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}

func newRouter(handler *listing.HTTPHandler, uploadDir string, client *mongo.Client) *http.ServeMux {
	router := http.NewServeMux()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		// The in-memory fallback has nothing to wait for.
		if client != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
			defer cancel()
			if err := client.Ping(ctx, nil); err != nil {
				http.Error(w, "store not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.HandleFunc("GET /api/books", handler.List)
	router.HandleFunc("POST /api/books", handler.Create)
	router.HandleFunc("DELETE /api/books/{id}", handler.Delete)

	router.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir))))
	router.Handle("GET /metrics", promhttp.Handler())

	return router
}

// openRepository connects to the document store, falling back to the
// in-memory backend when the store is unreachable. The choice is made
// once and is not revisited for the life of the process.
func openRepository(logger *zap.Logger, uri, dbName string) (listing.Repository, *mongo.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err == nil {
		err = client.Ping(ctx, nil)
	}
	if err != nil {
		if client != nil {
			_ = client.Disconnect(context.Background())
		}
		logger.Warn("document store unavailable, using in-memory storage", zap.Error(err))
		logger.Warn("data will not persist between restarts")
		return seededMemoryRepo(), nil
	}

	logger.Info("connected to document store", zap.String("database", dbName))
	return listing.NewMongoRepo(client.Database(dbName).Collection("books"), queryTimeout), client
}

// seededMemoryRepo loads the sample listings, oldest last so the
// original display order is preserved.
func seededMemoryRepo() *listing.MemoryRepo {
	repo := listing.NewMemoryRepo()
	seed := listing.SeedListings()
	for i := len(seed) - 1; i >= 0; i-- {
		_ = repo.Create(context.Background(), &seed[i])
	}
	return repo
}

func mustBuildLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := config.Build()
	if err != nil {
		panic(err)
	}
	return logger
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
