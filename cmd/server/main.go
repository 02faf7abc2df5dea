package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lesson-media/internal/content"
	"lesson-media/internal/platform/auth"
	"lesson-media/internal/platform/config"
	"lesson-media/internal/platform/logger"
	"lesson-media/internal/platform/metrics"
	"lesson-media/internal/video"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = config.Load()

	port := config.GetEnv("PORT", "8080")
	logLevel := config.GetEnv("LOG_LEVEL", "info")
	logFormat := config.GetEnv("LOG_FORMAT", "json")
	uploadsDir := config.GetEnv("UPLOADS_DIR", "./uploads")
	jwtSecret := config.GetEnv("JWT_SECRET", "")

	signing := video.SigningConfig{
		CloudflareSigningKey: config.GetEnv("CLOUDFLARE_STREAM_SIGNING_KEY", ""),
		CloudflareKeyID:      config.GetEnv("CLOUDFLARE_STREAM_KEY_ID", ""),
		URLSigningSecret:     config.GetEnv("URL_SIGNING_SECRET", ""),
		StorageHost:          config.StorageHost(config.GetEnv("STORAGE_URL", ""), video.DefaultStorageHost),
		DefaultTTL:           config.GetEnvSeconds("SIGNED_URL_TTL", video.DefaultTTL),
	}

	log := logger.New(logLevel, logFormat)
	met := metrics.New()

	signer := video.NewSigner(signing, log, video.WithObserver(func(g video.Grant) {
		met.ObserveGrant(string(g.Kind), g.Signed, g.Degraded())
	}))
	repo := content.NewInMemoryRepository()
	svc := content.NewService(repo, signer, met)
	h := content.NewHandler(svc, log, uploadsDir)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(logger.RequestLogger(log))
	r.Use(metrics.RequestMiddleware(met))
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		met.Handler(func() { met.SetStoredLessons(svc.LessonCount()) }).ServeHTTP(w, r)
	})
	r.Route("/lessons", func(r chi.Router) {
		r.Use(auth.RequireBearer([]byte(jwtSecret), log))
		r.Get("/", h.ListLessons)
		r.Post("/", h.CreateLesson)
		r.Get("/{lesson_id}", h.GetLesson)
		r.Delete("/{lesson_id}", h.DeleteLesson)
	})
	r.Get("/videos/resolve", h.ResolveVideo)
	r.Get("/uploads/*", h.ServeUpload)

	addr := ":" + port
	srv := &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	log.Info("server starting",
		"port", port,
		"uploads_dir", uploadsDir,
		"storage_host", signing.StorageHost,
		"signed_url_ttl", signing.DefaultTTL.String(),
		"url_signing", signing.URLSigningSecret != "",
		"cloudflare_signing", signing.CloudflareSigningKey != "" && signing.CloudflareKeyID != "",
		"lesson_auth", jwtSecret != "",
	)
	if signing.URLSigningSecret == "" {
		log.Warn("URL_SIGNING_SECRET not set: self-hosted media is served unsigned and /uploads rejects every request")
	}
	if jwtSecret == "" {
		log.Warn("JWT_SECRET not set: lesson routes are unauthenticated")
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Info("shutdown signal received, draining connections")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown error", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}
