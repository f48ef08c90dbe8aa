// mock-server runs the full API against an in-memory store with seeded
// sample data. It exists for frontend development and demos where no
// Postgres instance is around.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/TayDaGreatDIY/M2DG-Basketball-Platform-sub000/internal/hub"
	"github.com/TayDaGreatDIY/M2DG-Basketball-Platform-sub000/internal/httpapi"
	"github.com/TayDaGreatDIY/M2DG-Basketball-Platform-sub000/internal/models"
	"github.com/TayDaGreatDIY/M2DG-Basketball-Platform-sub000/internal/store"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	flag.Parse()

	log, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	mem := store.NewMemory()
	seed(mem, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := httpapi.NewServer(httpapi.Options{
		Store:     mem,
		Hub:       hub.NewHub(ctx),
		Log:       log,
		JWTSecret: []byte("mock-server-secret"),
		JWTTTL:    24 * time.Hour,
	})

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	httpSrv := &http.Server{
		Addr:              *addr,
		Handler:           c.Handler(httpapi.SetupRoutes(srv)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	log.Info("mock server listening", zap.String("addr", *addr))
	if err := httpSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("serve", zap.Error(err))
	}
}

func seed(mem *store.Memory, log *zap.Logger) {
	ctx := context.Background()
	courts := []models.Court{
		{
			ID:          uuid.NewString(),
			Name:        "Downtown Basketball Court",
			Location:    "123 Main St, Downtown",
			Description: "Full-size indoor court with professional flooring",
			CourtType:   "indoor",
			SurfaceType: "hardwood",
			Amenities:   models.StringList{"parking", "showers", "lockers"},
			HourlyRate:  50,
			Capacity:    10,
			IsAvailable: true,
			CreatedAt:   time.Now().UTC(),
		},
		{
			ID:          uuid.NewString(),
			Name:        "Riverside Outdoor Court",
			Location:    "456 River Rd",
			Description: "Outdoor court with river views",
			CourtType:   "outdoor",
			SurfaceType: "concrete",
			Amenities:   models.StringList{"parking", "water fountain"},
			HourlyRate:  25,
			Capacity:    8,
			IsAvailable: true,
			CreatedAt:   time.Now().UTC(),
		},
	}
	for _, c := range courts {
		if err := mem.CreateCourt(ctx, &c); err != nil {
			log.Warn("seed court", zap.String("name", c.Name), zap.Error(err))
		}
	}
	log.Info("seeded sample data", zap.Int("courts", len(courts)))
}
