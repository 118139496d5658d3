package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/starboy1402/garments-tracker-api/internal/analytics"
	"github.com/starboy1402/garments-tracker-api/internal/auth"
	"github.com/starboy1402/garments-tracker-api/internal/config"
	"github.com/starboy1402/garments-tracker-api/internal/httpx"
	kafkax "github.com/starboy1402/garments-tracker-api/internal/kafka"
	"github.com/starboy1402/garments-tracker-api/internal/orders"
	"github.com/starboy1402/garments-tracker-api/internal/postgres"
	"github.com/starboy1402/garments-tracker-api/internal/products"
	"github.com/starboy1402/garments-tracker-api/internal/redisx"
	"github.com/starboy1402/garments-tracker-api/internal/users"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()
	if err := postgres.Migrate(ctx, db); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producer
	prod := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderEvents, 1024)
	prod.Start(ctx)

	sessions := &auth.Sessions{
		Secret:     []byte(cfg.JWTSecret),
		TTL:        cfg.SessionTTL,
		CookieName: cfg.CookieName,
		Secure:     cfg.CookieSecure,
	}

	api := &httpx.API{
		Sessions:  sessions,
		Users:     &users.Repo{DB: db},
		Products:  &products.Repo{DB: db},
		Orders:    &orders.Repo{DB: db},
		Analytics: &analytics.Repo{DB: db},
		Producer:  prod,
		Redis:     rdb,
		Service:   cfg.ServiceName,
	}

	router := httpx.NewRouter()
	api.Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	// graceful shutdown
	go func() {
		log.Printf("HTTP listening at %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	prod.Close() // close inbox -> flush & close writer
	cancel()
	prod.WaitClosed() // drain
}
