package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/unitynest/nest-backend/internal/bootstrap"
	"github.com/unitynest/nest-backend/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	a, err := bootstrap.Open(context.Background(), cfg)
	if err != nil {
		log.Fatalf("start: %v", err)
	}

	server := bootstrap.NewHTTPServer(a)

	go func() {
		log.Printf("listening on :%s", cfg.Port)
		if err := server.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
	if err := a.Close(ctx); err != nil {
		log.Printf("release resources: %v", err)
	}
}
