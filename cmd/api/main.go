package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/sfarfano/registro-horas/config"
	"github.com/sfarfano/registro-horas/internal/bootstrap"
	"github.com/sfarfano/registro-horas/internal/costcenters"
	"github.com/sfarfano/registro-horas/internal/payrates"
	reportcron "github.com/sfarfano/registro-horas/internal/reports/cron"
	"github.com/sfarfano/registro-horas/internal/roster"
	"github.com/sfarfano/registro-horas/internal/session"
)

const serviceName = "registro-horas"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	bootstrap.SetGinMode(cfg.App.Environment)

	st, pool, closeStore, err := bootstrap.OpenStore(ctx, cfg.Store)
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	defer closeStore()

	rdb, err := bootstrap.OpenRedis(ctx, cfg.Redis)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer rdb.Close()

	rosterProvider := roster.NewWorkbookProvider(cfg.Workbooks.Roster)
	ccProvider := costcenters.NewWorkbookProvider(cfg.Workbooks.CostCenters)

	var rateProvider payrates.Provider = payrates.Static{}
	if cfg.Workbooks.PayRates != "" {
		rateProvider = payrates.NewWorkbookProvider(cfg.Workbooks.PayRates)
	}

	scheduler := reportcron.NewScheduler(st, rateProvider)
	scheduler.Start()
	defer scheduler.Stop()

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		Config:      cfg,
		ServiceName: serviceName,
		Store:       st,
		DB:          pool,
		Sessions:    session.NewStore(rdb, cfg.Redis.SessionTTL),
		Roster:      rosterProvider,
		CostCenters: ccProvider,
		PayRates:    rateProvider,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		log.Printf("%s listening on :%s (store=%s)", serviceName, cfg.Server.Port, cfg.Store.Backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
