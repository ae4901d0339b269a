package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"canteen/internal/analytics"
	"canteen/internal/auth"
	"canteen/internal/config"
	"canteen/internal/logging"
	"canteen/internal/models"
	"canteen/internal/notify"
	"canteen/internal/server"
	"canteen/internal/store"
)

var (
	port        = flag.Int("port", 0, "API server port (overrides config)")
	metricsPort = flag.Int("metrics-port", 0, "Metrics server port (overrides config)")
	configFile  = flag.String("config", "configs/config.yaml", "Path to configuration file")
)

// snapshotHistory is how many periodic analytics summaries are retained.
const snapshotHistory = 168

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *metricsPort != 0 {
		cfg.Server.MetricsPort = *metricsPort
	}

	log, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	bus := notify.NewBus(log)
	hub := notify.NewHub(bus, log)
	st := store.New(bus, cfg.Kitchen.MaxPreparing, log)
	st.SeedMenu(seedMenu())

	authManager := auth.NewManager(cfg.Auth.Secret, log)
	authManager.SeedFromFile(cfg.Auth.SeedFile)

	snapshots := analytics.NewSnapshotRing(snapshotHistory)
	scheduler := cron.New()
	scheduler.AddFunc("@hourly", func() {
		now := time.Now()
		from := analytics.RangeFrom("", now)
		snapshots.Add(analytics.BuildSummary(st.OrdersSnapshot(), from, now))
	})
	scheduler.Start()
	defer scheduler.Stop()

	gin.SetMode(gin.ReleaseMode)
	api := server.New(st, authManager, hub, snapshots, log)

	go startMetricsServer(cfg.Server.MetricsPort, log)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: api.Router(),
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("server shutdown", zap.Error(err))
		}
	}()

	log.Info("starting API server", zap.Int("port", cfg.Server.Port))
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatal("server error", zap.Error(err))
	}
}

// seedMenu is the initial catalog.
func seedMenu() []models.MenuItem {
	return []models.MenuItem{
		{Name: "Idly", Category: "breakfast", Price: 25, Veg: true},
		{Name: "Dosa", Category: "breakfast", Price: 40, Veg: true},
		{Name: "Samosa", Category: "snacks", Price: 20, Veg: true},
		{Name: "Puff", Category: "snacks", Price: 30, Veg: true},
		{Name: "Tea", Category: "drinks", Price: 12, Veg: true},
		{Name: "Coffee", Category: "drinks", Price: 18, Veg: true},
		{Name: "Egg Puff", Category: "snacks", Price: 35, Veg: false},
	}
}

func startMetricsServer(port int, log *zap.Logger) {
	metricsRouter := gin.New()
	metricsRouter.GET("/metrics", gin.WrapH(promhttp.Handler()))

	log.Info("starting metrics server", zap.Int("port", port))
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: metricsRouter,
	}
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		log.Error("metrics server error", zap.Error(err))
	}
}
