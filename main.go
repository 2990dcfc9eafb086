package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"food-marketplace-api/config"
	"food-marketplace-api/handlers"
	"food-marketplace-api/lifecycle"
	"food-marketplace-api/logger"
	"food-marketplace-api/models"
	"food-marketplace-api/push"
	"food-marketplace-api/routes"
)

func main() {
	log := logger.New()
	defer log.Sync()

	cfg := config.Load()
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	config.InitDB(cfg.DBPath)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Seed the live board with persisted active orders
	var seedOrders []models.Order
	config.DB.Preload("Items").Preload("Customer").
		Where("status IN ?", []lifecycle.Status{lifecycle.StatusPreparing, lifecycle.StatusReady}).
		Order("created_at desc").
		Find(&seedOrders)
	seed := make([]lifecycle.Order, 0, len(seedOrders))
	for _, o := range seedOrders {
		seed = append(seed, o.Live())
	}

	engine := lifecycle.NewEngine(seed, lifecycle.WithLogger(log))

	channel, publisher := buildPush(cfg, log)
	go func() {
		if err := engine.Run(ctx, channel); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("lifecycle engine stopped", zap.Error(err))
		}
	}()
	defer publisher.Close()

	r := gin.Default()

	// CORS middleware for frontend integration
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Food Marketplace API",
			"version": "1.0.0",
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Welcome
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "🍔 Welcome to the Food Marketplace API",
			"docs":    "/api/state-machine",
			"health":  "/health",
			"roles":   []string{"customer", "vendor", "supplier", "admin"},
		})
	})

	orderAPI := handlers.NewOrderAPI(engine, publisher, log)
	routes.SetupRoutes(r, orderAPI)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn("server shutdown failed", zap.Error(err))
		}
	}()

	log.Info("server running", zap.String("addr", "http://localhost:"+cfg.Port))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("failed to start server", zap.Error(err))
	}
}

// buildPush wires the push channel per configuration. The memory driver runs
// placement and the live board in one process; kafka splits them across
// deployments.
func buildPush(cfg *config.Config, log *zap.Logger) (push.Channel, push.Publisher) {
	switch cfg.PushDriver {
	case "kafka":
		channel := push.NewKafkaChannel(push.KafkaConfig{
			Brokers: cfg.KafkaBrokers,
			Topic:   cfg.KafkaTopic,
			GroupID: cfg.KafkaGroupID,
		}, log)
		return channel, push.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
	default:
		mem := push.NewMemoryChannel()
		return mem, mem
	}
}
