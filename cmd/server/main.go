package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/juju/loggo/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/rajagopika181204/techstore/internal/adapter/handler"
	"github.com/rajagopika181204/techstore/internal/adapter/storage"
	"github.com/rajagopika181204/techstore/internal/core/domain"
	"github.com/rajagopika181204/techstore/internal/core/service"
)

var logger = loggo.GetLogger("techstore.server")

type config struct {
	httpAddr  string
	mysqlDSN  string
	redisAddr string
	jwtSecret string
	tokenTTL  time.Duration
	upiVPA    string
	upiPayee  string
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func loadConfig() config {
	return config{
		httpAddr:  envOr("TECHSTORE_HTTP_ADDR", ":5000"),
		mysqlDSN:  envOr("TECHSTORE_MYSQL_DSN", "root:root@tcp(localhost:3306)/techstore?parseTime=true"),
		redisAddr: envOr("TECHSTORE_REDIS_ADDR", "localhost:6379"),
		jwtSecret: envOr("TECHSTORE_JWT_SECRET", "123!@#"),
		tokenTTL:  time.Hour,
		upiVPA:    envOr("TECHSTORE_UPI_VPA", "7598162840@axl"),
		upiPayee:  envOr("TECHSTORE_UPI_PAYEE", "TechStore"),
	}
}

// Demo shipment codes, seeded the same way every start.
var trackingSeed = map[string]domain.TrackingInfo{
	"TRK123ABC": {Status: "Shipped", ExpectedDelivery: "2025-06-15"},
	"TRK456DEF": {Status: "In Transit", ExpectedDelivery: "2025-06-18"},
}

func main() {
	loggo.ConfigureLoggers(envOr("TECHSTORE_LOG_CONFIG", "<root>=INFO"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := loadConfig()

	// Money fields go over the wire as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true

	// Initialize MySQL
	db, err := sql.Open("mysql", cfg.mysqlDSN)
	if err != nil {
		logger.Criticalf("failed to connect mysql: %v", err)
		os.Exit(1)
	}
	db.SetMaxOpenConns(50)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		logger.Criticalf("failed to ping mysql: %v", err)
		os.Exit(1)
	}
	logger.Infof("connected to mysql")

	// Initialize Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.redisAddr,
		PoolSize: 100,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Criticalf("failed to connect redis: %v", err)
		os.Exit(1)
	}
	logger.Infof("connected to redis")

	// Initialize adapters
	mysqlAdapter := storage.NewMySQLAdapter(db)
	redisAdapter := storage.NewRedisAdapter(rdb)

	// Seed tracking lookups
	for code, info := range trackingSeed {
		if err := redisAdapter.SetTracking(ctx, code, info); err != nil {
			logger.Criticalf("failed to seed tracking data: %v", err)
			os.Exit(1)
		}
	}
	logger.Infof("seeded %d tracking codes", len(trackingSeed))

	// Initialize services
	authService := service.NewAuthService(mysqlAdapter, []byte(cfg.jwtSecret), cfg.tokenTTL)
	catalogService := service.NewCatalogService(mysqlAdapter)
	inventoryService := service.NewInventoryService(mysqlAdapter)
	cartService := service.NewCartService(mysqlAdapter)
	orderService := service.NewOrderService(mysqlAdapter)
	checkoutService := service.NewCheckoutService(mysqlAdapter, redisAdapter)
	paymentService := service.NewPaymentService(cfg.upiVPA, cfg.upiPayee)
	billingService := service.NewBillingService(redisAdapter)
	trackingService := service.NewTrackingService(redisAdapter)

	// Initialize HTTP server
	httpHandler := handler.NewHTTPHandler(
		authService,
		catalogService,
		inventoryService,
		cartService,
		orderService,
		checkoutService,
		paymentService,
		billingService,
		trackingService,
	)

	httpServer := &http.Server{
		Addr:    cfg.httpAddr,
		Handler: httpHandler.Router(),
	}

	go func() {
		logger.Infof("HTTP server listening on %s", cfg.httpAddr)
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Errorf("HTTP server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Infof("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	httpServer.Shutdown(shutdownCtx)
	logger.Infof("HTTP server stopped")

	rdb.Close()
	db.Close()
	logger.Infof("connections closed")
}
