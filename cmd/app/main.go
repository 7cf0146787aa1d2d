package main

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"dispatch/cmd"
	httpin "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/postgres/bidrepo"
	"dispatch/internal/adapters/out/postgres/courierrepo"
	"dispatch/internal/adapters/out/postgres/deliveryrepo"
	"dispatch/internal/adapters/out/postgres/ledgerrepo"
	"dispatch/internal/adapters/out/postgres/requestrepo"
	"dispatch/internal/core/domain/model/delivery"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	db, err := gorm.Open(gorm_postgres.Open(configs.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	if err := migrate(db); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	app, err := cmd.NewCompositionRoot(configs, db)
	if err != nil {
		log.Fatalf("Error building composition root: %v", err)
	}

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	handlers, err := app.CreateHTTPHandlers()
	if err != nil {
		log.Fatalf("Error building HTTP handlers: %v", err)
	}

	startWebServer(handlers, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:              goDotEnvVariable("HTTP_PORT"),
		DBHost:                goDotEnvVariable("DB_HOST"),
		DBPort:                goDotEnvVariable("DB_PORT"),
		DBUser:                goDotEnvVariable("DB_USER"),
		DBPassword:            goDotEnvVariable("DB_PASSWORD"),
		DBName:                goDotEnvVariable("DB_NAME"),
		DBSslMode:             goDotEnvVariable("DB_SSLMODE"),
		PlatformAccountID:     goDotEnvVariable("PLATFORM_ACCOUNT_ID"),
		CommissionBasisPoints: envInt64("COMMISSION_BASIS_POINTS", 1500),
		HandoverAckTimeout:    envDuration("HANDOVER_ACK_TIMEOUT", delivery.DefaultHandoverTimeout),
		ValidationCodeTTL:     envDuration("VALIDATION_CODE_TTL", delivery.DefaultCodeTTL),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func envInt64(key string, fallback int64) int64 {
	raw := goDotEnvVariable(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		log.Fatalf("Error parsing %s: %v", key, err)
	}
	return value
}

func envDuration(key string, fallback time.Duration) time.Duration {
	raw := goDotEnvVariable(key)
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		log.Fatalf("Error parsing %s: %v", key, err)
	}
	return value
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&requestrepo.RequestDTO{},
		&bidrepo.BidDTO{},
		&deliveryrepo.DeliveryDTO{},
		&deliveryrepo.LegDTO{},
		&deliveryrepo.TrackingEventDTO{},
		&courierrepo.CourierDTO{},
		&courierrepo.AvailabilityDTO{},
		&ledgerrepo.EntryDTO{},
		&ledgerrepo.PeriodDTO{},
	)
}

func startWebServer(handlers httpin.Handlers, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := httpin.NewServer(handlers)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
