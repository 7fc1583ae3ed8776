package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"brand-audit-pipeline/audit"
	"brand-audit-pipeline/capture"
	"brand-audit-pipeline/capture/rabbitmq"
	"brand-audit-pipeline/config"
	"brand-audit-pipeline/database"
	"brand-audit-pipeline/handlers"
	"brand-audit-pipeline/metrics"
	"brand-audit-pipeline/report"
)

var (
	brandsFile       = flag.String("brands_file", "", "JSON file containing brand lists.")
	yourBrands       = flag.String("your_brands", "", "Comma-separated list of your brand names.")
	competitorBrands = flag.String("competitor_brands", "", "Comma-separated list of competitor brand names.")
	output           = flag.String("output", "", "Output file path without extension (default: brand_audit_TIMESTAMP).")
	format           = flag.String("format", "json", "Output format: json, csv, txt or all.")
	saveDB           = flag.Bool("save_db", false, "Persist the run summary to MySQL (uses DB_* env).")
	serve            = flag.Bool("serve", false, "Run the HTTP audit API instead of a one-shot audit.")
)

func main() {
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file found, using system environment variables")
	}

	cfg := config.Load()

	if *serve {
		runServer(cfg)
		return
	}
	runOnce(cfg)
}

// runOnce executes a one-shot audit: load, analyze, write, print summary.
func runOnce(cfg *config.Config) {
	your, competitors, err := brandLists()
	if err != nil {
		log.Fatalf("%v", err)
	}

	if !report.ValidFormat(*format) {
		log.Fatalf("Unsupported format: %s (want json, csv, txt or all)", *format)
	}

	responsesFile := flag.Arg(0)
	if responsesFile == "" {
		log.Fatal("Missing responses file argument")
	}

	auditor, err := audit.NewAuditor(your, competitors)
	if err != nil {
		log.Fatalf("Invalid brand configuration: %v", err)
	}

	producer := &capture.FileProducer{Path: responsesFile}
	records, err := producer.Records()
	if err != nil {
		log.Fatalf("%v", err)
	}

	result := auditor.Audit(responsesFile, records)

	basePath := *output
	if basePath == "" {
		basePath = "brand_audit_" + time.Now().Format("20060102_150405")
	}
	if err := report.Write(result, basePath, *format); err != nil {
		log.Fatalf("%v", err)
	}

	if *saveDB {
		dsn := cfg.DSN()
		if dsn == "" {
			log.Fatal("-save_db requires DB_HOST to be set")
		}
		store, err := database.Connect(dsn)
		if err != nil {
			log.Fatalf("Cannot connect to the database: %v", err)
		}
		defer store.Close()
		if _, err := store.SaveReport(context.Background(), result); err != nil {
			log.Fatalf("Failed to persist audit run: %v", err)
		}
	}

	report.PrintSummary(result)
}

// brandLists resolves the brand source options: a brands file, or the two
// explicit lists. Exactly one source must be selected.
func brandLists() ([]string, []string, error) {
	explicit := *yourBrands != "" || *competitorBrands != ""
	switch {
	case *brandsFile != "" && explicit:
		return nil, nil, fmt.Errorf("use either -brands_file or the explicit brand lists, not both")
	case *brandsFile != "":
		return audit.LoadBrandsFile(*brandsFile)
	case explicit:
		return splitList(*yourBrands), splitList(*competitorBrands), nil
	default:
		return nil, nil, fmt.Errorf("must provide -brands_file or -your_brands/-competitor_brands")
	}
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if name := strings.TrimSpace(part); name != "" {
			out = append(out, name)
		}
	}
	return out
}

// runServer starts the HTTP audit API with the optional capture-queue feed
// and MySQL persistence.
func runServer(cfg *config.Config) {
	metrics.Register()

	auditor, err := audit.NewAuditor(cfg.YourBrands, cfg.CompetitorBrands)
	if err != nil {
		log.Fatalf("Invalid brand configuration (set BRAND_NAMES / COMPETITOR_BRAND_NAMES): %v", err)
	}

	var store *database.AuditStore
	if dsn := cfg.DSN(); dsn != "" {
		store, err = database.Connect(dsn)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer store.Close()
	} else {
		log.Warn("DB_HOST not set, audit runs will not be persisted")
	}

	collector := capture.NewCollector()

	var subscriber *rabbitmq.Subscriber
	if cfg.RabbitMQURL != "" {
		subscriber, err = rabbitmq.NewSubscriber(cfg.RabbitMQURL, cfg.RabbitMQQueue, collector)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		if err := subscriber.Start(); err != nil {
			log.Fatalf("Failed to start capture subscriber: %v", err)
		}
		defer subscriber.Close()
		log.Infof("Consuming capture records from queue %s", cfg.RabbitMQQueue)
	}

	h := handlers.NewHandlers(auditor, collector, store)

	gin.SetMode(gin.ReleaseMode)
	router := gin.Default()

	router.GET("/health", h.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v3")
	{
		api.POST("/audit", h.RunAudit)
		api.GET("/collected", h.CollectedCount)
		api.POST("/collected/audit", h.AuditCollected)
		api.GET("/runs", h.RecentRuns)
	}

	srv := &http.Server{
		Addr:    cfg.Host + ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Infof("Starting brand-audit API on %s:%s", cfg.Host, cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Info("Server exited")
}
