package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/apex/log"
	_ "github.com/go-sql-driver/mysql"

	"brand-audit-pipeline/models"
)

// AuditStore persists audit run summaries.
type AuditStore struct {
	db *sql.DB
}

// NewAuditStore wraps an open database handle.
func NewAuditStore(db *sql.DB) *AuditStore {
	return &AuditStore{db: db}
}

// Connect opens a MySQL connection with the given DSN and initializes the
// schema.
func Connect(dsn string) (*AuditStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := InitSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &AuditStore{db: db}, nil
}

// Close closes the underlying connection.
func (s *AuditStore) Close() error {
	return s.db.Close()
}

// SaveReport persists the run summary and per-brand statistics. Returns the
// new run id.
func (s *AuditStore) SaveReport(ctx context.Context, report *models.AuditReport) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Errorf("Error creating transaction: %v", err)
		return 0, err
	}
	defer tx.Rollback()

	sum := report.Summary
	result, err := tx.Exec(`INSERT INTO audit_runs
		(source_file, total_responses, responses_with_your_brands, responses_with_competitors,
		 responses_with_both, responses_with_neither, your_brand_presence_rate,
		 competitor_presence_rate, total_your_brand_mentions, total_competitor_mentions)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		report.SourceFile, sum.TotalResponses, sum.ResponsesWithYourBrands,
		sum.ResponsesWithCompetitors, sum.ResponsesWithBoth, sum.ResponsesWithNeither,
		sum.YourBrandPresenceRate, sum.CompetitorPresenceRate,
		sum.TotalYourBrandMentions, sum.TotalCompetitorMentions)
	if err != nil {
		return 0, fmt.Errorf("failed to insert audit run: %w", err)
	}

	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get audit run id: %w", err)
	}

	for _, stat := range report.BrandStatistics.YourBrands {
		if err := insertBrandStat(tx, runID, "your", stat); err != nil {
			return 0, err
		}
	}
	for _, stat := range report.BrandStatistics.Competitors {
		if err := insertBrandStat(tx, runID, "competitor", stat); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit audit run: %w", err)
	}

	log.Infof("Persisted audit run %d (%d responses)", runID, sum.TotalResponses)
	return runID, nil
}

func insertBrandStat(tx *sql.Tx, runID int64, brandType string, stat models.BrandStat) error {
	_, err := tx.Exec(`INSERT INTO audit_brand_stats
		(run_id, brand, brand_type, total_mentions, responses_mentioned_in)
		VALUES (?, ?, ?, ?, ?)`,
		runID, stat.Brand, brandType, stat.TotalMentions, stat.ResponsesMentionedIn)
	if err != nil {
		return fmt.Errorf("failed to insert brand stat for %s: %w", stat.Brand, err)
	}
	return nil
}

// RecentRuns returns the most recent persisted run summaries, newest first.
func (s *AuditStore) RecentRuns(ctx context.Context, limit int) ([]models.AuditRun, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `SELECT
		id, source_file, total_responses, responses_with_your_brands,
		responses_with_competitors, your_brand_presence_rate,
		competitor_presence_rate, total_your_brand_mentions,
		total_competitor_mentions, created_at
		FROM audit_runs ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit runs: %w", err)
	}
	defer rows.Close()

	runs := []models.AuditRun{}
	for rows.Next() {
		var run models.AuditRun
		if err := rows.Scan(&run.ID, &run.SourceFile, &run.TotalResponses,
			&run.ResponsesWithYourBrands, &run.ResponsesWithCompetitors,
			&run.YourBrandPresenceRate, &run.CompetitorPresenceRate,
			&run.TotalYourBrandMentions, &run.TotalCompetitorMentions,
			&run.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan audit run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
