package database

import (
	"database/sql"
	"fmt"

	"github.com/apex/log"
)

// InitSchema creates the audit tables if they don't exist
func InitSchema(db *sql.DB) error {
	log.Info("Initializing brand-audit database schema...")

	auditRunsTableSQL := `
	CREATE TABLE IF NOT EXISTS audit_runs(
		id INT NOT NULL AUTO_INCREMENT,
		source_file VARCHAR(512) NOT NULL,
		total_responses INT NOT NULL,
		responses_with_your_brands INT NOT NULL,
		responses_with_competitors INT NOT NULL,
		responses_with_both INT NOT NULL,
		responses_with_neither INT NOT NULL,
		your_brand_presence_rate DECIMAL(5,2) NOT NULL,
		competitor_presence_rate DECIMAL(5,2) NOT NULL,
		total_your_brand_mentions INT NOT NULL,
		total_competitor_mentions INT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		INDEX created_at_index (created_at)
	)`

	if _, err := db.Exec(auditRunsTableSQL); err != nil {
		return fmt.Errorf("failed to create audit_runs table: %w", err)
	}
	log.Info("Audit_runs table created/verified")

	brandStatsTableSQL := `
	CREATE TABLE IF NOT EXISTS audit_brand_stats(
		run_id INT NOT NULL,
		brand VARCHAR(255) NOT NULL,
		brand_type ENUM('your', 'competitor') NOT NULL,
		total_mentions INT NOT NULL,
		responses_mentioned_in INT NOT NULL,
		INDEX run_id_index (run_id),
		INDEX brand_index (brand)
	)`

	if _, err := db.Exec(brandStatsTableSQL); err != nil {
		return fmt.Errorf("failed to create audit_brand_stats table: %w", err)
	}
	log.Info("Audit_brand_stats table created/verified")

	log.Info("Brand-audit database schema initialization completed")
	return nil
}
