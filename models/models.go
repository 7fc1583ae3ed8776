package models

// ResponseRecord is one captured assistant interaction, as produced by the
// capture side. Extra fields in the source JSON are ignored.
type ResponseRecord struct {
	Question          string   `json:"question"`
	Response          string   `json:"response"`
	Timestamp         string   `json:"timestamp"`
	Products          []string `json:"products,omitempty"`
	FollowupQuestions []string `json:"followup_questions,omitempty"`
}

// CaptureResults is the top-level document written by the capture side.
type CaptureResults struct {
	Results []ResponseRecord `json:"results"`
}

// BrandConfig mirrors the brands JSON file format.
type BrandConfig struct {
	YourBrands       []string `json:"your_brands"`
	CompetitorBrands []string `json:"competitor_brands"`
}

// MentionOccurrence is a single whole-word match of a brand within a text.
type MentionOccurrence struct {
	Brand      string `json:"brand"`
	CharOffset int    `json:"char_offset"`
	Context    string `json:"context"`
}

// ResponseAnalysis is the per-record classification of brand mentions.
type ResponseAnalysis struct {
	Question                  string              `json:"question"`
	Timestamp                 string              `json:"timestamp"`
	YourBrandsMentioned       []string            `json:"your_brands_mentioned"`
	CompetitorBrandsMentioned []string            `json:"competitor_brands_mentioned"`
	YourBrandMentions         map[string]int      `json:"your_brand_mentions"`
	CompetitorMentions        map[string]int      `json:"competitor_mentions"`
	YourBrandCount            int                 `json:"your_brand_count"`
	CompetitorCount           int                 `json:"competitor_count"`
	TotalMentions             int                 `json:"total_mentions"`
	MentionsWithContext       MentionsWithContext `json:"mentions_with_context"`
	HasYourBrands             bool                `json:"has_your_brands"`
	HasCompetitors            bool                `json:"has_competitors"`
	ResponseLength            int                 `json:"response_length"`
}

// MentionsWithContext carries the raw occurrences per group.
type MentionsWithContext struct {
	YourBrands  map[string][]MentionOccurrence `json:"your_brands"`
	Competitors map[string][]MentionOccurrence `json:"competitors"`
}

// AuditSummary is the aggregate block of a report.
type AuditSummary struct {
	TotalResponses           int     `json:"total_responses"`
	ResponsesWithYourBrands  int     `json:"responses_with_your_brands"`
	ResponsesWithCompetitors int     `json:"responses_with_competitors"`
	ResponsesWithBoth        int     `json:"responses_with_both"`
	ResponsesWithNeither     int     `json:"responses_with_neither"`
	ResponsesYourBrandsOnly  int     `json:"responses_your_brands_only"`
	ResponsesCompetitorsOnly int     `json:"responses_competitors_only"`
	YourBrandPresenceRate    float64 `json:"your_brand_presence_rate"`
	CompetitorPresenceRate   float64 `json:"competitor_presence_rate"`
	TotalYourBrandMentions   int     `json:"total_your_brand_mentions"`
	TotalCompetitorMentions  int     `json:"total_competitor_mentions"`
}

// BrandStat is the aggregate for one brand that appeared at least once.
type BrandStat struct {
	Brand                string `json:"brand"`
	TotalMentions        int    `json:"total_mentions"`
	ResponsesMentionedIn int    `json:"responses_mentioned_in"`
}

// BrandStatistics holds per-brand aggregates in first-seen order.
type BrandStatistics struct {
	YourBrands  []BrandStat `json:"your_brands"`
	Competitors []BrandStat `json:"competitors"`
}

// AuditReport is the complete result of one audit run.
type AuditReport struct {
	AuditTimestamp   string             `json:"audit_timestamp"`
	SourceFile       string             `json:"source_file"`
	Summary          AuditSummary       `json:"summary"`
	BrandStatistics  BrandStatistics    `json:"brand_statistics"`
	ResponseAnalyses []ResponseAnalysis `json:"response_analyses"`
}

// AuditRun is a persisted run summary row.
type AuditRun struct {
	ID                       int64   `json:"id"`
	SourceFile               string  `json:"source_file"`
	TotalResponses           int     `json:"total_responses"`
	ResponsesWithYourBrands  int     `json:"responses_with_your_brands"`
	ResponsesWithCompetitors int     `json:"responses_with_competitors"`
	YourBrandPresenceRate    float64 `json:"your_brand_presence_rate"`
	CompetitorPresenceRate   float64 `json:"competitor_presence_rate"`
	TotalYourBrandMentions   int     `json:"total_your_brand_mentions"`
	TotalCompetitorMentions  int     `json:"total_competitor_mentions"`
	CreatedAt                string  `json:"created_at"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}
