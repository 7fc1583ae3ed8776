package audit

import (
	"github.com/apex/log"

	"brand-audit-pipeline/metrics"
	"brand-audit-pipeline/models"
)

// Auditor runs brand-presence audits over captured response records.
type Auditor struct {
	set *BrandSet
}

// NewAuditor creates an auditor for the given brand lists.
func NewAuditor(yourBrands, competitorBrands []string) (*Auditor, error) {
	set, err := NewBrandSet(yourBrands, competitorBrands)
	if err != nil {
		return nil, err
	}
	log.Infof("Initialized auditor with %d your brands and %d competitor brands",
		len(set.YourBrands()), len(set.CompetitorBrands()))
	return &Auditor{set: set}, nil
}

// BrandSet returns the auditor's configured brand set.
func (a *Auditor) BrandSet() *BrandSet {
	return a.set
}

// Audit analyzes every record and aggregates the results into one report.
// sourceLabel names where the records came from; it is report metadata only.
func (a *Auditor) Audit(sourceLabel string, records []models.ResponseRecord) *models.AuditReport {
	analyses := make([]models.ResponseAnalysis, 0, len(records))
	for _, record := range records {
		analyses = append(analyses, AnalyzeResponse(record, a.set))
	}
	metrics.RecordsAnalyzed.Add(float64(len(records)))

	report := Aggregate(sourceLabel, analyses)
	log.Infof("Audit complete: %d/%d responses mention your brands, %d/%d mention competitors",
		report.Summary.ResponsesWithYourBrands, report.Summary.TotalResponses,
		report.Summary.ResponsesWithCompetitors, report.Summary.TotalResponses)
	return report
}
