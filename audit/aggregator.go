package audit

import (
	"time"

	"github.com/shopspring/decimal"

	"brand-audit-pipeline/models"
)

// Aggregate reduces an ordered sequence of response analyses into an audit
// report. Every response falls into exactly one of four categories; presence
// rates are percentages rounded to two decimals and defined as 0 for an
// empty sequence. Brands with no mentions anywhere are omitted from the
// per-brand statistics. The inputs are not mutated.
func Aggregate(sourceFile string, analyses []models.ResponseAnalysis) *models.AuditReport {
	summary := models.AuditSummary{
		TotalResponses: len(analyses),
	}

	for _, a := range analyses {
		switch {
		case a.HasYourBrands && a.HasCompetitors:
			summary.ResponsesWithBoth++
		case a.HasYourBrands:
			summary.ResponsesYourBrandsOnly++
		case a.HasCompetitors:
			summary.ResponsesCompetitorsOnly++
		default:
			summary.ResponsesWithNeither++
		}
	}
	summary.ResponsesWithYourBrands = summary.ResponsesYourBrandsOnly + summary.ResponsesWithBoth
	summary.ResponsesWithCompetitors = summary.ResponsesCompetitorsOnly + summary.ResponsesWithBoth

	summary.YourBrandPresenceRate = presenceRate(summary.ResponsesWithYourBrands, summary.TotalResponses)
	summary.CompetitorPresenceRate = presenceRate(summary.ResponsesWithCompetitors, summary.TotalResponses)

	stats := models.BrandStatistics{
		YourBrands:  brandStats(analyses, true),
		Competitors: brandStats(analyses, false),
	}
	for _, s := range stats.YourBrands {
		summary.TotalYourBrandMentions += s.TotalMentions
	}
	for _, s := range stats.Competitors {
		summary.TotalCompetitorMentions += s.TotalMentions
	}

	return &models.AuditReport{
		AuditTimestamp:   time.Now().Format(time.RFC3339),
		SourceFile:       sourceFile,
		Summary:          summary,
		BrandStatistics:  stats,
		ResponseAnalyses: analyses,
	}
}

// presenceRate is (n/total)*100 rounded to 2 decimal places, 0 when total is 0.
func presenceRate(n, total int) float64 {
	if total == 0 {
		return 0
	}
	rate := decimal.NewFromInt(int64(n)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(total)))
	return rate.Round(2).InexactFloat64()
}

// brandStats accumulates per-brand totals in first-seen order across the
// analyses for one brand group.
func brandStats(analyses []models.ResponseAnalysis, yourBrands bool) []models.BrandStat {
	stats := []models.BrandStat{}
	index := make(map[string]int)

	for _, a := range analyses {
		mentioned := a.YourBrandsMentioned
		counts := a.YourBrandMentions
		if !yourBrands {
			mentioned = a.CompetitorBrandsMentioned
			counts = a.CompetitorMentions
		}
		for _, brand := range mentioned {
			i, ok := index[brand]
			if !ok {
				i = len(stats)
				index[brand] = i
				stats = append(stats, models.BrandStat{Brand: brand})
			}
			stats[i].TotalMentions += counts[brand]
			stats[i].ResponsesMentionedIn++
		}
	}

	return stats
}
