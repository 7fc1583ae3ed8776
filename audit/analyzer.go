package audit

import (
	"unicode/utf8"

	"brand-audit-pipeline/models"
)

// AnalyzeResponse classifies one response record's brand mentions. The
// question and response are searched as one text, question first. Missing
// fields degrade to empty strings, so the analysis never fails.
func AnalyzeResponse(record models.ResponseRecord, set *BrandSet) models.ResponseAnalysis {
	fullText := record.Question + "\n\n" + record.Response

	mentions := FindMentions(fullText, set)

	analysis := models.ResponseAnalysis{
		Question:                  record.Question,
		Timestamp:                 record.Timestamp,
		YourBrandsMentioned:       []string{},
		CompetitorBrandsMentioned: []string{},
		YourBrandMentions:         map[string]int{},
		CompetitorMentions:        map[string]int{},
		MentionsWithContext: models.MentionsWithContext{
			YourBrands:  map[string][]models.MentionOccurrence{},
			Competitors: map[string][]models.MentionOccurrence{},
		},
		ResponseLength: utf8.RuneCountInString(record.Response),
	}

	for _, brand := range set.order {
		occurrences, ok := mentions[brand]
		if !ok {
			continue
		}
		if set.IsYourBrand(brand) {
			analysis.YourBrandsMentioned = append(analysis.YourBrandsMentioned, brand)
			analysis.YourBrandMentions[brand] = len(occurrences)
			analysis.MentionsWithContext.YourBrands[brand] = occurrences
			analysis.YourBrandCount += len(occurrences)
		} else {
			analysis.CompetitorBrandsMentioned = append(analysis.CompetitorBrandsMentioned, brand)
			analysis.CompetitorMentions[brand] = len(occurrences)
			analysis.MentionsWithContext.Competitors[brand] = occurrences
			analysis.CompetitorCount += len(occurrences)
		}
	}

	analysis.TotalMentions = analysis.YourBrandCount + analysis.CompetitorCount
	analysis.HasYourBrands = len(analysis.YourBrandsMentioned) > 0
	analysis.HasCompetitors = len(analysis.CompetitorBrandsMentioned) > 0

	return analysis
}
