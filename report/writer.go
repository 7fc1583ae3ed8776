// Package report serializes an audit report into its external
// representations. All formats are derived from the same report instance;
// nothing is recomputed here.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/apex/log"

	"brand-audit-pipeline/models"
)

// Recognized output formats.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatTXT  = "txt"
	FormatAll  = "all"
)

// ValidFormat reports whether f is a recognized output format selector.
func ValidFormat(f string) bool {
	switch f {
	case FormatJSON, FormatCSV, FormatTXT, FormatAll:
		return true
	}
	return false
}

// Write serializes the report to basePath in the given format. For "all",
// every format is written independently: a failure in one does not undo the
// files already written, and the first error is returned after all formats
// were attempted.
func Write(r *models.AuditReport, basePath, format string) error {
	formats := []string{format}
	if format == FormatAll {
		formats = []string{FormatJSON, FormatCSV, FormatTXT}
	}

	var firstErr error
	for _, f := range formats {
		var err error
		switch f {
		case FormatJSON:
			err = WriteJSON(r, basePath+".json")
		case FormatCSV:
			err = WriteCSV(r, basePath)
		case FormatTXT:
			err = WriteText(r, basePath+".txt")
		default:
			err = fmt.Errorf("unsupported format: %s", f)
		}
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// WriteJSON writes the full structural dump, including per-response detail
// and per-mention context windows.
func WriteJSON(r *models.AuditReport, path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write JSON report to %s: %w", path, err)
	}
	log.Infof("Saved JSON report to %s", path)
	return nil
}

// WriteCSV writes three tables next to each other: <base>.summary.csv,
// <base>.brands.csv and <base>.detailed.csv. Files already written survive a
// later failure.
func WriteCSV(r *models.AuditReport, basePath string) error {
	summaryPath := basePath + ".summary.csv"
	if err := writeCSVFile(summaryPath, summaryRows(r)); err != nil {
		return err
	}
	brandsPath := basePath + ".brands.csv"
	if err := writeCSVFile(brandsPath, brandRows(r)); err != nil {
		return err
	}
	detailPath := basePath + ".detailed.csv"
	if err := writeCSVFile(detailPath, detailRows(r)); err != nil {
		return err
	}
	log.Infof("Saved CSV reports: %s, %s, %s", summaryPath, brandsPath, detailPath)
	return nil
}

func writeCSVFile(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func summaryRows(r *models.AuditReport) [][]string {
	s := r.Summary
	return [][]string{
		{"Metric", "Value"},
		{"Total Responses", strconv.Itoa(s.TotalResponses)},
		{"Responses with Your Brands", strconv.Itoa(s.ResponsesWithYourBrands)},
		{"Responses with Competitors", strconv.Itoa(s.ResponsesWithCompetitors)},
		{"Responses with Both", strconv.Itoa(s.ResponsesWithBoth)},
		{"Responses with Neither", strconv.Itoa(s.ResponsesWithNeither)},
		{"Your Brand Presence Rate (%)", formatRate(s.YourBrandPresenceRate)},
		{"Competitor Presence Rate (%)", formatRate(s.CompetitorPresenceRate)},
		{"Total Your Brand Mentions", strconv.Itoa(s.TotalYourBrandMentions)},
		{"Total Competitor Mentions", strconv.Itoa(s.TotalCompetitorMentions)},
	}
}

func brandRows(r *models.AuditReport) [][]string {
	rows := [][]string{
		{"Brand", "Type", "Total Mentions", "Responses Mentioned In"},
	}
	for _, stat := range r.BrandStatistics.YourBrands {
		rows = append(rows, []string{stat.Brand, "Your Brand",
			strconv.Itoa(stat.TotalMentions), strconv.Itoa(stat.ResponsesMentionedIn)})
	}
	for _, stat := range r.BrandStatistics.Competitors {
		rows = append(rows, []string{stat.Brand, "Competitor",
			strconv.Itoa(stat.TotalMentions), strconv.Itoa(stat.ResponsesMentionedIn)})
	}
	return rows
}

func detailRows(r *models.AuditReport) [][]string {
	rows := [][]string{
		{"Question", "Timestamp", "Your Brands Mentioned", "Competitor Brands Mentioned",
			"Your Brand Count", "Competitor Count", "Total Mentions", "Has Your Brands", "Has Competitors"},
	}
	for _, a := range r.ResponseAnalyses {
		rows = append(rows, []string{
			a.Question,
			a.Timestamp,
			strings.Join(a.YourBrandsMentioned, ", "),
			strings.Join(a.CompetitorBrandsMentioned, ", "),
			strconv.Itoa(a.YourBrandCount),
			strconv.Itoa(a.CompetitorCount),
			strconv.Itoa(a.TotalMentions),
			strconv.FormatBool(a.HasYourBrands),
			strconv.FormatBool(a.HasCompetitors),
		})
	}
	return rows
}

// WriteText writes the human-readable report: a summary block, ranked brand
// lists (descending by total mentions, stable ties) and a numbered
// per-response listing.
func WriteText(r *models.AuditReport, path string) error {
	var b strings.Builder
	divider := strings.Repeat("=", 80)
	rule := strings.Repeat("-", 80)

	s := r.Summary
	fmt.Fprintf(&b, "%s\nBRAND PRESENCE AUDIT REPORT\n%s\n\n", divider, divider)
	fmt.Fprintf(&b, "Audit Date: %s\n", r.AuditTimestamp)
	fmt.Fprintf(&b, "Source File: %s\n\n", r.SourceFile)

	fmt.Fprintf(&b, "SUMMARY\n%s\n", rule)
	fmt.Fprintf(&b, "Total Responses Analyzed: %d\n", s.TotalResponses)
	fmt.Fprintf(&b, "Responses with Your Brands: %d (%s%%)\n", s.ResponsesWithYourBrands, formatRate(s.YourBrandPresenceRate))
	fmt.Fprintf(&b, "Responses with Competitors: %d (%s%%)\n", s.ResponsesWithCompetitors, formatRate(s.CompetitorPresenceRate))
	fmt.Fprintf(&b, "Responses with Both: %d\n", s.ResponsesWithBoth)
	fmt.Fprintf(&b, "Responses with Neither: %d\n", s.ResponsesWithNeither)
	fmt.Fprintf(&b, "Total Your Brand Mentions: %d\n", s.TotalYourBrandMentions)
	fmt.Fprintf(&b, "Total Competitor Mentions: %d\n\n", s.TotalCompetitorMentions)

	writeBrandSection(&b, "YOUR BRANDS", rule, r.BrandStatistics.YourBrands)
	writeBrandSection(&b, "COMPETITOR BRANDS", rule, r.BrandStatistics.Competitors)

	fmt.Fprintf(&b, "DETAILED RESPONSE ANALYSIS\n%s\n", rule)
	for i, a := range r.ResponseAnalyses {
		fmt.Fprintf(&b, "\nResponse %d:\n", i+1)
		fmt.Fprintf(&b, "  Question: %s\n", a.Question)
		fmt.Fprintf(&b, "  Your Brands: %s\n", joinOrNone(a.YourBrandsMentioned))
		fmt.Fprintf(&b, "  Competitors: %s\n", joinOrNone(a.CompetitorBrandsMentioned))
		fmt.Fprintf(&b, "  Mentions: Your=%d, Competitors=%d\n", a.YourBrandCount, a.CompetitorCount)
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to write text report to %s: %w", path, err)
	}
	log.Infof("Saved text report to %s", path)
	return nil
}

func writeBrandSection(b *strings.Builder, title, rule string, stats []models.BrandStat) {
	fmt.Fprintf(b, "%s\n%s\n", title, rule)
	if len(stats) == 0 {
		fmt.Fprintf(b, "  No mentions found.\n\n")
		return
	}
	ranked := make([]models.BrandStat, len(stats))
	copy(ranked, stats)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalMentions > ranked[j].TotalMentions
	})
	for _, stat := range ranked {
		fmt.Fprintf(b, "  %s:\n", stat.Brand)
		fmt.Fprintf(b, "    Total Mentions: %d\n", stat.TotalMentions)
		fmt.Fprintf(b, "    Responses Mentioned In: %d\n", stat.ResponsesMentionedIn)
	}
	fmt.Fprintf(b, "\n")
}

func joinOrNone(brands []string) string {
	if len(brands) == 0 {
		return "None"
	}
	return strings.Join(brands, ", ")
}

// PrintSummary prints the console summary shown after every successful run.
func PrintSummary(r *models.AuditReport) {
	s := r.Summary
	divider := strings.Repeat("=", 80)
	fmt.Println()
	fmt.Println(divider)
	fmt.Println("AUDIT SUMMARY")
	fmt.Println(divider)
	fmt.Printf("Total Responses: %d\n", s.TotalResponses)
	fmt.Printf("Your Brand Presence: %d/%d (%s%%)\n", s.ResponsesWithYourBrands, s.TotalResponses, formatRate(s.YourBrandPresenceRate))
	fmt.Printf("Competitor Presence: %d/%d (%s%%)\n", s.ResponsesWithCompetitors, s.TotalResponses, formatRate(s.CompetitorPresenceRate))
	fmt.Printf("Total Your Brand Mentions: %d\n", s.TotalYourBrandMentions)
	fmt.Printf("Total Competitor Mentions: %d\n", s.TotalCompetitorMentions)
	fmt.Println(divider)
}

func formatRate(rate float64) string {
	return strconv.FormatFloat(rate, 'f', -1, 64)
}
