package audit

import (
	"reflect"
	"testing"

	"brand-audit-pipeline/models"
)

func TestAnalyzeResponse(t *testing.T) {
	set := mustBrandSet(t, []string{"Acme"}, []string{"Globex"})

	record := models.ResponseRecord{
		Question:  "best widget",
		Response:  "Acme widgets beat Globex and Acme again",
		Timestamp: "2024-01-01T00:00:00",
	}

	analysis := AnalyzeResponse(record, set)

	if analysis.YourBrandCount != 2 {
		t.Errorf("YourBrandCount = %d, want 2", analysis.YourBrandCount)
	}
	if analysis.CompetitorCount != 1 {
		t.Errorf("CompetitorCount = %d, want 1", analysis.CompetitorCount)
	}
	if analysis.TotalMentions != 3 {
		t.Errorf("TotalMentions = %d, want 3", analysis.TotalMentions)
	}
	if !analysis.HasYourBrands {
		t.Error("HasYourBrands = false, want true")
	}
	if !analysis.HasCompetitors {
		t.Error("HasCompetitors = false, want true")
	}
	if got, want := analysis.YourBrandsMentioned, []string{"acme"}; !reflect.DeepEqual(got, want) {
		t.Errorf("YourBrandsMentioned = %v, want %v", got, want)
	}
	if got, want := analysis.CompetitorBrandsMentioned, []string{"globex"}; !reflect.DeepEqual(got, want) {
		t.Errorf("CompetitorBrandsMentioned = %v, want %v", got, want)
	}
	if got := analysis.YourBrandMentions["acme"]; got != 2 {
		t.Errorf("YourBrandMentions[acme] = %d, want 2", got)
	}
	if got := analysis.ResponseLength; got != len(record.Response) {
		t.Errorf("ResponseLength = %d, want %d", got, len(record.Response))
	}
	if analysis.Question != record.Question || analysis.Timestamp != record.Timestamp {
		t.Error("analysis does not carry the record's question and timestamp")
	}
}

func TestAnalyzeResponse_QuestionIsSearched(t *testing.T) {
	set := mustBrandSet(t, []string{"Acme"}, nil)

	analysis := AnalyzeResponse(models.ResponseRecord{
		Question: "is Acme any good?",
		Response: "It depends.",
	}, set)

	if analysis.YourBrandCount != 1 {
		t.Errorf("YourBrandCount = %d, want 1 (question text must be searched)", analysis.YourBrandCount)
	}

	// The question comes first in the searched text, so the offset is inside
	// the question.
	occ := analysis.MentionsWithContext.YourBrands["acme"]
	if len(occ) != 1 || occ[0].CharOffset != 3 {
		t.Errorf("occurrences = %+v, want one occurrence at offset 3", occ)
	}
}

func TestAnalyzeResponse_MissingFields(t *testing.T) {
	set := mustBrandSet(t, []string{"Acme"}, []string{"Globex"})

	analysis := AnalyzeResponse(models.ResponseRecord{}, set)

	if analysis.HasYourBrands || analysis.HasCompetitors {
		t.Error("empty record must have no brand mentions")
	}
	if analysis.TotalMentions != 0 {
		t.Errorf("TotalMentions = %d, want 0", analysis.TotalMentions)
	}
	if analysis.ResponseLength != 0 {
		t.Errorf("ResponseLength = %d, want 0", analysis.ResponseLength)
	}
	if analysis.YourBrandsMentioned == nil || analysis.CompetitorBrandsMentioned == nil {
		t.Error("mentioned lists must be empty, not nil")
	}
}

func TestAnalyzeResponse_LengthCountsCharacters(t *testing.T) {
	set := mustBrandSet(t, []string{"Nestlé"}, nil)

	analysis := AnalyzeResponse(models.ResponseRecord{
		Response: "Nestlé bars",
	}, set)

	// 11 characters, 12 bytes.
	if analysis.ResponseLength != 11 {
		t.Errorf("ResponseLength = %d, want 11 characters", analysis.ResponseLength)
	}
	if analysis.YourBrandCount != 1 {
		t.Errorf("YourBrandCount = %d, want 1", analysis.YourBrandCount)
	}
}

func TestAnalyzeResponse_Deterministic(t *testing.T) {
	set := mustBrandSet(t, []string{"Acme", "Initech"}, []string{"Globex", "Hooli"})

	record := models.ResponseRecord{
		Question:  "compare vendors",
		Response:  "Hooli and Acme and Globex and Initech and Acme",
		Timestamp: "2024-01-01T00:00:00",
	}

	first := AnalyzeResponse(record, set)
	second := AnalyzeResponse(record, set)
	if !reflect.DeepEqual(first, second) {
		t.Error("AnalyzeResponse() is not deterministic for the same input")
	}
}
