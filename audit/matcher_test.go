package audit

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func mustBrandSet(t *testing.T, your, competitors []string) *BrandSet {
	t.Helper()
	set, err := NewBrandSet(your, competitors)
	if err != nil {
		t.Fatalf("NewBrandSet() error = %v", err)
	}
	return set
}

func TestFindMentions_WordBoundaries(t *testing.T) {
	set := mustBrandSet(t, []string{"Cola"}, nil)

	tests := []struct {
		name        string
		text        string
		wantMatches int
	}{
		{
			name:        "hyphenated compound counts each bounded occurrence",
			text:        "I like Cola-Cola products",
			wantMatches: 2,
		},
		{
			name:        "substring inside a longer word does not match",
			text:        "Colaaaa",
			wantMatches: 0,
		},
		{
			name:        "prefix inside a longer word does not match",
			text:        "Cokezilla sells NotCola here",
			wantMatches: 0,
		},
		{
			name:        "punctuation-bounded occurrence matches",
			text:        "Best soda? Cola!",
			wantMatches: 1,
		},
		{
			name:        "no occurrence at all",
			text:        "nothing relevant",
			wantMatches: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mentions := FindMentions(tt.text, set)
			got := len(mentions["cola"])
			if got != tt.wantMatches {
				t.Errorf("FindMentions() = %d occurrences, want %d", got, tt.wantMatches)
			}
		})
	}
}

func TestFindMentions_CaseInsensitive(t *testing.T) {
	set := mustBrandSet(t, []string{"Nike"}, nil)

	mentions := FindMentions("I love NIKE shoes and nike socks", set)
	if got := len(mentions["nike"]); got != 2 {
		t.Errorf("FindMentions() = %d occurrences, want 2", got)
	}
}

func TestFindMentions_EscapesPatternCharacters(t *testing.T) {
	set := mustBrandSet(t, []string{"Dr. Pepper"}, nil)

	if got := len(FindMentions("I drink Dr. Pepper daily", set)["dr. pepper"]); got != 1 {
		t.Errorf("literal occurrence: got %d occurrences, want 1", got)
	}
	// The dot must not act as a wildcard.
	if got := len(FindMentions("I drink drx pepper daily", set)["dr. pepper"]); got != 0 {
		t.Errorf("wildcard match: got %d occurrences, want 0", got)
	}
}

func TestFindMentions_OverlappingBrandsMatchIndependently(t *testing.T) {
	set := mustBrandSet(t, []string{"Coca"}, []string{"Coca-Cola"})

	mentions := FindMentions("Everyone knows Coca-Cola", set)
	if got := len(mentions["coca"]); got != 1 {
		t.Errorf("coca: got %d occurrences, want 1", got)
	}
	if got := len(mentions["coca-cola"]); got != 1 {
		t.Errorf("coca-cola: got %d occurrences, want 1", got)
	}
}

func TestFindMentions_OccurrenceOrderAndOffsets(t *testing.T) {
	set := mustBrandSet(t, []string{"Acme"}, nil)

	text := "Acme is great. Nothing beats Acme."
	occurrences := FindMentions(text, set)["acme"]
	if len(occurrences) != 2 {
		t.Fatalf("got %d occurrences, want 2", len(occurrences))
	}
	if occurrences[0].CharOffset != 0 {
		t.Errorf("first offset = %d, want 0", occurrences[0].CharOffset)
	}
	if occurrences[1].CharOffset != strings.LastIndex(text, "Acme") {
		t.Errorf("second offset = %d, want %d", occurrences[1].CharOffset, strings.LastIndex(text, "Acme"))
	}
	if occurrences[0].CharOffset >= occurrences[1].CharOffset {
		t.Error("occurrences are not in ascending position order")
	}
}

func TestFindMentions_UnicodeBrandNames(t *testing.T) {
	set := mustBrandSet(t, []string{"Nestlé"}, nil)

	tests := []struct {
		name        string
		text        string
		wantMatches int
	}{
		{
			name:        "accented brand bounded by spaces",
			text:        "I love Nestlé chocolate",
			wantMatches: 1,
		},
		{
			name:        "uppercase accented occurrence",
			text:        "NESTLÉ at the end",
			wantMatches: 1,
		},
		{
			name:        "accented brand inside a longer word does not match",
			text:        "Nestlés chocolate",
			wantMatches: 0,
		},
		{
			name:        "letter before the brand is not a boundary",
			text:        "xNestlé chocolate",
			wantMatches: 0,
		},
		{
			name:        "punctuation-bounded accented occurrence",
			text:        "Is it Nestlé?",
			wantMatches: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mentions := FindMentions(tt.text, set)
			got := len(mentions["nestlé"])
			if got != tt.wantMatches {
				t.Errorf("FindMentions() = %d occurrences, want %d", got, tt.wantMatches)
			}
		})
	}
}

func TestFindMentions_CharOffsetsCountRunes(t *testing.T) {
	set := mustBrandSet(t, []string{"Acme"}, nil)

	// Three two-byte runes precede the match; the offset counts characters.
	occurrences := FindMentions("ééé Acme", set)["acme"]
	if len(occurrences) != 1 {
		t.Fatalf("got %d occurrences, want 1", len(occurrences))
	}
	if occurrences[0].CharOffset != 4 {
		t.Errorf("CharOffset = %d, want 4", occurrences[0].CharOffset)
	}
}

func TestFindMentions_ContextWindowNeverSplitsRunes(t *testing.T) {
	set := mustBrandSet(t, []string{"Acme"}, nil)

	text := strings.Repeat("é", 60) + " Acme"
	occurrences := FindMentions(text, set)["acme"]
	if len(occurrences) != 1 {
		t.Fatalf("got %d occurrences, want 1", len(occurrences))
	}
	ctx := occurrences[0].Context
	if !utf8.ValidString(ctx) {
		t.Errorf("Context is not valid UTF-8: %q", ctx)
	}
	// 50 characters before the match plus the match itself.
	if got := utf8.RuneCountInString(ctx); got != 54 {
		t.Errorf("Context rune count = %d, want 54", got)
	}
}

func TestFindMentions_ContextWindowClipping(t *testing.T) {
	set := mustBrandSet(t, []string{"Acme"}, nil)

	// Match at the very start: the window is clipped to the text bounds.
	text := "Acme " + strings.Repeat("x", 200)
	occ := FindMentions(text, set)["acme"][0]
	if want := text[:54]; occ.Context != want {
		t.Errorf("Context = %q, want %q", occ.Context, want)
	}

	// Match in the middle of a long text: 50 characters each side.
	text = strings.Repeat("a ", 50) + "Acme" + strings.Repeat(" b", 50)
	occ = FindMentions(text, set)["acme"][0]
	if len(occ.Context) != 104 {
		t.Errorf("Context length = %d, want 104", len(occ.Context))
	}
}
