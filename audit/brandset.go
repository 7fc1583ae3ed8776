package audit

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"brand-audit-pipeline/models"
)

// ErrNoBrands is returned when neither brand list has a usable entry.
var ErrNoBrands = errors.New("at least one brand must be configured")

// BrandSet holds the configured brand names with their compiled match
// patterns. Names are lower-cased and trimmed at construction; matching is
// case-insensitive and whole-word, with the name treated literally.
type BrandSet struct {
	yourBrands       []string
	competitorBrands []string
	yourSet          map[string]bool
	patterns         map[string]*regexp.Regexp
	order            []string
}

// NewBrandSet builds a BrandSet from the two brand lists. Empty entries are
// dropped; construction fails when no brand survives.
func NewBrandSet(yourBrands, competitorBrands []string) (*BrandSet, error) {
	s := &BrandSet{
		yourSet:  make(map[string]bool),
		patterns: make(map[string]*regexp.Regexp),
	}

	for _, brand := range yourBrands {
		name := strings.ToLower(strings.TrimSpace(brand))
		if name == "" {
			continue
		}
		s.yourBrands = append(s.yourBrands, name)
		s.yourSet[name] = true
	}
	for _, brand := range competitorBrands {
		name := strings.ToLower(strings.TrimSpace(brand))
		if name == "" {
			continue
		}
		s.competitorBrands = append(s.competitorBrands, name)
	}

	if len(s.yourBrands) == 0 && len(s.competitorBrands) == 0 {
		return nil, ErrNoBrands
	}

	// The pattern matches the literal name only; word boundaries are checked
	// on the surrounding runes by the matcher, since regexp's \b is
	// ASCII-only and would never find a boundary next to an accented letter.
	for _, name := range append(append([]string{}, s.yourBrands...), s.competitorBrands...) {
		if _, ok := s.patterns[name]; ok {
			continue
		}
		pattern, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(name))
		if err != nil {
			return nil, fmt.Errorf("failed to compile pattern for brand %q: %w", name, err)
		}
		s.patterns[name] = pattern
		s.order = append(s.order, name)
	}

	return s, nil
}

// YourBrands returns the normalized own-brand names in configured order.
func (s *BrandSet) YourBrands() []string {
	return s.yourBrands
}

// CompetitorBrands returns the normalized competitor names in configured order.
func (s *BrandSet) CompetitorBrands() []string {
	return s.competitorBrands
}

// IsYourBrand reports whether the normalized name belongs to the own-brand
// list. A name configured in both lists counts as an own brand.
func (s *BrandSet) IsYourBrand(name string) bool {
	return s.yourSet[name]
}

// LoadBrandsFile reads a brands JSON file of the form
// {"your_brands": [...], "competitor_brands": [...]}.
func LoadBrandsFile(path string) ([]string, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read brands file %s: %w", path, err)
	}
	var cfg models.BrandConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, nil, fmt.Errorf("invalid brands file %s: %w", path, err)
	}
	return cfg.YourBrands, cfg.CompetitorBrands, nil
}
