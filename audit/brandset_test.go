package audit

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestNewBrandSet_NormalizesNames(t *testing.T) {
	set := mustBrandSet(t, []string{"  Acme ", "NIKE"}, []string{"Globex Corp"})

	if got, want := set.YourBrands(), []string{"acme", "nike"}; !reflect.DeepEqual(got, want) {
		t.Errorf("YourBrands() = %v, want %v", got, want)
	}
	if got, want := set.CompetitorBrands(), []string{"globex corp"}; !reflect.DeepEqual(got, want) {
		t.Errorf("CompetitorBrands() = %v, want %v", got, want)
	}
	if !set.IsYourBrand("acme") {
		t.Error("IsYourBrand(acme) = false, want true")
	}
	if set.IsYourBrand("globex corp") {
		t.Error("IsYourBrand(globex corp) = true, want false")
	}
}

func TestNewBrandSet_RequiresAtLeastOneBrand(t *testing.T) {
	tests := []struct {
		name        string
		your        []string
		competitors []string
		wantErr     bool
	}{
		{
			name:    "both nil",
			wantErr: true,
		},
		{
			name:        "only blank entries",
			your:        []string{"  ", ""},
			competitors: []string{""},
			wantErr:     true,
		},
		{
			name: "your brands only",
			your: []string{"acme"},
		},
		{
			name:        "competitors only",
			competitors: []string{"globex"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBrandSet(tt.your, tt.competitors)
			if tt.wantErr && !errors.Is(err, ErrNoBrands) {
				t.Errorf("NewBrandSet() error = %v, want ErrNoBrands", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("NewBrandSet() error = %v, want nil", err)
			}
		})
	}
}

func TestLoadBrandsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "brands.json")
	content := `{"your_brands": ["Acme", "Initech"], "competitor_brands": ["Globex"]}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	your, competitors, err := LoadBrandsFile(path)
	if err != nil {
		t.Fatalf("LoadBrandsFile() error = %v", err)
	}
	if want := []string{"Acme", "Initech"}; !reflect.DeepEqual(your, want) {
		t.Errorf("your brands = %v, want %v", your, want)
	}
	if want := []string{"Globex"}; !reflect.DeepEqual(competitors, want) {
		t.Errorf("competitor brands = %v, want %v", competitors, want)
	}
}

func TestLoadBrandsFile_Errors(t *testing.T) {
	if _, _, err := LoadBrandsFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("LoadBrandsFile() with missing file: error = nil, want error")
	}

	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := LoadBrandsFile(path); err == nil {
		t.Error("LoadBrandsFile() with malformed JSON: error = nil, want error")
	}
}
