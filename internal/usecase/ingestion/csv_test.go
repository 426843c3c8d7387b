package ingestion

import (
	"errors"
	"strings"
	"testing"

	"github.com/itshivams/image-processing-system/pkg/types/errs"
)

func TestParseProductCSV(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
		want    int
	}{
		{
			name:  "two valid rows",
			input: "S. No.,Product Name,Input Image Urls\n1,SKU1,\"https://img.test/1.jpg, https://img.test/2.jpg\"\n2,SKU2,https://img.test/3.jpg\n",
			want:  2,
		},
		{
			name:  "header case and order independent",
			input: "product name,INPUT IMAGE URLS,s. no.\nSKU1,https://img.test/1.jpg,1\n",
			want:  1,
		},
		{
			name:    "missing product name column",
			input:   "S. No.,Input Image Urls\n1,https://img.test/1.jpg\n",
			wantErr: errs.ErrMissingColumn,
		},
		{
			name:    "empty input",
			input:   "",
			wantErr: errs.ErrEmptyCSV,
		},
		{
			name:    "header only",
			input:   "S. No.,Product Name,Input Image Urls\n",
			wantErr: errs.ErrEmptyCSV,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := parseProductCSV(strings.NewReader(tt.input))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(records) != tt.want {
				t.Fatalf("expected %d records, got %d", tt.want, len(records))
			}
		})
	}
}

func TestParseProductCSVRecordFields(t *testing.T) {
	input := "S. No.,Product Name,Input Image Urls\n1, SKU1 ,\"https://img.test/1.jpg, https://img.test/2.jpg\"\n"

	records, err := parseProductCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if records[0].Name != "SKU1" {
		t.Errorf("expected trimmed name SKU1, got %q", records[0].Name)
	}
	if len(records[0].InputImageURLs) != 2 {
		t.Fatalf("expected 2 urls, got %d", len(records[0].InputImageURLs))
	}
	if records[0].InputImageURLs[1] != "https://img.test/2.jpg" {
		t.Errorf("expected trimmed second url, got %q", records[0].InputImageURLs[1])
	}
}

func TestSplitImageURLs(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "trims and drops empties",
			input: " https://a/1.jpg ,, https://a/2.jpg ,",
			want:  []string{"https://a/1.jpg", "https://a/2.jpg"},
		},
		{
			name:  "single url",
			input: "https://a/1.jpg",
			want:  []string{"https://a/1.jpg"},
		},
		{
			name:  "blank column",
			input: "  ",
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitImageURLs(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d urls, got %d", len(tt.want), len(got))
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("url %d: expected %q, got %q", i, tt.want[i], got[i])
				}
			}
		})
	}
}
