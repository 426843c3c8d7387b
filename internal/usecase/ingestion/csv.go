package ingestion

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/itshivams/image-processing-system/internal/dto"
	"github.com/itshivams/image-processing-system/pkg/types/errs"
)

// Required header columns, matched case-insensitively, order-independent.
const (
	colSequence    = "s. no."
	colProductName = "product name"
	colImageURLs   = "input image urls"
)

func parseProductCSV(r io.Reader) ([]dto.ProductRecord, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parseProductCSV: %w", errs.ErrEmptyCSV)
		}
		return nil, fmt.Errorf("parseProductCSV - reader.Read: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}

	for _, required := range []string{colSequence, colProductName, colImageURLs} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("parseProductCSV - %q: %w", required, errs.ErrMissingColumn)
		}
	}

	var records []dto.ProductRecord

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parseProductCSV - reader.Read: %w", err)
		}

		records = append(records, dto.ProductRecord{
			Name:           strings.TrimSpace(row[index[colProductName]]),
			InputImageURLs: splitImageURLs(row[index[colImageURLs]]),
		})
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("parseProductCSV: %w", errs.ErrEmptyCSV)
	}

	return records, nil
}

// splitImageURLs splits the comma-delimited URL column, trimming each entry
// and dropping empty ones.
func splitImageURLs(s string) []string {
	parts := strings.Split(s, ",")

	urls := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		urls = append(urls, part)
	}

	return urls
}
